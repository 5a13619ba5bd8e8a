package scoring

// Band is an inclusive sweet spot for one numeric answer.
type Band struct {
	Min, Max float64
}

func (b Band) contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Profile is the set of sweet spots a business model is scored against.
type Profile struct {
	Income        Band
	Timelines     []string
	Budget        Band
	Skills        Band
	Communication Band
	Creativity    Band
	Risk          Band
	Time          Band
	Motivation    Band
	WorkStyles    []string

	// BrandFace scores communication on brandFaceComfort instead of
	// directCommunicationEnjoyment.
	BrandFace bool
	// CallHeavy models lose CallPenalty points when the user refuses client calls.
	CallHeavy bool
}

// CallPenalty is subtracted from call-heavy models when clientCallsComfort is "no".
const CallPenalty = 20

var soloStyles = []string{"solo-only", "mostly-solo"}

var profiles = map[string]Profile{
	"affiliate-marketing": {
		Income:        Band{1000, 8000},
		Timelines:     []string{"3-6-months", "6-12-months", "no-rush"},
		Budget:        Band{0, 500},
		Skills:        Band{2, 4},
		Communication: Band{2, 4},
		Creativity:    Band{3, 5},
		Risk:          Band{2, 4},
		Time:          Band{10, 30},
		Motivation:    Band{3, 5},
		WorkStyles:    soloStyles,
	},
	"freelancing": {
		Income:        Band{2000, 10000},
		Timelines:     []string{"under-1-month", "1-3-months"},
		Budget:        Band{0, 200},
		Skills:        Band{3, 5},
		Communication: Band{3, 5},
		Creativity:    Band{2, 5},
		Risk:          Band{2, 4},
		Time:          Band{15, 40},
		Motivation:    Band{4, 5},
		WorkStyles:    soloStyles,
	},
	"e-commerce-dropshipping": {
		Income:        Band{3000, 15000},
		Timelines:     []string{"3-6-months", "6-12-months"},
		Budget:        Band{500, 2000},
		Skills:        Band{3, 5},
		Communication: Band{2, 4},
		Creativity:    Band{3, 5},
		Risk:          Band{3, 5},
		Time:          Band{20, 50},
		Motivation:    Band{3, 5},
		WorkStyles:    soloStyles,
	},
	"content-creation-ugc": {
		Income:        Band{1000, 6000},
		Timelines:     []string{"6-12-months", "1-year-plus", "no-rush"},
		Budget:        Band{0, 500},
		Skills:        Band{2, 4},
		Communication: Band{4, 5},
		Creativity:    Band{4, 5},
		Risk:          Band{2, 4},
		Time:          Band{10, 30},
		Motivation:    Band{3, 5},
		WorkStyles:    soloStyles,
		BrandFace:     true,
	},
	"app-saas-development": {
		Income:        Band{5000, 50000},
		Timelines:     []string{"6-12-months", "1-year-plus"},
		Budget:        Band{0, 1000},
		Skills:        Band{4, 5},
		Communication: Band{2, 4},
		Creativity:    Band{3, 5},
		Risk:          Band{3, 5},
		Time:          Band{30, 60},
		Motivation:    Band{4, 5},
		WorkStyles:    soloStyles,
	},
	"high-ticket-sales": {
		Income:        Band{5000, 25000},
		Timelines:     []string{"under-1-month", "1-3-months"},
		Budget:        Band{0, 1000},
		Skills:        Band{2, 4},
		Communication: Band{4, 5},
		Creativity:    Band{2, 4},
		Risk:          Band{4, 5},
		Time:          Band{20, 50},
		Motivation:    Band{4, 5},
		WorkStyles:    []string{"solo-only", "mostly-solo", "team-focused"},
		CallHeavy:     true,
	},
	"online-coaching-consulting": {
		Income:        Band{2000, 15000},
		Timelines:     []string{"1-3-months", "3-6-months"},
		Budget:        Band{0, 500},
		Skills:        Band{2, 4},
		Communication: Band{4, 5},
		Creativity:    Band{3, 5},
		Risk:          Band{3, 5},
		Time:          Band{15, 40},
		Motivation:    Band{4, 5},
		WorkStyles:    []string{"team-focused", "balanced"},
		CallHeavy:     true,
	},
}

// ProfileFor returns the scoring profile for a business model id.
func ProfileFor(id string) (Profile, bool) {
	p, ok := profiles[id]
	return p, ok
}
