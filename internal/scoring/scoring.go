// Package scoring computes the deterministic fit score between quiz answers
// and catalog business models.
package scoring

import (
	"math"
	"slices"
	"sort"

	"github.com/bizmodel-ai/backend/internal/catalog"
	"github.com/bizmodel-ai/backend/internal/models"
)

// Factors are the per-dimension match values, each in [0,1].
type Factors struct {
	Income        float64
	Timeline      float64
	Budget        float64
	Skills        float64
	Communication float64
	Creativity    float64
	Risk          float64
	Time          float64
	Motivation    float64
	WorkStyle     float64
}

const neutralFactor = 0.5

var neutral = Factors{
	Income:        neutralFactor,
	Timeline:      neutralFactor,
	Budget:        neutralFactor,
	Skills:        neutralFactor,
	Communication: neutralFactor,
	Creativity:    neutralFactor,
	Risk:          neutralFactor,
	Time:          neutralFactor,
	Motivation:    neutralFactor,
	WorkStyle:     neutralFactor,
}

// Weighted returns the weighted sum of the factors on a 0-100 scale.
func (f Factors) Weighted() float64 {
	return (f.Income*0.15 +
		f.Timeline*0.12 +
		f.Budget*0.10 +
		f.Skills*0.15 +
		f.Communication*0.12 +
		f.Creativity*0.10 +
		f.Risk*0.10 +
		f.Time*0.08 +
		f.Motivation*0.05 +
		f.WorkStyle*0.03) * 100
}

// Evaluate computes the factor values for one business model. Ids without
// a profile get a neutral 0.5 on every factor.
func Evaluate(id string, in Inputs) Factors {
	p, ok := profiles[id]
	if !ok {
		return neutral
	}

	comm := in.Communication
	if p.BrandFace {
		comm = in.BrandFaceComfort
	}

	return Factors{
		Income:        IncomeMatch(in.IncomeGoal, p.Income),
		Timeline:      TimelineMatch(in.Timeline, p.Timelines),
		Budget:        BudgetMatch(in.Budget, p.Budget),
		Skills:        SkillsMatch(in.TechSkills, p.Skills),
		Communication: OptionalSkillsMatch(comm, p.Communication),
		Creativity:    OptionalSkillsMatch(in.Creativity, p.Creativity),
		Risk:          RiskMatch(in.RiskTolerance, p.Risk),
		Time:          TimeMatch(in.WeeklyHours, p.Time),
		Motivation:    MotivationMatch(in.SelfMotivation, p.Motivation),
		WorkStyle:     WorkStyleMatch(in.WorkCollaboration, p.WorkStyles),
	}
}

// FitScore returns the 0-100 fit between the answers and a business model.
func FitScore(id string, answers *models.QuizAnswers) int {
	in := Resolve(answers)
	score := Evaluate(id, in).Weighted()

	if p, ok := profiles[id]; ok && p.CallHeavy && in.ClientCallsComfort == "no" {
		score -= CallPenalty
	}

	rounded := math.Round(score)
	if rounded < 0 {
		rounded = 0
	}
	if rounded > 100 {
		rounded = 100
	}
	return int(rounded)
}

// Rank scores every catalog entry and returns them best first. Equal
// scores keep catalog order.
func Rank(answers *models.QuizAnswers) []models.BusinessPath {
	paths := catalog.All()
	for i := range paths {
		paths[i].FitScore = FitScore(paths[i].ID, answers)
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].FitScore > paths[j].FitScore
	})
	return paths
}

// ── Factor functions ──────────────────────────────────────

func IncomeMatch(actual float64, b Band) float64 {
	if b.contains(actual) {
		return 1
	}
	if actual < b.Min {
		return math.Max(0, 1-(b.Min-actual)/b.Min)
	}
	return math.Max(0, 1-(actual-b.Max)/b.Max)
}

func TimelineMatch(actual string, preferred []string) float64 {
	if slices.Contains(preferred, actual) {
		return 1
	}
	return 0.3
}

func BudgetMatch(actual float64, b Band) float64 {
	if b.contains(actual) {
		return 1
	}
	if actual < b.Min {
		return math.Max(0, 1-(b.Min-actual)/(b.Min+1))
	}
	return math.Max(0, 1-(actual-b.Max)/(b.Max+1000))
}

func SkillsMatch(actual float64, b Band) float64 {
	if b.contains(actual) {
		return 1
	}
	if actual < b.Min {
		return math.Max(0, actual/b.Min)
	}
	return math.Max(0.8, 1-(actual-b.Max)/2)
}

// OptionalSkillsMatch is SkillsMatch for ratings the user may have skipped.
// Zero means unanswered and scores neutral.
func OptionalSkillsMatch(actual float64, b Band) float64 {
	if actual == 0 {
		return neutralFactor
	}
	return SkillsMatch(actual, b)
}

func RiskMatch(actual float64, b Band) float64 {
	if b.contains(actual) {
		return 1
	}
	if actual < b.Min {
		return math.Max(0, actual/b.Min)
	}
	return math.Max(0.7, 1-(actual-b.Max)/2)
}

func TimeMatch(actual float64, b Band) float64 {
	if b.contains(actual) {
		return 1
	}
	if actual < b.Min {
		return math.Max(0, actual/b.Min)
	}
	return math.Max(0.8, 1-(actual-b.Max)/b.Max)
}

// MotivationMatch never penalizes motivation above the band.
func MotivationMatch(actual float64, b Band) float64 {
	if actual >= b.Min {
		return 1
	}
	return math.Max(0, actual/b.Min)
}

func WorkStyleMatch(actual string, preferred []string) float64 {
	if actual == "" {
		return neutralFactor
	}
	if slices.Contains(preferred, actual) {
		return 1
	}
	return neutralFactor
}
