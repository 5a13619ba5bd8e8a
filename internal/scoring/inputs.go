package scoring

import "github.com/bizmodel-ai/backend/internal/models"

// Defaults used when neither the current nor the legacy answer is present.
const (
	DefaultIncomeGoal     = 1000
	DefaultTimeline       = "3-6-months"
	DefaultBudget         = 0
	DefaultWeeklyHours    = 20
	DefaultTechSkills     = 3
	DefaultSelfMotivation = 3
	DefaultRiskTolerance  = 3
)

// Inputs are the quiz answers the scorer reads, with current names taking
// precedence over legacy ones. Communication and Creativity stay zero when
// unanswered; the factor functions treat zero as "no answer".
type Inputs struct {
	IncomeGoal         float64
	Timeline           string
	Budget             float64
	WeeklyHours        float64
	TechSkills         float64
	SelfMotivation     float64
	RiskTolerance      float64
	Communication      float64
	BrandFaceComfort   float64
	Creativity         float64
	WorkCollaboration  string
	ClientCallsComfort string
}

// Resolve reads the scorer inputs out of a quiz payload. A nil payload
// resolves to all defaults.
func Resolve(a *models.QuizAnswers) Inputs {
	if a == nil {
		a = &models.QuizAnswers{}
	}
	return Inputs{
		IncomeGoal:         floatOr(a.SuccessIncomeGoal, a.IncomeGoal, DefaultIncomeGoal),
		Timeline:           stringOr(a.FirstIncomeTimeline, a.TimeToFirstIncome, DefaultTimeline),
		Budget:             floatOr(a.UpfrontInvestment, a.StartupBudget, DefaultBudget),
		WeeklyHours:        floatOr(a.WeeklyTimeCommitment, a.TimeCommitment, DefaultWeeklyHours),
		TechSkills:         intOr(a.TechSkillsRating, a.TechnologyComfort, DefaultTechSkills),
		SelfMotivation:     intOr(a.SelfMotivationLevel, a.SelfMotivation, DefaultSelfMotivation),
		RiskTolerance:      intOr(a.RiskComfortLevel, a.RiskTolerance, DefaultRiskTolerance),
		Communication:      intOr(a.DirectCommunicationEnjoyment, nil, 0),
		BrandFaceComfort:   intOr(a.BrandFaceComfort, nil, 0),
		Creativity:         intOr(a.CreativeWorkEnjoyment, nil, 0),
		WorkCollaboration:  a.WorkCollaborationPreference,
		ClientCallsComfort: a.ClientCallsComfort,
	}
}

func floatOr(current, legacy *float64, def float64) float64 {
	if current != nil {
		return *current
	}
	if legacy != nil {
		return *legacy
	}
	return def
}

func intOr(current, legacy *int, def int) float64 {
	if current != nil {
		return float64(*current)
	}
	if legacy != nil {
		return float64(*legacy)
	}
	return float64(def)
}

func stringOr(current, legacy, def string) string {
	if current != "" {
		return current
	}
	if legacy != "" {
		return legacy
	}
	return def
}
