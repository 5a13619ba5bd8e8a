package models

type SkillStatus string

const (
	SkillHave      SkillStatus = "have"
	SkillWorkingOn SkillStatus = "working-on"
	SkillNeed      SkillStatus = "need"
)

// Valid reports whether s is one of the three assessment buckets.
func (s SkillStatus) Valid() bool {
	return s == SkillHave || s == SkillWorkingOn || s == SkillNeed
}

type SkillAssessment struct {
	Skill      string      `json:"skill"`
	Status     SkillStatus `json:"status"`
	Confidence int         `json:"confidence"`
	Reasoning  string      `json:"reasoning"`
}

type SkillsAnalysis struct {
	SkillAssessments []SkillAssessment `json:"skillAssessments"`
	Source           AnalysisSource    `json:"source"`
}

type AnalyzeSkillsRequest struct {
	QuizData       *QuizAnswers `json:"quizData" validate:"required"`
	RequiredSkills []string     `json:"requiredSkills" validate:"required"`
	BusinessModel  string       `json:"businessModel" validate:"required"`
}
