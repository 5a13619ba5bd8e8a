package models

type PersonalityTrait struct {
	Trait       string `json:"trait"`
	Score       int    `json:"score"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

type PersonalityAnalysis struct {
	Traits      []PersonalityTrait `json:"traits"`
	Summary     string             `json:"summary"`
	Strengths   []string           `json:"strengths"`
	GrowthAreas []string           `json:"growthAreas"`
	Source      AnalysisSource     `json:"source"`
}
