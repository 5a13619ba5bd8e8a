package models

// BusinessPath is a catalog entry. FitScore is only set on scored copies.
type BusinessPath struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	TimeToProfit    string `json:"timeToProfit"`
	StartupCost     string `json:"startupCost"`
	PotentialIncome string `json:"potentialIncome"`
	Difficulty      string `json:"difficulty"`
	Icon            string `json:"icon"`
	FitScore        int    `json:"fitScore"`
}

type FitAnalysis struct {
	FitScore   int      `json:"fitScore"`
	Reasoning  string   `json:"reasoning"`
	Strengths  []string `json:"strengths"`
	Challenges []string `json:"challenges"`
	Confidence int      `json:"confidence"`
}

type BusinessMatch struct {
	BusinessPath BusinessPath `json:"businessPath"`
	Analysis     FitAnalysis  `json:"analysis"`
}

// AnalysisSource tells the client whether a result came from the model,
// the cache, or the deterministic fallback.
type AnalysisSource string

const (
	SourceAI       AnalysisSource = "ai"
	SourceCache    AnalysisSource = "cache"
	SourceFallback AnalysisSource = "fallback"
)

type BusinessFitAnalysis struct {
	TopMatches []BusinessMatch `json:"topMatches"`
	Source     AnalysisSource  `json:"source"`
}

type MonthlyProjection struct {
	Month            string   `json:"month"`
	Income           int      `json:"income"`
	CumulativeIncome int      `json:"cumulativeIncome"`
	Milestones       []string `json:"milestones,omitempty"`
}

type IncomeProjection struct {
	MonthlyProjections     []MonthlyProjection `json:"monthlyProjections"`
	AverageTimeToProfit    string              `json:"averageTimeToProfit"`
	ProjectedYearOneIncome int                 `json:"projectedYearOneIncome"`
	KeyFactors             []string            `json:"keyFactors"`
	Assumptions            []string            `json:"assumptions"`
}

// ── API Request/Response Types ────────────────────────────

type InsightsRequest struct {
	QuizData        *QuizAnswers  `json:"quizData" validate:"required"`
	TopBusinessPath *BusinessPath `json:"topBusinessPath" validate:"required"`
}

type InsightsResponse struct {
	Insights string `json:"insights"`
}

type FitDescriptionsRequest struct {
	QuizData        *QuizAnswers   `json:"quizData" validate:"required"`
	BusinessMatches []BusinessPath `json:"businessMatches" validate:"required"`
}

type FitDescription struct {
	BusinessID  string `json:"businessId"`
	Description string `json:"description"`
}

type FitDescriptionsResponse struct {
	Descriptions []FitDescription `json:"descriptions"`
}

type ProjectionsRequest struct {
	BusinessID string `json:"businessId" validate:"required"`
}
