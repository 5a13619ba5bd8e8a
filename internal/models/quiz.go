package models

import "time"

// QuizAnswers is the questionnaire payload. Every field is optional; the
// legacy names are still sent by older clients and are read as fallbacks.
type QuizAnswers struct {
	MainMotivation               string   `json:"mainMotivation,omitempty"`
	FirstIncomeTimeline          string   `json:"firstIncomeTimeline,omitempty"`
	SuccessIncomeGoal            *float64 `json:"successIncomeGoal,omitempty" validate:"omitempty,min=0"`
	UpfrontInvestment            *float64 `json:"upfrontInvestment,omitempty" validate:"omitempty,min=0"`
	PassionIdentityAlignment     *int     `json:"passionIdentityAlignment,omitempty" validate:"omitempty,min=1,max=5"`
	BusinessExitPlan             string   `json:"businessExitPlan,omitempty"`
	BusinessGrowthSize           string   `json:"businessGrowthSize,omitempty"`
	PassiveIncomeImportance      *int     `json:"passiveIncomeImportance,omitempty" validate:"omitempty,min=1,max=5"`
	WeeklyTimeCommitment         *float64 `json:"weeklyTimeCommitment,omitempty" validate:"omitempty,min=0,max=168"`
	LongTermConsistency          *int     `json:"longTermConsistency,omitempty" validate:"omitempty,min=1,max=5"`
	TrialErrorComfort            *int     `json:"trialErrorComfort,omitempty" validate:"omitempty,min=1,max=5"`
	LearningPreference           string   `json:"learningPreference,omitempty"`
	SystemsRoutinesEnjoyment     *int     `json:"systemsRoutinesEnjoyment,omitempty" validate:"omitempty,min=1,max=5"`
	DiscouragementResilience     *int     `json:"discouragementResilience,omitempty" validate:"omitempty,min=1,max=5"`
	ToolLearningWillingness      string   `json:"toolLearningWillingness,omitempty"`
	OrganizationLevel            *int     `json:"organizationLevel,omitempty" validate:"omitempty,min=1,max=5"`
	SelfMotivationLevel          *int     `json:"selfMotivationLevel,omitempty" validate:"omitempty,min=1,max=5"`
	UncertaintyHandling          *int     `json:"uncertaintyHandling,omitempty" validate:"omitempty,min=1,max=5"`
	RepetitiveTasksFeeling       string   `json:"repetitiveTasksFeeling,omitempty"`
	WorkCollaborationPreference  string   `json:"workCollaborationPreference,omitempty"`
	BrandFaceComfort             *int     `json:"brandFaceComfort,omitempty" validate:"omitempty,min=1,max=5"`
	CompetitivenessLevel         *int     `json:"competitivenessLevel,omitempty" validate:"omitempty,min=1,max=5"`
	CreativeWorkEnjoyment        *int     `json:"creativeWorkEnjoyment,omitempty" validate:"omitempty,min=1,max=5"`
	DirectCommunicationEnjoyment *int     `json:"directCommunicationEnjoyment,omitempty" validate:"omitempty,min=1,max=5"`
	WorkStructurePreference      string   `json:"workStructurePreference,omitempty"`
	TechSkillsRating             *int     `json:"techSkillsRating,omitempty" validate:"omitempty,min=1,max=5"`
	FamiliarTools                []string `json:"familiarTools,omitempty"`
	DecisionMakingStyle          string   `json:"decisionMakingStyle,omitempty"`
	RiskComfortLevel             *int     `json:"riskComfortLevel,omitempty" validate:"omitempty,min=1,max=5"`
	ClientCallsComfort           string   `json:"clientCallsComfort,omitempty"`

	// Legacy field names.
	IncomeGoal        *float64 `json:"incomeGoal,omitempty" validate:"omitempty,min=0"`
	TimeToFirstIncome string   `json:"timeToFirstIncome,omitempty"`
	StartupBudget     *float64 `json:"startupBudget,omitempty" validate:"omitempty,min=0"`
	TimeCommitment    *float64 `json:"timeCommitment,omitempty" validate:"omitempty,min=0,max=168"`
	TechnologyComfort *int     `json:"technologyComfort,omitempty" validate:"omitempty,min=1,max=5"`
	SelfMotivation    *int     `json:"selfMotivation,omitempty" validate:"omitempty,min=1,max=5"`
	RiskTolerance     *int     `json:"riskTolerance,omitempty" validate:"omitempty,min=1,max=5"`
}

// QuizAttempt is an append-only record of a submitted questionnaire.
type QuizAttempt struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	QuizData    QuizAnswers `json:"quizData"`
	CompletedAt time.Time   `json:"completedAt"`
}

// ── API Request/Response Types ────────────────────────────

type QuizDataRequest struct {
	QuizData *QuizAnswers `json:"quizData" validate:"required"`
}

type QuizAttemptRequest struct {
	UserID   int64        `json:"userId" validate:"required,gt=0"`
	QuizData *QuizAnswers `json:"quizData" validate:"required"`
}

type QuizAttemptResponse struct {
	Success   bool   `json:"success"`
	AttemptID int64  `json:"attemptId"`
	Message   string `json:"message"`
}

type RetakeStatusResponse struct {
	State                string `json:"state"`
	CanRetake            bool   `json:"canRetake"`
	AttemptsCount        int    `json:"attemptsCount"`
	HasAccessPass        bool   `json:"hasAccessPass"`
	QuizRetakesRemaining int    `json:"quizRetakesRemaining"`
	TotalQuizRetakesUsed int    `json:"totalQuizRetakesUsed"`
	IsFirstQuiz          bool   `json:"isFirstQuiz"`
	IsFreeQuizUsed       bool   `json:"isFreeQuizUsed"`
	IsGuestUser          bool   `json:"isGuestUser"`
}
