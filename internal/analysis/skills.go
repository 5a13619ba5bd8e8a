package analysis

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/llm"
	"github.com/bizmodel-ai/backend/internal/metrics"
	"github.com/bizmodel-ai/backend/internal/models"
)

const (
	skillsTemperature = 0.7
	skillsMaxTokens   = 2048
)

// SkillsAnalyzer classifies the skills a business model needs into
// have / working-on / need.
type SkillsAnalyzer struct {
	llm llm.Client
	log *zap.Logger
}

func NewSkillsAnalyzer(client llm.Client, log *zap.Logger) *SkillsAnalyzer {
	return &SkillsAnalyzer{llm: client, log: log}
}

// Analyze never fails: any model error yields FallbackSkills.
func (s *SkillsAnalyzer) Analyze(ctx context.Context, answers *models.QuizAnswers, requiredSkills []string, businessModel string) models.SkillsAnalysis {
	if len(requiredSkills) == 0 {
		return models.SkillsAnalysis{SkillAssessments: []models.SkillAssessment{}, Source: models.SourceFallback}
	}

	assessments, err := s.fromModel(ctx, answers, requiredSkills, businessModel)
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			s.log.Warn("AI skills analysis failed, using fallback",
				zap.String("business_model", businessModel), zap.Error(err))
		}
		metrics.AnalysisTotal.WithLabelValues("skills", string(models.SourceFallback)).Inc()
		return models.SkillsAnalysis{SkillAssessments: FallbackSkills(requiredSkills), Source: models.SourceFallback}
	}

	metrics.AnalysisTotal.WithLabelValues("skills", string(models.SourceAI)).Inc()
	return models.SkillsAnalysis{SkillAssessments: assessments, Source: models.SourceAI}
}

func (s *SkillsAnalyzer) fromModel(ctx context.Context, answers *models.QuizAnswers, requiredSkills []string, businessModel string) ([]models.SkillAssessment, error) {
	resp, err := s.llm.Complete(ctx, llm.Request{
		System:      SkillsSystemPrompt(),
		Prompt:      BuildSkillsPrompt(answers, requiredSkills, businessModel),
		Temperature: skillsTemperature,
		MaxTokens:   skillsMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate skills analysis: %w", err)
	}
	return ParseSkillsResponse(resp.Content, requiredSkills)
}

var fallbackBuckets = [3]struct {
	status     models.SkillStatus
	confidence int
	reasoning  string
}{
	{models.SkillHave, 7, "Based on your quiz responses, you show strong aptitude for this skill"},
	{models.SkillWorkingOn, 6, "You have some experience but could benefit from further development"},
	{models.SkillNeed, 8, "This skill would need to be developed for optimal success"},
}

// FallbackSkills splits the skills positionally: the first ceil(n/3) are
// "have", the next ceil(n/3) "working-on" and the rest "need".
func FallbackSkills(requiredSkills []string) []models.SkillAssessment {
	n := len(requiredSkills)
	third := (n + 2) / 3

	out := make([]models.SkillAssessment, 0, n)
	for i, skill := range requiredSkills {
		b := fallbackBuckets[min(i/third, 2)]
		out = append(out, models.SkillAssessment{
			Skill:      skill,
			Status:     b.status,
			Confidence: b.confidence,
			Reasoning:  b.reasoning,
		})
	}
	return out
}
