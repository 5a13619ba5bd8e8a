package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/apperr"
	"github.com/bizmodel-ai/backend/internal/llm"
	"github.com/bizmodel-ai/backend/internal/metrics"
	"github.com/bizmodel-ai/backend/internal/models"
	"github.com/bizmodel-ai/backend/internal/scoring"
)

const (
	narrativeTemperature = 0.7
	insightsMaxTokens    = 1000
	descriptionMaxTokens = 300
)

// InsightsWriter generates the free-text parts of the results page.
type InsightsWriter struct {
	llm llm.Client
	log *zap.Logger
}

func NewInsightsWriter(client llm.Client, log *zap.Logger) *InsightsWriter {
	return &InsightsWriter{llm: client, log: log}
}

// Insights writes three paragraphs about the user's fit with their top
// match. There is no deterministic version, so failures are upstream errors.
func (w *InsightsWriter) Insights(ctx context.Context, answers *models.QuizAnswers, top *models.BusinessPath) (string, error) {
	resp, err := w.llm.Complete(ctx, llm.Request{
		System:      InsightsSystemPrompt(),
		Prompt:      BuildInsightsPrompt(answers, top),
		Temperature: narrativeTemperature,
		MaxTokens:   insightsMaxTokens,
	})
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("insights", "error").Inc()
		return "", apperr.Upstream("Failed to generate personalized insights", err)
	}

	metrics.AnalysisTotal.WithLabelValues("insights", string(models.SourceAI)).Inc()
	return strings.TrimSpace(resp.Content), nil
}

// FitDescriptions writes a "why this fits you" text per match, in order.
// If any call fails every description falls back to the template.
func (w *InsightsWriter) FitDescriptions(ctx context.Context, answers *models.QuizAnswers, matches []models.BusinessPath) []models.FitDescription {
	out := make([]models.FitDescription, 0, len(matches))
	for i, m := range matches {
		resp, err := w.llm.Complete(ctx, llm.Request{
			System:      FitDescriptionSystemPrompt(),
			Prompt:      BuildFitDescriptionPrompt(answers, m, i+1),
			Temperature: narrativeTemperature,
			MaxTokens:   descriptionMaxTokens,
		})
		if err != nil {
			w.log.Warn("fit description generation failed, using templates",
				zap.String("business_model", m.ID), zap.Error(err))
			metrics.AnalysisTotal.WithLabelValues("descriptions", string(models.SourceFallback)).Inc()
			return FallbackDescriptions(answers, matches)
		}

		text := strings.TrimSpace(resp.Content)
		if text == "" {
			text = FallbackDescription(answers, i)
		}
		out = append(out, models.FitDescription{BusinessID: m.ID, Description: text})
	}

	metrics.AnalysisTotal.WithLabelValues("descriptions", string(models.SourceAI)).Inc()
	return out
}

func FallbackDescriptions(answers *models.QuizAnswers, matches []models.BusinessPath) []models.FitDescription {
	out := make([]models.FitDescription, 0, len(matches))
	for i, m := range matches {
		out = append(out, models.FitDescription{BusinessID: m.ID, Description: FallbackDescription(answers, i)})
	}
	return out
}

// FallbackDescription is the templated description for the match at index i.
func FallbackDescription(answers *models.QuizAnswers, i int) string {
	in := scoring.Resolve(answers)
	var a models.QuizAnswers
	if answers != nil {
		a = *answers
	}

	motivation := pick(in.SelfMotivation >= 4, "high self-motivation", "self-driven nature")
	skills := pick(in.TechSkills >= 4, "strong", "adequate")
	risk := pick(in.RiskTolerance >= 4, "high", "moderate")

	var match, closing string
	switch i {
	case 0:
		match = "perfect"
		closing = "As your top match, this path offers the best alignment with your goals and preferences."
	case 1:
		match = "excellent"
		closing = "This represents a strong secondary option that complements your primary strengths."
	default:
		match = "good"
		closing = "This provides a solid alternative path that matches your core capabilities."
	}

	return fmt.Sprintf(`This business model aligns well with your %s and %g hours/week availability. Your %s technical skills and %s risk tolerance make this a %s match for your entrepreneurial journey.

%s Your %s learning style and %s work preference make this business model particularly suitable for your success.`,
		motivation, in.WeeklyHours, skills, risk, match,
		closing, humanize(a.LearningPreference), humanize(a.WorkStructurePreference))
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func humanize(s string) string {
	if s == "" {
		return "chosen"
	}
	return strings.Replace(s, "-", " ", 1)
}
