package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/llm"
	"github.com/bizmodel-ai/backend/internal/metrics"
	"github.com/bizmodel-ai/backend/internal/models"
)

const (
	personalityTemperature = 0.5
	personalityMaxTokens   = 1500

	neutralTraitScore = 50
)

type trait struct {
	name   string
	rating func(a *models.QuizAnswers) *int
	high   string
	low    string
}

var traits = []trait{
	{"Self-Motivation", func(a *models.QuizAnswers) *int { return firstInt(a.SelfMotivationLevel, a.SelfMotivation) },
		"You push forward without outside pressure", "You work best with external accountability"},
	{"Risk Tolerance", func(a *models.QuizAnswers) *int { return firstInt(a.RiskComfortLevel, a.RiskTolerance) },
		"You are comfortable betting on uncertain outcomes", "You prefer predictable, lower-risk moves"},
	{"Consistency", func(a *models.QuizAnswers) *int { return a.LongTermConsistency },
		"You keep showing up long after the novelty fades", "Sticking with one project for months is a stretch"},
	{"Resilience", func(a *models.QuizAnswers) *int { return a.DiscouragementResilience },
		"Setbacks rarely knock you off course", "Early setbacks can stall your momentum"},
	{"Organization", func(a *models.QuizAnswers) *int { return a.OrganizationLevel },
		"You keep systems and details in order", "Structure and tracking do not come naturally"},
	{"Adaptability", func(a *models.QuizAnswers) *int { return a.UncertaintyHandling },
		"You stay calm when plans change", "Ambiguity makes it hard for you to act"},
	{"Creativity", func(a *models.QuizAnswers) *int { return a.CreativeWorkEnjoyment },
		"You enjoy making things from scratch", "You prefer executing over inventing"},
	{"Communication", func(a *models.QuizAnswers) *int { return a.DirectCommunicationEnjoyment },
		"You like talking directly with people", "You prefer work with little direct contact"},
	{"Tech Comfort", func(a *models.QuizAnswers) *int { return firstInt(a.TechSkillsRating, a.TechnologyComfort) },
		"You pick up new tools quickly", "Technical setup is likely to slow you down"},
	{"Competitiveness", func(a *models.QuizAnswers) *int { return a.CompetitivenessLevel },
		"Competition energises you", "You would rather avoid head-to-head competition"},
}

// PersonalityAnalyzer profiles the entrepreneurial traits behind the quiz
// answers.
type PersonalityAnalyzer struct {
	llm llm.Client
	log *zap.Logger
}

func NewPersonalityAnalyzer(client llm.Client, log *zap.Logger) *PersonalityAnalyzer {
	return &PersonalityAnalyzer{llm: client, log: log}
}

// Analyze never fails: any model error yields FallbackPersonality.
func (p *PersonalityAnalyzer) Analyze(ctx context.Context, answers *models.QuizAnswers) models.PersonalityAnalysis {
	result, err := p.fromModel(ctx, answers)
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			p.log.Warn("AI personality analysis failed, using fallback", zap.Error(err))
		}
		metrics.AnalysisTotal.WithLabelValues("personality", string(models.SourceFallback)).Inc()
		return FallbackPersonality(answers)
	}

	metrics.AnalysisTotal.WithLabelValues("personality", string(models.SourceAI)).Inc()
	return result
}

func (p *PersonalityAnalyzer) fromModel(ctx context.Context, answers *models.QuizAnswers) (models.PersonalityAnalysis, error) {
	resp, err := p.llm.Complete(ctx, llm.Request{
		System:      PersonalitySystemPrompt(),
		Prompt:      BuildPersonalityPrompt(answers),
		Temperature: personalityTemperature,
		MaxTokens:   personalityMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return models.PersonalityAnalysis{}, fmt.Errorf("generate personality analysis: %w", err)
	}
	return ParsePersonalityResponse(resp.Content, answers)
}

// FallbackPersonality scores each trait from its 1-5 rating: 1 maps to 0 and
// 5 to 100. Unanswered ratings score 50.
func FallbackPersonality(answers *models.QuizAnswers) models.PersonalityAnalysis {
	if answers == nil {
		answers = &models.QuizAnswers{}
	}

	out := models.PersonalityAnalysis{
		Traits:      make([]models.PersonalityTrait, 0, len(traits)),
		Strengths:   []string{},
		GrowthAreas: []string{},
		Source:      models.SourceFallback,
	}
	for _, t := range traits {
		tr := fallbackTrait(t, answers)
		out.Traits = append(out.Traits, tr)
		switch tr.Level {
		case "High":
			out.Strengths = append(out.Strengths, t.name)
		case "Low":
			out.GrowthAreas = append(out.GrowthAreas, t.name)
		}
	}
	out.Summary = personalitySummary(out.Strengths, out.GrowthAreas)
	return out
}

func fallbackTrait(t trait, answers *models.QuizAnswers) models.PersonalityTrait {
	score := neutralTraitScore
	if r := t.rating(answers); r != nil {
		score = (min(max(*r, 1), 5) - 1) * 25
	}

	desc := "You sit in the middle on this trait"
	switch traitLevel(score) {
	case "High":
		desc = t.high
	case "Low":
		desc = t.low
	}
	return models.PersonalityTrait{Trait: t.name, Score: score, Level: traitLevel(score), Description: desc}
}

func traitLevel(score int) string {
	switch {
	case score >= 75:
		return "High"
	case score >= 50:
		return "Moderate"
	default:
		return "Low"
	}
}

func personalitySummary(strengths, growth []string) string {
	var b strings.Builder
	if len(strengths) > 0 {
		fmt.Fprintf(&b, "Your strongest traits are %s.", strings.ToLower(strings.Join(strengths, ", ")))
	} else {
		b.WriteString("Your profile is balanced, with no single trait standing out.")
	}
	if len(growth) > 0 {
		fmt.Fprintf(&b, " Building up %s will widen the business models that suit you.", strings.ToLower(strings.Join(growth, ", ")))
	}
	return b.String()
}

type generatedPersonality struct {
	Traits []struct {
		Trait       string  `json:"trait"`
		Score       float64 `json:"score"`
		Description string  `json:"description"`
	} `json:"traits"`
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	GrowthAreas []string `json:"growthAreas"`
}

// ParsePersonalityResponse returns one entry per known trait in a fixed
// order. The first score the model gives for a trait wins; traits it skipped
// take the rating-based value. Levels are always derived from the score.
func ParsePersonalityResponse(content string, answers *models.QuizAnswers) (models.PersonalityAnalysis, error) {
	var gen generatedPersonality
	if err := json.Unmarshal([]byte(llm.StripCodeFences(content)), &gen); err != nil {
		return models.PersonalityAnalysis{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if answers == nil {
		answers = &models.QuizAnswers{}
	}

	byName := make(map[string]models.PersonalityTrait, len(gen.Traits))
	for _, g := range gen.Traits {
		key := nameKey(g.Trait)
		if _, dup := byName[key]; dup {
			continue
		}
		byName[key] = models.PersonalityTrait{
			Score:       clampRound(g.Score, 0, 100),
			Description: strings.TrimSpace(g.Description),
		}
	}

	out := models.PersonalityAnalysis{
		Traits:      make([]models.PersonalityTrait, 0, len(traits)),
		Summary:     strings.TrimSpace(gen.Summary),
		Strengths:   nonNil(gen.Strengths),
		GrowthAreas: nonNil(gen.GrowthAreas),
		Source:      models.SourceAI,
	}
	matched := 0
	for _, t := range traits {
		tr, ok := byName[nameKey(t.name)]
		if !ok {
			out.Traits = append(out.Traits, fallbackTrait(t, answers))
			continue
		}
		matched++
		tr.Trait = t.name
		tr.Level = traitLevel(tr.Score)
		if tr.Description == "" {
			tr.Description = fallbackTrait(t, answers).Description
		}
		out.Traits = append(out.Traits, tr)
	}

	if matched == 0 || out.Summary == "" {
		return models.PersonalityAnalysis{}, ErrEmptyResult
	}
	return out, nil
}
