// Package analysis produces the business-fit, skills and narrative analyses
// shown on the results dashboard. Every analysis with a deterministic
// counterpart falls back to it when the model call fails.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/catalog"
	"github.com/bizmodel-ai/backend/internal/llm"
	"github.com/bizmodel-ai/backend/internal/metrics"
	"github.com/bizmodel-ai/backend/internal/models"
	"github.com/bizmodel-ai/backend/internal/scoring"
)

const (
	fitTemperature     = 0.3
	fitMaxTokens       = 4096
	fallbackConfidence = 60
	maxReasons         = 3
)

// FitAnalyzer ranks the catalog for a set of answers, preferring a cached
// or fresh model analysis over the deterministic scorer.
type FitAnalyzer struct {
	llm   llm.Client
	cache Cache
	log   *zap.Logger
}

func NewFitAnalyzer(client llm.Client, cache Cache, log *zap.Logger) *FitAnalyzer {
	if cache == nil {
		cache = NopCache{}
	}
	return &FitAnalyzer{llm: client, cache: cache, log: log}
}

// Analyze never fails: model and cache errors degrade to the deterministic ranking.
func (a *FitAnalyzer) Analyze(ctx context.Context, answers *models.QuizAnswers) models.BusinessFitAnalysis {
	key := CacheKey(answers)

	cached, err := a.cache.Get(ctx, key)
	switch {
	case err == nil:
		cached.Source = models.SourceCache
		metrics.AnalysisTotal.WithLabelValues("fit", string(models.SourceCache)).Inc()
		return *cached
	case !errors.Is(err, ErrCacheMiss):
		a.log.Warn("fit analysis cache read failed", zap.Error(err))
	}

	matches, err := a.fromModel(ctx, answers)
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			a.log.Warn("AI fit analysis failed, using deterministic scoring", zap.Error(err))
		}
		metrics.AnalysisTotal.WithLabelValues("fit", string(models.SourceFallback)).Inc()
		return Fallback(answers)
	}

	result := models.BusinessFitAnalysis{TopMatches: matches, Source: models.SourceAI}
	if err := a.cache.Set(ctx, key, &result); err != nil {
		a.log.Warn("fit analysis cache write failed", zap.Error(err))
	}
	metrics.AnalysisTotal.WithLabelValues("fit", string(models.SourceAI)).Inc()
	return result
}

// Deterministic is the plain scorer ranking, best first.
func (a *FitAnalyzer) Deterministic(answers *models.QuizAnswers) []models.BusinessPath {
	return scoring.Rank(answers)
}

func (a *FitAnalyzer) fromModel(ctx context.Context, answers *models.QuizAnswers) ([]models.BusinessMatch, error) {
	resp, err := a.llm.Complete(ctx, llm.Request{
		System:      FitSystemPrompt(),
		Prompt:      BuildFitPrompt(answers),
		Temperature: fitTemperature,
		MaxTokens:   fitMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate fit analysis: %w", err)
	}

	matches, err := ParseFitResponse(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse fit analysis: %w", err)
	}
	return matches, nil
}

// Fallback builds the analysis from the deterministic ranking. Its order is
// exactly scoring.Rank's.
func Fallback(answers *models.QuizAnswers) models.BusinessFitAnalysis {
	ranked := scoring.Rank(answers)
	in := scoring.Resolve(answers)

	matches := make([]models.BusinessMatch, 0, len(ranked))
	for _, p := range ranked {
		matches = append(matches, models.BusinessMatch{
			BusinessPath: p,
			Analysis:     fallbackAnalysis(p, scoring.Evaluate(p.ID, in)),
		})
	}
	return models.BusinessFitAnalysis{TopMatches: matches, Source: models.SourceFallback}
}

type factorNote struct {
	value     float64
	strength  string
	challenge string
}

func factorNotes(f scoring.Factors) []factorNote {
	return []factorNote{
		{f.Income, "Your income goal sits in the range this model usually earns", "Your income goal is outside what this model usually earns"},
		{f.Skills, "Your technical skills suit the day-to-day work", "The technical side will take extra learning"},
		{f.Timeline, "Your timeline matches how long this model takes to pay off", "This model usually takes a different amount of time to pay off than you want"},
		{f.Communication, "Your communication style suits the work", "The amount of communication required may not suit you"},
		{f.Budget, "Your budget covers the usual startup costs", "Your budget does not match the usual startup costs"},
		{f.Creativity, "You enjoy the creative side of this work", "The creative demands may not match your interests"},
		{f.Risk, "Your risk tolerance fits the uncertainty involved", "The level of risk may be uncomfortable for you"},
		{f.Time, "You have enough weekly hours to make progress", "Your weekly hours are outside what this model needs"},
		{f.Motivation, "You have the self-motivation this model demands", "This model needs more self-motivation than you reported"},
		{f.WorkStyle, "The way you like to work fits this model", "The working style may not match your preference"},
	}
}

func fallbackAnalysis(p models.BusinessPath, f scoring.Factors) models.FitAnalysis {
	strengths := []string{}
	challenges := []string{}
	for _, n := range factorNotes(f) {
		switch {
		case n.value >= 1 && len(strengths) < maxReasons:
			strengths = append(strengths, n.strength)
		case n.value < 0.6 && len(challenges) < maxReasons:
			challenges = append(challenges, n.challenge)
		}
	}

	reasoning := fmt.Sprintf("%s is a %s for you with a score of %d/100, based on how your goals, budget and working style line up with what this model usually demands.",
		p.Name, strings.ToLower(catalog.FitLabel(p.FitScore)), p.FitScore)

	return models.FitAnalysis{
		FitScore:   p.FitScore,
		Reasoning:  reasoning,
		Strengths:  strengths,
		Challenges: challenges,
		Confidence: fallbackConfidence,
	}
}
