package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/bizmodel-ai/backend/internal/catalog"
	"github.com/bizmodel-ai/backend/internal/llm"
	"github.com/bizmodel-ai/backend/internal/models"
)

var ErrEmptyResult = errors.New("model returned no usable results")

type generatedFit struct {
	TopMatches []generatedMatch `json:"topMatches"`
}

type generatedMatch struct {
	BusinessID string   `json:"businessId"`
	FitScore   float64  `json:"fitScore"`
	Reasoning  string   `json:"reasoning"`
	Strengths  []string `json:"strengths"`
	Challenges []string `json:"challenges"`
	Confidence float64  `json:"confidence"`
}

// ParseFitResponse maps the model's matches onto catalog entries. Unknown
// and repeated ids are dropped, scores are clamped to 0-100, and the result
// is ordered best first with ties in the model's order.
func ParseFitResponse(content string) ([]models.BusinessMatch, error) {
	var gen generatedFit
	if err := json.Unmarshal([]byte(llm.StripCodeFences(content)), &gen); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	seen := make(map[string]bool, len(gen.TopMatches))
	matches := make([]models.BusinessMatch, 0, len(gen.TopMatches))
	for _, m := range gen.TopMatches {
		id := strings.TrimSpace(m.BusinessID)
		path, ok := catalog.Lookup(id)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true

		score := clampRound(m.FitScore, 0, 100)
		path.FitScore = score
		matches = append(matches, models.BusinessMatch{
			BusinessPath: path,
			Analysis: models.FitAnalysis{
				FitScore:   score,
				Reasoning:  strings.TrimSpace(m.Reasoning),
				Strengths:  nonNil(m.Strengths),
				Challenges: nonNil(m.Challenges),
				Confidence: clampRound(m.Confidence, 0, 100),
			},
		})
	}

	if len(matches) == 0 {
		return nil, ErrEmptyResult
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Analysis.FitScore > matches[j].Analysis.FitScore
	})
	return matches, nil
}

type generatedSkills struct {
	SkillAssessments []models.SkillAssessment `json:"skillAssessments"`
}

// ParseSkillsResponse returns exactly one assessment per required skill, in
// the order asked. The first assessment with a known status wins for each
// skill; skills the model skipped get their FallbackSkills entry. Confidence
// is clamped to 1-10.
func ParseSkillsResponse(content string, requiredSkills []string) ([]models.SkillAssessment, error) {
	var gen generatedSkills
	if err := json.Unmarshal([]byte(llm.StripCodeFences(content)), &gen); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	byName := make(map[string]models.SkillAssessment, len(gen.SkillAssessments))
	for _, a := range gen.SkillAssessments {
		key := nameKey(a.Skill)
		if _, dup := byName[key]; dup || !a.Status.Valid() {
			continue
		}
		byName[key] = a
	}

	fallback := FallbackSkills(requiredSkills)
	out := make([]models.SkillAssessment, len(requiredSkills))
	matched := 0
	for i, skill := range requiredSkills {
		a, ok := byName[nameKey(skill)]
		if !ok {
			out[i] = fallback[i]
			continue
		}
		matched++
		a.Skill = skill
		a.Confidence = min(max(a.Confidence, 1), 10)
		out[i] = a
	}

	if matched == 0 {
		return nil, ErrEmptyResult
	}
	return out, nil
}

func nameKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clampRound(v float64, lo, hi int) int {
	v = math.Min(math.Max(v, float64(lo)), float64(hi))
	return int(math.Round(v))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
