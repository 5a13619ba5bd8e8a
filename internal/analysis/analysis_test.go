package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/llm"
	"github.com/bizmodel-ai/backend/internal/models"
	"github.com/bizmodel-ai/backend/internal/scoring"
)

// ── test doubles ──────────────────────────────────────────

type stubLLM struct {
	content string
	err     error
	calls   int
	reqs    []llm.Request
}

func (s *stubLLM) Complete(_ context.Context, req llm.Request) (*llm.Response, error) {
	s.calls++
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Content: s.content}, nil
}

type memCache struct {
	data map[string]models.BusinessFitAnalysis
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: map[string]models.BusinessFitAnalysis{}}
}

func (c *memCache) Get(_ context.Context, key string) (*models.BusinessFitAnalysis, error) {
	v, ok := c.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return &v, nil
}

func (c *memCache) Set(_ context.Context, key string, v *models.BusinessFitAnalysis) error {
	c.sets++
	c.data[key] = *v
	return nil
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func sampleAnswers() *models.QuizAnswers {
	return &models.QuizAnswers{
		SuccessIncomeGoal:            floatp(5000),
		FirstIncomeTimeline:          "1-3-months",
		UpfrontInvestment:            floatp(300),
		TechSkillsRating:             intp(4),
		SelfMotivationLevel:          intp(5),
		RiskComfortLevel:             intp(4),
		DirectCommunicationEnjoyment: intp(5),
		LearningPreference:           "hands-on",
		WorkStructurePreference:      "some-structure",
	}
}

const aiFitJSON = "```json\n" + `{
  "topMatches": [
    {"businessId": "affiliate-marketing", "fitScore": 71, "reasoning": "ok", "strengths": ["a"], "challenges": ["b"], "confidence": 80},
    {"businessId": "lemonade-stand", "fitScore": 99, "reasoning": "not in catalog"},
    {"businessId": "freelancing", "fitScore": 140, "reasoning": "great", "confidence": 300},
    {"businessId": "freelancing", "fitScore": 10, "reasoning": "duplicate"},
    {"businessId": "high-ticket-sales", "fitScore": 71, "reasoning": "tie", "confidence": -5}
  ]
}` + "\n```"

// ── fit analysis ──────────────────────────────────────────

func TestFallbackMatchesDeterministicRanking(t *testing.T) {
	a := sampleAnswers()
	stub := &stubLLM{err: errors.New("connection refused")}
	fa := NewFitAnalyzer(stub, nil, zap.NewNop())

	got := fa.Analyze(context.Background(), a)
	want := scoring.Rank(a)

	if got.Source != models.SourceFallback {
		t.Errorf("source = %s, want fallback", got.Source)
	}
	if len(got.TopMatches) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got.TopMatches), len(want))
	}
	for i := range want {
		m := got.TopMatches[i]
		if m.BusinessPath.ID != want[i].ID || m.BusinessPath.FitScore != want[i].FitScore {
			t.Errorf("rank %d = %s(%d), want %s(%d)", i, m.BusinessPath.ID, m.BusinessPath.FitScore, want[i].ID, want[i].FitScore)
		}
		if m.Analysis.FitScore != m.BusinessPath.FitScore {
			t.Errorf("rank %d analysis score %d != path score %d", i, m.Analysis.FitScore, m.BusinessPath.FitScore)
		}
		if m.Analysis.Reasoning == "" {
			t.Errorf("rank %d has empty reasoning", i)
		}
	}
	if stub.calls != 1 {
		t.Errorf("llm called %d times, want exactly 1 (no retry)", stub.calls)
	}
}

func TestFallbackOnMalformedResponse(t *testing.T) {
	for _, content := range []string{"not json", `{"topMatches":[]}`, `{"topMatches":[{"businessId":"nope","fitScore":50}]}`} {
		fa := NewFitAnalyzer(&stubLLM{content: content}, nil, zap.NewNop())
		got := fa.Analyze(context.Background(), sampleAnswers())
		if got.Source != models.SourceFallback {
			t.Errorf("content %q: source = %s, want fallback", content, got.Source)
		}
	}
}

func TestAnalyzeUsesModelAndCaches(t *testing.T) {
	cache := newMemCache()
	stub := &stubLLM{content: aiFitJSON}
	fa := NewFitAnalyzer(stub, cache, zap.NewNop())
	a := sampleAnswers()

	got := fa.Analyze(context.Background(), a)
	if got.Source != models.SourceAI {
		t.Fatalf("source = %s, want ai", got.Source)
	}

	ids := make([]string, 0, len(got.TopMatches))
	for _, m := range got.TopMatches {
		ids = append(ids, m.BusinessPath.ID)
	}
	if strings.Join(ids, ",") != "freelancing,affiliate-marketing,high-ticket-sales" {
		t.Errorf("ranked ids = %v", ids)
	}
	if got.TopMatches[0].Analysis.FitScore != 100 || got.TopMatches[0].Analysis.Confidence != 100 {
		t.Errorf("top match not clamped: %+v", got.TopMatches[0].Analysis)
	}
	if got.TopMatches[2].Analysis.Confidence != 0 {
		t.Errorf("negative confidence not clamped: %d", got.TopMatches[2].Analysis.Confidence)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}

	again := fa.Analyze(context.Background(), a)
	if again.Source != models.SourceCache {
		t.Errorf("second call source = %s, want cache", again.Source)
	}
	if stub.calls != 1 {
		t.Errorf("llm called %d times, want 1", stub.calls)
	}
}

func TestFallbackResultsAreNotCached(t *testing.T) {
	cache := newMemCache()
	fa := NewFitAnalyzer(llm.DisabledClient{}, cache, zap.NewNop())
	fa.Analyze(context.Background(), sampleAnswers())
	if cache.sets != 0 {
		t.Errorf("fallback was cached (%d sets)", cache.sets)
	}
}

func TestCacheKeyDependsOnAnswers(t *testing.T) {
	a, b := sampleAnswers(), sampleAnswers()
	if CacheKey(a) != CacheKey(b) {
		t.Error("identical answers produced different keys")
	}
	b.ClientCallsComfort = "no"
	if CacheKey(a) == CacheKey(b) {
		t.Error("different answers produced the same key")
	}
	if !strings.HasPrefix(CacheKey(a), cacheKeyPrefix) {
		t.Errorf("key %q missing prefix", CacheKey(a))
	}
}

// ── skills ────────────────────────────────────────────────

func TestFallbackSkillsPartition(t *testing.T) {
	for n := 0; n <= 10; n++ {
		skills := make([]string, n)
		for i := range skills {
			skills[i] = fmt.Sprintf("skill-%d", i)
		}

		got := FallbackSkills(skills)
		if len(got) != n {
			t.Fatalf("n=%d: got %d assessments", n, len(got))
		}

		third := (n + 2) / 3
		for i, a := range got {
			if a.Skill != skills[i] {
				t.Errorf("n=%d: position %d = %s, want %s", n, i, a.Skill, skills[i])
			}
			var want models.SkillStatus
			var conf int
			switch {
			case i < third:
				want, conf = models.SkillHave, 7
			case i < 2*third:
				want, conf = models.SkillWorkingOn, 6
			default:
				want, conf = models.SkillNeed, 8
			}
			if a.Status != want || a.Confidence != conf {
				t.Errorf("n=%d: skill %d = %s/%d, want %s/%d", n, i, a.Status, a.Confidence, want, conf)
			}
		}
	}
}

func TestFallbackSkillsSizes(t *testing.T) {
	tests := []struct {
		n                     int
		have, working, needed int
	}{
		{1, 1, 0, 0},
		{2, 1, 1, 0},
		{4, 2, 2, 0},
		{5, 2, 2, 1},
		{6, 2, 2, 2},
		{7, 3, 3, 1},
	}

	for _, tt := range tests {
		counts := map[models.SkillStatus]int{}
		for _, a := range FallbackSkills(make([]string, tt.n)) {
			counts[a.Status]++
		}
		if counts[models.SkillHave] != tt.have || counts[models.SkillWorkingOn] != tt.working || counts[models.SkillNeed] != tt.needed {
			t.Errorf("FallbackSkills(%d) = %v, want %d/%d/%d", tt.n, counts, tt.have, tt.working, tt.needed)
		}
	}
}

func TestSkillsAnalyzer(t *testing.T) {
	skills := []string{"SEO", "Copywriting", "Analytics"}

	stub := &stubLLM{content: `{"skillAssessments":[
		{"skill":"SEO","status":"have","confidence":12,"reasoning":"r"},
		{"skill":"copywriting","status":"maybe","confidence":5,"reasoning":"bad status"},
		{"skill":"Knitting","status":"need","confidence":5,"reasoning":"not asked"},
		{"skill":"Analytics","status":"need","confidence":0,"reasoning":"r"}
	]}`}
	got := NewSkillsAnalyzer(stub, zap.NewNop()).Analyze(context.Background(), sampleAnswers(), skills, "Affiliate Marketing")
	if got.Source != models.SourceAI {
		t.Fatalf("source = %s, want ai", got.Source)
	}
	if len(got.SkillAssessments) != 3 {
		t.Fatalf("got %d assessments, want 3: %+v", len(got.SkillAssessments), got.SkillAssessments)
	}
	if got.SkillAssessments[0].Confidence != 10 || got.SkillAssessments[2].Confidence != 1 {
		t.Errorf("confidence not clamped: %+v", got.SkillAssessments)
	}
	if c := got.SkillAssessments[1]; c.Skill != "Copywriting" || c.Status != models.SkillWorkingOn {
		t.Errorf("invalid status not replaced by fallback: %+v", c)
	}
	if stub.reqs[0].Temperature != skillsTemperature || !stub.reqs[0].JSON {
		t.Errorf("request = %+v", stub.reqs[0])
	}

	failing := NewSkillsAnalyzer(&stubLLM{err: errors.New("timeout")}, zap.NewNop())
	fb := failing.Analyze(context.Background(), sampleAnswers(), skills, "Affiliate Marketing")
	if fb.Source != models.SourceFallback || len(fb.SkillAssessments) != 3 {
		t.Errorf("fallback = %+v", fb)
	}
}

func TestSkillsAnalyzerClassifiesEachSkillOnce(t *testing.T) {
	skills := []string{"SEO", "Copywriting", "Sales"}
	stub := &stubLLM{content: `{"skillAssessments":[
		{"skill":"SEO","status":"have","confidence":8,"reasoning":"first"},
		{"skill":" seo ","status":"need","confidence":3,"reasoning":"second"},
		{"skill":"Sales","status":"need","confidence":4,"reasoning":"r"}
	]}`}

	got := NewSkillsAnalyzer(stub, zap.NewNop()).Analyze(context.Background(), sampleAnswers(), skills, "Freelancing")
	if got.Source != models.SourceAI {
		t.Fatalf("source = %s, want ai", got.Source)
	}
	if len(got.SkillAssessments) != len(skills) {
		t.Fatalf("got %d assessments, want %d: %+v", len(got.SkillAssessments), len(skills), got.SkillAssessments)
	}

	want := []struct {
		skill  string
		status models.SkillStatus
	}{
		{"SEO", models.SkillHave},
		{"Copywriting", models.SkillWorkingOn},
		{"Sales", models.SkillNeed},
	}
	for i, w := range want {
		a := got.SkillAssessments[i]
		if a.Skill != w.skill || a.Status != w.status {
			t.Errorf("assessment %d = %s/%s, want %s/%s", i, a.Skill, a.Status, w.skill, w.status)
		}
	}
	if got.SkillAssessments[0].Reasoning != "first" {
		t.Errorf("duplicate overrode first assessment: %+v", got.SkillAssessments[0])
	}
}

func TestSkillsAnalyzerNoUsableAssessments(t *testing.T) {
	skills := []string{"SEO", "Sales"}
	stub := &stubLLM{content: `{"skillAssessments":[{"skill":"Knitting","status":"have","confidence":5}]}`}

	got := NewSkillsAnalyzer(stub, zap.NewNop()).Analyze(context.Background(), sampleAnswers(), skills, "Freelancing")
	if got.Source != models.SourceFallback || len(got.SkillAssessments) != 2 {
		t.Errorf("analysis = %+v, want full fallback", got)
	}
}

// ── personality ───────────────────────────────────────────

func TestFallbackPersonality(t *testing.T) {
	a := sampleAnswers()
	a.OrganizationLevel = intp(1)

	got := FallbackPersonality(a)
	if got.Source != models.SourceFallback || len(got.Traits) != len(traits) {
		t.Fatalf("got %d traits from %s, want %d from fallback", len(got.Traits), got.Source, len(traits))
	}

	want := map[string]struct {
		score int
		level string
	}{
		"Self-Motivation": {100, "High"},
		"Risk Tolerance":  {75, "High"},
		"Organization":    {0, "Low"},
		"Consistency":     {50, "Moderate"},
	}
	for _, tr := range got.Traits {
		w, ok := want[tr.Trait]
		if !ok {
			continue
		}
		if tr.Score != w.score || tr.Level != w.level {
			t.Errorf("%s = %d/%s, want %d/%s", tr.Trait, tr.Score, tr.Level, w.score, w.level)
		}
	}

	if len(got.Strengths) == 0 || got.Strengths[0] != "Self-Motivation" {
		t.Errorf("strengths = %v", got.Strengths)
	}
	if len(got.GrowthAreas) != 1 || got.GrowthAreas[0] != "Organization" {
		t.Errorf("growth areas = %v, want [Organization]", got.GrowthAreas)
	}
	if !strings.Contains(got.Summary, "self-motivation") {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestPersonalityFromModel(t *testing.T) {
	stub := &stubLLM{content: `{
		"traits": [
			{"trait": "resilience", "score": 130, "description": "first"},
			{"trait": "Resilience", "score": 10, "description": "second"},
			{"trait": "Charisma", "score": 90, "description": "unknown"},
			{"trait": "Creativity", "score": 20}
		],
		"summary": "Driven and steady.",
		"strengths": ["Grit"]
	}`}

	got := NewPersonalityAnalyzer(stub, zap.NewNop()).Analyze(context.Background(), sampleAnswers())
	if got.Source != models.SourceAI {
		t.Fatalf("source = %s, want ai", got.Source)
	}
	if len(got.Traits) != len(traits) {
		t.Fatalf("got %d traits, want %d", len(got.Traits), len(traits))
	}
	for i, tr := range got.Traits {
		if tr.Trait != traits[i].name {
			t.Errorf("trait %d = %s, want %s", i, tr.Trait, traits[i].name)
		}
		switch tr.Trait {
		case "Resilience":
			if tr.Score != 100 || tr.Level != "High" || tr.Description != "first" {
				t.Errorf("resilience = %+v, want first entry clamped to 100", tr)
			}
		case "Creativity":
			if tr.Score != 20 || tr.Level != "Low" || tr.Description == "" {
				t.Errorf("creativity = %+v", tr)
			}
		case "Self-Motivation":
			if tr.Score != 100 {
				t.Errorf("skipped trait not scored from rating: %+v", tr)
			}
		}
	}
	if got.GrowthAreas == nil || got.Strengths[0] != "Grit" {
		t.Errorf("lists = %v / %v", got.Strengths, got.GrowthAreas)
	}
	if stub.reqs[0].Temperature != personalityTemperature || !stub.reqs[0].JSON {
		t.Errorf("request = %+v", stub.reqs[0])
	}
}

func TestPersonalityFallsBack(t *testing.T) {
	for name, stub := range map[string]*stubLLM{
		"error":      {err: errors.New("timeout")},
		"no traits":  {content: `{"traits":[{"trait":"Charisma","score":90}],"summary":"x"}`},
		"no summary": {content: `{"traits":[{"trait":"Creativity","score":90}]}`},
		"malformed":  {content: "not json"},
	} {
		got := NewPersonalityAnalyzer(stub, zap.NewNop()).Analyze(context.Background(), sampleAnswers())
		if got.Source != models.SourceFallback || len(got.Traits) != len(traits) {
			t.Errorf("%s: analysis = %+v, want fallback", name, got)
		}
	}
}

// ── narrative ─────────────────────────────────────────────

func TestInsightsHasNoFallback(t *testing.T) {
	w := NewInsightsWriter(&stubLLM{err: errors.New("boom")}, zap.NewNop())
	top := &models.BusinessPath{ID: "freelancing", Name: "Freelancing", FitScore: 93}
	if _, err := w.Insights(context.Background(), sampleAnswers(), top); err == nil {
		t.Fatal("expected error when model fails")
	}

	ok := NewInsightsWriter(&stubLLM{content: "  Three paragraphs.  "}, zap.NewNop())
	text, err := ok.Insights(context.Background(), sampleAnswers(), top)
	if err != nil || text != "Three paragraphs." {
		t.Errorf("Insights() = %q, %v", text, err)
	}
}

func TestFitDescriptionsFallback(t *testing.T) {
	matches := []models.BusinessPath{{ID: "freelancing"}, {ID: "affiliate-marketing"}, {ID: "print-on-demand"}}
	w := NewInsightsWriter(&stubLLM{err: errors.New("boom")}, zap.NewNop())

	got := w.FitDescriptions(context.Background(), sampleAnswers(), matches)
	if len(got) != 3 {
		t.Fatalf("got %d descriptions, want 3", len(got))
	}
	for i, d := range got {
		if d.BusinessID != matches[i].ID {
			t.Errorf("description %d for %s, want %s", i, d.BusinessID, matches[i].ID)
		}
	}
	if !strings.Contains(got[0].Description, "perfect match") || !strings.Contains(got[0].Description, "high self-motivation") {
		t.Errorf("top description = %q", got[0].Description)
	}
	if !strings.Contains(got[1].Description, "excellent match") || !strings.Contains(got[2].Description, "good match") {
		t.Errorf("rank wording wrong: %q / %q", got[1].Description, got[2].Description)
	}
	if !strings.Contains(got[0].Description, "hands on learning style") {
		t.Errorf("learning preference not humanized: %q", got[0].Description)
	}
}

func TestFitDescriptionsFromModel(t *testing.T) {
	stub := &stubLLM{content: "Because you like people."}
	w := NewInsightsWriter(stub, zap.NewNop())
	got := w.FitDescriptions(context.Background(), sampleAnswers(), []models.BusinessPath{{ID: "freelancing"}, {ID: "high-ticket-sales"}})

	if stub.calls != 2 {
		t.Errorf("llm called %d times, want one per match", stub.calls)
	}
	if stub.reqs[0].MaxTokens != descriptionMaxTokens {
		t.Errorf("max tokens = %d, want %d", stub.reqs[0].MaxTokens, descriptionMaxTokens)
	}
	if got[1].Description != "Because you like people." {
		t.Errorf("description = %q", got[1].Description)
	}
}

// ── handlers ──────────────────────────────────────────────

func newTestHandler(client llm.Client) *Handler {
	log := zap.NewNop()
	return NewHandler(
		NewFitAnalyzer(client, nil, log),
		NewSkillsAnalyzer(client, log),
		NewInsightsWriter(client, log),
		NewPersonalityAnalyzer(client, log),
		log,
	)
}

func TestBusinessFitAnalysisHandler(t *testing.T) {
	h := newTestHandler(llm.DisabledClient{})

	body, _ := json.Marshal(map[string]any{"quizData": sampleAnswers()})
	rec := httptest.NewRecorder()
	h.BusinessFitAnalysis(rec, httptest.NewRequest(http.MethodPost, "/api/ai-business-fit-analysis", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp models.BusinessFitAnalysis
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Source != models.SourceFallback || len(resp.TopMatches) == 0 {
		t.Errorf("response = %+v", resp)
	}
}

func TestHandlersRejectMissingQuizData(t *testing.T) {
	h := newTestHandler(llm.DisabledClient{})
	handlers := map[string]http.HandlerFunc{
		"fit":         h.BusinessFitAnalysis,
		"paths":       h.BusinessPaths,
		"skills":      h.AnalyzeSkills,
		"personality": h.PersonalityAnalysis,
	}

	for name, fn := range handlers {
		rec := httptest.NewRecorder()
		fn(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestInsightsHandlerUpstreamFailure(t *testing.T) {
	h := newTestHandler(&stubLLM{err: errors.New("boom")})
	body := `{"quizData":{},"topBusinessPath":{"id":"freelancing","name":"Freelancing","fitScore":90}}`

	rec := httptest.NewRecorder()
	h.PersonalizedInsights(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestIncomeProjectionsHandler(t *testing.T) {
	h := newTestHandler(llm.DisabledClient{})

	rec := httptest.NewRecorder()
	h.IncomeProjections(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"businessId":"freelancing"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var p models.IncomeProjection
	_ = json.Unmarshal(rec.Body.Bytes(), &p)
	if p.ProjectedYearOneIncome != 48500 {
		t.Errorf("year one = %d, want 48500", p.ProjectedYearOneIncome)
	}

	rec = httptest.NewRecorder()
	h.IncomeProjections(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing businessId: status = %d, want 400", rec.Code)
	}
}

func TestBusinessResourcesHandler(t *testing.T) {
	h := newTestHandler(llm.DisabledClient{})
	r := mux.NewRouter()
	r.HandleFunc("/api/business-resources/{businessModel}", h.BusinessResources)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/business-resources/freelancing", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res models.BusinessResources
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.BusinessModel != "Freelancing" || len(res.Tools) == 0 {
		t.Errorf("resources = %+v", res)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/business-resources/%20", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank model: status = %d, want 400", rec.Code)
	}
}

func TestPersonalityAnalysisHandler(t *testing.T) {
	h := newTestHandler(llm.DisabledClient{})

	rec := httptest.NewRecorder()
	h.PersonalityAnalysis(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quizData":{"riskComfortLevel":2}}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp models.PersonalityAnalysis
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Source != models.SourceFallback || len(resp.Traits) != len(traits) {
		t.Errorf("response = %+v", resp)
	}
}

func TestUserProfileMarksMissingAnswers(t *testing.T) {
	p := UserProfile(&models.QuizAnswers{IncomeGoal: floatp(2500), TechSkillsRating: intp(3)})
	if !strings.Contains(p, "- Income Goal: $2500/month") {
		t.Errorf("legacy income goal not rendered:\n%s", p)
	}
	if !strings.Contains(p, "- Tech Skills Rating: 3/5") {
		t.Errorf("rating not rendered:\n%s", p)
	}
	if !strings.Contains(p, "- Main Motivation: not specified") {
		t.Errorf("missing answer not marked:\n%s", p)
	}
}
