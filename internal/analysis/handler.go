package analysis

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/apperr"
	"github.com/bizmodel-ai/backend/internal/catalog"
	"github.com/bizmodel-ai/backend/internal/httpx"
	"github.com/bizmodel-ai/backend/internal/models"
)

type Handler struct {
	fit         *FitAnalyzer
	skills      *SkillsAnalyzer
	insights    *InsightsWriter
	personality *PersonalityAnalyzer
	log         *zap.Logger
}

func NewHandler(fit *FitAnalyzer, skills *SkillsAnalyzer, insights *InsightsWriter, personality *PersonalityAnalyzer, log *zap.Logger) *Handler {
	return &Handler{fit: fit, skills: skills, insights: insights, personality: personality, log: log}
}

func (h *Handler) BusinessFitAnalysis(w http.ResponseWriter, r *http.Request) {
	var req models.QuizDataRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.fit.Analyze(r.Context(), req.QuizData))
}

func (h *Handler) BusinessPaths(w http.ResponseWriter, r *http.Request) {
	var req models.QuizDataRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.fit.Deterministic(req.QuizData))
}

func (h *Handler) PersonalityAnalysis(w http.ResponseWriter, r *http.Request) {
	var req models.QuizDataRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.personality.Analyze(r.Context(), req.QuizData))
}

func (h *Handler) AnalyzeSkills(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeSkillsRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.skills.Analyze(r.Context(), req.QuizData, req.RequiredSkills, req.BusinessModel))
}

func (h *Handler) PersonalizedInsights(w http.ResponseWriter, r *http.Request) {
	var req models.InsightsRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	text, err := h.insights.Insights(r.Context(), req.QuizData, req.TopBusinessPath)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.InsightsResponse{Insights: text})
}

func (h *Handler) BusinessFitDescriptions(w http.ResponseWriter, r *http.Request) {
	var req models.FitDescriptionsRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	descriptions := h.insights.FitDescriptions(r.Context(), req.QuizData, req.BusinessMatches)
	httpx.WriteJSON(w, http.StatusOK, models.FitDescriptionsResponse{Descriptions: descriptions})
}

func (h *Handler) IncomeProjections(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectionsRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, catalog.Projections(req.BusinessID))
}

func (h *Handler) BusinessResources(w http.ResponseWriter, r *http.Request) {
	model := strings.TrimSpace(mux.Vars(r)["businessModel"])
	if model == "" {
		httpx.WriteError(w, h.log, apperr.Validation("Business model is required"))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, catalog.Resources(model))
}
