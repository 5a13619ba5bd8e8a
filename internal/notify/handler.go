package notify

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/apperr"
	"github.com/bizmodel-ai/backend/internal/httpx"
	"github.com/bizmodel-ai/backend/internal/models"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// GeneratePDF serves the business report as a downloadable HTML document.
func (h *Handler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	body, err := h.service.Report(req.QuizData, req.UserEmail)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="business-report.html"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) SendQuizResults(w http.ResponseWriter, r *http.Request) {
	var req models.EmailResultsRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	if err := h.service.SendQuizResults(r.Context(), req.Email, req.QuizData); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Quiz results sent successfully"})
}

func (h *Handler) SendWelcome(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	if err := h.service.SendWelcome(r.Context(), req.Email); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Welcome email sent successfully"})
}

func (h *Handler) SendFullReport(w http.ResponseWriter, r *http.Request) {
	var req models.EmailResultsRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	if err := h.service.SendFullReport(r.Context(), req.Email, req.QuizData); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Full report sent successfully"})
}

func (h *Handler) EmailResults(w http.ResponseWriter, r *http.Request) {
	var req models.SessionEmailRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	msg, err := h.service.EmailResults(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: msg})
}

func (h *Handler) StoredEmail(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	if sessionID == "" {
		httpx.WriteError(w, h.log, apperr.Validation("Invalid sessionId"))
		return
	}

	email, err := h.service.StoredEmail(r.Context(), sessionID)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, models.StoredEmailResponse{Email: email})
}
