package entitlement

import (
	"net/http"

	"go.uber.org/zap"

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

func (h *Handler) RetakeStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.PathInt64(r, "userId")
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	status, err := h.service.Status(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	var req models.QuizAttemptRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	attempt, err := h.service.RecordAttempt(r.Context(), req.UserID, req.QuizData)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.QuizAttemptResponse{
		Success:   true,
		AttemptID: attempt.ID,
		Message:   "Quiz attempt recorded successfully",
	})
}

func (h *Handler) Attempts(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.PathInt64(r, "userId")
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	attempts, err := h.service.Attempts(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, attempts)
}

func (h *Handler) AccessPassPayment(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	payment, err := h.service.BuyAccessPass(r.Context(), req.UserID)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.PurchaseResponse{
		Success:   true,
		PaymentID: payment.ID,
		Message:   "Access pass purchased successfully. You now have 5 quiz retakes!",
	})
}

func (h *Handler) RetakeBundlePayment(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	payment, err := h.service.BuyRetakeBundle(r.Context(), req.UserID)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.PurchaseResponse{
		Success:   true,
		PaymentID: payment.ID,
		Message:   "Retake bundle purchased successfully. You now have 5 additional quiz retakes!",
	})
}

func (h *Handler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.PathInt64(r, "userId")
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	payments, err := h.service.PaymentHistory(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, payments)
}
