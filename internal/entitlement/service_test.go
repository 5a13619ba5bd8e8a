package entitlement

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/apperr"
	"github.com/bizmodel-ai/backend/internal/billing"
	"github.com/bizmodel-ai/backend/internal/models"
)

// ── test doubles ──────────────────────────────────────────

// memRepo serialises every operation under one mutex, which gives the same
// per-user atomicity the SQL store gets from row locks.
type memRepo struct {
	mu       sync.Mutex
	users    map[int64]models.User
	attempts []models.QuizAttempt
	payments []models.Payment
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[int64]models.User{}}
}

func (m *memRepo) ensure(id int64) models.User {
	u, ok := m.users[id]
	if !ok {
		u = models.User{ID: id, Username: GuestUsername(id), CreatedAt: time.Now()}
		m.users[id] = u
	}
	return u
}

func (m *memRepo) EnsureUser(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.ensure(id)
	return &u, nil
}

func (m *memRepo) GetUser(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m *memRepo) RecordAttempt(_ context.Context, userID int64, answers *models.QuizAnswers) (*models.QuizAttempt, *models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.ensure(userID)
	next, err := ApplyAttempt(u)
	if err != nil {
		return nil, &u, err
	}
	a := models.QuizAttempt{ID: int64(len(m.attempts) + 1), UserID: userID, CompletedAt: time.Now()}
	if answers != nil {
		a.QuizData = *answers
	}
	m.attempts = append(m.attempts, a)
	m.users[userID] = next
	return &a, &next, nil
}

func (m *memRepo) ListAttempts(_ context.Context, userID int64) ([]models.QuizAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.QuizAttempt{}
	for _, a := range m.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memRepo) CountAttempts(ctx context.Context, userID int64) (int, error) {
	list, err := m.ListAttempts(ctx, userID)
	return len(list), err
}

func (m *memRepo) Purchase(ctx context.Context, userID int64, product billing.Product, grant Transition, charge ChargeFunc) (*models.Payment, *models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil, ErrUserNotFound
	}
	next, err := grant(u)
	if err != nil {
		return nil, &u, err
	}
	p := models.Payment{
		ID:             int64(len(m.payments) + 1),
		UserID:         userID,
		AmountCents:    product.AmountCents,
		Amount:         billing.FormatAmount(product.AmountCents),
		Currency:       product.Currency,
		Type:           product.Type,
		Status:         models.PaymentPending,
		RetakesGranted: product.Retakes,
	}
	ref, err := charge(ctx, &p)
	if err != nil {
		return nil, nil, err
	}
	p.Status = models.PaymentCompleted
	p.Reference = ref
	m.payments = append(m.payments, p)
	m.users[userID] = next
	return &p, &next, nil
}

func (m *memRepo) ListPayments(_ context.Context, userID int64) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Payment{}
	for _, p := range m.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

type failingGateway struct{}

func (failingGateway) Charge(context.Context, billing.ChargeRequest) (billing.ChargeResult, error) {
	return billing.ChargeResult{}, errors.New("card declined")
}

func newTestService() (*Service, *memRepo, *recordingPublisher) {
	repo := newMemRepo()
	pub := &recordingPublisher{}
	return NewService(repo, billing.SimulatedGateway{}, pub, zap.NewNop()), repo, pub
}

func newTestRouter(s *Service) *mux.Router {
	h := NewHandler(s, zap.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/api/quiz-retake-status/{userId}", h.RetakeStatus).Methods("GET")
	r.HandleFunc("/api/quiz-attempt", h.RecordAttempt).Methods("POST")
	r.HandleFunc("/api/quiz-attempts/{userId}", h.Attempts).Methods("GET")
	r.HandleFunc("/api/create-access-pass-payment", h.AccessPassPayment).Methods("POST")
	r.HandleFunc("/api/create-retake-bundle-payment", h.RetakeBundlePayment).Methods("POST")
	r.HandleFunc("/api/payment-history/{userId}", h.PaymentHistory).Methods("GET")
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func attemptBody(userID int64) map[string]any {
	return map[string]any{"userId": userID, "quizData": map[string]any{"successIncomeGoal": 3000}}
}

// ── service ───────────────────────────────────────────────

func TestStatusProvisionsUnknownUser(t *testing.T) {
	s, repo, _ := newTestService()

	status, err := s.Status(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if status.State != "guest" || !status.CanRetake || !status.IsFirstQuiz || !status.IsGuestUser {
		t.Errorf("status = %+v", status)
	}
	if u, err := repo.GetUser(context.Background(), 42); err != nil || u.Username != "guest-42" {
		t.Errorf("provisioned user = %+v, %v", u, err)
	}
}

func TestPaidLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _, pub := newTestService()

	if _, err := s.RecordAttempt(ctx, 7, &models.QuizAnswers{}); err != nil {
		t.Fatalf("guest attempt: %v", err)
	}

	p, err := s.BuyAccessPass(ctx, 7)
	if err != nil {
		t.Fatalf("BuyAccessPass() error = %v", err)
	}
	if p.Status != models.PaymentCompleted || p.Amount != "9.99" || p.Currency != "usd" || p.RetakesGranted != 5 {
		t.Errorf("payment = %+v", p)
	}
	if p.Reference == "" {
		t.Error("payment has no gateway reference")
	}

	for i := 0; i < RetakesPerPurchase; i++ {
		if _, err := s.RecordAttempt(ctx, 7, &models.QuizAnswers{}); err != nil {
			t.Fatalf("paid attempt %d: %v", i, err)
		}
	}

	status, err := s.Status(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if status.State != "exhausted" || status.CanRetake || status.TotalQuizRetakesUsed != 5 || status.AttemptsCount != 6 {
		t.Errorf("exhausted status = %+v", status)
	}

	_, err = s.RecordAttempt(ctx, 7, &models.QuizAnswers{})
	if status := httpStatus(err); status != http.StatusForbidden {
		t.Fatalf("exhausted attempt status = %d, want 403", status)
	}

	if _, err := s.BuyRetakeBundle(ctx, 7); err != nil {
		t.Fatalf("BuyRetakeBundle() error = %v", err)
	}
	status, _ = s.Status(ctx, 7)
	if status.State != "entitled" || status.QuizRetakesRemaining != 5 {
		t.Errorf("after bundle status = %+v", status)
	}

	history, err := s.PaymentHistory(ctx, 7)
	if err != nil || len(history) != 2 {
		t.Fatalf("history = %d payments, err %v", len(history), err)
	}
	if history[1].Amount != "4.99" || history[1].Type != models.PaymentRetakeBundle {
		t.Errorf("bundle payment = %+v", history[1])
	}

	// 1 guest attempt + pass + 5 attempts + bundle
	if len(pub.keys) != 8 {
		t.Errorf("published %d events, want 8: %v", len(pub.keys), pub.keys)
	}
}

// TestConcurrentAttemptsNeverOverspend checks the service against memRepo,
// whose single mutex stands in for row locks. The SQL path is covered by
// TestStoreRecordAttemptConcurrent under the integration build tag.
func TestConcurrentAttemptsNeverOverspend(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newTestService()
	repo.ensure(9)
	if _, err := s.BuyAccessPass(ctx, 9); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.RecordAttempt(ctx, 9, &models.QuizAnswers{}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != RetakesPerPurchase {
		t.Errorf("%d attempts succeeded, want %d", succeeded, RetakesPerPurchase)
	}
	u, _ := repo.GetUser(ctx, 9)
	if u.QuizRetakesRemaining != 0 {
		t.Errorf("remaining = %d, want 0", u.QuizRetakesRemaining)
	}
}

func TestPurchaseErrors(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newTestService()

	if _, err := s.BuyAccessPass(ctx, 404); httpStatus(err) != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", httpStatus(err))
	}

	repo.ensure(3)
	if _, err := s.BuyRetakeBundle(ctx, 3); httpStatus(err) != http.StatusBadRequest {
		t.Errorf("bundle without pass status = %d, want 400", httpStatus(err))
	}
	if _, err := s.BuyAccessPass(ctx, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := s.BuyAccessPass(ctx, 3); httpStatus(err) != http.StatusBadRequest {
		t.Errorf("second pass status = %d, want 400", httpStatus(err))
	}
}

func TestFailedChargeGrantsNothing(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.ensure(5)
	s := NewService(repo, failingGateway{}, nil, zap.NewNop())

	if _, err := s.BuyAccessPass(ctx, 5); err == nil {
		t.Fatal("expected charge failure")
	}
	u, _ := repo.GetUser(ctx, 5)
	if u.HasAccessPass || u.QuizRetakesRemaining != 0 {
		t.Errorf("user changed after failed charge: %+v", u)
	}
	if payments, _ := repo.ListPayments(ctx, 5); len(payments) != 0 {
		t.Errorf("payments = %d, want 0", len(payments))
	}
}

func httpStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return apperr.Status(err)
}

// ── handlers ──────────────────────────────────────────────

func TestRetakeStatusHandler(t *testing.T) {
	s, _, _ := newTestService()
	r := newTestRouter(s)

	w := do(t, r, http.MethodGet, "/api/quiz-retake-status/12", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var got models.RetakeStatusResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if !got.CanRetake || got.State != "guest" {
		t.Errorf("response = %+v", got)
	}
}

func TestHandlersRejectInvalidUserID(t *testing.T) {
	s, _, _ := newTestService()
	r := newTestRouter(s)

	for _, path := range []string{
		"/api/quiz-retake-status/abc",
		"/api/quiz-retake-status/0",
		"/api/quiz-attempts/-4",
		"/api/payment-history/x1",
	} {
		if w := do(t, r, http.MethodGet, path, nil); w.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", path, w.Code)
		}
	}
}

func TestRecordAttemptHandler(t *testing.T) {
	s, _, _ := newTestService()
	r := newTestRouter(s)

	w := do(t, r, http.MethodPost, "/api/quiz-attempt", attemptBody(21))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var got models.QuizAttemptResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if !got.Success || got.AttemptID == 0 || got.Message != "Quiz attempt recorded successfully" {
		t.Errorf("response = %+v", got)
	}

	w = do(t, r, http.MethodPost, "/api/quiz-attempt", map[string]any{"userId": 21})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing quizData status = %d, want 400", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/quiz-attempts/21", nil)
	var attempts []models.QuizAttempt
	if err := json.NewDecoder(w.Body).Decode(&attempts); err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 1 || attempts[0].QuizData.SuccessIncomeGoal == nil {
		t.Errorf("attempts = %+v", attempts)
	}
}

func TestExhaustedAttemptHandler(t *testing.T) {
	s, repo, _ := newTestService()
	repo.users[30] = models.User{ID: 30, HasAccessPass: true}
	r := newTestRouter(s)

	w := do(t, r, http.MethodPost, "/api/quiz-attempt", attemptBody(30))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	var got models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Error != "No quiz retakes remaining. Purchase more retakes to continue." {
		t.Errorf("error = %q", got.Error)
	}
}

func TestPaymentHandlers(t *testing.T) {
	s, repo, _ := newTestService()
	r := newTestRouter(s)

	if w := do(t, r, http.MethodPost, "/api/create-access-pass-payment", map[string]any{"userId": 50}); w.Code != http.StatusNotFound {
		t.Errorf("unknown user = %d, want 404", w.Code)
	}

	repo.ensure(50)
	if w := do(t, r, http.MethodPost, "/api/create-retake-bundle-payment", map[string]any{"userId": 50}); w.Code != http.StatusBadRequest {
		t.Errorf("bundle without pass = %d, want 400", w.Code)
	}

	w := do(t, r, http.MethodPost, "/api/create-access-pass-payment", map[string]any{"userId": 50})
	if w.Code != http.StatusOK {
		t.Fatalf("access pass = %d, body %s", w.Code, w.Body)
	}
	var got models.PurchaseResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if !got.Success || got.PaymentID == 0 {
		t.Errorf("response = %+v", got)
	}

	if w := do(t, r, http.MethodPost, "/api/create-access-pass-payment", map[string]any{"userId": 50}); w.Code != http.StatusBadRequest {
		t.Errorf("second pass = %d, want 400", w.Code)
	}

	if w := do(t, r, http.MethodPost, "/api/create-access-pass-payment", map[string]any{}); w.Code != http.StatusBadRequest {
		t.Errorf("missing userId = %d, want 400", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/payment-history/50", nil)
	var payments []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&payments); err != nil {
		t.Fatal(err)
	}
	if len(payments) != 1 || payments[0]["amount"] != "9.99" || payments[0]["status"] != "completed" {
		t.Errorf("payments = %v", payments)
	}
}
