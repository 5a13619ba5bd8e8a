package entitlement

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bizmodel-ai/backend/internal/billing"
	"github.com/bizmodel-ai/backend/internal/models"
)

// Transition moves a locked user row to its post-purchase state.
type Transition func(models.User) (models.User, error)

// ChargeFunc takes payment for a pending payment row and returns the
// gateway reference.
type ChargeFunc func(ctx context.Context, p *models.Payment) (string, error)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const userColumns = `id, username, email, password, has_access_pass,
	quiz_retakes_remaining, total_quiz_retakes_used, created_at, updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var password sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.Email, &password, &u.HasAccessPass,
		&u.QuizRetakesRemaining, &u.TotalQuizRetakesUsed, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Password = password.String
	return &u, nil
}

// GuestUsername is the name given to auto-provisioned users.
func GuestUsername(id int64) string {
	return fmt.Sprintf("guest-%d", id)
}

// userSequenceLock is the advisory lock key held while a guest insert moves
// the users id sequence.
const userSequenceLock = 4_210_001

// advanceUserSequence moves the users id sequence up to id when id is ahead
// of it. It never moves the sequence backwards.
const advanceUserSequence = `SELECT setval(seq, $1)
	FROM (SELECT pg_get_serial_sequence('users', 'id')::regclass AS seq) s
	WHERE $1 > COALESCE(pg_sequence_last_value(seq), 0)`

// ensureUser provisions a guest row for id if none exists. Explicit ids
// bypass the sequence, so it is moved past them under a transaction-scoped
// advisory lock; q must be a transaction.
func ensureUser(ctx context.Context, q execer, id int64) error {
	res, err := q.ExecContext(ctx,
		`INSERT INTO users (id, username) VALUES ($1, $2)
		 ON CONFLICT (id) DO NOTHING`,
		id, GuestUsername(id),
	)
	if err != nil {
		return fmt.Errorf("provision user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}
	if _, err := q.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, userSequenceLock); err != nil {
		return fmt.Errorf("lock user sequence: %w", err)
	}
	if _, err := q.ExecContext(ctx, advanceUserSequence, id); err != nil {
		return fmt.Errorf("advance user sequence: %w", err)
	}
	return nil
}

// ── Users ───────────────────────────────────────────────

// EnsureUser returns the user with id, creating a guest if needed.
func (s *Store) EnsureUser(ctx context.Context, id int64) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := ensureUser(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetUser(ctx, id)
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func lockUser(ctx context.Context, tx *sql.Tx, id int64) (*models.User, error) {
	u, err := scanUser(tx.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}
	return u, nil
}

// ── Quiz Attempts ───────────────────────────────────────

// RecordAttempt checks the entitlement, appends the attempt and consumes a
// retake in one transaction. The user row stays locked throughout, so two
// concurrent attempts cannot both spend the last retake.
func (s *Store) RecordAttempt(ctx context.Context, userID int64, answers *models.QuizAnswers) (*models.QuizAttempt, *models.User, error) {
	data, err := json.Marshal(answers)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal quiz data: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := ensureUser(ctx, tx, userID); err != nil {
		return nil, nil, err
	}

	u, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, nil, err
	}

	next, err := ApplyAttempt(*u)
	if err != nil {
		return nil, u, err
	}

	attempt := &models.QuizAttempt{UserID: userID}
	if answers != nil {
		attempt.QuizData = *answers
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO quiz_attempts (user_id, quiz_data) VALUES ($1, $2)
		 RETURNING id, completed_at`,
		userID, data,
	).Scan(&attempt.ID, &attempt.CompletedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("insert quiz attempt: %w", err)
	}

	if StateOf(*u) == StateEntitled {
		res, err := tx.ExecContext(ctx,
			`UPDATE users
			 SET quiz_retakes_remaining = quiz_retakes_remaining - 1,
			     total_quiz_retakes_used = total_quiz_retakes_used + 1,
			     updated_at = NOW()
			 WHERE id = $1 AND quiz_retakes_remaining > 0`,
			userID,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("decrement retakes: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, u, ErrNoRetakesRemaining
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit attempt: %w", err)
	}
	return attempt, &next, nil
}

func (s *Store) ListAttempts(ctx context.Context, userID int64) ([]models.QuizAttempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, quiz_data, completed_at
		 FROM quiz_attempts WHERE user_id = $1
		 ORDER BY completed_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	defer rows.Close()

	attempts := []models.QuizAttempt{}
	for rows.Next() {
		var a models.QuizAttempt
		var data []byte
		if err := rows.Scan(&a.ID, &a.UserID, &data, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		if err := json.Unmarshal(data, &a.QuizData); err != nil {
			return nil, fmt.Errorf("decode quiz attempt %d: %w", a.ID, err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (s *Store) CountAttempts(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quiz attempts: %w", err)
	}
	return n, nil
}

// ── Payments ────────────────────────────────────────────

// Purchase applies grant to the locked user, records the payment as
// pending, charges it and marks it completed. Any failure rolls the whole
// purchase back.
func (s *Store) Purchase(ctx context.Context, userID int64, product billing.Product, grant Transition, charge ChargeFunc) (*models.Payment, *models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	u, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, nil, err
	}

	next, err := grant(*u)
	if err != nil {
		return nil, u, err
	}

	p := &models.Payment{
		UserID:         userID,
		AmountCents:    product.AmountCents,
		Amount:         billing.FormatAmount(product.AmountCents),
		Currency:       product.Currency,
		Type:           product.Type,
		Status:         models.PaymentPending,
		RetakesGranted: product.Retakes,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO payments (user_id, amount_cents, currency, type, status, retakes_granted)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		p.UserID, p.AmountCents, p.Currency, p.Type, p.Status, p.RetakesGranted,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("insert payment: %w", err)
	}

	ref, err := charge(ctx, p)
	if err != nil {
		return nil, nil, fmt.Errorf("charge payment %d: %w", p.ID, err)
	}

	var completedAt sql.NullTime
	err = tx.QueryRowContext(ctx,
		`UPDATE payments SET status = $2, reference = $3, completed_at = NOW()
		 WHERE id = $1 RETURNING completed_at`,
		p.ID, models.PaymentCompleted, ref,
	).Scan(&completedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("complete payment: %w", err)
	}
	p.Status = models.PaymentCompleted
	p.Reference = ref
	if completedAt.Valid {
		p.CompletedAt = &completedAt.Time
	}

	err = tx.QueryRowContext(ctx,
		`UPDATE users
		 SET has_access_pass = $2, quiz_retakes_remaining = $3, updated_at = NOW()
		 WHERE id = $1 RETURNING updated_at`,
		userID, next.HasAccessPass, next.QuizRetakesRemaining,
	).Scan(&next.UpdatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("update entitlement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit purchase: %w", err)
	}
	return p, &next, nil
}

func (s *Store) ListPayments(ctx context.Context, userID int64) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, amount_cents, currency, type, status, retakes_granted,
		        COALESCE(reference, ''), created_at, completed_at
		 FROM payments WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		var completedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.UserID, &p.AmountCents, &p.Currency, &p.Type,
			&p.Status, &p.RetakesGranted, &p.Reference, &p.CreatedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Amount = billing.FormatAmount(p.AmountCents)
		if completedAt.Valid {
			p.CompletedAt = &completedAt.Time
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
