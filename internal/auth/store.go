package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/bizmodel-ai/backend/internal/models"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrNotFound      = errors.New("account not found")
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateUser inserts a registered account. Registered users start with
// the same entitlement as an auto-provisioned guest.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	var u models.User
	var insertErr error
	// Guest rows take explicit ids, so the sequence can briefly hand out
	// an id that is already used. Retry on primary key collisions only.
	for attempt := 0; attempt < 5; attempt++ {
		insertErr = s.db.QueryRowContext(ctx,
			`INSERT INTO users (username, email, password)
			 VALUES ($1, $2, $3)
			 RETURNING id, username, email, has_access_pass, quiz_retakes_remaining,
			           total_quiz_retakes_used, created_at, updated_at`,
			username, email, passwordHash,
		).Scan(&u.ID, &u.Username, &u.Email, &u.HasAccessPass, &u.QuizRetakesRemaining,
			&u.TotalQuizRetakesUsed, &u.CreatedAt, &u.UpdatedAt)

		if insertErr == nil || violated(insertErr) != "users_pkey" {
			break
		}
	}

	switch violated(insertErr) {
	case "":
	case "users_email_key":
		return nil, ErrEmailTaken
	case "users_username_key":
		return nil, ErrUsernameTaken
	}
	if insertErr != nil {
		return nil, fmt.Errorf("create user: %w", insertErr)
	}
	return &u, nil
}

// FindByEmail returns the account and its password hash.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var u models.User
	var hash sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, has_access_pass, quiz_retakes_remaining,
		        total_quiz_retakes_used, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Username, &u.Email, &hash, &u.HasAccessPass, &u.QuizRetakesRemaining,
		&u.TotalQuizRetakesUsed, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("find user by email: %w", err)
	}
	return &u, hash.String, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, has_access_pass, quiz_retakes_remaining,
		        total_quiz_retakes_used, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.HasAccessPass, &u.QuizRetakesRemaining,
		&u.TotalQuizRetakesUsed, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// violated returns the constraint a unique violation hit, or "".
func violated(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}
