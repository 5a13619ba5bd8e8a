package notify

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bizmodel-ai/backend/internal/models"
)

var ErrNoStoredEmail = errors.New("no email stored for session")

type SessionEmailStore struct {
	db *sql.DB
}

func NewSessionEmailStore(db *sql.DB) *SessionEmailStore {
	return &SessionEmailStore{db: db}
}

func (s *SessionEmailStore) Get(ctx context.Context, sessionID string) (*models.SessionEmail, error) {
	var e models.SessionEmail
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, email, quiz_data, created_at
		 FROM unpaid_user_emails WHERE session_id = $1`,
		sessionID,
	).Scan(&e.ID, &e.SessionID, &e.Email, &data, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoStoredEmail
	}
	if err != nil {
		return nil, fmt.Errorf("get session email: %w", err)
	}
	if err := json.Unmarshal(data, &e.QuizData); err != nil {
		return nil, fmt.Errorf("decode session quiz data: %w", err)
	}
	return &e, nil
}

// Save stores the address for a session and returns the address on file.
// The first address wins, so a concurrent request may already have stored a
// different one.
func (s *SessionEmailStore) Save(ctx context.Context, sessionID, email string, answers *models.QuizAnswers) (string, error) {
	data, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("marshal quiz data: %w", err)
	}
	var stored string
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO unpaid_user_emails (session_id, email, quiz_data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id) DO UPDATE SET session_id = EXCLUDED.session_id
		 RETURNING email`,
		sessionID, email, data,
	).Scan(&stored)
	if err != nil {
		return "", fmt.Errorf("save session email: %w", err)
	}
	return stored, nil
}
