// Package entitlement tracks how many quiz attempts a user may still take.
//
// A user without an access pass is a guest and may take the quiz without
// limit. Buying the pass grants a fixed number of retakes; each attempt
// consumes one. A pass holder with none left is exhausted until a retake
// bundle is bought.
package entitlement

import (
	"errors"

	"github.com/bizmodel-ai/backend/internal/billing"
	"github.com/bizmodel-ai/backend/internal/models"
)

type State string

const (
	StateGuest     State = "guest"
	StateEntitled  State = "entitled"
	StateExhausted State = "exhausted"
)

const RetakesPerPurchase = billing.RetakesPerPurchase

var (
	ErrNoRetakesRemaining = errors.New("no quiz retakes remaining")
	ErrAccessPassHeld     = errors.New("access pass already held")
	ErrAccessPassRequired = errors.New("access pass required")
	ErrUserNotFound       = errors.New("user not found")
)

// StateOf derives the entitlement state from the stored counters. A user
// without a pass is a guest whatever the counter says.
func StateOf(u models.User) State {
	switch {
	case !u.HasAccessPass:
		return StateGuest
	case u.QuizRetakesRemaining > 0:
		return StateEntitled
	default:
		return StateExhausted
	}
}

func CanAttempt(u models.User) bool {
	return StateOf(u) != StateExhausted
}

// IsGuestUser reports the legacy guest flag clients still read: no pass and
// no retakes on the counter.
func IsGuestUser(u models.User) bool {
	return !u.HasAccessPass && u.QuizRetakesRemaining == 0
}

// ApplyAttempt returns u after one quiz attempt. Guests are not metered.
func ApplyAttempt(u models.User) (models.User, error) {
	switch StateOf(u) {
	case StateExhausted:
		return u, ErrNoRetakesRemaining
	case StateEntitled:
		u.QuizRetakesRemaining--
		u.TotalQuizRetakesUsed++
	}
	return u, nil
}

func ApplyAccessPass(u models.User) (models.User, error) {
	if u.HasAccessPass {
		return u, ErrAccessPassHeld
	}
	u.HasAccessPass = true
	u.QuizRetakesRemaining += RetakesPerPurchase
	return u, nil
}

func ApplyRetakeBundle(u models.User) (models.User, error) {
	if !u.HasAccessPass {
		return u, ErrAccessPassRequired
	}
	u.QuizRetakesRemaining += RetakesPerPurchase
	return u, nil
}
