package session

import (
	"errors"
	"time"

	"verification-platform/internal/domain/verification"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrExpired      = errors.New("session expired")
	ErrNoSubmission = errors.New("no submission recorded for session")
)

// Session replaces process-wide login state: everything the verification
// flow needs between requests lives here and is passed explicitly.
type Session struct {
	ID        string               `json:"session_id"`
	Username  string               `json:"username"`
	StartedAt time.Time            `json:"started_at"`
	ExpiresAt time.Time            `json:"expires_at"`
	Submitted *verification.Record `json:"submitted,omitempty"`
	Extracted *verification.Record `json:"extracted,omitempty"`
	Result    *verification.Result `json:"result,omitempty"`
}

func (s *Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// Remaining is the time left before expiry, never negative.
func (s *Session) Remaining(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Elapsed is the time since login, as shown to the user ("Time taken").
func (s *Session) Elapsed(now time.Time) time.Duration { return now.Sub(s.StartedAt) }
