package session

import (
	"time"

	"verification-platform/internal/domain/session"
	"verification-platform/internal/domain/verification"
	verificationUC "verification-platform/internal/usecase/verification"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionDTO struct {
	SessionID        string                    `json:"session_id"`
	Username         string                    `json:"username"`
	StartedAt        time.Time                 `json:"started_at"`
	ExpiresAt        time.Time                 `json:"expires_at"`
	ElapsedSeconds   float64                   `json:"elapsed_seconds"`
	RemainingSeconds float64                   `json:"remaining_seconds"`
	Submitted        *verification.Record      `json:"submitted,omitempty"`
	Extracted        *verification.Record      `json:"extracted,omitempty"`
	Result           *verificationUC.ResultDTO `json:"result,omitempty"`
	Message          string                    `json:"message,omitempty"`
}

type DocumentVerificationDTO struct {
	SessionID      string                   `json:"session_id"`
	Submitted      verification.Record      `json:"submitted"`
	Extracted      verification.Record      `json:"extracted"`
	Result         verificationUC.ResultDTO `json:"result"`
	ElapsedSeconds float64                  `json:"elapsed_seconds"`
}

type ClosedDTO struct {
	SessionID      string  `json:"session_id"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Message        string  `json:"message"`
}

// seconds rounds to two decimals, the precision "Time taken" is shown with.
func seconds(d time.Duration) float64 {
	return float64(d.Round(10*time.Millisecond)) / float64(time.Second)
}

func toDTO(s *session.Session, now time.Time) *SessionDTO {
	dto := &SessionDTO{
		SessionID:        s.ID,
		Username:         s.Username,
		StartedAt:        s.StartedAt,
		ExpiresAt:        s.ExpiresAt,
		ElapsedSeconds:   seconds(s.Elapsed(now)),
		RemainingSeconds: seconds(s.Remaining(now)),
		Submitted:        s.Submitted,
		Extracted:        s.Extracted,
	}
	if s.Result != nil {
		r := verificationUC.NewResultDTO(*s.Result)
		dto.Result = &r
	}
	return dto
}
