package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"verification-platform/internal/domain/account"
	"verification-platform/internal/domain/extraction"
	"verification-platform/internal/domain/session"
	"verification-platform/internal/domain/verification"
	"verification-platform/internal/infrastructure/metrics"
	verificationUC "verification-platform/internal/usecase/verification"
	"verification-platform/pkg/id"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*account.Account, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, submitted, extracted verification.Record) (verification.Result, error)
}

type Usecase struct {
	store     session.Store
	auth      Authenticator
	extractor extraction.Extractor
	verifier  Reconciler
	metrics   *metrics.Metrics
	log       logrus.FieldLogger
	ttl       time.Duration

	now   func() time.Time
	newID func() string
}

func NewUsecase(
	store session.Store,
	auth Authenticator,
	extractor extraction.Extractor,
	verifier Reconciler,
	m *metrics.Metrics,
	log logrus.FieldLogger,
	ttl time.Duration,
) *Usecase {
	return &Usecase{
		store:     store,
		auth:      auth,
		extractor: extractor,
		verifier:  verifier,
		metrics:   m,
		log:       log,
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     id.NewID32,
	}
}

// Login authenticates and opens a session valid for the configured TTL.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*SessionDTO, error) {
	a, err := u.auth.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}

	now := u.now()
	s := &session.Session{
		ID:        u.newID(),
		Username:  a.Username,
		StartedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	if err := u.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	u.metrics.IncrementSessionsStarted()
	u.log.WithFields(logrus.Fields{"session": s.ID, "username": s.Username}).Info("session started")

	dto := toDTO(s, now)
	dto.Message = fmt.Sprintf("Login successful! Session will expire in %s.", humanize(u.ttl))
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, sessionID string) (*SessionDTO, error) {
	s, err := u.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toDTO(s, u.now()), nil
}

// Submit stores the normalized form record. A new submission discards any
// earlier verification in the session.
func (u *Usecase) Submit(ctx context.Context, sessionID string, in verification.RawRecord) (*SessionDTO, error) {
	s, err := u.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	rec, err := verification.Normalize(in)
	if err != nil && !errors.Is(err, verification.ErrMalformedRecord) {
		return nil, err
	}
	s.Submitted = &rec
	s.Extracted = nil
	s.Result = nil
	if err := u.store.Save(ctx, s); err != nil {
		return nil, err
	}
	u.log.WithField("session", s.ID).Info("submission recorded")
	return toDTO(s, u.now()), nil
}

// VerifyDocument extracts a record from doc and reconciles it against the
// session's submission.
func (u *Usecase) VerifyDocument(ctx context.Context, sessionID string, doc extraction.Document) (*DocumentVerificationDTO, error) {
	start := u.now()
	s, err := u.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Submitted == nil {
		return nil, session.ErrNoSubmission
	}

	extracted, err := u.extractor.Extract(ctx, doc)
	if err != nil {
		u.extractionFailed(s.ID, doc, err)
		return nil, err
	}
	res, err := u.verifier.Reconcile(ctx, *s.Submitted, extracted)
	if errors.Is(err, verification.ErrMissingField) {
		err = fmt.Errorf("%w: %w", extraction.ErrExtractionFailed, err)
		u.extractionFailed(s.ID, doc, err)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	s.Extracted = &extracted
	s.Result = &res
	if err := u.store.Save(ctx, s); err != nil {
		return nil, err
	}
	now := u.now()
	u.metrics.ObserveVerifyLatency(now.Sub(start))

	return &DocumentVerificationDTO{
		SessionID:      s.ID,
		Submitted:      *s.Submitted,
		Extracted:      extracted,
		Result:         verificationUC.NewResultDTO(res),
		ElapsedSeconds: seconds(s.Elapsed(now)),
	}, nil
}

// Close ends the session and reports how long it lasted.
func (u *Usecase) Close(ctx context.Context, sessionID string) (*ClosedDTO, error) {
	s, err := u.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := u.store.Delete(ctx, s.ID); err != nil {
		return nil, err
	}
	u.metrics.IncrementSessionsClosed()
	elapsed := s.Elapsed(u.now())
	u.log.WithFields(logrus.Fields{"session": s.ID, "elapsed": elapsed.String()}).Info("session ended")
	return &ClosedDTO{SessionID: s.ID, ElapsedSeconds: seconds(elapsed), Message: "Session ended."}, nil
}

func (u *Usecase) extractionFailed(sessionID string, doc extraction.Document, err error) {
	reason := "unreadable"
	if errors.Is(err, extraction.ErrUnsupportedDocument) {
		reason = "unsupported"
	}
	u.metrics.IncrementExtractionFailures(reason)
	u.log.WithFields(logrus.Fields{
		"session": sessionID,
		"file":    doc.Filename,
		"reason":  reason,
	}).WithError(err).Warn("cannot verify document")
}

func humanize(d time.Duration) string {
	if d%time.Minute == 0 {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", n)
	}
	return d.String()
}
