package verification

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"verification-platform/internal/domain/verification"
	"verification-platform/internal/infrastructure/metrics"
)

type Usecase struct {
	metrics *metrics.Metrics
	log     logrus.FieldLogger
}

func NewUsecase(m *metrics.Metrics, log logrus.FieldLogger) *Usecase {
	return &Usecase{metrics: m, log: log}
}

// Reconcile runs the engine and records the outcome.
func (u *Usecase) Reconcile(ctx context.Context, submitted, extracted verification.Record) (verification.Result, error) {
	res, err := verification.Reconcile(submitted, extracted)
	if err != nil {
		return verification.Result{}, err
	}
	u.metrics.ObserveResult(res)
	u.log.WithFields(logrus.Fields{
		"verdict":       res.Verdict,
		"discrepancies": len(res.Discrepancies),
	}).Info("records reconciled")
	return res, nil
}

// Verify normalizes two raw records and reconciles them without any session.
// Malformed dates are not an error here; they surface as DateFormatError.
func (u *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyDTO, error) {
	submitted, err := verification.Normalize(in.Submitted)
	if err != nil && !errors.Is(err, verification.ErrMalformedRecord) {
		return nil, err
	}
	extracted, err := verification.Normalize(in.Extracted)
	if err != nil && !errors.Is(err, verification.ErrMalformedRecord) {
		return nil, err
	}

	res, err := u.Reconcile(ctx, submitted, extracted)
	if err != nil {
		return nil, err
	}
	return &VerifyDTO{Submitted: submitted, Extracted: extracted, Result: NewResultDTO(res)}, nil
}
