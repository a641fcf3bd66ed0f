package verification

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verification-platform/internal/domain/verification"
	"verification-platform/internal/infrastructure/metrics"
)

func newUsecase() (*Usecase, *metrics.Metrics, *test.Hook) {
	m := metrics.New()
	log, hook := test.NewNullLogger()
	return NewUsecase(m, log), m, hook
}

func raw(start, end, status, rank, designation, branch string) verification.RawRecord {
	return verification.RawRecord{
		StartDate: start, EndDate: end, Status: status,
		Rank: rank, Designation: designation, ServiceBranch: branch,
	}
}

func TestVerify_CompletelyVerified(t *testing.T) {
	uc, m, hook := newUsecase()
	rec := raw(" 2023-01-01", "2024-01-01", "Resigned", "1A ", " Manager", "Operations")

	out, err := uc.Verify(context.Background(), VerifyInput{Submitted: rec, Extracted: rec})
	require.NoError(t, err)
	assert.Equal(t, verification.CompletelyVerified, out.Result.Verdict)
	assert.Equal(t, "Completely Verified", out.Result.VerdictLabel)
	assert.NotNil(t, out.Result.Discrepancies)
	assert.Empty(t, out.Result.Discrepancies)
	assert.Equal(t, "1A", out.Submitted.Rank)
	assert.Equal(t, "Manager", out.Extracted.Designation)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verdicts.WithLabelValues("CompletelyVerified")))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "records reconciled", hook.LastEntry().Message)
}

func TestVerify_MalformedDateBecomesDiscrepancy(t *testing.T) {
	uc, m, _ := newUsecase()
	out, err := uc.Verify(context.Background(), VerifyInput{
		Submitted: raw("01/01/2023", "", "Currently Employed", "1A", "Manager", "Sales"),
		Extracted: raw("2023-01-01", "", "Currently Employed", "1A", "Manager", "Sales"),
	})
	require.NoError(t, err)
	assert.Equal(t, verification.VerifiedWithDiscrepancy, out.Result.Verdict)
	assert.Equal(t, []verification.Discrepancy{verification.DateFormatError}, out.Result.Discrepancies)
	assert.Equal(t, []string{"Date format error"}, out.Result.Messages)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Discrepancies.WithLabelValues("DateFormatError")))
}

func TestVerify_BlockingDiscrepancies(t *testing.T) {
	uc, _, _ := newUsecase()
	out, err := uc.Verify(context.Background(), VerifyInput{
		Submitted: raw("2023-01-01", "", "Currently Employed", "9Z", "Manager", "Sales"),
		Extracted: raw("2022-01-01", "", "Currently Employed", "9Z", "Manager", "Sales"),
	})
	require.NoError(t, err)
	assert.Equal(t, verification.DiscrepancyNotVerified, out.Result.Verdict)
	assert.Equal(t, []verification.Discrepancy{verification.StartDateMismatch, verification.InvalidRank}, out.Result.Discrepancies)
}

func TestVerify_MissingStartDate(t *testing.T) {
	uc, m, _ := newUsecase()
	_, err := uc.Verify(context.Background(), VerifyInput{
		Submitted: raw("", "", "Resigned", "1A", "Manager", "Sales"),
		Extracted: raw("2023-01-01", "", "Resigned", "1A", "Manager", "Sales"),
	})
	assert.True(t, errors.Is(err, verification.ErrMissingField), "err=%v", err)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Verdicts.WithLabelValues("CompletelyVerified")))
}

func TestNewResultDTO_NilDiscrepancies(t *testing.T) {
	dto := NewResultDTO(verification.Result{Verdict: verification.CompletelyVerified})
	assert.NotNil(t, dto.Discrepancies)
	assert.Empty(t, dto.Messages)
}
