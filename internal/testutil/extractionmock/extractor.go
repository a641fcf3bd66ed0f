package extractionmock

import (
	"context"

	"verification-platform/internal/domain/extraction"
	"verification-platform/internal/domain/verification"
)

// Extractor is a function-backed mock that satisfies extraction.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, doc extraction.Document) (verification.Record, error)
	Calls     int
}

var _ extraction.Extractor = (*Extractor)(nil)

// Extract defaults to ErrExtractionFailed.
func (m *Extractor) Extract(ctx context.Context, doc extraction.Document) (verification.Record, error) {
	m.Calls++
	if m.ExtractFn != nil {
		return m.ExtractFn(ctx, doc)
	}
	return verification.Record{}, extraction.ErrExtractionFailed
}

// Returning builds an Extractor that always yields rec.
func Returning(rec verification.Record) *Extractor {
	return &Extractor{ExtractFn: func(context.Context, extraction.Document) (verification.Record, error) {
		return rec, nil
	}}
}
