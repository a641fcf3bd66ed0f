package extraction

import (
	"context"
	"errors"

	"verification-platform/internal/domain/verification"
)

var (
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrUnsupportedDocument is also reported as ErrExtractionFailed.
	ErrUnsupportedDocument = errors.New("unsupported document type")
)

// Document is an uploaded supporting document.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Page is the first page of a multi-page document: the largest embedded image
// on it and whatever text layer it carries. Either may be empty.
type Page struct {
	Number int
	Image  []byte
	Text   string
}

// Extractor turns a document into a Record. Implementations wrap every
// failure to produce a record in ErrExtractionFailed.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (verification.Record, error)
}
