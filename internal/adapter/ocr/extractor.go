package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"verification-platform/internal/domain/extraction"
	"verification-platform/internal/domain/verification"
)

const mimePDF = "application/pdf"

var imageTypes = []string{"image/png", "image/jpeg"}

// PageReader reads the first page of a PDF.
type PageReader interface {
	FirstPage(ctx context.Context, pdf []byte) (extraction.Page, error)
}

// DocumentExtractor implements extraction.Extractor on top of a
// TextRecognizer and the labeled-field mapper. PDFs are accepted once a
// PageReader is attached with WithPages.
type DocumentExtractor struct {
	rec   TextRecognizer
	pages PageReader
	log   logrus.FieldLogger
}

var _ extraction.Extractor = (*DocumentExtractor)(nil)

func NewDocumentExtractor(rec TextRecognizer, log logrus.FieldLogger) *DocumentExtractor {
	return &DocumentExtractor{rec: rec, log: log}
}

// WithPages enables PDF uploads.
func (x *DocumentExtractor) WithPages(p PageReader) *DocumentExtractor {
	x.pages = p
	return x
}

func (x *DocumentExtractor) Extract(ctx context.Context, doc extraction.Document) (verification.Record, error) {
	if len(doc.Data) == 0 {
		return verification.Record{}, fmt.Errorf("%w: empty document", extraction.ErrExtractionFailed)
	}
	mt := mimetype.Detect(doc.Data)

	var (
		text   string
		source string
		err    error
	)
	switch {
	case isImage(mt):
		source = x.rec.Name()
		text, err = x.rec.Recognize(ctx, doc.Data)
		if err != nil {
			return verification.Record{}, fmt.Errorf("%w: %s: %w", extraction.ErrExtractionFailed, x.rec.Name(), err)
		}
	case mt.Is(mimePDF) && x.pages != nil:
		text, source, err = x.readPDF(ctx, doc.Data)
		if err != nil {
			return verification.Record{}, fmt.Errorf("%w: %w", extraction.ErrExtractionFailed, err)
		}
	default:
		return verification.Record{}, fmt.Errorf("%w: %w: %s", extraction.ErrExtractionFailed, extraction.ErrUnsupportedDocument, mt.String())
	}

	raw, found := ParseFields(text)
	if found == 0 || raw.IsEmpty() {
		return verification.Record{}, fmt.Errorf("%w: no employment fields recognized in %q", extraction.ErrExtractionFailed, doc.Filename)
	}

	rec, err := verification.Normalize(raw)
	if err != nil && !errors.Is(err, verification.ErrMalformedRecord) {
		return verification.Record{}, fmt.Errorf("%w: %w", extraction.ErrExtractionFailed, err)
	}
	x.log.WithFields(logrus.Fields{
		"file":      doc.Filename,
		"mime":      mt.String(),
		"engine":    source,
		"fields":    found,
		"malformed": err != nil,
	}).Info("document extracted")
	return rec, nil
}

// readPDF recognizes the first page image and falls back to the page's text
// layer when the image is missing, unreadable or carries no labeled fields.
func (x *DocumentExtractor) readPDF(ctx context.Context, data []byte) (text, source string, err error) {
	page, err := x.pages.FirstPage(ctx, data)
	if err != nil {
		return "", "", fmt.Errorf("read pdf: %w", err)
	}

	var ocrErr error
	if len(page.Image) > 0 {
		text, ocrErr = x.rec.Recognize(ctx, page.Image)
		if ocrErr == nil {
			if _, found := ParseFields(text); found > 0 || page.Text == "" {
				return text, x.rec.Name(), nil
			}
		}
	}
	if page.Text != "" {
		return page.Text, "pdf text layer", nil
	}
	if ocrErr != nil {
		return "", "", fmt.Errorf("%s: %w", x.rec.Name(), ocrErr)
	}
	return "", "", fmt.Errorf("page %d has no image or text", page.Number+1)
}

func isImage(mt *mimetype.MIME) bool {
	for _, t := range imageTypes {
		if mt.Is(t) {
			return true
		}
	}
	return false
}
