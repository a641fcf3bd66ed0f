package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/wudi/pdfkit/extractor"
	"github.com/wudi/pdfkit/ir"

	"verification-platform/internal/domain/extraction"
)

var ErrNoContent = errors.New("pdf has no page image or text")

// Reader pulls the first page of a PDF with pdfkit: the largest embedded
// image on that page, re-encoded as PNG, and its text layer.
type Reader struct{}

func New() *Reader { return &Reader{} }

func (r *Reader) FirstPage(ctx context.Context, data []byte) (extraction.Page, error) {
	doc, err := ir.NewDefault().Parse(ctx, bytes.NewReader(data))
	if err != nil {
		return extraction.Page{}, fmt.Errorf("parse pdf: %w", err)
	}
	dec := doc.Decoded()
	if dec == nil {
		return extraction.Page{}, errors.New("parse pdf: no decoded document")
	}
	ext, err := extractor.New(dec)
	if err != nil {
		return extraction.Page{}, fmt.Errorf("init extractor: %w", err)
	}

	images, err := ext.ExtractImages()
	if err != nil {
		return extraction.Page{}, fmt.Errorf("extract images: %w", err)
	}
	texts, err := ext.ExtractText()
	if err != nil {
		return extraction.Page{}, fmt.Errorf("extract text: %w", err)
	}
	return firstPage(images, texts)
}

// firstPage picks the lowest page index that has content. Images that fail
// to decode are skipped.
func firstPage(images []extractor.ImageAsset, texts []extractor.PageText) (extraction.Page, error) {
	pageNo := -1
	for _, img := range images {
		if pageNo < 0 || img.Page < pageNo {
			pageNo = img.Page
		}
	}
	for _, t := range texts {
		if pageNo < 0 || t.Page < pageNo {
			pageNo = t.Page
		}
	}
	if pageNo < 0 {
		return extraction.Page{}, ErrNoContent
	}

	page := extraction.Page{Number: pageNo}
	best := 0
	for _, img := range images {
		if img.Page != pageNo || img.Width*img.Height <= best {
			continue
		}
		encoded, err := img.ToPNG()
		if err != nil {
			continue
		}
		page.Image, best = encoded, img.Width*img.Height
	}
	for _, t := range texts {
		if t.Page == pageNo {
			page.Text = t.Content
			break
		}
	}
	if page.Image == nil && page.Text == "" {
		return extraction.Page{}, ErrNoContent
	}
	return page, nil
}
