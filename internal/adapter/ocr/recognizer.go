package ocr

import "context"

// TextRecognizer runs OCR over a single encoded image.
type TextRecognizer interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (string, error)
}

// PlaceholderDocument mirrors the sample employment letter used before real
// extraction was wired in. Handy for local runs without tesseract.
const PlaceholderDocument = `Start Date: 2023-01-01
End Date: 2024-01-01
Status: Resigned
Rank: 1A
Designation: Manager
Service Branch: Operations`

// StaticRecognizer ignores the image and always returns Text.
type StaticRecognizer struct{ Text string }

func NewStaticRecognizer(text string) *StaticRecognizer {
	if text == "" {
		text = PlaceholderDocument
	}
	return &StaticRecognizer{Text: text}
}

func (s *StaticRecognizer) Name() string { return "static" }

func (s *StaticRecognizer) Recognize(ctx context.Context, _ []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Text, nil
}
