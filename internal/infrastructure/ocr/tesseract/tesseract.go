package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// client is the subset of *gosseract.Client the engine drives.
type client interface {
	SetLanguage(langs ...string) error
	SetPageSegMode(mode gosseract.PageSegMode) error
	SetImageFromBytes(data []byte) error
	Text() (string, error)
	Close() error
}

// Engine recognizes text with a local tesseract install through gosseract.
// A fresh client is created per call; gosseract clients are not safe for
// concurrent use.
type Engine struct {
	clientFactory func() client
	languages     []string
	psm           int
}

// New builds an engine. psm <= 0 keeps tesseract's default segmentation.
func New(languages []string, psm int) *Engine {
	return &Engine{
		clientFactory: func() client { return gosseract.NewClient() },
		languages:     cleanLanguages(languages),
		psm:           psm,
	}
}

func cleanLanguages(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func (e *Engine) Name() string { return "tesseract" }

func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if e.psm > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(e.psm)); err != nil {
			return "", fmt.Errorf("set psm: %w", err)
		}
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Version reports the linked tesseract version, useful for startup logs.
func Version() string { return gosseract.Version() }
