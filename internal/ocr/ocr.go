// Package ocr provides optical character recognition over rendered page
// images via pluggable providers.
package ocr

import (
	"context"
	"image"

	"github.com/rotisserie/eris"

	"github.com/trainingdesk/brochure-cli/internal/config"
)

// Provider turns a rendered page image into text.
type Provider interface {
	// Recognize runs OCR over the image and returns the recognized text.
	Recognize(ctx context.Context, img image.Image) (string, error)
	// Available reports whether the provider can actually run on this host.
	Available() bool
}

// NewProvider returns the configured OCR provider. Returns nil (and no
// error) when OCR is switched off; callers must handle a nil provider.
func NewProvider(cfg config.OCRConfig) (Provider, error) {
	switch cfg.Provider {
	case "tesseract":
		return NewTesseract(cfg.TesseractPath), nil
	case "off", "":
		return nil, nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}
