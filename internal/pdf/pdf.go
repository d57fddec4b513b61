// Package pdf wraps MuPDF document access: native text, page renders
// and positioned layout blocks for the downstream inference layers.
package pdf

import (
	"context"
	"image"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/internal/ocr"
)

const (
	ocrDPI = 200
	// logoPages is how many leading pages are rendered for logo detection.
	logoPages = 2
	logoDPI   = 150
)

// Document is an open PDF. Not safe for concurrent use; each worker
// opens its own.
type Document struct {
	doc  *fitz.Document
	path string
}

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pdf: open %s", path)
	}
	return &Document{doc: doc, path: path}, nil
}

// Close releases the underlying document.
func (d *Document) Close() error {
	return d.doc.Close()
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// ExtractText acquires the document text. Native text is preferred; when
// it comes in under threshold characters and an OCR provider is
// available, every page is rendered and recognized. The returned method
// is TEXT, OCR or MIXED depending on which sources contributed.
func (d *Document) ExtractText(ctx context.Context, provider ocr.Provider, threshold int) (string, string, error) {
	var native strings.Builder
	for i := 0; i < d.doc.NumPage(); i++ {
		txt, err := d.doc.Text(i)
		if err != nil {
			zap.L().Warn("pdf: page text", zap.Int("page", i), zap.Error(err))
			continue
		}
		native.WriteString(txt)
		native.WriteString("\n")
	}

	nativeText := strings.TrimSpace(native.String())
	if len(nativeText) >= threshold || provider == nil || !provider.Available() {
		return nativeText, model.MethodText, nil
	}

	ocrText, err := d.ocrAllPages(ctx, provider)
	if err != nil {
		zap.L().Warn("pdf: ocr fallback", zap.String("file", d.path), zap.Error(err))
		return nativeText, model.MethodText, nil
	}

	if nativeText == "" {
		return ocrText, model.MethodOCR, nil
	}
	return nativeText + "\n" + ocrText, model.MethodMixed, nil
}

func (d *Document) ocrAllPages(ctx context.Context, provider ocr.Provider) (string, error) {
	var out strings.Builder
	for i := 0; i < d.doc.NumPage(); i++ {
		img, err := d.PageImage(i, ocrDPI)
		if err != nil {
			return "", eris.Wrapf(err, "pdf: render page %d", i)
		}
		txt, err := provider.Recognize(ctx, img)
		if err != nil {
			return "", eris.Wrapf(err, "pdf: recognize page %d", i)
		}
		out.WriteString(txt)
		out.WriteString("\n")
	}
	return strings.TrimSpace(out.String()), nil
}

// PageImage renders one page at the given DPI.
func (d *Document) PageImage(page, dpi int) (image.Image, error) {
	img, err := d.doc.ImageDPI(page, float64(dpi))
	if err != nil {
		return nil, eris.Wrapf(err, "pdf: render page %d", page)
	}
	return img, nil
}

// LeadingPageImages renders the first pages for logo detection. Pages
// that fail to render are skipped.
func (d *Document) LeadingPageImages() []image.Image {
	n := d.doc.NumPage()
	if n > logoPages {
		n = logoPages
	}

	out := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		img, err := d.PageImage(i, logoDPI)
		if err != nil {
			zap.L().Warn("pdf: render logo page", zap.Int("page", i), zap.Error(err))
			continue
		}
		out = append(out, img)
	}
	return out
}

// LayoutBlocks returns per-page positioned text blocks, parsed from the
// MuPDF positioned-HTML rendition of each page. Pages that fail to
// render yield an empty block list.
func (d *Document) LayoutBlocks() [][]model.Block {
	pages := make([][]model.Block, d.doc.NumPage())
	for i := range pages {
		html, err := d.doc.HTML(i, true)
		if err != nil {
			zap.L().Warn("pdf: page html", zap.Int("page", i), zap.Error(err))
			continue
		}
		pages[i] = parsePageHTML(html)
	}
	return pages
}
