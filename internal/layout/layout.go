// Package layout implements Layer 2: positional inference over PDF text
// blocks, with OCR assists for image-heavy pages. Every upgrade it makes
// caps at Medium confidence.
package layout

import (
	"context"
	"image"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/trainingdesk/brochure-cli/internal/config"
	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/internal/ocr"
)

const renderDPI = 200

var currencyRe = regexp.MustCompile(`(?i)(rm|usd)\s?([\d,]+(?:\.\d{2})?)`)

// PageImager renders a single page of the source document as an image.
type PageImager interface {
	PageImage(page, dpi int) (image.Image, error)
}

// Engine runs the layout fallbacks over a record.
type Engine struct {
	cfg config.LayoutConfig
	ocr ocr.Provider
}

// New builds an Engine. The OCR provider may be nil, in which case the
// OCR-backed fallbacks are skipped.
func New(cfg config.LayoutConfig, provider ocr.Provider) *Engine {
	return &Engine{cfg: cfg, ocr: provider}
}

// Apply mutates rec in place using per-page layout blocks and, where the
// blocks are not enough, OCR over rendered pages. Fields already at High
// are never touched. doc may be nil when no renderer is available.
func (e *Engine) Apply(ctx context.Context, rec *model.Record, pages [][]model.Block, doc PageImager) {
	if len(pages) == 0 {
		return
	}

	page0 := pages[0]

	e.applyLabels(rec, page0)
	e.applyPoster(rec, page0)
	e.applyTrainer(ctx, rec, pages, doc)
	e.applyOrganiser(ctx, rec, pages, doc)
}

// applyLabels resolves table-style "label: value" layouts on the first
// page. Fields below High take the value block nearest the label.
func (e *Engine) applyLabels(rec *model.Record, blocks []model.Block) {
	for _, b := range blocks {
		label := strings.ToLower(strings.TrimSpace(b.Text))

		switch label {
		case "title":
			if rec.Title.Confidence == model.High {
				continue
			}
			if value := e.valueNearLabel(blocks, b); value != "" {
				if rec.Title.ApplyIfLower(strings.TrimSpace(value), model.Medium) {
					rec.AddFlag("LAYOUT_TITLE_LABEL")
				}
			}

		case "date":
			if rec.Date.Confidence == model.High {
				continue
			}
			if value := e.valueNearLabel(blocks, b); value != "" {
				if rec.Date.ApplyIfLower(strings.TrimSpace(value), model.Medium) {
					rec.AddFlag("LAYOUT_DATE_LABEL")
				}
			}

		case "venue":
			if rec.Venue.Confidence == model.High {
				continue
			}
			if value := e.valueNearLabel(blocks, b); value != "" {
				if rec.Venue.ApplyIfLower(strings.TrimSpace(value), model.Medium) {
					rec.AddFlag("LAYOUT_VENUE_LABEL")
				}
			}

		case "cost", "fee", "fees", "price":
			if rec.Cost.Confidence == model.High {
				continue
			}
			value := e.valueNearLabel(blocks, b)
			if value == "" {
				continue
			}
			if m := currencyRe.FindStringSubmatch(value); m != nil {
				amount := strings.ReplaceAll(m[2], ",", "")
				if rec.Cost.ApplyIfLower(amount, strings.ToUpper(m[1]), model.Medium) {
					rec.AddFlag("LAYOUT_COST_LABEL")
				}
			}
		}
	}
}

// valueNearLabel picks the block nearest the label: to the right within
// the vertical tolerance, or below within the horizontal tolerance.
func (e *Engine) valueNearLabel(blocks []model.Block, label model.Block) string {
	type candidate struct {
		offset float64
		text   string
	}
	var candidates []candidate

	for _, b := range blocks {
		switch {
		case b.X0 > label.X1 && abs(b.Y0-label.Y0) < e.cfg.LabelTolerance:
			candidates = append(candidates, candidate{offset: b.X0 - label.X1, text: b.Text})
		case b.Y0 > label.Y1 && abs(b.X0-label.X0) < e.cfg.LabelTolerance:
			candidates = append(candidates, candidate{offset: b.Y0 - label.Y1, text: b.Text})
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.offset < best.offset || (c.offset == best.offset && c.text < best.text) {
			best = c
		}
	}
	return best.text
}

// applyPoster runs the poster-style block heuristics. These only fire for
// fields still at Low, to avoid displacing Layer 1 results.
func (e *Engine) applyPoster(rec *model.Record, blocks []model.Block) {
	if rec.Title.Confidence == model.Low {
		if title := e.inferTitle(blocks); title != "" {
			if rec.Title.ApplyIfLower(strings.TrimSpace(title), model.Medium) {
				rec.AddFlag("LAYOUT_TITLE")
			}
		}
	}

	if rec.Date.Confidence == model.Low {
		if date := inferDate(blocks); date != "" {
			if rec.Date.ApplyIfLower(strings.TrimSpace(date), model.Medium) {
				rec.AddFlag("LAYOUT_DATE")
			}
		}
	}

	if rec.Venue.Confidence == model.Low {
		if venue := inferVenue(blocks); venue != "" {
			if rec.Venue.ApplyIfLower(strings.TrimSpace(venue), model.Medium) {
				rec.AddFlag("LAYOUT_VENUE")
			}
		}
	}

	if rec.Cost.Confidence == model.Low {
		if amount, currency, ok := inferCost(blocks); ok {
			if rec.Cost.ApplyIfLower(amount, currency, model.Medium) {
				rec.AddFlag("LAYOUT_COST")
			}
		}
	}
}

func (e *Engine) renderPage(ctx context.Context, doc PageImager, page int) (string, bool) {
	if e.ocr == nil || doc == nil {
		return "", false
	}

	img, err := doc.PageImage(page, renderDPI)
	if err != nil {
		zap.L().Warn("layout: render page for OCR", zap.Int("page", page), zap.Error(err))
		return "", false
	}

	text, err := e.ocr.Recognize(ctx, img)
	if err != nil {
		zap.L().Warn("layout: ocr page", zap.Int("page", page), zap.Error(err))
		return "", false
	}
	return text, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
