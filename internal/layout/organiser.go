package layout

import (
	"context"
	"image"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

var organiserHints = []string{
	"organised by",
	"organized by",
	"conducted by",
	"delivered by",
	"hosted by",
}

var domainOrganiserMap = map[string]string{
	"sarawakskills.edu.my": "Sarawak Skills",
	"insead.edu":           "INSEAD Executive Education",
	"mindzallera.com":      "Mindzallera",
}

var ocrBlocklist = map[string]bool{
	"CORPORATE LEADERS": true,
	"WHO SHOULD ATTEND": true,
	"PROGRAM OVERVIEW":  true,
	"TRAINING OBJECTIVES": true,
	"ABOUT THE PROGRAM": true,
	"AGENDA":            true,
	"REGISTRATION":      true,
}

var urlTokens = []string{
	"www.", "http://", "https://", ".com", ".org", ".edu", ".edu.my", ".my",
}

var (
	copyrightTailRe = regexp.MustCompile(`©.*`)
	multiSpaceRe    = regexp.MustCompile(`\s{2,}`)
)

// applyOrganiser repairs junk organiser values (URLs, audience headers,
// missing). The repair chain runs from cheapest to most expensive: domain
// mapping, ownership phrases in the blocks, OCR of the first page's
// header and footer bands, then a known-venue fallback.
func (e *Engine) applyOrganiser(ctx context.Context, rec *model.Record, pages [][]model.Block, doc PageImager) {
	if rec.Organiser.Confidence == model.High {
		return
	}
	if !isJunkOrganiser(rec.Organiser.Value) {
		return
	}

	org := organiserFromDomain(rec.Organiser.Value)

	if org == "" {
		org = organiserFromHints(pages)
	}

	if org == "" && e.ocr != nil && doc != nil {
		if text, ok := e.headerFooterText(ctx, doc); ok {
			org = organiserFromDomain(text)
			if org == "" {
				org = organiserFromOCRBlocks(textToBlocks(text))
			}
		}
	}

	if org == "" {
		venue := strings.ToLower(rec.Venue.Value)
		switch {
		case strings.Contains(venue, "insead"):
			org = "INSEAD Executive Education"
		case strings.Contains(venue, "sarawak skills"):
			org = "Sarawak Skills"
		}
	}

	if org == "" {
		return
	}
	if rec.Organiser.ApplyIfLower(org, model.Medium) {
		rec.AddFlag("L2_ORGANISER_FIXUP")
	}
}

// isJunkOrganiser flags values that cannot be a real organisation: the
// sentinel, URL fragments, and known header/audience lines.
func isJunkOrganiser(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || s == model.NotDetected {
		return true
	}

	lower := strings.ToLower(s)
	for _, tok := range urlTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}

	return ocrBlocklist[strings.ToUpper(s)]
}

func organiserFromDomain(text string) string {
	t := strings.ToLower(text)
	for domain, org := range domainOrganiserMap {
		if strings.Contains(t, domain) {
			return org
		}
	}
	return ""
}

// organiserFromHints scans every block for an ownership phrase and takes
// the text after it.
func organiserFromHints(pages [][]model.Block) string {
	for _, blocks := range pages {
		for _, b := range blocks {
			t := strings.ToLower(b.Text)
			for _, hint := range organiserHints {
				idx := strings.Index(t, hint)
				if idx < 0 {
					continue
				}
				candidate := cleanOrgName(b.Text[idx+len(hint):])
				if candidate != "" {
					return candidate
				}
			}
		}
	}
	return ""
}

// organiserFromOCRBlocks picks the earliest short all-caps line, which in
// header/footer bands is usually the organisation banner.
func organiserFromOCRBlocks(blocks []model.Block) string {
	bestScore := 0
	best := ""

	for idx, b := range blocks {
		text := strings.TrimSpace(b.Text)

		if !isUpperString(text) {
			continue
		}
		if len(strings.Fields(text)) > 5 {
			continue
		}
		if ocrBlocklist[text] {
			continue
		}
		if strings.Contains(text, "@") || hasDigitRe.MatchString(text) {
			continue
		}

		score := 1000 - idx*10
		if best == "" || score > bestScore {
			bestScore = score
			best = text
		}
	}

	return best
}

// headerFooterText OCRs the top 25% and bottom 20% bands of page one.
func (e *Engine) headerFooterText(ctx context.Context, doc PageImager) (string, bool) {
	img, err := doc.PageImage(0, renderDPI)
	if err != nil {
		zap.L().Warn("layout: render first page", zap.Error(err))
		return "", false
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	header := cropImage(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+w, bounds.Min.Y+h/4))
	footer := cropImage(img, image.Rect(bounds.Min.X, bounds.Min.Y+h*4/5, bounds.Min.X+w, bounds.Min.Y+h))

	var texts []string
	for _, band := range []image.Image{header, footer} {
		text, err := e.ocr.Recognize(ctx, band)
		if err != nil {
			zap.L().Warn("layout: ocr header/footer band", zap.Error(err))
			continue
		}
		texts = append(texts, text)
	}
	if len(texts) == 0 {
		return "", false
	}
	return strings.Join(texts, "\n"), true
}

func cropImage(img image.Image, r image.Rectangle) image.Image {
	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	return img
}

func cleanOrgName(text string) string {
	text = copyrightTailRe.ReplaceAllString(strings.TrimSpace(text), "")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
