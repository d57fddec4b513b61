package pdf

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

// MuPDF positioned HTML puts each text line in a <p> carrying top/left
// offsets in points, with per-run font sizes on nested spans.
var (
	paraRe     = regexp.MustCompile(`(?s)<p style="top:([\d.]+)pt;left:([\d.]+)pt;[^"]*">(.*?)</p>`)
	fontSizeRe = regexp.MustCompile(`font-size:([\d.]+)pt`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
)

const (
	defaultFontSize = 12.0
	// Approximate glyph advance as a share of the font size; MuPDF HTML
	// carries no right/bottom edge so the box is estimated.
	glyphWidthRatio = 0.5
	lineHeightRatio = 1.2
)

// parsePageHTML extracts positioned text blocks from one page's HTML.
// Empty lines are dropped; block order follows the reading order MuPDF
// emits.
func parsePageHTML(page string) []model.Block {
	matches := paraRe.FindAllStringSubmatch(page, -1)
	blocks := make([]model.Block, 0, len(matches))

	for _, m := range matches {
		top, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		left, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}

		size := maxFontSize(m[3])
		text := strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(m[3], " ")))
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			continue
		}

		blocks = append(blocks, model.Block{
			Text: text,
			X0:   left,
			Y0:   top,
			X1:   left + glyphWidthRatio*size*float64(len(text)),
			Y1:   top + lineHeightRatio*size,
			Size: size,
		})
	}

	return blocks
}

// maxFontSize returns the largest font size among the line's spans, so a
// line mixing sizes counts as its most prominent run.
func maxFontSize(inner string) float64 {
	size := 0.0
	for _, m := range fontSizeRe.FindAllStringSubmatch(inner, -1) {
		if s, err := strconv.ParseFloat(m[1], 64); err == nil && s > size {
			size = s
		}
	}
	if size == 0 {
		return defaultFontSize
	}
	return size
}
