package layout

import (
	"regexp"
	"strings"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

const layoutMonths = `(jan|feb|mar|april|may|june|july|aug|sep|oct|nov|dec)`

var (
	layoutDateRe = regexp.MustCompile(
		`(?i)\d{1,2}(st|nd|rd|th)?\s*(to|–|-)\s*\d{1,2}(st|nd|rd|th)?\s*` +
			layoutMonths + `[a-z]*\s*\d{4}` +
			`|\d{1,2}(st|nd|rd|th)?\s*` + layoutMonths + `[a-z]*\s*\d{4}`)
	dateContinuationRe = regexp.MustCompile(`(\d{4}|to|-)`)
)

var venueKeywords = []string{
	"hall", "hotel", "centre", "center",
	"campus", "auditorium",
}

var costSignalWords = []string{
	"promo", "promotion", "special", "early bird",
	"fees", "fee", "price", "cost",
}

// inferDate picks the highest-placed dated block, merging an immediately
// following block when it continues the date (a year, "to", or a dash).
func inferDate(blocks []model.Block) string {
	bestScore := 0.0
	best := ""

	for i, b := range blocks {
		if !layoutDateRe.MatchString(b.Text) {
			continue
		}

		dateText := strings.TrimSpace(b.Text)
		if i+1 < len(blocks) {
			nxt := blocks[i+1]
			if abs(nxt.Y0-b.Y1) < 20 && dateContinuationRe.MatchString(nxt.Text) {
				dateText += " " + strings.TrimSpace(nxt.Text)
			}
		}

		score := 1000 - b.Y0
		if best == "" || score > bestScore || (score == bestScore && dateText > best) {
			bestScore = score
			best = dateText
		}
	}

	return best
}

// inferVenue picks the highest-placed block mentioning a venue keyword.
func inferVenue(blocks []model.Block) string {
	bestScore := 0.0
	best := ""

	for _, b := range blocks {
		text := strings.ToLower(b.Text)
		match := false
		for _, k := range venueKeywords {
			if strings.Contains(text, k) {
				match = true
				break
			}
		}
		if !match {
			continue
		}

		score := 1000 - b.Y0
		if best == "" || score > bestScore || (score == bestScore && b.Text > best) {
			bestScore = score
			best = b.Text
		}
	}

	return best
}

// inferCost scores every priced block by visual prominence, boosting
// promo phrasing and penalising crossed-out "normal" prices.
func inferCost(blocks []model.Block) (amount, currency string, ok bool) {
	bestScore := 0.0

	for _, b := range blocks {
		text := strings.ToLower(b.Text)

		m := currencyRe.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		score := b.Size*2 + max(0, 1000-b.Y0)
		for _, w := range costSignalWords {
			if strings.Contains(text, w) {
				score += 800
				break
			}
		}
		if strings.Contains(text, "normal") || strings.Contains(text, "was") {
			score -= 400
		}

		if !ok || score > bestScore {
			bestScore = score
			amount = strings.ReplaceAll(m[2], ",", "")
			currency = strings.ToUpper(m[1])
			ok = true
		}
	}

	return amount, currency, ok
}
