package layout

import (
	"strings"
	"unicode"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

var titleSignalWords = []string{
	"training", "workshop", "programme", "program",
	"course", "leadership", "management", "digital",
	"advanced", "introduction", "fundamentals",
	"resilience", "sustainability",
}

var nonTitleWords = []string{
	"ABOUT", "OVERVIEW", "OBJECTIVES", "WHO SHOULD ATTEND",
	"REGISTRATION", "FORM", "CONTACT", "EMAIL", "PHONE",
	"SDN BHD", "FEES", "PACKAGE", "PARTICIPANT",
}

// inferTitle scores every large-font block on the page as a poster-title
// candidate. Adjacent same-size lines merge into one candidate, and the
// score blends merged length, font size and page position, penalising
// all-caps brand headers and candidates without training vocabulary.
func (e *Engine) inferTitle(blocks []model.Block) string {
	maxFont := 0.0
	hasValid := false
	for _, b := range blocks {
		if len(strings.TrimSpace(b.Text)) > 5 {
			hasValid = true
			if b.Size > maxFont {
				maxFont = b.Size
			}
		}
	}
	if !hasValid {
		return ""
	}

	bestScore := -1.0
	best := ""

	for i, b := range blocks {
		text := strings.TrimSpace(b.Text)

		if b.Size < maxFont*e.cfg.TitleFontRatio {
			continue
		}
		if isNonTitleLine(text) {
			continue
		}

		positionWeight := 0.2
		if b.Y0 < e.cfg.TitleUpperCutoff {
			positionWeight = 1.0
		}

		merged := []string{text}
		currY := b.Y1
		for j := i + 1; j < len(blocks); j++ {
			nxt := blocks[j]
			if abs(nxt.Y0-currY) > e.cfg.TitleMergeGap {
				break
			}
			if abs(nxt.Size-b.Size) > 1.0 {
				break
			}
			if isNonTitleLine(nxt.Text) {
				break
			}
			merged = append(merged, strings.TrimSpace(nxt.Text))
			currY = nxt.Y1
		}
		mergedText := strings.Join(merged, " ")

		score := float64(len(mergedText))*2 +
			b.Size*1.5 +
			positionWeight*1000/(b.Y0+1)
		if looksLikeBrandHeader(text) {
			score -= 200
		}
		if !hasTitleSignal(mergedText) {
			score -= 150
		}

		if score > bestScore {
			bestScore = score
			best = mergedText
		}
	}

	return best
}

func hasTitleSignal(text string) bool {
	t := strings.ToLower(text)
	for _, w := range titleSignalWords {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}

func isNonTitleLine(text string) bool {
	upper := strings.ToUpper(text)
	for _, w := range nonTitleWords {
		if strings.Contains(upper, w) {
			return true
		}
	}
	return false
}

// looksLikeBrandHeader matches short all-caps lines like company headers.
func looksLikeBrandHeader(text string) bool {
	return isUpperString(text) && len(strings.Fields(text)) <= 4
}

// isUpperString reports whether the string has cased letters and none of
// them lowercase.
func isUpperString(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}
