package extract

import (
	"regexp"
	"strings"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

var (
	titleLabelRe   = regexp.MustCompile(`(?i)(course title|program title)`)
	titleSplitRe   = regexp.MustCompile(`[:\-]`)
	stackedFirstRe = regexp.MustCompile(`^[A-Z][A-Za-z ]+$`)
	stackedNextRe  = regexp.MustCompile(`(?i)^and [A-Za-z ]+$`)
)

// programTitle prefers an explicit title label (High), then a two-line
// stacked poster heading (Medium).
func programTitle(text string) (string, model.Confidence) {
	lines := cleanLines(text)

	for i, line := range lines {
		if !titleLabelRe.MatchString(line) {
			continue
		}
		parts := titleSplitRe.Split(line, 2)
		if len(parts) == 2 {
			if v := strings.TrimSpace(parts[1]); len(v) > 5 {
				return v, model.High
			}
		}
		for j := i + 1; j < i+4 && j < len(lines); j++ {
			if len(lines[j]) > 5 {
				return lines[j], model.High
			}
		}
	}

	// Poster-style stacked title: "Strategic Procurement" / "and Contract Mastery".
	for i := 0; i+1 < len(lines); i++ {
		if stackedFirstRe.MatchString(lines[i]) && stackedNextRe.MatchString(lines[i+1]) {
			return lines[i] + " " + lines[i+1], model.Medium
		}
	}

	return model.NotDetected, model.Low
}
