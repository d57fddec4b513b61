package extract

import (
	"regexp"
	"strings"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

var (
	hotelBrandRe  = regexp.MustCompile(`(?i)(ritz[- ]carlton|marriott|hotel)`)
	venuePrefixRe = regexp.MustCompile(`(?i)^venue\s*[:\-]\s*`)
)

func cleanVenueText(s string) string {
	return strings.TrimSpace(venuePrefixRe.ReplaceAllString(s, ""))
}

// venue prefers a named hotel/venue brand, then an explicit "venue" label
// followed by non-empty text, then a known-campus substring fallback.
func venue(text string) (string, model.Confidence) {
	lines := cleanLines(text)

	for _, line := range lines {
		if hotelBrandRe.MatchString(line) {
			return cleanVenueText(line), model.High
		}
	}

	for i, line := range lines {
		if strings.ToLower(line) != "venue" {
			continue
		}
		for j := i + 1; j < i+6 && j < len(lines); j++ {
			if lines[j] != ":" {
				return cleanVenueText(lines[j]), model.High
			}
		}
	}

	if strings.Contains(strings.ToLower(text), "insead") {
		return "INSEAD campus, Singapore / Malaysia", model.Medium
	}

	return model.NotDetected, model.Low
}
