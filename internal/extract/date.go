package extract

import (
	"regexp"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

var (
	agendaDateRe = regexp.MustCompile(
		`(?i)(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday),?\s*` +
			`\d{1,2}(?:st|nd|rd|th)?\s+(?:` + monthsPattern + `)\s+\d{4}`)
	ordinalRe   = regexp.MustCompile(`(?i)(\d{1,2})(st|nd|rd|th)`)
	dayNumberRe = regexp.MustCompile(`\d{1,2}`)
	monthYearRe = regexp.MustCompile(`(?i)(?:` + monthsPattern + `)\s+\d{4}`)
	dateRangeRe = regexp.MustCompile(`(?i)\d{1,2}\s*[-–—]\s*\d{1,2}\s+(?:` + monthsPattern + `)\s+\d{4}`)
	singleDateRe = regexp.MustCompile(`(?i)\d{1,2}\s+(?:` + monthsPattern + `)\s+\d{4}`)
)

// programDate prefers weekday-qualified agenda dates; multiple distinct
// agenda dates collapse into a day-range sharing the month/year. Falls
// back to an explicit day-day range, then a single dated mention.
func programDate(text string) (string, model.Confidence) {
	normalized := normalizeSpace(text)

	if agenda := agendaDateRe.FindAllString(normalized, -1); len(agenda) > 0 {
		// Normalize ordinals (21ST July → 21 July) and dedup in order.
		seen := make(map[string]bool, len(agenda))
		var unique []string
		for _, d := range agenda {
			cleaned := ordinalRe.ReplaceAllString(d, "$1")
			if !seen[cleaned] {
				seen[cleaned] = true
				unique = append(unique, cleaned)
			}
		}

		if len(unique) == 1 {
			return unique[0], model.High
		}

		monthYear := monthYearRe.FindString(unique[0])
		if monthYear == "" {
			return unique[0], model.High
		}

		firstDay := dayNumberRe.FindString(unique[0])
		lastDay := dayNumberRe.FindString(unique[len(unique)-1])
		return firstDay + "–" + lastDay + " " + monthYear, model.High
	}

	if m := dateRangeRe.FindString(normalized); m != "" {
		return m, model.High
	}
	if m := singleDateRe.FindString(normalized); m != "" {
		return m, model.Medium
	}

	return model.NotDetected, model.Low
}
