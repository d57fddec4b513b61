package classify

import (
	"strings"

	"github.com/trainingdesk/brochure-cli/internal/config"
)

// BuildWeightedText assembles the retrieval query for one brochure. The
// title and agenda repeat per their boost factors so they outweigh body
// noise, and the raw text contributes only a leading slice to keep
// footer/legal boilerplate from steering retrieval.
func BuildWeightedText(cfg config.ClassifyConfig, title, agenda, desc, raw string) string {
	var parts []string

	if title != "" {
		boost := cfg.TitleBoost
		if boost < 1 {
			boost = 1
		}
		repeated := make([]string, boost)
		for i := range repeated {
			repeated[i] = title
		}
		parts = append(parts, "TITLE: "+strings.Join(repeated, " "))
	}

	if agenda != "" {
		boost := cfg.AgendaBoost
		if boost < 1 {
			boost = 1
		}
		repeated := make([]string, boost)
		for i := range repeated {
			repeated[i] = agenda
		}
		parts = append(parts, "AGENDA: "+strings.Join(repeated, " "))
	}

	if desc != "" {
		parts = append(parts, "DESC: "+desc)
	}

	if t := cleanText(raw); t != "" {
		slice := cfg.RawSlice
		if slice <= 0 || slice > len(t) {
			slice = len(t)
		}
		parts = append(parts, "RAW: "+t[:slice])
	}

	return cleanText(strings.Join(parts, " "))
}
