package extract

import (
	"regexp"
	"strings"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

var (
	ownershipRe = regexp.MustCompile(`(?i)(organised by|organized by|hosted by|payable to)`)
	addressRe   = regexp.MustCompile(`(address|jalan|road|street|level|floor)`)
)

// organiser resolves the organising body in falling priority: about-section
// ownership line, explicit "organised/hosted by" phrase, backward scan above
// an address block, then a short generic line repeated at least three times.
// The extracted program title is blocked from matching so a title line is
// never mistaken for the organisation.
func organiser(text string) (string, model.Confidence) {
	lines := cleanLines(text)

	title, _ := programTitle(text)
	titleLower := ""
	if title != model.NotDetected {
		titleLower = strings.ToLower(title)
	}

	containsTitle := func(s string) bool {
		return titleLower != "" && strings.Contains(strings.ToLower(s), titleLower)
	}

	// About-section ownership: "<ORG>, with the support of ...".
	for i, line := range lines {
		if !strings.HasPrefix(strings.ToLower(line), "about") {
			continue
		}
		for j := i + 1; j < i+4 && j < len(lines); j++ {
			candidate := strings.TrimSpace(lines[j])
			if containsTitle(candidate) {
				continue
			}
			orgPart := strings.TrimSpace(strings.SplitN(candidate, ",", 2)[0])
			if containsTitle(orgPart) {
				continue
			}
			if looksLikeOrgGeneric(orgPart) {
				return orgPart, model.High
			}
		}
	}

	for _, line := range lines {
		if !ownershipRe.MatchString(line) {
			continue
		}
		candidate := line
		if idx := strings.Index(strings.ToLower(line), "by"); idx >= 0 {
			candidate = line[idx+2:]
		}
		candidate = strings.TrimSpace(candidate)
		if containsTitle(candidate) {
			continue
		}
		if looksLikeOrgGeneric(candidate) {
			return candidate, model.High
		}
	}

	// Address block backward scan: the organisation usually sits right above
	// its mailing address.
	for i, line := range lines {
		if !addressRe.MatchString(strings.ToLower(line)) {
			continue
		}
		for k := i - 1; k >= 0 && k > i-4; k-- {
			candidate := lines[k]
			if containsTitle(candidate) {
				continue
			}
			if looksLikeOrgGeneric(candidate) && !isLabel(candidate) {
				return candidate, model.Medium
			}
		}
	}

	// Repetition dominance: a short generic line appearing on most pages
	// (header/footer branding) is a decent organiser signal.
	freq := make(map[string]int)
	for _, line := range lines {
		if containsTitle(line) {
			continue
		}
		if looksLikeOrgGeneric(line) && len(strings.Fields(line)) <= 4 {
			freq[line]++
		}
	}
	top, count := "", 0
	for line, n := range freq {
		if n > count || (n == count && line < top) {
			top, count = line, n
		}
	}
	if count >= 3 {
		return top, model.Medium
	}

	return model.NotDetected, model.Low
}
