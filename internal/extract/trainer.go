package extract

import (
	"regexp"
	"strings"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

var (
	trainerProfileRe = regexp.MustCompile(`(?i)^(trainer profile|trainer profiles)$`)
	bioStartRe       = regexp.MustCompile(`\b(is|has|was)\b`)
	roleSplitRe      = regexp.MustCompile(`[:\-–—]`)

	trainerRoleRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\blead trainer\b`),
		regexp.MustCompile(`(?i)\bcourse leader\b`),
		regexp.MustCompile(`(?i)\bcourseleader\b`),
		regexp.MustCompile(`(?i)\bfacilitator\b`),
		regexp.MustCompile(`(?i)\bspeaker\b`),
		regexp.MustCompile(`(?i)\bconducted by\b`),
		regexp.MustCompile(`(?i)\bpresented by\b`),
		regexp.MustCompile(`(?i)\btrainer profile\b`),
	}
	genericTrainerRe = regexp.MustCompile(`(?i)\btrainer\b`)
)

// trainer looks for a trainer-profile section header and collects up to two
// subsequent person-name lines (High); otherwise falls back to role-label
// co-located names (High); otherwise Low.
func trainer(text string) (string, model.Confidence) {
	lines := cleanLines(text)

	for i, line := range lines {
		if !trainerProfileRe.MatchString(line) {
			continue
		}

		var candidates []string
		for j := i + 1; j < i+8 && j < len(lines); j++ {
			candidate := strings.TrimSpace(lines[j])

			if looksLikeHeading(candidate) {
				continue
			}
			// Bio prose starts here; names come before it.
			if bioStartRe.MatchString(strings.ToLower(candidate)) {
				break
			}
			if looksLikePerson(candidate) {
				candidates = append(candidates, candidate)
			}
			if len(candidates) == 2 {
				break
			}
		}

		if len(candidates) > 0 {
			return strings.Join(candidates, "; "), model.High
		}
	}

	for i, line := range lines {
		if name, ok := roleLabelName(lines, i, line); ok {
			return name, model.High
		}
	}

	return model.NotDetected, model.Low
}

// roleLabelName checks a single line for a role label with a person name on
// the same line (after a separator) or on one of the next two lines.
func roleLabelName(lines []string, i int, line string) (string, bool) {
	matched := false
	for _, re := range trainerRoleRes {
		if re.MatchString(line) {
			matched = true
			break
		}
	}
	// A bare "trainer" mention only counts when the line is heading-shaped,
	// otherwise body prose like "our trainer will..." matches.
	if !matched && genericTrainerRe.MatchString(line) && looksLikeHeading(line) {
		matched = true
	}
	if !matched {
		return "", false
	}

	if parts := roleSplitRe.Split(line, 2); len(parts) == 2 && looksLikePerson(parts[1]) {
		return strings.TrimSpace(parts[1]), true
	}

	for _, offset := range []int{1, 2} {
		if i+offset >= len(lines) {
			continue
		}
		candidate := strings.TrimSpace(lines[i+offset])
		if looksLikeHeading(candidate) {
			continue
		}
		if looksLikePerson(candidate) {
			return candidate, true
		}
	}

	return "", false
}
