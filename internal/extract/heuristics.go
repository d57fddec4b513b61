package extract

import (
	"regexp"
	"strings"
)

// Shared person/organisation heuristics used by the trainer and organiser
// rules. These are deliberately strict: a false "Not detected" is cheaper
// than a topic heading autofilled as a person.

var (
	digitSymbolRe = regexp.MustCompile(`[\d%$@#/]`)
	lowerRunRe    = regexp.MustCompile(`[a-z]+`)
	properWordRe  = regexp.MustCompile(`^[A-Z][a-z]+(?:[-'][A-Z][a-z]+)?\.?$`)
	personLikeRe  = regexp.MustCompile(`^[A-Z][a-z]+(?:\s[A-Z][a-z]+){1,2}$`)
	regionRoleRe  = regexp.MustCompile(`^[A-Z]{2,}\s+TRAINER$`)
	copyrightRe   = regexp.MustCompile(`(©|copyright|all rights reserved)`)
	sentenceRe    = regexp.MustCompile(`\b(is|are|will|can|to|for|with|that)\b`)
	hasDigitRe    = regexp.MustCompile(`\d`)
)

// topicBlock rejects heading/topic vocabulary that would otherwise pass the
// proper-case name shape (e.g. "Risk Management", "Contract Negotiation").
var topicBlock = map[string]bool{
	"risk": true, "management": true, "allocation": true, "negotiation": true,
	"strategy": true, "planning": true, "chatgpt": true, "ai": true,
	"office": true, "productivity": true, "contract": true, "leadership": true,
	"development": true, "programme": true, "program": true, "course": true,
	"session": true, "module": true, "overview": true, "outcomes": true,
	"objectives": true, "agenda": true, "introduction": true,
}

var roleBlock = []string{"trainer", "speaker", "facilitator", "profile", "expert", "management"}

// Name connectors that don't need proper casing (bin/binti, a/l, van, de...).
var nameConnectors = map[string]bool{
	"bin": true, "binti": true, "a/l": true, "a/p": true,
	"van": true, "von": true, "de": true, "da": true, "di": true,
}

// looksLikePerson reports whether a line passes the person-name heuristic:
// 2-4 proper-cased words, 5-35 chars, no digits or symbols, no topic or
// role vocabulary.
func looksLikePerson(name string) bool {
	name = strings.TrimSpace(name)
	words := strings.Fields(name)

	if len(words) < 2 || len(words) > 4 || len(name) < 5 || len(name) > 35 {
		return false
	}
	if digitSymbolRe.MatchString(name) {
		return false
	}

	lower := strings.ToLower(name)
	for _, w := range lowerRunRe.FindAllString(lower, -1) {
		if topicBlock[w] {
			return false
		}
	}
	for _, w := range roleBlock {
		if strings.Contains(lower, w) {
			return false
		}
	}

	capsOK := 0
	for _, w := range words {
		wl := strings.ToLower(strings.Trim(w, ".,()"))
		if nameConnectors[wl] {
			continue
		}
		if !properWordRe.MatchString(strings.Trim(w, ",.")) {
			return false
		}
		capsOK++
	}

	return capsOK >= 2
}

// looksLikeHeading identifies lines that are section headings rather than
// values: long lines, label-style "X Y:" lines, and qualifier+TRAINER
// headers ("REGIONAL TRAINER").
func looksLikeHeading(s string) bool {
	s = strings.TrimSpace(s)

	if len(strings.Fields(s)) >= 4 {
		return true
	}
	if idx := strings.Index(s, ":"); idx >= 0 {
		if len(strings.Fields(s[:idx])) >= 2 {
			return true
		}
	}
	return regionRoleRe.MatchString(s)
}

func isPersonLike(s string) bool {
	return personLikeRe.MatchString(s)
}

var labelWords = map[string]bool{
	"about": true, "venue": true, "date": true, "agenda": true,
	"registration": true, "invoice": true, "contact": true,
	"payment": true, "trainer": true, "speaker": true,
}

func isLabel(s string) bool {
	return labelWords[strings.ToLower(s)]
}

// looksLikeOrgGeneric accepts short, non-sentence, non-copyright lines with
// no digits, emails or person-shaped names as plausible organisation names.
func looksLikeOrgGeneric(s string) bool {
	s = strings.TrimSpace(s)

	if len(s) < 4 || len(s) > 80 {
		return false
	}
	if looksLikeSentence(s) || looksLikeCopyright(s) {
		return false
	}
	if strings.Contains(s, "@") || hasDigitRe.MatchString(s) {
		return false
	}
	return !isPersonLike(s)
}

func looksLikeSentence(s string) bool {
	return strings.HasSuffix(s, ".") ||
		strings.Count(s, " ") >= 6 ||
		sentenceRe.MatchString(strings.ToLower(s))
}

func looksLikeCopyright(s string) bool {
	return copyrightRe.MatchString(strings.ToLower(s))
}
