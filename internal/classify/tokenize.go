package classify

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	tokenRe      = regexp.MustCompile(`[a-z0-9]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// stopWords are generic training vocabulary that carries no category
// signal and would otherwise dominate the lexical scores.
var stopWords = map[string]bool{
	"training": true, "program": true, "course": true, "workplace": true,
	"roles": true, "role": true, "employee": true, "staff": true,
	"learn": true, "learning": true, "session": true, "module": true,
	"participants": true, "skills": true, "skill": true, "basic": true,
	"introduction": true, "overview": true, "using": true, "use": true,
	"management": true, "development": true,
}

// tokenize lowercases, extracts alphanumeric runs and drops stop words.
// Two-character tokens stay so terms like "ai" survive.
func tokenize(text string) []string {
	var out []string
	for _, t := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if len(t) >= 2 && !stopWords[t] {
			out = append(out, t)
		}
	}
	return out
}

// cleanText NFKC-folds the text (PDF extraction emits ligatures and
// non-breaking space variants) and collapses whitespace.
func cleanText(s string) string {
	s = norm.NFKC.String(s)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
