package extract

import "strings"

var hrdcKeywords = []string{
	"hrdc",
	"hrdf",
	"hrd claimable",
	"hrdc claimable",
	"claimable under hrdc",
	"claimable under hrdf",
}

// detectHRDCKeywords reports whether the raw text mentions HRDC
// claimability. Keyword presence alone is only Medium-grade evidence; the
// pipeline corroborates it against the claimability logo.
func detectHRDCKeywords(text string) bool {
	t := strings.ToLower(text)
	for _, kw := range hrdcKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}
