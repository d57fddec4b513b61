package model

import "strings"

// Category is one taxonomy record. Immutable after load; no two loaded
// categories share (domain, name) case-insensitively.
type Category struct {
	Domain     string `json:"domain"`
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Remarks    string `json:"remarks"`
	Keywords   string `json:"keywords"`
}

// Blob is the retrieval corpus document for the category: all non-empty
// attributes joined by a separator.
func (c Category) Blob() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{c.Domain, c.Name, c.Definition, c.Remarks, c.Keywords} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

// Key returns the case-insensitive dedup key.
func (c Category) Key() string {
	return strings.ToLower(strings.TrimSpace(c.Domain)) + "\x00" + strings.ToLower(strings.TrimSpace(c.Name))
}

// Candidate is a scored retrieval candidate produced per classification
// call. Score is the fused ranking score; Semantic and Lexical carry the
// per-signal breakdown (Lexical is normalized within the candidate pool).
type Candidate struct {
	Category Category `json:"category"`
	Score    float64  `json:"score"`
	Semantic float64  `json:"semantic"`
	Lexical  float64  `json:"lexical"`
}
