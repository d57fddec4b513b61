package model

// Confidence is the ordered certainty tier attached to an extracted field.
// The order is total: Low < Medium < High.
type Confidence int

const (
	Low Confidence = iota
	Medium
	High
)

// String returns the canonical tier label.
func (c Confidence) String() string {
	switch c {
	case High:
		return "High"
	case Medium:
		return "Medium"
	default:
		return "Low"
	}
}

// ParseConfidence maps a tier label to a Confidence. Unknown labels parse
// as Low so a malformed upstream value can only lower, never raise, a tier.
func ParseConfidence(s string) Confidence {
	switch s {
	case "High":
		return High
	case "Medium":
		return Medium
	default:
		return Low
	}
}

// AtLeast reports whether c is at or above other in the tier order.
func (c Confidence) AtLeast(other Confidence) bool {
	return c >= other
}
