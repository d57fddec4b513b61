package model

import (
	"fmt"
	"strings"
)

// Overall contract status. READY_TO_FILL requires a High-confidence date;
// everything else lands in PENDING_REVIEW.
const (
	StatusReadyToFill   = "READY_TO_FILL"
	StatusPendingReview = "PENDING_REVIEW"
)

// Contract is the external-facing record built once per document.
// All fields are primitive; ReviewFlags is flattened to a primitive by
// Flat before crossing the boundary.
type Contract struct {
	File string `json:"file"`

	ProgramTitle string `json:"program_title"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Venue        string `json:"venue"`

	CostAmount   string `json:"cost_amount"`
	CostCurrency string `json:"cost_currency"`

	Trainer           string `json:"trainer"`
	TrainingOrganiser string `json:"training_organiser"`

	ConfidenceTitle     string `json:"confidence_program_title"`
	ConfidenceDate      string `json:"confidence_date"`
	ConfidenceVenue     string `json:"confidence_venue"`
	ConfidenceCost      string `json:"confidence_cost"`
	ConfidenceTrainer   string `json:"confidence_trainer"`
	ConfidenceOrganiser string `json:"confidence_organiser"`

	HRDCCertified  bool   `json:"hrdc_certified"`
	ConfidenceHRDC string `json:"confidence_hrdc"`

	Category           string `json:"category"`
	ConfidenceCategory string `json:"confidence_category"`

	Method      string   `json:"method"`
	ReviewFlags []string `json:"review_flags"`
	Status      string   `json:"status"`
}

// Flat renders the contract as a flat key→primitive map. Anything that is
// not already a string, number or boolean is stringified; nil becomes the
// empty string. This is the only shape allowed across the export and HTTP
// boundaries.
func (c *Contract) Flat() map[string]any {
	return map[string]any{
		"file":                     c.File,
		"program_title":            c.ProgramTitle,
		"start_date":               c.StartDate,
		"end_date":                 c.EndDate,
		"venue":                    c.Venue,
		"cost_amount":              c.CostAmount,
		"cost_currency":            c.CostCurrency,
		"trainer":                  c.Trainer,
		"training_organiser":       c.TrainingOrganiser,
		"confidence_program_title": c.ConfidenceTitle,
		"confidence_date":          c.ConfidenceDate,
		"confidence_venue":         c.ConfidenceVenue,
		"confidence_cost":          c.ConfidenceCost,
		"confidence_trainer":       c.ConfidenceTrainer,
		"confidence_organiser":     c.ConfidenceOrganiser,
		"hrdc_certified":           c.HRDCCertified,
		"confidence_hrdc":          c.ConfidenceHRDC,
		"category":                 c.Category,
		"confidence_category":      c.ConfidenceCategory,
		"method":                   c.Method,
		"review_flags":             strings.Join(c.ReviewFlags, "; "),
		"status":                   c.Status,
	}
}

// CoercePrimitive forces an arbitrary value into a primitive for the
// external boundary. Contract violations are coerced, never raised.
func CoercePrimitive(v any) any {
	switch v := v.(type) {
	case nil:
		return ""
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
