package model

// NotDetected is the sentinel value for a field no strategy could fill.
const NotDetected = "Not detected"

// Acquisition methods for the raw document text.
const (
	MethodText  = "TEXT"
	MethodOCR   = "OCR"
	MethodMixed = "MIXED"
)

// Field is one extracted value together with its confidence tier.
type Field struct {
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence"`
}

// ApplyIfLower is the single upgrade policy shared by every layer: the
// candidate is applied only when the current tier is below High and the
// candidate value is non-empty and not the sentinel. The tier never
// decreases — a candidate below the current tier keeps the current tier.
// Reports whether the field changed.
func (f *Field) ApplyIfLower(value string, tier Confidence) bool {
	if f.Confidence == High {
		return false
	}
	if value == "" || value == NotDetected {
		return false
	}
	f.Value = value
	if tier > f.Confidence {
		f.Confidence = tier
	}
	return true
}

// CostField carries the program cost as an amount plus currency code.
type CostField struct {
	Amount     string     `json:"amount"`
	Currency   string     `json:"currency"`
	Confidence Confidence `json:"confidence"`
}

// ApplyIfLower applies the upgrade policy to the cost pair.
func (f *CostField) ApplyIfLower(amount, currency string, tier Confidence) bool {
	if f.Confidence == High {
		return false
	}
	if amount == "" || amount == "N/A" {
		return false
	}
	f.Amount = amount
	f.Currency = currency
	if tier > f.Confidence {
		f.Confidence = tier
	}
	return true
}

// HRDCField records whether the brochure is HRDC claimable and how that
// was established (logo match ⇒ High, text keyword only ⇒ Medium).
type HRDCField struct {
	Certified  bool       `json:"certified"`
	Confidence Confidence `json:"confidence"`
}

// Record accumulates per-field extraction state across the three layers.
// One Record exists per document; layers mutate it in place under the
// upgrade-only rule.
type Record struct {
	Title     Field
	Date      Field
	Venue     Field
	Cost      CostField
	Trainer   Field
	Organiser Field
	HRDC      HRDCField

	// Method tags how the raw text was acquired (TEXT, OCR or MIXED).
	Method string

	flags []string
}

// NewRecord returns a Record with every field at the sentinel/Low state.
func NewRecord() *Record {
	return &Record{
		Title:     Field{Value: NotDetected},
		Date:      Field{Value: NotDetected},
		Venue:     Field{Value: NotDetected},
		Cost:      CostField{Amount: "N/A", Currency: "N/A"},
		Trainer:   Field{Value: NotDetected},
		Organiser: Field{Value: NotDetected},
	}
}

// AddFlag appends a diagnostic flag code. The flag log is append-only and
// never cleared by later layers.
func (r *Record) AddFlag(code string) {
	r.flags = append(r.flags, code)
}

// Flags returns a copy of the diagnostic flag log.
func (r *Record) Flags() []string {
	out := make([]string, len(r.flags))
	copy(out, r.flags)
	return out
}

// AllHigh reports whether every escalation-gated field is already at High
// confidence. When true, Layer 2 must not upgrade anything and Layer 3
// must not be invoked.
func (r *Record) AllHigh() bool {
	return r.Title.Confidence == High &&
		r.Date.Confidence == High &&
		r.Venue.Confidence == High &&
		r.Cost.Confidence == High &&
		r.Trainer.Confidence == High &&
		r.Organiser.Confidence == High
}
