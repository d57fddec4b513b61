// Package contract builds the external-facing contract from a finished
// extraction record.
package contract

import (
	"github.com/trainingdesk/brochure-cli/internal/model"
)

// Build assembles the contract for one document. Date fields are parsed
// into ISO form where possible; unparseable dates export as empty strings
// with the raw text preserved nowhere (the review flags signal the gap).
func Build(rec *model.Record, file, method, category string, categoryConf model.Confidence) *model.Contract {
	return &model.Contract{
		File: file,

		ProgramTitle: rec.Title.Value,
		StartDate:    ParseStartDate(rec.Date.Value),
		EndDate:      ParseEndDate(rec.Date.Value),
		Venue:        rec.Venue.Value,

		CostAmount:   rec.Cost.Amount,
		CostCurrency: rec.Cost.Currency,

		Trainer:           rec.Trainer.Value,
		TrainingOrganiser: rec.Organiser.Value,

		ConfidenceTitle:     rec.Title.Confidence.String(),
		ConfidenceDate:      rec.Date.Confidence.String(),
		ConfidenceVenue:     rec.Venue.Confidence.String(),
		ConfidenceCost:      rec.Cost.Confidence.String(),
		ConfidenceTrainer:   rec.Trainer.Confidence.String(),
		ConfidenceOrganiser: rec.Organiser.Confidence.String(),

		HRDCCertified:  rec.HRDC.Certified,
		ConfidenceHRDC: rec.HRDC.Confidence.String(),

		Category:           category,
		ConfidenceCategory: categoryConf.String(),

		Method:      method,
		ReviewFlags: reviewFlags(rec),
		Status:      decideStatus(rec),
	}
}

// reviewFlags lists every field that ended below High confidence.
func reviewFlags(rec *model.Record) []string {
	var flags []string

	if rec.Date.Confidence != model.High {
		flags = append(flags, "DATE_UNCERTAIN")
	}
	if rec.Venue.Confidence != model.High {
		flags = append(flags, "VENUE_UNCERTAIN")
	}
	if rec.Title.Confidence != model.High {
		flags = append(flags, "TITLE_UNCERTAIN")
	}
	if rec.Cost.Confidence != model.High {
		flags = append(flags, "COST_UNCERTAIN")
	}
	if rec.Trainer.Confidence != model.High {
		flags = append(flags, "TRAINER_UNCERTAIN")
	}
	if rec.Organiser.Confidence != model.High {
		flags = append(flags, "ORGANISER_UNCERTAIN")
	}

	return flags
}

// decideStatus keys off the date alone: a High-confidence date makes the
// contract fillable, anything else goes to review.
func decideStatus(rec *model.Record) string {
	if rec.Date.Confidence == model.High {
		return model.StatusReadyToFill
	}
	return model.StatusPendingReview
}
