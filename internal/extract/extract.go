// Package extract implements Layer 1: deterministic pattern/rule-based
// field extraction over raw brochure text. It makes no external calls and
// always returns a fully populated record, using the sentinel value and a
// Low tier for anything it cannot find.
package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

const monthsPattern = "january|february|march|april|may|june|july|august|" +
	"september|october|november|december|" +
	"jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec"

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extract runs every Layer 1 field rule over the raw text and returns the
// initial record. Each field rule is independent and order-insensitive.
func Extract(text string) *model.Record {
	rec := model.NewRecord()

	title, titleConf := programTitle(text)
	rec.Title = model.Field{Value: title, Confidence: titleConf}

	date, dateConf := programDate(text)
	rec.Date = model.Field{Value: date, Confidence: dateConf}

	venue, venueConf := venue(text)
	rec.Venue = model.Field{Value: venue, Confidence: venueConf}

	amount, currency, costConf := cost(text)
	rec.Cost = model.CostField{Amount: amount, Currency: currency, Confidence: costConf}

	trainer, trainerConf := trainer(text)
	rec.Trainer = model.Field{Value: trainer, Confidence: trainerConf}

	organiser, organiserConf := organiser(text)
	rec.Organiser = model.Field{Value: organiser, Confidence: organiserConf}

	rec.HRDC = model.HRDCField{Certified: detectHRDCKeywords(text), Confidence: model.Low}

	flagMissing(rec)

	zap.L().Debug("extract: layer 1 complete",
		zap.String("title_confidence", rec.Title.Confidence.String()),
		zap.String("date_confidence", rec.Date.Confidence.String()),
		zap.String("cost_confidence", rec.Cost.Confidence.String()),
	)

	return rec
}

// flagMissing appends one diagnostic flag per field left at Low confidence.
func flagMissing(rec *model.Record) {
	if rec.Title.Confidence == model.Low {
		rec.AddFlag("TITLE_MISSING")
	}
	if rec.Date.Confidence == model.Low {
		rec.AddFlag("DATE_MISSING")
	}
	if rec.Venue.Confidence == model.Low {
		rec.AddFlag("VENUE_MISSING")
	}
	if rec.Cost.Confidence == model.Low {
		rec.AddFlag("COST_MISSING")
	}
	if rec.Trainer.Confidence == model.Low {
		rec.AddFlag("TRAINER_MISSING")
	}
	if rec.Organiser.Confidence == model.Low {
		rec.AddFlag("ORGANISER_MISSING")
	}
}

// cleanLines splits text into trimmed non-empty lines.
func cleanLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func normalizeSpace(text string) string {
	return whitespaceRe.ReplaceAllString(text, " ")
}
