package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

var (
	promoCostRe = regexp.MustCompile(
		`(?i)(promo fee|promotional fee|promo price|early bird).{0,60}(rm|usd)\s?([\d,]+(?:\.\d{2})?)`)
	nonMemberCostRe = regexp.MustCompile(
		`(?i)(non[- ]member).{0,60}(rm|usd)\s?([\d,]+(?:\.\d{2})?)`)
	withoutAccomRe = regexp.MustCompile(
		`(?i)(rm|usd)\s?([\d,]+(?:\.\d{2})?).{0,60}without (hotel )?accommodation`)
	perPaxRe = regexp.MustCompile(
		`(?i)(rm|usd)\s?([\d,]+(?:\.\d{2})?)\s*(per pax|per person)`)
	anyPriceRe = regexp.MustCompile(`(?i)(rm|usd)\s?([\d,]+(?:\.\d{2})?)`)
)

// cost walks the pricing priority chain:
//
//	promo/early-bird (High) → non-member (High) → without accommodation
//	(High) → per pax (Medium) → lowest visible price anywhere (Low).
//
// The final fallback is a deliberate policy, not an error: it can pick up
// an amount unrelated to the program fee, which is why it stays at Low.
func cost(text string) (amount, currency string, conf model.Confidence) {
	t := strings.ToLower(normalizeSpace(text))

	if m := promoCostRe.FindStringSubmatch(t); m != nil {
		return stripCommas(m[3]), strings.ToUpper(m[2]), model.High
	}
	if m := nonMemberCostRe.FindStringSubmatch(t); m != nil {
		return stripCommas(m[3]), strings.ToUpper(m[2]), model.High
	}
	if m := withoutAccomRe.FindStringSubmatch(t); m != nil {
		return stripCommas(m[2]), strings.ToUpper(m[1]), model.High
	}
	if m := perPaxRe.FindStringSubmatch(t); m != nil {
		return stripCommas(m[2]), strings.ToUpper(m[1]), model.Medium
	}

	type price struct {
		currency string
		amount   float64
	}
	var parsed []price
	for _, m := range anyPriceRe.FindAllStringSubmatch(t, -1) {
		v, err := strconv.ParseFloat(stripCommas(m[2]), 64)
		if err != nil {
			continue
		}
		parsed = append(parsed, price{currency: strings.ToUpper(m[1]), amount: v})
	}
	if len(parsed) > 0 {
		lowest := parsed[0]
		for _, p := range parsed[1:] {
			if p.amount < lowest.amount {
				lowest = p
			}
		}
		return strconv.FormatFloat(lowest.amount, 'f', -1, 64), lowest.currency, model.Low
	}

	return "N/A", "N/A", model.Low
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
