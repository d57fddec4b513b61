package layout

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

var (
	conferenceWords = []string{
		"conference", "summit", "forum",
		"congress", "symposium", "expo",
	}
	trainingWords = []string{
		"training", "workshop", "course",
		"programme", "program", "masterclass",
	}
	hasDigitRe = regexp.MustCompile(`\d`)
)

// applyTrainer searches trainer/faculty profile sections page by page,
// first in the layout blocks and then via OCR. Only runs for documents
// whose title reads as a training program, so conference speaker lists
// are never misfiled as trainers.
func (e *Engine) applyTrainer(ctx context.Context, rec *model.Record, pages [][]model.Block, doc PageImager) {
	if rec.Trainer.Confidence != model.Low {
		return
	}
	if !isTrainingProgram(rec.Title.Value) {
		return
	}

	var detected []string
	for pageIdx, blocks := range pages {
		if hasTrainerSection(blocks) {
			if names := trainersFromProfile(blocks); len(names) > 0 {
				detected = names
				break
			}
		}

		text, ok := e.renderPage(ctx, doc, pageIdx)
		if !ok {
			continue
		}
		upper := strings.ToUpper(text)
		if strings.Contains(upper, "TRAINER PROFILE") || strings.Contains(upper, "FACULTY PROFILE") {
			if names := trainersFromProfile(textToBlocks(text)); len(names) > 0 {
				detected = names
				break
			}
		}
	}

	if len(detected) == 0 {
		return
	}
	if rec.Trainer.ApplyIfLower(strings.Join(detected, ", "), model.Medium) {
		rec.AddFlag("LAYOUT_OCR_TRAINER_PROFILE")
	}
}

func isTrainingProgram(title string) bool {
	if title == "" || title == model.NotDetected {
		return false
	}
	t := strings.ToLower(title)

	for _, w := range conferenceWords {
		if strings.Contains(t, w) {
			return false
		}
	}
	for _, w := range trainingWords {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}

func hasTrainerSection(blocks []model.Block) bool {
	for _, b := range blocks {
		t := strings.ToUpper(b.Text)
		if strings.Contains(t, "TRAINER PROFILE") || strings.Contains(t, "FACULTY PROFILE") {
			return true
		}
	}
	return false
}

// trainersFromProfile collects name-shaped blocks: short, title-cased,
// digit-free. Duplicates drop in first-seen order.
func trainersFromProfile(blocks []model.Block) []string {
	var trainers []string
	seen := make(map[string]bool)

	for _, b := range blocks {
		text := strings.TrimSpace(b.Text)

		if len(strings.Fields(text)) > 4 {
			continue
		}
		if !isTitleCase(text) {
			continue
		}
		if hasDigitRe.MatchString(text) {
			continue
		}
		if !seen[text] {
			seen[text] = true
			trainers = append(trainers, text)
		}
	}

	return trainers
}

// isTitleCase reports whether every word starts uppercase with the rest
// lowercase.
func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		runes := []rune(w)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes[1:] {
			if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return true
}

// textToBlocks turns OCR output lines into zero-positioned blocks so the
// block heuristics can run over them.
func textToBlocks(text string) []model.Block {
	var blocks []model.Block
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 4 {
			continue
		}
		blocks = append(blocks, model.Block{Text: line, Size: 12})
	}
	return blocks
}
