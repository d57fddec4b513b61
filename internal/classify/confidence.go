package classify

import (
	"github.com/trainingdesk/brochure-cli/internal/config"
	"github.com/trainingdesk/brochure-cli/internal/model"
)

// computeConfidence grades the local decision from the top score and its
// margin over the runner-up.
func computeConfidence(cands []model.Candidate, cfg config.ClassifyConfig) model.Confidence {
	if len(cands) == 0 {
		return model.Low
	}

	s1 := cands[0].Score
	s2 := 0.0
	if len(cands) > 1 {
		s2 = cands[1].Score
	}
	gap := s1 - s2

	if s1 >= cfg.HighScore && gap >= cfg.HighMargin {
		return model.High
	}
	if s1 >= cfg.MediumScore && gap >= cfg.MediumMargin {
		return model.Medium
	}
	return model.Low
}

// isCloseCall reports whether the top two candidates are near-tied.
func isCloseCall(cands []model.Candidate, cfg config.ClassifyConfig) bool {
	if len(cands) < 2 {
		return false
	}
	return cands[0].Score-cands[1].Score < cfg.CloseCallMargin
}
