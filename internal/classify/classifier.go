// Package classify assigns each brochure one category from the loaded
// taxonomy using hybrid lexical/semantic retrieval, with an optional
// model reranker for low-confidence and near-tie decisions.
package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/trainingdesk/brochure-cli/internal/config"
	"github.com/trainingdesk/brochure-cli/internal/model"
)

// Uncategorized is assigned when retrieval yields no candidates.
const Uncategorized = "Uncategorized"

// Classifier ties the index, thresholds, and optional reranker together.
type Classifier struct {
	index    *Index
	reranker *Reranker
	cfg      config.ClassifyConfig
}

// New builds a Classifier. reranker may be nil to disable reranking
// regardless of configuration.
func New(index *Index, reranker *Reranker, cfg config.ClassifyConfig) *Classifier {
	return &Classifier{index: index, reranker: reranker, cfg: cfg}
}

// Classify picks the category for one brochure. The rerank pass runs
// only for Low-confidence or close-call decisions, and a rerank override
// lands at Medium, never High. Retrieval errors degrade to Uncategorized.
func (c *Classifier) Classify(ctx context.Context, title, rawText string) (string, model.Confidence) {
	weighted := BuildWeightedText(c.cfg, queryTitle(title), "", "", rawText)

	cands, err := c.index.Retrieve(ctx, weighted, c.cfg)
	if err != nil {
		zap.L().Warn("classify: retrieve", zap.Error(err))
		return Uncategorized, model.Low
	}
	if len(cands) == 0 {
		return Uncategorized, model.Low
	}

	conf := computeConfidence(cands, c.cfg)
	category := cands[0].Category.Name
	closeCall := isCloseCall(cands, c.cfg)

	zap.L().Debug("classify: local decision",
		zap.String("category", category),
		zap.String("confidence", conf.String()),
		zap.Float64("top_score", cands[0].Score),
		zap.Bool("close_call", closeCall),
	)

	if c.cfg.Rerank && c.reranker != nil && (conf == model.Low || closeCall) {
		summary := weighted
		if c.cfg.SummaryCap > 0 && len(summary) > c.cfg.SummaryCap {
			summary = summary[:c.cfg.SummaryCap]
		}
		if chosen, ok := c.reranker.Rerank(ctx, summary, cands); ok {
			category = chosen
			conf = model.Medium
			zap.L().Info("classify: rerank override",
				zap.String("category", category))
		}
	}

	return category, conf
}

// queryTitle drops the sentinel so an undetected title adds no noise.
func queryTitle(title string) string {
	if title == model.NotDetected {
		return ""
	}
	return title
}
