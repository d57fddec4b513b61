package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/trainingdesk/brochure-cli/internal/classify"
	"github.com/trainingdesk/brochure-cli/internal/layout"
	"github.com/trainingdesk/brochure-cli/internal/llm"
	"github.com/trainingdesk/brochure-cli/internal/logo"
	"github.com/trainingdesk/brochure-cli/internal/ocr"
	"github.com/trainingdesk/brochure-cli/internal/pipeline"
	"github.com/trainingdesk/brochure-cli/internal/store"
	"github.com/trainingdesk/brochure-cli/pkg/anthropic"
	"github.com/trainingdesk/brochure-cli/pkg/jina"
)

// env holds the wired pipeline and its closable resources.
type env struct {
	Store     store.Store
	Processor *pipeline.Processor
}

func (e *env) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initProcessor wires the full processor. Optional stages degrade with a
// warning when their credentials or assets are absent; only the store is
// mandatory.
func initProcessor(ctx context.Context) (*env, error) {
	st, err := store.New(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "init: open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "init: migrate store")
	}

	provider, err := ocr.NewProvider(cfg.OCR)
	if err != nil {
		st.Close()
		return nil, eris.Wrap(err, "init: ocr provider")
	}
	if provider != nil && !provider.Available() {
		zap.L().Warn("init: ocr binary not found, image-only documents degrade",
			zap.String("path", cfg.OCR.TesseractPath))
	}

	var aiClient anthropic.Client
	if cfg.Anthropic.Key != "" {
		aiClient = anthropic.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Warn("init: no Anthropic key, generative fallback and rerank disabled")
	}

	var extractor *llm.Extractor
	if aiClient != nil && cfg.LLM.Enabled {
		extractor = llm.New(aiClient, cfg.LLM, cfg.Anthropic)
	}

	classifier := initClassifier(ctx, aiClient)

	var logoDetector *logo.Detector
	if _, statErr := os.Stat(cfg.Extract.LogoPath); statErr == nil {
		logoDetector, err = logo.NewDetector(cfg.Extract.LogoPath, cfg.Extract.LogoHashThreshold)
		if err != nil {
			zap.L().Warn("init: logo detector", zap.Error(err))
		}
	} else {
		zap.L().Warn("init: logo reference missing, HRDC stays keyword-only",
			zap.String("path", cfg.Extract.LogoPath))
	}

	proc := pipeline.NewProcessor(cfg, provider, layout.New(cfg.Layout, provider),
		extractor, classifier, logoDetector, st)

	return &env{Store: st, Processor: proc}, nil
}

func initClassifier(ctx context.Context, aiClient anthropic.Client) *classify.Classifier {
	if cfg.Jina.Key == "" {
		zap.L().Warn("init: no Jina key, category classification disabled")
		return nil
	}

	categories, err := classify.LoadTaxonomy(cfg.Classify.TaxonomyPath)
	if err != nil {
		zap.L().Warn("init: load taxonomy", zap.Error(err))
		return nil
	}

	embedder := jina.NewClient(cfg.Jina.Key,
		jina.WithBaseURL(cfg.Jina.BaseURL),
		jina.WithModel(cfg.Jina.Model),
	)

	index, err := classify.NewIndex(ctx, categories, embedder)
	if err != nil {
		zap.L().Warn("init: build category index", zap.Error(err))
		return nil
	}
	zap.L().Info("init: category index ready", zap.Int("categories", index.Size()))

	var reranker *classify.Reranker
	if aiClient != nil {
		reranker = classify.NewReranker(aiClient, cfg.Anthropic.Model)
	}
	return classify.New(index, reranker, cfg.Classify)
}
