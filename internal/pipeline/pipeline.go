// Package pipeline orchestrates the per-document escalation flow: text
// acquisition, the three extraction layers, category classification and
// persistence of the resulting contract.
package pipeline

import (
	"context"
	"image"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/trainingdesk/brochure-cli/internal/classify"
	"github.com/trainingdesk/brochure-cli/internal/config"
	"github.com/trainingdesk/brochure-cli/internal/contract"
	"github.com/trainingdesk/brochure-cli/internal/extract"
	"github.com/trainingdesk/brochure-cli/internal/layout"
	"github.com/trainingdesk/brochure-cli/internal/llm"
	"github.com/trainingdesk/brochure-cli/internal/logo"
	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/internal/ocr"
	"github.com/trainingdesk/brochure-cli/internal/pdf"
	"github.com/trainingdesk/brochure-cli/internal/store"
)

// document is the read surface the pipeline needs from an open PDF.
type document interface {
	ExtractText(ctx context.Context, provider ocr.Provider, threshold int) (string, string, error)
	LayoutBlocks() [][]model.Block
	LeadingPageImages() []image.Image
	PageImage(page, dpi int) (image.Image, error)
	Close() error
}

// Processor runs the full flow for single documents. All collaborators
// except the layout engine may be nil, which disables that stage.
type Processor struct {
	cfg        *config.Config
	ocr        ocr.Provider
	layout     *layout.Engine
	llm        *llm.Extractor
	classifier *classify.Classifier
	logo       *logo.Detector
	store      store.Store

	open func(path string) (document, error)
}

// NewProcessor wires a Processor from its collaborators.
func NewProcessor(
	cfg *config.Config,
	provider ocr.Provider,
	layoutEngine *layout.Engine,
	extractor *llm.Extractor,
	classifier *classify.Classifier,
	logoDetector *logo.Detector,
	st store.Store,
) *Processor {
	return &Processor{
		cfg:        cfg,
		ocr:        provider,
		layout:     layoutEngine,
		llm:        extractor,
		classifier: classifier,
		logo:       logoDetector,
		store:      st,
		open: func(path string) (document, error) {
			d, err := pdf.Open(path)
			if err != nil {
				return nil, err
			}
			return d, nil
		},
	}
}

// Process runs one document end to end and returns its contract. The run
// is recorded in the store when one is configured; store failures are
// logged but never fail the document.
func (p *Processor) Process(ctx context.Context, path string) (*model.Contract, error) {
	log := zap.L().With(zap.String("file", filepath.Base(path)))
	log.Info("pipeline: processing document")

	var runID string
	if p.store != nil {
		run, err := p.store.CreateRun(ctx, filepath.Base(path))
		if err != nil {
			log.Warn("pipeline: create run", zap.Error(err))
		} else {
			runID = run.ID
		}
	}

	c, err := p.process(ctx, path, log)

	if p.store != nil && runID != "" {
		if err != nil {
			if dbErr := p.store.FailRun(ctx, runID, err.Error()); dbErr != nil {
				log.Warn("pipeline: fail run", zap.Error(dbErr))
			}
		} else if dbErr := p.store.CompleteRun(ctx, runID, c); dbErr != nil {
			log.Warn("pipeline: complete run", zap.Error(dbErr))
		}
	}

	return c, err
}

func (p *Processor) process(ctx context.Context, path string, log *zap.Logger) (*model.Contract, error) {
	doc, err := p.open(path)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: open document")
	}
	defer doc.Close()

	text, method, err := doc.ExtractText(ctx, p.ocr, p.cfg.Extract.OCRTextThreshold)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: extract text")
	}
	log.Debug("pipeline: text acquired",
		zap.String("method", method), zap.Int("chars", len(text)))

	rec := extract.Extract(text)
	rec.Method = method

	p.corroborateHRDC(rec, doc, log)

	if !rec.AllHigh() && p.layout != nil {
		p.layout.Apply(ctx, rec, doc.LayoutBlocks(), doc)
	}

	if !rec.AllHigh() && p.llm != nil && p.cfg.LLM.Enabled {
		p.llm.Apply(ctx, rec, text)
	}

	category := classify.Uncategorized
	categoryConf := model.Low
	if p.classifier != nil {
		category, categoryConf = p.classifier.Classify(ctx, rec.Title.Value, text)
	}

	c := contract.Build(rec, filepath.Base(path), method, category, categoryConf)
	log.Info("pipeline: document complete",
		zap.String("status", c.Status),
		zap.String("category", category),
		zap.Strings("review_flags", c.ReviewFlags),
	)
	return c, nil
}

// corroborateHRDC settles the HRDC tier: a logo match is High evidence,
// a keyword hit alone is Medium, and neither leaves the field at Low.
func (p *Processor) corroborateHRDC(rec *model.Record, doc document, log *zap.Logger) {
	if p.logo != nil {
		found, err := p.logo.Detect(doc.LeadingPageImages())
		switch {
		case err != nil:
			log.Warn("pipeline: logo detection", zap.Error(err))
			rec.AddFlag("HRDC_LOGO_ERROR")
		case found:
			rec.HRDC = model.HRDCField{Certified: true, Confidence: model.High}
			rec.AddFlag("HRDC_LOGO_DETECTED")
			return
		}
	}

	if rec.HRDC.Certified {
		rec.HRDC.Confidence = model.Medium
	}
}
