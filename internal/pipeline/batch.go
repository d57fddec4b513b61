package pipeline

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

// BatchResult summarizes one directory run.
type BatchResult struct {
	Contracts []*model.Contract
	Failed    []string
}

// ProcessDir processes every PDF in dir concurrently, bounded by the
// configured document limit. A failing document is logged and recorded
// in Failed; it never aborts the batch. Contracts come back in input
// order.
func (p *Processor) ProcessDir(ctx context.Context, dir string) (*BatchResult, error) {
	paths, err := listPDFs(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, eris.Errorf("pipeline: no PDF files in %s", dir)
	}
	zap.L().Info("pipeline: batch start",
		zap.String("dir", dir), zap.Int("documents", len(paths)))

	limit := p.cfg.Batch.MaxConcurrentDocuments
	if limit <= 0 {
		limit = 1
	}

	contracts := make([]*model.Contract, len(paths))
	var mu sync.Mutex
	var failed []string

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			c, err := p.Process(gCtx, path)
			if err != nil {
				zap.L().Error("pipeline: document failed",
					zap.String("file", filepath.Base(path)), zap.Error(err))
				mu.Lock()
				failed = append(failed, filepath.Base(path))
				mu.Unlock()
				return nil
			}
			contracts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: batch")
	}

	result := &BatchResult{Failed: failed}
	for _, c := range contracts {
		if c != nil {
			result.Contracts = append(result.Contracts, c)
		}
	}
	sort.Strings(result.Failed)

	zap.L().Info("pipeline: batch complete",
		zap.Int("succeeded", len(result.Contracts)), zap.Int("failed", len(result.Failed)))
	return result, nil
}

func listPDFs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: glob %s", dir)
	}

	var paths []string
	for _, m := range matches {
		if strings.EqualFold(filepath.Ext(m), ".pdf") {
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
