package classify

import (
	"context"
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/trainingdesk/brochure-cli/internal/config"
	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/pkg/jina"
)

// Index is the hybrid retrieval index: BM25 over the category blobs plus
// one embedding vector per category. Build once, query per document.
type Index struct {
	categories []model.Category
	bm25       *bm25
	vectors    [][]float64
	embedder   jina.Client
}

// NewIndex builds the index, embedding every category blob up front.
func NewIndex(ctx context.Context, categories []model.Category, embedder jina.Client) (*Index, error) {
	blobs := make([]string, len(categories))
	tokens := make([][]string, len(categories))
	for i, c := range categories {
		blobs[i] = c.Blob()
		tokens[i] = tokenize(blobs[i])
	}

	vectors, err := embedder.Embed(ctx, blobs)
	if err != nil {
		return nil, eris.Wrap(err, "classify: embed taxonomy")
	}

	return &Index{
		categories: categories,
		bm25:       newBM25(tokens),
		vectors:    vectors,
		embedder:   embedder,
	}, nil
}

// Size returns the number of indexed categories.
func (ix *Index) Size() int {
	return len(ix.categories)
}

// Retrieve runs union-pool hybrid retrieval: the lexical and semantic
// top pools are unioned, lexical scores normalized against the pool
// maximum, and the pool reranked by the weighted fusion score.
func (ix *Index) Retrieve(ctx context.Context, text string, cfg config.ClassifyConfig) ([]model.Candidate, error) {
	if len(ix.categories) == 0 {
		return nil, nil
	}

	lexScores := ix.bm25.Scores(tokenize(text))
	lexPool := topIndices(lexScores, cfg.LexicalPool)

	qVecs, err := ix.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, eris.Wrap(err, "classify: embed query")
	}
	sims := make([]float64, len(ix.categories))
	for i, v := range ix.vectors {
		sims[i] = cosine(qVecs[0], v)
	}
	simPool := topIndices(sims, cfg.SemanticPool)

	inPool := make(map[int]bool, len(lexPool)+len(simPool))
	for _, i := range append(lexPool, simPool...) {
		inPool[i] = true
	}
	pool := make([]int, 0, len(inPool))
	for i := range inPool {
		pool = append(pool, i)
	}
	sort.Ints(pool)

	poolMax := 0.0
	for _, i := range pool {
		if lexScores[i] > poolMax {
			poolMax = lexScores[i]
		}
	}

	cands := make([]model.Candidate, 0, len(pool))
	for _, i := range pool {
		lex := lexScores[i]
		if poolMax > 0 {
			lex /= poolMax
		}
		cands = append(cands, model.Candidate{
			Category: ix.categories[i],
			Score:    cfg.LexicalWeight*lex + cfg.SemanticWeight*sims[i],
			Semantic: sims[i],
			Lexical:  lex,
		})
	}

	sort.SliceStable(cands, func(a, b int) bool {
		return cands[a].Score > cands[b].Score
	})

	if cfg.TopK > 0 && len(cands) > cfg.TopK {
		cands = cands[:cfg.TopK]
	}
	return cands, nil
}

// topIndices returns the indices of the n highest scores, ties broken by
// lower index so retrieval stays deterministic.
func topIndices(scores []float64, n int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	if n < len(idx) {
		idx = idx[:n]
	}
	return idx
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + 1e-9)
}
