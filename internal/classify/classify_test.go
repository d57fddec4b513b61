package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainingdesk/brochure-cli/internal/config"
	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/pkg/anthropic"
)

// fakeEmbedder returns fixed vectors per text, defaulting to a neutral
// vector for unknown texts.
type fakeEmbedder struct {
	vectors map[string][]float64
	fallback []float64
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		if v, ok := f.vectors[t]; ok {
			out[i] = v
		} else {
			out[i] = f.fallback
		}
	}
	return out, nil
}

func testClassifyConfig() config.ClassifyConfig {
	return config.ClassifyConfig{
		TopK:            5,
		LexicalPool:     40,
		SemanticPool:    60,
		LexicalWeight:   0.15,
		SemanticWeight:  0.85,
		HighScore:       0.55,
		HighMargin:      0.08,
		MediumScore:     0.42,
		MediumMargin:    0.04,
		CloseCallMargin: 0.03,
		TitleBoost:      10,
		AgendaBoost:     2,
		RawSlice:        1500,
		SummaryCap:      2000,
		Rerank:          true,
	}
}

func testCategories() []model.Category {
	return []model.Category{
		{Domain: "Technical", Name: "Welding", Definition: "arc welding fabrication metalwork"},
		{Domain: "Technical", Name: "Electrical Wiring", Definition: "wiring circuits voltage installation"},
		{Domain: "Functional", Name: "Procurement", Definition: "tender sourcing vendor negotiation purchasing"},
	}
}

func testIndex(t *testing.T, emb *fakeEmbedder) *Index {
	t.Helper()
	ix, err := NewIndex(context.Background(), testCategories(), emb)
	require.NoError(t, err)
	return ix
}

func TestTokenize(t *testing.T) {
	toks := tokenize("AI Training for Procurement staff!")
	assert.Equal(t, []string{"ai", "for", "procurement"}, toks, "stop words drop, two-letter tokens stay")
}

func TestCleanText_FoldsLigaturesAndNBSP(t *testing.T) {
	assert.Equal(t, "fire safety", cleanText("\ufb01re\u00a0 safety "))
}

func TestBM25_RanksMatchingDocHigher(t *testing.T) {
	docs := [][]string{
		{"welding", "arc", "metal"},
		{"procurement", "tender", "vendor"},
	}
	b := newBM25(docs)

	scores := b.Scores([]string{"tender", "procurement"})
	assert.Greater(t, scores[1], scores[0])
	assert.Zero(t, scores[0])
}

func TestIndexRetrieve_SemanticSignalDominates(t *testing.T) {
	cats := testCategories()
	emb := &fakeEmbedder{
		vectors: map[string][]float64{
			cats[0].Blob(): {1, 0, 0},
			cats[1].Blob(): {0, 1, 0},
			cats[2].Blob(): {0, 0, 1},
			"query":        {0.1, 0.05, 0.99},
		},
		fallback: []float64{0, 0, 0},
	}
	ix := testIndex(t, emb)

	cands, err := ix.Retrieve(context.Background(), "query", testClassifyConfig())
	require.NoError(t, err)
	require.NotEmpty(t, cands)

	assert.Equal(t, "Procurement", cands[0].Category.Name)
	assert.Greater(t, cands[0].Semantic, cands[1].Semantic)
}

func TestIndexRetrieve_LexicalNormalizedWithinPool(t *testing.T) {
	emb := &fakeEmbedder{fallback: []float64{1, 0, 0}, vectors: map[string][]float64{}}
	ix := testIndex(t, emb)

	cands, err := ix.Retrieve(context.Background(), "tender vendor sourcing", testClassifyConfig())
	require.NoError(t, err)
	require.NotEmpty(t, cands)

	// The best lexical match normalizes to exactly 1 within the pool.
	maxLex := 0.0
	for _, c := range cands {
		if c.Lexical > maxLex {
			maxLex = c.Lexical
		}
	}
	assert.InDelta(t, 1.0, maxLex, 1e-9)
}

func TestIndexRetrieve_TopKLimit(t *testing.T) {
	emb := &fakeEmbedder{fallback: []float64{1, 0, 0}, vectors: map[string][]float64{}}
	ix := testIndex(t, emb)

	cfg := testClassifyConfig()
	cfg.TopK = 2

	cands, err := ix.Retrieve(context.Background(), "anything", cfg)
	require.NoError(t, err)
	assert.Len(t, cands, 2)
}

func TestIndexRetrieve_EmptyTaxonomy(t *testing.T) {
	emb := &fakeEmbedder{}
	ix, err := NewIndex(context.Background(), nil, emb)
	require.NoError(t, err)

	cands, err := ix.Retrieve(context.Background(), "anything", testClassifyConfig())
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestComputeConfidence(t *testing.T) {
	cfg := testClassifyConfig()

	mk := func(s1, s2 float64) []model.Candidate {
		return []model.Candidate{{Score: s1}, {Score: s2}}
	}

	assert.Equal(t, model.High, computeConfidence(mk(0.60, 0.40), cfg))
	assert.Equal(t, model.Medium, computeConfidence(mk(0.60, 0.55), cfg), "margin too small for High")
	assert.Equal(t, model.Medium, computeConfidence(mk(0.45, 0.40), cfg))
	assert.Equal(t, model.Low, computeConfidence(mk(0.45, 0.43), cfg), "margin too small for Medium")
	assert.Equal(t, model.Low, computeConfidence(mk(0.30, 0.10), cfg))
	assert.Equal(t, model.Low, computeConfidence(nil, cfg))
	assert.Equal(t, model.High, computeConfidence([]model.Candidate{{Score: 0.9}}, cfg), "single candidate margin is full score")
}

func TestIsCloseCall(t *testing.T) {
	cfg := testClassifyConfig()

	assert.True(t, isCloseCall([]model.Candidate{{Score: 0.50}, {Score: 0.48}}, cfg))
	assert.False(t, isCloseCall([]model.Candidate{{Score: 0.50}, {Score: 0.40}}, cfg))
	assert.False(t, isCloseCall([]model.Candidate{{Score: 0.50}}, cfg))
}

func TestBuildWeightedText(t *testing.T) {
	cfg := testClassifyConfig()
	cfg.TitleBoost = 3
	cfg.RawSlice = 10

	out := BuildWeightedText(cfg, "Welding", "", "", "raw body text that runs long")

	assert.Contains(t, out, "TITLE: Welding Welding Welding")
	assert.Contains(t, out, "RAW: raw body t")
	assert.NotContains(t, out, "runs long", "raw slice caps the body")
	assert.NotContains(t, out, "AGENDA:")
	assert.NotContains(t, out, "DESC:")
}

func TestBuildWeightedText_Empty(t *testing.T) {
	assert.Equal(t, "", BuildWeightedText(testClassifyConfig(), "", "", "", ""))
}

type fakeRerankClient struct {
	reply string
	err   error
	calls int
}

func (f *fakeRerankClient) CreateMessage(_ context.Context, _ anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.reply}},
	}, nil
}

func TestReranker_ValidAnswer(t *testing.T) {
	rc := &fakeRerankClient{reply: `{"category": "Procurement", "confidence": "High", "reason": "tender focus"}`}
	r := NewReranker(rc, "test-model")

	cands := []model.Candidate{
		{Category: model.Category{Name: "Welding"}},
		{Category: model.Category{Name: "Procurement"}},
	}

	chosen, ok := r.Rerank(context.Background(), "summary", cands)
	assert.True(t, ok)
	assert.Equal(t, "Procurement", chosen)
}

func TestReranker_AnswerOutsideCandidatesIgnored(t *testing.T) {
	rc := &fakeRerankClient{reply: `{"category": "Cooking", "confidence": "High", "reason": "x"}`}
	r := NewReranker(rc, "test-model")

	_, ok := r.Rerank(context.Background(), "summary", []model.Candidate{
		{Category: model.Category{Name: "Welding"}},
	})
	assert.False(t, ok)
}

func TestReranker_MalformedReplyIgnored(t *testing.T) {
	rc := &fakeRerankClient{reply: "no json here"}
	r := NewReranker(rc, "test-model")

	_, ok := r.Rerank(context.Background(), "summary", []model.Candidate{
		{Category: model.Category{Name: "Welding"}},
	})
	assert.False(t, ok)
}

func TestReranker_ErrorIgnored(t *testing.T) {
	rc := &fakeRerankClient{err: assert.AnError}
	r := NewReranker(rc, "test-model")

	_, ok := r.Rerank(context.Background(), "summary", []model.Candidate{
		{Category: model.Category{Name: "Welding"}},
	})
	assert.False(t, ok)
}

func TestClassifier_RerankOverrideLandsAtMedium(t *testing.T) {
	cats := testCategories()
	emb := &fakeEmbedder{
		vectors: map[string][]float64{
			// Near-tie between the first two categories forces a rerank.
			cats[0].Blob(): {1, 0},
			cats[1].Blob(): {0.99, 0.14},
			cats[2].Blob(): {0, 1},
		},
		fallback: []float64{1, 0.07},
	}
	ix := testIndex(t, emb)

	rc := &fakeRerankClient{reply: `{"category": "Electrical Wiring", "confidence": "High", "reason": "x"}`}
	c := New(ix, NewReranker(rc, "test-model"), testClassifyConfig())

	category, conf := c.Classify(context.Background(), "Some Course", "body")

	assert.Equal(t, "Electrical Wiring", category)
	assert.Equal(t, model.Medium, conf, "override caps at Medium")
	assert.Equal(t, 1, rc.calls)
}

func TestClassifier_HighConfidenceSkipsRerank(t *testing.T) {
	cats := testCategories()
	emb := &fakeEmbedder{
		vectors: map[string][]float64{
			cats[0].Blob(): {1, 0},
			cats[1].Blob(): {0, 1},
			cats[2].Blob(): {0, 0.5},
		},
		fallback: []float64{1, 0},
	}
	ix := testIndex(t, emb)

	rc := &fakeRerankClient{reply: `{"category": "Welding"}`}
	c := New(ix, NewReranker(rc, "test-model"), testClassifyConfig())

	category, conf := c.Classify(context.Background(), "Arc Welding Fabrication", "welding metalwork")

	assert.Equal(t, "Welding", category)
	assert.Equal(t, model.High, conf)
	assert.Zero(t, rc.calls, "no rerank call for a confident decision")
}

func TestClassifier_InvalidRerankKeepsLocalDecision(t *testing.T) {
	cats := testCategories()
	emb := &fakeEmbedder{
		vectors: map[string][]float64{
			cats[0].Blob(): {1, 0},
			cats[1].Blob(): {0.99, 0.14},
			cats[2].Blob(): {0, 1},
		},
		fallback: []float64{1, 0.07},
	}
	ix := testIndex(t, emb)

	rc := &fakeRerankClient{reply: `{"category": "Basket Weaving"}`}
	c := New(ix, NewReranker(rc, "test-model"), testClassifyConfig())

	category, _ := c.Classify(context.Background(), "Some Course", "body")

	assert.Equal(t, "Welding", category, "local top candidate stands")
	assert.Equal(t, 1, rc.calls)
}
