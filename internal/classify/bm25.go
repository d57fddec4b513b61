package classify

import "math"

// BM25 parameters; the usual Okapi defaults.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// bm25 is an Okapi BM25 index over the taxonomy blobs.
type bm25 struct {
	docFreqs  []map[string]int
	docLens   []int
	avgDocLen float64
	idf       map[string]float64
}

func newBM25(docs [][]string) *bm25 {
	b := &bm25{
		docFreqs: make([]map[string]int, len(docs)),
		docLens:  make([]int, len(docs)),
		idf:      make(map[string]float64),
	}

	totalLen := 0
	df := make(map[string]int)
	for i, doc := range docs {
		freqs := make(map[string]int, len(doc))
		for _, t := range doc {
			freqs[t]++
		}
		b.docFreqs[i] = freqs
		b.docLens[i] = len(doc)
		totalLen += len(doc)

		for t := range freqs {
			df[t]++
		}
	}

	if len(docs) > 0 {
		b.avgDocLen = float64(totalLen) / float64(len(docs))
	}

	n := float64(len(docs))
	for t, freq := range df {
		b.idf[t] = math.Log(1 + (n-float64(freq)+0.5)/(float64(freq)+0.5))
	}

	return b
}

// Scores returns one BM25 score per indexed document for the query.
func (b *bm25) Scores(query []string) []float64 {
	scores := make([]float64, len(b.docFreqs))
	if b.avgDocLen == 0 {
		return scores
	}

	for i := range b.docFreqs {
		lenNorm := 1 - bm25B + bm25B*float64(b.docLens[i])/b.avgDocLen
		for _, t := range query {
			tf := float64(b.docFreqs[i][t])
			if tf == 0 {
				continue
			}
			scores[i] += b.idf[t] * tf * (bm25K1 + 1) / (tf + bm25K1*lenNorm)
		}
	}

	return scores
}
