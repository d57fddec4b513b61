package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/pkg/anthropic"
)

const rerankCandidates = 3

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// Reranker asks the model to pick one category from the local top
// candidates when the local decision is shaky.
type Reranker struct {
	client anthropic.Client
	model  string
}

// NewReranker builds a Reranker bound to a model ID.
func NewReranker(client anthropic.Client, modelID string) *Reranker {
	return &Reranker{client: client, model: modelID}
}

type rerankReply struct {
	Category   string `json:"category"`
	Confidence string `json:"confidence"`
	Reason     string `json:"reason"`
}

// Rerank returns the chosen category name. The answer must match one of
// the candidate names exactly; any error, malformed reply, or
// out-of-candidate answer reports ok=false and the local decision stands.
func (r *Reranker) Rerank(ctx context.Context, summary string, cands []model.Candidate) (string, bool) {
	if len(cands) == 0 {
		return "", false
	}
	if len(cands) > rerankCandidates {
		cands = cands[:rerankCandidates]
	}

	temperature := 0.0
	resp, err := r.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       r.model,
		MaxTokens:   256,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildRerankPrompt(summary, cands)},
		},
	})
	if err != nil {
		zap.L().Warn("classify: rerank call", zap.Error(err))
		return "", false
	}
	resp.Usage.LogCost(r.model, "category_rerank")

	raw := jsonObjectRe.FindString(anthropic.ExtractText(resp))
	if raw == "" {
		zap.L().Warn("classify: rerank reply has no JSON object")
		return "", false
	}

	var reply rerankReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		zap.L().Warn("classify: unmarshal rerank reply", zap.Error(err))
		return "", false
	}

	for _, c := range cands {
		if c.Category.Name == reply.Category {
			return reply.Category, true
		}
	}
	zap.L().Warn("classify: rerank answer outside candidate set",
		zap.String("answer", reply.Category))
	return "", false
}

func buildRerankPrompt(summary string, cands []model.Candidate) string {
	var lines strings.Builder
	for i, c := range cands {
		fmt.Fprintf(&lines, "%d) [%s] %s\n   Details: %s\n",
			i+1, c.Category.Domain, c.Category.Name, c.Category.Blob())
	}

	return fmt.Sprintf(`You are categorising a training brochure into EXACTLY ONE category from the candidate list.

BROCHURE SUMMARY:
%s

CANDIDATE CATEGORIES (choose one only):
%s
Rules:
- Choose EXACTLY ONE category from the candidates above.
- Output must match the category text exactly (case and spelling).
- Base decision on the actual topics/tools taught, agenda, and skills focus.
- Return STRICT JSON only. No markdown.

Output JSON schema:
{
  "category": "<one of the candidate category names>",
  "confidence": "High" | "Medium" | "Low",
  "reason": "one short sentence"
}`, summary, lines.String())
}
