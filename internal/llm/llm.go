// Package llm implements Layer 3: generative extraction for fields the
// deterministic layers could not settle. Model output is applied
// conservatively and never raises a field above Medium.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/trainingdesk/brochure-cli/internal/config"
	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/pkg/anthropic"
)

var (
	llmCostRe   = regexp.MustCompile(`(?i)(rm|usd)\s?\d+(?:,\d{3})*(?:\.\d{2})?`)
	llmAmountRe = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d{2})?`)
)

// Extractor fills remaining low-confidence fields through the model.
type Extractor struct {
	client  anthropic.Client
	cfg     config.LLMConfig
	model   string
	limiter *rate.Limiter
}

// New builds an Extractor. The rate limiter spaces out calls across
// concurrently processed documents.
func New(client anthropic.Client, cfg config.LLMConfig, anthropicCfg config.AnthropicConfig) *Extractor {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Extractor{
		client:  client,
		cfg:     cfg,
		model:   anthropicCfg.Model,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// fieldReply is the six-key JSON shape the prompt demands.
type fieldReply struct {
	ProgramTitle string `json:"Program Title"`
	ProgramDate  string `json:"Program Date"`
	Venue        string `json:"Venue"`
	Cost         string `json:"Cost"`
	Trainer      string `json:"Trainer"`
	Organiser    string `json:"Organiser"`
}

// Apply runs the generative fallback over rec in place. It is a no-op
// when every gated field is already High. A failed call or unparseable
// reply leaves the record untouched.
func (e *Extractor) Apply(ctx context.Context, rec *model.Record, text string) {
	if rec.AllHigh() {
		return
	}

	if err := e.limiter.Wait(ctx); err != nil {
		zap.L().Warn("llm: rate limiter wait", zap.Error(err))
		return
	}

	callCtx := ctx
	if e.cfg.TimeoutSecs > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, time.Duration(e.cfg.TimeoutSecs)*time.Second)
		defer cancel()
	}

	temperature := 0.0
	resp, err := e.client.CreateMessage(callCtx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   1024,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			{Role: "user", Content: e.buildPrompt(text)},
		},
	})
	if err != nil {
		zap.L().Warn("llm: create message", zap.Error(err))
		return
	}
	resp.Usage.LogCost(e.model, "field_extraction")

	raw := anthropic.CleanJSON(anthropic.ExtractText(resp))
	var reply fieldReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		zap.L().Warn("llm: unmarshal reply", zap.Error(err), zap.String("raw", raw))
		return
	}

	merge(rec, reply)
}

// merge applies each returned field under the upgrade rule at Medium.
func merge(rec *model.Record, reply fieldReply) {
	if rec.Title.ApplyIfLower(reply.ProgramTitle, model.Medium) {
		rec.AddFlag("LLM_TITLE")
	}
	if rec.Date.ApplyIfLower(reply.ProgramDate, model.Medium) {
		rec.AddFlag("LLM_DATE")
	}
	if rec.Venue.ApplyIfLower(reply.Venue, model.Medium) {
		rec.AddFlag("LLM_VENUE")
	}

	// Cost is guarded harder: the reply must carry a recognizable
	// currency and amount or it is ignored entirely.
	if rec.Cost.Confidence != model.High && reply.Cost != "" && reply.Cost != model.NotDetected {
		if m := llmCostRe.FindStringSubmatch(reply.Cost); m != nil {
			amount := strings.ReplaceAll(llmAmountRe.FindString(reply.Cost), ",", "")
			if rec.Cost.ApplyIfLower(amount, strings.ToUpper(m[1]), model.Medium) {
				rec.AddFlag("LLM_COST")
			}
		}
	}

	if rec.Trainer.ApplyIfLower(reply.Trainer, model.Medium) {
		rec.AddFlag("LLM_TRAINER")
	}
	if rec.Organiser.ApplyIfLower(NormalizeOrganiser(reply.Organiser), model.Medium) {
		rec.AddFlag("LLM_ORG")
	}
}

// organiserSeparators lists conjunctions that join co-organisers. Only the
// first organisation is kept.
var organiserSeparators = []string{
	" and ",
	" & ",
	" with ",
	" in partnership with ",
	" in collaboration with ",
	" x ",
	"/",
}

// NormalizeOrganiser reduces a multi-organiser string to its primary
// organisation.
func NormalizeOrganiser(name string) string {
	text := strings.TrimSpace(name)
	if text == "" {
		return text
	}

	lowered := strings.ToLower(text)
	for _, sep := range organiserSeparators {
		if idx := strings.Index(lowered, sep); idx >= 0 {
			return strings.TrimSpace(text[:idx])
		}
	}
	return text
}

func (e *Extractor) buildPrompt(text string) string {
	limit := e.cfg.TextCap
	if limit <= 0 || limit > len(text) {
		limit = len(text)
	}
	return fmt.Sprintf(fieldPrompt, text[:limit])
}

const fieldPrompt = `You are a professional data entry clerk. Your goal is to extract EXACT metadata from a training brochure.

CRITICAL RULES:
- Do NOT guess.
- Do NOT summarise.
- Extract ONLY if explicitly stated.
- Preserve original wording, currency, and numbers.

CRITICAL INSTRUCTIONS:
1. PROGRAM TITLE: This is usually the largest text on the first page.
   - Capture the FULL title, including any colon-separated subtitles or theme names.
   - Do NOT shorten or summarise.
   - Example: If it says "PROJECT MANAGEMENT: THE AGILE WAY", do NOT just return "Project Management".

2. PROGRAM DATE: Look for the specific days of the event.
   - If a range is provided (e.g., 21-22 July), you MUST return the full range.
   - Do not return just a single day or a registration deadline.
   - If the programme has multiple sessions in different locations, return ALL sessions in a single string, separated by semicolons.
   - Example: "Malaysia: 3–7 June 2025; Singapore: 10–14 June 2025"

3. PROGRAM VENUE: Extract the full venue name as stated.
   - Might be hotel names, conference centers, or online platforms.
   - If more than one venue is listed, extract the primary one.

4. COST: Extract the exact cost amount and currency as stated.
   - If any of the fields are NOT found, return "Not detected" for that field
   - If multiple costs are listed, extract the main program cost.
   - If there is a discounted price and a normal price, extract the discounted price.
   - If there is with and without accommodation prices, extract the without accommodation price.
   - If there are member and non-member prices, extract the non-member price.

5. TRAINER: Extract the main trainer / speaker name(s) as stated.
   - If multiple trainers are listed, extract all names in a single string, separated by semicolons.
   - If no trainer names are found, return "Not detected".

6. ORGANISER: Extract the full organiser name as stated.
   - If no organiser is found, return "Not detected".
   - If multiple organisers are listed, extract the primary one.
   - Usually the organiser is found at the logo or footer section.

7. EXACTNESS: Do not summarize. Do not add words like "Conference" if they aren't part of the main title block.

Return ONLY valid JSON:
{
    "Program Title": "...",
    "Program Date": "...",
    "Venue": "...",
    "Cost": "...",
    "Trainer": "...",
    "Organiser": "..."
}
Document text:
%s`
