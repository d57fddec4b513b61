package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trainingdesk/brochure-cli/internal/config"
	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/pkg/anthropic"
)

type mockClient struct {
	reply string
	err   error
	calls int
	seen  anthropic.MessageRequest
}

func (m *mockClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.calls++
	m.seen = req
	if m.err != nil {
		return nil, m.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: m.reply}},
	}, nil
}

func newExtractor(c anthropic.Client) *Extractor {
	return New(c, config.LLMConfig{Enabled: true, TextCap: 4000, RequestsPerSecond: 100}, config.AnthropicConfig{Model: "claude-haiku-4-5-20251001"})
}

func TestApply_SkipsWhenAllHigh(t *testing.T) {
	mc := &mockClient{}
	e := newExtractor(mc)

	rec := model.NewRecord()
	rec.Title = model.Field{Value: "t", Confidence: model.High}
	rec.Date = model.Field{Value: "d", Confidence: model.High}
	rec.Venue = model.Field{Value: "v", Confidence: model.High}
	rec.Cost = model.CostField{Amount: "1", Currency: "RM", Confidence: model.High}
	rec.Trainer = model.Field{Value: "x", Confidence: model.High}
	rec.Organiser = model.Field{Value: "o", Confidence: model.High}

	e.Apply(context.Background(), rec, "text")

	assert.Zero(t, mc.calls, "no model call when nothing can upgrade")
}

func TestApply_MergesReplyAtMedium(t *testing.T) {
	mc := &mockClient{reply: `{
		"Program Title": "Advanced Negotiation Masterclass",
		"Program Date": "21-22 July 2025",
		"Venue": "Imperial Hotel",
		"Cost": "RM 2,500.00",
		"Trainer": "Ahmad Hassan; Siti Rahman",
		"Organiser": "Sarawak Skills and INSEAD"
	}`}
	e := newExtractor(mc)
	rec := model.NewRecord()

	e.Apply(context.Background(), rec, "brochure text")

	assert.Equal(t, "Advanced Negotiation Masterclass", rec.Title.Value)
	assert.Equal(t, model.Medium, rec.Title.Confidence)
	assert.Equal(t, "2500.00", rec.Cost.Amount)
	assert.Equal(t, "RM", rec.Cost.Currency)
	assert.Equal(t, "Sarawak Skills", rec.Organiser.Value, "co-organisers reduce to the primary one")

	flags := rec.Flags()
	assert.Contains(t, flags, "LLM_TITLE")
	assert.Contains(t, flags, "LLM_COST")
	assert.Contains(t, flags, "LLM_ORG")
}

func TestApply_NeverOverwritesHighField(t *testing.T) {
	mc := &mockClient{reply: `{"Program Title": "Wrong Title", "Program Date": "1 May 2025",
		"Venue": "Not detected", "Cost": "Not detected", "Trainer": "Not detected", "Organiser": "Not detected"}`}
	e := newExtractor(mc)

	rec := model.NewRecord()
	rec.Title = model.Field{Value: "Settled Title", Confidence: model.High}

	e.Apply(context.Background(), rec, "text")

	assert.Equal(t, "Settled Title", rec.Title.Value)
	assert.Equal(t, model.High, rec.Title.Confidence)
	assert.Equal(t, "1 May 2025", rec.Date.Value)
	assert.Equal(t, model.NotDetected, rec.Venue.Value, "sentinel replies ignored")
}

func TestApply_CostWithoutCurrencyIgnored(t *testing.T) {
	mc := &mockClient{reply: `{"Program Title": "Not detected", "Program Date": "Not detected",
		"Venue": "Not detected", "Cost": "about 2500", "Trainer": "Not detected", "Organiser": "Not detected"}`}
	e := newExtractor(mc)
	rec := model.NewRecord()

	e.Apply(context.Background(), rec, "text")

	assert.Equal(t, "N/A", rec.Cost.Amount)
	assert.Equal(t, model.Low, rec.Cost.Confidence)
	assert.NotContains(t, rec.Flags(), "LLM_COST")
}

func TestApply_ModelErrorLeavesRecordUntouched(t *testing.T) {
	mc := &mockClient{err: assert.AnError}
	e := newExtractor(mc)
	rec := model.NewRecord()

	e.Apply(context.Background(), rec, "text")

	assert.Equal(t, model.NotDetected, rec.Title.Value)
	assert.Empty(t, rec.Flags())
}

func TestApply_MalformedJSONLeavesRecordUntouched(t *testing.T) {
	mc := &mockClient{reply: "sorry, I cannot help with that"}
	e := newExtractor(mc)
	rec := model.NewRecord()

	e.Apply(context.Background(), rec, "text")

	assert.Empty(t, rec.Flags())
}

func TestApply_FencedJSONAccepted(t *testing.T) {
	mc := &mockClient{reply: "```json\n{\"Program Title\": \"Leadership Course\", \"Program Date\": \"Not detected\", \"Venue\": \"Not detected\", \"Cost\": \"Not detected\", \"Trainer\": \"Not detected\", \"Organiser\": \"Not detected\"}\n```"}
	e := newExtractor(mc)
	rec := model.NewRecord()

	e.Apply(context.Background(), rec, "text")

	assert.Equal(t, "Leadership Course", rec.Title.Value)
}

func TestApply_PromptCapsText(t *testing.T) {
	mc := &mockClient{reply: `{}`}
	e := New(mc, config.LLMConfig{TextCap: 10, RequestsPerSecond: 100}, config.AnthropicConfig{Model: "m"})
	rec := model.NewRecord()

	long := "0123456789extra content beyond the cap"
	e.Apply(context.Background(), rec, long)

	assert.Contains(t, mc.seen.Messages[0].Content, "0123456789")
	assert.NotContains(t, mc.seen.Messages[0].Content, "extra content")
}

func TestNormalizeOrganiser(t *testing.T) {
	assert.Equal(t, "Sarawak Skills", NormalizeOrganiser("Sarawak Skills and INSEAD"))
	assert.Equal(t, "Apex", NormalizeOrganiser("Apex & Partners"))
	assert.Equal(t, "Mindzallera", NormalizeOrganiser("Mindzallera x HRDC"))
	assert.Equal(t, "A", NormalizeOrganiser("A/B"))
	assert.Equal(t, "Solo Org", NormalizeOrganiser("Solo Org"))
	assert.Equal(t, "", NormalizeOrganiser("  "))
}
