package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/limbo/gratudiary/pkg/entity"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

const promptTemplate = `Analyze these gratitude journal entries. Return JSON with two summaries (max 2 sentences each).

Entries:
%s

Output Format (JSON):
{
  "workedWellSummary": "Summary of positives...",
  "challengesSummary": "Summary of challenges/moods..."
}`

// contentGenerator is the part of *genai.Models the provider uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models contentGenerator
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return NewGeminiWithGenerator(client.Models, model), nil
}

func NewGeminiWithGenerator(models contentGenerator, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{
		models: models,
		model:  model,
	}
}

func (g *Gemini) Summarize(ctx context.Context, entries []SummaryInput) (*entity.Insights, error) {
	payload, err := sonic.MarshalString(entries)
	if err != nil {
		return nil, fmt.Errorf("encoding entries: %w", err)
	}
	resp, err := g.models.GenerateContent(ctx, g.model,
		genai.Text(fmt.Sprintf(promptTemplate, payload)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, errors.New("gemini returned empty response")
	}
	var res entity.Insights
	if err := sonic.UnmarshalString(text, &res); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}
	return &res, nil
}
