// Package ai classifies transaction descriptions that no categorization rule
// matched, using a single batched call to the Anthropic API.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/selovida/labelops/internal/rules"
)

const defaultModel = "claude-sonnet-4-5-20250929"

// Classification is the resolved category for one description, aligned by
// index with the request batch.
type Classification struct {
	Index    int    `json:"index"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

// Classifier is the external classification fallback. Implementations must
// return one entry per input description, index-aligned; a failed call is not
// fatal to the import, the caller falls back to a generic category.
type Classifier interface {
	ClassifyBatch(ctx context.Context, descriptions []string) ([]Classification, error)
}

type AnthropicClassifier struct {
	client anthropic.Client
	model  string
}

func NewAnthropicClassifier(apiKey, model string) *AnthropicClassifier {
	if model == "" {
		model = defaultModel
	}
	return &AnthropicClassifier{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

type batchResponse struct {
	Classifications []Classification `json:"classifications"`
}

func (c *AnthropicClassifier) ClassifyBatch(ctx context.Context, descriptions []string) ([]Classification, error) {
	if len(descriptions) == 0 {
		return nil, nil
	}

	prompt := buildPrompt(descriptions)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("classification call failed: %w", err)
	}
	if len(message.Content) == 0 {
		return nil, fmt.Errorf("empty response from classification call")
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	// The model may wrap the JSON in markdown fences; extract the object.
	jsonStart := strings.Index(responseText, "{")
	jsonEnd := strings.LastIndex(responseText, "}")
	if jsonStart == -1 || jsonEnd == -1 {
		return nil, fmt.Errorf("no JSON found in response: %s", responseText)
	}

	var parsed batchResponse
	if err := json.Unmarshal([]byte(responseText[jsonStart:jsonEnd+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse classification response: %w", err)
	}

	out := make([]Classification, len(descriptions))
	for i := range out {
		out[i] = Classification{Index: i}
	}
	for _, cl := range parsed.Classifications {
		if cl.Index >= 0 && cl.Index < len(out) && rules.ValidType(rules.TransactionType(cl.Type)) {
			out[cl.Index] = cl
		}
	}
	return out, nil
}

func buildPrompt(descriptions []string) string {
	var b strings.Builder
	b.WriteString("You categorize bank transactions for a Brazilian music label.\n")
	b.WriteString("For each description below, pick a short snake_case category slug and a type.\n")
	b.WriteString("Type must be one of: receitas, despesas, investimentos.\n\n")
	b.WriteString("Respond with ONLY a JSON object of this shape:\n")
	b.WriteString(`{"classifications":[{"index":0,"category":"producao_musical","type":"despesas"}]}`)
	b.WriteString("\n\nTransactions:\n")
	for i, d := range descriptions {
		fmt.Fprintf(&b, "%d: %s\n", i, d)
	}
	return b.String()
}
