// Package anthropic provides an oracle adapter for the Anthropic Claude API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hupe1980/elicitmesh/core"
	"github.com/hupe1980/elicitmesh/oracle"
)

// Options configures the Anthropic oracle adapter (model id, temperature,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Oracle wraps the Anthropic Messages API behind the generic oracle.Oracle
// interface.
type Oracle struct {
	client *anthropic.Client
	opts   Options
}

// New creates a new Anthropic oracle using the official client.
func New(optFns ...func(o *Options)) *Oracle {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Oracle{client: &client, opts: opts}
}

// NewFromClient creates a new Anthropic oracle from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Oracle {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Oracle{client: client, opts: opts}
}

// Generate implements oracle.Oracle for the Messages API. Refusal stop
// reasons and empty completions are mapped to core.ErrOracleRefusal so the
// coordinator retry policy applies.
func (o *Oracle) Generate(ctx context.Context, req oracle.Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       o.opts.Model,
		MaxTokens:   o.opts.MaxTokens,
		Temperature: anthropic.Float(o.opts.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	resp, err := o.client.Messages.New(ctx, params)
	if err != nil {
		return "", oracle.ClassifyErr(fmt.Errorf("anthropic api error: %w", err))
	}

	if resp.StopReason == "refusal" {
		return "", fmt.Errorf("%w: stop_reason=refusal", core.ErrOracleRefusal)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", core.ErrOracleRefusal)
	}
	return text, nil
}

// Info returns metadata describing this Anthropic oracle implementation.
func (o *Oracle) Info() oracle.Info {
	return oracle.Info{Name: string(o.opts.Model), Provider: "anthropic"}
}
