// Package openai provides an oracle adapter using the OpenAI Chat
// Completions API. It adapts ElicitMesh's Request structure into the SDK's
// message format and back.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/elicitmesh/core"
	"github.com/hupe1980/elicitmesh/oracle"
	"github.com/openai/openai-go"
)

// Options configure the OpenAI oracle adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Oracle wraps the OpenAI Chat Completions API behind the generic
// oracle.Oracle interface.
type Oracle struct {
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI oracle using the official client.
func New(optFns ...func(o *Options)) *Oracle {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI oracle from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Oracle {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Oracle{client: client, opts: opts}
}

// Generate implements oracle.Oracle for the Chat Completions API. Content
// filter finishes and empty completions are mapped to core.ErrOracleRefusal.
func (o *Oracle) Generate(ctx context.Context, req oracle.Request) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               o.opts.Model,
		Temperature:         openai.Float(o.opts.Temperature),
		MaxCompletionTokens: openai.Int(o.opts.MaxCompletionTokens),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", oracle.ClassifyErr(fmt.Errorf("openai api error: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", core.ErrOracleRefusal)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", fmt.Errorf("%w: finish_reason=content_filter", core.ErrOracleRefusal)
	}
	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", core.ErrOracleRefusal)
	}
	return text, nil
}

// Info returns metadata describing this OpenAI oracle implementation.
func (o *Oracle) Info() oracle.Info {
	return oracle.Info{Name: o.opts.Model, Provider: "openai"}
}
