package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = string(anthropic.ModelClaude3_7SonnetLatest)

// anthropicMaxTokens caps reply length; the Messages API requires an explicit
// value.
const anthropicMaxTokens = 1024

// Anthropic streams replies from the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropic builds the Anthropic streamer. Extra request options are
// appended after those derived from opts, so tests can inject a transport.
func NewAnthropic(opts Options, reqOpts ...option.RequestOption) *Anthropic {
	ro := []option.RequestOption{}
	if opts.APIKey != "" {
		ro = append(ro, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		ro = append(ro, option.WithBaseURL(opts.BaseURL))
	}
	ro = append(ro, reqOpts...)

	model := opts.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &Anthropic{client: anthropic.NewClient(ro...), model: anthropic.Model(model)}
}

// Name returns the provider name.
func (p *Anthropic) Name() string { return "anthropic" }

// Stream sends msgs and forwards each text delta to emit, consuming the SSE
// stream to completion. The Messages API carries the system instruction out
// of band, so a leading system message is lifted into the request's System
// field rather than the message list.
func (p *Anthropic) Stream(ctx context.Context, msgs []Message, emit func(string)) error {
	sys, rest := splitSystem(msgs)

	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: int64(anthropicMaxTokens),
		Messages:  toAnthropicMessages(rest),
	}
	if sys != "" {
		params.System = []anthropic.TextBlockParam{{Text: sys}}
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		event := stream.Current()
		switch ev := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if ev.Delta.Text != "" {
				emit(ev.Delta.Text)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("anthropic stream: %w", err)
	}
	return nil
}

func toAnthropicMessages(msgs []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == "assistant" {
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		} else {
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return out
}
