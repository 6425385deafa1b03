package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel matches the assistant's historical default backend.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI streams chat completions from the OpenAI API (or any compatible
// endpoint via Options.BaseURL).
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI builds the OpenAI streamer. Extra request options are appended
// after those derived from opts, so tests can inject a transport.
func NewOpenAI(opts Options, reqOpts ...option.RequestOption) *OpenAI {
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
		model = DefaultOpenAIModel
	}
	return &OpenAI{client: openai.NewClient(ro...), model: model}
}

// Name returns the provider name.
func (p *OpenAI) Name() string { return "openai" }

// Stream sends msgs and forwards each content delta to emit, consuming the
// SSE stream to completion.
func (p *OpenAI) Stream(ctx context.Context, msgs []Message, emit func(string)) error {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: toOpenAIMessages(msgs),
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			emit(delta)
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("openai stream: %w", err)
	}
	return nil
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
