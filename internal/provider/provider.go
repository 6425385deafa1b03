// Package provider adapts chat-completion backends to a single streaming
// capability. The orchestrator treats the model as opaque: send a message
// sequence, consume reply fragments in order.
package provider

import (
	"context"
	"fmt"
)

// Message mirrors the wire shape of one conversation message.
type Message struct {
	Role    string
	Content string
}

// Streamer is the model capability boundary. Stream sends msgs and delivers
// reply fragments, in order, to emit; it returns only after the reply
// completes or fails. A stream is restartable only by calling Stream again,
// never resumable mid-reply. No retry or backoff happens at this layer.
type Streamer interface {
	Stream(ctx context.Context, msgs []Message, emit func(fragment string)) error
	Name() string
}

// Options carries provider construction settings.
type Options struct {
	Provider string // "openai" or "anthropic"
	Model    string
	APIKey   string
	BaseURL  string
}

// New returns the Streamer selected by opts.Provider.
func New(opts Options) (Streamer, error) {
	switch opts.Provider {
	case "openai":
		return NewOpenAI(opts), nil
	case "anthropic":
		return NewAnthropic(opts), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", opts.Provider)
	}
}

// splitSystem separates a leading system instruction from the conversational
// messages, for backends that carry the system prompt out of band.
func splitSystem(msgs []Message) (string, []Message) {
	if len(msgs) > 0 && msgs[0].Role == "system" {
		return msgs[0].Content, msgs[1:]
	}
	return "", msgs
}
