package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eduguide/eduguide/internal/metrics"
	"github.com/eduguide/eduguide/internal/prompt"
	"github.com/eduguide/eduguide/internal/provider"
	"github.com/eduguide/eduguide/internal/slots"
	"github.com/eduguide/eduguide/internal/telemetry"
	"github.com/eduguide/eduguide/memory"
)

// ErrPersist marks a write-through failure. Callers should stop the
// conversation when they see it: the in-memory session and the file on disk
// no longer agree.
var ErrPersist = errors.New("session persistence failed")

// Runner executes the per-turn protocol against a live session store.
type Runner struct {
	store     *memory.Store
	extractor *slots.Extractor
	model     provider.Streamer
	log       zerolog.Logger
}

// New wires a Runner. The extractor's rule table and the model are fixed for
// the Runner's lifetime.
func New(store *memory.Store, extractor *slots.Extractor, model provider.Streamer, log zerolog.Logger) *Runner {
	return &Runner{store: store, extractor: extractor, model: model, log: log}
}

// RunTurn processes one user utterance: capture slots, rebuild the system
// instruction, call the model with [system] + history + [user], and persist
// the exchange. Fragments are forwarded to emit, in order, as they arrive;
// emit may be nil. The returned reply is the whitespace-trimmed
// concatenation of all fragments.
//
// Persistence failures abort the turn: a mutation that cannot be written
// through would silently diverge disk from memory, so the error propagates
// instead of being retried.
func (r *Runner) RunTurn(ctx context.Context, userText string, emit func(fragment string)) (string, error) {
	turnID, ok := telemetry.TurnIDFromContext(ctx)
	if !ok {
		turnID = uuid.NewString()
		ctx = telemetry.WithTurnID(ctx, turnID)
	}

	in := metrics.CountFeatures(userText)
	telemetry.Emit("turn_started", map[string]any{
		"turn_id":     turnID,
		"input_words": in.Words,
		"input_runes": in.Runes,
	})

	captures := r.extractor.Extract(userText)
	if len(captures) > 0 {
		names := make([]string, 0, len(captures))
		for _, c := range captures {
			if err := r.store.SetSlot(c.Slot, c.Value); err != nil {
				return "", fmt.Errorf("%w: slot %s: %v", ErrPersist, c.Slot, err)
			}
			names = append(names, c.Slot)
		}
		telemetry.Emit("slots_extracted", map[string]any{"turn_id": turnID, "slots": names})
		r.log.Debug().Strs("slots", names).Msg("captured slots")
	}

	// Assemble before appending the new user turn so history holds only
	// prior exchanges.
	system := prompt.Build(r.store.Slots())
	msgs := r.assemble(system, userText)

	if err := r.store.AddTurn(memory.RoleUser, userText); err != nil {
		return "", fmt.Errorf("%w: user turn: %v", ErrPersist, err)
	}

	var reply strings.Builder
	if err := r.model.Stream(ctx, msgs, func(fragment string) {
		reply.WriteString(fragment)
		if emit != nil {
			emit(fragment)
		}
	}); err != nil {
		r.log.Warn().Err(err).Str("turn_id", turnID).Msg("model call failed, turn aborted")
		return "", fmt.Errorf("model call: %w", err)
	}

	text := strings.TrimSpace(reply.String())
	if err := r.store.AddTurn(memory.RoleAssistant, text); err != nil {
		return "", fmt.Errorf("%w: assistant turn: %v", ErrPersist, err)
	}

	telemetry.Emit("reply_persisted", map[string]any{
		"turn_id":     turnID,
		"reply_runes": metrics.CountFeatures(text).Runes,
	})
	return text, nil
}

// assemble builds the outbound sequence: a fresh system instruction, every
// persisted history turn, then the new user message. The system instruction
// itself is never written to history.
func (r *Runner) assemble(system, userText string) []provider.Message {
	hist := r.store.History()
	msgs := make([]provider.Message, 0, len(hist)+2)
	msgs = append(msgs, provider.Message{Role: memory.RoleSystem, Content: system})
	for _, t := range hist {
		msgs = append(msgs, provider.Message{Role: t.Role, Content: t.Content})
	}
	return append(msgs, provider.Message{Role: memory.RoleUser, Content: userText})
}
