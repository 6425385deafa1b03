package runner_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduguide/eduguide/internal/prompt"
	"github.com/eduguide/eduguide/internal/provider"
	"github.com/eduguide/eduguide/internal/runner"
	"github.com/eduguide/eduguide/internal/slots"
	"github.com/eduguide/eduguide/memory"
)

// fakeStreamer replays canned fragments and records every outbound sequence.
type fakeStreamer struct {
	fragments []string
	err       error
	sent      [][]provider.Message
}

func (f *fakeStreamer) Stream(_ context.Context, msgs []provider.Message, emit func(string)) error {
	f.sent = append(f.sent, msgs)
	if f.err != nil {
		return f.err
	}
	for _, fr := range f.fragments {
		emit(fr)
	}
	return nil
}

func (f *fakeStreamer) Name() string { return "fake" }

func newRunner(t *testing.T, model *fakeStreamer) (*runner.Runner, *memory.Store) {
	t.Helper()
	store := memory.Open(filepath.Join(t.TempDir(), "edu_memory.json"), zerolog.Nop())
	r := runner.New(store, slots.New(slots.DefaultRules()), model, zerolog.Nop())
	return r, store
}

func TestRunTurn_PersistsBothSides(t *testing.T) {
	model := &fakeStreamer{fragments: []string{"Happy", " to help."}}
	r, store := newRunner(t, model)

	reply, err := r.RunTurn(context.Background(), "What is a scholarship?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Happy to help.", reply)

	hist := store.History()
	require.Len(t, hist, 2)
	assert.Equal(t, memory.Turn{Role: "user", Content: "What is a scholarship?"}, hist[0])
	assert.Equal(t, memory.Turn{Role: "assistant", Content: "Happy to help."}, hist[1])
}

func TestRunTurn_TwoTurns_HistoryOrder(t *testing.T) {
	model := &fakeStreamer{fragments: []string{"reply"}}
	r, store := newRunner(t, model)

	_, err := r.RunTurn(context.Background(), "first question", nil)
	require.NoError(t, err)
	_, err = r.RunTurn(context.Background(), "second question", nil)
	require.NoError(t, err)

	hist := store.History()
	require.Len(t, hist, 4)
	wantRoles := []string{"user", "assistant", "user", "assistant"}
	for i, role := range wantRoles {
		assert.Equal(t, role, hist[i].Role, "turn %d", i)
	}
	assert.Equal(t, "first question", hist[0].Content)
	assert.Equal(t, "second question", hist[2].Content)
}

func TestRunTurn_OutboundSequence(t *testing.T) {
	model := &fakeStreamer{fragments: []string{"a"}}
	r, _ := newRunner(t, model)

	_, err := r.RunTurn(context.Background(), "q1", nil)
	require.NoError(t, err)
	_, err = r.RunTurn(context.Background(), "q2", nil)
	require.NoError(t, err)

	require.Len(t, model.sent, 2)

	// First call: system + new user only.
	first := model.sent[0]
	require.Len(t, first, 2)
	assert.Equal(t, "system", first[0].Role)
	assert.Equal(t, provider.Message{Role: "user", Content: "q1"}, first[1])

	// Second call: system + both persisted turns + new user.
	second := model.sent[1]
	require.Len(t, second, 4)
	assert.Equal(t, "system", second[0].Role)
	assert.Equal(t, provider.Message{Role: "user", Content: "q1"}, second[1])
	assert.Equal(t, provider.Message{Role: "assistant", Content: "a"}, second[2])
	assert.Equal(t, provider.Message{Role: "user", Content: "q2"}, second[3])
}

func TestRunTurn_SlotCaptureReachesSameTurnInstruction(t *testing.T) {
	model := &fakeStreamer{fragments: []string{"hello"}}
	r, store := newRunner(t, model)

	_, err := r.RunTurn(context.Background(), "My name is Rani", nil)
	require.NoError(t, err)

	require.Len(t, model.sent, 1)
	system := model.sent[0][0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "User's name: Rani")

	// The instruction is regenerated per turn, never stored.
	for _, turn := range store.History() {
		assert.NotEqual(t, "system", turn.Role)
	}
	if v, _ := store.Slot("name"); v != "Rani" {
		t.Fatalf("slot not persisted, got %q", v)
	}
}

func TestRunTurn_NoSlots_BaseInstruction(t *testing.T) {
	model := &fakeStreamer{fragments: []string{"hello"}}
	r, _ := newRunner(t, model)

	_, err := r.RunTurn(context.Background(), "Tell me about exams", nil)
	require.NoError(t, err)

	assert.Equal(t, prompt.BaseInstruction, model.sent[0][0].Content)
}

func TestRunTurn_ModelFailure_LeavesTrailingUserTurn(t *testing.T) {
	model := &fakeStreamer{err: errors.New("upstream 500")}
	r, store := newRunner(t, model)

	_, err := r.RunTurn(context.Background(), "hello?", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model call")

	// The user turn is already durable; no assistant turn follows.
	hist := store.History()
	require.Len(t, hist, 1)
	assert.Equal(t, memory.Turn{Role: "user", Content: "hello?"}, hist[0])
}

func TestRunTurn_ReplyTrimmed(t *testing.T) {
	model := &fakeStreamer{fragments: []string{"  spaced", " reply \n"}}
	r, store := newRunner(t, model)

	reply, err := r.RunTurn(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Equal(t, "spaced reply", reply)
	assert.Equal(t, "spaced reply", store.History()[1].Content)
}

func TestRunTurn_EmitSeesFragmentsInOrder(t *testing.T) {
	model := &fakeStreamer{fragments: []string{"one ", "two ", "three"}}
	r, _ := newRunner(t, model)

	var seen []string
	_, err := r.RunTurn(context.Background(), "q", func(f string) { seen = append(seen, f) })
	require.NoError(t, err)
	assert.Equal(t, []string{"one ", "two ", "three"}, seen)
	assert.Equal(t, "one two three", strings.TrimSpace(strings.Join(seen, "")))
}
