package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Store owns a Session and its backing file. Every mutation serializes the
// full document and overwrites the file before returning (write-through), so
// the on-disk state never lags the in-memory state by more than the mutation
// in flight. Single-writer, single-reader; no locking.
type Store struct {
	path    string
	session *Session
	log     zerolog.Logger
}

// Open loads the session at path, or starts empty when the file is missing
// or unreadable. Load failures are never surfaced: a corrupted session file
// must not block startup.
func Open(path string, log zerolog.Logger) *Store {
	s := &Store{path: path, session: NewSession(), log: log}
	s.load()
	return s
}

func (s *Store) load() {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Debug().Err(err).Str("path", s.path).Msg("session file unreadable, starting empty")
		}
		return
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		s.log.Debug().Err(err).Str("path", s.path).Msg("session file corrupt, starting empty")
		return
	}
	s.session = &sess
}

func (s *Store) save() error {
	b, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", s.path, err)
	}
	return nil
}

// AddTurn appends a complete turn to history and persists. Partial turns must
// never be appended; callers add a turn only once its content is fully known.
func (s *Store) AddTurn(role, content string) error {
	s.session.History = append(s.session.History, Turn{Role: role, Content: content})
	return s.save()
}

// SetSlot records an extracted fact, overwriting any previous value, and
// persists.
func (s *Store) SetSlot(key, value string) error {
	s.session.Slots[key] = value
	return s.save()
}

// Slot returns the value for key and whether it is set.
func (s *Store) Slot(key string) (string, bool) {
	v, ok := s.session.Slots[key]
	return v, ok
}

// Slots returns a copy of the current slot map.
func (s *Store) Slots() map[string]string {
	out := make(map[string]string, len(s.session.Slots))
	for k, v := range s.session.Slots {
		out[k] = v
	}
	return out
}

// History returns a copy of the turn history, oldest first.
func (s *Store) History() []Turn {
	out := make([]Turn, len(s.session.History))
	copy(out, s.session.History)
	return out
}

// Empty reports whether the session holds no history and no slots.
func (s *Store) Empty() bool {
	return s.session.Empty()
}

// Clear resets the session to empty and persists immediately. Unknown
// document keys are dropped along with everything else; reset is a full wipe.
func (s *Store) Clear() error {
	s.session = NewSession()
	return s.save()
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
