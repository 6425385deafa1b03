package memory

import "encoding/json"

// Roles recognised in persisted history. The field stays a plain string so
// documents written by other tooling round-trip without validation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged message in the conversation history. Turns are
// append-only: once persisted they are never edited or removed, except by a
// full session reset.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the durable conversation record: chronological turn history plus
// a last-write-wins slot map of extracted user facts. Slot keys are normally
// name/destination/course, but unrecognised keys are preserved, as are unknown
// top-level document keys.
type Session struct {
	History []Turn
	Slots   map[string]string

	// extra holds unknown top-level keys so they survive a load/save cycle.
	extra map[string]json.RawMessage
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{Slots: map[string]string{}}
}

// Empty reports whether the session has no history and no slots.
func (s *Session) Empty() bool {
	return len(s.History) == 0 && len(s.Slots) == 0
}

// MarshalJSON writes the full document: history, slots, and any preserved
// unknown keys. History and slots are always present, even when empty.
func (s *Session) MarshalJSON() ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(s.extra)+2)
	for k, v := range s.extra {
		doc[k] = v
	}

	history := s.History
	if history == nil {
		history = []Turn{}
	}
	h, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}
	doc["history"] = h

	slots := s.Slots
	if slots == nil {
		slots = map[string]string{}
	}
	sl, err := json.Marshal(slots)
	if err != nil {
		return nil, err
	}
	doc["slots"] = sl

	return json.Marshal(doc)
}

// UnmarshalJSON reads a session document, keeping unknown top-level keys
// aside for the next save.
func (s *Session) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var out Session
	if raw, ok := doc["history"]; ok {
		if err := json.Unmarshal(raw, &out.History); err != nil {
			return err
		}
		delete(doc, "history")
	}
	if raw, ok := doc["slots"]; ok {
		if err := json.Unmarshal(raw, &out.Slots); err != nil {
			return err
		}
		delete(doc, "slots")
	}
	if out.Slots == nil {
		out.Slots = map[string]string{}
	}
	if len(doc) > 0 {
		out.extra = doc
	}

	*s = out
	return nil
}
