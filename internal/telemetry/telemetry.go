// Package telemetry provides opt-in JSONL event emission for offline
// inspection of turn behavior, plus turn-ID propagation via context.
//
// Events are appended to .eduguide/events.jsonl in the working directory
// when EDUGUIDE_OBSERVE_JSON=1. Emission failures are reported on stderr and
// never interrupt a turn.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	observeEnv = "EDUGUIDE_OBSERVE_JSON"
	eventsDir  = ".eduguide"
	eventsFile = "events.jsonl"
)

// Enabled reports whether JSONL emission is switched on.
func Enabled() bool {
	return os.Getenv(observeEnv) == "1"
}

// Emit writes a single JSON line when enabled, augmenting fields with
// RFC3339Nano time and the event name. The caller's map is not mutated.
func Emit(name string, fields map[string]any) {
	if !Enabled() {
		return
	}

	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	if err := os.MkdirAll(eventsDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", eventsDir, err)
		return
	}

	path := filepath.Join(eventsDir, eventsFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
	}
}
