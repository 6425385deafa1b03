// Package runner drives one conversation turn end to end: extract slots from
// the user's utterance, rebuild the system instruction, send the assembled
// sequence to the model, and persist both sides of the exchange.
//
// Invariants:
//   - The user turn is persisted before the model reply, never after it or
//     out of order. A failed model call leaves a session whose last turn is
//     a user turn with no reply; that partial state is visible and accepted,
//     not repaired.
//   - The system instruction is regenerated every turn and never stored in
//     history.
package runner
