// Package memory provides durable conversation session state.
//
// Persistence model:
//   - A session is one JSON document: ordered turn history plus a slot map
//     of extracted user facts (name, destination, course).
//   - Every mutation is written through to disk before the call returns, so
//     a crash between turns loses nothing already committed.
//   - A missing or unreadable session file loads as an empty session; a
//     corrupted file must never block the assistant from starting.
package memory
