// Package core owns the board while kboard runs.
//
// [Service] is the only thing that mutates the board. Each operation
// follows the same steps:
//
//  1. Validate the target list or card and the input
//  2. Mutate the board
//  3. Save it through the persist adapter
//  4. Redraw the whole board and emit a short status message
//
// Unknown IDs, blank titles and declined confirmations are silent no-ops.
// A failed save returns an error wrapping [ErrStorage] but keeps the change
// in memory, so the next successful save flushes it.
//
// Functions return errors instead of printing. UI-specific logic belongs in
// the cli package, not here.
package core
