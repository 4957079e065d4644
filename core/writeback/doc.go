// Package writeback provides a debounced write-behind queue for field-level
// edits.
//
// Edits are applied to the in-memory snapshot synchronously and immediately;
// persistence is deferred behind a fixed delay so rapid successive edits to
// the same field collapse into a single write. Each key gets an independent
// timer, so unrelated edits never cancel each other; within a key, the last
// enqueued write wins.
//
// The queue does not guard against a wholesale snapshot reload overtaking a
// still-pending write. That race is accepted: the next full recompute
// surfaces any resulting inconsistency as a validation finding.
package writeback
