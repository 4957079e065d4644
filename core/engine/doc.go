// Package engine provides the pure reconciliation engine for the hook catalog.
//
// Every derived view (code usage, bank ownership, availability, validation
// findings, marketplace match status) is computed from scratch over an
// immutable Snapshot. The engine performs no I/O and stores no cross
// references on the entities themselves; indices are rebuilt whenever the
// snapshot changes.
//
// # Architecture
//
// The engine consists of two indices and the queries layered on top of them:
//
//  1. BankIndex: groups manufacturer product codes by model and answers
//     "which models own code X".
//
//  2. UsageIndex: scans the Model → Vehicle → Variant tree and records every
//     code assigned to an active variant, with its locations.
//
// Availability, validation findings and offer matching are derived by
// combining the two. Findings (duplicate codes, bank conflicts, wrong-model
// assignments) are first-class outputs surfaced for human review, never
// errors: nothing is auto-corrected or blocked because of them.
//
// # Determinism
//
// For a fixed snapshot, every query returns the same result in the same
// order. Listing-style outputs preserve catalog traversal order (model sort
// order, then vehicle order, then the fixed wiring-kind order); bank-derived
// outputs preserve bank insertion order.
package engine
