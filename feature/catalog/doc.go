// Package catalog owns the Model → Vehicle → Variant tree and the in-memory
// snapshot the reconciliation engine derives from.
//
// The Store applies every mutation to the snapshot synchronously and
// optimistically, rebuilds the engine, and persists either immediately
// (structural changes) or through the debounced write-behind queue
// (field-level edits). External change notifications are handled by a
// wholesale Reload; a slow debounced write overtaken by a reload is an
// accepted race surfaced later as a validation finding.
package catalog
