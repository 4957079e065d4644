// Package export renders the catalog for external consumption: a
// spreadsheet-friendly CSV of the full model tree and dated JSON backups
// uploaded to object storage.
package export
