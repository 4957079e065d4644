// Package server holds the HTTP server configuration: listen port, API key,
// and the debounce window applied to field-level catalog edits.
package server
