package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// WriteDelayMS is the debounce window, in milliseconds, applied to
	// field-level edits before they are persisted.
	WriteDelayMS int `mapstructure:"write_delay_ms" default:"500"`
}

// WriteDelay returns the configured debounce window as a duration.
func (c Config) WriteDelay() time.Duration {
	return time.Duration(c.WriteDelayMS) * time.Millisecond
}
