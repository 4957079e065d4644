// Package database provides the GORM connection layer for the hook catalog.
//
// MySQL is the production driver; sqlite (including :memory:) backs tests
// and lightweight local setups. Connection settings come from the partial
// Config struct, bound by the config package.
package database
