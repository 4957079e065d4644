// Package utils provides loose-typed conversion helpers used when parsing
// tabular marketplace extracts, where cell types are unreliable.
package utils
