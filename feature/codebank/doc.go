// Package codebank implements the manufacturer product-code bank workflows:
// bulk paste intake with per-code validation and conflict findings, single
// removal and whole-model clearing. Persistence and snapshot lifecycle stay
// with the catalog store; this package owns the intake rules.
package codebank
