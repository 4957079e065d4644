package catalog

import "errors"

// Validation-rejected inputs. These are returned before any effect is
// applied; conflict findings are never errors.
var (
	ErrEmptyModelCode  = errors.New("model code is empty")
	ErrModelExists     = errors.New("model already exists")
	ErrModelNotFound   = errors.New("model not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrEmptyName       = errors.New("vehicle name is empty")
	ErrUnknownField    = errors.New("unknown variant field")
	ErrInvalidCode     = errors.New("invalid product code")
)
