package contract

import "errors"

var (
	ErrCapabilityInvoke = errors.New("research capability invoke failed")
	ErrValidation       = errors.New("validation failed")
)
