package rsa

import "errors"

// Error sentinels for the key generation pipeline. Callers match them with
// errors.Is; concrete failures wrap these with additional context.
var (
	// ErrInvalidArgument reports a null, zero or otherwise malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrArithmeticInvariant reports a failed mathematical precondition,
	// e.g. the public exponent not being invertible modulo phi.
	ErrArithmeticInvariant = errors.New("arithmetic invariant violation")

	// ErrGenerationFailure reports that a key assembly sub-step failed.
	ErrGenerationFailure = errors.New("key generation failure")
)
