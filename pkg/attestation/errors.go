package attestation

import "errors"

var (
	// ErrInvalidLength is returned by EncodeACD when CredentialLength does
	// not equal len(CredentialID), or the id is too long to represent in
	// the 16-bit wire field.
	ErrInvalidLength = errors.New("attestation: invalid length")
	// ErrInvalidState is returned by EncodeAuthData when a flag promises
	// data (AT or ED) that was not provided.
	ErrInvalidState = errors.New("attestation: invalid state")
)
