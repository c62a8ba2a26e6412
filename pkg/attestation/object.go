package attestation

import "github.com/fxamacker/cbor/v2"

// attestationObject is the three-entry CBOR map with integer keys
// 1, 2, 3 in that order that a WebAuthn relying party expects back
// from a credential creation ceremony. The keyasint struct tags
// encode the fields in declaration order rather than any
// library-chosen map order — which is the whole point: the bytes this
// produces must be bit-exact regardless of the CBOR library's
// internal map iteration behavior.
type attestationObject struct {
	Fmt      string         `cbor:"1,keyasint"`
	AuthData []byte         `cbor:"2,keyasint"`
	AttStmt  map[string]any `cbor:"3,keyasint"`
}

// EncodeAttestationObject emits the CBOR map {1: fmt, 2: authData,
// 3: attStmt}. attStmt's layout is format-specific and opaque to this
// function; pass an empty map for FormatNone to get the canonical
// 0xA0 empty-map encoding.
func EncodeAttestationObject(fmt Format, authData []byte, attStmt map[string]any) ([]byte, error) {
	if attStmt == nil {
		attStmt = map[string]any{}
	}

	obj := attestationObject{
		Fmt:      string(fmt),
		AuthData: authData,
		AttStmt:  attStmt,
	}

	return cbor.Marshal(obj)
}

// EncodeNoneAttestationObject is EncodeAttestationObject with
// fmt="none" and the empty attStmt map.
func EncodeNoneAttestationObject(authData []byte) ([]byte, error) {
	return EncodeAttestationObject(FormatNone, authData, map[string]any{})
}
