// Package attestation implements the binary encoder for the WebAuthn
// Attestation Object: Attested Credential Data, Authenticator Data, and
// the CBOR envelope that carries them to a relying party. Every
// function here is pure — no I/O, no hidden state — and deterministic,
// since relying parties verify signatures over these exact bytes.
package attestation

import "github.com/google/uuid"

// Format is a WebAuthn-registered attestation statement format
// identifier. Only FormatNone is signed/verified by this module;
// other formats are representable at the envelope level, but their
// attStmt construction and certificate handling is delegated to the
// caller.
type Format string

const (
	FormatNone    Format = "none"
	FormatPacked  Format = "packed"
	FormatTPM     Format = "tpm"
	FormatFIDOU2F Format = "fido-u2f"
)

// ACD is Attested Credential Data. CredentialPublicKey is already
// COSE-encoded by an external key encoder and is emitted verbatim —
// this package never parses or re-encodes it.
type ACD struct {
	AAGUID              uuid.UUID
	CredentialLength    uint16
	CredentialID        []byte
	CredentialPublicKey []byte
}

// Flags is the AuthData flags byte: UP at bit 0, UV at bit 2, AT at
// bit 6, ED at bit 7.
type Flags byte

const (
	FlagUserPresent            Flags = 1 << 0
	FlagUserVerified           Flags = 1 << 2
	FlagAttestedCredentialData Flags = 1 << 6
	FlagExtensionData          Flags = 1 << 7
)

// AuthData is Authenticator Data: the signed preimage that binds a
// credential to a relying party and a signature counter.
type AuthData struct {
	RPIDHash               [32]byte
	Flags                  Flags
	SignCount              uint32
	AttestedCredentialData *ACD
	Extensions             []byte // opaque CBOR map, present iff ED=1
}
