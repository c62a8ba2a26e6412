// Package authenticator is a minimal, in-memory CTAP2 command handler
// satisfying ctaphid.Authenticator. It implements
// authenticatorMakeCredential and authenticatorGetInfo only,
// self-attestation ("none" format) only, no PIN/UV, and no
// resident-key bookkeeping beyond a process-lifetime map.
package authenticator

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/go-ctap/fido2-authenticator/pkg/attestation"
)

// Authenticator is a self-attesting, single-algorithm CTAP2 core. The
// zero value is not usable; construct with New.
type Authenticator struct {
	aaguid uuid.UUID

	mu    sync.Mutex
	creds map[string]*storedCredential
}

// New constructs an Authenticator that reports aaguid in both
// authenticatorGetInfo and every minted credential's Attested
// Credential Data.
func New(aaguid uuid.UUID) *Authenticator {
	return &Authenticator{
		aaguid: aaguid,
		creds:  make(map[string]*storedCredential),
	}
}

// Handle implements ctaphid.Authenticator.
func (a *Authenticator) Handle(request []byte) ([]byte, error) {
	if len(request) == 0 {
		return nil, statusInvalidLength
	}

	cmd := command(request[0])
	body := request[1:]

	switch cmd {
	case cmdMakeCredential:
		return a.makeCredential(body)
	case cmdGetInfo:
		return a.getInfo()
	case cmdGetAssertion:
		// Assertion signing needs a real client-data/authData signing
		// path this reference implementation does not build; reporting
		// CTAP1_ERR_INVALID_COMMAND here would be wrong since the
		// command is recognized, so report CTAP1_ERR_INVALID_PARAMETER
		// instead.
		return nil, statusInvalidParameter
	default:
		return nil, statusInvalidCommand
	}
}

func (a *Authenticator) makeCredential(body []byte) ([]byte, error) {
	var req makeCredentialRequest
	if err := cbor.Unmarshal(body, &req); err != nil {
		return nil, statusInvalidCBOR
	}
	if req.RP.ID == "" || len(req.ClientDataHash) == 0 {
		return nil, statusMissingParameter
	}
	if !supportsES256(req.PubKeyCredParams) {
		return nil, statusUnsupportedAlgorithm
	}

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, statusOther
	}

	coseKey, err := encodeCOSEPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, statusOther
	}

	credID := make([]byte, 32)
	if _, err := rand.Read(credID); err != nil {
		return nil, statusOther
	}

	cred := &storedCredential{
		rpID:       req.RP.ID,
		privateKey: priv,
		coseKey:    coseKey,
	}

	a.mu.Lock()
	a.creds[string(credID)] = cred
	a.mu.Unlock()

	rpIDHash := sha256.Sum256([]byte(req.RP.ID))
	acd := attestation.ACD{
		AAGUID:              a.aaguid,
		CredentialLength:    uint16(len(credID)),
		CredentialID:        credID,
		CredentialPublicKey: coseKey,
	}
	authData := attestation.AuthData{
		RPIDHash:               rpIDHash,
		Flags:                  attestation.FlagUserPresent | attestation.FlagAttestedCredentialData,
		SignCount:              cred.signCount,
		AttestedCredentialData: &acd,
	}

	authDataBytes, err := attestation.EncodeAuthData(authData)
	if err != nil {
		return nil, statusOther
	}

	return attestation.EncodeNoneAttestationObject(authDataBytes)
}

func (a *Authenticator) getInfo() ([]byte, error) {
	resp := getInfoResponse{
		Versions: []string{"FIDO_2_0"},
		AAGUID:   a.aaguid[:],
	}
	return cbor.Marshal(resp)
}
