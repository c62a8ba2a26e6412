package attestation

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rp_id_hash || flags || be32(sign_count) || acd, with UP=1, AT=1,
// sign_count=0.
func TestEncodeAuthDataWithAttestedCredentialData(t *testing.T) {
	var rpIDHash [32]byte
	copy(rpIDHash[:], bytes.Repeat([]byte{0x21}, 32))
	rpIDHash[31] = 0x97

	credID := make([]byte, 64)
	coseKey := []byte{0xA5, 0x01, 0x02, 0x03, 0x26, 0x20, 0x01}
	acd := ACD{
		AAGUID:              uuid.UUID{},
		CredentialLength:    uint16(len(credID)),
		CredentialID:        credID,
		CredentialPublicKey: coseKey,
	}
	wantACDBytes, err := EncodeACD(acd)
	require.NoError(t, err)

	ad := AuthData{
		RPIDHash:               rpIDHash,
		Flags:                  FlagUserPresent | FlagAttestedCredentialData,
		SignCount:              0,
		AttestedCredentialData: &acd,
	}
	require.Equal(t, Flags(0x41), ad.Flags)

	out, err := EncodeAuthData(ad)
	require.NoError(t, err)

	assert.Equal(t, rpIDHash[:], out[0:32])
	assert.Equal(t, byte(0x41), out[32])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, out[33:37])
	assert.Equal(t, wantACDBytes, out[37:])
}

func TestEncodeAuthDataWithoutOptionalFields(t *testing.T) {
	ad := AuthData{
		Flags:     FlagUserPresent,
		SignCount: 7,
	}

	out, err := EncodeAuthData(ad)
	require.NoError(t, err)
	require.Len(t, out, 37)
	assert.Equal(t, byte(0x01), out[32])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x07}, out[33:37])
}

func TestEncodeAuthDataRejectsATFlagWithoutACD(t *testing.T) {
	ad := AuthData{
		Flags: FlagAttestedCredentialData,
	}

	_, err := EncodeAuthData(ad)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEncodeAuthDataRejectsEDFlagWithoutExtensions(t *testing.T) {
	ad := AuthData{
		Flags: FlagExtensionData,
	}

	_, err := EncodeAuthData(ad)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEncodeAuthDataIncludesExtensionsWhenEDSet(t *testing.T) {
	ext := []byte{0xA1, 0x01, 0x02}
	ad := AuthData{
		Flags:      FlagExtensionData,
		Extensions: ext,
	}

	out, err := EncodeAuthData(ad)
	require.NoError(t, err)
	assert.Equal(t, ext, out[37:])
}
