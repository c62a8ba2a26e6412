package attestation

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Encode Attested Credential Data and check the byte layout:
// aaguid || be16(len) || credential_id || cose key.
func TestEncodeACDLayout(t *testing.T) {
	credID := make([]byte, 64)
	for i := range credID {
		credID[i] = byte(i)
	}

	coseKey := append([]byte{0xA5, 0x01, 0x02, 0x03, 0x26, 0x20, 0x01, 0x21, 0x58, 0x20}, bytes.Repeat([]byte{0x11}, 32)...)
	coseKey = append(coseKey, 0x22, 0x58, 0x20)
	coseKey = append(coseKey, bytes.Repeat([]byte{0x22}, 32)...)

	acd := ACD{
		AAGUID:              uuid.UUID{},
		CredentialLength:    0x0040,
		CredentialID:        credID,
		CredentialPublicKey: coseKey,
	}

	out, err := EncodeACD(acd)
	require.NoError(t, err)

	require.Len(t, out, 16+2+64+len(coseKey))
	assert.Equal(t, make([]byte, 16), out[0:16])
	assert.Equal(t, []byte{0x00, 0x40}, out[16:18])
	assert.Equal(t, credID, out[18:82])
	assert.Equal(t, coseKey, out[82:])
	assert.True(t, bytes.HasPrefix(out[82:], []byte{0xA5, 0x01, 0x02, 0x03, 0x26, 0x20, 0x01, 0x21, 0x58, 0x20}))
}

func TestEncodeACDRejectsLengthMismatch(t *testing.T) {
	acd := ACD{
		CredentialLength: 10,
		CredentialID:     []byte{1, 2, 3},
	}

	_, err := EncodeACD(acd)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestEncodeACDRejectsOversizedCredentialID(t *testing.T) {
	id := make([]byte, 0x10000)
	acd := ACD{
		CredentialLength: 0, // a 16-bit field can never equal len(id) here
		CredentialID:     id,
	}

	_, err := EncodeACD(acd)
	assert.ErrorIs(t, err, ErrInvalidLength)
}
