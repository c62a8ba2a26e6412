package authenticator

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCredentialBody(t *testing.T, rpID string, alg int64) []byte {
	t.Helper()
	req := makeCredentialRequest{
		ClientDataHash: []byte{0x01, 0x02, 0x03},
		RP:             rpEntity{ID: rpID},
		User:           userEntity{ID: []byte{0x09}},
		PubKeyCredParams: []pubKeyCredParam{
			{Type: "public-key", Alg: alg},
		},
	}
	body, err := cbor.Marshal(req)
	require.NoError(t, err)
	return body
}

func TestHandleMakeCredentialProducesAttestationObject(t *testing.T) {
	a := New(uuid.New())
	body := append([]byte{byte(cmdMakeCredential)}, makeCredentialBody(t, "example.com", algES256)...)

	out, err := a.Handle(body)
	require.NoError(t, err)

	var decoded map[int]any
	require.NoError(t, cbor.Unmarshal(out, &decoded))
	assert.Equal(t, "none", decoded[1])
	assert.NotEmpty(t, decoded[2])
	assert.Len(t, a.creds, 1)
}

func TestHandleMakeCredentialRejectsUnsupportedAlgorithm(t *testing.T) {
	a := New(uuid.New())
	body := append([]byte{byte(cmdMakeCredential)}, makeCredentialBody(t, "example.com", -257)...)

	_, err := a.Handle(body)
	assert.ErrorIs(t, err, statusUnsupportedAlgorithm)
}

func TestHandleMakeCredentialRejectsMissingRPID(t *testing.T) {
	a := New(uuid.New())
	body := append([]byte{byte(cmdMakeCredential)}, makeCredentialBody(t, "", algES256)...)

	_, err := a.Handle(body)
	assert.ErrorIs(t, err, statusMissingParameter)
}

func TestHandleGetInfoReportsAAGUID(t *testing.T) {
	id := uuid.New()
	a := New(id)

	out, err := a.Handle([]byte{byte(cmdGetInfo)})
	require.NoError(t, err)

	var decoded getInfoResponse
	require.NoError(t, cbor.Unmarshal(out, &decoded))
	assert.Equal(t, []string{"FIDO_2_0"}, decoded.Versions)
	assert.Equal(t, id[:], decoded.AAGUID)
}

func TestHandleUnknownCommandIsRejected(t *testing.T) {
	a := New(uuid.New())

	_, err := a.Handle([]byte{0xEE})
	assert.ErrorIs(t, err, statusInvalidCommand)
}

func TestHandleEmptyRequestIsRejected(t *testing.T) {
	a := New(uuid.New())

	_, err := a.Handle(nil)
	assert.ErrorIs(t, err, statusInvalidLength)
}
