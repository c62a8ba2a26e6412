package authenticator

import "github.com/go-ctap/fido2-authenticator/pkg/ctaphid"

// command is a CTAP2 authenticatorAPI command byte: the first byte of
// every CTAPHID_CBOR request body.
type command byte

const (
	cmdMakeCredential command = 0x01
	cmdGetAssertion   command = 0x02
	cmdGetInfo        command = 0x04
)

// Status codes this reference Authenticator can report, named after
// the CTAP2 CTAP1_ERR_* / CTAP2_ERR_* status codes. Only the subset a
// minimal MakeCredential/GetInfo path can actually produce is
// declared here.
const (
	statusInvalidCommand       = ctaphid.StatusError(0x01)
	statusInvalidParameter     = ctaphid.StatusError(0x02)
	statusInvalidLength        = ctaphid.StatusError(0x03)
	statusInvalidCBOR          = ctaphid.StatusError(0x12)
	statusMissingParameter     = ctaphid.StatusError(0x14)
	statusUnsupportedAlgorithm = ctaphid.StatusError(0x26)
	statusOther                = ctaphid.StatusError(0x7F)
)
