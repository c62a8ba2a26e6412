package authenticator

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/ldclabs/cose/iana"
	coseecdsa "github.com/ldclabs/cose/key/ecdsa"
)

// encodeCOSEPublicKey converts an ECDSA P-256 public key into its
// COSE_Key CBOR encoding, using key/ecdsa plus the iana parameter
// tables the same way a COSE key for key agreement would, just over
// the signing curve instead of the agreement one.
func encodeCOSEPublicKey(pub *ecdsa.PublicKey) ([]byte, error) {
	k, err := coseecdsa.KeyFromPublic(pub)
	if err != nil {
		return nil, fmt.Errorf("cannot convert credential public key to COSE_Key: %w", err)
	}
	if err := k.Set(iana.KeyParameterAlg, int64(iana.AlgorithmES256)); err != nil {
		return nil, fmt.Errorf("cannot set alg parameter for COSE_Key: %w", err)
	}
	delete(k, iana.KeyParameterKid)

	return cbor.Marshal(k)
}
