package authenticator

import "crypto/ecdsa"

// storedCredential is one credential this reference authenticator has
// minted, keyed by its credential id in Authenticator.creds.
type storedCredential struct {
	rpID       string
	privateKey *ecdsa.PrivateKey
	coseKey    []byte
	signCount  uint32
}
