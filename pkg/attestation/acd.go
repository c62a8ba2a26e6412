package attestation

import "encoding/binary"

// EncodeACD emits aaguid || be16(credential_length) || credential_id ||
// credential_public_key. credential_public_key is opaque COSE bytes
// produced elsewhere and is copied verbatim.
func EncodeACD(acd ACD) ([]byte, error) {
	if int(acd.CredentialLength) != len(acd.CredentialID) {
		return nil, ErrInvalidLength
	}
	if len(acd.CredentialID) > 0xFFFF {
		return nil, ErrInvalidLength
	}

	buf := make([]byte, 0, 16+2+len(acd.CredentialID)+len(acd.CredentialPublicKey))
	buf = append(buf, acd.AAGUID[:]...)

	var length [2]byte
	binary.BigEndian.PutUint16(length[:], acd.CredentialLength)
	buf = append(buf, length[:]...)

	buf = append(buf, acd.CredentialID...)
	buf = append(buf, acd.CredentialPublicKey...)

	return buf, nil
}
