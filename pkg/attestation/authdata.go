package attestation

import "encoding/binary"

// EncodeAuthData emits rp_id_hash || flags || be32(sign_count) ||
// [acd if AT] || [extensions if ED]. Extensions are emitted whenever
// FlagExtensionData is set; a caller that sets the flag without
// populating Extensions gets ErrInvalidState rather than a silently
// truncated AuthData.
func EncodeAuthData(ad AuthData) ([]byte, error) {
	buf := make([]byte, 0, 32+1+4)
	buf = append(buf, ad.RPIDHash[:]...)
	buf = append(buf, byte(ad.Flags))

	var signCount [4]byte
	binary.BigEndian.PutUint32(signCount[:], ad.SignCount)
	buf = append(buf, signCount[:]...)

	if ad.Flags&FlagAttestedCredentialData != 0 {
		if ad.AttestedCredentialData == nil {
			return nil, ErrInvalidState
		}
		acdBytes, err := EncodeACD(*ad.AttestedCredentialData)
		if err != nil {
			return nil, err
		}
		buf = append(buf, acdBytes...)
	}

	if ad.Flags&FlagExtensionData != 0 {
		if len(ad.Extensions) == 0 {
			return nil, ErrInvalidState
		}
		buf = append(buf, ad.Extensions...)
	}

	return buf, nil
}
