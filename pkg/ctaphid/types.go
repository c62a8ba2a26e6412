package ctaphid

// ChannelID is a CTAPHID logical channel identifier. The wire
// representation is 4 bytes, big-endian; BroadcastCID (all-ones) is
// reserved for INIT before a channel has been allocated.
type ChannelID uint32

// InitResponse is the CTAPHID_INIT reply body, fixed at 17 bytes on the
// wire: nonce[8] | new_cid[4] | version[1] | major[1] | minor[1] |
// build[1] | capability_flags[1].
type InitResponse struct {
	Nonce           [8]byte
	NewCID          ChannelID
	ProtocolVersion byte
	MajorVersion    byte
	MinorVersion    byte
	BuildVersion    byte
	CapabilityFlags byte
}

func (r InitResponse) encode() []byte {
	buf := make([]byte, 17)
	copy(buf[0:8], r.Nonce[:])
	putUint32BE(buf[8:12], uint32(r.NewCID))
	buf[12] = r.ProtocolVersion
	buf[13] = r.MajorVersion
	buf[14] = r.MinorVersion
	buf[15] = r.BuildVersion
	buf[16] = r.CapabilityFlags
	return buf
}

func putUint32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func uint32BE(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
