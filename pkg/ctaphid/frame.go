package ctaphid

// inboundFrame is the decoded shape of one raw HID frame. Because the
// minimum-length requirement differs between Idle (needs a full
// init header, 7 bytes) and Collecting (needs a continuation header,
// 5 bytes), parseFrame does not itself decide "too short" — it decodes
// as much as the raw bytes allow and reports how many bytes were
// available, leaving the length check to the caller's current state.
type inboundFrame struct {
	length  int
	cid     ChannelID
	readCID bool
	isInit  bool
	hasCmd  bool

	command   Command
	bcntTotal uint16
	sequence  byte
	payload   []byte
}

func parseFrame(raw []byte) inboundFrame {
	f := inboundFrame{length: len(raw)}

	if len(raw) >= 4 {
		f.cid = ChannelID(uint32BE(raw[0:4]))
		f.readCID = true
	}

	if len(raw) >= 5 {
		f.hasCmd = true
		cmdOrSeq := raw[4]
		if cmdOrSeq&initPacketBit != 0 {
			f.isInit = true
			f.command = Command(cmdOrSeq &^ initPacketBit)
		} else {
			f.sequence = cmdOrSeq
		}
	}

	if f.isInit && len(raw) >= initHeaderLen {
		f.bcntTotal = uint16(raw[5])<<8 | uint16(raw[6])
		f.payload = raw[initHeaderLen:]
	} else if !f.isInit && f.hasCmd && len(raw) >= continuationHeaderLen {
		f.payload = raw[continuationHeaderLen:]
	}

	return f
}

// addressCID returns the channel to address an error reply to: the
// frame's own cid when it was long enough to read one, otherwise the
// broadcast channel.
func (f inboundFrame) addressCID() ChannelID {
	if f.readCID {
		return f.cid
	}
	return BroadcastCID
}
