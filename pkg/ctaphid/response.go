package ctaphid

import (
	"iter"

	"github.com/samber/lo"
)

// defaultFrameSize is the typical USB HID report size; it is what every
// CTAPHID transport in the wild uses, but the engine accepts any size
// the transport adapter was constructed with.
const defaultFrameSize = 64

// fragments lazily splits (cid, cmd, payload) into outbound frames
// sized to frameSize. The first frame carries the full init header
// (cid|cmd|bcnt) and as much payload as fits; subsequent frames carry
// a continuation header (cid|seq) and the rest, chunked with
// lo.Chunk.
func fragments(cid ChannelID, cmd Command, payload []byte, frameSize int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		firstLen := frameSize - initHeaderLen
		if firstLen < 0 {
			firstLen = 0
		}
		if firstLen > len(payload) {
			firstLen = len(payload)
		}

		first := make([]byte, initHeaderLen+firstLen)
		putUint32BE(first[0:4], uint32(cid))
		first[4] = byte(cmd) | initPacketBit
		first[5] = byte(len(payload) >> 8)
		first[6] = byte(len(payload))
		copy(first[initHeaderLen:], payload[:firstLen])

		if !yield(first) {
			return
		}

		rest := payload[firstLen:]
		if len(rest) == 0 {
			return
		}

		contLen := frameSize - continuationHeaderLen
		if contLen <= 0 {
			return
		}

		chunks := lo.Chunk(rest, contLen)
		for i, chunk := range chunks {
			frame := make([]byte, continuationHeaderLen+len(chunk))
			putUint32BE(frame[0:4], uint32(cid))
			frame[4] = byte(i)
			copy(frame[continuationHeaderLen:], chunk)

			if !yield(frame) {
				return
			}
		}
	}
}
