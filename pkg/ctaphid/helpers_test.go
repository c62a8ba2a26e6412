package ctaphid

import "errors"

var errRNGExhausted = errors.New("ctaphid: test RNG exhausted")

type fixedClock struct{ millis int64 }

func (c fixedClock) NowMillis() int64 { return c.millis }

type seqRNG struct {
	vals []uint32
	next int
}

func (r *seqRNG) Uint32() (uint32, error) {
	if r.next >= len(r.vals) {
		return 0, errRNGExhausted
	}
	v := r.vals[r.next]
	r.next++
	return v, nil
}

type failingRNG struct{}

func (failingRNG) Uint32() (uint32, error) {
	return 0, errRNGExhausted
}

type echoAuthenticator struct {
	response []byte
	err      error
}

func (a echoAuthenticator) Handle(request []byte) ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.response, nil
}

// collectFrames drains an iter.Seq[[]byte] (or a nil iterator, for "no
// reply yet") into a slice, copying each frame so later mutation of the
// engine's internal buffers cannot retroactively change it.
func collectFrames(it func(func([]byte) bool)) [][]byte {
	if it == nil {
		return nil
	}
	var out [][]byte
	it(func(f []byte) bool {
		out = append(out, append([]byte(nil), f...))
		return true
	})
	return out
}

// requestFrames builds the inbound frame sequence for (cid, cmd, payload)
// at frameSize. Inbound and outbound CTAPHID framing share the same
// init/continuation header layout, so the engine's own fragmenter
// doubles as the request-side frame builder here.
func requestFrames(cid ChannelID, cmd Command, payload []byte, frameSize int) [][]byte {
	return collectFrames(fragments(cid, cmd, payload, frameSize))
}

// reconstructPayload reverses fragments: it strips each frame's header
// and concatenates what remains, the shape every frames-in/payload-out
// assertion in this package needs.
func reconstructPayload(frames [][]byte) []byte {
	out := []byte{}
	for i, f := range frames {
		if i == 0 {
			out = append(out, f[initHeaderLen:]...)
		} else {
			out = append(out, f[continuationHeaderLen:]...)
		}
	}
	return out
}
