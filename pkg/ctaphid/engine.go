package ctaphid

import (
	"errors"
	"iter"
	"log/slog"

	"github.com/samber/mo"
)

// deviceMajorVersion and deviceMinorVersion identify this CTAPHID
// implementation on the wire. They are fixed, unlike BuildVersion,
// which callers can override with WithBuildVersion.
const (
	deviceMajorVersion byte = 0xCA
	deviceMinorVersion byte = 0xFE
)

// Engine is a single-transaction-at-a-time CTAPHID reassembly and
// dispatch state machine. Callers must serialize calls to Handle — the
// engine holds mutable transaction state and performs no internal
// synchronization.
type Engine struct {
	logger       *slog.Logger
	clock        Clock
	rng          RNG
	capabilities Capabilities
	frameSize    int
	buildVersion byte

	channels      *channelTable
	tx            *transaction
	authenticator Authenticator

	torn bool
}

// NewEngine constructs an Engine delegating CBOR command bodies to
// authenticator; MSG is answered by the engine itself. See Option for the available configuration knobs;
// unset ones default to production values (system clock, crypto/rand
// RNG, 64-byte frames, cbor-only capabilities).
func NewEngine(authenticator Authenticator, opts ...Option) *Engine {
	o := newEngineOptions(opts...)

	return &Engine{
		logger:        o.logger,
		clock:         o.clock,
		rng:           o.rng,
		capabilities:  o.capabilities,
		frameSize:     o.frameSize,
		buildVersion:  o.buildVersion,
		channels:      newChannelTable(),
		tx:            newTransaction(),
		authenticator: authenticator,
	}
}

// Teardown releases the channel table and any in-flight transaction.
// Once torn down, Handle always returns nil: the engine ceases to
// respond to any further frame.
func (e *Engine) Teardown() {
	e.channels.reset()
	e.tx.reset()
	e.torn = true
}

// Handle processes one raw frame and returns a lazy iterator over
// outbound frames when a reply is ready, or nil while more input is
// expected.
func (e *Engine) Handle(frame []byte) iter.Seq[[]byte] {
	if e.torn {
		return nil
	}

	now := e.clock.NowMillis()

	if !e.tx.idle() && e.tx.expired(now) {
		e.logger.Debug("ctaphid: transaction timed out, discarding")
		e.tx.reset()
	}

	f := parseFrame(frame)

	if e.tx.idle() {
		return e.handleIdle(f, now)
	}
	return e.handleCollecting(f, now)
}

func (e *Engine) handleIdle(f inboundFrame, now int64) iter.Seq[[]byte] {
	if f.length < initHeaderLen {
		return e.errorFrame(f.addressCID(), ErrOther)
	}
	if !f.isInit {
		return e.errorFrame(f.cid, ErrInvalidCmd)
	}
	if f.cid != BroadcastCID && !e.channels.has(f.cid) {
		return e.errorFrame(f.cid, ErrInvalidChannel)
	}

	e.tx.begin_(f.cid, f.command, f.bcntTotal, now)
	e.tx.append(f.payload)
	e.logger.Debug("ctaphid: transaction accepted", "cid", f.cid, "cmd", f.command, "bcnt_total", f.bcntTotal)

	if e.tx.complete() {
		return e.dispatch()
	}
	return nil
}

func (e *Engine) handleCollecting(f inboundFrame, now int64) iter.Seq[[]byte] {
	if f.length < continuationHeaderLen {
		resp := e.errorFrame(f.addressCID(), ErrOther)
		e.tx.reset()
		return resp
	}

	busyCID := e.tx.busy.MustGet()
	if f.cid != busyCID {
		return e.errorFrame(f.cid, ErrChannelBusy)
	}

	if f.isInit {
		resp := e.errorFrame(f.cid, ErrInvalidCmd)
		e.tx.reset()
		return resp
	}

	want := byte(0)
	if prev, ok := e.tx.seq.Get(); ok {
		want = prev + 1
	}
	if f.sequence != want {
		resp := e.errorFrame(f.cid, ErrInvalidSeq)
		e.tx.reset()
		return resp
	}

	e.tx.seq = mo.Some(f.sequence)
	e.tx.append(f.payload)

	if e.tx.complete() {
		return e.dispatch()
	}
	return nil
}

// dispatch runs at completion of a transaction and always resets the
// engine to Idle before returning, regardless of outcome.
func (e *Engine) dispatch() iter.Seq[[]byte] {
	cid := e.tx.busy.MustGet()
	cmd := e.tx.cmd
	payload := append([]byte(nil), e.tx.buffer...)
	e.tx.reset()

	if cmd == CommandInit {
		if cid != BroadcastCID && !e.channels.has(cid) {
			return e.errorFrame(cid, ErrInvalidChannel)
		}
	} else if !e.channels.has(cid) {
		return e.errorFrame(cid, ErrInvalidChannel)
	}

	switch cmd {
	case CommandInit:
		return e.dispatchInit(cid, payload)
	case CommandPing:
		e.logger.Debug("ctaphid: ping", "cid", cid, "len", len(payload))
		return fragments(cid, CommandPing, payload, e.frameSize)
	case CommandMsg:
		return e.dispatchMsg(cid, payload)
	case CommandCBOR:
		return e.dispatchCBOR(cid, payload)
	case CommandCancel:
		e.logger.Debug("ctaphid: cancel", "cid", cid)
		return nil
	case CommandWink, CommandLock:
		// Recognized CTAPHID commands this device advertises as
		// unsupported in its capability flags: classify them distinctly
		// from a genuinely unknown command byte, even though the wire
		// reply is the same ERR_INVALID_CMD a real conformant host
		// won't trigger in the first place.
		e.logger.Debug("ctaphid: command recognized but not supported", "cid", cid, "cmd", cmd)
		return e.errorFrame(cid, ErrInvalidCmd)
	default:
		return e.errorFrame(cid, ErrInvalidCmd)
	}
}

func (e *Engine) dispatchInit(cid ChannelID, payload []byte) iter.Seq[[]byte] {
	if cid != BroadcastCID {
		// Rebinding on an already-allocated channel: reply with just the cid.
		body := make([]byte, 4)
		putUint32BE(body, uint32(cid))
		return fragments(cid, CommandInit, body, e.frameSize)
	}

	newCID, err := e.allocateChannel()
	if err != nil {
		e.logger.Debug("ctaphid: channel allocation failed, tearing down", "err", err)
		e.Teardown()
		return nil
	}

	resp := InitResponse{
		NewCID:          newCID,
		ProtocolVersion: 2,
		MajorVersion:    deviceMajorVersion,
		MinorVersion:    deviceMinorVersion,
		BuildVersion:    e.buildVersion,
		CapabilityFlags: e.capabilities.flags(),
	}
	n := copy(resp.Nonce[:], payload)
	_ = n

	e.logger.Debug("ctaphid: init on broadcast, allocated channel", "new_cid", newCID)
	return fragments(cid, CommandInit, resp.encode(), e.frameSize)
}

func (e *Engine) dispatchMsg(cid ChannelID, payload []byte) iter.Seq[[]byte] {
	// Minimal U2F pass-through: only GET_VERSION (INS=3) is recognized.
	var ins byte
	if len(payload) >= 2 {
		ins = payload[1]
	}

	if ins == 3 {
		return fragments(cid, CommandMsg, []byte("CTAP2/U2F_V2\x90\x00"), e.frameSize)
	}
	return fragments(cid, CommandMsg, []byte{0x69, 0x86}, e.frameSize)
}

func (e *Engine) dispatchCBOR(cid ChannelID, payload []byte) iter.Seq[[]byte] {
	resp, err := e.authenticator.Handle(payload)
	if err != nil {
		var statusErr StatusError
		if !errors.As(err, &statusErr) {
			statusErr = StatusError(ErrOther)
		}
		e.logger.Debug("ctaphid: authenticator core failed", "status", byte(statusErr))
		return fragments(cid, CommandCBOR, []byte{byte(statusErr)}, e.frameSize)
	}

	return fragments(cid, CommandCBOR, resp, e.frameSize)
}

func (e *Engine) errorFrame(cid ChannelID, code Error) iter.Seq[[]byte] {
	e.logger.Debug("ctaphid: error", "cid", cid, "code", code)
	return fragments(cid, CommandError, []byte{byte(code)}, e.frameSize)
}

func (e *Engine) allocateChannel() (ChannelID, error) {
	v, err := e.rng.Uint32()
	if err != nil {
		return 0, ErrChannelAllocationFailed
	}
	cid := ChannelID(v)
	e.channels.allocate(cid)
	return cid, nil
}
