package ctaphid

import "log/slog"

// Capabilities are the three advertised CTAPHID capability bits sent
// back in every INIT response's capability_flags byte.
type Capabilities struct {
	Wink bool
	CBOR bool
	NMsg bool
}

func (c Capabilities) flags() byte {
	var f byte
	if c.Wink {
		f |= byte(CapabilityWink)
	}
	if c.CBOR {
		f |= byte(CapabilityCBOR)
	}
	if c.NMsg {
		f |= byte(CapabilityNMsg)
	}
	return f
}

type engineOptions struct {
	logger       *slog.Logger
	clock        Clock
	rng          RNG
	capabilities Capabilities
	frameSize    int
	buildVersion byte
}

// Option configures a new Engine. Options are applied in order, so a
// later option overrides an earlier one targeting the same field.
type Option func(*engineOptions)

// WithLogger sets the *slog.Logger the engine reports transaction
// lifecycle events to. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithClock overrides the engine's time source. Defaults to the system
// clock.
func WithClock(clock Clock) Option {
	return func(o *engineOptions) {
		o.clock = clock
	}
}

// WithRNG overrides the engine's channel-id source. Defaults to
// crypto/rand.
func WithRNG(rng RNG) Option {
	return func(o *engineOptions) {
		o.rng = rng
	}
}

// WithCapabilities sets the capability flags advertised in every INIT
// response. Defaults to wink=false, cbor=true, nmsg=false.
func WithCapabilities(c Capabilities) Option {
	return func(o *engineOptions) {
		o.capabilities = c
	}
}

// WithFrameSize overrides the transport frame size used to fragment
// outbound responses. Defaults to 64, the standard USB HID report
// size.
func WithFrameSize(size int) Option {
	return func(o *engineOptions) {
		o.frameSize = size
	}
}

// WithBuildVersion sets the build byte reported in every INIT
// response. Defaults to 1. The major/minor version bytes are fixed
// constants (see deviceMajorVersion, deviceMinorVersion) identifying
// this package's own CTAPHID implementation, not something callers
// configure.
func WithBuildVersion(build byte) Option {
	return func(o *engineOptions) {
		o.buildVersion = build
	}
}

func newEngineOptions(opts ...Option) *engineOptions {
	o := &engineOptions{
		logger:       slog.Default(),
		clock:        systemClock{},
		rng:          cryptoRNG{},
		frameSize:    defaultFrameSize,
		buildVersion: 1,
		capabilities: Capabilities{
			Wink: false,
			CBOR: true,
			NMsg: false,
		},
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}
