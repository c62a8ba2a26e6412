package ctaphid

import "errors"

var (
	// ErrChannelAllocationFailed is reported by the engine's channel
	// allocation when the RNG cannot produce a channel id. The engine
	// then tears itself down and ceases to respond to any further frame.
	ErrChannelAllocationFailed = errors.New("ctaphid: channel allocation failed")
)

func (e Error) String() string {
	switch e {
	case ErrInvalidCmd:
		return "invalid command"
	case ErrInvalidPar:
		return "invalid parameter"
	case ErrInvalidLen:
		return "invalid message length"
	case ErrInvalidSeq:
		return "invalid sequence number"
	case ErrMsgTimeout:
		return "message timeout"
	case ErrChannelBusy:
		return "channel busy"
	case ErrLockRequired:
		return "lock required"
	case ErrInvalidChannel:
		return "invalid channel"
	case ErrOther:
		return "other error"
	default:
		return "unknown error"
	}
}
