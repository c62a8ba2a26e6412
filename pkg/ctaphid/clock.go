package ctaphid

import "time"

// Clock is a monotonic millisecond time source, injected so the
// transaction timeout sweep is deterministic under test.
type Clock interface {
	NowMillis() int64
}

// systemClock is the production Clock, backed by time.Now()'s monotonic
// reading: it reports milliseconds elapsed since clockStart.
type systemClock struct{}

var clockStart = time.Now()

func (systemClock) NowMillis() int64 {
	return time.Since(clockStart).Milliseconds()
}
