package ctaphid

import "github.com/samber/mo"

// transaction holds the single in-flight CTAPHID reassembly; at most
// one is active process-wide. busy, begin and seq are genuinely
// optional — mo.Option makes "not started yet" and "zero value"
// distinct, which a bare ChannelID(0)/int64(0)/byte(0) would not.
type transaction struct {
	busy      mo.Option[ChannelID]
	begin     mo.Option[int64] // milliseconds, from Clock
	cmd       Command
	bcntTotal uint16
	bcnt      uint16
	seq       mo.Option[byte]
	buffer    []byte
}

func newTransaction() *transaction {
	return &transaction{
		busy:   mo.None[ChannelID](),
		begin:  mo.None[int64](),
		seq:    mo.None[byte](),
		buffer: make([]byte, 0, maxPayload),
	}
}

func (t *transaction) idle() bool {
	return t.busy.IsAbsent()
}

func (t *transaction) reset() {
	t.busy = mo.None[ChannelID]()
	t.begin = mo.None[int64]()
	t.seq = mo.None[byte]()
	t.bcntTotal = 0
	t.bcnt = 0
	t.buffer = t.buffer[:0]
}

func (t *transaction) begin_(cid ChannelID, cmd Command, bcntTotal uint16, nowMillis int64) {
	t.busy = mo.Some(cid)
	t.begin = mo.Some(nowMillis)
	t.cmd = cmd
	t.bcntTotal = bcntTotal
	t.bcnt = 0
	t.seq = mo.None[byte]()
	t.buffer = t.buffer[:0]
}

func (t *transaction) append(data []byte) {
	remaining := int(t.bcntTotal) - int(t.bcnt)
	if remaining < len(data) {
		data = data[:remaining]
	}
	t.buffer = append(t.buffer, data...)
	t.bcnt += uint16(len(data))
}

func (t *transaction) complete() bool {
	return t.bcnt >= t.bcntTotal
}

// expired reports whether the in-flight transaction has been open for
// longer than transactionTimeout, measured from begin.
func (t *transaction) expired(nowMillis int64) bool {
	begin, ok := t.begin.Get()
	if !ok {
		return false
	}
	return nowMillis-begin > transactionTimeout.Milliseconds()
}
