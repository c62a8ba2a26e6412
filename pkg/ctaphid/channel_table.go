package ctaphid

import "github.com/samber/lo"

// channelTable is the ordered set of allocated channels, bounded to
// maxChannelTableEntries. Allocation is FIFO: once full, the
// oldest-allocated channel is evicted to make room for the new one.
// Lookup does not deduplicate — a collision (RNG producing an already
// allocated cid) just means two lookups match the same entry, which is
// harmless, so none is attempted.
type channelTable struct {
	entries []ChannelID
}

func newChannelTable() *channelTable {
	return &channelTable{entries: make([]ChannelID, 0, maxChannelTableEntries)}
}

func (t *channelTable) has(cid ChannelID) bool {
	return lo.Contains(t.entries, cid)
}

// allocate appends cid, evicting the oldest entry first if the table is
// already at capacity.
func (t *channelTable) allocate(cid ChannelID) {
	if len(t.entries) >= maxChannelTableEntries {
		t.entries = t.entries[1:]
	}
	t.entries = append(t.entries, cid)
}

// reset releases the whole table, used by Engine.Teardown.
func (t *channelTable) reset() {
	t.entries = t.entries[:0]
}
