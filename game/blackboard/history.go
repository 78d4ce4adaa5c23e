package blackboard

// HistoryEntry records one turn's strategy decision for later inspection
type HistoryEntry struct {
	Round      int          `json:"round"`
	Kind       StrategyKind `json:"kind"`
	Priority   float64      `json:"priority"`
	Confidence int          `json:"confidence"`
	Reason     string       `json:"reason"`
	Outcome    Outcome      `json:"outcome,omitempty"`
}

// DefaultHistoryCapacity bounds the decision history when no capacity is
// configured
const DefaultHistoryCapacity = 20

// historyRing is a fixed-capacity circular buffer of history entries. When
// full, appending evicts the oldest entry.
type historyRing struct {
	entries []HistoryEntry
	head    int // index of the oldest entry
	count   int
}

func newHistoryRing(capacity int) *historyRing {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &historyRing{entries: make([]HistoryEntry, capacity)}
}

func (r *historyRing) append(entry HistoryEntry) {
	if r.count < len(r.entries) {
		r.entries[(r.head+r.count)%len(r.entries)] = entry
		r.count++
		return
	}
	// Full: overwrite the oldest and advance the head.
	r.entries[r.head] = entry
	r.head = (r.head + 1) % len(r.entries)
}

// latest returns a pointer to the most recent entry, or nil when empty
func (r *historyRing) latest() *HistoryEntry {
	if r.count == 0 {
		return nil
	}
	return &r.entries[(r.head+r.count-1)%len(r.entries)]
}

// recent returns the last n entries in chronological order
func (r *historyRing) recent(n int) []HistoryEntry {
	if n <= 0 || r.count == 0 {
		return nil
	}
	if n > r.count {
		n = r.count
	}
	out := make([]HistoryEntry, n)
	start := r.count - n
	for i := 0; i < n; i++ {
		out[i] = r.entries[(r.head+start+i)%len(r.entries)]
	}
	return out
}
