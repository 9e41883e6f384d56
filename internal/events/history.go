package events

// historyLog is a bounded, insertion-ordered record of every published
// event. Oldest entries are evicted first, both on overflow and when the
// capacity is lowered. It is not safe for concurrent use on its own; the
// bus serializes access through its own lock.
type historyLog struct {
	entries  []Event
	capacity int
}

func newHistoryLog(capacity int) *historyLog {
	return &historyLog{
		capacity: capacity,
	}
}

// append records an event at the tail, evicting from the head if the log
// exceeds capacity
func (h *historyLog) append(evt Event) {
	if h.capacity == 0 {
		return
	}
	h.entries = append(h.entries, evt)
	if len(h.entries) > h.capacity {
		h.entries = append(h.entries[:0:0], h.entries[len(h.entries)-h.capacity:]...)
	}
}

// all returns a copy of every retained entry, oldest first
func (h *historyLog) all() []Event {
	out := make([]Event, len(h.entries))
	copy(out, h.entries)
	return out
}

// filtered returns retained entries of one type, in original order
func (h *historyLog) filtered(eventType EventType) []Event {
	var out []Event
	for _, e := range h.entries {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// setCapacity changes the bound, evicting from the head if the log
// currently exceeds it. The caller validates n >= 0.
func (h *historyLog) setCapacity(n int) {
	h.capacity = n
	if len(h.entries) > n {
		h.entries = append(h.entries[:0:0], h.entries[len(h.entries)-n:]...)
	}
}

func (h *historyLog) clear() {
	h.entries = nil
}
