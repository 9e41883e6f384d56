package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryLogAppendEvictsFromHead(t *testing.T) {
	h := newHistoryLog(3)

	for _, id := range []string{"a", "b", "c", "d"} {
		h.append(Event{Type: EventTypeItemAdded, Payload: id})
	}

	all := h.all()
	assert.Len(t, all, 3)
	assert.Equal(t, "b", all[0].Payload)
	assert.Equal(t, "d", all[2].Payload)
}

func TestHistoryLogZeroCapacityRetainsNothing(t *testing.T) {
	h := newHistoryLog(0)

	h.append(Event{Type: EventTypeItemAdded})

	assert.Empty(t, h.all())
}

func TestHistoryLogSetCapacityLowering(t *testing.T) {
	h := newHistoryLog(10)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		h.append(Event{Type: EventTypeItemAdded, Payload: id})
	}

	h.setCapacity(2)

	all := h.all()
	assert.Len(t, all, 2)
	assert.Equal(t, "d", all[0].Payload)
	assert.Equal(t, "e", all[1].Payload)
}

func TestHistoryLogSetCapacityRaisingKeepsEntries(t *testing.T) {
	h := newHistoryLog(2)
	h.append(Event{Payload: "a"})
	h.append(Event{Payload: "b"})

	h.setCapacity(5)

	assert.Len(t, h.all(), 2)
}

func TestHistoryLogFilteredPreservesOrder(t *testing.T) {
	h := newHistoryLog(10)
	h.append(Event{Type: EventTypeItemAdded, Payload: "a"})
	h.append(Event{Type: EventTypeSectionAdded, Payload: "s"})
	h.append(Event{Type: EventTypeItemAdded, Payload: "b"})

	filtered := h.filtered(EventTypeItemAdded)
	assert.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].Payload)
	assert.Equal(t, "b", filtered[1].Payload)

	assert.Empty(t, h.filtered(EventTypeNotesUpdated))
}

func TestHistoryLogAllReturnsCopy(t *testing.T) {
	h := newHistoryLog(10)
	h.append(Event{Payload: "a"})

	all := h.all()
	all[0].Payload = "mutated"

	assert.Equal(t, "a", h.all()[0].Payload)
}

func TestHistoryLogClear(t *testing.T) {
	h := newHistoryLog(10)
	h.append(Event{Payload: "a"})

	h.clear()

	assert.Empty(t, h.all())
}
