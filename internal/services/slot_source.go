package services

import (
	"fmt"
	"math/rand/v2"
	"time"
	"toll-rate-service/internal/domain"
)

// SlotSource assigns the start day and time of each tolled record.
// Implementations must be deterministic for a given construction so runs
// are reproducible.
type SlotSource interface {
	NextSlot() (domain.Slot, error)
}

var slotDays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// SeededSlotSource draws a uniform weekday and a uniform hour, minute and
// second from a PCG generator. Equal seeds yield equal sequences.
type SeededSlotSource struct {
	rng *rand.Rand
}

func NewSeededSlotSource(seed uint64) *SeededSlotSource {
	return &SeededSlotSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededSlotSource) NextSlot() (domain.Slot, error) {
	day := slotDays[s.rng.IntN(len(slotDays))]
	hour := s.rng.IntN(24)
	minute := s.rng.IntN(60)
	second := s.rng.IntN(60)
	return domain.Slot{Day: day, Time: domain.NewClockTime(hour, minute, second)}, nil
}

// SlotSequence replays externally supplied slots in order.
type SlotSequence struct {
	slots []domain.Slot
	next  int
}

func NewSlotSequence(slots ...domain.Slot) *SlotSequence {
	return &SlotSequence{slots: append([]domain.Slot(nil), slots...)}
}

func (s *SlotSequence) NextSlot() (domain.Slot, error) {
	if s.next >= len(s.slots) {
		return domain.Slot{}, fmt.Errorf("slot sequence: %d slots consumed: %w", len(s.slots), domain.ErrSlotsExhausted)
	}
	slot := s.slots[s.next]
	s.next++
	return slot, nil
}
