package schedule

// ======================================================
// MODEL
// ======================================================

const (
	ScopeEntry    = "entry"
	ScopeTimeSlot = "timeslot"
)

// IDGenerator hands out list keys for new entries and slots.
type IDGenerator interface {
	NewID(scope string) string
}

// TimeSlotPair holds HH:MM strings. Empty values are valid while editing
// and nothing enforces Open < Close.
type TimeSlotPair struct {
	ID    string `json:"id"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Entry struct {
	ID        string         `json:"id"`
	Weekdays  []Weekday      `json:"weekdays"`
	TimeSlots []TimeSlotPair `json:"timeSlots"`
}

// Schedule is the whole persisted field value. Order is display order.
type Schedule []Entry

func NewTimeSlot(ids IDGenerator) TimeSlotPair {
	return TimeSlotPair{ID: ids.NewID(ScopeTimeSlot)}
}

// NewEntry returns an entry with no weekdays and one empty slot.
func NewEntry(ids IDGenerator) Entry {
	return Entry{
		ID:        ids.NewID(ScopeEntry),
		Weekdays:  []Weekday{},
		TimeSlots: []TimeSlotPair{NewTimeSlot(ids)},
	}
}

// Default is the schedule used when the field holds nothing usable.
func Default(ids IDGenerator) Schedule {
	return Schedule{NewEntry(ids)}
}

// HasWeekday reports whether the entry already holds a weekday at position.
func (e Entry) HasWeekday(position int) bool {
	for _, w := range e.Weekdays {
		if w.Position == position {
			return true
		}
	}
	return false
}

func (e Entry) slotIndex(slotID string) int {
	for i, ts := range e.TimeSlots {
		if ts.ID == slotID {
			return i
		}
	}
	return -1
}

func (e Entry) clone() Entry {
	out := Entry{
		ID:        e.ID,
		Weekdays:  make([]Weekday, len(e.Weekdays)),
		TimeSlots: make([]TimeSlotPair, len(e.TimeSlots)),
	}
	copy(out.Weekdays, e.Weekdays)
	copy(out.TimeSlots, e.TimeSlots)
	return out
}

// Clone returns a deep copy. Nil slices come back empty so the copy always
// serializes as arrays.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for i, e := range s {
		out[i] = e.clone()
	}
	return out
}

func (s Schedule) index(entryID string) int {
	for i, e := range s {
		if e.ID == entryID {
			return i
		}
	}
	return -1
}

// Entry returns a copy of the entry with the given id.
func (s Schedule) Entry(entryID string) (Entry, bool) {
	i := s.index(entryID)
	if i < 0 {
		return Entry{}, false
	}
	return s[i].clone(), true
}
