package schedule

// ======================================================
// OPERATIONS
// ======================================================
//
// Every operation leaves its input untouched and returns a fresh Schedule
// plus whether anything changed. Unknown ids are no-ops.

// Field names an entry attribute that UpdateEntryField can replace.
type Field string

const (
	FieldWeekdays  Field = "weekdays"
	FieldTimeSlots Field = "timeSlots"
)

func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldWeekdays, FieldTimeSlots:
		return Field(s), true
	}
	return "", false
}

func AddEntry(s Schedule, ids IDGenerator) Schedule {
	out := s.Clone()
	return append(out, NewEntry(ids))
}

func RemoveEntry(s Schedule, entryID string) (Schedule, bool) {
	i := s.index(entryID)
	if i < 0 {
		return s.Clone(), false
	}

	out := make(Schedule, 0, len(s)-1)
	for j, e := range s {
		if j != i {
			out = append(out, e.clone())
		}
	}
	return out, true
}

// UpdateEntryField replaces one field of an entry. value must be
// []Weekday for FieldWeekdays or []TimeSlotPair for FieldTimeSlots;
// anything else is ignored. Weekdays are deduplicated by position and
// labelled from the catalog; an unknown position rejects the update.
// Time slots must be non-empty with unique, non-empty ids.
func UpdateEntryField(s Schedule, entryID string, field Field, value any) (Schedule, bool) {
	i := s.index(entryID)
	if i < 0 {
		return s.Clone(), false
	}

	out := s.Clone()
	switch field {
	case FieldWeekdays:
		days, ok := value.([]Weekday)
		if !ok {
			return out, false
		}
		canon, ok := canonicalWeekdays(days)
		if !ok {
			return out, false
		}
		out[i].Weekdays = canon
	case FieldTimeSlots:
		slots, ok := value.([]TimeSlotPair)
		if !ok || !ValidSlotSet(slots) {
			return out, false
		}
		out[i].TimeSlots = append([]TimeSlotPair{}, slots...)
	default:
		return out, false
	}
	return out, true
}

// ToggleWeekday removes the weekday when the entry has one at the same
// position and appends it otherwise.
func ToggleWeekday(s Schedule, entryID string, w Weekday) (Schedule, bool) {
	i := s.index(entryID)
	if i < 0 {
		return s.Clone(), false
	}

	out := s.Clone()
	e := &out[i]
	if e.HasWeekday(w.Position) {
		kept := make([]Weekday, 0, len(e.Weekdays))
		for _, d := range e.Weekdays {
			if d.Position != w.Position {
				kept = append(kept, d)
			}
		}
		e.Weekdays = kept
	} else {
		e.Weekdays = append(e.Weekdays, w)
	}
	return out, true
}

func AddTimeSlot(s Schedule, entryID string, ids IDGenerator) (Schedule, bool) {
	i := s.index(entryID)
	if i < 0 {
		return s.Clone(), false
	}

	out := s.Clone()
	out[i].TimeSlots = append(out[i].TimeSlots, NewTimeSlot(ids))
	return out, true
}

// UpdateTimeSlot sets Open and/or Close of one slot; nil leaves a value as
// it is. Reports false when the slot is unknown or nothing differs.
func UpdateTimeSlot(s Schedule, entryID, slotID string, openAt, closeAt *string) (Schedule, bool) {
	i := s.index(entryID)
	if i < 0 {
		return s.Clone(), false
	}
	j := s[i].slotIndex(slotID)
	if j < 0 {
		return s.Clone(), false
	}

	out := s.Clone()
	slot := out[i].TimeSlots[j]
	if openAt != nil {
		slot.Open = *openAt
	}
	if closeAt != nil {
		slot.Close = *closeAt
	}
	if slot == s[i].TimeSlots[j] {
		return out, false
	}
	out[i].TimeSlots[j] = slot
	return out, true
}

// RemoveTimeSlot drops one slot. An entry always keeps at least one slot,
// so removing the last one is a no-op.
func RemoveTimeSlot(s Schedule, entryID, slotID string) (Schedule, bool) {
	i := s.index(entryID)
	if i < 0 {
		return s.Clone(), false
	}
	j := s[i].slotIndex(slotID)
	if j < 0 || len(s[i].TimeSlots) <= 1 {
		return s.Clone(), false
	}

	out := s.Clone()
	slots := make([]TimeSlotPair, 0, len(s[i].TimeSlots)-1)
	for k, ts := range s[i].TimeSlots {
		if k != j {
			slots = append(slots, ts)
		}
	}
	out[i].TimeSlots = slots
	return out, true
}

// canonicalWeekdays deduplicates by position and replaces labels with the
// catalog's. It fails on a position outside the catalog.
func canonicalWeekdays(days []Weekday) ([]Weekday, bool) {
	out := make([]Weekday, 0, len(days))
	seen := make(map[int]struct{}, len(days))
	for _, d := range days {
		w, ok := WeekdayAt(d.Position)
		if !ok {
			return nil, false
		}
		if _, dup := seen[w.Position]; dup {
			continue
		}
		seen[w.Position] = struct{}{}
		out = append(out, w)
	}
	return out, true
}

// ValidSlotSet reports whether slots can replace an entry's time slots:
// at least one slot, every id set and unique.
func ValidSlotSet(slots []TimeSlotPair) bool {
	if len(slots) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(slots))
	for _, ts := range slots {
		if ts.ID == "" {
			return false
		}
		if _, dup := seen[ts.ID]; dup {
			return false
		}
		seen[ts.ID] = struct{}{}
	}
	return true
}
