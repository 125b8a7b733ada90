package schedule

import (
	"errors"
	"time"
)

const clockLayout = "15:04"

var ErrInvalidClock = errors.New("invalid HH:MM value")

// Issue is an advisory finding about an entry or slot. Issues never block
// persistence; the editor accepts half-filled slots while typing.
type Issue struct {
	EntryID string `json:"entry_id"`
	SlotID  string `json:"slot_id,omitempty"`
	Code    string `json:"code"`
}

func parseClock(hm string) (time.Time, error) {
	t, err := time.Parse(clockLayout, hm)
	if err != nil {
		return time.Time{}, ErrInvalidClock
	}
	return t, nil
}

// Validate lists entries without weekdays, empty or malformed clocks and
// slots that do not close after they open.
func Validate(s Schedule) []Issue {
	var issues []Issue
	for _, e := range s {
		if len(e.Weekdays) == 0 {
			issues = append(issues, Issue{EntryID: e.ID, Code: "no_weekdays"})
		}
		if len(e.TimeSlots) == 0 {
			issues = append(issues, Issue{EntryID: e.ID, Code: "no_time_slots"})
		}

		for _, ts := range e.TimeSlots {
			if ts.Open == "" || ts.Close == "" {
				issues = append(issues, Issue{EntryID: e.ID, SlotID: ts.ID, Code: "incomplete_slot"})
				continue
			}
			open, err1 := parseClock(ts.Open)
			closing, err2 := parseClock(ts.Close)
			if err1 != nil || err2 != nil {
				issues = append(issues, Issue{EntryID: e.ID, SlotID: ts.ID, Code: "invalid_clock"})
				continue
			}
			if !closing.After(open) {
				issues = append(issues, Issue{EntryID: e.ID, SlotID: ts.ID, Code: "close_before_open"})
			}
		}
	}
	return issues
}

// IsOpen reports whether any entry covering the weekday has a complete slot
// with open <= hm < close. Incomplete or malformed slots are skipped.
func IsOpen(s Schedule, position int, hm string) (bool, error) {
	at, err := parseClock(hm)
	if err != nil {
		return false, err
	}

	for _, e := range s {
		if !e.HasWeekday(position) {
			continue
		}
		for _, ts := range e.TimeSlots {
			open, err1 := parseClock(ts.Open)
			closing, err2 := parseClock(ts.Close)
			if err1 != nil || err2 != nil {
				continue
			}
			if !at.Before(open) && at.Before(closing) {
				return true, nil
			}
		}
	}
	return false, nil
}
