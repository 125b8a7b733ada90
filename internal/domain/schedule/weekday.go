package schedule

import "time"

// Weekday is a value object; two weekdays are the same day when their
// Position matches, regardless of labels.
type Weekday struct {
	Position int    `json:"position"`
	Short    string `json:"short"`
	Long     string `json:"long"`
}

// Weekdays is the display catalog, Monday first.
var Weekdays = [7]Weekday{
	{Position: 0, Short: "Mon", Long: "Monday"},
	{Position: 1, Short: "Tue", Long: "Tuesday"},
	{Position: 2, Short: "Wed", Long: "Wednesday"},
	{Position: 3, Short: "Thu", Long: "Thursday"},
	{Position: 4, Short: "Fri", Long: "Friday"},
	{Position: 5, Short: "Sat", Long: "Saturday"},
	{Position: 6, Short: "Sun", Long: "Sunday"},
}

// WeekdayAt looks a weekday up in the catalog.
func WeekdayAt(position int) (Weekday, bool) {
	if position < 0 || position >= len(Weekdays) {
		return Weekday{}, false
	}
	return Weekdays[position], true
}

// FromTime maps time.Weekday (Sunday=0) to the catalog (Monday=0).
func FromTime(d time.Weekday) Weekday {
	return Weekdays[(int(d)+6)%7]
}

func (w Weekday) Time() time.Weekday {
	return time.Weekday((w.Position + 1) % 7)
}
