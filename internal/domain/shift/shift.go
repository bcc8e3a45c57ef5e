package shift

import "time"

// Type is the employee's shift arrangement. It drives both the weekly
// work-day set and the overtime/deduction rules.
type Type string

const (
	Administrative Type = "administrative"
	DayStation     Type = "dayStation"
	NightStation   Type = "nightStation"
	RoundTheClock  Type = "24/24"
)

func (t Type) IsValid() bool {
	switch t {
	case Administrative, DayStation, NightStation, RoundTheClock:
		return true
	}
	return false
}

// IsStation reports whether the shift is one of the station variants,
// which share the worked-Friday premium rules.
func (t Type) IsStation() bool {
	return t == DayStation || t == NightStation
}

// WorkingDays is the weekly working-day count. Only "5" and "6" are valid;
// the value matters only for the administrative shift.
type WorkingDays string

const (
	FiveDays WorkingDays = "5"
	SixDays  WorkingDays = "6"
)

func (w WorkingDays) IsValid() bool {
	return w == FiveDays || w == SixDays
}

// WorkDaySet returns the set of weekdays the employee is scheduled to work.
// Station and 24/24 shifts work every day except Friday. The administrative
// shift additionally rests on Saturday when on a five-day week.
func WorkDaySet(t Type, w WorkingDays) map[time.Weekday]bool {
	days := map[time.Weekday]bool{
		time.Sunday:    true,
		time.Monday:    true,
		time.Tuesday:   true,
		time.Wednesday: true,
		time.Thursday:  true,
		time.Saturday:  true,
	}
	if t == Administrative && w == FiveDays {
		delete(days, time.Saturday)
	}
	return days
}

// IsWorkDay reports whether date's weekday falls in the employee's work-day set.
func IsWorkDay(date time.Time, t Type, w WorkingDays) bool {
	return WorkDaySet(t, w)[date.Weekday()]
}
