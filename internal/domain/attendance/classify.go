package attendance

import (
	"time"

	"github.com/sayed-elhawary/app-2/internal/domain/shift"
)

// Classify determines the status of one employee-day.
//
// The precedence is load-bearing: an explicit leave-family status on the fact
// wins outright, any recorded check-in/out makes the day present, and only
// then does the calendar default apply (absent on a scheduled work day,
// weekly_off otherwise). Reordering these rules would silently reclassify
// recorded leave as present.
func Classify(date time.Time, workingDays shift.WorkingDays, shiftType shift.Type, fact *Fact) Status {
	if fact != nil {
		if fact.Status.IsLeave() {
			return fact.Status
		}
		if fact.HasCheckIn() || fact.HasCheckOut() {
			return StatusPresent
		}
	}
	if shift.IsWorkDay(date, shiftType, workingDays) {
		return StatusAbsent
	}
	return StatusWeeklyOff
}
