package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkDaySet(t *testing.T) {
	// Station and 24/24 shifts work every day except Friday.
	for _, typ := range []Type{DayStation, NightStation, RoundTheClock} {
		days := WorkDaySet(typ, SixDays)
		assert.Len(t, days, 6)
		assert.False(t, days[time.Friday])
		assert.True(t, days[time.Saturday])
	}

	// Administrative on a five-day week additionally rests Saturday.
	days := WorkDaySet(Administrative, FiveDays)
	assert.Len(t, days, 5)
	assert.False(t, days[time.Friday])
	assert.False(t, days[time.Saturday])

	days = WorkDaySet(Administrative, SixDays)
	assert.Len(t, days, 6)
	assert.True(t, days[time.Saturday])
}

func TestTypeValidation(t *testing.T) {
	for _, typ := range []Type{Administrative, DayStation, NightStation, RoundTheClock} {
		assert.True(t, typ.IsValid())
	}
	assert.False(t, Type("overnight").IsValid())

	assert.True(t, DayStation.IsStation())
	assert.True(t, NightStation.IsStation())
	assert.False(t, RoundTheClock.IsStation())
	assert.False(t, Administrative.IsStation())
}
