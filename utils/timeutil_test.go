package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TheCosmicVibe/Tallie-App/utils"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestTimeToMinutes(t *testing.T) {
	m, err := utils.TimeToMinutes("00:00")
	assert.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = utils.TimeToMinutes("09:30")
	assert.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = utils.TimeToMinutes("23:59")
	assert.NoError(t, err)
	assert.Equal(t, 1439, m)

	// Seconds are floored into whole minutes.
	m, err = utils.TimeToMinutes("18:00:45")
	assert.NoError(t, err)
	assert.Equal(t, 1080, m)
}

func TestTimeToMinutesRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "18", "24:00", "12:60", "ab:cd", "12:15:60", "-1:30"} {
		_, err := utils.TimeToMinutes(input)
		assert.Error(t, err, "expected %q to be rejected", input)
	}
}

func TestFormatMinutesWraps(t *testing.T) {
	assert.Equal(t, "00:00", utils.FormatMinutes(0))
	assert.Equal(t, "09:30", utils.FormatMinutes(570))
	assert.Equal(t, "00:30", utils.FormatMinutes(1470))
	assert.Equal(t, "23:30", utils.FormatMinutes(-30))
}

func TestWithinOperatingHoursInclusiveBounds(t *testing.T) {
	at := func(hour, minute int) time.Time {
		return time.Date(2025, 6, 20, hour, minute, 0, 0, time.Local)
	}

	assert.True(t, utils.WithinOperatingHours(at(10, 0), "10:00", "22:00"))
	assert.True(t, utils.WithinOperatingHours(at(22, 0), "10:00", "22:00"))
	assert.True(t, utils.WithinOperatingHours(at(15, 45), "10:00", "22:00"))
	assert.False(t, utils.WithinOperatingHours(at(9, 59), "10:00", "22:00"))
	assert.False(t, utils.WithinOperatingHours(at(22, 1), "10:00", "22:00"))
}

func TestWithinOperatingHoursOvernight(t *testing.T) {
	at := func(hour, minute int) time.Time {
		return time.Date(2025, 6, 20, hour, minute, 0, 0, time.Local)
	}

	assert.True(t, utils.WithinOperatingHours(at(23, 0), "18:00", "02:00"))
	assert.True(t, utils.WithinOperatingHours(at(1, 30), "18:00", "02:00"))
	assert.True(t, utils.WithinOperatingHours(at(2, 0), "18:00", "02:00"))
	assert.False(t, utils.WithinOperatingHours(at(2, 1), "18:00", "02:00"))
	assert.False(t, utils.WithinOperatingHours(at(12, 0), "18:00", "02:00"))
}

func TestOverlapsHalfOpen(t *testing.T) {
	// Back-to-back windows share a boundary; that is not an overlap.
	assert.False(t, utils.Overlaps(600, 720, 720, 840))
	assert.False(t, utils.Overlaps(720, 840, 600, 720))

	assert.True(t, utils.Overlaps(600, 720, 660, 780))
	assert.True(t, utils.Overlaps(600, 720, 610, 700))
	assert.True(t, utils.Overlaps(610, 700, 600, 720))
	assert.False(t, utils.Overlaps(600, 660, 720, 780))
}

func TestTimesOverlap(t *testing.T) {
	assert.True(t, utils.TimesOverlap("18:00", "20:00", "19:00", "21:00"))
	assert.False(t, utils.TimesOverlap("18:00", "20:00", "20:00", "22:00"))
	assert.False(t, utils.TimesOverlap("bad", "20:00", "19:00", "21:00"))
}

func TestGenerateTimeSlots(t *testing.T) {
	slots := utils.GenerateTimeSlots("10:00", "22:00", 30)
	assert.Len(t, slots, 24)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "21:30", slots[len(slots)-1])

	// A slot must end at or before closing; a ragged window loses the last
	// partial step.
	slots = utils.GenerateTimeSlots("10:00", "21:50", 30)
	assert.Len(t, slots, 23)
	assert.Equal(t, "21:00", slots[len(slots)-1])
}

func TestGenerateTimeSlotsOvernight(t *testing.T) {
	slots := utils.GenerateTimeSlots("22:00", "02:00", 30)
	assert.Len(t, slots, 8)
	assert.Equal(t, "22:00", slots[0])
	assert.Equal(t, "00:00", slots[4])
	assert.Equal(t, "01:30", slots[7])
}

func TestGenerateTimeSlotsCountProperty(t *testing.T) {
	cases := []struct {
		open, close string
		step        int
	}{
		{"10:00", "22:00", 30},
		{"10:00", "22:00", 45},
		{"09:15", "17:05", 30},
		{"22:00", "02:00", 30},
		{"18:00", "18:00", 60},
	}
	for _, tc := range cases {
		openMin, err := utils.TimeToMinutes(tc.open)
		assert.NoError(t, err)
		closeMin, err := utils.TimeToMinutes(tc.close)
		assert.NoError(t, err)
		span := utils.NormalizeClose(openMin, closeMin) - openMin

		slots := utils.GenerateTimeSlots(tc.open, tc.close, tc.step)
		assert.Len(t, slots, span/tc.step, "open=%s close=%s step=%d", tc.open, tc.close, tc.step)
	}
}

func TestAddMinutesToTime(t *testing.T) {
	assert.Equal(t, "20:00", utils.AddMinutesToTime("18:00", 120))
	assert.Equal(t, "00:30", utils.AddMinutesToTime("23:00", 90))
	assert.Equal(t, "", utils.AddMinutesToTime("nonsense", 30))
}

func TestAddMinutesToTimeRoundTrip(t *testing.T) {
	cases := []struct {
		start   string
		minutes int
	}{
		{"18:00", 120},
		{"00:00", 90},
		{"23:00", 90},
		{"01:30", -120},
		{"12:15", 1440},
	}
	for _, tc := range cases {
		shifted := utils.AddMinutesToTime(tc.start, tc.minutes)
		assert.Equal(t, tc.start, utils.AddMinutesToTime(shifted, -tc.minutes),
			"start=%s minutes=%d", tc.start, tc.minutes)
	}
}

func TestAbsMinutesBetween(t *testing.T) {
	d, err := utils.AbsMinutesBetween("18:00", "19:30")
	assert.NoError(t, err)
	assert.Equal(t, 90, d)

	d, err = utils.AbsMinutesBetween("19:30", "18:00")
	assert.NoError(t, err)
	assert.Equal(t, 90, d)

	_, err = utils.AbsMinutesBetween("19:30", "bad")
	assert.Error(t, err)
}

func TestIsFutureDateTime(t *testing.T) {
	clock := fixedClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)}

	assert.True(t, utils.IsFutureDateTime(clock, "2025-06-15", "12:01"))
	assert.False(t, utils.IsFutureDateTime(clock, "2025-06-15", "12:00"))
	assert.False(t, utils.IsFutureDateTime(clock, "2025-06-14", "23:00"))
	assert.False(t, utils.IsFutureDateTime(clock, "2025-06-16", "25:00"))
}

func TestWithinAdvanceBookingPeriodBoundaryIsBookable(t *testing.T) {
	clock := fixedClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)}

	assert.True(t, utils.WithinAdvanceBookingPeriod(clock, "2025-06-16", 30))
	assert.True(t, utils.WithinAdvanceBookingPeriod(clock, "2025-07-15", 30))
	assert.False(t, utils.WithinAdvanceBookingPeriod(clock, "2025-07-16", 30))
	assert.False(t, utils.WithinAdvanceBookingPeriod(clock, "not-a-date", 30))
}

func TestIsPeakHour(t *testing.T) {
	assert.True(t, utils.IsPeakHour("18:00", "18:00", "21:00"))
	assert.True(t, utils.IsPeakHour("19:45", "18:00", "21:00"))
	assert.True(t, utils.IsPeakHour("21:00", "18:00", "21:00"))
	assert.False(t, utils.IsPeakHour("17:59", "18:00", "21:00"))
	assert.False(t, utils.IsPeakHour("21:01", "18:00", "21:00"))

	// Late-night peak spanning midnight.
	assert.True(t, utils.IsPeakHour("23:30", "22:00", "01:00"))
	assert.True(t, utils.IsPeakHour("00:30", "22:00", "01:00"))
	assert.False(t, utils.IsPeakHour("02:00", "22:00", "01:00"))
}
