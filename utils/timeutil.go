package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// TimeToMinutes converts a time-of-day string ("HH:mm" or "HH:mm:ss") into
// minutes since midnight. Seconds are floored into whole minutes.
func TimeToMinutes(timeString string) (int, error) {
	parts := strings.Split(timeString, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm or HH:mm:ss", timeString)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q: bad hour component", timeString)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: bad minute component", timeString)
	}

	seconds := 0
	if len(parts) == 3 {
		seconds, err = strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("invalid time %q: bad second component", timeString)
		}
	}

	return hours*60 + minutes + seconds/60, nil
}

// FormatMinutes renders minutes-since-midnight as "HH:mm", reducing values
// beyond one day back into time-of-day range.
func FormatMinutes(m int) string {
	m %= minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// NormalizeClose rolls an overnight closing time into the next day so that a
// window always satisfies open < close. Slot generation and containment both
// go through here; there is no other place that reasons about wraparound.
func NormalizeClose(open, close int) int {
	if close <= open {
		return close + minutesPerDay
	}
	return close
}

// WithinOperatingHours reports whether the time-of-day of t falls inside the
// operating window. Both boundaries are inclusive. When the closing time is
// numerically at or before the opening time the window spans midnight.
func WithinOperatingHours(t time.Time, openingTime, closingTime string) bool {
	openMin, err := TimeToMinutes(openingTime)
	if err != nil {
		return false
	}
	closeMin, err := TimeToMinutes(closingTime)
	if err != nil {
		return false
	}

	checkMin := t.Hour()*60 + t.Minute()
	normClose := NormalizeClose(openMin, closeMin)
	if checkMin < openMin {
		checkMin += minutesPerDay
	}
	return checkMin >= openMin && checkMin <= normClose
}

// Overlaps is the half-open interval test: [s1,e1) and [s2,e2) overlap iff
// s1 < e2 && e1 > s2. Arguments are minutes since midnight.
func Overlaps(start1, end1, start2, end2 int) bool {
	return start1 < end2 && end1 > start2
}

// TimesOverlap is Overlaps over "HH:mm" strings. Unparseable input counts as
// no overlap.
func TimesOverlap(start1, end1, start2, end2 string) bool {
	s1, err := TimeToMinutes(start1)
	if err != nil {
		return false
	}
	e1, err := TimeToMinutes(end1)
	if err != nil {
		return false
	}
	s2, err := TimeToMinutes(start2)
	if err != nil {
		return false
	}
	e2, err := TimeToMinutes(end2)
	if err != nil {
		return false
	}
	return Overlaps(s1, e1, s2, e2)
}

// GenerateTimeSlots produces candidate start times from openingTime onward,
// stepping by slotDuration minutes, keeping every start m with
// m+slotDuration <= close (close normalized across midnight). Values are
// reduced back into time-of-day for display.
func GenerateTimeSlots(openingTime, closingTime string, slotDuration int) []string {
	if slotDuration <= 0 {
		return nil
	}
	openMin, err := TimeToMinutes(openingTime)
	if err != nil {
		return nil
	}
	closeMin, err := TimeToMinutes(closingTime)
	if err != nil {
		return nil
	}

	closeMin = NormalizeClose(openMin, closeMin)

	var slots []string
	for m := openMin; m+slotDuration <= closeMin; m += slotDuration {
		slots = append(slots, FormatMinutes(m))
	}
	return slots
}

// AddMinutesToTime shifts a time-of-day string by the given number of
// minutes, wrapping across midnight. Returns "" on unparseable input.
func AddMinutesToTime(timeString string, minutes int) string {
	m, err := TimeToMinutes(timeString)
	if err != nil {
		return ""
	}
	return FormatMinutes(m + minutes)
}

// AbsMinutesBetween returns the absolute distance in minutes between two
// time-of-day strings.
func AbsMinutesBetween(t1, t2 string) (int, error) {
	m1, err := TimeToMinutes(t1)
	if err != nil {
		return 0, err
	}
	m2, err := TimeToMinutes(t2)
	if err != nil {
		return 0, err
	}
	diff := m1 - m2
	if diff < 0 {
		diff = -diff
	}
	return diff, nil
}

func IsValidDate(dateString string) bool {
	_, err := time.Parse("2006-01-02", dateString)
	return err == nil
}

func IsValidTime(timeString string) bool {
	_, err := TimeToMinutes(timeString)
	return err == nil
}

// ParseDateTime combines a "YYYY-MM-DD" date and a time-of-day string into a
// local time.Time.
func ParseDateTime(dateString, timeString string) (time.Time, error) {
	layout := "2006-01-02 15:04"
	if strings.Count(timeString, ":") == 2 {
		layout = "2006-01-02 15:04:05"
	}
	return time.ParseInLocation(layout, dateString+" "+timeString, time.Local)
}

// IsFutureDateTime reports whether the given date+time lies strictly after
// the clock's now.
func IsFutureDateTime(clock Clock, dateString, timeString string) bool {
	t, err := ParseDateTime(dateString, timeString)
	if err != nil {
		return false
	}
	return t.After(clock.Now())
}

// WithinAdvanceBookingPeriod reports whether dateString is on or before
// today + maxDays. The boundary day itself is bookable.
func WithinAdvanceBookingPeriod(clock Clock, dateString string, maxDays int) bool {
	date, err := time.ParseInLocation("2006-01-02", dateString, time.Local)
	if err != nil {
		return false
	}
	maxDate := clock.Now().AddDate(0, 0, maxDays)
	return !date.After(maxDate)
}

// IsPeakHour applies the operating-hours containment logic to the configured
// peak window, overnight wraparound included.
func IsPeakHour(timeString, peakStart, peakEnd string) bool {
	checkMin, err := TimeToMinutes(timeString)
	if err != nil {
		return false
	}
	startMin, err := TimeToMinutes(peakStart)
	if err != nil {
		return false
	}
	endMin, err := TimeToMinutes(peakEnd)
	if err != nil {
		return false
	}

	normEnd := NormalizeClose(startMin, endMin)
	if checkMin < startMin {
		checkMin += minutesPerDay
	}
	return checkMin >= startMin && checkMin <= normEnd
}
