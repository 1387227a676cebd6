// Package lunar computes the Moon's synodic phase for calendar dates and
// Julian days, and enumerates phases over date ranges.
//
// All calendar arithmetic is proleptic Gregorian in UTC. The conversion
// functions never validate their input: out-of-range months or days produce a
// well defined but meaningless Julian day. Use ParseCalendarDate or
// CalendarDate.Validate at the edges of a program to reject such values.
package lunar

import (
	"fmt"
	"time"
)

const (
	// UnixEpochJulianDay is the Julian day number of 1970-01-01.
	UnixEpochJulianDay JulianDay = 2440588

	millisPerDay = 86400000
)

// JulianDay is a count of days since the start of the Julian period.
type JulianDay int64

// CalendarDate is a UTC calendar date.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate returns the UTC calendar fields of t.
func NewCalendarDate(t time.Time) CalendarDate {
	y, m, d := t.UTC().Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the date.
func (cd CalendarDate) Time() time.Time {
	return time.Date(cd.Year, cd.Month, cd.Day, 0, 0, 0, 0, time.UTC)
}

func (cd CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", cd.Year, int(cd.Month), cd.Day)
}

// Converter converts between calendar dates, Julian days and unix timestamps.
type Converter interface {
	ToJulianDay(CalendarDate) JulianDay
	ToUnixTimestampMs(JulianDay) int64
}

// Calendar is the proleptic Gregorian Converter.
type Calendar struct{}

// ToJulianDay implements Converter.
func (Calendar) ToJulianDay(cd CalendarDate) JulianDay {
	return ToJulianDay(cd)
}

// ToUnixTimestampMs implements Converter.
func (Calendar) ToUnixTimestampMs(jd JulianDay) int64 {
	return ToUnixTimestampMs(jd)
}

// ToJulianDay returns the Julian day number of the given date using the
// civil calendar algorithm. Division is floored so that dates whose
// shifted year is negative still land on the right day.
func ToJulianDay(cd CalendarDate) JulianDay {
	month := int64(cd.Month)
	a := floorDiv(14-month, 12)
	y := int64(cd.Year) + 4800 - a
	m := month + 12*a - 3
	jd := int64(cd.Day) + floorDiv(153*m+2, 5) +
		365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
	return JulianDay(jd)
}

// ToUnixTimestampMs returns the unix time in milliseconds of midnight UTC on
// the given Julian day.
func ToUnixTimestampMs(jd JulianDay) int64 {
	return int64(jd-UnixEpochJulianDay) * millisPerDay
}

// Date returns the UTC calendar date of the Julian day.
func (jd JulianDay) Date() CalendarDate {
	return NewCalendarDate(time.UnixMilli(ToUnixTimestampMs(jd)))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
