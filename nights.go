package main

import (
	"fmt"
	"strings"
	"time"

	"moonbot/lunar"

	"github.com/nathan-osman/go-sunrise"
)

// Night is the Moon phase of a day together with the dark hours that follow it
type Night struct {
	Moon    lunar.Moon
	Sunset  time.Time
	Sunrise time.Time
}

type Nights []Night

// newNight() fills sunset of the Moon's day and sunrise of the next morning, in UTC
func newNight(m lunar.Moon, lat, lon float64) Night {
	day := m.Date().Time()
	_, sunset := sunrise.SunriseSunset(lat, lon, day.Year(), day.Month(), day.Day())
	next := day.AddDate(0, 0, 1)
	rise, _ := sunrise.SunriseSunset(lat, lon, next.Year(), next.Month(), next.Day())

	return Night{Moon: m, Sunset: sunset, Sunrise: rise}
}

// forecastNights() returns one Night per day starting at from
func forecastNights(from lunar.CalendarDate, days int, lat, lon float64) Nights {
	if days < 1 {
		return Nights{}
	}
	to := lunar.NewCalendarDate(from.Time().AddDate(0, 0, days-1))
	return intervalNights(from, to, lat, lon)
}

// intervalNights() returns one Night per day between from and to inclusive
func intervalNights(from, to lunar.CalendarDate, lat, lon float64) Nights {
	moons := lunar.EnumerateInterval(from, to)
	nights := make(Nights, 0, len(moons))
	for _, m := range moons {
		nights = append(nights, newNight(m, lat, lon))
	}

	return nights
}

// clock() formats t as HH:MM, or a placeholder when the sun does not rise or set
func clock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.UTC().Format("15:04")
}

// Print() returns a table with one line per Night
func (n Nights) Print() string {
	var out strings.Builder
	for _, night := range n {
		out.WriteString(night.Print())
	}

	return out.String()
}

func (n Night) Print() string {
	return fmt.Sprintf("%s %s | %3.0f%% | %s-%s | %s\n",
		n.Moon.Phase().Emoji(),
		n.Moon.Date().Time().Format("Mon 02 Jan"),
		n.Moon.Illumination(),
		clock(n.Sunset),
		clock(n.Sunrise),
		n.Moon.Phase(),
	)
}

// phaseReport() describes a single day
func phaseReport(m lunar.Moon) string {
	return fmt.Sprintf("%s %s\n%s, %.0f%% illuminated\nJulian day %d\n",
		m.Phase().Emoji(), m.Date(), m.Phase(), m.Illumination(), m.JulianDay())
}
