package lunar

import (
	"fmt"
	"math"
	"time"
)

// SynodicMonth is the mean length of a synodic month in days, rounded the
// way the phase buckets expect.
const SynodicMonth = 29.53

// Phase is one of eight discrete Moon phases.
type Phase int

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	ThirdQuarter
	WaningCrescent
)

var phaseNames = [...]string{
	"new moon",
	"waxing crescent",
	"first quarter",
	"waxing gibbous",
	"full moon",
	"waning gibbous",
	"third quarter",
	"waning crescent",
}

var phaseEmoji = [...]string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

func (p Phase) String() string {
	if p < NewMoon || p > WaningCrescent {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Emoji returns the Moon symbol for the phase.
func (p Phase) Emoji() string {
	if p < NewMoon || p > WaningCrescent {
		return "?"
	}
	return phaseEmoji[p]
}

// Input selects how Compute obtains the Julian day. It is implemented by
// JulianDayInput, CalendarDateInput and NowInput only.
type Input interface {
	isInput()
}

// JulianDayInput computes the phase of a Julian day.
type JulianDayInput JulianDay

// CalendarDateInput computes the phase of a calendar date.
type CalendarDateInput CalendarDate

// NowInput computes the phase of the current UTC date.
type NowInput struct{}

func (JulianDayInput) isInput()    {}
func (CalendarDateInput) isInput() {}
func (NowInput) isInput()          {}

// Moon is the phase of the Moon on one day. The zero value is not useful;
// Moons are created by Calculator.Compute and never change afterwards.
type Moon struct {
	julianDay    JulianDay
	timestamp    int64
	hasTimestamp bool
	date         CalendarDate
	fraction     float64
	phase        Phase
}

// JulianDay returns the Julian day the phase was computed for.
func (m Moon) JulianDay() JulianDay { return m.julianDay }

// Timestamp returns the unix time in milliseconds of midnight UTC of the
// day. It is only set when the Moon was computed from a JulianDayInput.
func (m Moon) Timestamp() (int64, bool) { return m.timestamp, m.hasTimestamp }

// Date returns the calendar date the phase applies to.
func (m Moon) Date() CalendarDate { return m.date }

// Phase returns the phase bucket, always in [NewMoon, WaningCrescent].
func (m Moon) Phase() Phase { return m.phase }

// Fraction returns the position within the synodic month, in [0, 1).
func (m Moon) Fraction() float64 { return m.fraction }

// Illumination returns the approximate illuminated percentage of the disc.
func (m Moon) Illumination() float64 {
	return (1.0 - math.Cos(2.0*math.Pi*m.fraction)) / 2.0 * 100.0
}

func (m Moon) String() string {
	return fmt.Sprintf("%s %s %s", m.date, m.phase.Emoji(), m.phase)
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock sets the clock used for NowInput.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		c.now = now
	}
}

// Calculator computes Moon phases using the supplied Converter.
type Calculator struct {
	conv Converter
	now  func() time.Time
}

// NewCalculator returns a Calculator backed by conv.
func NewCalculator(conv Converter, opts ...Option) *Calculator {
	c := &Calculator{conv: conv, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute returns the Moon for the given input. Pointers to the input types
// are accepted. NowInput, a nil input, a nil pointer and any type that only
// embeds one of the inputs all read the clock.
func (c *Calculator) Compute(in Input) Moon {
	var m Moon
	switch v := deref(in).(type) {
	case JulianDayInput:
		m.julianDay = JulianDay(v)
		m.timestamp = c.conv.ToUnixTimestampMs(m.julianDay)
		m.hasTimestamp = true
		m.date = NewCalendarDate(time.UnixMilli(m.timestamp))
	case CalendarDateInput:
		m.date = CalendarDate(v)
		m.julianDay = c.conv.ToJulianDay(m.date)
	default:
		m.date = NewCalendarDate(c.now())
		m.julianDay = c.conv.ToJulianDay(m.date)
	}
	m.fraction, m.phase = phaseOf(m.julianDay)
	return m
}

// deref replaces pointer inputs with the value they point to.
func deref(in Input) Input {
	switch v := in.(type) {
	case *JulianDayInput:
		if v != nil {
			return *v
		}
		return nil
	case *CalendarDateInput:
		if v != nil {
			return *v
		}
		return nil
	case *NowInput:
		return nil
	}
	return in
}

// phaseOf buckets the position of jd within the synodic month into one of
// eight phases. A rounded bucket of 8 wraps to NewMoon.
func phaseOf(jd JulianDay) (float64, Phase) {
	months := float64(jd) / SynodicMonth
	fraction := months - math.Floor(months)
	return fraction, Phase(int64(math.Floor(fraction*8+0.5)) & 7)
}

var defaultCalculator = NewCalculator(Calendar{})

// ComputeMoonPhase computes the Moon for in using the Gregorian calendar and
// the system clock.
func ComputeMoonPhase(in Input) Moon {
	return defaultCalculator.Compute(in)
}
