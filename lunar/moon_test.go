package lunar_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moonbot/lunar"
)

func TestPhaseRange(t *testing.T) {
	for jd := lunar.JulianDay(-100000); jd < 3000000; jd += 31 {
		p := lunar.ComputeMoonPhase(lunar.JulianDayInput(jd)).Phase()
		if p < lunar.NewMoon || p > lunar.WaningCrescent {
			t.Fatalf("jd %d: phase %d out of range", jd, p)
		}
	}
}

func TestPhasePeriodic(t *testing.T) {
	circular := func(a, b lunar.Phase) int {
		d := int(a-b+8) % 8
		return min(d, 8-d)
	}
	// Rounding the shift to whole days moves the position by at most
	// 0.5/29.53 of a month, i.e. 8*0.5/29.53 of a bucket.
	const slack = 8 * 0.5 / lunar.SynodicMonth
	equal, total := 0, 0
	for jd := lunar.JulianDay(2451545); jd < 2451545+400; jd++ {
		m := lunar.ComputeMoonPhase(lunar.JulianDayInput(jd))
		pos := m.Fraction()*8 + 0.5
		edge := math.Abs(pos - math.Round(pos))
		for k := 1; k <= 12; k++ {
			later := jd + lunar.JulianDay(math.Round(lunar.SynodicMonth*float64(k)))
			q := lunar.ComputeMoonPhase(lunar.JulianDayInput(later)).Phase()
			total++
			if q == m.Phase() {
				equal++
				continue
			}
			require.Equal(t, 1, circular(m.Phase(), q), "jd %d, k %d: %v vs %v", jd, k, m.Phase(), q)
			require.LessOrEqual(t, edge, slack+1e-9, "jd %d, k %d: %v vs %v away from a bucket edge", jd, k, m.Phase(), q)
		}
	}
	assert.Greater(t, float64(equal)/float64(total), 0.8, "%d of %d pairs equal", equal, total)
}

func TestKnownPhases(t *testing.T) {
	for _, tc := range []struct {
		date lunar.CalendarDate
		want lunar.Phase
	}{
		{cd(2012, time.December, 25), lunar.WaxingGibbous},
		{cd(2012, time.December, 28), lunar.FullMoon},
	} {
		m := lunar.ComputeMoonPhase(lunar.CalendarDateInput(tc.date))
		assert.Equal(t, tc.want, m.Phase(), "%v", tc.date)
	}
}

func TestComputeJulianDayInput(t *testing.T) {
	m := lunar.ComputeMoonPhase(lunar.JulianDayInput(2456287))
	assert.Equal(t, lunar.JulianDay(2456287), m.JulianDay())
	assert.Equal(t, cd(2012, time.December, 25), m.Date())
	ts, ok := m.Timestamp()
	require.True(t, ok)
	assert.Equal(t, time.Date(2012, 12, 25, 0, 0, 0, 0, time.UTC).UnixMilli(), ts)
}

func TestComputeCalendarDateInput(t *testing.T) {
	date := cd(2012, time.December, 25)
	m := lunar.ComputeMoonPhase(lunar.CalendarDateInput(date))
	assert.Equal(t, lunar.JulianDay(2456287), m.JulianDay())
	assert.Equal(t, date, m.Date())
	_, ok := m.Timestamp()
	assert.False(t, ok)

	// Both paths agree on the phase for the same day.
	assert.Equal(t, lunar.ComputeMoonPhase(lunar.JulianDayInput(2456287)).Phase(), m.Phase())
}

func TestComputeNow(t *testing.T) {
	now := time.Date(2012, 12, 25, 21, 15, 0, 0, time.UTC)
	calls := 0
	calc := lunar.NewCalculator(lunar.Calendar{}, lunar.WithClock(func() time.Time {
		calls++
		return now
	}))

	m := calc.Compute(lunar.NowInput{})
	assert.Equal(t, 1, calls)
	assert.Equal(t, cd(2012, time.December, 25), m.Date())
	assert.Equal(t, lunar.JulianDay(2456287), m.JulianDay())
	_, ok := m.Timestamp()
	assert.False(t, ok)

	assert.Equal(t, m, calc.Compute(nil))
	assert.Equal(t, m, calc.Compute(lunar.NowInput{}))
}

func TestComputePointerInputs(t *testing.T) {
	now := time.Date(2012, 12, 28, 9, 0, 0, 0, time.UTC)
	calc := lunar.NewCalculator(lunar.Calendar{}, lunar.WithClock(func() time.Time { return now }))
	today := calc.Compute(lunar.NowInput{})

	jd := lunar.JulianDayInput(2456287)
	date := lunar.CalendarDateInput(cd(2012, time.December, 25))
	assert.Equal(t, calc.Compute(jd), calc.Compute(&jd))
	assert.Equal(t, calc.Compute(date), calc.Compute(&date))

	for _, in := range []lunar.Input{
		&lunar.NowInput{},
		(*lunar.NowInput)(nil),
		(*lunar.JulianDayInput)(nil),
		(*lunar.CalendarDateInput)(nil),
		struct{ lunar.NowInput }{},
	} {
		var m lunar.Moon
		require.NotPanics(t, func() { m = calc.Compute(in) }, "%T", in)
		assert.Equal(t, today, m, "%T", in)
	}
	assert.Equal(t, lunar.WaxingGibbous, lunar.ComputeMoonPhase(&date).Phase())
}

func TestComputeNowDeterministic(t *testing.T) {
	// Same day, same result; retry if the test straddles UTC midnight.
	for range 3 {
		a := lunar.ComputeMoonPhase(lunar.NowInput{})
		b := lunar.ComputeMoonPhase(nil)
		if a.Date() == b.Date() {
			assert.Equal(t, a, b)
			return
		}
	}
	t.Fatal("clock kept crossing midnight")
}

type countingConverter struct {
	lunar.Calendar
	julian, timestamps int
}

func (c *countingConverter) ToJulianDay(d lunar.CalendarDate) lunar.JulianDay {
	c.julian++
	return c.Calendar.ToJulianDay(d)
}

func (c *countingConverter) ToUnixTimestampMs(jd lunar.JulianDay) int64 {
	c.timestamps++
	return c.Calendar.ToUnixTimestampMs(jd)
}

func TestCalculatorUsesConverter(t *testing.T) {
	conv := &countingConverter{}
	calc := lunar.NewCalculator(conv)
	calc.Compute(lunar.CalendarDateInput(cd(2000, time.January, 1)))
	calc.Compute(lunar.JulianDayInput(2451545))
	assert.Equal(t, 1, conv.julian)
	assert.Equal(t, 1, conv.timestamps)
}

func TestMoonAccessors(t *testing.T) {
	m := lunar.ComputeMoonPhase(lunar.JulianDayInput(0))
	assert.Equal(t, lunar.NewMoon, m.Phase())
	assert.Equal(t, 0.0, m.Fraction())
	assert.InDelta(t, 0.0, m.Illumination(), 1e-9)

	for jd := lunar.JulianDay(2451545); jd < 2451545+60; jd++ {
		m := lunar.ComputeMoonPhase(lunar.JulianDayInput(jd))
		assert.GreaterOrEqual(t, m.Fraction(), 0.0)
		assert.Less(t, m.Fraction(), 1.0)
		assert.GreaterOrEqual(t, m.Illumination(), 0.0)
		assert.LessOrEqual(t, m.Illumination(), 100.0)
	}
}

func TestPhaseNames(t *testing.T) {
	assert.Equal(t, "new moon", lunar.NewMoon.String())
	assert.Equal(t, "full moon", lunar.FullMoon.String())
	assert.Equal(t, "waning crescent", lunar.WaningCrescent.String())
	assert.Equal(t, "Phase(8)", lunar.Phase(8).String())
	assert.Equal(t, "🌕", lunar.FullMoon.Emoji())
	assert.Equal(t, "?", lunar.Phase(-1).Emoji())

	m := lunar.ComputeMoonPhase(lunar.CalendarDateInput(cd(2012, time.December, 28)))
	assert.Equal(t, "2012-12-28 🌕 full moon", m.String())
}

func TestAllPhasesOccur(t *testing.T) {
	seen := map[lunar.Phase]bool{}
	for jd := lunar.JulianDay(2456287); jd < 2456287+30; jd++ {
		seen[lunar.ComputeMoonPhase(lunar.JulianDayInput(jd)).Phase()] = true
	}
	assert.Len(t, seen, 8)
}
