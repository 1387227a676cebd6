package lunar

// Enumerator lists the Moon phase for every day in a range of dates.
type Enumerator struct {
	conv Converter
	calc *Calculator
}

// NewEnumerator returns an Enumerator that converts range endpoints with conv
// and computes each day with calc.
func NewEnumerator(conv Converter, calc *Calculator) *Enumerator {
	return &Enumerator{conv: conv, calc: calc}
}

// Enumerate returns one Moon per day from 'from' to 'to' inclusive, in
// ascending order. The result is empty when to precedes from.
func (e *Enumerator) Enumerate(from, to CalendarDate) []Moon {
	a, b := e.conv.ToJulianDay(from), e.conv.ToJulianDay(to)
	if b < a {
		return []Moon{}
	}
	interval := make([]Moon, 0, b-a+1)
	for x := a; x <= b; x++ {
		interval = append(interval, e.calc.Compute(JulianDayInput(x)))
	}
	return interval
}

var defaultEnumerator = NewEnumerator(Calendar{}, defaultCalculator)

// EnumerateInterval returns the Moon for each day from 'from' to 'to'
// inclusive using the Gregorian calendar.
func EnumerateInterval(from, to CalendarDate) []Moon {
	return defaultEnumerator.Enumerate(from, to)
}
