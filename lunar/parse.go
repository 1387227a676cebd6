package lunar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"cloudeng.io/datetime/dates"
	"github.com/go-playground/validator/v10"
)

// InvalidDateError reports a calendar date that failed parsing or
// validation. The conversion functions themselves never return it.
type InvalidDateError struct {
	Input string
	Field string
	Err   error
}

func (e *InvalidDateError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid date %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid date %q: %s: %v", e.Input, e.Field, e.Err)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

// calendarFields carries the coarse range checks; days-in-month is checked
// separately since it depends on the year.
type calendarFields struct {
	Year  int `validate:"gte=-999999,lte=999999"`
	Month int `validate:"gte=1,lte=12"`
	Day   int `validate:"gte=1,lte=31"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate reports whether the date names a real day in the proleptic
// Gregorian calendar.
func (cd CalendarDate) Validate() error {
	err := fieldValidator().Struct(calendarFields{Year: cd.Year, Month: int(cd.Month), Day: cd.Day})
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &InvalidDateError{
				Input: cd.String(),
				Field: strings.ToLower(fe.Field()),
				Err:   fmt.Errorf("%v out of range (%s=%s)", fe.Value(), fe.Tag(), fe.Param()),
			}
		}
		return &InvalidDateError{Input: cd.String(), Err: err}
	}
	if n := dates.DaysInMonth(cd.Year, dates.Month(cd.Month)); cd.Day > n {
		return &InvalidDateError{
			Input: cd.String(),
			Field: "day",
			Err:   fmt.Errorf("%s %d has %d days", cd.Month, cd.Year, n),
		}
	}
	return nil
}

// ParseCalendarDate parses a date in YYYY-MM-DD form. The literal "today"
// yields the UTC date of now.
func ParseCalendarDate(val string, now time.Time) (CalendarDate, error) {
	val = strings.TrimSpace(val)
	if strings.EqualFold(val, "today") {
		return NewCalendarDate(now), nil
	}
	parts := strings.Split(val, "-")
	// Allow a leading minus for years before the common era.
	if strings.HasPrefix(val, "-") && len(parts) == 4 {
		parts = []string{"-" + parts[1], parts[2], parts[3]}
	}
	if len(parts) != 3 {
		return CalendarDate{}, &InvalidDateError{Input: val, Err: errors.New("expected format YYYY-MM-DD")}
	}
	return parseFields(val, parts[2], parts[1], parts[0])
}

// ParseCalendarFields builds a date from separate day, month and year
// strings. The month may be numeric or a month name such as "Dec".
func ParseCalendarFields(day, month, year string) (CalendarDate, error) {
	input := strings.Join([]string{year, month, day}, "-")
	return parseFields(input, day, month, year)
}

func parseFields(input, day, month, year string) (CalendarDate, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return CalendarDate{}, &InvalidDateError{Input: input, Field: "year", Err: err}
	}
	month = strings.TrimSpace(month)
	if month == "" {
		return CalendarDate{}, &InvalidDateError{Input: input, Field: "month", Err: errors.New("empty value")}
	}
	// Month names are matched by prefix, so anything shorter than three
	// letters would be ambiguous.
	if _, err := strconv.Atoi(month); err != nil && len(month) < 3 {
		return CalendarDate{}, &InvalidDateError{Input: input, Field: "month", Err: fmt.Errorf("month name %q too short", month)}
	}
	var m dates.Month
	if err := m.Parse(month); err != nil {
		return CalendarDate{}, &InvalidDateError{Input: input, Field: "month", Err: err}
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return CalendarDate{}, &InvalidDateError{Input: input, Field: "day", Err: err}
	}
	cd := CalendarDate{Year: y, Month: time.Month(m), Day: d}
	if err := cd.Validate(); err != nil {
		return CalendarDate{}, err
	}
	return cd, nil
}
