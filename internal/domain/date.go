// Package domain holds the input model of a risk analysis run: price
// history, returns and holdings.
package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for price history.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component, formatted as YYYY-MM-DD.
// Lexical order equals chronological order.
type Date string

// ParseDate validates and normalises a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals; it panics on bad input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf truncates a time to its UTC calendar date.
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(DateLayout))
}

// DateFromUnix converts a unix timestamp (seconds) to its UTC calendar date.
func DateFromUnix(sec int64) Date {
	return DateOf(time.Unix(sec, 0))
}

// Time returns midnight UTC of the date. Invalid dates yield the zero time.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Unix returns the date as unix seconds at midnight UTC.
func (d Date) Unix() int64 {
	return d.Time().Unix()
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d < other
}

func (d Date) String() string {
	return string(d)
}
