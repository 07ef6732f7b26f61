package domain

import "errors"

var (
	// ErrEmptySymbol is returned when a series or holding has no symbol.
	ErrEmptySymbol = errors.New("empty symbol")
	// ErrNonPositivePrice is returned for prices that are zero, negative or not finite.
	ErrNonPositivePrice = errors.New("price must be positive")
	// ErrUnorderedDates is returned when price dates go backwards.
	ErrUnorderedDates = errors.New("dates must be strictly increasing")
	// ErrDuplicateDate is returned when a series has two prices for one date.
	ErrDuplicateDate = errors.New("duplicate date")
	// ErrDuplicateSymbol is returned when a table receives the same symbol twice.
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	// ErrInvalidDate is returned when a date is not formatted as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)
