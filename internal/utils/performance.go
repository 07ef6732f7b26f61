package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// Slow-operation thresholds.
const (
	SlowOperation = 10 * time.Second
	SlowQuery     = 2 * time.Second
)

// Timer measures one operation and logs its duration when stopped.
type Timer struct {
	start time.Time
	name  string
	log   zerolog.Logger
}

// NewTimer starts a timer for the named operation.
func NewTimer(name string, log zerolog.Logger) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
		log:   log,
	}
}

// Stop logs and returns the elapsed time. Operations slower than
// SlowOperation are logged at warn level.
func (t *Timer) Stop() time.Duration {
	duration := time.Since(t.start)

	event := t.log.Debug()
	if duration > SlowOperation {
		event = t.log.Warn()
	}
	event.
		Str("operation", t.name).
		Dur("duration_ms", duration).
		Msg("Performance measurement")

	return duration
}

// MeasureDBQuery returns a func that logs the query duration and row count.
//
// Usage:
//
//	done := utils.MeasureDBQuery("load_prices", log)
//	...
//	done(int64(len(rows)))
func MeasureDBQuery(queryName string, log zerolog.Logger) func(rows int64) {
	start := time.Now()

	return func(rows int64) {
		duration := time.Since(start)

		event := log.Debug()
		if duration > SlowQuery {
			event = log.Warn()
		}
		event.
			Str("query", queryName).
			Dur("duration_ms", duration).
			Int64("rows", rows).
			Msg("Database query completed")
	}
}
