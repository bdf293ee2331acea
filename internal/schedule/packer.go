package schedule

import "time"

// span is a half-open [Start, End) placement on one day.
type span struct {
	Start time.Time
	End   time.Time
}

// packDay places as much of remaining as fits between cursor and dayEnd.
// It returns the placement, the time still to place and whether anything
// was placed. A day with no time left yields ok=false, never a zero-length span.
func packDay(cursor, dayEnd time.Time, remaining time.Duration) (placed span, left time.Duration, ok bool) {
	available := dayEnd.Sub(cursor)
	if available <= 0 || remaining <= 0 {
		return span{}, remaining, false
	}
	take := min(remaining, available)
	return span{Start: cursor, End: cursor.Add(take)}, remaining - take, true
}
