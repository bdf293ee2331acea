package schedule

import (
	"time"

	"github.com/teamcal/teamcal/internal/constants"
)

// personDay identifies one person's calendar day.
type personDay struct {
	person string
	date   string
}

func newPersonDay(person string, day time.Time) personDay {
	return personDay{person: person, date: day.Format(constants.DateLayout)}
}

// cursorBook tracks the next free instant for every person-day touched by a run.
// Cursors are created lazily at the workday start, or after the latest
// pre-scheduled event reserved on that day.
type cursorBook struct {
	cursors      map[personDay]time.Time
	reservations map[personDay]time.Time
}

func newCursorBook() *cursorBook {
	return &cursorBook{
		cursors:      make(map[personDay]time.Time),
		reservations: make(map[personDay]time.Time),
	}
}

// reserve blocks a person-day up to end. An existing cursor is pushed
// forward; otherwise the reservation applies when the cursor is created.
func (b *cursorBook) reserve(key personDay, end time.Time) {
	if cur, ok := b.cursors[key]; ok {
		if end.After(cur) {
			b.cursors[key] = end
		}
		return
	}
	if prev, ok := b.reservations[key]; !ok || end.After(prev) {
		b.reservations[key] = end
	}
}

// cursor returns the next free instant, initialising it from dayStart.
func (b *cursorBook) cursor(key personDay, dayStart time.Time) time.Time {
	if cur, ok := b.cursors[key]; ok {
		return cur
	}
	cur := dayStart
	if res, ok := b.reservations[key]; ok && res.After(cur) {
		cur = res
	}
	b.cursors[key] = cur
	return cur
}

// begin opens a transaction so an item's tentative placements can be
// discarded if it fails to fit.
func (b *cursorBook) begin() *cursorTx {
	return &cursorTx{book: b, pending: make(map[personDay]time.Time)}
}

// cursorTx overlays uncommitted cursor moves on a cursorBook.
type cursorTx struct {
	book    *cursorBook
	pending map[personDay]time.Time
}

func (tx *cursorTx) cursor(key personDay, dayStart time.Time) time.Time {
	if cur, ok := tx.pending[key]; ok {
		return cur
	}
	if cur, ok := tx.book.cursors[key]; ok {
		return cur
	}
	cur := dayStart
	if res, ok := tx.book.reservations[key]; ok && res.After(cur) {
		cur = res
	}
	return cur
}

func (tx *cursorTx) advance(key personDay, to time.Time) {
	tx.pending[key] = to
}

func (tx *cursorTx) commit() {
	for key, cur := range tx.pending {
		tx.book.cursors[key] = cur
	}
	tx.pending = nil
}
