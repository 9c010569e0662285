package pricing

import (
	"time"

	"github.com/thoas/go-funk"
)

// Quote resolves the price of a single stay day booked at bookedAt.
// ok is false when the month is closed or no configured price applies.
func Quote(p Payload, day, bookedAt time.Time) (price float64, ok bool) {
	month := int(day.Month())
	if containsMonth(p.ClosedMonths, month) {
		return 0, false
	}

	if p.LastMinuteOn(day, bookedAt) {
		return *p.LastMinuteDiscountPrice, true
	}

	if p.OnSeasonPrice != nil && containsMonth(p.OnSeasonMonths, month) {
		return *p.OnSeasonPrice, true
	}
	if p.OffSeasonPrice != nil && containsMonth(p.OffSeasonMonths, month) {
		return *p.OffSeasonPrice, true
	}
	return 0, false
}

func containsMonth(ms []int, m int) bool {
	return funk.ContainsInt(ms, m)
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// ClosedOn reports whether day falls in a closed month.
func (p Payload) ClosedOn(day time.Time) bool {
	return containsMonth(p.ClosedMonths, int(day.Month()))
}

// LastMinuteOn reports whether the last-minute price applies to day when
// booked at bookedAt.
func (p Payload) LastMinuteOn(day, bookedAt time.Time) bool {
	if !p.LastMinuteEnabled || p.LastMinuteDaysBefore == nil || p.LastMinuteDiscountPrice == nil {
		return false
	}
	until := daysBetween(bookedAt, day)
	return until >= 0 && until <= *p.LastMinuteDaysBefore
}
