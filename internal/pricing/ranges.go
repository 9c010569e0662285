package pricing

import "fmt"

const (
	MinDaysBefore = 1
	MaxDaysBefore = 14
)

// RangeError reports a form value outside what the pricing inputs allow.
type RangeError struct {
	Field string
	Msg   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// CheckRanges rejects months outside 1..12, a last-minute window outside
// MinDaysBefore..MaxDaysBefore and negative prices. Validate assumes a form
// that passed it.
func CheckRanges(f Form) error {
	for _, set := range [][]int{f.OffSeasonMonths, f.OnSeasonMonths, f.ClosedMonths} {
		for _, m := range set {
			if !ValidMonth(m) {
				return &RangeError{Field: "months", Msg: fmt.Sprintf("%d is not a calendar month", m)}
			}
		}
	}
	if f.LastMinuteEnabled && f.LastMinuteDaysBefore != nil {
		if d := *f.LastMinuteDaysBefore; d < MinDaysBefore || d > MaxDaysBefore {
			return &RangeError{
				Field: "last_minute_days_before",
				Msg:   fmt.Sprintf("must be between %d and %d", MinDaysBefore, MaxDaysBefore),
			}
		}
	}
	prices := []struct {
		field string
		value *float64
	}{
		{"off_season_price", f.OffSeasonPrice},
		{"on_season_price", f.OnSeasonPrice},
		{"last_minute_discount_price", f.LastMinuteDiscountPrice},
	}
	for _, p := range prices {
		if p.value != nil && *p.value < 0 {
			return &RangeError{Field: p.field, Msg: "must not be negative"}
		}
	}
	return nil
}
