// Package pricing holds the seasonal pricing form of vehicles and hotel rooms:
// month-set editing, overlap validation and derivation of the stored payload.
package pricing

import (
	"fmt"
)

type Season int

const (
	OffSeason Season = iota
	OnSeason
	Closed
)

func (s Season) String() string {
	switch s {
	case OffSeason:
		return "off-season"
	case OnSeason:
		return "on-season"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("season(%d)", int(s))
	}
}

// ParseSeason accepts the wire names used by the pricing screen.
func ParseSeason(v string) (Season, error) {
	switch v {
	case "off_season", "off-season", "off":
		return OffSeason, nil
	case "on_season", "on-season", "on":
		return OnSeason, nil
	case "closed":
		return Closed, nil
	}
	return 0, fmt.Errorf("unknown season %q", v)
}

// Form is the edit buffer of one pricing screen. Month sets may transiently
// overlap while editing; Validate reports that, nothing corrects it.
type Form struct {
	OffSeasonMonths         []int    `json:"off_season_months"`
	OffSeasonPrice          *float64 `json:"off_season_price"`
	OnSeasonMonths          []int    `json:"on_season_months"`
	OnSeasonPrice           *float64 `json:"on_season_price"`
	ClosedMonths            []int    `json:"closed_months"`
	LastMinuteEnabled       bool     `json:"last_minute_enabled"`
	LastMinuteDaysBefore    *int     `json:"last_minute_days_before"`
	LastMinuteDiscountPrice *float64 `json:"last_minute_discount_price"`
}

// Payload is the stored pricing shape. Field names are part of the table contract.
type Payload struct {
	OffSeasonMonths         []int    `json:"off_season_months"`
	OffSeasonPrice          *float64 `json:"off_season_price"`
	OnSeasonMonths          []int    `json:"on_season_months"`
	OnSeasonPrice           *float64 `json:"on_season_price"`
	ClosedMonths            []int    `json:"closed_months"`
	LastMinuteEnabled       bool     `json:"last_minute_enabled"`
	LastMinuteDaysBefore    *int     `json:"last_minute_days_before"`
	LastMinuteDiscountPrice *float64 `json:"last_minute_discount_price"`
}

// Result is either Configured with a payload or NotConfigured, in which case
// nothing is persisted.
type Result struct {
	payload *Payload
}

func Configured(p Payload) Result {
	return Result{payload: &p}
}

func NotConfigured() Result {
	return Result{}
}

func (r Result) IsConfigured() bool {
	return r.payload != nil
}

func (r Result) Payload() (Payload, bool) {
	if r.payload == nil {
		return Payload{}, false
	}
	return *r.payload, true
}

func (f *Form) set(s Season) *[]int {
	switch s {
	case OffSeason:
		return &f.OffSeasonMonths
	case OnSeason:
		return &f.OnSeasonMonths
	case Closed:
		return &f.ClosedMonths
	}
	return nil
}

// Toggle removes month from season's set when present, otherwise moves it
// there from whichever set held it.
func (f *Form) Toggle(s Season, month int) error {
	if !ValidMonth(month) {
		return fmt.Errorf("invalid month %d", month)
	}
	target := f.set(s)
	if target == nil {
		return fmt.Errorf("unknown season %d", int(s))
	}

	if containsMonth(*target, month) {
		*target = normalize(without(*target, month))
		return nil
	}

	for _, other := range []Season{OffSeason, OnSeason, Closed} {
		if other == s {
			continue
		}
		ms := f.set(other)
		*ms = normalize(without(*ms, month))
	}
	*target = normalize(append(*target, month))
	return nil
}

// Validate returns the form's errors in a fixed order: closed overlaps first,
// then the off/on overlap, then missing prices. Empty means valid.
func Validate(f Form) []string {
	var errs []string

	if ms := intersect(f.OffSeasonMonths, f.ClosedMonths); len(ms) > 0 {
		errs = append(errs, fmt.Sprintf("Months %s cannot be both off-season and closed", labels(ms)))
	}
	if ms := intersect(f.OnSeasonMonths, f.ClosedMonths); len(ms) > 0 {
		errs = append(errs, fmt.Sprintf("Months %s cannot be both on-season and closed", labels(ms)))
	}
	if ms := intersect(f.OffSeasonMonths, f.OnSeasonMonths); len(ms) > 0 {
		errs = append(errs, fmt.Sprintf("Months %s cannot be both off-season and on-season", labels(ms)))
	}
	if len(f.OffSeasonMonths) > 0 && !priceSet(f.OffSeasonPrice) {
		errs = append(errs, "Off-season price must be set")
	}
	if len(f.OnSeasonMonths) > 0 && !priceSet(f.OnSeasonPrice) {
		errs = append(errs, "On-season price must be set")
	}

	return errs
}

// Derive builds the stored payload, or NotConfigured when no block of the
// form is fully specified.
func Derive(f Form) Result {
	offSpecified := len(f.OffSeasonMonths) > 0 && priceSet(f.OffSeasonPrice)
	onSpecified := len(f.OnSeasonMonths) > 0 && priceSet(f.OnSeasonPrice)
	closedSpecified := len(f.ClosedMonths) > 0
	lastMinuteSpecified := f.LastMinuteEnabled && f.LastMinuteDaysBefore != nil && priceSet(f.LastMinuteDiscountPrice)

	if !offSpecified && !onSpecified && !closedSpecified && !lastMinuteSpecified {
		return NotConfigured()
	}

	p := Payload{
		OffSeasonMonths:   normalize(f.OffSeasonMonths),
		OffSeasonPrice:    priceOrNil(f.OffSeasonPrice),
		OnSeasonMonths:    normalize(f.OnSeasonMonths),
		OnSeasonPrice:     priceOrNil(f.OnSeasonPrice),
		ClosedMonths:      normalize(f.ClosedMonths),
		LastMinuteEnabled: f.LastMinuteEnabled,
	}
	if f.LastMinuteEnabled {
		if f.LastMinuteDaysBefore != nil {
			days := *f.LastMinuteDaysBefore
			p.LastMinuteDaysBefore = &days
		}
		p.LastMinuteDiscountPrice = priceOrNil(f.LastMinuteDiscountPrice)
	}
	return Configured(p)
}

// Submit validates and derives in one step. Callers must not persist the
// result while errs is non-empty.
func Submit(f Form) (Result, []string) {
	return Derive(f), Validate(f)
}

// FromPayload loads a stored payload back into an edit buffer.
func FromPayload(p Payload) Form {
	return Form{
		OffSeasonMonths:         normalize(p.OffSeasonMonths),
		OffSeasonPrice:          priceOrNil(p.OffSeasonPrice),
		OnSeasonMonths:          normalize(p.OnSeasonMonths),
		OnSeasonPrice:           priceOrNil(p.OnSeasonPrice),
		ClosedMonths:            normalize(p.ClosedMonths),
		LastMinuteEnabled:       p.LastMinuteEnabled,
		LastMinuteDaysBefore:    p.LastMinuteDaysBefore,
		LastMinuteDiscountPrice: priceOrNil(p.LastMinuteDiscountPrice),
	}
}

func priceSet(p *float64) bool {
	return p != nil && *p > 0
}

func priceOrNil(p *float64) *float64 {
	if !priceSet(p) {
		return nil
	}
	v := *p
	return &v
}
