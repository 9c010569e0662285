package pricing

import (
	"sort"
	"strings"

	"github.com/thoas/go-funk"
)

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ValidMonth reports whether m is a calendar month number.
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

// MonthLabel returns the three-letter label of month m, or "" when m is out of range.
func MonthLabel(m int) string {
	if !ValidMonth(m) {
		return ""
	}
	return monthLabels[m-1]
}

// normalize returns the distinct months of ms in ascending order. Never nil.
func normalize(ms []int) []int {
	out := append([]int{}, funk.UniqInt(ms)...)
	sort.Ints(out)
	return out
}

// intersect returns the months present in both sets, ascending.
func intersect(a, b []int) []int {
	return normalize(funk.FilterInt(a, func(m int) bool {
		return funk.ContainsInt(b, m)
	}))
}

func without(ms []int, m int) []int {
	return funk.FilterInt(ms, func(x int) bool { return x != m })
}

func labels(ms []int) string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, MonthLabel(m))
	}
	return strings.Join(out, ", ")
}
