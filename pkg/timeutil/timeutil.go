// Package timeutil normalizes timestamps to the ledger's civil timezone.
//
// All dates are persisted as ISO-8601 strings rendered in KST (UTC+9) at
// the point of writing and are never re-normalized on read. Because the
// layout is fixed-width ISO-8601, lexicographic comparison of stored
// strings matches chronological order, which the date-range queries rely
// on.
package timeutil

import "time"

// KST is the fixed civil timezone of the ledger (UTC+9).
var KST = time.FixedZone("KST", 9*60*60)

// Layout is the persisted timestamp layout. The trailing "Z" is a literal
// kept for compatibility with existing rows; the wall time is KST.
const Layout = "2006-01-02T15:04:05.000Z"

// Format renders t in KST using the persisted layout.
func Format(t time.Time) string {
	return t.In(KST).Format(Layout)
}

// Now returns the current instant formatted for persistence.
func Now() string {
	return Format(time.Now())
}

// Parse reads a persisted timestamp back into a time.Time in KST.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, KST)
}

// MonthRange returns the inclusive start and end bounds of a civil month
// in KST, formatted for persisted-string comparison.
func MonthRange(year, month int) (start, end string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, KST)
	last := first.AddDate(0, 1, 0).Add(-time.Millisecond)
	return first.Format(Layout), last.Format(Layout)
}
