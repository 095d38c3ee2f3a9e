// Package growth turns raw event timestamps into contiguous chart buckets
//
// A window is a trailing run of Count calendar periods (days or months) that
// ends with the period containing now. Every period in the window yields
// exactly one bucket, zero filled when no events fall inside it. Periods are
// identified by a structured calendar key computed in the window's location,
// labels are rendered from that key only at the very end
package growth

import (
	"fmt"
	"time"
)

// Unit is the calendar granularity of a window
type Unit uint8

const (
	// Day buckets by calendar day
	Day Unit = iota + 1
	// Month buckets by calendar month
	Month
)

// String returns the unit name
func (u Unit) String() string {
	switch u {
	case Day:
		return "day"
	case Month:
		return "month"
	default:
		return fmt.Sprintf("unit(%d)", uint8(u))
	}
}

// OrgZone is the organization's fixed UTC offset used for calendar boundaries
var OrgZone = time.FixedZone("+05:30", 5*60*60+30*60)

// Windows in use
var (
	// PublicDaily is the trailing 30 day view on the public site
	PublicDaily = Window{Unit: Day, Count: 30, Location: OrgZone}
	// PublicMonthly is the trailing 12 month view on the about page
	PublicMonthly = Window{Unit: Month, Count: 12, Location: OrgZone}
	// Dashboard is the trailing 6 month view on the admin dashboard
	Dashboard = Window{Unit: Month, Count: 6, Location: OrgZone}
)

// Window configures a trailing reporting window
type Window struct {
	Unit     Unit
	Count    int
	Location *time.Location
}

// Validate reports whether w can be used to build a series
func (w Window) Validate() error {
	if w.Unit != Day && w.Unit != Month {
		return fmt.Errorf("growth: unknown window unit %s", w.Unit)
	}
	if w.Count <= 0 {
		return fmt.Errorf("growth: window count must be positive, got %d", w.Count)
	}
	if w.Location == nil {
		return fmt.Errorf("growth: window location is required")
	}
	return nil
}

// Start returns the first instant of the window ending at now
// it is the start of the period (Count-1) periods before now's period
func (w Window) Start(now time.Time) time.Time {
	n := now.In(w.Location)
	if w.Unit == Month {
		return time.Date(n.Year(), n.Month()-time.Month(w.Count-1), 1, 0, 0, 0, 0, w.Location)
	}
	return time.Date(n.Year(), n.Month(), n.Day()-(w.Count-1), 0, 0, 0, 0, w.Location)
}

// Bucket is one period of a growth series
// SortKey is the period start and is never serialized
type Bucket struct {
	Label   string    `json:"label" example:"Jan 24"`
	Value   int       `json:"value" example:"12"`
	SortKey time.Time `json:"-"`
}

// period is the structured identity of a calendar period
// day is always 1 for month windows
type period struct {
	year  int
	month time.Month
	day   int
}

func (w Window) periodOf(t time.Time) period {
	t = t.In(w.Location)
	if w.Unit == Month {
		return period{year: t.Year(), month: t.Month(), day: 1}
	}
	return period{year: t.Year(), month: t.Month(), day: t.Day()}
}

func (w Window) periodStart(p period) time.Time {
	return time.Date(p.year, p.month, p.day, 0, 0, 0, 0, w.Location)
}

// advance returns the start of the period i steps after start
func (w Window) advance(start time.Time, i int) time.Time {
	if w.Unit == Month {
		return time.Date(start.Year(), start.Month()+time.Month(i), 1, 0, 0, 0, 0, w.Location)
	}
	return time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, w.Location)
}

// Label renders the display label for the period starting at t
// months render as "Jan 24", days as "Mar 5"
func (w Window) Label(t time.Time) string {
	t = t.In(w.Location)
	if w.Unit == Month {
		return t.Format("Jan 06")
	}
	return t.Format("Jan 2")
}

// Build returns exactly w.Count buckets ending at now's period, ascending by SortKey
// events outside [w.Start(now), now] are ignored, duplicates count independently
// Build panics when w is invalid
func Build(events []time.Time, w Window, now time.Time) []Bucket {
	if err := w.Validate(); err != nil {
		panic(err)
	}

	start := w.Start(now)
	counts := make(map[period]int, w.Count)
	for _, e := range events {
		if e.Before(start) || e.After(now) {
			continue
		}
		counts[w.periodOf(e)]++
	}

	// walking forward from start keeps the output ordered and contiguous
	out := make([]Bucket, 0, w.Count)
	for i := 0; i < w.Count; i++ {
		p := w.periodOf(w.advance(start, i))
		ps := w.periodStart(p)
		out = append(out, Bucket{
			Label:   w.Label(ps),
			Value:   counts[p],
			SortKey: ps,
		})
	}
	return out
}

// Sum returns the total of all bucket values
func Sum(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Value
	}
	return n
}
