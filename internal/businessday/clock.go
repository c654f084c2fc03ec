// Package businessday computes the shop's trading-day window. The day does
// not roll over at midnight but at a fixed cutoff hour (staff cash out at
// 21:00 local time), so "today's" figures follow the closing routine.
//
// The shop runs on a constant UTC+7 offset. That is a business rule, not a
// timezone lookup: there is no DST and no tz database involved.
package businessday

import (
	"fmt"
	"time"
)

const (
	DefaultCutoffHour     = 21
	DefaultUTCOffsetHours = 7
)

type Clock struct {
	cutoffHour int
	loc        *time.Location
	now        func() time.Time
}

func New(cutoffHour, utcOffsetHours int) *Clock {
	return NewWithNow(cutoffHour, utcOffsetHours, time.Now)
}

// NewWithNow injects the wall clock, so tests can pin the current instant.
func NewWithNow(cutoffHour, utcOffsetHours int, now func() time.Time) *Clock {
	return &Clock{
		cutoffHour: cutoffHour,
		loc:        time.FixedZone("", utcOffsetHours*3600),
		now:        now,
	}
}

// LocalNow returns the present instant in the shop's fixed offset.
func (c *Clock) LocalNow() time.Time {
	return c.now().In(c.loc)
}

// Range returns the business-day window covering reference, in UTC. The
// start is the most recent cutoff at or before the reference: before the
// cutoff hour the day started yesterday, from the cutoff hour onward it
// started today. The end is exclusive and always start+24h.
func (c *Clock) Range(reference time.Time) (start, end time.Time) {
	local := reference.In(c.loc)
	start = time.Date(local.Year(), local.Month(), local.Day(), c.cutoffHour, 0, 0, 0, c.loc)
	if local.Hour() < c.cutoffHour {
		start = start.AddDate(0, 0, -1)
	}
	return start.UTC(), start.Add(24 * time.Hour).UTC()
}

func (c *Clock) Start() time.Time {
	start, _ := c.Range(c.now())
	return start
}

func (c *Clock) End() time.Time {
	_, end := c.Range(c.now())
	return end
}

// LabelFor names the business day covering reference as a YYYY-MM-DD date
// in shop time. From the cutoff hour onward the label is tomorrow's
// calendar date (that day has just begun trading); before it, today's.
func (c *Clock) LabelFor(reference time.Time) string {
	local := reference.In(c.loc)
	if local.Hour() >= c.cutoffHour {
		local = local.AddDate(0, 0, 1)
	}
	return local.Format("2006-01-02")
}

func (c *Clock) Label() string {
	return c.LabelFor(c.now())
}

// MillisUntilReset returns the milliseconds until the next cutoff. At the
// cutoff instant itself the counter has already rolled over to a full day.
func (c *Clock) MillisUntilReset() int64 {
	local := c.now().In(c.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), c.cutoffHour, 0, 0, 0, c.loc)
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local).Milliseconds()
}

// Countdown renders the time until reset, hours and minutes floored.
func (c *Clock) Countdown() string {
	ms := c.MillisUntilReset()
	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000

	if hours == 0 {
		return fmt.Sprintf("%d menit lagi", minutes)
	}
	return fmt.Sprintf("%d jam %d menit lagi", hours, minutes)
}

// RangeForLabel returns the window of the business day named label
// (YYYY-MM-DD in shop time): it opens at the cutoff on the previous
// calendar day and closes at the cutoff on the labeled day.
func (c *Clock) RangeForLabel(label string) (start, end time.Time, err error) {
	day, err := time.ParseInLocation("2006-01-02", label, c.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing business day label: %w", err)
	}

	start = time.Date(day.Year(), day.Month(), day.Day(), c.cutoffHour, 0, 0, 0, c.loc).AddDate(0, 0, -1)
	return start.UTC(), start.Add(24 * time.Hour).UTC(), nil
}

// Contains reports whether instant falls inside the current business day,
// start inclusive, end exclusive.
func (c *Clock) Contains(instant time.Time) bool {
	start, end := c.Range(c.now())
	return !instant.Before(start) && instant.Before(end)
}
