package service

import (
	"time"

	"github.com/salesops-hq/backend/internal/models"
)

// TimeSelector picks which timestamp span of a record is compared against a
// window. Point-in-time fields return the same timestamp twice.
type TimeSelector func(ClassifiedActivity) (*time.Time, *time.Time)

// SelectCreated compares records by their creation timestamp.
func SelectCreated(c ClassifiedActivity) (*time.Time, *time.Time) {
	return c.CreatedAt, c.CreatedAt
}

// SelectInterval compares records by their start/end activity interval.
func SelectInterval(c ClassifiedActivity) (*time.Time, *time.Time) {
	return c.StartDate, c.EndDate
}

// FilterWindow keeps records whose selected span overlaps the window at all,
// inclusive on both ends. Overlap rather than containment: an activity that
// straddles a window boundary was still happening during the window. Records
// with a nil selected timestamp are excluded.
func FilterWindow(window models.DateWindow, records []ClassifiedActivity, sel TimeSelector) []ClassifiedActivity {
	out := make([]ClassifiedActivity, 0, len(records))
	for _, r := range records {
		from, to := sel(r)
		if from == nil || to == nil {
			continue
		}
		if window.Start != nil && to.Before(*window.Start) {
			continue
		}
		if window.End != nil && from.After(*window.End) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Preset names accepted by the metrics endpoints.
const (
	PresetToday      = "today"
	PresetYesterday  = "yesterday"
	PresetLast7Days  = "last7days"
	PresetLast30Days = "last30days"
	PresetThisMonth  = "thismonth"
	PresetLastMonth  = "lastmonth"
)

// PresetWindow materializes a named window relative to now. The second
// return reports whether the name is known.
func PresetWindow(name string, now time.Time) (models.DateWindow, bool) {
	day := startOfDay(now)
	switch name {
	case PresetToday:
		return spanWindow(day, endOfDay(now)), true
	case PresetYesterday:
		y := day.AddDate(0, 0, -1)
		return spanWindow(y, endOfDay(y)), true
	case PresetLast7Days:
		return spanWindow(day.AddDate(0, 0, -6), endOfDay(now)), true
	case PresetLast30Days:
		return spanWindow(day.AddDate(0, 0, -29), endOfDay(now)), true
	case PresetThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return spanWindow(first, endOfDay(last)), true
	case PresetLastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		last := first.AddDate(0, 1, -1)
		return spanWindow(first, endOfDay(last)), true
	default:
		return models.DateWindow{}, false
	}
}

// MonthToDateWindow spans the first of the current calendar month through
// the end of today.
func MonthToDateWindow(now time.Time) models.DateWindow {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return spanWindow(first, endOfDay(now))
}

func spanWindow(start, end time.Time) models.DateWindow {
	return models.DateWindow{Start: &start, End: &end}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
