package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/salesops-hq/backend/internal/models"
	"github.com/salesops-hq/backend/internal/utils"
)

// Report is the full dashboard payload for one (records, viewer, window)
// computation: plain data, ready for serialization.
type Report struct {
	Funnel           FunnelMetrics    `json:"funnel"`
	CallProductivity CallProductivity `json:"call_productivity"`
	TimeMotion       TimeMotion       `json:"time_motion"`
	VisibleRecords   int              `json:"visible_records"`
}

// Compose runs the whole pipeline over a raw snapshot: normalize, scope to
// the viewer, classify, then window-filter per metric. Scope runs before
// everything else so no aggregate can leak records from a foreign hierarchy.
// Pure function of its arguments; the same inputs always produce the same
// report.
func Compose(raw []models.RawActivity, viewer models.Viewer, window models.DateWindow, now time.Time) Report {
	scoped := VisibleTo(viewer, NormalizeAll(raw))
	classified := ClassifyAll(scoped)

	return Report{
		Funnel:           AggregateFunnel(FilterWindow(window, classified, SelectCreated)),
		CallProductivity: CalculateProductivity(classified, window, now),
		TimeMotion:       AnalyzeTimeMotion(FilterWindow(window, classified, SelectInterval)),
		VisibleRecords:   len(scoped),
	}
}

// Composer memoizes Compose per snapshot version. Recomputation on every
// filter change is cheap for snapshots in the low thousands, so the memo is
// an optimization only; it never changes observable output. The cache is
// dropped whenever the snapshot version moves.
type Composer struct {
	mu      sync.Mutex
	version string
	memo    map[uint64]Report
}

// ComposeVersioned returns the memoized report for the key, computing it on
// a miss. The day of now is part of the key because month-to-date metrics
// depend on the calendar date only.
func (c *Composer) ComposeVersioned(version string, raw []models.RawActivity, viewer models.Viewer, window models.DateWindow, now time.Time) Report {
	key := memoKey(version, viewer, window, now)

	c.mu.Lock()
	if c.memo == nil || c.version != version {
		c.version = version
		c.memo = map[uint64]Report{}
	}
	if report, ok := c.memo[key]; ok {
		c.mu.Unlock()
		return report
	}
	c.mu.Unlock()

	report := Compose(raw, viewer, window, now)

	c.mu.Lock()
	c.memo[key] = report
	c.mu.Unlock()
	return report
}

func memoKey(version string, viewer models.Viewer, window models.DateWindow, now time.Time) uint64 {
	return utils.HashStringToUint64(fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		version, viewer.Role, viewer.ReferenceID,
		formatBound(window.Start), formatBound(window.End),
		now.Format("2006-01-02")))
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
