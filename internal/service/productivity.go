package service

import (
	"time"

	"github.com/salesops-hq/backend/internal/models"
)

// DailyCallQuota is the fixed per-working-day outbound call target.
const DailyCallQuota = 35

// OutcomeCounts breaks call volume down by resolved outcome and direction.
// Outbound is successful + unsuccessful only: a touchbase call whose outcome
// was never resolved stays out of the outbound total. That undercount is the
// upstream policy and is preserved as observed.
type OutcomeCounts struct {
	Successful   int `json:"successful"`
	Unsuccessful int `json:"unsuccessful"`
	Unclassified int `json:"unclassified"`
	Outbound     int `json:"outbound"`
	Inbound      int `json:"inbound"`
}

// CallProductivity reports call volume for the selected window and for the
// calendar month containing now, against a working-day quota.
type CallProductivity struct {
	Window      OutcomeCounts `json:"window"`
	MonthToDate OutcomeCounts `json:"month_to_date"`

	WorkingDays        int     `json:"working_days"`
	Target             int     `json:"target"`
	AchievementPercent float64 `json:"achievement_percent"`
}

// CalculateProductivity counts call outcomes inside the window and month to
// date, then scores the window's outbound volume against the working-day
// target. The records must already be scope-filtered and classified but not
// date-filtered; both windows are applied here against creation time.
func CalculateProductivity(records []ClassifiedActivity, window models.DateWindow, now time.Time) CallProductivity {
	p := CallProductivity{
		Window:      countOutcomes(FilterWindow(window, records, SelectCreated)),
		MonthToDate: countOutcomes(FilterWindow(MonthToDateWindow(now), records, SelectCreated)),
	}

	if window.Start != nil && window.End != nil {
		p.WorkingDays = WorkingDays(*window.Start, *window.End)
	}
	p.Target = DailyCallQuota * p.WorkingDays
	p.AchievementPercent = ratioPercent(p.Window.Outbound, p.Target)

	return p
}

func countOutcomes(records []ClassifiedActivity) OutcomeCounts {
	var c OutcomeCounts
	for _, r := range records {
		if r.HasStage(StageTouchbase) {
			switch r.Outcome {
			case OutcomeSuccessful:
				c.Successful++
			case OutcomeUnsuccessful:
				c.Unsuccessful++
			default:
				c.Unclassified++
			}
		}
		if r.Inbound {
			c.Inbound++
		}
	}
	c.Outbound = c.Successful + c.Unsuccessful
	return c
}

// WorkingDays counts the calendar days from start through end inclusive,
// excluding Sundays.
func WorkingDays(start, end time.Time) int {
	day := startOfDay(start)
	last := startOfDay(end)
	count := 0
	for !day.After(last) {
		if day.Weekday() != time.Sunday {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}
