package service

import (
	"testing"
	"time"

	"github.com/salesops-hq/backend/internal/models"
)

func TestWorkingDaysExcludesSundays(t *testing.T) {
	// 2024-03-03 is a Sunday, 2024-03-09 the following Saturday.
	start := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	if got := WorkingDays(start, end); got != 6 {
		t.Fatalf("expected 6 working days, got %d", got)
	}

	sunday := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	if got := WorkingDays(sunday, sunday); got != 0 {
		t.Fatalf("expected 0 working days on a lone Sunday, got %d", got)
	}
}

func TestCalculateProductivityOutboundIsDerived(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	w, _ := PresetWindow(PresetToday, now)
	created := ts(t, "2024-03-15T09:00:00Z")

	records := ClassifyAll([]models.Activity{
		touchbaseCall("tsa-1", "Successful", created),
		touchbaseCall("tsa-1", "Successful", created),
		touchbaseCall("tsa-1", "Unsuccessful", created),
		// Outcome never resolved: counted as unclassified, excluded from
		// the outbound total by policy.
		touchbaseCall("tsa-1", "Ringing", created),
	})

	p := CalculateProductivity(records, w, now)
	if p.Window.Successful != 2 || p.Window.Unsuccessful != 1 || p.Window.Unclassified != 1 {
		t.Fatalf("unexpected outcome counts %+v", p.Window)
	}
	if p.Window.Outbound != 3 {
		t.Fatalf("expected outbound = successful + unsuccessful = 3, got %d", p.Window.Outbound)
	}
}

func TestCalculateProductivityTargetAndAchievement(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	w, _ := PresetWindow(PresetToday, now) // a Friday: one working day

	var activities []models.Activity
	for i := 0; i < 7; i++ {
		activities = append(activities, touchbaseCall("tsa-1", "Successful", ts(t, "2024-03-15T09:00:00Z")))
	}

	p := CalculateProductivity(ClassifyAll(activities), w, now)
	if p.WorkingDays != 1 {
		t.Fatalf("expected 1 working day, got %d", p.WorkingDays)
	}
	if p.Target != DailyCallQuota {
		t.Fatalf("expected target %d, got %d", DailyCallQuota, p.Target)
	}
	if p.AchievementPercent != 20 {
		t.Fatalf("expected 20%% achievement, got %f", p.AchievementPercent)
	}
}

func TestCalculateProductivityZeroTargetGuard(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	p := CalculateProductivity(nil, models.DateWindow{}, now)
	if p.WorkingDays != 0 || p.Target != 0 {
		t.Fatalf("unbounded window must have no quota, got %+v", p)
	}
	if p.AchievementPercent != 0 {
		t.Fatalf("expected 0 achievement on zero target, got %f", p.AchievementPercent)
	}
}

func TestCalculateProductivityMonthToDate(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	w, _ := PresetWindow(PresetToday, now)

	records := ClassifyAll([]models.Activity{
		touchbaseCall("tsa-1", "Successful", ts(t, "2024-03-15T09:00:00Z")),
		touchbaseCall("tsa-1", "Successful", ts(t, "2024-03-02T09:00:00Z")),
		// February record: outside the calendar month of now.
		touchbaseCall("tsa-1", "Successful", ts(t, "2024-02-28T09:00:00Z")),
		{OwnerID: "tsa-1", ActivityType: "Inbound Call", CreatedAt: ts(t, "2024-03-10T09:00:00Z")},
	})

	p := CalculateProductivity(records, w, now)
	if p.Window.Successful != 1 {
		t.Fatalf("expected 1 successful in window, got %d", p.Window.Successful)
	}
	if p.MonthToDate.Successful != 2 {
		t.Fatalf("expected 2 successful month-to-date, got %d", p.MonthToDate.Successful)
	}
	if p.MonthToDate.Inbound != 1 {
		t.Fatalf("expected 1 inbound month-to-date, got %d", p.MonthToDate.Inbound)
	}
}
