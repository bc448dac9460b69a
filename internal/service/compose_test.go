package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/salesops-hq/backend/internal/models"
)

func composeFixture() []models.RawActivity {
	return []models.RawActivity{
		{
			"referenceid":  "tsa-1",
			"manager":      "mgr-1",
			"tsm":          "tsm-1",
			"source":       "Outbound - Touchbase",
			"typeactivity": "Outbound calls",
			"callstatus":   "Successful",
			"date_created": "2024-03-15T09:00:00Z",
			"startdate":    "2024-03-15T09:00:00Z",
			"enddate":      "2024-03-15T09:05:00Z",
		},
		{
			"referenceid":     "tsa-1",
			"manager":         "mgr-1",
			"tsm":             "tsm-1",
			"activitystatus":  "Quote-Done",
			"quotationamount": "1000",
			"date_created":    "2024-03-15T10:00:00Z",
		},
		{
			"referenceid":    "tsa-2",
			"manager":        "mgr-2",
			"tsm":            "tsm-2",
			"activitystatus": "Delivered",
			"actualsales":    "750",
			"date_created":   "2024-03-15T11:00:00Z",
		},
	}
}

func TestComposeIdempotent(t *testing.T) {
	viewer := models.Viewer{Role: models.RoleSuperAdmin, ReferenceID: "admin"}
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	w, _ := PresetWindow(PresetToday, now)

	first := Compose(composeFixture(), viewer, w, now)
	// A fresh copy with the same contents must produce a deep-equal report.
	second := Compose(composeFixture(), viewer, w, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("compose is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestComposeScopesBeforeAggregating(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	w, _ := PresetWindow(PresetToday, now)

	report := Compose(composeFixture(), models.Viewer{Role: models.RoleTSA, ReferenceID: "tsa-1"}, w, now)
	if report.VisibleRecords != 2 {
		t.Fatalf("expected 2 visible records, got %d", report.VisibleRecords)
	}
	// tsa-2's delivery must not leak into tsa-1's funnel.
	if report.Funnel.Delivered.Count != 0 {
		t.Fatalf("foreign delivery leaked into scoped funnel: %+v", report.Funnel.Delivered)
	}
	if report.Funnel.Quote.Count != 1 {
		t.Fatalf("expected own quote visible, got %+v", report.Funnel.Quote)
	}
}

func TestComposeFullPipeline(t *testing.T) {
	viewer := models.Viewer{Role: models.RoleSuperAdmin, ReferenceID: "admin"}
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	w, _ := PresetWindow(PresetToday, now)

	report := Compose(composeFixture(), viewer, w, now)
	if report.Funnel.Touchbase.Count != 1 || report.Funnel.Quote.Count != 1 || report.Funnel.Delivered.Count != 1 {
		t.Fatalf("unexpected funnel %+v", report.Funnel)
	}
	if report.CallProductivity.Window.Successful != 1 {
		t.Fatalf("unexpected productivity %+v", report.CallProductivity.Window)
	}
	if report.TimeMotion.OutboundSeconds != 300 {
		t.Fatalf("expected 300s outbound time, got %d", report.TimeMotion.OutboundSeconds)
	}
}

func TestComposerMemoMatchesDirectCompose(t *testing.T) {
	viewer := models.Viewer{Role: models.RoleSuperAdmin, ReferenceID: "admin"}
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	w, _ := PresetWindow(PresetToday, now)

	var composer Composer
	memoized := composer.ComposeVersioned("v1", composeFixture(), viewer, w, now)
	again := composer.ComposeVersioned("v1", composeFixture(), viewer, w, now)
	direct := Compose(composeFixture(), viewer, w, now)

	if !reflect.DeepEqual(memoized, direct) || !reflect.DeepEqual(again, direct) {
		t.Fatalf("memoized report diverges from direct compose")
	}

	// A new snapshot version invalidates the memo.
	fresh := composer.ComposeVersioned("v2", composeFixture()[:1], viewer, w, now)
	if fresh.VisibleRecords != 1 {
		t.Fatalf("expected recompute on version change, got %+v", fresh)
	}
}
