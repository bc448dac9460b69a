package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesops-hq/backend/internal/models"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", value, err)
	}
	return &parsed
}

func touchbaseCall(owner, callStatus string, created *time.Time) models.Activity {
	return models.Activity{
		OwnerID:      owner,
		Source:       "Outbound - Touchbase",
		ActivityType: "Outbound calls",
		CallStatus:   callStatus,
		CreatedAt:    created,
	}
}
