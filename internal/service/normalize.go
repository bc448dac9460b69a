package service

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesops-hq/backend/internal/models"
)

// Feed timestamp layouts, tried in order. The upstream mixes RFC3339 with
// bare SQL-style datetimes and plain dates.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// Normalize coerces one raw feed row into the canonical Activity shape.
// It is total: any field that cannot be coerced degrades to its zero value
// (amounts) or nil (timestamps) instead of failing the row.
func Normalize(raw models.RawActivity) models.Activity {
	return models.Activity{
		ID:            getString(raw, "id"),
		CompanyName:   getString(raw, "companyname"),
		ContactPerson: getString(raw, "contactperson"),
		ContactNumber: getString(raw, "contactnumber"),

		OwnerID:   getString(raw, "referenceid"),
		ManagerID: getString(raw, "manager"),
		TSMID:     getString(raw, "tsm"),

		Source:         getString(raw, "source"),
		ActivityType:   getString(raw, "typeactivity"),
		CallStatus:     getString(raw, "callstatus"),
		ActivityStatus: getString(raw, "activitystatus"),

		QuotationNumber: getString(raw, "quotationnumber"),
		QuotationAmount: getDecimal(raw, "quotationamount"),
		SONumber:        getString(raw, "sonumber"),
		SOAmount:        getDecimal(raw, "soamount"),
		ActualSales:     getDecimal(raw, "actualsales"),

		CreatedAt: getTime(raw, "date_created"),
		StartDate: getTime(raw, "startdate"),
		EndDate:   getTime(raw, "enddate"),
	}
}

// NormalizeAll maps a raw snapshot into canonical activities.
func NormalizeAll(raw []models.RawActivity) []models.Activity {
	out := make([]models.Activity, 0, len(raw))
	for _, r := range raw {
		out = append(out, Normalize(r))
	}
	return out
}

func getString(raw models.RawActivity, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// getDecimal resolves a monetary field. Missing, empty, or unparseable
// values become zero; negative values pass through unchanged because some
// flows zero out reopened stages with compensating entries.
func getDecimal(raw models.RawActivity, key string) decimal.Decimal {
	v, ok := raw[key]
	if !ok || v == nil {
		return decimal.Zero
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		s := strings.TrimSpace(n)
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func getTime(raw models.RawActivity, key string) *time.Time {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		u := t.UTC()
		return &u
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}
