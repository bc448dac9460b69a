package service

import (
	"math"
	"testing"

	"github.com/salesops-hq/backend/internal/models"
)

func TestAggregateFunnelScenario(t *testing.T) {
	records := ClassifyAll([]models.Activity{
		touchbaseCall("tsa-1", "Successful", nil),
		{ActivityStatus: "Quote-Done", QuotationAmount: mustDecimal(t, "1000")},
		{ActivityStatus: "Delivered", ActualSales: mustDecimal(t, "1000")},
	})

	m := AggregateFunnel(records)
	if m.Touchbase.Count != 1 {
		t.Fatalf("expected 1 touchbase call, got %d", m.Touchbase.Count)
	}
	if m.Quote.Count != 1 || !m.Quote.Amount.Equal(mustDecimal(t, "1000")) {
		t.Fatalf("unexpected quote metric %+v", m.Quote)
	}
	if !m.Delivered.Amount.Equal(mustDecimal(t, "1000")) {
		t.Fatalf("unexpected delivered amount %s", m.Delivered.Amount)
	}
	if m.QuoteToDeliveredPercent != 100 {
		t.Fatalf("expected 100%% quote-to-delivered, got %f", m.QuoteToDeliveredPercent)
	}
	if m.CallToQuotePercent != 100 {
		t.Fatalf("expected 100%% call-to-quote, got %f", m.CallToQuotePercent)
	}
}

func TestAggregateFunnelZeroDenominators(t *testing.T) {
	m := AggregateFunnel(nil)
	for name, pct := range map[string]float64{
		"call_to_quote":      m.CallToQuotePercent,
		"quote_to_delivered": m.QuoteToDeliveredPercent,
	} {
		if pct != 0 {
			t.Fatalf("%s: expected exactly 0, got %f", name, pct)
		}
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			t.Fatalf("%s: expected finite value, got %f", name, pct)
		}
	}
}

func TestAggregateFunnelQuoteToSO(t *testing.T) {
	records := ClassifyAll([]models.Activity{
		{ActivityStatus: "Quote-Done", QuotationAmount: mustDecimal(t, "5000")},
		{ActivityStatus: "Quote-Done", QuotationAmount: mustDecimal(t, "3000")},
		{ActivityStatus: "SO-Done", SOAmount: mustDecimal(t, "2500")},
	})

	m := AggregateFunnel(records)
	if m.QuoteToSOCount != 1 {
		t.Fatalf("expected 1 SO conversion, got %d", m.QuoteToSOCount)
	}
	if !m.QuoteToSOAmount.Equal(mustDecimal(t, "2500")) {
		t.Fatalf("expected 2500 SO amount, got %s", m.QuoteToSOAmount)
	}
}

func TestAggregateFunnelDecimalAccumulation(t *testing.T) {
	// 0.1 summed ten times is exactly 1 under decimal accumulation.
	var activities []models.Activity
	for i := 0; i < 10; i++ {
		activities = append(activities, models.Activity{
			ActivityStatus:  "Quote-Done",
			QuotationAmount: mustDecimal(t, "0.1"),
		})
	}
	m := AggregateFunnel(ClassifyAll(activities))
	if !m.Quote.Amount.Equal(mustDecimal(t, "1")) {
		t.Fatalf("expected exact sum 1, got %s", m.Quote.Amount)
	}
}

func TestAggregateFunnelNegativeAmountsFlowThrough(t *testing.T) {
	records := ClassifyAll([]models.Activity{
		{ActivityStatus: "Quote-Done", QuotationAmount: mustDecimal(t, "1000")},
		{ActivityStatus: "Quote-Done", QuotationAmount: mustDecimal(t, "-1000")},
	})
	m := AggregateFunnel(records)
	if !m.Quote.Amount.IsZero() {
		t.Fatalf("expected compensating entries to net to zero, got %s", m.Quote.Amount)
	}
	if m.QuoteToDeliveredPercent != 0 {
		t.Fatalf("zero quote total must guard the percentage, got %f", m.QuoteToDeliveredPercent)
	}
}
