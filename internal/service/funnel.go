package service

import (
	"github.com/shopspring/decimal"
)

// StageMetric is the count and monetary total of one funnel stage.
type StageMetric struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// FunnelMetrics is the full funnel rollup for one filtered record set.
// Percentages are full precision; rounding for display belongs to the
// presentation layer.
type FunnelMetrics struct {
	Touchbase  StageMetric `json:"touchbase"`
	Quote      StageMetric `json:"quote"`
	SalesOrder StageMetric `json:"sales_order"`
	Delivered  StageMetric `json:"delivered"`

	// Quotes raised per touchbase call, as a percentage of call count.
	CallToQuotePercent float64 `json:"call_to_quote_percent"`

	// Quote-to-SO conversion is reported directly in both quantity and
	// currency terms.
	QuoteToSOCount  int             `json:"quote_to_so_count"`
	QuoteToSOAmount decimal.Decimal `json:"quote_to_so_amount"`

	// Delivered revenue as a percentage of quoted value.
	QuoteToDeliveredPercent float64 `json:"quote_to_delivered_percent"`
}

// AggregateFunnel reduces classified records into per-stage totals and the
// conversion ratios between adjacent stages. Each stage sums its own amount
// field: quotation value for quotes, SO value for sales orders, actual sales
// for deliveries. Zero denominators yield exactly zero.
func AggregateFunnel(records []ClassifiedActivity) FunnelMetrics {
	m := FunnelMetrics{
		Touchbase:       StageMetric{Amount: decimal.Zero},
		Quote:           StageMetric{Amount: decimal.Zero},
		SalesOrder:      StageMetric{Amount: decimal.Zero},
		Delivered:       StageMetric{Amount: decimal.Zero},
		QuoteToSOAmount: decimal.Zero,
	}

	for _, r := range records {
		if r.HasStage(StageTouchbase) {
			m.Touchbase.Count++
		}
		if r.HasStage(StageQuote) {
			m.Quote.Count++
			m.Quote.Amount = m.Quote.Amount.Add(r.QuotationAmount)
		}
		if r.HasStage(StageSalesOrder) {
			m.SalesOrder.Count++
			m.SalesOrder.Amount = m.SalesOrder.Amount.Add(r.SOAmount)
		}
		if r.HasStage(StageDelivered) {
			m.Delivered.Count++
			m.Delivered.Amount = m.Delivered.Amount.Add(r.ActualSales)
		}
	}

	m.CallToQuotePercent = ratioPercent(m.Quote.Count, m.Touchbase.Count)
	m.QuoteToSOCount = m.SalesOrder.Count
	m.QuoteToSOAmount = m.SalesOrder.Amount
	m.QuoteToDeliveredPercent = amountPercent(m.Delivered.Amount, m.Quote.Amount)

	return m
}

// ratioPercent guards the zero denominator explicitly so a quiet float
// division can never surface NaN or Inf.
func ratioPercent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func amountPercent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	f, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Float64()
	return f
}
