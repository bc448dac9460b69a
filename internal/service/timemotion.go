package service

// Activity types whose elapsed time counts as inbound engagement.
var inboundActivityTypes = map[string]bool{
	"Inbound Call":  true,
	"Inbound Calls": true,
}

// Activity types tracked individually in the per-type duration map. Larger
// than the inbound list on purpose: a tracked type still lands in one of the
// three direction buckets as well.
var trackedActivityTypes = map[string]bool{
	"Inbound Call":                  true,
	"Inbound Calls":                 true,
	"Outbound calls":                true,
	"Quotation Preparation":         true,
	"Sales Order Preparation":       true,
	"Delivery Monitoring":           true,
	"Client Meeting":                true,
	"Email and Viber Replies":       true,
	"Admin Concerns":                true,
	"Accounts Receivable Follow-up": true,
	"Coordination With CS":          true,
}

// TimeMotion buckets elapsed activity time in seconds. ByActivity holds one
// key per tracked activity type that contributed at least one valid interval.
type TimeMotion struct {
	InboundSeconds  int64            `json:"inbound_seconds"`
	OutboundSeconds int64            `json:"outbound_seconds"`
	OthersSeconds   int64            `json:"others_seconds"`
	ByActivity      map[string]int64 `json:"by_activity"`
}

// AnalyzeTimeMotion accumulates per-record elapsed time into the three
// direction buckets and the per-type map in a single pass. Records without a
// valid interval, or whose end precedes their start, are dropped entirely
// rather than clamped.
func AnalyzeTimeMotion(records []ClassifiedActivity) TimeMotion {
	tm := TimeMotion{ByActivity: map[string]int64{}}

	for _, r := range records {
		if r.StartDate == nil || r.EndDate == nil {
			continue
		}
		if r.EndDate.Before(*r.StartDate) {
			continue
		}
		seconds := int64(r.EndDate.Sub(*r.StartDate).Seconds())

		switch {
		case inboundActivityTypes[r.ActivityType]:
			tm.InboundSeconds += seconds
		case r.ActivityType == typeOutboundCalls:
			tm.OutboundSeconds += seconds
		default:
			tm.OthersSeconds += seconds
		}

		if trackedActivityTypes[r.ActivityType] {
			tm.ByActivity[r.ActivityType] += seconds
		}
	}
	return tm
}
