package service

import (
	"github.com/salesops-hq/backend/internal/models"
)

// Stage is a funnel stage tag. The set is closed: downstream consumers match
// on these constants instead of re-testing the free-text feed values, so a
// typo in the feed produces an untagged record rather than a phantom stage.
type Stage string

const (
	StageTouchbase  Stage = "touchbase-call"
	StageQuote      Stage = "quote"
	StageSalesOrder Stage = "sales-order"
	StageDelivered  Stage = "delivered"
)

// Outcome is the resolved result of a touchbase call.
type Outcome string

const (
	OutcomeSuccessful   Outcome = "successful"
	OutcomeUnsuccessful Outcome = "unsuccessful"
	OutcomeUnclassified Outcome = "unclassified"
)

// Feed literals the classifier matches against. Comparison is case-sensitive
// on the trimmed canonical value.
const (
	sourceTouchbase   = "Outbound - Touchbase"
	typeOutboundCalls = "Outbound calls"
	typeInboundCall   = "Inbound Call"
	statusQuoteDone   = "Quote-Done"
	statusSODone      = "SO-Done"
	statusDelivered   = "Delivered"
	callSuccessful    = "Successful"
	callUnsuccessful  = "Unsuccessful"
)

// ClassifiedActivity is an activity annotated with its funnel stage tags and
// call outcome. A record may carry zero stages and still count toward call
// volume, or carry several stages at once.
type ClassifiedActivity struct {
	models.Activity

	Stages  []Stage
	Outcome Outcome
	Inbound bool
}

// HasStage reports whether the record carries the given stage tag.
func (c ClassifiedActivity) HasStage(s Stage) bool {
	for _, have := range c.Stages {
		if have == s {
			return true
		}
	}
	return false
}

// Classify evaluates the stage and outcome rules against one activity. The
// stage rules are independent of each other; the outcome rules apply only to
// touchbase calls and are mutually exclusive.
func Classify(a models.Activity) ClassifiedActivity {
	c := ClassifiedActivity{Activity: a, Outcome: OutcomeUnclassified}

	if a.Source == sourceTouchbase && a.ActivityType == typeOutboundCalls {
		c.Stages = append(c.Stages, StageTouchbase)
		switch a.CallStatus {
		case callSuccessful:
			c.Outcome = OutcomeSuccessful
		case callUnsuccessful:
			c.Outcome = OutcomeUnsuccessful
		}
	}
	if a.ActivityStatus == statusQuoteDone {
		c.Stages = append(c.Stages, StageQuote)
	}
	if a.ActivityStatus == statusSODone {
		c.Stages = append(c.Stages, StageSalesOrder)
	}
	if a.ActivityStatus == statusDelivered && a.ActualSales.IsPositive() {
		c.Stages = append(c.Stages, StageDelivered)
	}

	// Inbound tagging is independent of the funnel: it feeds volume and
	// time-motion counts only.
	c.Inbound = a.ActivityType == typeInboundCall

	return c
}

// ClassifyAll tags every activity in the slice.
func ClassifyAll(activities []models.Activity) []ClassifiedActivity {
	out := make([]ClassifiedActivity, 0, len(activities))
	for _, a := range activities {
		out = append(out, Classify(a))
	}
	return out
}
