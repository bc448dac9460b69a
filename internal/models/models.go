package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawActivity is one activity row exactly as the upstream feed delivers it.
// Field types are unreliable: amounts arrive as strings, dates in mixed
// formats, and any key may be missing, null, or empty.
type RawActivity map[string]any

// Activity is the canonical shape every computation works with. Amounts that
// failed to parse are zero, timestamps that failed to parse are nil.
type Activity struct {
	ID            string `json:"id"`
	CompanyName   string `json:"companyname"`
	ContactPerson string `json:"contactperson"`
	ContactNumber string `json:"contactnumber"`

	OwnerID   string `json:"referenceid"`
	ManagerID string `json:"manager"`
	TSMID     string `json:"tsm"`

	Source         string `json:"source"`
	ActivityType   string `json:"typeactivity"`
	CallStatus     string `json:"callstatus"`
	ActivityStatus string `json:"activitystatus"`

	QuotationNumber string          `json:"quotationnumber"`
	QuotationAmount decimal.Decimal `json:"quotationamount"`
	SONumber        string          `json:"sonumber"`
	SOAmount        decimal.Decimal `json:"soamount"`
	ActualSales     decimal.Decimal `json:"actualsales"`

	CreatedAt *time.Time `json:"date_created"`
	StartDate *time.Time `json:"startdate"`
	EndDate   *time.Time `json:"enddate"`
}

const (
	RoleSuperAdmin    = "Super Admin"
	RoleSpecialAccess = "Special Access"
	RoleManager       = "Manager"
	RoleTSM           = "Territory Sales Manager"
	RoleTSA           = "Territory Sales Associate"
)

// Viewer is the authorization context a metrics request runs under.
type Viewer struct {
	Role        string `json:"role"`
	ReferenceID string `json:"reference_id"`
}

// DateWindow bounds a computation, inclusive on both ends. A nil bound means
// unbounded on that side.
type DateWindow struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}
