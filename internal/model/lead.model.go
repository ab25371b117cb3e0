package model

import "time"

// UpsertResult tells what the upserter did with a row.
type UpsertResult string

const (
	ResultInserted      UpsertResult = "inserted"
	ResultStatusUpdated UpsertResult = "status_updated"
	ResultSkipped       UpsertResult = "skipped"
)

// Lead is a single inbound inquiry record tied to one customer and one
// acquisition campaign. The dedup key is (lead_date, phone_number,
// country_code); at most one row may exist per key.
type Lead struct {
	ID                  int64          `json:"leadid"`
	LeadDate            string         `json:"lead_date"`
	AdCopy              string         `json:"ad_copy"`
	AdSet               string         `json:"ad_set"`
	LeadType            string         `json:"lead_type"`
	Sources             string         `json:"sources"`
	Name                string         `json:"name"`
	Email               string         `json:"email"`
	PhoneNumber         string         `json:"phone_number"`
	CountryCode         string         `json:"country_code"`
	OriginCity          string         `json:"origincity"`
	Destination         string         `json:"destination"`
	PrimarySource       string         `json:"primarySource"`
	SecondarySource     string         `json:"secondarysource"`
	CustomerID          int64          `json:"customerid"`
	CustomerStatus      CustomerStatus `json:"customer_status"`
	Description         string         `json:"description"`
	PhoneNumberVerified string         `json:"phone_number_verified"`
	LeadStatus          string         `json:"lead_status"`
	CreatedAt           time.Time      `json:"created_at"`
}

func (Lead) TableName() string { return "addleads" }

// LeadFilter controls List queries on the query surface.
type LeadFilter struct {
	PhoneNumber *string
	CountryCode *string
	LeadDate    *string
	Limit       int  // default 50
	Offset      int
	Desc        bool // order by created_at
}
