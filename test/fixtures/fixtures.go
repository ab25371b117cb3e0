package fixtures

import (
	"github.com/funstay/leadsync/internal/model"
)

// SheetHeader is the first row of every lead export.
var SheetHeader = []string{
	"id", "created_time", "ad_id", "ad_name", "adset_id", "adset_name",
	"campaign_id", "campaign_name", "form_id", "form_name", "is_organic", "platform",
	"q1", "q2", "q3", "q4", "q5", "q6", "q7",
	"full_name", "phone_number", "email", "city", "phone_number_verified", "lead_status",
}

// SheetRow builds a raw export row with the given created time, name,
// phone and platform; the remaining cells get stable filler values.
func SheetRow(createdTime, name, phone, platform string) []string {
	return []string{
		"lead-id-1",
		createdTime,
		"ad-1", "Summer Ad",
		"adset-1", "Ad Set A",
		"camp-1", "Bali Summer",
		"form-1", "Instant Form",
		"false", platform,
		"Yes", "March 2025", "Within a month", "No", "Morning", "English", "2 Adults",
		name, phone,
		"lead@example.com", "Mumbai", "verified", "open",
	}
}

// BlankRow mimics the padding rows the export leaves below the data.
func BlankRow() []string {
	return []string{""}
}

func NewTestCustomer(phone, countryCode string) *model.Customer {
	return &model.Customer{
		Name:        "test customer",
		Email:       "test@example.com",
		PhoneNumber: phone,
		CountryCode: countryCode,
		Status:      model.CustomerStatusNew,
	}
}

func NewTestLead(leadDate, phone, countryCode string) *model.Lead {
	return &model.Lead{
		LeadDate:      leadDate,
		Name:          "test lead",
		Email:         "lead@example.com",
		PhoneNumber:     phone,
		CountryCode:     countryCode,
		Sources:         "fb",
		SecondarySource: "Facebook (Paid)",
		PrimarySource:   "Meta",
		LeadType:        "Bali Summer",
		Destination:     "Bali Summer",
	}
}
