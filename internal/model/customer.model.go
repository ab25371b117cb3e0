package model

// CustomerStatus is the lifecycle state of a customer identity. The
// pipeline only ever writes "new"; promotion to "existing" is owned by
// an external process.
type CustomerStatus string

const (
	CustomerStatusNew      CustomerStatus = "new"
	CustomerStatusExisting CustomerStatus = "existing"
)

// Customer is a deduplicated identity keyed by (phone_number,
// country_code). CountryCode is in international-prefix form ("+91") or
// empty when the raw phone was unparseable.
type Customer struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number"`
	CountryCode string         `json:"country_code"`
	Status      CustomerStatus `json:"customer_status"`
}

func (Customer) TableName() string { return "customers" }
