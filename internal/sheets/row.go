package sheets

import (
	"errors"
	"fmt"

	"github.com/funstay/leadsync/internal/normalize"
)

// The export writes a fixed column layout; meaning is positional. The
// offsets below are the schema contract with the sheet (0-based).
const (
	colCreatedTime   = 1  // B
	colAdCopy        = 3  // D
	colAdSet         = 5  // F
	colCampaign      = 7  // H
	colFormName      = 9  // J
	colPlatform      = 11 // L
	colSurveyFirst   = 12 // M..S
	colName          = 19 // T
	colPhone         = 20 // U
	colEmail         = 21 // V
	colCity          = 22 // W
	colPhoneVerified = 23 // X
	colLeadStatus    = 24 // Y

	// A row must at least reach the phone column to carry an identity.
	// The values API trims trailing empty cells, so the optional tail
	// (email through lead_status) may legitimately be absent.
	minColumns = colPhone + 1
	numColumns = colLeadStatus + 1
)

var surveyLabels = [...]string{
	"Are you interested in this trip?",
	"When are you planning to travel?",
	"How soon do you want to book your holiday?",
	"Do you need assistance with flight bookings?",
	"Best time to get in touch with you?",
	"Preferred language?",
	"Travelers (Adults & Kids)?",
}

// ErrRowShape marks rows too short to carry the identity columns.
var ErrRowShape = errors.New("row shape mismatch")

// LeadRow is one sheet row with every positional cell lifted into a
// named field. Parsing fails fast on shape mismatch instead of
// silently misreading columns.
type LeadRow struct {
	CreatedTime   string
	AdCopy        string
	AdSet         string
	Campaign      string
	FormName      string
	Platform      string
	SurveyAnswers []normalize.Answer
	Name          string
	Phone         string
	Email         string
	City          string
	PhoneVerified string
	LeadStatus    string
}

// ParseRow validates the shape of a raw cell row and extracts the named
// fields. Rows narrower than minColumns return ErrRowShape; absent tail
// columns read as "".
func ParseRow(cells []string) (*LeadRow, error) {
	if len(cells) < minColumns {
		return nil, fmt.Errorf("%w: got %d columns, need at least %d", ErrRowShape, len(cells), minColumns)
	}

	padded := cells
	if len(padded) < numColumns {
		padded = make([]string, numColumns)
		copy(padded, cells)
	}

	answers := make([]normalize.Answer, len(surveyLabels))
	for i, label := range surveyLabels {
		answers[i] = normalize.Answer{Label: label, Value: padded[colSurveyFirst+i]}
	}

	return &LeadRow{
		CreatedTime:   padded[colCreatedTime],
		AdCopy:        padded[colAdCopy],
		AdSet:         padded[colAdSet],
		Campaign:      padded[colCampaign],
		FormName:      padded[colFormName],
		Platform:      padded[colPlatform],
		SurveyAnswers: answers,
		Name:          padded[colName],
		Phone:         padded[colPhone],
		Email:         padded[colEmail],
		City:          padded[colCity],
		PhoneVerified: padded[colPhoneVerified],
		LeadStatus:    padded[colLeadStatus],
	}, nil
}
