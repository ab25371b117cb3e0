package normalize

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Phone parses a raw sheet cell into (countryCode, nationalNumber).
// Lead exports prefix numbers with "p:"; that prefix is stripped before
// parsing. A parseable, valid number yields the calling code in
// international-prefix form ("+91") and the national significant
// digits. Anything else degrades to an empty country code with the raw
// input untouched, which callers must accept as a valid identity
// component.
func Phone(raw string) (countryCode, number string) {
	if raw == "" {
		return "", ""
	}

	cleaned := strings.TrimSpace(strings.TrimPrefix(raw, "p:"))

	// "ZZ" means no default region: only numbers carrying an explicit
	// international prefix parse successfully.
	parsed, err := phonenumbers.Parse(cleaned, "ZZ")
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return "", raw
	}

	return fmt.Sprintf("+%d", parsed.GetCountryCode()), phonenumbers.GetNationalSignificantNumber(parsed)
}
