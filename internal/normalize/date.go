package normalize

import "strings"

var monthNumbers = map[string]string{
	"january":   "01",
	"february":  "02",
	"march":     "03",
	"april":     "04",
	"may":       "05",
	"june":      "06",
	"july":      "07",
	"august":    "08",
	"september": "09",
	"october":   "10",
	"november":  "11",
	"december":  "12",
}

// Date converts the sheet's underscore-delimited "day_monthName_year"
// token (e.g. "5_march_2025") into "YYYY-MM-DD". Malformed input (wrong
// token count, empty parts, a day with no digits) yields "" and the
// caller is expected to skip the row. An unrecognized month name maps
// to "01"; the upstream export is known to misspell month names.
func Date(raw string) string {
	if raw == "" {
		return ""
	}

	parts := strings.Split(raw, "_")
	if len(parts) != 3 {
		return ""
	}
	day, month, year := parts[0], parts[1], parts[2]
	if day == "" || month == "" || year == "" {
		return ""
	}

	m, ok := monthNumbers[strings.ToLower(month)]
	if !ok {
		m = "01"
	}

	d := stripNonDigits(day)
	if d == "" {
		return ""
	}
	if len(d) == 1 {
		d = "0" + d
	}

	return year + "-" + m + "-" + d
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
