package normalize

import "strings"

// TrafficSource maps the short platform code from the export onto the
// (sources, secondarysource) pair stored on the lead. Known paid
// placements get a human-readable label; anything else passes through
// unchanged as both code and label.
func TrafficSource(platform string) (code, label string) {
	if platform == "" {
		return "", ""
	}

	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "fb":
		return "fb", "Facebook (Paid)"
	case "ig":
		return "ig", "Instagram (Paid)"
	}
	return platform, platform
}
