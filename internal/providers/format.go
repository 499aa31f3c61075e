package providers

import (
	"fmt"
	"regexp"
	"time"
)

// Providers disagree on time and duration encodings; everything funnels
// into the shared HH:MM local-time and "Nh Mm" duration representations.

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var (
	clockPattern       = regexp.MustCompile(`\d{1,2}:\d{2}`)
	isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)
)

// formatLocalTime extracts the HH:MM clock time from a provider timestamp.
// Values outside the known layouts fall back to the first clock-like
// substring, keeping the provider's own hour padding, then to the raw
// input.
func formatLocalTime(s string) string {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	if m := clockPattern.FindString(s); m != "" {
		return m
	}
	return s
}

// formatMinutes renders a raw minute count as "Nh Mm".
func formatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// formatISODuration renders an ISO-8601 duration ("PT4H30M") as "4h 30m".
// Inputs that do not look like durations pass through unchanged.
func formatISODuration(iso string) string {
	m := isoDurationPattern.FindStringSubmatch(iso)
	if m == nil || (m[1] == "" && m[2] == "") {
		return iso
	}
	hours := m[1]
	if hours == "" {
		hours = "0"
	}
	minutes := m[2]
	if minutes == "" {
		minutes = "0"
	}
	return hours + "h " + minutes + "m"
}

// segmentStops derives the stop count from the outbound leg count, floored
// at zero for empty itineraries.
func segmentStops(segments int) int {
	if segments <= 1 {
		return 0
	}
	return segments - 1
}
