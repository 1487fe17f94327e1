package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	datePattern = regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)` +
		`\s+((?:\d{1,2})(?:st|nd|rd|th)?|[iI]st)(?:,\s*|\s+)(\d{4})`)
	timePattern    = regexp.MustCompile(`\b\d{1,2}[:.]\d{2}\b`)
	percentPattern = regexp.MustCompile(`(\d{1,3})\s*%`)
	kwhPattern     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*kWh\b`)
	kwPattern      = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*kW\b`)
	costPattern    = regexp.MustCompile(`\$[\d,.]+`)
	milesPattern   = regexp.MustCompile(`\((?:\+)?(\d+)\s*mi\)`)
	hoursPattern   = regexp.MustCompile(`(?i)(\d+)\s*h(?:ou)?rs?\b`)
	minutesPattern = regexp.MustCompile(`(?i)(\d+)\s*min`)

	istToken     = regexp.MustCompile(`\b[iI]st\b`)
	ordinalToken = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	spaceRun     = regexp.MustCompile(`\s+`)
	dayYearGap   = regexp.MustCompile(`(\d{1,2})\s+(\d{4})`)
)

// FindDate returns the first textual date in s ("December 16th, 2025" and the
// like), normalized to ISO YYYY-MM-DD, or empty.
func FindDate(s string) string {
	match := datePattern.FindString(s)
	return dateToISO(match)
}

// dateToISO normalizes a textual month-day-year date and converts it to ISO
// form. OCR quirks handled: ordinal suffixes, the "Ist" artifact standing in
// for "1st", collapsed separators. Returns empty if the normalized text still
// does not parse.
func dateToISO(dateText string) string {
	if dateText == "" {
		return ""
	}
	normalized := istToken.ReplaceAllString(dateText, "1")
	normalized = ordinalToken.ReplaceAllString(normalized, "$1")
	normalized = strings.ReplaceAll(normalized, " ,", ",")
	normalized = spaceRun.ReplaceAllString(strings.TrimSpace(normalized), " ")
	normalized = dayYearGap.ReplaceAllString(normalized, "$1, $2")

	for _, layout := range []string{"January 2, 2006", "January 2 2006"} {
		if dt, err := time.Parse(layout, normalized); err == nil {
			return dt.Format("2006-01-02")
		}
	}
	return ""
}

// FindTime returns the first H:MM / HH:MM value in s, accepting `.` as a
// separator (an OCR misread of the colon) and normalizing it to `:`.
func FindTime(s string) string {
	match := timePattern.FindString(s)
	return strings.ReplaceAll(match, ".", ":")
}

// isTimeOnly reports whether the trimmed line is nothing but a time value.
func isTimeOnly(clean string) bool {
	loc := timePattern.FindStringIndex(clean)
	return loc != nil && loc[0] == 0 && loc[1] == len(clean)
}

// FindPercent returns the first percentage in s without the % sign, or empty.
func FindPercent(s string) string {
	if m := percentPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// FindEnergy returns the first kWh quantity in s, or empty.
func FindEnergy(s string) string {
	if m := kwhPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// FindPower returns the first kW quantity in s, or empty. The trailing word
// boundary keeps it from matching inside "kWh".
func FindPower(s string) string {
	if m := kwPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// FindCost returns the first $-prefixed amount in s verbatim, or empty.
func FindCost(s string) string {
	return costPattern.FindString(s)
}

// FindMiles returns the first "(+N mi)" / "(N mi)" integer in s, or empty.
func FindMiles(s string) string {
	if m := milesPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// DurationMinutes converts free text like "2 hrs 50 min" to total minutes.
// Hours and minutes are independently optional; empty when both are absent
// or the total is zero.
func DurationMinutes(s string) string {
	total := 0
	if m := hoursPattern.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		total += hours * 60
	}
	if m := minutesPattern.FindStringSubmatch(s); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		total += minutes
	}
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("%d", total)
}

// Brand guesses the charger brand from the leading whitespace- or
// hyphen-delimited token of the charger name.
func Brand(chargerName string) string {
	for _, token := range regexp.MustCompile(`[\s\-]+`).Split(chargerName, -1) {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}
	return ""
}
