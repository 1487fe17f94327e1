package extract

import "strings"

// Details holds the start/end metadata pulled from the "Additional Details"
// block of a screenshot.
type Details struct {
	StartDate    string
	EndDate      string
	StartTime    string
	EndTime      string
	StartPercent string
	EndPercent   string
}

// Date returns the session date: the start date when present, else the end
// date.
func (d Details) Date() string {
	if d.StartDate != "" {
		return d.StartDate
	}
	return d.EndDate
}

// findTimeFrom returns the first time value at or after the given index.
func findTimeFrom(lines []string, start int) string {
	for _, line := range lines[start:] {
		if value := FindTime(line); value != "" {
			return value
		}
	}
	return ""
}

// findPercentFrom returns the first percentage at or after the given index.
func findPercentFrom(lines []string, start int) string {
	for _, line := range lines[start:] {
		if value := FindPercent(line); value != "" {
			return value
		}
	}
	return ""
}

// ReconcileDetails walks the lines following the "additional details" header
// and pairs dates, times and percentages with their start/end roles. OCR
// output sometimes splits a date and its time onto separate lines, or folds
// both onto one; a date line updates the running date and any time seen
// before the next start/end marker is held pending until that marker claims
// it. The first value wins for every field. Returns the zero value when the
// header is absent.
func ReconcileDetails(lines []string) Details {
	additionalIdx := -1
	for idx, line := range lines {
		if strings.Contains(strings.ToLower(line), "additional details") {
			additionalIdx = idx
			break
		}
	}
	if additionalIdx == -1 {
		return Details{}
	}

	section := make([]string, 0, len(lines)-additionalIdx-1)
	for _, line := range lines[additionalIdx+1:] {
		section = append(section, strings.TrimSpace(line))
	}

	var result Details
	currentDate := ""
	pendingTime := ""
	for idx, line := range section {
		if line == "" {
			continue
		}
		if match := datePattern.FindString(line); match != "" {
			// The line is consumed as a date line even when normalization
			// fails; it never fills a start/end role.
			currentDate = dateToISO(match)
			pendingTime = FindTime(line)
			continue
		}
		if isTimeOnly(line) {
			pendingTime = FindTime(line)
			continue
		}
		lowered := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lowered, "start"):
			if result.StartDate == "" {
				result.StartDate = currentDate
			}
			if result.StartTime == "" {
				if pendingTime != "" {
					result.StartTime = pendingTime
				} else {
					result.StartTime = findTimeFrom(section, idx)
				}
			}
			if result.StartPercent == "" {
				result.StartPercent = findPercentFrom(section, idx)
			}
			pendingTime = ""
		case strings.HasPrefix(lowered, "end"):
			if result.EndDate == "" {
				result.EndDate = currentDate
			}
			if result.EndTime == "" {
				if pendingTime != "" {
					result.EndTime = pendingTime
				} else {
					result.EndTime = findTimeFrom(section, idx)
				}
			}
			if result.EndPercent == "" {
				result.EndPercent = findPercentFrom(section, idx)
			}
			pendingTime = ""
		}
	}
	return result
}
