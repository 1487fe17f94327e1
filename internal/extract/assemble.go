package extract

import (
	"strconv"
	"strings"
)

// Layout captures the per-app quirks of a charging screenshot that the
// shared assembler cannot guess on its own.
type Layout struct {
	// JoinedName treats the last line of the name/location block as the
	// location and joins every prior line into the charger name. The default
	// is first line = name, second line = location.
	JoinedName bool
	// IncludeKW extracts the charger's kW rating from the full text. Apps
	// that never show a power figure leave it off so a stray "50 kW" badge
	// elsewhere on screen cannot leak into the record.
	IncludeKW bool
}

// endOffsets are the corrections tried when the start/delta/end percentages
// disagree. They cover the common OCR digit substitutions seen in practice
// (a leading "7" read as "1" and similar); the list is deliberately fixed.
var endOffsets = []int{30, 40, 50, 60, 70, 80}

// nameLocationBlock collects the lines of the name/location block starting
// after index start. Redundant "summary" / "charge details" headers inside
// the block are skipped; any other section boundary ends it.
func nameLocationBlock(lines []string, start int) []string {
	var block []string
	for _, candidate := range lines[start:] {
		clean := strings.TrimSpace(candidate)
		if clean == "" {
			continue
		}
		lowered := strings.ToLower(clean)
		if isSectionBreak(lowered) {
			if lowered == "summary" || lowered == "charge details" {
				continue
			}
			break
		}
		block = append(block, clean)
	}
	return block
}

// splitNameLocation applies the layout's block-split policy.
func splitNameLocation(block []string, layout Layout) (name, location string) {
	switch {
	case len(block) == 0:
		return "", ""
	case len(block) == 1:
		return block[0], ""
	case layout.JoinedName:
		return strings.Join(block[:len(block)-1], " "), block[len(block)-1]
	default:
		return block[0], block[1]
	}
}

// indexContaining returns the index of the first line containing the needle
// (case-insensitive substring), or -1.
func indexContaining(lines []string, needle string) int {
	for idx, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			return idx
		}
	}
	return -1
}

// repairEndPercent reconciles an end percentage that contradicts
// start + delta by trying the fixed offset corrections in both directions.
// Only fires when all three values are present and the disagreement is at
// least 10 points; the corrected value must land back in [0, 100].
func repairEndPercent(startPct, deltaPct, endPct string) string {
	start, err := strconv.Atoi(startPct)
	if err != nil {
		return endPct
	}
	delta, err := strconv.Atoi(deltaPct)
	if err != nil {
		return endPct
	}
	end, err := strconv.Atoi(endPct)
	if err != nil {
		return endPct
	}
	expected := start + delta
	diff := expected - end
	if diff < 0 {
		diff = -diff
	}
	if diff < 10 {
		return endPct
	}
	for _, offset := range endOffsets {
		for _, corrected := range []int{end + offset, end - offset} {
			if corrected == expected && corrected >= 0 && corrected <= 100 {
				return strconv.Itoa(corrected)
			}
		}
	}
	return endPct
}

// Assemble parses the OCR text of one screenshot into a flat Record. Every
// field degrades independently to empty; Assemble never fails.
func Assemble(text string, layout Layout) Record {
	rawLines := strings.Split(text, "\n")
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		lines[i] = strings.TrimSpace(line)
	}

	var chargerName, chargerLocation string
	if idx := indexContaining(lines, "summary"); idx != -1 {
		chargerName, chargerLocation = splitNameLocation(nameLocationBlock(lines, idx+1), layout)
	}
	if chargerName == "" {
		if idx := indexContaining(lines, "charge details"); idx != -1 {
			chargerName, chargerLocation = splitNameLocation(nameLocationBlock(lines, idx+1), layout)
		}
	}

	duration := DurationMinutes(FindLabelValue(lines, "time charging"))
	kwhAdded := FindEnergy(FindLabelValue(lines, "energy added"))

	chargePct := ""
	chargeMiles := ""
	for _, sectionLine := range ExtractSection(lines, "charge") {
		if chargePct == "" {
			chargePct = FindPercent(sectionLine)
		}
		if chargeMiles == "" {
			chargeMiles = FindMiles(sectionLine)
		}
	}
	if chargePct == "" || chargeMiles == "" {
		// Fall back to a text-wide scan, stopping before the additional
		// details block so its start/end percentages cannot be mistaken for
		// the charge delta.
		limit := indexContaining(lines, "additional details")
		if limit == -1 {
			limit = len(lines)
		}
		for _, line := range lines[:limit] {
			if chargePct == "" {
				chargePct = FindPercent(line)
			}
			if chargeMiles == "" {
				chargeMiles = FindMiles(line)
			}
		}
	}

	chargerKW := ""
	if layout.IncludeKW {
		chargerKW = FindPower(text)
	}

	details := ReconcileDetails(lines)
	endPct := repairEndPercent(details.StartPercent, chargePct, details.EndPercent)

	return Record{
		Date:            details.Date(),
		ChargerName:     chargerName,
		ChargerLocation: chargerLocation,
		DurationMinutes: duration,
		KWHAdded:        kwhAdded,
		ChargerKWRating: chargerKW,
		ChargePercent:   chargePct,
		ChargeMiles:     chargeMiles,
		StartTime:       details.StartTime,
		EndTime:         details.EndTime,
		StartPercent:    details.StartPercent,
		EndPercent:      endPct,
		Cost:            FindCost(text),
		ChargerBrand:    Brand(chargerName),
	}
}
