package extract

import "strings"

// sectionBreaks are the header labels that delimit blocks of a charging-app
// screenshot. A line matching one of these (exactly, or as a prefix followed
// by a space) ends whatever block is being collected.
var sectionBreaks = []string{
	"summary",
	"charge details",
	"charge",
	"time charging",
	"energy added",
	"additional details",
}

// isSectionBreak reports whether an already-lowercased, trimmed line is a
// section boundary.
func isSectionBreak(lowered string) bool {
	for _, label := range sectionBreaks {
		if lowered == label || strings.HasPrefix(lowered, label+" ") {
			return true
		}
	}
	return false
}

// matchLabel checks a single trimmed line against a lowercased label. A
// direct match is the label on its own, optionally with a trailing colon. An
// inline match is "label value" where the value starts with a digit, a sign,
// or a `(`/`$` character; the guard keeps prose that merely begins with the
// label word from matching. Returns the inline value for inline matches.
func matchLabel(clean, target string) (direct bool, inline string) {
	lowered := strings.ToLower(clean)
	if strings.TrimRight(lowered, ":") == target {
		return true, ""
	}
	if !strings.HasPrefix(lowered, target+" ") {
		return false, ""
	}
	value := strings.TrimSpace(clean[len(target):])
	value = strings.TrimSpace(strings.TrimLeft(value, ":"))
	if value == "" {
		return false, ""
	}
	first := value[0]
	if !(first >= '0' && first <= '9') && !strings.ContainsRune("+-($", rune(first)) {
		return false, ""
	}
	return false, value
}

// FindLabelValue returns the text associated with a label: the inline
// remainder when label and value share a line, otherwise the next non-blank
// line that is not itself a repeat of the label. Empty string when the label
// never appears. The first matching line wins.
func FindLabelValue(lines []string, label string) string {
	target := strings.ToLower(label)
	for idx, line := range lines {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		direct, inline := matchLabel(clean, target)
		if inline != "" {
			return inline
		}
		if !direct {
			continue
		}
		for _, follower := range lines[idx+1:] {
			follower = strings.TrimSpace(follower)
			if follower == "" {
				continue
			}
			followerLower := strings.ToLower(follower)
			if followerLower == target || strings.HasPrefix(followerLower, target+" ") {
				continue
			}
			return follower
		}
		return ""
	}
	return ""
}

// ExtractSection returns the contiguous run of lines belonging to a labeled
// section: the inline value (if the label line carries one) followed by every
// subsequent non-blank line up to, and excluding, the next section boundary.
// Nil when the label is never found.
func ExtractSection(lines []string, label string) []string {
	target := strings.ToLower(label)
	for idx, line := range lines {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		direct, inline := matchLabel(clean, target)
		if !direct && inline == "" {
			continue
		}
		var section []string
		if inline != "" {
			section = append(section, inline)
		}
		for _, follower := range lines[idx+1:] {
			follower = strings.TrimSpace(follower)
			if follower == "" {
				continue
			}
			if isSectionBreak(strings.ToLower(follower)) {
				break
			}
			section = append(section, follower)
		}
		return section
	}
	return nil
}
