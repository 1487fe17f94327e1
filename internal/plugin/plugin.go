package plugin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zombor/charge-tracker/internal/extract"
)

// Plugin is the capability contract one charging-app format implements.
type Plugin interface {
	// Name is the unique slug identifying the plugin.
	Name() string
	// DisplayName is the human-friendly app name.
	DisplayName() string
	// Detect returns a non-negative confidence score for the OCR text.
	// Zero means "definitely not this app".
	Detect(text string) float64
	// Parse extracts a charge record from the OCR text.
	Parse(text string) extract.Record
}

// builtin is the static list of supported charging apps. New formats are
// added here rather than discovered implicitly, so load order can never
// change which plugins exist.
var builtin = []Plugin{
	&FordPass{},
	&ChargePoint{},
}

// Registry returns all registered plugins sorted by name. It panics on a
// duplicate name, which would make forced-plugin selection ambiguous.
func Registry() []Plugin {
	plugins := make([]Plugin, len(builtin))
	copy(plugins, builtin)
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Name() < plugins[j].Name()
	})
	seen := make(map[string]bool, len(plugins))
	for _, p := range plugins {
		if seen[p.Name()] {
			panic(fmt.Sprintf("duplicate plugin name: %s", p.Name()))
		}
		seen[p.Name()] = true
	}
	return plugins
}

// ByName finds a plugin by its slug or display name, case-insensitively.
func ByName(name string, plugins []Plugin) (Plugin, bool) {
	lowered := strings.ToLower(name)
	for _, p := range plugins {
		if lowered == strings.ToLower(p.Name()) || lowered == strings.ToLower(p.DisplayName()) {
			return p, true
		}
	}
	return nil, false
}

// Score is one plugin's detection confidence for a given text.
type Score struct {
	Value  float64
	Plugin Plugin
}

// ScoreAll runs every plugin's detector against the text and returns the
// scores sorted descending.
func ScoreAll(text string, plugins []Plugin) []Score {
	scores := make([]Score, 0, len(plugins))
	for _, p := range plugins {
		scores = append(scores, Score{Value: p.Detect(text), Plugin: p})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Value > scores[j].Value
	})
	return scores
}

// Pick returns the unique top scorer. The second return is false when no
// plugin is a confident match: the top score is zero or negative, or it ties
// with another plugin's score. That outcome is a signal for the caller to
// fall back to an explicit choice, not a fault.
func Pick(scores []Score) (Plugin, bool) {
	if len(scores) == 0 {
		return nil, false
	}
	top := scores[0]
	if top.Value <= 0 {
		return nil, false
	}
	if len(scores) > 1 && scores[1].Value == top.Value {
		return nil, false
	}
	return top.Plugin, true
}

// Select scores every registered plugin against the text and picks a winner.
func Select(text string, plugins []Plugin) (Plugin, bool) {
	return Pick(ScoreAll(text, plugins))
}
