package plugin

import (
	"strings"

	"github.com/zombor/charge-tracker/internal/extract"
)

// FordPass parses charge-detail screenshots from the FordPass app. The
// screen lays the charger name on the first line of the summary block and
// the address on the second, and shows the charger's kW rating.
type FordPass struct{}

func (p *FordPass) Name() string        { return "fordpass" }
func (p *FordPass) DisplayName() string { return "FordPass" }

// Detect scores the text on FordPass-specific wording. The app name itself
// is the strongest signal; the section headers are shared with other apps
// and only nudge the score.
func (p *FordPass) Detect(text string) float64 {
	lowered := strings.ToLower(text)
	score := 0.0
	if strings.Contains(lowered, "fordpass") || strings.Contains(lowered, "ford pass") {
		score += 2.0
	}
	for _, token := range []string{"charge details", "additional details", "energy added", "time charging"} {
		if strings.Contains(lowered, token) {
			score += 0.5
		}
	}
	if strings.Contains(lowered, "summary") {
		score += 0.25
	}
	return score
}

func (p *FordPass) Parse(text string) extract.Record {
	return extract.Assemble(text, extract.Layout{IncludeKW: true})
}
