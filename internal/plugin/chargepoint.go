package plugin

import (
	"strings"

	"github.com/zombor/charge-tracker/internal/extract"
)

// ChargePoint parses session screenshots from the ChargePoint app. Its
// summary block puts the street address on the last line and spreads the
// station name over the lines above it, so the name lines are joined back
// together. The session screen shows no charger power figure.
type ChargePoint struct{}

func (p *ChargePoint) Name() string        { return "chargepoint" }
func (p *ChargePoint) DisplayName() string { return "ChargePoint" }

func (p *ChargePoint) Detect(text string) float64 {
	lowered := strings.ToLower(text)
	score := 0.0
	if strings.Contains(lowered, "chargepoint") || strings.Contains(lowered, "charge point") {
		score += 2.0
	}
	for _, token := range []string{"session", "energy added", "additional details", "miles added"} {
		if strings.Contains(lowered, token) {
			score += 0.5
		}
	}
	return score
}

func (p *ChargePoint) Parse(text string) extract.Record {
	return extract.Assemble(text, extract.Layout{JoinedName: true})
}
