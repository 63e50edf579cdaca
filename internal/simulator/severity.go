package simulator

import "math"

type Severity string

const (
	SeverityLight    Severity = "light"
	SeverityModerate Severity = "moderate"
	SeverityStrong   Severity = "strong"
	SeverityMajor    Severity = "major"
	SeverityGreat    Severity = "great"
)

type Color string

const (
	ColorGreen  Color = "#4CAF50"
	ColorOrange Color = "#FF9800"
	ColorRed    Color = "#F44336"
	ColorPurple Color = "#9C27B0"
)

// Band is one rung of the magnitude ladder, covering magnitudes below Upper
// that no earlier band claimed.
type Band struct {
	Upper          float64  `json:"-"`
	Severity       Severity `json:"severity"`
	Interpretation string   `json:"interpretation"`
	Color          Color    `json:"color"`
}

// Ladder is ordered by Upper and evaluated first-match. The last band is
// unbounded so every magnitude classifies.
var Ladder = []Band{
	{Upper: 5.0, Severity: SeverityLight, Interpretation: "Light earthquake. Felt by many people, no damage.", Color: ColorGreen},
	{Upper: 6.0, Severity: SeverityModerate, Interpretation: "Moderate earthquake. Slight damage to buildings.", Color: ColorOrange},
	{Upper: 7.0, Severity: SeverityStrong, Interpretation: "Strong earthquake. Damage to well-built structures.", Color: ColorRed},
	{Upper: 8.0, Severity: SeverityMajor, Interpretation: "Major earthquake. Serious damage over large areas.", Color: ColorPurple},
	{Upper: math.Inf(1), Severity: SeverityGreat, Interpretation: "Great earthquake. Major damage across vast areas.", Color: ColorPurple},
}

func Classify(magnitude float64) Band {
	for _, b := range Ladder {
		if magnitude < b.Upper {
			return b
		}
	}
	return Ladder[len(Ladder)-1]
}
