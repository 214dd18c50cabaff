package compositions

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/framecast/scene"
)

type evolutionStage struct {
	label, detail string
	color         colorful.Color
}

var evolutionStages = []evolutionStage{
	{"Single cell", "Replication + mutation", scene.Cyan},
	{"Multicellular", "Specialization", scene.Lime},
	{"Ocean life", "Ecosystems", scene.Yellow},
	{"Land life", "Adaptation", scene.Orange},
	{"Mammals", "Complex brains", scene.Magenta},
}

type civilizationStage struct {
	year, label string
}

var civilizationStages = []civilizationStage{
	{"10,000 BCE", "Agriculture"},
	{"3,000 BCE", "Cities"},
	{"1760", "Industry"},
	{"1990", "Internet"},
	{"Now", "AI era"},
}

// marketKeyframes is the price and volatility path of the market scene
// against normalized time.
var marketKeyframes = struct {
	t, price, vol []float64
}{
	t:     []float64{0.0, 0.2, 0.35, 0.55, 0.75, 1.0},
	price: []float64{100, 108, 102, 118, 112, 126},
	vol:   []float64{0.2, 0.35, 0.55, 0.25, 0.65, 0.3},
}
