// Package compositions holds the catalogue of portrait explainer scenes.
// Each scene is built once per configuration by its factory; Compose then
// maps a frame index to primitives with no state carried between frames.
package compositions

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/scene"
)

const (
	durationInFrames = 240
	fps              = 30
	width            = 1080
	height           = 1920
)

// entities is shared by every instantiation so the server and renderer
// generate each layout once per process.
var entities = generate.NewMemo[generate.Entity]()

func layout(c scene.Contract, name string, count int, recipe generate.Recipe) []generate.Entity {
	key := fmt.Sprintf("%s/%s/%d/%dx%d", c.ID, name, count, c.Width, c.Height)
	return entities.Get(key, func() []generate.Entity {
		return generate.Generate(count, recipe)
	})
}

var catalogue = []struct {
	id      string
	factory scene.Factory
}{
	{"nn-training", newNNTraining},
	{"big-bang", newBigBang},
	{"galaxy-formation", newGalaxyFormation},
	{"atomic-bonding", newAtomicBonding},
	{"dna-replication", newDNAReplication},
	{"evolution", newEvolution},
	{"human-civilization", newHumanCivilization},
	{"financial-markets", newFinancialMarkets},
	{"human-ai-symbiosis", newHumanAISymbiosis},
	{"star-formation", newStarFormation},
	{"ai-rise", newAIRise},
	{"bar-race", newBarRace},
	{"black-hole", newBlackHole},
	{"kpi-dashboard", newKPIDashboard},
	{"neural-network", newNeuralNetwork},
	{"waveform", newWaveform},
}

// Contract returns the portrait 1080x1920, 30fps, 8 second contract every
// catalogue entry shares.
func Contract(id string) scene.Contract {
	return scene.Contract{
		ID:               id,
		DurationInFrames: durationInFrames,
		FPS:              fps,
		Width:            width,
		Height:           height,
		Defaults:         scene.Config{Quality: scene.Final},
	}
}

// IDs lists the catalogue in registration order.
func IDs() []string {
	ids := make([]string, len(catalogue))
	for i, e := range catalogue {
		ids[i] = e.id
	}
	return ids
}

// Register adds the whole catalogue to r.
func Register(r *scene.Registry) error {
	for _, e := range catalogue {
		if err := r.Register(e.id, Contract(e.id), e.factory); err != nil {
			return err
		}
	}
	return nil
}

// Default returns a registry holding the catalogue.
func Default() *scene.Registry {
	r := scene.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}

// wave is sin of x wrapped into one turn.
func wave(x float64) float64 {
	return math.Sin(math.Mod(x, 2*math.Pi))
}

// chrome draws the shared background, grid and title.
func chrome(c scene.Contract, v scene.Variant, grid float64, title *scene.Title, frame int) []scene.Primitive {
	out := scene.Background(c, v)
	out = append(out, scene.Grid(c, grid)...)
	return append(out, title.Draw(frame, c.FPS)...)
}

// zoom scales the whole frame about the canvas centre.
func zoom(c scene.Contract, ps []scene.Primitive, s float64) []scene.Primitive {
	return scene.ScaleAbout(ps, s, float64(c.Width)/2, float64(c.Height)/2)
}

func stampBox(text string, size float64) (w, h float64) {
	return scene.TextWidth(text, size)*1.1 + 36, size*1.2 + 28
}

// stamp draws an outlined label box that tilts and scales about its centre.
func stamp(x, y float64, text string, size float64, col scene.Paint, tilt, s, opacity float64) []scene.Primitive {
	w, h := stampBox(text, size)
	cx, cy := x+w/2, y+h/2
	box := []scene.Primitive{
		scene.RoundRect(x, y, w, h, 18).Filled(scene.Solid(scene.Black, 0.25)).Stroked(col, 3).Turned(tilt, cx, cy),
		scene.Text(cx, cy+size*0.35, text, size).Filled(col).Anchored(scene.AnchorMiddle).Heavy().Turned(tilt, cx, cy),
	}
	return scene.Fade(scene.ScaleAbout(box, s, cx, cy), opacity)
}

type caption struct {
	head, sub string
	col       colorful.Color
}

// captions lays the closing labels out in equal columns along the bottom.
func captions(c scene.Contract, cs []caption, opacity float64) []scene.Primitive {
	w, h := float64(c.Width), float64(c.Height)
	var out []scene.Primitive
	for i, cp := range cs {
		x := w * float64(2*i+1) / float64(2*len(cs))
		out = append(out,
			scene.Text(x, h-83, cp.head, 24).Filled(scene.Solid(cp.col, 1)).Anchored(scene.AnchorMiddle).Heavy(),
			scene.Text(x, h-64, cp.sub, 14).Filled(scene.Solid(cp.col, 1)).Anchored(scene.AnchorMiddle).Faded(0.7),
		)
	}
	return scene.Fade(out, opacity)
}

// heading draws a bold line of text centred on the canvas.
func heading(c scene.Contract, y float64, text string, size float64, paint scene.Paint) scene.Primitive {
	return scene.Text(float64(c.Width)/2, y, text, size).Filled(paint).Anchored(scene.AnchorMiddle).Heavy()
}
