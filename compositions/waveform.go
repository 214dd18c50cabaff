package compositions

import (
	"math"
	"math/rand"

	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

// waveSeed freezes the bar heights.
const waveSeed = 2024

const (
	waveBars = 100
	wavePad  = 40
	waveGap  = 2
)

type waveform struct {
	c         scene.Contract
	intensity *motion.Curve
	bars      []generate.Entity
}

func newWaveform(c scene.Contract, _ scene.Config) (scene.Composer, error) {
	var b motion.Builder
	s := &waveform{
		c:         c,
		intensity: b.Curve([]float64{0, float64(c.DurationInFrames)}, []float64{0.3, 1}, motion.ClampRight()),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	s.bars = layout(c, "bars", waveBars, generate.SeededRecipe{
		Seed: waveSeed,
		Draw: func(r *rand.Rand, i int) generate.Entity {
			return generate.Entity{Value: r.Float64()*0.8 + 0.1}
		},
	})
	return s, nil
}

// Compose stacks the bars down the canvas, each centred and as long as its
// animated level.
func (s *waveform) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	intensity := s.intensity.At(f)
	pitch := (h - 2*wavePad) / float64(len(s.bars))
	span := w - 2*wavePad

	out := []scene.Primitive{paper(c)}
	for i, e := range s.bars {
		level := e.Value * (0.5 + 0.5*wave(f*0.1+float64(i)*0.1)) * intensity
		length := math.Max(2, level*span)
		y := wavePad + float64(i)*pitch
		out = append(out, scene.RoundRect(w/2-length/2, y, length, pitch-waveGap, 2).Filled(scene.Solid(reportInk, 1)))
	}
	return out
}
