package compositions

import (
	"math"

	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

// netSeed freezes the connection weights.
const netSeed = 1943

var netLayers = []int{4, 6, 5, 3}

var (
	netNight  = scene.MustHex("#0a0e27")
	netBlue   = scene.MustHex("#00d4ff")
	netGreen  = scene.MustHex("#00ff88")
	netPurple = scene.MustHex("#7b2ff7")
)

type synapse struct {
	from, to int
	weight   float64
}

type neuralNetwork struct {
	c scene.Contract

	titleIn, flow, captions *motion.Curve
	grow                    motion.Spring

	neurons  []generate.Entity
	synapses []synapse
}

func newNeuralNetwork(c scene.Contract, _ scene.Config) (scene.Composer, error) {
	var b motion.Builder
	n := float64(c.DurationInFrames)
	s := &neuralNetwork{
		c:        c,
		titleIn:  b.Curve([]float64{0, 30}, []float64{0, 1}, motion.ClampRight()),
		flow:     b.Curve([]float64{60, n - 30}, []float64{0, 1}, motion.ClampRight()),
		captions: b.Curve([]float64{n - 60, n - 30}, []float64{0, 1}),
		grow:     b.Spring(motion.Spring{Damping: 200, Stiffness: 200, To: 1}),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	// The network sits in a band 100px in from the top and bottom edges.
	w, h := float64(c.Width), float64(c.Height)
	band := h - 200
	spacing := w / float64(len(netLayers)+1)
	total := 0
	var starts []int
	for _, count := range netLayers {
		starts = append(starts, total)
		total += count
	}
	s.neurons = layout(c, "neurons", total, generate.IndexRecipe(func(i int) generate.Entity {
		li := 0
		for li+1 < len(starts) && starts[li+1] <= i {
			li++
		}
		return generate.Entity{
			X:     spacing * float64(li+1),
			Y:     100 + band/float64(netLayers[li]+1)*float64(i-starts[li]+1),
			Layer: li,
		}
	}))

	for l := 0; l+1 < len(netLayers); l++ {
		for i := 0; i < netLayers[l]; i++ {
			for j := 0; j < netLayers[l+1]; j++ {
				s.synapses = append(s.synapses, synapse{
					from:   starts[l] + i,
					to:     starts[l+1] + j,
					weight: generate.Hash01(netSeed, len(s.synapses), 0)*2 - 1,
				})
			}
		}
	}
	return s, nil
}

func (s *neuralNetwork) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	flow := s.flow.At(f)
	count := float64(len(s.neurons))

	var net []scene.Primitive
	for i, sy := range s.synapses {
		from, to := s.neurons[sy.from], s.neurons[sy.to]
		progress := motion.Clamp01(flow*float64(len(netLayers)) - float64(sy.from)/count)
		o := 0.2 + (wave(f*0.1+float64(i)*0.1)*0.5+0.5)*0.3
		paint := scene.Solid(netBlue, o)
		if progress > 0.1 && progress < 0.9 {
			paint = scene.Solid(netGreen, 1)
		}
		net = append(net, scene.Line(from.X, from.Y, to.X, to.Y).Stroked(paint, math.Abs(sy.weight)*2).Faded(o))
	}
	for i, n := range s.neurons {
		r := 15 + (wave(f*0.2+float64(i)*0.3)*0.3+0.7)*5
		at := float64(i) / count
		fill := scene.Linear(n.X-r, n.Y-r, n.X+r, n.Y+r,
			scene.At(0, netBlue, 0.8),
			scene.At(1, netPurple, 0.8),
		)
		if flow > at-0.1 && flow < at+0.3 {
			fill = scene.Solid(netGreen, 1)
		}
		net = append(net,
			scene.Circle(n.X, n.Y, r*1.6).Filled(scene.Radial(n.X, n.Y, r*1.6,
				scene.At(0.5, netBlue, 0.25),
				scene.At(1, netBlue, 0),
			)),
			scene.Circle(n.X, n.Y, r).Filled(fill).Faded(0.9),
			scene.Circle(n.X, n.Y, r*0.6).Filled(scene.Solid(scene.White, 0.3)),
		)
	}

	out := []scene.Primitive{
		scene.Rect(0, 0, w, h).Filled(scene.Solid(netNight, 1)),
	}
	out = append(out, zoom(c, net, s.grow.At(frame, float64(c.FPS)))...)
	out = append(out, heading(c, 141, "How Neural Networks Work", 64, scene.Solid(netBlue, 1)).Faded(s.titleIn.At(f)))
	return append(out, captions(c, []caption{
		{"Input", "Data", netBlue},
		{"Hidden", "Processing", netPurple},
		{"Output", "Result", netGreen},
	}, s.captions.At(f))...)
}
