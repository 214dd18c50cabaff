package compositions

import (
	"math"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

var (
	aiNight  = scene.MustHex("#0a0a1a")
	aiGreen  = scene.MustHex("#00ff88")
	aiBlue   = scene.MustHex("#00d4ff")
	aiViolet = scene.MustHex("#7b2ff7")
)

type milestone struct {
	year  float64
	value float64
	label string
}

var aiTimeline = []milestone{
	{1950, 0.1, "Birth"},
	{1980, 0.3, "Expert Systems"},
	{2000, 0.5, "Machine Learning"},
	{2010, 0.7, "Deep Learning"},
	{2020, 0.9, "GPT Era"},
	{2024, 1.0, "AGI Dawn"},
}

type aiRise struct {
	c scene.Contract

	graph, titleIn, captions *motion.Curve
	network                  motion.Spring

	points [][2]float64
}

func newAIRise(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	n := float64(c.DurationInFrames)
	s := &aiRise{
		c:        c,
		graph:    b.Window(60, n-60, motion.WithEasing(cfg.Entrance(ease.OutExpo))),
		titleIn:  b.Curve([]float64{0, 30}, []float64{0, 1}, motion.ClampRight()),
		captions: b.Curve([]float64{n - 60, n - 30}, []float64{0, 1}),
		network:  b.Spring(motion.Spring{Damping: 100, Stiffness: 50, To: 1, Delay: 30}),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	w, h := float64(c.Width), float64(c.Height)
	gx, gy, gw, gh := w*0.1, h*0.3, w*0.8, h*0.5
	first, last := aiTimeline[0], aiTimeline[len(aiTimeline)-1]
	for _, m := range aiTimeline {
		s.points = append(s.points, [2]float64{
			gx + (m.year-first.year)/(last.year-first.year)*gw,
			gy + gh - m.value/last.value*gh,
		})
	}
	return s, nil
}

func (s *aiRise) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	graph := s.graph.At(f)
	spectrum := scene.Linear(w*0.1, 0, w*0.9, 0,
		scene.At(0, aiGreen, 1),
		scene.At(0.5, aiBlue, 1),
		scene.At(1, aiViolet, 1),
	)

	out := []scene.Primitive{
		scene.Rect(0, 0, w, h).Filled(scene.Solid(aiNight, 1)),
		heading(c, 141, "The Rise of", 64, spectrum).Faded(s.titleIn.At(f)),
		heading(c, 215, "Artificial Intelligence", 64, spectrum).Faded(s.titleIn.At(f)),
	}

	var net []scene.Primitive
	for layer := 0; layer < 3; layer++ {
		y := h*0.15 + float64(layer)*40
		count := 8 - layer*2
		spacing := w / float64(count+1)
		for i := 0; i < count; i++ {
			x := spacing * float64(i+1)
			if layer < 2 {
				next := count - 2
				nextSpacing := w / float64(next+1)
				for j := 0; j < next; j++ {
					net = append(net, scene.Line(x, y, nextSpacing*float64(j+1), y+40).
						Stroked(scene.Solid(aiBlue, 0.1), 1))
				}
			}
			pulse := wave(f*0.1+float64(i+layer))*0.3 + 0.7
			net = append(net, glowPoint(x, y, 8*pulse, 0.8)...)
		}
	}
	out = append(out, scene.Fade(net, s.network.At(frame, float64(c.FPS)))...)

	current := int(math.Floor(graph * float64(len(s.points)-1)))
	if current >= len(s.points) {
		current = len(s.points) - 1
	}
	plot := []scene.Primitive{
		scene.Rect(w*0.1, h*0.3, w*0.8, h*0.5).Stroked(scene.Solid(aiBlue, 0.2), 2),
	}
	for i := 1; i <= current; i++ {
		p, q := s.points[i-1], s.points[i]
		plot = append(plot, scene.Line(p[0], p[1], q[0], q[1]).Stroked(spectrum, 4))
	}
	for i := 0; i <= current; i++ {
		p := s.points[i]
		r := 12.0
		if i == current {
			r *= 1.5
		}
		plot = append(plot, glowPoint(p[0], p[1], r, 0.9)...)
		if i == current {
			plot = append(plot, scene.Text(p[0], p[1]-30, aiTimeline[i].label, 20).
				Filled(scene.Solid(aiGreen, 1)).Anchored(scene.AnchorMiddle).Heavy())
		}
	}
	out = append(out, scene.Fade(plot, graph)...)

	return append(out, captions(c, []caption{
		{"1950s", "Beginnings", aiGreen},
		{"2000s", "Acceleration", aiBlue},
		{"2020s", "Revolution", aiViolet},
	}, s.captions.At(f))...)
}

// glowPoint is a green-to-blue node with a soft halo.
func glowPoint(x, y, r, opacity float64) []scene.Primitive {
	return []scene.Primitive{
		scene.Circle(x, y, r*2).Filled(scene.Radial(x, y, r*2,
			scene.At(0, aiGreen, 0.35),
			scene.At(1, aiGreen, 0),
		)).Faded(opacity),
		scene.Circle(x, y, r).Filled(scene.Radial(x, y, r,
			scene.At(0, aiGreen, 1),
			scene.At(1, aiBlue, 0.5),
		)).Faded(opacity),
	}
}
