package compositions

import (
	"math"
	"math/rand"

	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

// starSeed freezes the nebula layout.
const starSeed = 1977

var (
	starSpace  = scene.MustHex("#000011")
	starAmber  = scene.MustHex("#ffaa00")
	starOrange = scene.MustHex("#ff6600")
	starRed    = scene.MustHex("#ff3300")
	gasBlue    = scene.MustHex("#00aaff")
	gasDeep    = scene.MustHex("#0066ff")
)

type starFormation struct {
	c scene.Contract

	collapse, fusion, titleIn, captions *motion.Curve
	brightness                          motion.Spring

	gas []generate.Entity
}

func newStarFormation(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	n := float64(c.DurationInFrames)
	s := &starFormation{
		c:          c,
		collapse:   b.Curve([]float64{30, n * 0.6}, []float64{0, 1}, motion.ClampRight()),
		fusion:     b.Curve([]float64{n * 0.6, n * 0.7}, []float64{0, 1}, motion.ClampRight()),
		titleIn:    b.Curve([]float64{0, 30}, []float64{0, 1}, motion.ClampRight()),
		captions:   b.Curve([]float64{n - 60, n - 30}, []float64{0, 1}),
		brightness: b.Spring(motion.Spring{Damping: 100, Stiffness: 50, To: 1, Delay: int(n * 0.65)}),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	w, h := float64(c.Width), float64(c.Height)
	s.gas = layout(c, "gas", cfg.Pick(120, 200), generate.SeededRecipe{
		Seed: starSeed,
		Draw: func(r *rand.Rand, i int) generate.Entity {
			x := w/2 + (r.Float64()-0.5)*w*0.8
			y := h/2 + (r.Float64()-0.5)*h*0.8
			return generate.Entity{X: x, Y: y, Size: r.Float64()*0.5 + 0.5}
		},
	})
	return s, nil
}

func (s *starFormation) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	cx, cy := w/2, h/2
	collapse := s.collapse.At(f)
	bright := s.brightness.At(frame, float64(c.FPS))
	starR := 30 + bright*50

	out := []scene.Primitive{
		scene.Rect(0, 0, w, h).Filled(scene.Solid(starSpace, 1)),
		heading(c, 141, "Star Formation", 64, scene.Solid(starAmber, 1)).Faded(s.titleIn.At(f)),
	}

	gasO := 0.0
	if collapse < 0.9 {
		gasO = 1 - collapse*0.8
	}
	for _, g := range s.gas {
		d := math.Hypot(g.X-cx, g.Y-cy) * (1 - collapse)
		a := math.Atan2(g.Y-cy, g.X-cx)
		x, y := cx+math.Cos(a)*d, cy+math.Sin(a)*d
		r := 2 + g.Size*2
		out = append(out, scene.Circle(x, y, r).Filled(scene.Radial(x, y, r,
			scene.At(0, gasBlue, 0.8),
			scene.At(1, gasDeep, 0.3),
		)).Faded(gasO))
	}

	if s.fusion.At(f) > 0 {
		out = append(out,
			scene.Circle(cx, cy, starR*1.3).Filled(scene.Radial(cx, cy, starR*1.3,
				scene.At(0, starAmber, 0.5),
				scene.At(1, starAmber, 0),
			)).Faded(bright),
			scene.Circle(cx, cy, starR).Filled(scene.Radial(cx, cy, starR,
				scene.At(0, scene.White, 1),
				scene.At(0.3, starAmber, 0.9),
				scene.At(0.6, starOrange, 0.7),
				scene.At(1, starRed, 0.3),
			)).Faded(bright),
			scene.Circle(cx, cy, starR*0.7).Filled(scene.Solid(scene.White, 1)).Faded(bright*0.8),
		)
		for i := 0; i < 12; i++ {
			a := float64(i) / 12 * 2 * math.Pi
			ray := starR * 2
			o := math.Sin(f*0.3+float64(i))*0.3 + 0.5
			out = append(out, scene.Line(cx, cy, cx+math.Cos(a)*ray, cy+math.Sin(a)*ray).
				Stroked(scene.Solid(starAmber, 1), 3).Faded(o*bright))
		}
	}

	return append(out, captions(c, []caption{
		{"Nebula", "Cloud Collapse", gasBlue},
		{"Fusion", "Ignition", starAmber},
		{"Star", "Born", scene.White},
	}, s.captions.At(f))...)
}
