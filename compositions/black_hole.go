package compositions

import (
	"math"

	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

// holeSeed freezes the accretion disk.
const holeSeed = 1054

var (
	holePink   = scene.MustHex("#ff0066")
	holeOrange = scene.MustHex("#ff6600")
	holeGold   = scene.MustHex("#ffaa00")
	holePlum   = scene.MustHex("#330033")
	holePurple = scene.MustHex("#660066")
)

type blackHole struct {
	c scene.Contract

	supernova, collapse, horizon, flash *motion.Curve
	titleIn, captions                   *motion.Curve
	disk                                motion.Spring

	particles []generate.Entity
}

func newBlackHole(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	n := float64(c.DurationInFrames)
	s := &blackHole{
		c:         c,
		supernova: b.Curve([]float64{30, n * 0.3}, []float64{0, 1}, motion.ClampRight()),
		collapse:  b.Window(n*0.3, n*0.6),
		horizon:   b.Curve([]float64{0, 1}, []float64{200, 40}, motion.ClampRight()),
		flash:     b.Curve([]float64{0, 0.3, 0.7, 1}, []float64{0, 1, 0.8, 0}, motion.ClampRight()),
		titleIn:   b.Curve([]float64{0, 30}, []float64{0, 1}, motion.ClampRight()),
		captions:  b.Curve([]float64{n - 60, n - 30}, []float64{0, 1}),
		disk:      b.Spring(motion.Spring{Damping: 50, Stiffness: 30, To: 1, Delay: int(n * 0.6)}),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	s.particles = layout(c, "disk", cfg.Pick(90, 150), generate.IndexRecipe(func(i int) generate.Entity {
		return generate.Entity{
			Angle:  generate.Hash01(holeSeed, i, 1) * 2 * math.Pi,
			Radius: 100 + generate.Hash01(holeSeed, i, 2)*300,
			Phase:  0.01 + generate.Hash01(holeSeed, i, 3)*0.02,
			Size:   1 + generate.Hash01(holeSeed, i, 4)*2,
		}
	}))
	return s, nil
}

func (s *blackHole) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	cx, cy := w/2, h/2
	nova := s.supernova.At(f)
	collapse := s.collapse.At(f)
	horizon := s.horizon.At(collapse)
	disk := s.disk.At(frame, float64(c.FPS))

	out := []scene.Primitive{
		scene.Rect(0, 0, w, h).Filled(scene.Solid(scene.Black, 1)),
		heading(c, 141, "Black Hole Collapse", 64, scene.Solid(holePink, 1)).Faded(s.titleIn.At(f)),
	}

	if nova > 0 && nova < 1 {
		r := nova * w * 0.8
		out = append(out, scene.Circle(cx, cy, r).Filled(scene.Radial(cx, cy, r,
			scene.At(0, scene.White, 1),
			scene.At(0.2, holePink, 0.9),
			scene.At(0.5, holeOrange, 0.6),
			scene.At(1, scene.Black, 0),
		)).Faded(s.flash.At(nova)))
	}

	for i, p := range s.particles {
		a := p.Angle + f*p.Phase
		d := p.Radius * (1 - collapse*0.7)
		x, y := cx+math.Cos(a)*d, cy+math.Sin(a)*d
		o := 0.0
		if d > horizon+20 {
			o = disk * (0.3 + math.Sin(f*0.2+float64(i))*0.2)
		}
		out = append(out, scene.Circle(x, y, p.Size).Filled(accretion(x, y, p.Size)).Faded(o))
	}

	if collapse > 0.5 {
		out = append(out,
			scene.Circle(cx, cy, horizon*1.2).Filled(accretion(cx, cy, horizon*1.2)).Faded(disk*0.3),
			scene.Circle(cx, cy, horizon*1.6).Filled(scene.Radial(cx, cy, horizon*1.6,
				scene.At(0.6, holePurple, 0.4),
				scene.At(1, holePurple, 0),
			)),
			scene.Circle(cx, cy, horizon).Filled(scene.Radial(cx, cy, horizon,
				scene.At(0, scene.Black, 1),
				scene.At(0.7, holePlum, 0.8),
				scene.At(1, holePurple, 0.5),
			)),
			scene.Circle(cx, cy, horizon*0.7).Filled(scene.Solid(scene.Black, 1)),
		)
	}

	for i := 0; i < 8; i++ {
		a := generate.Ring(i, 8) + f*0.05
		o := math.Sin(f*0.2+float64(i))*0.2 + 0.3
		out = append(out, scene.Line(
			cx+math.Cos(a)*horizon, cy+math.Sin(a)*horizon,
			cx+math.Cos(a)*horizon*1.5, cy+math.Sin(a)*horizon*1.5,
		).Stroked(scene.Solid(holePink, 1), 2).Faded(o*disk))
	}

	return append(out, captions(c, []caption{
		{"Supernova", "Explosion", holePink},
		{"Collapse", "Gravitational", holeOrange},
		{"Event Horizon", "Formed", holeGold},
	}, s.captions.At(f))...)
}

func accretion(x, y, r float64) scene.Paint {
	return scene.Radial(x, y, r,
		scene.At(0, holePink, 0.8),
		scene.At(0.5, holeOrange, 0.6),
		scene.At(1, holeGold, 0.3),
	)
}
