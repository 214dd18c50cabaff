package compositions

import (
	"math"

	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

type galaxyFormation struct {
	c     scene.Contract
	title *scene.Title

	intro, spin       *motion.Curve
	twist, flat, halo *motion.Curve
	core              *motion.Curve
	settle            motion.Spring

	stars []generate.Entity
}

func newGalaxyFormation(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	s := &galaxyFormation{
		c:      c,
		title:  scene.NewTitle(&b, "Formation of Galaxies", "Gravity + rotation → disks, arms, and glowing cores", scene.Violet),
		intro:  b.Window(0, 20),
		spin:   b.Window(30, 210),
		twist:  b.Curve([]float64{0, 1}, []float64{0, 5.2}),
		flat:   b.Curve([]float64{0, 1}, []float64{0.85, 0.28}),
		halo:   b.Curve([]float64{0, 1}, []float64{0.25, 0.12}),
		core:   b.Curve([]float64{0, 1}, []float64{26, 70}),
		settle: b.Spring(motion.Spring{Damping: 18, Stiffness: 90, To: 1, Delay: 160}),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	count := cfg.Pick(260, 420)
	s.stars = layout(c, "stars", count, generate.IndexRecipe(func(i int) generate.Entity {
		size := 1.6
		if i%11 == 0 {
			size = 2.4
		}
		return generate.Entity{
			Angle:  float64(i) / float64(count) * 2 * math.Pi,
			Radius: 0.05 + generate.Fraction(i, 37, 1000),
			Layer:  i % 3,
			Size:   size,
		}
	}))
	return s, nil
}

func (s *galaxyFormation) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	cx, cy := w/2, h*0.55
	intro := s.intro.At(f)
	spin := s.spin.At(f)
	twist, flat := s.twist.At(spin), s.flat.At(spin)
	coreR := s.core.At(s.settle.At(frame, float64(c.FPS)))
	span := math.Min(w, h)

	out := chrome(c, scene.Space, 0.14, s.title, frame)
	out = append(out, scene.Ellipse(cx, cy, w*0.42, h*0.30).Filled(scene.Radial(cx, cy, h*0.30*1.2,
		scene.At(0, scene.Cyan, 0.10),
		scene.At(1, scene.Ink, 0),
	)).Faded(s.halo.At(spin)))

	for _, st := range s.stars {
		angle := st.Angle + float64(st.Layer)/3*2*math.Pi + st.Radius*twist + f*0.01
		radius := st.Radius * span * 0.36
		fill := scene.Solid(scene.White, 0.85)
		switch {
		case st.Index%7 == 0:
			fill = scene.Solid(scene.Yellow, 1)
		case st.Index%5 == 0:
			fill = scene.Solid(scene.Magenta, 1)
		}
		out = append(out, scene.Circle(cx+math.Cos(angle)*radius, cy+math.Sin(angle)*radius*flat, st.Size).
			Filled(fill).
			Faded((0.2+0.8*spin)*0.85))
	}

	out = append(out,
		scene.Circle(cx, cy, coreR).Filled(scene.Radial(cx, cy, coreR*1.2,
			scene.At(0, scene.White, 1),
			scene.At(0.35, scene.Cyan, 0.85),
			scene.At(0.70, scene.Violet, 0.35),
			scene.At(1, scene.Ink, 0),
		)).Faded(0.95*intro),
		scene.Circle(cx, cy, coreR*0.35).Filled(scene.Solid(scene.White, 1)).Faded(0.24*intro),
	)

	rr := span * 0.32
	for a := 0; a < 3; a++ {
		base := float64(a)/3*2*math.Pi + f*0.01
		out = append(out, scene.Line(
			cx+math.Cos(base)*rr*0.3, cy+math.Sin(base)*rr*0.3*0.28,
			cx+math.Cos(base+0.6)*rr, cy+math.Sin(base+0.6)*rr*0.28,
		).Stroked(scene.Solid(scene.Violet, 1), 2).Faded(0.18*spin))
	}

	return append(out, scene.CornerTag(c, "Spiral arms from density waves", scene.Violet, 1)...)
}
