package compositions

import (
	"math"

	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

type atomicBonding struct {
	c     scene.Contract
	title *scene.Title

	intro, approach, bond, bondFade, graph *motion.Curve
	settle                                 motion.Spring

	electrons []generate.Entity
}

func newAtomicBonding(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	s := &atomicBonding{
		c:        c,
		title:    scene.NewTitle(&b, "Atomic Bonding", "Orbitals overlap → shared electrons → stable bond", scene.Yellow),
		intro:    b.Window(0, 18),
		approach: b.Window(28, 110),
		bond:     b.Window(100, 160),
		bondFade: b.Window(0.2, 1),
		graph:    b.Window(0.55, 0.85),
		settle:   b.Spring(motion.Spring{Damping: 20, Stiffness: 120, To: 1, Delay: 140}),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	count := cfg.Pick(6, 10)
	s.electrons = layout(c, "electrons", count, generate.IndexRecipe(func(i int) generate.Entity {
		return generate.Entity{
			Angle:  float64(i) / float64(count) * 2 * math.Pi,
			Radius: float64(110 + (i*19)%30),
			Layer:  i % 2,
		}
	}))
	return s, nil
}

func atomFill(cx, cy float64, mid scene.Paint) scene.Paint {
	return scene.Radial(cx, cy, 78*1.2,
		scene.At(0, scene.White, 1),
		scene.At(0.5, mid.Color, 0.85),
		scene.At(1, scene.Ink, 0),
	)
}

func wellDepth(u float64) float64 {
	return math.Exp(-math.Pow((u-0.65)*4.2, 2)) * 60
}

func (s *atomicBonding) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	cx, cy := w/2, h*0.55
	intro := s.intro.At(f)
	bond := s.bond.At(f)
	bondO := s.bondFade.At(bond)
	sep := motion.Lerp(w*0.34, w*0.12, s.approach.At(f))
	leftX, rightX := cx-sep, cx+sep
	orbit := f * 0.05

	out := chrome(c, scene.Lab, 0.18, s.title, frame)
	out = append(out,
		scene.Ellipse(cx, cy, motion.Lerp(10, w*0.14, bond), motion.Lerp(10, h*0.09, bond)).
			Filled(scene.Solid(scene.Cyan, 0.12)).Faded(bondO),
		scene.Line(leftX, cy, rightX, cy).Stroked(scene.Linear(leftX, cy, rightX, cy,
			scene.At(0, scene.Cyan, 0.9),
			scene.At(1, scene.Magenta, 0.9),
		), motion.Lerp(2, 6, s.settle.At(frame, float64(c.FPS)))).Rounded().Faded(bondO),
		scene.Circle(leftX, cy, 78).Filled(atomFill(leftX, cy, scene.Solid(scene.Cyan, 1))).Faded(0.85*intro),
		scene.Circle(rightX, cy, 78).Filled(atomFill(rightX, cy, scene.Solid(scene.Magenta, 1))).Faded(0.85*intro),
		scene.Circle(leftX, cy, 18).Filled(scene.Solid(scene.White, 1)).Faded(0.28),
		scene.Circle(rightX, cy, 18).Filled(scene.Solid(scene.White, 1)).Faded(0.28),
	)

	for _, e := range s.electrons {
		a := e.Angle + orbit
		x0 := rightX + math.Cos(-a)*e.Radius*0.55
		y0 := cy + math.Sin(-a)*e.Radius*0.35
		if e.Layer == 0 {
			x0 = leftX + math.Cos(a)*e.Radius*0.55
			y0 = cy + math.Sin(a)*e.Radius*0.35
		}
		x := motion.Lerp(x0, cx+math.Cos(a)*30, bond)
		y := motion.Lerp(y0, cy+math.Sin(a)*18, bond)
		out = append(out, scene.Circle(x, y, 4).Filled(scene.Solid(scene.Lime, 1)).Faded(0.9))
	}

	if o := s.graph.At(c.Progress(frame)); o > 0 {
		g := []scene.Primitive{
			scene.RoundRect(w*0.10, h*0.76, w*0.80, 160, 22).
				Filled(scene.Solid(scene.Black, 0.28)).
				Stroked(scene.Solid(scene.White, 0.10), 1),
			scene.Text(w*0.14, h*0.81, "Potential Energy", 20).Filled(scene.Solid(scene.White, 0.84)).Heavy(),
		}
		step := w * 0.72 / 90
		for i := 0; i < 90; i++ {
			u := float64(i) / 90
			x := w*0.14 + u*w*0.72
			g = append(g, scene.Line(x, h*0.88-wellDepth(u), x+step, h*0.88-wellDepth(u+1.0/90)).
				Stroked(scene.Solid(scene.Yellow, 1), 3).Faded(0.85))
		}
		mx, my := w*0.62, h*0.84
		g = append(g,
			scene.Circle(mx, my, 8).Filled(scene.Solid(scene.Lime, 1)).Faded(0.95),
			scene.Text(mx, my-14, "Stable", 16).Filled(scene.Solid(scene.Lime, 1)).Anchored(scene.AnchorMiddle).Heavy(),
		)
		out = append(out, scene.Fade(g, o)...)
	}

	return append(out, scene.CornerTag(c, "Covalent bond: shared electrons", scene.Yellow, 1)...)
}
