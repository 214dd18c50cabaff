package compositions

import (
	"math"

	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

type humanAISymbiosis struct {
	c     scene.Contract
	title *scene.Title

	intro, merge, handshake, network, bridge *motion.Curve
	lockIn                                   motion.Spring

	nodes []generate.Entity
}

func newHumanAISymbiosis(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	s := &humanAISymbiosis{
		c:         c,
		title:     scene.NewTitle(&b, "Human–AI Symbiosis", "Augmentation → collaboration → shared capability", scene.Lime),
		intro:     b.Window(0, 18),
		merge:     b.Window(48, 200),
		handshake: b.Window(0.55, 0.85),
		network:   b.Window(0, 0.2),
		bridge:    b.Curve([]float64{0.2, 0.95}, []float64{0, 0.9}, motion.Clamped()),
		lockIn:    b.Spring(motion.Spring{Damping: 18, Stiffness: 140, To: 1, Delay: 190}),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	n := cfg.Pick(36, 56)
	s.nodes = layout(c, "nodes", n, generate.IndexRecipe(func(i int) generate.Entity {
		return generate.Entity{
			Angle:  float64(i) / float64(n) * 2 * math.Pi,
			Radius: 0.15 + generate.Fraction(i, 61, 100),
		}
	}))
	return s, nil
}

func (s *humanAISymbiosis) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	cx, cy := w/2, h*0.56
	span := math.Min(w, h)
	intro := s.intro.At(f)
	merge := s.merge.At(f)
	humanX := motion.Lerp(cx-w*0.16, cx-w*0.06, merge)
	aiX := motion.Lerp(cx+w*0.16, cx+w*0.06, merge)
	halo := motion.Lerp(0, 0.45, s.lockIn.At(frame, float64(c.FPS)))

	out := chrome(c, scene.Lab, 0.14, s.title, frame)
	hr := span * 0.32
	out = append(out, scene.Circle(cx, cy, hr).Filled(scene.Radial(cx, cy, hr*1.2,
		scene.At(0, scene.Lime, 0.35),
		scene.At(0.4, scene.Cyan, 0.18),
		scene.At(1, scene.Ink, 0),
	)).Faded(halo))

	out = append(out, scene.Fade([]scene.Primitive{
		scene.Circle(humanX, cy-170, 44).Filled(scene.Solid(scene.White, 0.88)),
		scene.RoundRect(humanX-54, cy-120, 108, 210, 54).Filled(scene.Solid(scene.White, 0.16)),
		scene.RoundRect(humanX-94, cy-80, 188, 28, 14).Filled(scene.Solid(scene.White, 0.14)),
		scene.RoundRect(aiX-60, cy-190, 120, 120, 26).Filled(scene.Solid(scene.Cyan, 0.22)),
		scene.Circle(aiX, cy-130, 26).Filled(scene.Solid(scene.Cyan, 1)).Faded(0.9),
		scene.RoundRect(aiX-78, cy-52, 156, 168, 34).Filled(scene.Solid(scene.Violet, 0.18)),
	}, 0.95*intro)...)

	if net := s.network.At(merge); net > 0 {
		for i, n := range s.nodes {
			rr := n.Radius * span * 0.28
			x0 := aiX + math.Cos(n.Angle+f*0.01)*rr
			y0 := cy - 70 + math.Sin(n.Angle+f*0.01)*rr*0.6
			x := motion.Lerp(x0, motion.Lerp(x0, humanX+24, 0.35), merge)
			y := motion.Lerp(y0, motion.Lerp(y0, cy-40, 0.25), merge)
			o := 0.25 + 0.45*math.Sin(f*0.06+float64(i))
			out = append(out, scene.Circle(x, y, 4).Filled(scene.Solid(scene.Cyan, 1)).Faded(o).Faded(net))
		}
	}

	x1, x2 := humanX+66, aiX-66
	out = append(out, scene.Line(x1, cy-30, x2, cy-30).Stroked(scene.Linear(x1, 0, x2, 0,
		scene.At(0, scene.Cyan, 0.9),
		scene.At(0.5, scene.Lime, 0.9),
		scene.At(1, scene.Violet, 0.9),
	), motion.Lerp(2, 8, merge)).Rounded().Faded(s.bridge.At(merge)))

	if o := s.handshake.At(merge); o > 0 {
		out = append(out, scene.Fade([]scene.Primitive{
			scene.RoundRect(cx-80, cy-62, 160, 64, 18).Filled(scene.Solid(scene.Black, 0.30)).Stroked(scene.Solid(scene.White, 0.10), 1),
			scene.Text(cx, cy-18, "SYMBIOSIS", 22).Filled(scene.Solid(scene.Lime, 1)).Anchored(scene.AnchorMiddle).Heavy(),
		}, o)...)
	}

	return append(out, scene.CornerTag(c, "Tools become teammates", scene.Lime, 1)...)
}
