package compositions

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

type bigBang struct {
	c     scene.Contract
	title *scene.Title

	inflation, particles, cmb, singularity, caption *motion.Curve
	shock                                           motion.Spring

	dots, noise []generate.Entity
}

func newBigBang(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	s := &bigBang{
		c:           c,
		title:       scene.NewTitle(&b, "Birth of the Universe", "The Big Bang → inflation → first light", scene.Magenta),
		inflation:   b.Window(28, 88),
		particles:   b.Window(72, 150),
		cmb:         b.Window(150, 210),
		singularity: b.Curve([]float64{0, 30}, []float64{0.9, 0}, motion.ClampRight()),
		caption:     b.Window(0.78, 0.95),
		shock:       b.Spring(motion.Spring{Damping: 18, Stiffness: 220, To: 1, Delay: 28}),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	count := cfg.Pick(120, 220)
	s.dots = layout(c, "dots", count, generate.IndexRecipe(func(i int) generate.Entity {
		return generate.Entity{
			Angle:  float64(i) / float64(count) * 2 * math.Pi,
			Radius: (0.25 + generate.Fraction(i, 73, 100)) * 0.85,
			Size:   1.4 + generate.Fraction(i, 17, 10),
			Layer:  i % 3,
		}
	}))
	// The noise tiling is laid out on the reference 1080x1920 canvas and
	// stretched to the contract size.
	w, h := float64(c.Width), float64(c.Height)
	s.noise = layout(c, "noise", cfg.Pick(900, 1500), generate.IndexRecipe(func(i int) generate.Entity {
		return generate.Entity{
			X:     float64((i*97)%1080) / 1080 * w,
			Y:     float64((i*223)%1920) / 1920 * h,
			Value: generate.Fraction(i, 13, 100),
		}
	}))
	return s, nil
}

func (s *bigBang) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	cx, cy := w/2, h/2
	inflation := s.inflation.At(f)
	particles := s.particles.At(f)
	burst := motion.Lerp(2, math.Max(w, h)*0.8, s.shock.At(frame, float64(c.FPS)))

	out := chrome(c, scene.Space, 0.16, s.title, frame)
	out = append(out,
		scene.Circle(cx, cy, 14).Filled(scene.Solid(scene.White, 1)).Faded(s.singularity.At(f)),
		scene.Circle(cx, cy, burst).Filled(scene.Radial(cx, cy, burst*1.2,
			scene.At(0, scene.White, 1),
			scene.At(0.18, scene.Yellow, 0.95),
			scene.At(0.45, scene.Magenta, 0.65),
			scene.At(1, scene.Ink, 0),
		)).Faded(0.75*inflation),
	)

	hues := [3]colorful.Color{scene.Cyan, scene.Magenta, scene.Yellow}
	for _, d := range s.dots {
		rr := burst * (0.25 + d.Radius)
		out = append(out, scene.Circle(cx+math.Cos(d.Angle)*rr, cy+math.Sin(d.Angle)*rr, d.Size).
			Filled(scene.Solid(hues[d.Layer], 1)).
			Faded((0.1+0.9*particles)*0.85))
	}

	if cmb := s.cmb.At(f); cmb > 0 {
		for _, p := range s.noise {
			col := scene.Yellow
			switch {
			case p.Value > 0.66:
				col = scene.Cyan
			case p.Value > 0.33:
				col = scene.Magenta
			}
			out = append(out, scene.Rect(p.X, p.Y, 2, 2).Filled(scene.Solid(col, 1)).Faded((0.05+0.22*p.Value)*cmb))
		}
		out = append(out, scene.Rect(0, 0, w, h).Filled(scene.Solid(scene.Black, 0.10)).Faded(cmb))
	}

	if o := s.caption.At(c.Progress(frame)); o > 0 {
		out = append(out, scene.Fade([]scene.Primitive{
			scene.RoundRect(w*0.12, h*0.72, w*0.76, 130, 22).
				Filled(scene.Solid(scene.Black, 0.30)).
				Stroked(scene.Solid(scene.White, 0.10), 1),
			scene.Text(w*0.16, h*0.77, "Space expands.", 28).Filled(scene.Solid(scene.White, 0.90)).Heavy(),
			scene.Text(w*0.16, h*0.82, "Tiny fluctuations become everything you’ll ever see.", 20).Filled(scene.Solid(scene.White, 0.72)),
		}, o)...)
	}

	out = append(out, scene.CornerTag(c, "From hot dense to structured cosmos", scene.Magenta, 1)...)
	return zoom(c, out, motion.Lerp(1.06, 1, inflation))
}
