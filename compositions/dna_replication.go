package compositions

import (
	"math"

	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

type dnaReplication struct {
	c     scene.Contract
	title *scene.Title

	intro, unzip, build, enzyme, bar *motion.Curve
	gap                              *motion.Curve

	rungs []generate.Entity
}

func newDNAReplication(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	s := &dnaReplication{
		c:      c,
		title:  scene.NewTitle(&b, "DNA Replication", "Unzip → match bases → build the new strand", scene.Lime),
		intro:  b.Window(0, 18),
		unzip:  b.Window(30, 120),
		build:  b.Window(90, 200),
		enzyme: b.Window(0.05, 0.25),
		bar:    b.Window(0.1, 0.25),
		gap:    b.Curve([]float64{0, 1}, []float64{34, 160}),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	pairs := cfg.Pick(18, 26)
	s.rungs = layout(c, "rungs", pairs, generate.IndexRecipe(func(i int) generate.Entity {
		return generate.Entity{Value: float64(i) / float64(pairs-1), Layer: i % 2}
	}))
	return s, nil
}

func strandFill(x, r float64, from, to scene.Paint) scene.Paint {
	return scene.Linear(x-r, 0, x+r, 0, scene.At(0, from.Color, 0.9), scene.At(1, to.Color, 0.9))
}

func (s *dnaReplication) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	intro := s.intro.At(f)
	build := s.build.At(f)
	sep := s.gap.At(s.unzip.At(f))
	twist := f * 0.04

	out := chrome(c, scene.Bio, 0.14, s.title, frame)
	for _, r := range s.rungs {
		u := r.Value
		y := h * (0.30 + u*0.50)
		xc := w*0.50 + math.Sin(twist+u*math.Pi*6)*22
		lx, rx := xc-sep*0.55, xc+sep*0.55
		show := motion.Clamp01(motion.Lerp(-0.15+u, 0.35+u, build))
		col := scene.Yellow
		if r.Layer == 0 {
			col = scene.Lime
		}
		out = append(out,
			scene.Circle(lx, y, 6).Filled(strandFill(lx, 6, scene.Solid(scene.Cyan, 1), scene.Solid(scene.Violet, 1))).Faded(intro),
			scene.Circle(rx, y, 6).Filled(strandFill(rx, 6, scene.Solid(scene.Magenta, 1), scene.Solid(scene.Yellow, 1))).Faded(intro),
			scene.Line(lx+8, y, rx-8, y).Stroked(scene.Solid(col, 1), 3).Faded(0.35+0.55*show),
		)
	}
	out = append(out, scene.Line(w*0.50, h*0.28, w*0.50, h*0.82).Stroked(scene.Solid(scene.White, 0.08), 2).Faded(0.5*intro))

	if o := s.enzyme.At(build); o > 0 {
		px := w*0.50 + math.Sin(f*0.03)*12
		py := motion.Lerp(h*0.78, h*0.34, build)
		out = append(out, scene.Fade([]scene.Primitive{
			scene.Circle(px, py, 28).Filled(scene.Solid(scene.Black, 0.35)),
			scene.Circle(px, py, 22).Filled(scene.Solid(scene.Lime, 1)).Faded(0.85),
			scene.Circle(px, py, 10).Filled(scene.Solid(scene.White, 1)).Faded(0.18),
			scene.Text(px, py+56, "polymerase", 18).Filled(scene.Solid(scene.White, 0.82)).Anchored(scene.AnchorMiddle).Heavy(),
		}, o)...)
	}

	if o := s.bar.At(build); o > 0 {
		out = append(out, scene.Fade([]scene.Primitive{
			scene.RoundRect(w*0.16, h*0.86, w*0.68, 18, 9).Filled(scene.Solid(scene.White, 0.10)),
			scene.RoundRect(w*0.16, h*0.86, w*0.68*build, 18, 9).Filled(scene.Solid(scene.Lime, 1)).Faded(0.92),
			scene.Text(w*0.16, h*0.84, "replication", 16).Filled(scene.Solid(scene.White, 0.72)).Heavy(),
		}, o)...)
	}

	return append(out, scene.CornerTag(c, "Semi-conservative replication", scene.Lime, 1)...)
}
