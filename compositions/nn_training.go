package compositions

import (
	"math"

	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

var nnLayers = []int{5, 7, 5, 3}

type nnTraining struct {
	c     scene.Contract
	title *scene.Title

	intro, training, outro, stampFade *motion.Curve
	scaleIn, stampScale               motion.Spring

	nodes  []generate.Entity
	starts []int
	data   []generate.Entity
	step   int
}

func newNNTraining(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	w, h := float64(c.Width), float64(c.Height)
	s := &nnTraining{
		c:          c,
		title:      scene.NewTitle(&b, "Training a Neural Network", "Forward pass → loss → backprop → update. Repeat until it learns.", scene.Cyan),
		intro:      b.Window(0, 24),
		training:   b.Window(40, 200),
		outro:      b.Window(210, float64(c.LastFrame())),
		stampFade:  b.Window(0.15, 0.6),
		scaleIn:    b.Spring(motion.Spring{Damping: 20, Stiffness: 110, From: 0.98, To: 1}),
		stampScale: b.Spring(motion.Spring{Damping: 16, Stiffness: 180, From: 0.9, To: 1, Delay: 210}),
		step:       cfg.Pick(2, 1),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, n := range nnLayers {
		s.starts = append(s.starts, total)
		total += n
	}
	s.nodes = layout(c, "nodes", total, generate.IndexRecipe(func(i int) generate.Entity {
		li := 0
		for li+1 < len(s.starts) && s.starts[li+1] <= i {
			li++
		}
		count := nnLayers[li]
		k := i - s.starts[li]
		return generate.Entity{
			X:     w * (0.18 + 0.64*float64(li)/float64(len(nnLayers)-1)),
			Y:     h * (0.30 + 0.46*float64(k+1)/float64(count+1)),
			Layer: li,
		}
	}))

	count := cfg.Pick(90, 150)
	s.data = layout(c, "data", count, generate.IndexRecipe(func(i int) generate.Entity {
		a := float64(i) / float64(count) * 2 * math.Pi
		r := 1 - float64(i%11)/12
		return generate.Entity{
			X:     w*0.14 + math.Cos(a)*w*0.07*r,
			Y:     h*0.55 + math.Sin(a)*h*0.10*r,
			Angle: a,
		}
	}))
	return s, nil
}

func nnLoss(t float64) float64 {
	return 0.12 + 0.85*math.Pow(1-t, 2.2)
}

func (s *nnTraining) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	intro := s.intro.At(f)
	training := s.training.At(f)
	outro := s.outro.At(f)
	pulseX := motion.Lerp(w*0.18, w*0.82, training)

	out := chrome(c, scene.Lab, 0.20, s.title, frame)

	for i, p := range s.data {
		o := intro * 0.9 * (0.6 + 0.4*wave(f*0.06+float64(i)))
		out = append(out, scene.Circle(p.X, p.Y, 2.2).Filled(scene.Solid(scene.Cyan, 1)).Faded(o))
	}

	for fi, from := range s.nodes {
		next := from.Layer + 1
		if next >= len(nnLayers) {
			continue
		}
		for j := 0; j < nnLayers[next]; j += s.step {
			to := s.nodes[s.starts[next]+j]
			base := 0.14 + 0.06*wave(f*0.05+float64(fi+j))
			line := scene.Line(from.X, from.Y, to.X, to.Y)
			if math.Abs(pulseX-to.X) < 90 {
				line = line.Stroked(scene.Solid(scene.Lime, 1), 2.6)
			} else {
				line = line.Stroked(scene.Linear(from.X, 0, to.X, 0,
					scene.At(0, scene.Cyan, 0.35),
					scene.At(0.5, scene.Violet, 0.35),
					scene.At(1, scene.Lime, 0.35),
				), 1.2)
			}
			out = append(out, line.Faded(intro*base))
		}
	}

	for _, n := range s.nodes {
		r, o, col := 7.0, 0.75, scene.Cyan
		if math.Abs(pulseX-n.X) < 70 {
			r, o, col = 10, 0.95, scene.Lime
		}
		out = append(out,
			scene.Circle(n.X, n.Y, r).Filled(scene.Solid(col, 1)).Faded(o),
			scene.Circle(n.X, n.Y, r*0.5).Filled(scene.Solid(scene.White, 1)).Faded(0.15),
		)
	}

	out = append(out, scene.RoundRect(w*0.12, h*0.76, w*0.76, h*0.14, 18).
		Filled(scene.Solid(scene.Black, 0.25)).
		Stroked(scene.Solid(scene.White, 0.10), 1))
	for i := 0; i < 8; i++ {
		x := w*0.14 + float64(i)*w*0.72/7
		out = append(out, scene.Line(x, h*0.78, x, h*0.88).Stroked(scene.Solid(scene.White, 0.06), 1))
	}
	draw := motion.Clamp01((training - 0.05) / 0.9)
	for i := 0; i < 90; i++ {
		t0, t1 := float64(i)/90, float64(i+1)/90
		if t1 > draw {
			break
		}
		out = append(out, scene.Line(
			w*0.14+t0*w*0.72, h*0.88-nnLoss(t0)*h*0.09,
			w*0.14+t1*w*0.72, h*0.88-nnLoss(t1)*h*0.09,
		).Stroked(scene.Solid(scene.Magenta, 1), 3).Faded(0.9))
	}
	out = append(out,
		scene.Circle(w*0.14+training*w*0.72, h*0.88-nnLoss(training)*h*0.09, 8).Filled(scene.Solid(scene.Lime, 1)).Faded(0.95),
		scene.Text(w*0.16, h*0.805, "Loss ↓", 20).Filled(scene.Solid(scene.White, 0.78)).Heavy(),
	)

	const label, size = "TRAINED", 24.0
	sw, sh := stampBox(label, size)
	out = append(out, stamp(w-64-sw, h-120-sh, label, size, scene.Solid(scene.Lime, 1), -10,
		s.stampScale.At(frame, float64(c.FPS)), s.stampFade.At(outro))...)

	out = append(out, scene.CornerTag(c, "Gradient descent in motion", scene.Lime, 1)...)
	return zoom(c, out, s.scaleIn.At(frame, float64(c.FPS)))
}
