package compositions

import (
	"fmt"
	"math"

	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

type evolution struct {
	c     scene.Contract
	title *scene.Title

	progress *motion.Curve
	appear   []*motion.Curve
	lift     []motion.Spring
}

func newEvolution(c scene.Contract, _ scene.Config) (scene.Composer, error) {
	var b motion.Builder
	s := &evolution{
		c:        c,
		title:    scene.NewTitle(&b, "Evolution from Single-Cell Life", "Small variations + selection → new forms over time", scene.Orange),
		progress: b.Window(28, float64(c.DurationInFrames-28)),
	}
	n := float64(len(evolutionStages))
	for i := range evolutionStages {
		fi := float64(i)
		s.appear = append(s.appear, b.Window((fi-0.5)/n, (fi+0.3)/n))
		s.lift = append(s.lift, b.Spring(motion.Spring{Damping: 18, Stiffness: 140, From: 18, To: 0, Delay: 28 + i*12}))
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *evolution) Compose(frame int) []scene.Primitive {
	const cardH, gap = 118.0, 20.0
	c := s.c
	w, h := float64(c.Width), float64(c.Height)
	progress := s.progress.At(float64(frame))
	n := len(evolutionStages)
	active := int(math.Min(float64(n-1), math.Floor(progress*float64(n))))
	cardW := w * 0.78
	x0, y0 := (w-cardW)/2, h*0.34

	out := chrome(c, scene.Bio, 0.12, s.title, frame)
	for i, st := range evolutionStages {
		y := y0 + float64(i)*(cardH+gap) + s.lift[i].At(frame, float64(c.FPS))
		border := scene.Solid(scene.White, 0.08)
		scale := 1.0
		if i == active {
			border = scene.Solid(scene.White, 0.18)
			scale = 1.02
		}
		ix, iy := x0+18, y+(cardH-64)/2
		card := []scene.Primitive{
			scene.RoundRect(x0, y, cardW, cardH, 22).Filled(scene.Solid(scene.Black, 0.28)).Stroked(border, 1),
			scene.RoundRect(ix, iy, 64, 64, 20).Filled(scene.Radial(ix+19.2, iy+19.2, 63.4,
				scene.At(0, scene.White, 0.9),
				scene.At(0.45, st.color, 1),
				scene.At(0.75, scene.Black, 0),
				scene.At(1, scene.Black, 0),
			)).Faded(0.95),
			scene.Text(ix+80, y+57, st.label, 30).Filled(scene.Solid(scene.White, 0.92)).Heavy(),
			scene.Text(ix+80, y+85, st.detail, 16).Filled(scene.Solid(scene.White, 0.64)),
			scene.Text(x0+cardW-18, y+65, fmt.Sprintf("%d/%d", i+1, n), 18).Filled(scene.Solid(st.color, 1)).Anchored(scene.AnchorEnd).Heavy(),
		}
		if i == active {
			card = append(card, scene.RoundRect(x0+1, y+1, cardW-2, cardH-2, 21).Stroked(scene.Solid(st.color, 1), 2))
		}
		card = scene.ScaleAbout(card, scale, x0+cardW/2, y+cardH/2)
		out = append(out, scene.Fade(card, s.appear[i].At(progress))...)
	}

	rx, rw := w*0.12, w*0.76
	ry := h - 153
	out = append(out, scene.RoundRect(rx, ry, rw, 16, 8).Filled(scene.Solid(scene.White, 0.10)))
	if fill := rw * progress; fill > 0 {
		out = append(out, scene.RoundRect(rx, ry, fill, 16, 8).Filled(scene.Linear(rx, 0, rx+fill, 0,
			scene.At(0, scene.Cyan, 1),
			scene.At(0.5, scene.Orange, 1),
			scene.At(1, scene.Magenta, 1),
		)))
	}
	label := scene.Solid(scene.White, 0.62)
	out = append(out,
		scene.Text(rx, ry+39, "billions of years", 14).Filled(label).Heavy(),
		scene.Text(rx+rw, ry+39, "in 8 seconds", 14).Filled(label).Anchored(scene.AnchorEnd).Heavy(),
	)

	return append(out, scene.CornerTag(c, "Selection amplifies what works", scene.Orange, 1)...)
}
