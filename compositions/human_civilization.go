package compositions

import (
	"math"

	"github.com/matt-g-everett/framecast/generate"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

type chip struct {
	x, y, w float64
}

type humanCivilization struct {
	c     scene.Contract
	title *scene.Title

	timeline, arcs, chipsIn *motion.Curve
	rise                    motion.Spring
	local                   []*motion.Curve

	blocks []generate.Entity
	chips  []chip
}

const chipSize, chipH, chipGap = 16.0, 40.0, 10.0

func newHumanCivilization(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	w := float64(c.Width)
	count := cfg.Pick(22, 30)
	s := &humanCivilization{
		c:        c,
		title:    scene.NewTitle(&b, "Rise of Human Civilization", "Tools → cities → industry → networks", scene.Cyan),
		timeline: b.Window(28, float64(c.DurationInFrames-28)),
		arcs:     b.Window(0.55, 0.95),
		chipsIn:  b.Window(18, 30),
		rise:     b.Spring(motion.Spring{Damping: 20, Stiffness: 90, To: 1, Delay: 28}),
	}
	for i := 0; i < count; i++ {
		u := float64(i) / float64(count)
		s.local = append(s.local, b.Window(u-0.1, u+0.35))
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	s.blocks = layout(c, "blocks", count, generate.IndexRecipe(func(i int) generate.Entity {
		base := (i * 73) % 100
		return generate.Entity{
			X:      w*0.10 + float64(i)*w*0.80/float64(count),
			Size:   float64(28 + base%28),
			Radius: float64(80 + (base*7)%260),
		}
	}))
	s.chips = layoutChips(w-128, 64, float64(c.Height)*0.28)
	return s, nil
}

func chipWidth(st civilizationStage) float64 {
	return scene.TextWidth(st.year, chipSize) + 10 + scene.TextWidth(st.label, chipSize) + 30
}

// layoutChips wraps the timeline chips into centred rows.
func layoutChips(avail, left, top float64) []chip {
	var (
		out  []chip
		row  []chip
		used float64
	)
	y := top
	flush := func() {
		off := left + (avail-used)/2
		for _, ch := range row {
			ch.x += off
			ch.y = y
			out = append(out, ch)
		}
		row, used = nil, 0
		y += chipH + chipGap
	}
	for _, st := range civilizationStages {
		cw := chipWidth(st)
		x := used
		if len(row) > 0 {
			x += chipGap
		}
		if len(row) > 0 && x+cw > avail {
			flush()
			x = 0
		}
		row = append(row, chip{x: x, w: cw})
		used = x + cw
	}
	if len(row) > 0 {
		flush()
	}
	return out
}

func (s *humanCivilization) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	t := s.timeline.At(f)
	rise := s.rise.At(frame, float64(c.FPS))

	out := chrome(c, scene.Market, 0.12, s.title, frame)
	out = append(out, scene.Rect(0, h*0.58, w, h*0.42).Filled(scene.Linear(0, h*0.58, 0, h,
		scene.At(0, scene.Cyan, 0.30),
		scene.At(0.6, scene.Violet, 0.14),
		scene.At(1, scene.Black, 0.55),
	)).Faded(0.95))

	for i, bl := range s.blocks {
		local := s.local[i].At(t)
		r := bl.Radius * rise * local
		y := h*0.88 - r
		group := []scene.Primitive{
			scene.Rect(bl.X, y, bl.Size, r).Filled(scene.Solid(scene.Black, 0.60)).Stroked(scene.Solid(scene.White, 0.06), 1),
		}
		lw := math.Max(6, bl.Size-12)
		for k := 0; k < max(2, int(math.Floor(r/38))); k++ {
			ly := y + 10 + float64(k)*28
			group = append(group, scene.Rect(bl.X+6, ly, lw, 6).Filled(scene.Linear(bl.X+6, 0, bl.X+6+lw, 0,
				scene.At(0, scene.Lime, 0.9),
				scene.At(0.5, scene.Cyan, 0.9),
				scene.At(1, scene.Magenta, 0.9),
			)).Faded(0.10+0.18*math.Sin(f*0.06+float64(i+k))))
		}
		out = append(out, scene.Fade(group, 0.4+0.6*local)...)
	}

	arcO := 0.06 + 0.12*s.arcs.At(t)
	for i := 0; i < 6; i++ {
		a := float64(i) / 6 * math.Pi
		out = append(out, scene.Path(
			scene.M(w*0.12, h*0.80),
			scene.Q(w*0.50+math.Cos(a)*30, h*0.66-math.Sin(a)*140, w*0.88, h*0.80),
		).Stroked(scene.Solid(scene.Cyan, 1), 2).Faded(arcO))
	}

	n := len(civilizationStages)
	stage := int(math.Min(float64(n-1), math.Floor(t*float64(n))))
	var chips []scene.Primitive
	for i, st := range civilizationStages {
		ch := s.chips[i]
		border, bg, text := 0.10, 0.18, 0.55
		if i <= stage {
			border, bg, text = 0.22, 0.30, 0.92
		}
		chips = append(chips,
			scene.RoundRect(ch.x, ch.y, ch.w, chipH, chipH/2).Filled(scene.Solid(scene.Black, bg)).Stroked(scene.Solid(scene.White, border), 1))
		if i <= stage {
			chips = append(chips, scene.RoundRect(ch.x+1, ch.y+1, ch.w-2, chipH-2, chipH/2-1).Stroked(scene.Solid(scene.Cyan, 1), 2))
		}
		tx := ch.x + 15
		chips = append(chips,
			scene.Text(tx, ch.y+26, st.year, chipSize).Filled(scene.Solid(scene.White, text)).Heavy().Faded(0.75),
			scene.Text(tx+scene.TextWidth(st.year, chipSize)+10, ch.y+26, st.label, chipSize).Filled(scene.Solid(scene.White, text)).Heavy(),
		)
	}
	out = append(out, scene.Fade(chips, s.chipsIn.At(f))...)

	return append(out, scene.CornerTag(c, "Civilization: compounding networks", scene.Cyan, 1)...)
}
