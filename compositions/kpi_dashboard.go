package compositions

import (
	"fmt"
	"math"
	"strings"

	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

type kpi struct {
	label   string
	value   float64
	percent bool
	from    float64
	until   float64
}

// kpiData counts up from from to until, the latter a fraction of the
// composition.
var kpiData = []kpi{
	{"Revenue", 1250000, false, 10, 0.4},
	{"Users", 45230, false, 15, 0.5},
	{"Growth", 23.5, true, 20, 0.6},
	{"Retention", 87.2, true, 25, 0.7},
}

const (
	cardPad = 30
	cardH   = 200
	cardGap = 30
)

type kpiDashboard struct {
	c scene.Contract

	fade, scale *motion.Curve
	counters    []*motion.Curve
}

func newKPIDashboard(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	n := float64(c.DurationInFrames)
	s := &kpiDashboard{
		c:     c,
		fade:  b.Window(0, 10),
		scale: b.Curve([]float64{0, 15}, []float64{0.8, 1}, motion.ClampRight()),
	}
	entrance := cfg.Entrance(motion.Linear)
	for _, k := range kpiData {
		s.counters = append(s.counters, b.Curve([]float64{k.from, n * k.until}, []float64{0, k.value},
			motion.Clamped(), motion.WithEasing(entrance)))
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// formatKPI abbreviates millions and thousands. Halves round up.
func formatKPI(v float64, percent bool) string {
	tenths := func(x float64) float64 { return math.Round(x*10) / 10 }
	switch {
	case percent:
		return fmt.Sprintf("%.1f%%", tenths(v))
	case v >= 1000000:
		return fmt.Sprintf("$%.1fM", tenths(v/1000000))
	case v >= 1000:
		return fmt.Sprintf("%.0fK", math.Round(v/1000))
	}
	return fmt.Sprintf("%.0f", math.Round(v))
}

func (s *kpiDashboard) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	total := float64(len(kpiData))*cardH + float64(len(kpiData)-1)*cardGap
	top := (h - total) / 2
	scale := s.scale.At(f)

	out := []scene.Primitive{paper(c)}
	for i, k := range kpiData {
		x, y := float64(cardPad), top+float64(i)*(cardH+cardGap)
		cw := w - 2*cardPad
		card := []scene.Primitive{
			scene.RoundRect(x, y+4, cw, cardH, 12).Filled(scene.Solid(scene.Black, 0.1)),
			scene.RoundRect(x, y, cw, cardH, 12).Filled(scene.Solid(scene.White, 1)),
			scene.Text(x+30, y+58, strings.ToUpper(k.label), 20).Filled(scene.Solid(reportText, 1)).Faded(0.7),
			scene.Text(x+30, y+150, formatKPI(s.counters[i].At(f), k.percent), 72).
				Filled(scene.Solid(reportInk, 1)).Heavy(),
		}
		card = scene.ScaleAbout(card, scale, x+cw/2, y+cardH/2)
		out = append(out, scene.Fade(card, s.fade.At(f))...)
	}
	return out
}
