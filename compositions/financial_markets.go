package compositions

import (
	"fmt"
	"math"

	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

type candle struct {
	open, high, low, close float64
}

type financialMarkets struct {
	c     scene.Contract
	title *scene.Title

	intro, live, ticker *motion.Curve
	price, vol, glow    *motion.Curve

	candles []candle
}

func newFinancialMarkets(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	s := &financialMarkets{
		c:      c,
		title:  scene.NewTitle(&b, "Financial Markets Reacting", "Orders hit → price moves → volatility spikes", scene.Lime),
		intro:  b.Window(0, 18),
		live:   b.Window(24, float64(c.DurationInFrames-18)),
		ticker: b.Window(12, 24),
		price:  b.Curve(marketKeyframes.t, marketKeyframes.price, motion.Clamped()),
		vol:    b.Curve(marketKeyframes.t, marketKeyframes.vol, motion.Clamped()),
		glow:   b.Curve([]float64{0.15, 0.75}, []float64{0.15, 0.55}, motion.ClampRight()),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	s.candles = s.series(cfg.Pick(36, 52))
	return s, nil
}

// series walks the keyframed price path, each candle opening at the close of
// the previous one.
func (s *financialMarkets) series(n int) []candle {
	out := make([]candle, 0, n)
	p := 100.0
	for i := 0; i < n; i++ {
		u := float64(i) / float64(n-1)
		price, vol := s.price.At(u), s.vol.At(u)
		drift := (price - p) * 0.6
		fi := float64(i)
		noise := math.Sin(fi*1.7)*1.2 + math.Cos(fi*0.9)*0.8
		cl := p + drift*0.15 + noise*(0.6+vol*1.8)
		spread := 0.8 + vol*6
		out = append(out, candle{
			open:  p,
			close: cl,
			high:  math.Max(p, cl) + spread*(0.4+float64(i%7)/10),
			low:   math.Min(p, cl) - spread*(0.4+float64(i%5)/10),
		})
		p = cl
	}
	return out
}

func (s *financialMarkets) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	live := s.live.At(f)
	n := len(s.candles)
	view := s.candles[:min(n, max(2, int(math.Floor(2+live*float64(n-1)))))]

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, cd := range view {
		lo = math.Min(lo, math.Min(cd.low, math.Min(cd.open, cd.close)))
		hi = math.Max(hi, math.Max(cd.high, math.Max(cd.open, cd.close)))
	}
	pad := (hi-lo)*0.12 + 1
	minV, maxV := lo-pad, hi+pad

	cx, cy, cw, ch := w*0.10, h*0.30, w*0.80, h*0.46
	yOf := func(v float64) float64 { return cy + ch - (v-minV)/(maxV-minV)*ch }

	out := chrome(c, scene.Market, 0.14, s.title, frame)
	out = append(out, scene.RoundRect(cx, cy, cw, ch, 24).Filled(scene.Solid(scene.Black, 0.26)).Stroked(scene.Solid(scene.White, 0.12), 1))
	for i := 0; i < 6; i++ {
		y := cy + 18 + float64(i)*(ch-36)/5
		out = append(out, scene.Line(cx+18, y, cx+cw-18, y).Stroked(scene.Solid(scene.White, 0.06), 1))
	}

	step := (cw - 90) / float64(n-1)
	bodyW := math.Max(10, step*0.55)
	o := 0.35 + 0.65*s.intro.At(f)
	for i, cd := range view {
		x := cx + 45 + float64(i)*step
		top, bot := yOf(math.Max(cd.open, cd.close)), yOf(math.Min(cd.open, cd.close))
		bodyH := math.Max(6, bot-top)
		fill := scene.Linear(0, top, 0, top+bodyH, scene.At(0, scene.Magenta, 0.95), scene.At(1, scene.Orange, 0.65))
		if cd.close >= cd.open {
			fill = scene.Linear(0, top, 0, top+bodyH, scene.At(0, scene.Lime, 0.95), scene.At(1, scene.Cyan, 0.65))
		}
		out = append(out,
			scene.Line(x, yOf(cd.high), x, yOf(cd.low)).Stroked(scene.Solid(scene.White, 0.22), 2).Faded(o),
			scene.RoundRect(x-bodyW/2, top, bodyW, bodyH, 3).Filled(fill).Faded(0.92*o),
		)
	}

	last := view[len(view)-1]
	lastVol := s.vol.At(live)
	py := yOf(last.close)
	out = append(out, scene.Line(cx+18, py, cx+cw-18, py).Stroked(scene.Solid(scene.Cyan, 1), 2).Faded(0.18+s.glow.At(lastVol)))

	trend := scene.Magenta
	if last.close >= last.open {
		trend = scene.Lime
	}
	ty := cy + ch
	out = append(out, scene.Fade([]scene.Primitive{
		scene.RoundRect(cx, ty+26, cw, 108, 22).Filled(scene.Solid(scene.Black, 0.22)).Stroked(scene.Solid(scene.White, 0.10), 1),
		scene.Text(cx+26, ty+66, "TICKER: XYZ", 18).Filled(scene.Solid(scene.White, 0.78)).Heavy(),
		scene.Text(cx+26, ty+102, fmt.Sprintf("$%.2f", last.close), 40).Filled(scene.Solid(scene.White, 0.92)).Heavy(),
		scene.Text(cx+cw-26, ty+102, fmt.Sprintf("vol %d%%", int(math.Round(lastVol*100))), 22).
			Filled(scene.Solid(trend, 1)).Anchored(scene.AnchorEnd).Heavy(),
	}, s.ticker.At(f))...)

	return append(out, scene.CornerTag(c, "Microstructure → macro movement", scene.Lime, 1)...)
}
