package compositions

import (
	"math"
	"sort"
	"strconv"

	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/scene"
)

type barDatum struct {
	name  string
	value float64
}

var barRaceData = []barDatum{
	{"Product A", 450},
	{"Product B", 320},
	{"Product C", 280},
	{"Product D", 195},
	{"Product E", 150},
}

const (
	barPad    = 40
	barRow    = 120
	barGap    = 20
	barMinLen = 260
)

type bar struct {
	datum         barDatum
	grow, opacity *motion.Curve
}

type barRace struct {
	c    scene.Contract
	bars []bar
	max  float64
}

func newBarRace(c scene.Contract, cfg scene.Config) (scene.Composer, error) {
	var b motion.Builder
	data := append([]barDatum(nil), barRaceData...)
	sort.SliceStable(data, func(i, j int) bool { return data[i].value > data[j].value })

	s := &barRace{c: c, max: data[0].value}
	entrance := cfg.Entrance(motion.Linear)
	for i, d := range data {
		delay := float64(i * 5)
		s.bars = append(s.bars, bar{
			datum:   d,
			grow:    b.Curve([]float64{delay, delay + 30}, []float64{0, d.value}, motion.Clamped(), motion.WithEasing(entrance)),
			opacity: b.Window(delay, delay+10),
		})
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *barRace) Compose(frame int) []scene.Primitive {
	c := s.c
	f := float64(frame)
	w, h := float64(c.Width), float64(c.Height)
	track := w - 2*barPad
	total := float64(len(s.bars))*barRow + float64(len(s.bars)-1)*barGap
	top := (h - total) / 2

	out := []scene.Primitive{paper(c)}
	for i, br := range s.bars {
		v := br.grow.At(f)
		y := top + float64(i)*(barRow+barGap)
		length := barMinLen + (track-barMinLen)*v/s.max
		out = append(out, scene.Fade([]scene.Primitive{
			scene.RoundRect(barPad, y, length, barRow, 8).Filled(scene.Solid(reportInk, 1)),
			scene.Text(barPad+15, y+barRow/2+9, br.datum.name, 26).Filled(scene.Solid(scene.White, 1)).Heavy(),
			scene.Text(barPad+length-15, y+barRow/2+12, strconv.Itoa(int(math.Round(v))), 34).
				Filled(scene.Solid(scene.White, 1)).Anchored(scene.AnchorEnd).Heavy(),
		}, br.opacity.At(f))...)
	}
	return out
}
