package compositions

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/matt-g-everett/framecast/scene"
)

func resolve(t *testing.T, id string, q scene.Quality) (scene.Contract, scene.Composer) {
	t.Helper()
	c, comp, err := Default().ResolveWith(id, scene.Config{Quality: q})
	if err != nil {
		t.Fatalf("%s: %v", id, err)
	}
	return c, comp
}

func TestCatalogueContracts(t *testing.T) {
	r := Default()
	cs := r.Contracts()
	if len(cs) != len(IDs()) {
		t.Fatalf("expected %d contracts, got %d", len(IDs()), len(cs))
	}
	for _, c := range cs {
		if c.DurationInFrames != 240 || c.FPS != 30 || c.Width != 1080 || c.Height != 1920 {
			t.Fatalf("%s: unexpected contract %+v", c.ID, c)
		}
		if c.Defaults.Quality != scene.Final {
			t.Fatalf("%s: expected final default, got %s", c.ID, c.Defaults.Quality)
		}
	}

	var dup *scene.DuplicateCompositionError
	if err := Register(r); err == nil {
		t.Fatalf("expected registering twice to fail")
	} else if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateCompositionError, got %v", err)
	}
}

func TestComposePure(t *testing.T) {
	for _, id := range IDs() {
		_, comp := resolve(t, id, scene.Draft)
		for _, f := range []int{0, 17, 120, 239} {
			if !reflect.DeepEqual(comp.Compose(f), comp.Compose(f)) {
				t.Fatalf("%s: frame %d differs between calls", id, f)
			}
		}
	}
}

func TestComposeSeekOrder(t *testing.T) {
	for _, id := range IDs() {
		c, comp := resolve(t, id, scene.Draft)
		seq := make([][]scene.Primitive, c.DurationInFrames)
		for f := range seq {
			seq[f] = comp.Compose(f)
		}

		_, fresh := resolve(t, id, scene.Draft)
		for _, f := range rand.New(rand.NewSource(3)).Perm(c.DurationInFrames)[:40] {
			if !reflect.DeepEqual(fresh.Compose(f), seq[f]) {
				t.Fatalf("%s: frame %d depends on evaluation order", id, f)
			}
		}
	}
}

func TestComposeClampsFrames(t *testing.T) {
	for _, id := range IDs() {
		c, comp := resolve(t, id, scene.Draft)
		if !reflect.DeepEqual(comp.Compose(-50), comp.Compose(0)) {
			t.Fatalf("%s: expected frame -50 to render frame 0", id)
		}
		if !reflect.DeepEqual(comp.Compose(c.DurationInFrames+50), comp.Compose(c.LastFrame())) {
			t.Fatalf("%s: expected frame N+50 to render the last frame", id)
		}
	}
}

func TestComposeWellFormed(t *testing.T) {
	for _, id := range IDs() {
		_, comp := resolve(t, id, scene.Final)
		for f := 0; f < 240; f += 7 {
			ps := comp.Compose(f)
			if len(ps) == 0 {
				t.Fatalf("%s: frame %d is empty", id, f)
			}
			for i, p := range ps {
				if p.Opacity < 0 || p.Opacity > 1 {
					t.Fatalf("%s: frame %d primitive %d has opacity %v", id, f, i, p.Opacity)
				}
				for _, v := range []float64{p.X, p.Y, p.X2, p.Y2, p.W, p.H, p.R, p.RX, p.RY, p.StrokeWidth} {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("%s: frame %d primitive %d has non-finite geometry %+v", id, f, i, p)
					}
				}
			}
			if _, err := json.Marshal(ps); err != nil {
				t.Fatalf("%s: frame %d: %v", id, f, err)
			}
		}
	}
}

func TestQualityChangesDensityOnly(t *testing.T) {
	for _, id := range []string{"nn-training", "big-bang", "galaxy-formation", "star-formation", "black-hole"} {
		_, draft := resolve(t, id, scene.Draft)
		_, final := resolve(t, id, scene.Final)
		d, f := len(draft.Compose(120)), len(final.Compose(120))
		if d >= f {
			t.Fatalf("%s: expected draft to draw fewer primitives, got %d vs %d", id, d, f)
		}
		if !reflect.DeepEqual(draft.Compose(120)[:3], final.Compose(120)[:3]) {
			t.Fatalf("%s: expected the same background at both tiers", id)
		}
	}
}

func TestTitleFadesIn(t *testing.T) {
	_, comp := resolve(t, "nn-training", scene.Final)
	ps := comp.Compose(0)
	var title *scene.Primitive
	for i := range ps {
		if ps[i].Kind == scene.KindText && ps[i].Text == "Training a Neural Network" {
			title = &ps[i]
		}
	}
	if title == nil {
		t.Fatalf("expected a title primitive")
	}
	if title.Opacity != 0 {
		t.Fatalf("expected title hidden at frame 0, got %v", title.Opacity)
	}
}

func TestStarFormationFrozen(t *testing.T) {
	_, a := resolve(t, "star-formation", scene.Final)
	_, b := resolve(t, "star-formation", scene.Final)
	if !reflect.DeepEqual(a.Compose(10), b.Compose(10)) {
		t.Fatalf("expected the seeded layout to be identical across instantiations")
	}
}

func TestConcurrentCompose(t *testing.T) {
	_, comp := resolve(t, "galaxy-formation", scene.Final)
	want := comp.Compose(99)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !reflect.DeepEqual(comp.Compose(99), want) {
				t.Error("expected concurrent evaluation to match")
			}
		}()
	}
	wg.Wait()
}

func TestMarketSeriesContinuous(t *testing.T) {
	s, err := newFinancialMarkets(Contract("financial-markets"), scene.Config{Quality: scene.Final})
	if err != nil {
		t.Fatal(err)
	}
	fm := s.(*financialMarkets)
	if len(fm.candles) != 52 {
		t.Fatalf("expected 52 candles, got %d", len(fm.candles))
	}
	for i := 1; i < len(fm.candles); i++ {
		if fm.candles[i].open != fm.candles[i-1].close {
			t.Fatalf("expected candle %d to open at the previous close", i)
		}
	}
	for _, cd := range fm.candles {
		if cd.high < math.Max(cd.open, cd.close) || cd.low > math.Min(cd.open, cd.close) {
			t.Fatalf("expected wick to span the body, got %+v", cd)
		}
	}
}

func TestStarFormationLayout(t *testing.T) {
	s, err := newStarFormation(Contract("star-formation"), scene.Config{Quality: scene.Draft})
	if err != nil {
		t.Fatal(err)
	}
	gas := s.(*starFormation).gas
	if len(gas) != 120 {
		t.Fatalf("expected 120 gas particles, got %d", len(gas))
	}
	// Each particle takes position and size from the seeded source, nothing else.
	r := rand.New(rand.NewSource(starSeed))
	for i, g := range gas[:5] {
		x := 540 + (r.Float64()-0.5)*1080*0.8
		y := 960 + (r.Float64()-0.5)*1920*0.8
		size := r.Float64()*0.5 + 0.5
		if g.X != x || g.Y != y || g.Size != size {
			t.Fatalf("expected particle %d at (%v, %v) size %v, got %+v", i, x, y, size, g)
		}
	}
}

func texts(ps []scene.Primitive) []string {
	var out []string
	for _, p := range ps {
		if p.Kind == scene.KindText {
			out = append(out, p.Text)
		}
	}
	return out
}

func TestStandaloneScenesRegistered(t *testing.T) {
	r := Default()
	for _, id := range []string{"ai-rise", "bar-race", "black-hole", "kpi-dashboard", "neural-network", "waveform"} {
		if _, err := r.Contract(id); err != nil {
			t.Fatalf("expected %s in the catalogue: %v", id, err)
		}
	}
}

func TestWaveformFrozen(t *testing.T) {
	s, err := newWaveform(Contract("waveform"), scene.Config{Quality: scene.Final})
	if err != nil {
		t.Fatal(err)
	}
	bars := s.(*waveform).bars
	if len(bars) != 100 {
		t.Fatalf("expected 100 bars, got %d", len(bars))
	}
	r := rand.New(rand.NewSource(waveSeed))
	for i, b := range bars {
		if want := r.Float64()*0.8 + 0.1; b.Value != want {
			t.Fatalf("expected bar %d at %v, got %v", i, want, b.Value)
		}
	}

	_, a := resolve(t, "waveform", scene.Draft)
	_, b := resolve(t, "waveform", scene.Final)
	if !reflect.DeepEqual(a.Compose(77), b.Compose(77)) {
		t.Fatalf("expected the seeded bars to be identical across instantiations")
	}
}

func TestBarRaceCountsUp(t *testing.T) {
	_, comp := resolve(t, "bar-race", scene.Final)
	want := []string{"Product A", "450", "Product B", "320", "Product C", "280", "Product D", "195", "Product E", "150"}
	if got := texts(comp.Compose(239)); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected final values %v, got %v", want, got)
	}
	for _, p := range comp.Compose(0) {
		if p.Kind == scene.KindText && p.Text != "0" && p.Opacity != 0 {
			t.Fatalf("expected bars hidden at frame 0, got %+v", p)
		}
	}
}

func TestBarRaceEasing(t *testing.T) {
	c, linear, err := Default().ResolveWith("bar-race", scene.Config{Quality: scene.Final})
	if err != nil {
		t.Fatal(err)
	}
	_, quad, err := Default().ResolveWith("bar-race", scene.Config{Quality: scene.Final, Easing: "in-quad"})
	if err != nil {
		t.Fatal(err)
	}
	if got := texts(linear.Compose(15))[1]; got != "225" {
		t.Fatalf("%s: expected 225 halfway with linear easing, got %s", c.ID, got)
	}
	if got := texts(quad.Compose(15))[1]; got != "113" {
		t.Fatalf("%s: expected 113 halfway with in-quad easing, got %s", c.ID, got)
	}
}

func TestFormatKPI(t *testing.T) {
	for _, tc := range []struct {
		v       float64
		percent bool
		want    string
	}{
		{1250000, false, "$1.3M"},
		{45230, false, "45K"},
		{999.5, false, "1000"},
		{0, false, "0"},
		{23.5, true, "23.5%"},
		{87.25, true, "87.3%"},
	} {
		if got := formatKPI(tc.v, tc.percent); got != tc.want {
			t.Fatalf("expected %s for %v, got %s", tc.want, tc.v, got)
		}
	}

	_, comp := resolve(t, "kpi-dashboard", scene.Final)
	want := []string{"REVENUE", "$1.3M", "USERS", "45K", "GROWTH", "23.5%", "RETENTION", "87.2%"}
	if got := texts(comp.Compose(239)); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected settled counters %v, got %v", want, got)
	}
}

func TestNeuralNetworkWeights(t *testing.T) {
	s, err := newNeuralNetwork(Contract("neural-network"), scene.Config{Quality: scene.Final})
	if err != nil {
		t.Fatal(err)
	}
	nn := s.(*neuralNetwork)
	if len(nn.neurons) != 18 || len(nn.synapses) != 4*6+6*5+5*3 {
		t.Fatalf("expected 18 neurons and 69 synapses, got %d and %d", len(nn.neurons), len(nn.synapses))
	}
	for _, sy := range nn.synapses {
		if sy.weight < -1 || sy.weight >= 1 {
			t.Fatalf("expected weights in [-1, 1), got %v", sy.weight)
		}
		if nn.neurons[sy.to].Layer != nn.neurons[sy.from].Layer+1 {
			t.Fatalf("expected synapses between adjacent layers, got %+v", sy)
		}
	}
}
