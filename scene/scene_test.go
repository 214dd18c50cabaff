package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/matt-g-everett/framecast/motion"
)

var testContract = Contract{ID: "sample", DurationInFrames: 240, FPS: 30, Width: 1080, Height: 1920, Defaults: Config{Quality: Final}}

func sampleFactory(c Contract, cfg Config) (Composer, error) {
	var b motion.Builder
	x := b.Curve([]float64{0, 239}, []float64{0, 1000})
	if err := b.Err(); err != nil {
		return nil, err
	}
	n := cfg.Pick(2, 5)
	return ComposerFunc(func(frame int) []Primitive {
		out := make([]Primitive, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, Circle(x.At(float64(frame)), float64(i), 4))
		}
		return out
	}), nil
}

func TestParseQuality(t *testing.T) {
	for in, want := range map[string]Quality{"draft": Draft, "final": Final, " FINAL ": Final} {
		got, err := ParseQuality(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}

	_, err := ParseQuality("ultra")
	var ce *InvalidConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected InvalidConfigError, got %v", err)
	}
	if ce.Field != "quality" {
		t.Fatalf("expected quality field, got %s", ce.Field)
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("sample", testContract, sampleFactory); err != nil {
		t.Fatal(err)
	}

	c, comp, err := r.Resolve("sample")
	if err != nil {
		t.Fatal(err)
	}
	if c != testContract {
		t.Fatalf("expected %+v, got %+v", testContract, c)
	}
	if n := len(comp.Compose(0)); n != 5 {
		t.Fatalf("expected final quality to draw 5, got %d", n)
	}

	_, draft, err := r.ResolveWith("sample", Config{Quality: Draft})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(draft.Compose(0)); n != 2 {
		t.Fatalf("expected draft quality to draw 2, got %d", n)
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("sample", testContract, sampleFactory); err != nil {
		t.Fatal(err)
	}

	var dup *DuplicateCompositionError
	if err := r.Register("sample", testContract, sampleFactory); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateCompositionError, got %v", err)
	}

	var unknown *UnknownCompositionError
	if _, _, err := r.Resolve("nope"); !errors.As(err, &unknown) || unknown.ID != "nope" {
		t.Fatalf("expected UnknownCompositionError, got %v", err)
	}

	var ce *InvalidConfigError
	if err := r.Register("other", testContract, sampleFactory); !errors.As(err, &ce) {
		t.Fatalf("expected id mismatch to fail, got %v", err)
	}
	bad := testContract
	bad.ID, bad.FPS = "bad", 0
	if err := r.Register("bad", bad, sampleFactory); !errors.As(err, &ce) {
		t.Fatalf("expected malformed contract to fail, got %v", err)
	}
	if _, _, err := r.ResolveWith("sample", Config{Quality: "ultra"}); !errors.As(err, &ce) {
		t.Fatalf("expected bad quality to fail, got %v", err)
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := testContract
			c.ID = fmt.Sprintf("sample-%02d", i)
			if err := r.Register(c.ID, c, sampleFactory); err != nil {
				t.Error(err)
			}
			_ = r.Contracts()
		}(i)
	}
	wg.Wait()

	cs := r.Contracts()
	if len(cs) != 20 {
		t.Fatalf("expected 20 contracts, got %d", len(cs))
	}
	for i := 1; i < len(cs); i++ {
		if cs[i-1].ID >= cs[i].ID {
			t.Fatalf("expected sorted contracts, got %s before %s", cs[i-1].ID, cs[i].ID)
		}
	}
}

func TestClampedFrames(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("sample", testContract, sampleFactory); err != nil {
		t.Fatal(err)
	}
	_, comp, _ := r.Resolve("sample")

	if !reflect.DeepEqual(comp.Compose(-50), comp.Compose(0)) {
		t.Fatalf("expected frame -50 to equal frame 0")
	}
	if !reflect.DeepEqual(comp.Compose(290), comp.Compose(239)) {
		t.Fatalf("expected frame 290 to equal frame 239")
	}
	if got := comp.Compose(239)[0].X; got != 1000 {
		t.Fatalf("expected 1000, got %v", got)
	}
}

func TestScaleAbout(t *testing.T) {
	in := []Primitive{
		Circle(600, 500, 10).Filled(Radial(600, 500, 10, At(0, White, 1), At(1, Black, 1))),
		Line(400, 500, 600, 700).Stroked(Solid(Cyan, 1), 2),
		Path(M(500, 500), Q(550, 450, 600, 500)),
	}
	out := ScaleAbout(in, 2, 500, 500)

	if out[0].X != 700 || out[0].R != 20 || out[0].Fill.Gradient.R != 20 || out[0].Fill.Gradient.X0 != 700 {
		t.Fatalf("unexpected scaled circle %+v", out[0])
	}
	if out[1].X != 300 || out[1].Y2 != 900 || out[1].StrokeWidth != 4 {
		t.Fatalf("unexpected scaled line %+v", out[1])
	}
	if want := []float64{600, 400, 700, 500}; !reflect.DeepEqual(out[2].Path[1].Pts, want) {
		t.Fatalf("expected %v, got %v", want, out[2].Path[1].Pts)
	}
	if in[0].X != 600 || in[0].Fill.Gradient.R != 10 {
		t.Fatalf("expected input to be left untouched")
	}
}

func TestPaintJSON(t *testing.T) {
	p := Circle(1, 2, 3).Filled(Solid(Cyan, 0.5)).Stroked(Linear(0, 0, 10, 0, At(0, Magenta, 1), At(1, Lime, 0)), 2)
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var back Primitive
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Fill.Color.Hex() != "#00d4ff" || back.Fill.Alpha != 0.5 {
		t.Fatalf("unexpected fill %+v", back.Fill)
	}
	if back.Stroke.Gradient == nil || back.Stroke.Gradient.Stops[0].Color.Hex() != "#ff2daa" {
		t.Fatalf("unexpected stroke %+v", back.Stroke)
	}
}

func TestTitleEntrance(t *testing.T) {
	var b motion.Builder
	title := NewTitle(&b, "Heading", "Sub", Cyan)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}

	first := title.Draw(0, 30)
	if len(first) != 3 {
		t.Fatalf("expected 3 primitives, got %d", len(first))
	}
	if first[1].Opacity != 0 || first[1].Y != 186 {
		t.Fatalf("expected hidden title 28px low, got opacity %v y %v", first[1].Opacity, first[1].Y)
	}

	rest := title.Draw(120, 30)
	if math.Abs(rest[1].Y-158) > 0.05 || rest[1].Opacity != 1 || rest[1].Fill.Alpha != 0.96 {
		t.Fatalf("expected settled title, got opacity %v y %v", rest[1].Opacity, rest[1].Y)
	}
}

func TestBackgroundCoversCanvas(t *testing.T) {
	for _, v := range []Variant{Space, Lab, Market, Bio} {
		bg := Background(testContract, v)
		if bg[0].W != 1080 || bg[0].H != 1920 {
			t.Fatalf("variant %d: expected full canvas, got %vx%v", v, bg[0].W, bg[0].H)
		}
	}
	if n := len(Grid(testContract, 0.2)); n != 17+30 {
		t.Fatalf("expected 47 grid lines, got %d", n)
	}
}

func TestConfigEasing(t *testing.T) {
	if err := (Config{Quality: Draft, Easing: "out-expo"}).Validate(); err != nil {
		t.Fatal(err)
	}
	var ce *InvalidConfigError
	if err := (Config{Quality: Draft, Easing: "wobble"}).Validate(); !errors.As(err, &ce) || ce.Field != "easing" {
		t.Fatalf("expected InvalidConfigError for easing, got %v", err)
	}

	def := motion.Linear
	if got := (Config{}).Entrance(def)(0.5); got != 0.5 {
		t.Fatalf("expected the default easing, got %v", got)
	}
	if got := (Config{Easing: "in-quad"}).Entrance(def)(0.5); got != 0.25 {
		t.Fatalf("expected in-quad to give 0.25, got %v", got)
	}

	r := NewRegistry()
	if err := r.Register("sample", testContract, sampleFactory); err != nil {
		t.Fatal(err)
	}
	if _, _, err := r.ResolveWith("sample", Config{Quality: Final, Easing: "wobble"}); !errors.As(err, &ce) {
		t.Fatalf("expected resolve to reject the easing, got %v", err)
	}
}
