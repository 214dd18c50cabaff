package raster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/matt-g-everett/framecast/render"
	"github.com/matt-g-everett/framecast/scene"
	"github.com/wader/osleaktest"
)

func leakChecks(t *testing.T) func() {
	leakFn := leaktest.Check(t)
	osLeakFn := osleaktest.Check(t)

	return func() {
		leakFn()
		osLeakFn()
	}
}

var small = scene.Contract{ID: "small", DurationInFrames: 3, FPS: 30, Width: 40, Height: 20,
	Defaults: scene.Config{Quality: scene.Draft}}

func newRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	r, err := NewRasterizer()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func rgb(img image.Image, x, y int) (uint32, uint32, uint32) {
	r, g, b, _ := img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func drawOne(t *testing.T, r *Rasterizer, prims ...scene.Primitive) image.Image {
	t.Helper()
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf, small, prims); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestRasterizerShapes(t *testing.T) {
	r := newRasterizer(t)

	img := drawOne(t, r,
		scene.Rect(0, 0, 40, 20).Filled(scene.Solid(scene.MustHex("#ff0000"), 1)),
		scene.Circle(30, 10, 4).Filled(scene.Solid(scene.MustHex("#0000ff"), 1)),
		scene.Line(0, 2, 40, 2).Stroked(scene.Solid(scene.White, 1), 2),
	)
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("expected 40x20, got %v", b)
	}
	if cr, cg, cb := rgb(img, 10, 10); cr < 200 || cg > 40 || cb > 40 {
		t.Fatalf("expected red background, got %d,%d,%d", cr, cg, cb)
	}
	if cr, _, cb := rgb(img, 30, 10); cb < 200 || cr > 40 {
		t.Fatalf("expected blue circle centre, got r=%d b=%d", cr, cb)
	}
	if cr, cg, cb := rgb(img, 20, 2); cr < 200 || cg < 200 || cb < 200 {
		t.Fatalf("expected white line, got %d,%d,%d", cr, cg, cb)
	}
}

func TestRasterizerOpacity(t *testing.T) {
	r := newRasterizer(t)

	img := drawOne(t, r, scene.Rect(0, 0, 40, 20).Filled(scene.Solid(scene.White, 1)).Faded(0))
	if cr, cg, cb := rgb(img, 20, 10); cr+cg+cb != 0 {
		t.Fatalf("expected a hidden primitive to leave black, got %d,%d,%d", cr, cg, cb)
	}

	img = drawOne(t, r, scene.Rect(0, 0, 40, 20).Filled(scene.Solid(scene.White, 1)).Faded(0.5))
	if cr, _, _ := rgb(img, 20, 10); cr < 100 || cr > 155 {
		t.Fatalf("expected half grey, got %d", cr)
	}
}

func TestRasterizerGradient(t *testing.T) {
	r := newRasterizer(t)

	img := drawOne(t, r, scene.Rect(0, 0, 40, 20).Filled(scene.Linear(0, 0, 40, 0,
		scene.At(0, scene.Black, 1),
		scene.At(1, scene.White, 1),
	)))
	left, _, _ := rgb(img, 2, 10)
	right, _, _ := rgb(img, 37, 10)
	if left >= right {
		t.Fatalf("expected the gradient to brighten to the right, got %d then %d", left, right)
	}
}

func TestRasterizerScaleAndText(t *testing.T) {
	r := newRasterizer(t)
	r.Scale = 0.5

	img := drawOne(t, r,
		scene.Text(20, 15, "Hi", 12).Filled(scene.Solid(scene.White, 1)).Anchored(scene.AnchorMiddle).Heavy(),
		scene.Text(2, 15, "x", 10).Filled(scene.Radial(5, 10, 5, scene.At(0, scene.Cyan, 1))).Turned(30, 2, 15),
		scene.Path(scene.M(0, 0), scene.L(10, 0), scene.Q(10, 10, 0, 10), scene.Z()).Filled(scene.Solid(scene.Lime, 1)),
	)
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("expected 20x10 at half scale, got %v", b)
	}
}

func TestRasterizerWriteBeforeBegin(t *testing.T) {
	r := newRasterizer(t)
	if err := r.WriteFrame(0, nil); err == nil {
		t.Fatalf("expected an error before Begin")
	}
	if r.Image() != nil {
		t.Fatalf("expected no image outside Begin/End")
	}
}

func TestPNGSequence(t *testing.T) {
	t.Cleanup(leakChecks(t))

	dir := filepath.Join(t.TempDir(), "frames")
	seq := &PNGSequence{Dir: dir, Raster: newRasterizer(t)}
	j := &render.Job{
		Contract: small,
		Composer: scene.ComposerFunc(func(frame int) []scene.Primitive {
			return []scene.Primitive{scene.Circle(float64(frame*10), 10, 5).Filled(scene.Solid(scene.White, 1))}
		}),
		Backend: seq,
		Workers: 2,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := j.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		f, err := os.Open(seq.FramePath(i))
		if err != nil {
			t.Fatalf("expected frame %d: %v", i, err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Width != 40 || cfg.Height != 20 {
			t.Fatalf("expected 40x20, got %dx%d", cfg.Width, cfg.Height)
		}
	}
	if got := filepath.Base(seq.FramePath(12)); got != "frame_00012.png" {
		t.Fatalf("expected frame_00012.png, got %s", got)
	}
}

func TestFFmpegArgs(t *testing.T) {
	f := &FFmpeg{Path: "out.mp4", Flags: []string{"-crf", "18"}}
	got := strings.Join(f.Args(small), " ")
	for _, want := range []string{"-f image2pipe", "-framerate 30", "-i pipe:0", "-c:v libx264", "-pix_fmt yuv420p", "-crf 18 out.mp4"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	f.Codec, f.PixFmt = "libx265", "yuv444p"
	got = strings.Join(f.Args(small), " ")
	if !strings.Contains(got, "-c:v libx265") || !strings.Contains(got, "-pix_fmt yuv444p") {
		t.Fatalf("expected codec overrides, got %q", got)
	}
}

func TestFFmpegMissingBinary(t *testing.T) {
	f := &FFmpeg{Path: filepath.Join(t.TempDir(), "out.mp4"), Binary: "framecast-no-such-ffmpeg", Raster: newRasterizer(t)}
	if err := f.Begin(small); err == nil {
		t.Fatalf("expected Begin to fail without the binary")
	}
}

func TestFFmpegFailureReported(t *testing.T) {
	bin, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}
	t.Cleanup(leakChecks(t))

	out := filepath.Join(t.TempDir(), "out.mp4")
	j := &render.Job{
		Contract: small,
		Composer: scene.ComposerFunc(func(int) []scene.Primitive { return nil }),
		Backend:  &FFmpeg{Path: out, Binary: bin, Raster: newRasterizer(t)},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := j.Run(context.Background()); err == nil {
		t.Fatalf("expected a failing encoder to fail the render")
	}
}

func TestFFmpegEncode(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}
	defer leakChecks(t)()

	out := filepath.Join(t.TempDir(), "out.mp4")
	c := small
	c.Width, c.Height = 64, 32
	j := &render.Job{
		Contract: c,
		Composer: scene.ComposerFunc(func(frame int) []scene.Primitive {
			return []scene.Primitive{scene.Rect(float64(frame), 0, 8, 8).Filled(scene.Solid(scene.Yellow, 1))}
		}),
		Backend: &FFmpeg{Path: out, Raster: newRasterizer(t)},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := j.Run(context.Background()); err != nil {
		var missing *render.RenderOutputMissingError
		if errors.As(err, &missing) {
			t.Fatalf("expected output file, got %v", err)
		}
		t.Fatal(err)
	}
}

func TestLastLines(t *testing.T) {
	ll := newLastLines(2)
	io.WriteString(ll, "one\ntwo\nthr")
	io.WriteString(ll, "ee\nfour")
	if got := ll.String(); got != "two\nthree\nfour" {
		t.Fatalf("expected last lines plus tail, got %q", got)
	}
}
