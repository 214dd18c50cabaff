// Package raster turns primitive lists into pixels with gg, and provides the
// file backends built on top of it: a PNG sequence and an ffmpeg encoder.
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/framecast/scene"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type faceKey struct {
	bold bool
	size float64
}

// Rasterizer draws primitive lists onto a canvas sized from the contract.
// It is also a Backend that keeps only the most recent frame, which makes it
// the drawing stage of the file backends and the preview.
type Rasterizer struct {
	// Scale resizes the output; zero means 1.
	Scale float64

	mu      sync.Mutex
	regular *text.FontSource
	bold    *text.FontSource
	faces   map[faceKey]text.Face
	dc      *gg.Context
}

// NewRasterizer loads the embedded Go fonts.
func NewRasterizer() (*Rasterizer, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		regular.Close()
		return nil, fmt.Errorf("bold font: %w", err)
	}
	return &Rasterizer{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]text.Face),
	}, nil
}

// Close releases the font sources.
func (r *Rasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.regular.Close(), r.bold.Close())
}

func (r *Rasterizer) scale() float64 {
	if r.Scale > 0 {
		return r.Scale
	}
	return 1
}

// Size returns the canvas size for a contract at the rasterizer's scale.
func (r *Rasterizer) Size(c scene.Contract) (int, int) {
	s := r.scale()
	return max(1, int(math.Round(float64(c.Width)*s))), max(1, int(math.Round(float64(c.Height)*s)))
}

func (r *Rasterizer) Begin(c scene.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, h := r.Size(c)
	r.dc = gg.NewContext(w, h)
	return nil
}

func (r *Rasterizer) WriteFrame(index int, prims []scene.Primitive) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dc == nil {
		return fmt.Errorf("frame %d written before Begin", index)
	}
	return r.draw(r.dc, prims)
}

func (r *Rasterizer) End() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dc == nil {
		return nil
	}
	err := r.dc.Close()
	r.dc = nil
	return err
}

// Image returns the last frame drawn, or nil outside Begin/End.
func (r *Rasterizer) Image() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dc == nil {
		return nil
	}
	return r.dc.Image()
}

// EncodePNG draws one frame of c on a fresh canvas and writes it as PNG.
func (r *Rasterizer) EncodePNG(w io.Writer, c scene.Contract, prims []scene.Primitive) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	width, height := r.Size(c)
	dc := gg.NewContext(width, height)
	defer dc.Close()
	if err := r.draw(dc, prims); err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func (r *Rasterizer) draw(dc *gg.Context, prims []scene.Primitive) error {
	dc.ClearWithColor(gg.Black)
	prims = scene.ScaleAbout(prims, r.scale(), 0, 0)
	for i := range prims {
		if err := r.primitive(dc, &prims[i]); err != nil {
			return fmt.Errorf("primitive %d (%s): %w", i, prims[i].Kind, err)
		}
	}
	return nil
}

func (r *Rasterizer) primitive(dc *gg.Context, p *scene.Primitive) error {
	if p.Opacity <= 0 || (p.Kind == scene.KindCircle && p.R <= 0) {
		return nil
	}
	if p.Rotate != 0 {
		dc.Push()
		defer dc.Pop()
		dc.RotateAbout(p.Rotate*math.Pi/180, p.PX, p.PY)
	}

	if p.Kind == scene.KindText {
		return r.text(dc, p)
	}

	outline := func() {
		dc.ClearPath()
		switch p.Kind {
		case scene.KindCircle:
			dc.DrawCircle(p.X, p.Y, p.R)
		case scene.KindEllipse:
			dc.DrawEllipse(p.X, p.Y, p.RX, p.RY)
		case scene.KindLine:
			dc.DrawLine(p.X, p.Y, p.X2, p.Y2)
		case scene.KindRect:
			if p.R > 0 {
				dc.DrawRoundedRectangle(p.X, p.Y, p.W, p.H, p.R)
			} else {
				dc.DrawRectangle(p.X, p.Y, p.W, p.H)
			}
		case scene.KindPath:
			tracePath(dc, p.Path)
		}
	}

	if p.Fill != nil && p.Kind != scene.KindLine {
		outline()
		dc.SetFillBrush(brush(p.Fill, p.Opacity))
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	if p.Stroke != nil && p.StrokeWidth > 0 {
		outline()
		dc.SetStrokeBrush(brush(p.Stroke, p.Opacity))
		dc.SetLineWidth(p.StrokeWidth)
		if p.RoundCap {
			dc.SetLineCap(gg.LineCapRound)
		} else {
			dc.SetLineCap(gg.LineCapButt)
		}
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func tracePath(dc *gg.Context, path []scene.Segment) {
	for _, seg := range path {
		pt := seg.Pts
		switch {
		case seg.Op == scene.MoveTo && len(pt) >= 2:
			dc.MoveTo(pt[0], pt[1])
		case seg.Op == scene.LineTo && len(pt) >= 2:
			dc.LineTo(pt[0], pt[1])
		case seg.Op == scene.QuadTo && len(pt) >= 4:
			dc.QuadraticTo(pt[0], pt[1], pt[2], pt[3])
		case seg.Op == scene.CubicTo && len(pt) >= 6:
			dc.CubicTo(pt[0], pt[1], pt[2], pt[3], pt[4], pt[5])
		case seg.Op == scene.Close:
			dc.ClosePath()
		}
	}
}

func (r *Rasterizer) face(bold bool, size float64) text.Face {
	k := faceKey{bold: bold, size: math.Round(size*4) / 4}
	if f, ok := r.faces[k]; ok {
		return f
	}
	src := r.regular
	if bold {
		src = r.bold
	}
	f := src.Face(k.size)
	r.faces[k] = f
	return f
}

func (r *Rasterizer) text(dc *gg.Context, p *scene.Primitive) error {
	if p.Fill == nil || p.Text == "" || p.FontSize <= 0 {
		return nil
	}
	dc.SetFont(r.face(p.Bold, p.FontSize))
	// Glyphs are drawn in a single color; gradients use their first stop.
	dc.SetFillBrush(gg.Solid(flatten(p.Fill, p.Opacity)))
	ax := 0.0
	switch p.Anchor {
	case scene.AnchorMiddle:
		ax = 0.5
	case scene.AnchorEnd:
		ax = 1
	}
	dc.DrawStringAnchored(p.Text, p.X, p.Y, ax, 0)
	return nil
}

func rgba(c colorful.Color, alpha float64) gg.RGBA {
	c = c.Clamped()
	return gg.RGBA2(c.R, c.G, c.B, math.Max(0, math.Min(1, alpha)))
}

func flatten(p *scene.Paint, opacity float64) gg.RGBA {
	if p.Gradient != nil && len(p.Gradient.Stops) > 0 {
		s := p.Gradient.Stops[0]
		return rgba(s.Color, s.Alpha*p.Alpha*opacity)
	}
	return rgba(p.Color, p.Alpha*opacity)
}

func brush(p *scene.Paint, opacity float64) gg.Brush {
	g := p.Gradient
	if g == nil || len(g.Stops) == 0 {
		return gg.Solid(flatten(p, opacity))
	}
	a := p.Alpha * opacity
	switch g.Kind {
	case scene.RadialGradient:
		b := gg.NewRadialGradientBrush(g.X0, g.Y0, 0, g.R)
		for _, s := range g.Stops {
			b.AddColorStop(s.Offset, rgba(s.Color, s.Alpha*a))
		}
		return b
	default:
		b := gg.NewLinearGradientBrush(g.X0, g.Y0, g.X1, g.Y1)
		for _, s := range g.Stops {
			b.AddColorStop(s.Offset, rgba(s.Color, s.Alpha*a))
		}
		return b
	}
}
