package scene

import (
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/framecast/motion"
)

// Variant picks the tint of the shared background.
type Variant int

const (
	Space Variant = iota
	Lab
	Market
	Bio
)

// Background fills the canvas with the tinted radial wash of a variant.
func Background(c Contract, v Variant) []Primitive {
	var (
		tint, base colorful.Color
		alpha      float64
		cy, r, end float64
	)
	w, h := float64(c.Width), float64(c.Height)
	switch v {
	case Lab:
		tint, alpha, base, cy, r, end = Cyan, 0.18, Ink, 0.20, 1200, 0.60
	case Market:
		tint, alpha, base, cy, r, end = Violet, 0.16, Ink2, 0.15, 1100, 0.62
	case Bio:
		tint, alpha, base, cy, r, end = Lime, 0.14, Ink2, 0.20, 1200, 0.60
	default:
		tint, alpha, base, cy, r, end = Magenta, 0.10, Ink, 0.15, 1400, 0.62
	}
	return []Primitive{
		Rect(0, 0, w, h).Filled(Solid(base, 1)),
		Rect(0, 0, w, h).Filled(Radial(w/2, h*cy, r,
			At(0, Over(base, tint, alpha), 1),
			At(end, base, 1),
			At(1, base, 1),
		)),
	}
}

// GridSpacing is the pitch of the grid overlay in pixels.
const GridSpacing = 64

// Grid draws the faint cyan grid at the given opacity.
func Grid(c Contract, opacity float64) []Primitive {
	w, h := float64(c.Width), float64(c.Height)
	line := Solid(Cyan, 0.16)
	var out []Primitive
	for x := 0.0; x < w; x += GridSpacing {
		out = append(out, Line(x+0.5, 0, x+0.5, h).Stroked(line, 1).Faded(opacity))
	}
	for y := 0.0; y < h; y += GridSpacing {
		out = append(out, Line(0, y+0.5, w, y+0.5).Stroked(line, 1).Faded(opacity))
	}
	return out
}

// Title is the heading block every composition opens with. It springs up
// from 28px below its rest position while fading in over the first 18 frames.
type Title struct {
	Text     string
	Subtitle string
	Accent   colorful.Color

	enter motion.Spring
	fade  *motion.Curve
}

func NewTitle(b *motion.Builder, text, subtitle string, accent colorful.Color) *Title {
	return &Title{
		Text:     text,
		Subtitle: subtitle,
		Accent:   accent,
		enter:    b.Spring(motion.Spring{Damping: 24, Stiffness: 120, To: 1}),
		fade:     b.Curve([]float64{0, 18}, []float64{0, 1}, motion.ClampRight()),
	}
}

// Draw lays out the block for a frame.
func (t *Title) Draw(frame, fps int) []Primitive {
	dy := 28 * (1 - t.enter.At(frame, float64(fps)))
	out := []Primitive{
		RoundRect(64, 118+dy, 10, 40, 5).Filled(Solid(t.Accent, 1)),
		Text(88, 158+dy, t.Text, 74).Filled(Solid(White, 0.96)).Heavy(),
	}
	if t.Subtitle != "" {
		out = append(out, Text(88, 213+dy, t.Subtitle, 26).Filled(Solid(White, 0.72)))
	}
	return Fade(out, t.fade.At(float64(frame)))
}

// TextWidth estimates the advance of s at size for layout of boxes around
// text.
func TextWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.58
}

// CornerTag draws a small labelled pill in the bottom left corner.
func CornerTag(c Contract, text string, color colorful.Color, alpha float64) []Primitive {
	const size = 16
	w := TextWidth(text, size) + 28
	y := float64(c.Height) - 48 - 40
	return []Primitive{
		RoundRect(64, y, w, 40, 14).Filled(Solid(Black, 0.2)).Stroked(Solid(White, 0.1), 1),
		Text(78, y+26, text, size).Filled(Solid(color, alpha)).Heavy(),
	}
}
