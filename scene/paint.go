package scene

import (
	"encoding/json"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/framecast/motion"
)

// Palette shared by every composition.
var (
	Ink     = MustHex("#070A12")
	Ink2    = MustHex("#0B1024")
	Cyan    = MustHex("#00D4FF")
	Magenta = MustHex("#FF2DAA")
	Violet  = MustHex("#7B2FF7")
	Lime    = MustHex("#00FF88")
	Orange  = MustHex("#FF7A00")
	Yellow  = MustHex("#FFD400")
	Red     = MustHex("#FF3355")
	White   = colorful.Color{R: 1, G: 1, B: 1}
	Black   = colorful.Color{}
)

// MustHex parses a #rrggbb literal and panics on malformed input.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// GradientKind is linear or radial.
type GradientKind string

const (
	LinearGradient GradientKind = "linear"
	RadialGradient GradientKind = "radial"
)

// Stop is one color stop of a gradient.
type Stop struct {
	Offset float64
	Color  colorful.Color
	Alpha  float64
}

// At builds a stop.
func At(offset float64, c colorful.Color, alpha float64) Stop {
	return Stop{Offset: offset, Color: c, Alpha: alpha}
}

type stopJSON struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
	Alpha  float64 `json:"alpha"`
}

func (s Stop) MarshalJSON() ([]byte, error) {
	return json.Marshal(stopJSON{Offset: s.Offset, Color: s.Color.Clamped().Hex(), Alpha: s.Alpha})
}

func (s *Stop) UnmarshalJSON(b []byte) error {
	var v stopJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	c, err := colorful.Hex(v.Color)
	if err != nil {
		return err
	}
	*s = Stop{Offset: v.Offset, Color: c, Alpha: v.Alpha}
	return nil
}

// Gradient is positioned in canvas coordinates. A linear gradient runs from
// (X0, Y0) to (X1, Y1); a radial gradient is centred on (X0, Y0) with radius R.
type Gradient struct {
	Kind  GradientKind `json:"kind"`
	X0    float64      `json:"x0"`
	Y0    float64      `json:"y0"`
	X1    float64      `json:"x1,omitempty"`
	Y1    float64      `json:"y1,omitempty"`
	R     float64      `json:"r,omitempty"`
	Stops []Stop       `json:"stops"`
}

// Paint is a solid color or a gradient, with an alpha applied on top of the
// gradient stops.
type Paint struct {
	Color    colorful.Color
	Alpha    float64
	Gradient *Gradient
}

// Solid paints c with the given alpha.
func Solid(c colorful.Color, alpha float64) Paint {
	return Paint{Color: c, Alpha: motion.Clamp01(alpha)}
}

// Radial paints a radial gradient.
func Radial(cx, cy, r float64, stops ...Stop) Paint {
	return Paint{Alpha: 1, Gradient: &Gradient{Kind: RadialGradient, X0: cx, Y0: cy, R: r, Stops: stops}}
}

// Linear paints a linear gradient.
func Linear(x0, y0, x1, y1 float64, stops ...Stop) Paint {
	return Paint{Alpha: 1, Gradient: &Gradient{Kind: LinearGradient, X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: stops}}
}

type paintJSON struct {
	Color    string    `json:"color,omitempty"`
	Alpha    float64   `json:"alpha"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

func (p Paint) MarshalJSON() ([]byte, error) {
	v := paintJSON{Alpha: p.Alpha, Gradient: p.Gradient}
	if p.Gradient == nil {
		v.Color = p.Color.Clamped().Hex()
	}
	return json.Marshal(v)
}

func (p *Paint) UnmarshalJSON(b []byte) error {
	var v paintJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Paint{Alpha: v.Alpha, Gradient: v.Gradient}
	if v.Color != "" {
		c, err := colorful.Hex(v.Color)
		if err != nil {
			return err
		}
		p.Color = c
	}
	return nil
}

// Over approximates c drawn at alpha over base as an opaque color.
func Over(base, c colorful.Color, alpha float64) colorful.Color {
	return base.BlendRgb(c, motion.Clamp01(alpha))
}
