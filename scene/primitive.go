// Package scene describes what a frame looks like: resolution-independent
// drawing primitives, the composition contract and quality configuration,
// and the registry the renderer resolves compositions from.
package scene

import "github.com/matt-g-everett/framecast/motion"

// Kind names the shape a Primitive draws.
type Kind string

const (
	KindCircle  Kind = "circle"
	KindEllipse Kind = "ellipse"
	KindLine    Kind = "line"
	KindRect    Kind = "rect"
	KindText    Kind = "text"
	KindPath    Kind = "path"
)

// Anchor aligns text horizontally on its X coordinate.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// PathOp is a path command. Move and Line take one point, Quad two and
// Cubic three; Close takes none.
type PathOp string

const (
	MoveTo  PathOp = "M"
	LineTo  PathOp = "L"
	QuadTo  PathOp = "Q"
	CubicTo PathOp = "C"
	Close   PathOp = "Z"
)

// Segment is one path command with its points flattened as x, y pairs.
type Segment struct {
	Op  PathOp    `json:"op"`
	Pts []float64 `json:"pts,omitempty"`
}

// Primitive is one drawable shape in canvas pixels. Which coordinate fields
// apply depends on Kind:
//
//	circle   X, Y centre, R radius
//	ellipse  X, Y centre, RX, RY radii
//	line     X, Y to X2, Y2
//	rect     X, Y origin, W, H size, R corner radius
//	text     X, Y baseline anchor point, Text, FontSize, Anchor, Bold
//	path     Path
//
// A nil Fill or Stroke draws nothing for that part. Rotate turns the shape
// by that many degrees about the pivot (PX, PY).
type Primitive struct {
	Kind        Kind      `json:"kind"`
	X           float64   `json:"x,omitempty"`
	Y           float64   `json:"y,omitempty"`
	X2          float64   `json:"x2,omitempty"`
	Y2          float64   `json:"y2,omitempty"`
	W           float64   `json:"w,omitempty"`
	H           float64   `json:"h,omitempty"`
	R           float64   `json:"r,omitempty"`
	RX          float64   `json:"rx,omitempty"`
	RY          float64   `json:"ry,omitempty"`
	Path        []Segment `json:"path,omitempty"`
	Text        string    `json:"text,omitempty"`
	FontSize    float64   `json:"fontSize,omitempty"`
	Anchor      Anchor    `json:"anchor,omitempty"`
	Bold        bool      `json:"bold,omitempty"`
	Fill        *Paint    `json:"fill,omitempty"`
	Stroke      *Paint    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	RoundCap    bool      `json:"roundCap,omitempty"`
	Rotate      float64   `json:"rotate,omitempty"`
	PX          float64   `json:"px,omitempty"`
	PY          float64   `json:"py,omitempty"`
	Opacity     float64   `json:"opacity"`
}

// Circle centred on (cx, cy).
func Circle(cx, cy, r float64) Primitive {
	return Primitive{Kind: KindCircle, X: cx, Y: cy, R: r, Opacity: 1}
}

// Ellipse centred on (cx, cy).
func Ellipse(cx, cy, rx, ry float64) Primitive {
	return Primitive{Kind: KindEllipse, X: cx, Y: cy, RX: rx, RY: ry, Opacity: 1}
}

// Line from (x1, y1) to (x2, y2).
func Line(x1, y1, x2, y2 float64) Primitive {
	return Primitive{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2, Opacity: 1}
}

// Rect with its top left corner at (x, y).
func Rect(x, y, w, h float64) Primitive {
	return Primitive{Kind: KindRect, X: x, Y: y, W: w, H: h, Opacity: 1}
}

// RoundRect is a Rect with corner radius r.
func RoundRect(x, y, w, h, r float64) Primitive {
	p := Rect(x, y, w, h)
	p.R = r
	return p
}

// Text with its baseline start at (x, y).
func Text(x, y float64, s string, size float64) Primitive {
	return Primitive{Kind: KindText, X: x, Y: y, Text: s, FontSize: size, Anchor: AnchorStart, Opacity: 1}
}

// Path from segments.
func Path(segs ...Segment) Primitive {
	return Primitive{Kind: KindPath, Path: segs, Opacity: 1}
}

// M, L, Q, C and Z build path segments.
func M(x, y float64) Segment         { return Segment{Op: MoveTo, Pts: []float64{x, y}} }
func L(x, y float64) Segment         { return Segment{Op: LineTo, Pts: []float64{x, y}} }
func Q(cx, cy, x, y float64) Segment { return Segment{Op: QuadTo, Pts: []float64{cx, cy, x, y}} }
func Z() Segment                     { return Segment{Op: Close} }
func C(c1x, c1y, c2x, c2y, x, y float64) Segment {
	return Segment{Op: CubicTo, Pts: []float64{c1x, c1y, c2x, c2y, x, y}}
}

// Filled sets the fill paint.
func (p Primitive) Filled(paint Paint) Primitive {
	p.Fill = &paint
	return p
}

// Stroked sets the stroke paint and width.
func (p Primitive) Stroked(paint Paint, width float64) Primitive {
	p.Stroke = &paint
	p.StrokeWidth = width
	return p
}

// Faded multiplies the opacity by o, clamped to [0, 1].
func (p Primitive) Faded(o float64) Primitive {
	p.Opacity = motion.Clamp01(p.Opacity * o)
	return p
}

// Rounded gives strokes round caps.
func (p Primitive) Rounded() Primitive {
	p.RoundCap = true
	return p
}

// Anchored sets text alignment.
func (p Primitive) Anchored(a Anchor) Primitive {
	p.Anchor = a
	return p
}

// Heavy selects the bold face for text.
func (p Primitive) Heavy() Primitive {
	p.Bold = true
	return p
}

// Turned rotates by deg degrees about (px, py).
func (p Primitive) Turned(deg, px, py float64) Primitive {
	p.Rotate, p.PX, p.PY = deg, px, py
	return p
}

// Fade multiplies the opacity of every primitive in ps by o in place and
// returns ps.
func Fade(ps []Primitive, o float64) []Primitive {
	for i := range ps {
		ps[i] = ps[i].Faded(o)
	}
	return ps
}

// ScaleAbout returns ps scaled by s around (cx, cy). Radii, sizes, stroke
// widths and gradients scale with the geometry.
func ScaleAbout(ps []Primitive, s, cx, cy float64) []Primitive {
	if s == 1 {
		return ps
	}
	tx := func(x float64) float64 { return cx + (x-cx)*s }
	ty := func(y float64) float64 { return cy + (y-cy)*s }
	out := make([]Primitive, len(ps))
	for i, p := range ps {
		p.X, p.Y = tx(p.X), ty(p.Y)
		if p.Kind == KindLine {
			p.X2, p.Y2 = tx(p.X2), ty(p.Y2)
		}
		p.W *= s
		p.H *= s
		p.R *= s
		p.RX *= s
		p.RY *= s
		p.FontSize *= s
		p.StrokeWidth *= s
		if p.Rotate != 0 {
			p.PX, p.PY = tx(p.PX), ty(p.PY)
		}
		if p.Path != nil {
			path := make([]Segment, len(p.Path))
			for j, seg := range p.Path {
				pts := make([]float64, len(seg.Pts))
				for k := 0; k+1 < len(seg.Pts); k += 2 {
					pts[k], pts[k+1] = tx(seg.Pts[k]), ty(seg.Pts[k+1])
				}
				path[j] = Segment{Op: seg.Op, Pts: pts}
			}
			p.Path = path
		}
		p.Fill = scalePaint(p.Fill, s, tx, ty)
		p.Stroke = scalePaint(p.Stroke, s, tx, ty)
		out[i] = p
	}
	return out
}

func scalePaint(p *Paint, s float64, tx, ty func(float64) float64) *Paint {
	if p == nil || p.Gradient == nil {
		return p
	}
	g := *p.Gradient
	g.X0, g.Y0 = tx(g.X0), ty(g.Y0)
	if g.Kind == LinearGradient {
		g.X1, g.Y1 = tx(g.X1), ty(g.Y1)
	}
	g.R *= s
	cp := *p
	cp.Gradient = &g
	return &cp
}
