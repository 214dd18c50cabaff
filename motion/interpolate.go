// Package motion holds the time primitives every composition is built from:
// keyframe interpolation, easing and closed-form springs. Everything here is a
// pure function of its arguments so a frame can be evaluated in any order.
package motion

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Extrapolate selects what happens outside the breakpoint span on one side.
type Extrapolate int

const (
	// Extend continues the slope of the outermost segment.
	Extend Extrapolate = iota
	// Clamp holds the outermost output value.
	Clamp
	// Identity returns the input unchanged.
	Identity
)

func (e Extrapolate) String() string {
	switch e {
	case Extend:
		return "extend"
	case Clamp:
		return "clamp"
	case Identity:
		return "identity"
	}
	return "unknown"
}

type options struct {
	easing      Easing
	left, right Extrapolate
}

// An Option configures a curve.
type Option func(*options)

// WithEasing applies e to the normalized position inside each segment.
func WithEasing(e Easing) Option {
	return func(o *options) { o.easing = e }
}

// WithExtrapolate sets the policy for each side of the breakpoint span.
func WithExtrapolate(left, right Extrapolate) Option {
	return func(o *options) {
		o.left = left
		o.right = right
	}
}

// Clamped clamps both sides.
func Clamped() Option {
	return WithExtrapolate(Clamp, Clamp)
}

// ClampRight clamps only past the last breakpoint.
func ClampRight() Option {
	return func(o *options) { o.right = Clamp }
}

type knots struct {
	input []float64
	options
}

func newKnots(input []float64, outputs int, opts []Option) (knots, error) {
	k := knots{options: options{easing: Linear}}
	for _, opt := range opts {
		opt(&k.options)
	}
	if k.easing == nil {
		k.easing = Linear
	}

	if len(input) == 0 {
		return k, invalidRangef("no breakpoints")
	}
	if len(input) != outputs {
		return k, invalidRangef("%d breakpoints but %d outputs", len(input), outputs)
	}
	for i, v := range input {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return k, invalidRangef("breakpoint %d is not finite", i)
		}
		if i > 0 && v <= input[i-1] {
			return k, invalidRangef("breakpoints not strictly increasing at index %d (%g <= %g)", i, v, input[i-1])
		}
	}

	k.input = append([]float64(nil), input...)
	return k, nil
}

// position resolves x to a segment and the eased parameter inside it. When
// passthrough is set the caller returns x itself.
func (k *knots) position(x float64) (seg int, t float64, passthrough bool) {
	n := len(k.input)
	if n == 1 {
		return 0, 0, false
	}

	seg = n - 2
	for i := 1; i < n; i++ {
		if k.input[i] >= x {
			seg = i - 1
			break
		}
	}

	lo, hi := k.input[seg], k.input[seg+1]
	if x < lo {
		switch k.left {
		case Identity:
			return seg, 0, true
		case Clamp:
			x = lo
		}
	}
	if x > hi {
		switch k.right {
		case Identity:
			return seg, 0, true
		case Clamp:
			x = hi
		}
	}

	t = (x - lo) / (hi - lo)
	return seg, k.easing(t), false
}

// Curve is a validated interpolation definition. At never fails.
type Curve struct {
	knots
	output []float64
}

// NewCurve validates a breakpoint/output pairing. Breakpoints must be strictly
// increasing and as many as the outputs.
func NewCurve(input, output []float64, opts ...Option) (*Curve, error) {
	k, err := newKnots(input, len(output), opts)
	if err != nil {
		return nil, err
	}
	for i, v := range output {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidRangef("output %d is not finite", i)
		}
	}
	return &Curve{knots: k, output: append([]float64(nil), output...)}, nil
}

// At evaluates the curve at x.
func (c *Curve) At(x float64) float64 {
	if len(c.output) == 1 {
		return c.output[0]
	}
	seg, t, passthrough := c.position(x)
	if passthrough {
		return x
	}
	a, b := c.output[seg], c.output[seg+1]
	if a == b {
		return a
	}
	return a + t*(b-a)
}

// Interpolate maps x through the breakpoints onto the outputs in one call.
func Interpolate(x float64, input, output []float64, opts ...Option) (float64, error) {
	c, err := NewCurve(input, output, opts...)
	if err != nil {
		return 0, err
	}
	return c.At(x), nil
}

// VectorCurve interpolates equal-dimension vectors channel by channel.
type VectorCurve struct {
	knots
	output [][]float64
}

// NewVectorCurve validates a vector interpolation definition.
func NewVectorCurve(input []float64, output [][]float64, opts ...Option) (*VectorCurve, error) {
	k, err := newKnots(input, len(output), opts)
	if err != nil {
		return nil, err
	}
	dim := len(output[0])
	out := make([][]float64, len(output))
	for i, v := range output {
		if len(v) != dim {
			return nil, invalidRangef("output %d has dimension %d, expected %d", i, len(v), dim)
		}
		out[i] = append([]float64(nil), v...)
	}
	return &VectorCurve{knots: k, output: out}, nil
}

// At returns a fresh vector for x. Identity extrapolation fills every channel with x.
func (c *VectorCurve) At(x float64) []float64 {
	res := make([]float64, len(c.output[0]))
	if len(c.output) == 1 {
		copy(res, c.output[0])
		return res
	}
	seg, t, passthrough := c.position(x)
	for ch := range res {
		if passthrough {
			res[ch] = x
			continue
		}
		a, b := c.output[seg][ch], c.output[seg+1][ch]
		res[ch] = a + t*(b-a)
	}
	return res
}

// ColorCurve interpolates colors channel-wise in RGB.
type ColorCurve struct {
	knots
	output []colorful.Color
}

// NewColorCurve validates a color interpolation definition. Identity extrapolation
// is treated as Clamp since an input frame is not a color.
func NewColorCurve(input []float64, output []colorful.Color, opts ...Option) (*ColorCurve, error) {
	k, err := newKnots(input, len(output), opts)
	if err != nil {
		return nil, err
	}
	if k.left == Identity {
		k.left = Clamp
	}
	if k.right == Identity {
		k.right = Clamp
	}
	return &ColorCurve{knots: k, output: append([]colorful.Color(nil), output...)}, nil
}

// At evaluates the color at x.
func (c *ColorCurve) At(x float64) colorful.Color {
	if len(c.output) == 1 {
		return c.output[0]
	}
	seg, t, _ := c.position(x)
	return c.output[seg].BlendRgb(c.output[seg+1], t)
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Lerp blends a towards b by t without clamping.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
