package motion

import "github.com/lucasb-eyer/go-colorful"

// Builder declares the curves and springs of a composition up front and keeps
// the first validation error, so a malformed curve fails before any frame is
// evaluated. After an error the returned curves are inert placeholders.
type Builder struct {
	err error
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first error seen.
func (b *Builder) Err() error {
	return b.err
}

// Curve declares a scalar curve.
func (b *Builder) Curve(input, output []float64, opts ...Option) *Curve {
	c, err := NewCurve(input, output, opts...)
	if err != nil {
		b.fail(err)
		return &Curve{knots: knots{input: []float64{0}, options: options{easing: Linear}}, output: []float64{0}}
	}
	return c
}

// Window declares the 0→1 progress through the frame window [from, to],
// clamped on both sides.
func (b *Builder) Window(from, to float64, opts ...Option) *Curve {
	return b.Curve([]float64{from, to}, []float64{0, 1}, append([]Option{Clamped()}, opts...)...)
}

// Color declares a color curve.
func (b *Builder) Color(input []float64, output []colorful.Color, opts ...Option) *ColorCurve {
	c, err := NewColorCurve(input, output, opts...)
	if err != nil {
		b.fail(err)
		return &ColorCurve{knots: knots{input: []float64{0}, options: options{easing: Linear}}, output: []colorful.Color{{}}}
	}
	return c
}

// Spring declares a spring.
func (b *Builder) Spring(s Spring) Spring {
	if err := s.Validate(); err != nil {
		b.fail(err)
	}
	return s
}
