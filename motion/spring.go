package motion

import (
	"math"
)

// SettleTolerance is the fraction of the from→to span within which a spring
// counts as settled.
const SettleTolerance = 0.001

// criticalBand is how close the damping ratio must be to 1 to use the
// critically damped solution.
const criticalBand = 1e-9

// Spring is a unit-mass damped harmonic oscillator released from From toward
// To, starting Delay frames into the composition. Damping is the damping
// coefficient, so the damping ratio is Damping / (2*sqrt(Stiffness*Mass)).
type Spring struct {
	Damping   float64
	Stiffness float64
	// Mass defaults to 1 when zero.
	Mass              float64
	From              float64
	To                float64
	Delay             int
	OvershootClamping bool
}

// Validate reports malformed parameters.
func (s Spring) Validate() error {
	switch {
	case math.IsNaN(s.Damping) || s.Damping < 0:
		return &InvalidParameterError{Param: "damping", Value: s.Damping}
	case math.IsNaN(s.Stiffness) || s.Stiffness <= 0:
		return &InvalidParameterError{Param: "stiffness", Value: s.Stiffness}
	case math.IsNaN(s.Mass) || s.Mass < 0:
		return &InvalidParameterError{Param: "mass", Value: s.Mass}
	}
	return nil
}

func (s Spring) mass() float64 {
	if s.Mass == 0 {
		return 1
	}
	return s.Mass
}

// ratio returns the damping ratio and the undamped angular frequency.
func (s Spring) ratio() (zeta, omega0 float64) {
	m := s.mass()
	omega0 = math.Sqrt(s.Stiffness / m)
	zeta = s.Damping / (2 * math.Sqrt(s.Stiffness*m))
	return zeta, omega0
}

// displacement is the remaining fraction of the span t seconds after
// release, starting at exactly 1 with zero velocity.
func (s Spring) displacement(t float64) float64 {
	zeta, w0 := s.ratio()
	switch {
	case math.Abs(zeta-1) < criticalBand:
		return math.Exp(-w0*t) * (1 + w0*t)
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		return math.Exp(-zeta*w0*t) * (math.Cos(wd*t) + (zeta*w0/wd)*math.Sin(wd*t))
	default:
		root := math.Sqrt(zeta*zeta - 1)
		r1 := -w0 * (zeta - root)
		r2 := -w0 * (zeta + root)
		a := -r2 / (r1 - r2)
		return a*math.Exp(r1*t) + (1-a)*math.Exp(r2*t)
	}
}

// envelope bounds |displacement| from t onward.
func (s Spring) envelope(t float64) float64 {
	zeta, w0 := s.ratio()
	if zeta < 1 && math.Abs(zeta-1) >= criticalBand {
		return math.Exp(-zeta*w0*t) / math.Sqrt(1-zeta*zeta)
	}
	return math.Abs(s.displacement(t))
}

// Progress is the normalized 0→1 travel at frame, before mapping onto From/To.
// Frames before the start return exactly 0.
func (s Spring) Progress(frame int, fps float64) float64 {
	rel := frame - s.Delay
	if rel <= 0 {
		return 0
	}
	p := 1 - s.displacement(float64(rel)/fps)
	if s.OvershootClamping && p > 1 {
		p = 1
	}
	return p
}

// At evaluates the spring at an absolute frame. The parameters are assumed
// valid; see Validate.
func (s Spring) At(frame int, fps float64) float64 {
	if frame-s.Delay <= 0 {
		return s.From
	}
	return s.From + (s.To-s.From)*s.Progress(frame, fps)
}

// Settled reports whether the spring stays within SettleTolerance of To from
// frame onward.
func (s Spring) Settled(frame int, fps float64) bool {
	if s.From == s.To {
		return true
	}
	rel := frame - s.Delay
	if rel < 0 {
		return false
	}
	return s.envelope(float64(rel)/fps) <= SettleTolerance
}

// SettleFrame is the first frame from which the spring counts as settled. It
// reports false for an undamped spring, which never settles.
func (s Spring) SettleFrame(fps float64) (int, bool) {
	if s.From == s.To {
		return s.Delay, true
	}
	if s.Damping == 0 {
		return 0, false
	}

	hi := 1
	for !s.Settled(s.Delay+hi, fps) {
		hi *= 2
		if hi > 1<<30 {
			return 0, false
		}
	}
	lo := 0
	for lo < hi {
		mid := (lo + hi) / 2
		if s.Settled(s.Delay+mid, fps) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return s.Delay + lo, true
}

// EvaluateSpring validates the parameters and samples a spring released at
// relative frame 0.
func EvaluateSpring(relativeFrame int, fps, damping, stiffness, from, to float64) (float64, error) {
	if math.IsNaN(fps) || fps <= 0 {
		return 0, &InvalidParameterError{Param: "fps", Value: fps}
	}
	s := Spring{Damping: damping, Stiffness: stiffness, From: from, To: to}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s.At(relativeFrame, fps), nil
}
