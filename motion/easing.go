package motion

import (
	"math"
	"sort"

	"github.com/fogleman/ease"
)

// Easing remaps a normalized position. Easings from github.com/fogleman/ease
// satisfy it directly.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

var easings = map[string]Easing{
	"linear":       Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"in-expo":      ease.InExpo,
	"out-expo":     ease.OutExpo,
	"in-out-expo":  ease.InOutExpo,
	"in-back":      ease.InBack,
	"out-back":     ease.OutBack,
	"in-out-back":  ease.InOutBack,
	"out-bounce":   ease.OutBounce,
	"out-elastic":  ease.OutElastic,
}

// EasingByName looks up an easing such as "in-out-quad".
func EasingByName(name string) (Easing, error) {
	e, ok := easings[name]
	if !ok {
		return nil, &InvalidParameterError{Param: "easing", Value: name}
	}
	return e, nil
}

// EasingNames lists the known easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PulseTable is a symmetric rise-and-fall lookup table. Index 0 and the last
// index are dark, the middle is the peak.
type PulseTable []float64

// NewPulseTable builds a table of the given length shaped by e.
func NewPulseTable(length int, e Easing) PulseTable {
	if length < 2 {
		length = 2
	}
	if e == nil {
		e = ease.InOutQuad
	}
	half := length / 2
	increment := 1.0 / float64(half)
	lut := make(PulseTable, length)
	for i, j := 0, length-1; i < half; i, j = i+1, j-1 {
		v := e(float64(i) * increment)
		lut[i] = v
		lut[j] = v
	}
	if length%2 == 1 {
		lut[half] = e(1)
	}
	return lut
}

// At samples the table at a phase in cycles; only the fractional part counts.
func (p PulseTable) At(phase float64) float64 {
	f := phase - math.Floor(phase)
	i := int(f * float64(len(p)))
	if i >= len(p) {
		i = len(p) - 1
	}
	return p[i]
}
