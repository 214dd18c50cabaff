package scene

import (
	"strings"
	"time"

	"github.com/matt-g-everett/framecast/motion"
)

// Quality selects particle counts and connection density. It is a
// performance knob only; colors and timing are the same at every tier.
type Quality string

const (
	Draft Quality = "draft"
	Final Quality = "final"
)

// ParseQuality accepts "draft" or "final", case-insensitively.
func ParseQuality(s string) (Quality, error) {
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	if err := q.Validate(); err != nil {
		return "", err
	}
	return q, nil
}

// Validate reports an unknown tier.
func (q Quality) Validate() error {
	switch q {
	case Draft, Final:
		return nil
	}
	return &InvalidConfigError{Field: "quality", Value: string(q), Reason: "expected draft or final"}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(b []byte) error {
	v, err := ParseQuality(string(b))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// UnmarshalYAML decodes and validates a tier from YAML.
func (q *Quality) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return q.UnmarshalText([]byte(s))
}

// ParseEasing resolves an easing name from configuration. The empty name
// yields nil so the caller keeps its own default.
func ParseEasing(name string) (motion.Easing, error) {
	if name == "" {
		return nil, nil
	}
	e, err := motion.EasingByName(name)
	if err != nil {
		return nil, &InvalidConfigError{Field: "easing", Value: name, Reason: "expected one of " + strings.Join(motion.EasingNames(), ", ")}
	}
	return e, nil
}

// Config is the per-render configuration record a composer is built with.
// Easing, when set, replaces the entrance easing of the chart reveals.
type Config struct {
	Quality Quality `yaml:"quality" json:"quality"`
	Easing  string  `yaml:"easing" json:"easing,omitempty"`
}

// Validate reports malformed configuration.
func (c Config) Validate() error {
	if err := c.Quality.Validate(); err != nil {
		return err
	}
	_, err := ParseEasing(c.Easing)
	return err
}

// Entrance returns the configured easing, or def when none is set.
func (c Config) Entrance(def motion.Easing) motion.Easing {
	if e, err := ParseEasing(c.Easing); err == nil && e != nil {
		return e
	}
	return def
}

// Pick returns draft or final according to the tier.
func (c Config) Pick(draft, final int) int {
	if c.Quality == Draft {
		return draft
	}
	return final
}

// Contract is the fixed, immutable description of a composition.
type Contract struct {
	ID               string `json:"id"`
	DurationInFrames int    `json:"durationInFrames"`
	FPS              int    `json:"fps"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Defaults         Config `json:"defaults"`
}

// Validate reports a malformed contract.
func (c Contract) Validate() error {
	switch {
	case c.ID == "":
		return &InvalidConfigError{Field: "id", Value: c.ID, Reason: "empty identifier"}
	case c.DurationInFrames <= 0:
		return &InvalidConfigError{Field: "durationInFrames", Value: c.DurationInFrames}
	case c.FPS <= 0:
		return &InvalidConfigError{Field: "fps", Value: c.FPS}
	case c.Width <= 0 || c.Height <= 0:
		return &InvalidConfigError{Field: "size", Value: [2]int{c.Width, c.Height}}
	}
	return c.Defaults.Validate()
}

// LastFrame is the final frame index.
func (c Contract) LastFrame() int {
	return c.DurationInFrames - 1
}

// ClampFrame limits f to [0, LastFrame].
func (c Contract) ClampFrame(f int) int {
	if f < 0 {
		return 0
	}
	if f > c.LastFrame() {
		return c.LastFrame()
	}
	return f
}

// Duration is the running time of the composition.
func (c Contract) Duration() time.Duration {
	return time.Duration(c.DurationInFrames) * time.Second / time.Duration(c.FPS)
}

// FrameInterval is the display time of one frame.
func (c Contract) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Progress is frame / LastFrame, the normalized time the scenes use for
// captions. A single-frame composition is always at 0.
func (c Contract) Progress(frame int) float64 {
	if c.DurationInFrames <= 1 {
		return 0
	}
	return float64(frame) / float64(c.LastFrame())
}
