package stream

import (
	"encoding/json"

	"github.com/matt-g-everett/framecast/scene"
)

// Frame is the payload published for one frame.
type Frame struct {
	Composition string            `json:"composition"`
	Index       int               `json:"index"`
	Total       int               `json:"total"`
	TimeMs      int64             `json:"timeMs"`
	Primitives  []scene.Primitive `json:"primitives"`
}

// NewFrame stamps prims with their position in c.
func NewFrame(c scene.Contract, index int, prims []scene.Primitive) *Frame {
	return &Frame{
		Composition: c.ID,
		Index:       index,
		Total:       c.DurationInFrames,
		TimeMs:      int64(index) * 1000 / int64(c.FPS),
		Primitives:  prims,
	}
}

// MarshalBinary converts a Frame into its wire form.
func (f *Frame) MarshalBinary() ([]byte, error) {
	return json.Marshal(f)
}

// UnmarshalBinary reads a Frame published by a Streamer.
func (f *Frame) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, f)
}
