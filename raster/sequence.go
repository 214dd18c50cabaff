package raster

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/matt-g-everett/framecast/scene"
)

// PNGSequence writes every frame to Dir as frame_00000.png, frame_00001.png...
type PNGSequence struct {
	Dir    string
	Raster *Rasterizer
}

func (s *PNGSequence) Begin(c scene.Contract) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return s.Raster.Begin(c)
}

// FramePath returns the file a frame is written to.
func (s *PNGSequence) FramePath(index int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("frame_%05d.png", index))
}

func (s *PNGSequence) WriteFrame(index int, prims []scene.Primitive) (err error) {
	if err := s.Raster.WriteFrame(index, prims); err != nil {
		return err
	}
	f, err := os.Create(s.FramePath(index))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, s.Raster.Image())
}

func (s *PNGSequence) End() error {
	return s.Raster.End()
}

// OutputPath is the frame directory.
func (s *PNGSequence) OutputPath() string {
	return s.Dir
}
