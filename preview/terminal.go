// Package preview plays a composition in the terminal using half-block
// characters, two pixels per cell.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-g-everett/framecast/motion"
	"github.com/matt-g-everett/framecast/raster"
	"github.com/matt-g-everett/framecast/scene"
)

const halfBlock = '▀'

// Terminal is a render backend drawing frames to a tcell screen. The bottom
// row carries a status line. Screen must be initialized; End finalizes it.
type Terminal struct {
	Screen tcell.Screen
	Raster *raster.Rasterizer
	// Realtime paces frames at the composition frame rate.
	Realtime bool
	// Cancel is called when the viewer presses q, Esc or Ctrl-C.
	Cancel context.CancelFunc
	Logger *slog.Logger

	contract scene.Contract
	ticker   *time.Ticker
	offsetX  int
	events   chan struct{}
	pulse    motion.PulseTable
}

// Fit returns the raster scale that fits a contract into cols x rows cells,
// keeping one row for the status line.
func Fit(c scene.Contract, cols, rows int) float64 {
	rows--
	if cols <= 0 || rows <= 0 {
		return 0
	}
	sx := float64(cols) / float64(c.Width)
	sy := float64(rows*2) / float64(c.Height)
	return min(sx, sy)
}

func (t *Terminal) Begin(c scene.Contract) error {
	t.contract = c
	cols, rows := t.Screen.Size()
	scale := Fit(c, cols, rows)
	if scale <= 0 {
		t.Screen.Fini()
		return fmt.Errorf("preview: terminal of %dx%d is too small", cols, rows)
	}
	t.Raster.Scale = scale
	w, _ := t.Raster.Size(c)
	t.offsetX = max(0, (cols-w)/2)
	t.Screen.Clear()

	if t.Realtime {
		t.ticker = time.NewTicker(c.FrameInterval())
	}
	t.pulse = motion.NewPulseTable(c.FPS, nil)
	t.events = make(chan struct{})
	go t.poll()

	if t.Logger != nil {
		t.Logger.Debug("preview", "cols", cols, "rows", rows, "scale", scale)
	}
	return t.Raster.Begin(c)
}

func (t *Terminal) poll() {
	defer close(t.events)
	for {
		switch ev := t.Screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			quit := ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
			if quit && t.Cancel != nil {
				t.Cancel()
			}
		case *tcell.EventResize:
			t.Screen.Sync()
		}
	}
}

func (t *Terminal) WriteFrame(index int, prims []scene.Primitive) error {
	if err := t.Raster.WriteFrame(index, prims); err != nil {
		return err
	}
	if t.ticker != nil && index > 0 {
		<-t.ticker.C
	}
	Paint(t.Screen, t.Raster.Image(), t.offsetX)

	_, rows := t.Screen.Size()
	// The indicator breathes once per second of composition time.
	level := int32(80 + 175*t.pulse.At(float64(index)/float64(t.contract.FPS)))
	t.Screen.SetContent(0, rows-1, '●', nil, tcell.StyleDefault.Foreground(tcell.NewRGBColor(level, 0, 0)))
	status := fmt.Sprintf(" %s  %d/%d  q to quit", t.contract.ID, index+1, t.contract.DurationInFrames)
	for x, r := range []rune(status) {
		t.Screen.SetContent(x+1, rows-1, r, nil, tcell.StyleDefault)
	}
	t.Screen.Show()
	return nil
}

func (t *Terminal) End() error {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
	err := t.Raster.End()
	t.Screen.Fini()
	if t.events != nil {
		<-t.events
		t.events = nil
	}
	return err
}

// Paint draws img onto s, one cell for every two rows of pixels.
func Paint(s tcell.Screen, img image.Image, offsetX int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.At(x, y)
			bottom := color.Color(color.Black)
			if y+1 < b.Max.Y {
				bottom = img.At(x, y+1)
			}
			st := tcell.StyleDefault.Foreground(Color(top)).Background(Color(bottom))
			s.SetContent(offsetX+x-b.Min.X, (y-b.Min.Y)/2, halfBlock, nil, st)
		}
	}
}

// Color converts c to a true-color tcell color.
func Color(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
