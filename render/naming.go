package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/matt-g-everett/framecast/scene"
)

const (
	nameAttempts = 10
	nameSpacing  = 1100 * time.Millisecond
	stampLayout  = "20060102T150405"
)

// Orientation names the aspect of a contract.
func Orientation(c scene.Contract) string {
	switch {
	case c.Height > c.Width:
		return "vertical"
	case c.Width > c.Height:
		return "horizontal"
	}
	return "square"
}

// Namer picks collision-free output file names of the form
// <name>_<orientation>_<YYYYMMDDTHHMMSS><ext>, stamped in UTC.
type Namer struct {
	Dir  string
	Name string
	Ext  string

	// Now and Sleep default to the wall clock.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// Path returns the first free name, waiting between attempts so the
// timestamp moves on.
func (n Namer) Path(c scene.Contract) (string, error) {
	now, sleep := n.Now, n.Sleep
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	name := n.Name
	if name == "" {
		name = c.ID
	}
	ext := n.Ext
	if ext == "" {
		ext = ".mp4"
	}

	for attempt := 0; attempt < nameAttempts; attempt++ {
		if attempt > 0 {
			sleep(nameSpacing)
		}
		file := fmt.Sprintf("%s_%s_%s%s", name, Orientation(c), now().UTC().Format(stampLayout), ext)
		path := filepath.Join(n.Dir, file)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free output name for %s in %s after %d attempts", name, n.Dir, nameAttempts)
}
