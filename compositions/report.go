package compositions

import "github.com/matt-g-everett/framecast/scene"

// The chart scenes share a light print palette instead of the dark motion
// palette.
var (
	reportPaper = scene.MustHex("#FAF9F6")
	reportInk   = scene.MustHex("#2F3D36")
	reportText  = scene.MustHex("#1B1B1B")
)

func paper(c scene.Contract) scene.Primitive {
	return scene.Rect(0, 0, float64(c.Width), float64(c.Height)).Filled(scene.Solid(reportPaper, 1))
}
