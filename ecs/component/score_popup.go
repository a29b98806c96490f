package component

import "time"

// ScorePopup is floating score text. It rises by Rise over RiseFor, fades
// out over FadeFor and is then removed.
type ScorePopup struct {
	Text    string
	StartY  float64
	Rise    float64
	RiseFor time.Duration
	FadeFor time.Duration
	Elapsed time.Duration
	Alpha   float64
}

var ScorePopupComponent = NewComponent[ScorePopup]()
