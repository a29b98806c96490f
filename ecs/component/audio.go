package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds named clips. Play and Stop are requests consumed by the audio
// system on its next update.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Request marks the clip called name for playback at volume. It reports
// whether the clip exists.
func (a *Audio) Request(name string, volume float64) bool {
	for i, n := range a.Names {
		if n != name {
			continue
		}
		if i < len(a.Volume) {
			a.Volume[i] = volume
		}
		if i < len(a.Play) {
			a.Play[i] = true
		}
		return true
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
