package system

import (
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
)

type AudioSystem struct {
	muted bool
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

// SetMuted drops play requests without touching the players.
func (a *AudioSystem) SetMuted(muted bool) {
	a.muted = muted
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Players))

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false

			player := audioComp.Players[i]
			if player == nil || a.muted {
				continue
			}
			if i < len(audioComp.Volume) {
				player.SetVolume(audioComp.Volume[i])
			}
			if err := player.Rewind(); err != nil {
				continue
			}
			if !player.IsPlaying() {
				player.Play()
			}
		}

		for i := 0; i < min(count, len(audioComp.Stop)); i++ {
			if !audioComp.Stop[i] {
				continue
			}
			if player := audioComp.Players[i]; player != nil && player.IsPlaying() {
				player.Pause()
			}
			audioComp.Stop[i] = false
		}
	})
}

// StopAll pauses every clip, used when a session is thrown away.
func StopAll(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		for _, p := range audioComp.Players {
			if p != nil && p.IsPlaying() {
				p.Pause()
			}
		}
	})
}
