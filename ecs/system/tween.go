package system

import (
	"time"

	"github.com/milk9111/minimario/common"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
)

// TweenSystem animates score popups: rise, fade, remove. It keeps running
// while the world is paused.
type TweenSystem struct {
	tick time.Duration
}

func NewTweenSystem(tick time.Duration) *TweenSystem {
	if tick <= 0 {
		tick = time.Second / 60
	}
	return &TweenSystem{tick: tick}
}

func (ts *TweenSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.ScorePopupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.ScorePopup, t *component.Transform) {
		p.Elapsed += ts.tick
		if done := stepPopup(p, t); done {
			w.DestroyEntity(e)
		}
	})
}

// stepPopup applies p.Elapsed to the popup and reports whether it has
// finished.
func stepPopup(p *component.ScorePopup, t *component.Transform) bool {
	if p.Elapsed < p.RiseFor {
		t.Y = common.Lerp(p.StartY, p.StartY-p.Rise, common.Progress(p.Elapsed, p.RiseFor))
		p.Alpha = 1
		return false
	}
	t.Y = p.StartY - p.Rise
	fade := common.Progress(p.Elapsed-p.RiseFor, p.FadeFor)
	p.Alpha = 1 - fade
	return fade >= 1
}
