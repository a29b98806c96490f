package system

import (
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/ecs/entity"
)

type AnimationSystem struct {
	tps float64
}

// NewAnimationSystem advances clips assuming tps updates per second.
func NewAnimationSystem(tps int) *AnimationSystem {
	if tps <= 0 {
		tps = 60
	}
	return &AnimationSystem{tps: float64(tps)}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if worldPaused(w) {
		return
	}
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		if !anim.Playing {
			return
		}
		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			return
		}

		ticksPerFrame := 1
		if def.FPS > 0 {
			ticksPerFrame = int(a.tps / def.FPS)
		}
		if ticksPerFrame < 1 {
			ticksPerFrame = 1
		}

		anim.FrameTimer++
		if anim.FrameTimer >= ticksPerFrame {
			anim.FrameTimer = 0
			anim.Frame++
			if anim.Frame >= def.FrameCount {
				if anim.Loop || def.Loop {
					anim.Frame = 0
				} else {
					anim.Frame = def.FrameCount - 1
					anim.Playing = false
				}
			}
		}

		if def.Sheet != nil {
			sprite.Image = entity.FrameImage(def, anim.Frame)
		}
	})
}
