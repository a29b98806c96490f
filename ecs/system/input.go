package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
)

const stickDeadzone = 0.2

// InputSystem copies keyboard and gamepad state into every Input component.
// Read can be replaced to drive the world without a window.
type InputSystem struct {
	Read func() component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{Read: ReadInput}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	read := i.Read
	if read == nil {
		read = ReadInput
	}
	snap := read()

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = snap
	})
}

// ReadInput polls ebiten: A/D or arrows to run, Space, W or Up to jump, and
// the first standard gamepad's left stick, d-pad and bottom face button.
func ReadInput() component.Input {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			moveX = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			moveX = 1
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	return component.Input{MoveX: moveX, Jump: jump}
}
