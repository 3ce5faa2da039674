package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
)

// InputSource produces one input snapshot per tick.
type InputSource interface {
	Poll() component.Input
}

// InputSystem copies the polled snapshot onto every entity with an Input
// component.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	if source == nil {
		source = KeyboardSource{}
	}
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	snapshot := i.source.Poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = snapshot
	})
}

// KeyboardSource reads the keyboard and the first standard gamepad.
//
//	W/S, A/D        move forward/back, right/left
//	Left/Right, Q/E turn
//	Up/Down         look
//	Space           jump
//	S               let go of a ledge
type KeyboardSource struct{}

func (KeyboardSource) Poll() component.Input {
	const stickDeadzone = 0.2

	var in component.Input
	in.MoveForward = axis(ebiten.KeyW, ebiten.KeyS)
	in.MoveRight = axis(ebiten.KeyD, ebiten.KeyA)
	in.TurnRate = axis(ebiten.KeyArrowRight, ebiten.KeyArrowLeft) + axis(ebiten.KeyE, ebiten.KeyQ)
	in.LookUpRate = axis(ebiten.KeyArrowUp, ebiten.KeyArrowDown)
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.JumpReleased = inpututil.IsKeyJustReleased(ebiten.KeySpace)
	// S doubles as move-back and let-go, matching the stock bindings.
	in.ExitPressed = inpututil.IsKeyJustPressed(ebiten.KeyS)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		if v := -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical); math.Abs(v) > stickDeadzone {
			in.MoveForward = v
		}
		if v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal); math.Abs(v) > stickDeadzone {
			in.MoveRight = v
		}
		if v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal); math.Abs(v) > stickDeadzone {
			in.TurnRate = v
		}
		if v := -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical); math.Abs(v) > stickDeadzone {
			in.LookUpRate = v
		}

		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpReleased = in.JumpReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightBottom)
		in.ExitPressed = in.ExitPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
	}

	return in
}

func axis(positive, negative ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(positive) {
		v += 1
	}
	if ebiten.IsKeyPressed(negative) {
		v -= 1
	}
	return v
}
