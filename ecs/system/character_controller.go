package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
)

const maxControlPitch = 89.0

// CharacterControllerSystem turns the per-frame input into controller
// rotation and movement intent. Jump and exit input of ledge climbers is
// owned by the ledge state machine.
type CharacterControllerSystem struct{}

func NewCharacterControllerSystem() *CharacterControllerSystem {
	return &CharacterControllerSystem{}
}

func (s *CharacterControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaSeconds()
	ecs.ForEach2(w, component.InputComponent.Kind(), component.CharacterMovementComponent.Kind(), func(e ecs.Entity, input *component.Input, mv *component.CharacterMovement) {
		ch := CharacterOf(w, e)
		climber, isClimber := ecs.Get(w, e, component.LedgeClimberComponent.Kind())

		if controller, ok := ecs.Get(w, e, component.ControllerComponent.Kind()); ok {
			turnAtRate(controller, input.TurnRate, dt)
			lookUpAtRate(controller, input.LookUpRate, dt)
			addYawInput(controller, input.Turn)
			addPitchInput(controller, input.LookUp)

			// Hands on the ledge: no walking.
			if !isClimber || climber.State == component.LedgeGrounded {
				moveForward(mv, controller, input.MoveForward)
				moveRight(mv, controller, input.MoveRight)
			}
		}

		if isClimber {
			return
		}
		if input.JumpPressed {
			ch.Jump()
		}
		if input.JumpReleased {
			ch.StopJumping()
		}
	})
}

func turnAtRate(controller *component.Controller, rate, dt float64) {
	if rate == 0 {
		return
	}
	addYawInput(controller, rate*controller.BaseTurnRate*dt)
}

func lookUpAtRate(controller *component.Controller, rate, dt float64) {
	if rate == 0 {
		return
	}
	addPitchInput(controller, rate*controller.BaseLookUpRate*dt)
}

func addYawInput(controller *component.Controller, deg float64) {
	if deg == 0 {
		return
	}
	controller.ControlRotation.Yaw += deg
}

func addPitchInput(controller *component.Controller, deg float64) {
	if deg == 0 {
		return
	}
	controller.ControlRotation.Pitch = mgl64.Clamp(controller.ControlRotation.Pitch+deg, -maxControlPitch, maxControlPitch)
}

// moveForward adds intent along the controller's yaw; pitch is ignored so
// looking down does not slow the character.
func moveForward(mv *component.CharacterMovement, controller *component.Controller, value float64) {
	if controller == nil || value == 0 {
		return
	}
	dir := controller.ControlRotation.YawOnly().Forward()
	mv.PendingInput = mv.PendingInput.Add(dir.Mul(value))
}

func moveRight(mv *component.CharacterMovement, controller *component.Controller, value float64) {
	if controller == nil || value == 0 {
		return
	}
	dir := controller.ControlRotation.Right()
	mv.PendingInput = mv.PendingInput.Add(dir.Mul(value))
}
