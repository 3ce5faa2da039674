package system

import "github.com/milk9111/parkour/ecs/component"

// Ledge state singletons (avoid allocations on transitions).
var (
	ledgeStateGrounded component.LedgeStateHandler = &ledgeGroundedState{}
	ledgeStateHanging  component.LedgeStateHandler = &ledgeHangingState{}
	ledgeStateClimbing component.LedgeStateHandler = &ledgeClimbingState{}
)

func ledgeStateHandler(state component.LedgeState) component.LedgeStateHandler {
	switch state {
	case component.LedgeHanging:
		return ledgeStateHanging
	case component.LedgeClimbing:
		return ledgeStateClimbing
	default:
		return ledgeStateGrounded
	}
}

type ledgeGroundedState struct{}

type ledgeHangingState struct{}

type ledgeClimbingState struct{}

func (ledgeGroundedState) State() component.LedgeState { return component.LedgeGrounded }
func (ledgeGroundedState) Name() string                { return "grounded" }
func (ledgeGroundedState) Enter(ctx *component.LedgeStateContext) {
	if ctx == nil || ctx.Climber == nil {
		return
	}
	ctx.Climber.GrabInFlight = false
}
func (ledgeGroundedState) Exit(ctx *component.LedgeStateContext) {}
func (ledgeGroundedState) HandleInput(ctx *component.LedgeStateContext) {
	if ctx == nil || ctx.Input == nil {
		return
	}
	if ctx.Input.JumpPressed && ctx.Jump != nil {
		ctx.Jump()
	}
	if ctx.Input.JumpReleased && ctx.StopJumping != nil {
		ctx.StopJumping()
	}
}
func (ledgeGroundedState) Update(ctx *component.LedgeStateContext) {
	if ctx == nil || ctx.LedgeInReach == nil || ctx.GrabLedge == nil {
		return
	}
	if ctx.LedgeInReach() {
		ctx.GrabLedge()
	}
}

func (ledgeHangingState) State() component.LedgeState { return component.LedgeHanging }
func (ledgeHangingState) Name() string                { return "hanging" }
func (ledgeHangingState) Enter(ctx *component.LedgeStateContext) {
	if ctx == nil || ctx.Climber == nil {
		return
	}
	ctx.Climber.ClimbUpRequested = false
}
func (ledgeHangingState) Exit(ctx *component.LedgeStateContext) {}
func (ledgeHangingState) HandleInput(ctx *component.LedgeStateContext) {
	if ctx == nil || ctx.Input == nil {
		return
	}
	// Jump while hanging stays hanging; pulling up is not supported yet.
	if ctx.Input.JumpPressed && ctx.ClimbUp != nil {
		ctx.ClimbUp()
	}
	if ctx.Input.JumpReleased && ctx.StopJumping != nil {
		ctx.StopJumping()
	}
	if ctx.Input.ExitPressed && ctx.ExitLedge != nil {
		ctx.ExitLedge()
	}
}

// Update is empty: a hanging climber never re-grabs.
func (ledgeHangingState) Update(ctx *component.LedgeStateContext) {}

func (ledgeClimbingState) State() component.LedgeState { return component.LedgeClimbing }
func (ledgeClimbingState) Name() string                { return "climbing" }
func (ledgeClimbingState) Enter(ctx *component.LedgeStateContext) {
	if ctx == nil || ctx.Climber == nil {
		return
	}
	ctx.Climber.GrabInFlight = false
	ctx.Climber.ClimbUpRequested = false
}
func (ledgeClimbingState) Exit(ctx *component.LedgeStateContext) {}
func (ledgeClimbingState) HandleInput(ctx *component.LedgeStateContext) {
	if ctx == nil || ctx.Input == nil {
		return
	}
	if ctx.Input.JumpReleased && ctx.StopJumping != nil {
		ctx.StopJumping()
	}
}

// Update is empty: the ledge check is skipped entirely while climbing.
func (ledgeClimbingState) Update(ctx *component.LedgeStateContext) {}
