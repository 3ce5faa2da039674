package system

import (
	"errors"
	"log"

	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
)

// ErrClimbUpUnsupported is returned when a hanging character is asked to
// pull up onto the ledge.
var ErrClimbUpUnsupported = errors.New("ledge: climb up not supported")

const ledgeGrabTimer = "ledge_grab"

// LedgeSystem casts the wall and height probes for every climber, drives the
// ledge state machine and places the capsule when a ledge is grabbed.
type LedgeSystem struct {
	sweeper SphereSweeper
	verbose bool
}

func NewLedgeSystem(sweeper SphereSweeper) *LedgeSystem {
	return &LedgeSystem{sweeper: sweeper}
}

// SetSweeper swaps the collision world, e.g. after a level reload.
func (s *LedgeSystem) SetSweeper(sweeper SphereSweeper) {
	if s == nil {
		return
	}
	s.sweeper = sweeper
}

// SetVerbose enables per-tick probe logging.
func (s *LedgeSystem) SetVerbose(verbose bool) {
	if s == nil {
		return
	}
	s.verbose = verbose
}

func (s *LedgeSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	w.Events().Each(ecs.EventLedgeGrabSettled, func(evt ecs.Event) {
		if climber, ok := ecs.Get(w, evt.Entity, component.LedgeClimberComponent.Kind()); ok {
			climber.GrabInFlight = false
		}
	})

	ecs.ForEach2(w, component.LedgeClimberComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, climber *component.LedgeClimber, _ *component.Transform) {
		s.updateClimber(w, e, climber)
	})
}

func (s *LedgeSystem) updateClimber(w *ecs.World, e ecs.Entity, climber *component.LedgeClimber) {
	tuning := climber.Tuning
	pose := CharacterOf(w, e).Pose(tuning.PelvisSocket)
	exclude := map[uint64]struct{}{uint64(e): {}}

	forward := castForward(s.sweeper, pose, tuning, exclude)
	if forward.result.Hit {
		climber.Wall = component.WallContact{
			Location: forward.result.Location,
			Normal:   forward.result.Normal,
			Valid:    true,
			Tick:     w.Tick(),
		}
	}

	downward := castDownward(s.sweeper, pose, tuning, exclude)
	climber.Height = downward.result
	climber.HasGap = downward.result.Hit
	if downward.result.Hit {
		climber.VerticalGap = pose.PelvisHeight - downward.result.Location.Z()
	}

	if s.verbose && (forward.result.Hit || downward.result.Hit) {
		log.Printf("ledge: entity=%d tick=%d wall=%t height=%t gap=%.1f state=%s", e, w.Tick(), forward.result.Hit, downward.result.Hit, climber.VerticalGap, climber.State)
	}

	if tuning.DebugDraw {
		recordProbeTraces(w, e, tuning, forward, downward)
	}

	ctx := s.stateContext(w, e, climber)
	ledgeStateHandler(climber.State).Update(ctx)
	ledgeStateHandler(climber.State).HandleInput(ctx)
	climber.StateTicks++
}

func (s *LedgeSystem) stateContext(w *ecs.World, e ecs.Entity, climber *component.LedgeClimber) *component.LedgeStateContext {
	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	ch := CharacterOf(w, e)
	return &component.LedgeStateContext{
		Input:        input,
		Climber:      climber,
		LedgeInReach: func() bool { return ledgeInReach(w, climber) },
		GrabLedge:    func() bool { return s.GrabLedge(w, e) },
		ExitLedge:    func() { s.ExitLedge(w, e) },
		Jump:         func() { ch.Jump() },
		StopJumping:  ch.StopJumping,
		ClimbUp:      func() { _ = s.ClimbUp(w, e) },
	}
}

// ledgeInReach reports whether the last probes describe a grabbable ledge:
// a fresh wall contact and a gap inside [GapMin, GapMax].
func ledgeInReach(w *ecs.World, climber *component.LedgeClimber) bool {
	if climber == nil || !climber.HasGap || !climber.Wall.Valid {
		return false
	}
	if w.Tick()-climber.Wall.Tick > climber.Tuning.ContactMaxAge {
		return false
	}
	gap := climber.VerticalGap
	return gap >= climber.Tuning.GapMin && gap <= climber.Tuning.GapMax
}

func (s *LedgeSystem) setState(w *ecs.World, e ecs.Entity, climber *component.LedgeClimber, next component.LedgeState) {
	if climber.State == next {
		return
	}
	ctx := s.stateContext(w, e, climber)
	prev := climber.State
	ledgeStateHandler(prev).Exit(ctx)
	climber.State = next
	climber.StateTicks = 0
	ledgeStateHandler(next).Enter(ctx)
	log.Printf("ledge: entity=%d %s -> %s", e, prev, next)
}

// GrabLedge snaps the character to the hang placement solved from the
// cached wall contact and the last height hit. Only a grounded character can
// grab; a grab in flight is already hanging.
func (s *LedgeSystem) GrabLedge(w *ecs.World, e ecs.Entity) bool {
	climber, ok := ecs.Get(w, e, component.LedgeClimberComponent.Kind())
	if !ok {
		return false
	}
	if climber.State != component.LedgeGrounded {
		log.Printf("ledge: entity=%d grab ignored state=%s", e, climber.State)
		return false
	}
	if !climber.Wall.Valid || !climber.Height.Hit {
		return false
	}

	tuning := climber.Tuning
	position, rotation := solveHangPlacement(climber.Wall, climber.Height.Location.Z(), tuning)

	ch := CharacterOf(w, e)
	ch.Listeners().CanGrab(true)
	ch.SetMovementMode(component.MovementFlying)
	s.setState(w, e, climber, component.LedgeHanging)
	ch.StopImmediately()
	ch.MoveTransformTo(position, rotation, tuning.GrabDuration)
	ch.ArmTimer(ledgeGrabTimer, tuning.GrabDuration, ecs.EventLedgeGrabSettled)
	climber.GrabInFlight = tuning.GrabDuration > 0
	return true
}

// ExitLedge lets go of the ledge. Calling it when not hanging only repeats
// the notifications.
func (s *LedgeSystem) ExitLedge(w *ecs.World, e ecs.Entity) {
	ch := CharacterOf(w, e)
	ch.SetMovementMode(component.MovementWalking)
	if climber, ok := ecs.Get(w, e, component.LedgeClimberComponent.Kind()); ok && climber.State == component.LedgeHanging {
		ch.CancelMove()
		s.setState(w, e, climber, component.LedgeGrounded)
	}
	ch.Listeners().CanGrab(false)
}

// ClimbLedge enters the climbing state. The argument is accepted for
// listener symmetry and ignored. A climb waits for the hands to reach the
// ledge: it is ignored while the grab placement is still moving.
func (s *LedgeSystem) ClimbLedge(w *ecs.World, e ecs.Entity, _ bool) {
	climber, ok := ecs.Get(w, e, component.LedgeClimberComponent.Kind())
	if !ok || climber.State == component.LedgeClimbing {
		return
	}
	if climber.GrabInFlight {
		log.Printf("ledge: entity=%d climb ignored, grab still settling", e)
		return
	}
	ch := CharacterOf(w, e)
	ch.Listeners().ClimbLedge(true)
	ch.SetMovementMode(component.MovementFlying)
	s.setState(w, e, climber, component.LedgeClimbing)
}

// FinishClimb ends a climb started by ClimbLedge.
func (s *LedgeSystem) FinishClimb(w *ecs.World, e ecs.Entity) {
	climber, ok := ecs.Get(w, e, component.LedgeClimberComponent.Kind())
	if !ok || climber.State != component.LedgeClimbing {
		return
	}
	ch := CharacterOf(w, e)
	ch.SetMovementMode(component.MovementWalking)
	s.setState(w, e, climber, component.LedgeGrounded)
	ch.Listeners().ClimbLedge(false)
}

// HandleJump routes a jump press: hanging characters stay put, everyone
// else jumps.
func (s *LedgeSystem) HandleJump(w *ecs.World, e ecs.Entity) {
	if climber, ok := ecs.Get(w, e, component.LedgeClimberComponent.Kind()); ok && climber.State == component.LedgeHanging {
		_ = s.ClimbUp(w, e)
		return
	}
	CharacterOf(w, e).Jump()
}

// ClimbUp is the pull-up from a hang. There is no pull-up yet; the request is
// latched and reported.
func (s *LedgeSystem) ClimbUp(w *ecs.World, e ecs.Entity) error {
	climber, ok := ecs.Get(w, e, component.LedgeClimberComponent.Kind())
	if !ok || climber.State != component.LedgeHanging {
		return nil
	}
	climber.ClimbUpRequested = true
	log.Printf("ledge: entity=%d %v", e, ErrClimbUpUnsupported)
	return ErrClimbUpUnsupported
}

func recordProbeTraces(w *ecs.World, e ecs.Entity, tuning component.LedgeTuning, casts ...probeCast) {
	debug, ok := ecs.Get(w, e, component.ProbeDebugComponent.Kind())
	if !ok {
		debug = &component.ProbeDebug{}
		if err := ecs.Add(w, e, component.ProbeDebugComponent.Kind(), debug); err != nil {
			return
		}
	}
	for _, c := range casts {
		debug.Traces = append(debug.Traces, component.ProbeTrace{
			Start:     c.start,
			End:       c.end,
			Radius:    tuning.ProbeRadius,
			Hit:       c.result.Hit,
			Location:  c.result.Location,
			Remaining: tuning.DebugDuration,
		})
	}
}
