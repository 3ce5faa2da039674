package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
)

// Character is the motion facade over one entity's components. Every method
// silently does nothing when the component it needs is missing.
type Character struct {
	w *ecs.World
	e ecs.Entity
}

// CharacterOf returns the facade for e.
func CharacterOf(w *ecs.World, e ecs.Entity) Character {
	return Character{w: w, e: e}
}

func (c Character) Entity() ecs.Entity {
	return c.e
}

func (c Character) movement() (*component.CharacterMovement, bool) {
	return ecs.Get(c.w, c.e, component.CharacterMovementComponent.Kind())
}

// SetMovementMode switches the locomotion mode.
func (c Character) SetMovementMode(mode component.MovementMode) {
	mv, ok := c.movement()
	if !ok {
		return
	}
	mv.Mode = mode
	if mode == component.MovementFlying {
		mv.Grounded = false
	}
}

// MovementMode returns the current mode, Walking when there is no movement
// component.
func (c Character) MovementMode() component.MovementMode {
	if mv, ok := c.movement(); ok {
		return mv.Mode
	}
	return component.MovementWalking
}

// StopImmediately zeroes the current velocity.
func (c Character) StopImmediately() {
	if mv, ok := c.movement(); ok {
		mv.Velocity = mgl64.Vec3{}
		mv.PendingInput = mgl64.Vec3{}
	}
}

// Jump applies the jump impulse when standing on ground.
func (c Character) Jump() bool {
	mv, ok := c.movement()
	if !ok || mv.Mode != component.MovementWalking || !mv.Grounded {
		return false
	}
	mv.Velocity[2] = mv.JumpZVelocity
	mv.Mode = component.MovementFalling
	mv.Grounded = false
	mv.JumpHeld = true
	return true
}

// StopJumping clears the held jump.
func (c Character) StopJumping() {
	if mv, ok := c.movement(); ok {
		mv.JumpHeld = false
	}
}

// MoveTransformTo starts a linear capsule move. A non-positive duration
// teleports.
func (c Character) MoveTransformTo(position mgl64.Vec3, rotation component.Rotator, duration float64) {
	transform, ok := ecs.Get(c.w, c.e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	target := component.Transform{Position: position, Rotation: rotation}
	if duration <= 0 {
		*transform = target
		c.CancelMove()
		return
	}
	move := &component.TransformMove{
		From:     *transform,
		To:       target,
		Duration: duration,
		Active:   true,
	}
	_ = ecs.Add(c.w, c.e, component.TransformMoveComponent.Kind(), move)
}

// CancelMove stops an in-flight transform move where it is.
func (c Character) CancelMove() {
	if move, ok := ecs.Get(c.w, c.e, component.TransformMoveComponent.Kind()); ok {
		move.Active = false
	}
}

// Moving reports whether a transform move is in flight.
func (c Character) Moving() bool {
	move, ok := ecs.Get(c.w, c.e, component.TransformMoveComponent.Kind())
	return ok && move.Active
}

// SocketWorldLocation resolves a skeleton socket. Unknown sockets resolve to
// the actor location, with ok reporting whether the socket existed.
func (c Character) SocketWorldLocation(socket string) (mgl64.Vec3, bool) {
	transform, ok := ecs.Get(c.w, c.e, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}, false
	}
	skeleton, ok := ecs.Get(c.w, c.e, component.SkeletonComponent.Kind())
	if !ok {
		return transform.Position, false
	}
	offset, ok := skeleton.Sockets[socket]
	if !ok {
		return transform.Position, false
	}
	return transform.LocalToWorld(offset), true
}

// Pose reads the probe origin data for this tick.
func (c Character) Pose(pelvisSocket string) component.CharacterPose {
	transform, ok := ecs.Get(c.w, c.e, component.TransformComponent.Kind())
	if !ok {
		return component.CharacterPose{}
	}
	pelvis, _ := c.SocketWorldLocation(pelvisSocket)
	return component.CharacterPose{
		Position:     transform.Position,
		Forward:      transform.Rotation.Forward(),
		PelvisHeight: pelvis.Z(),
	}
}

// Listeners returns the parkour listeners, nil when none are attached.
func (c Character) Listeners() *component.ParkourListeners {
	listeners, ok := ecs.Get(c.w, c.e, component.ParkourListenersComponent.Kind())
	if !ok {
		return nil
	}
	return listeners
}

// ArmTimer arms the named timer, creating the timer set on first use.
func (c Character) ArmTimer(name string, seconds float64, event string) {
	timers, ok := ecs.Get(c.w, c.e, component.TimersComponent.Kind())
	if !ok {
		timers = &component.Timers{}
		if err := ecs.Add(c.w, c.e, component.TimersComponent.Kind(), timers); err != nil {
			return
		}
	}
	timers.Set(name, seconds, event)
}
