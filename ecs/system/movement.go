package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/parkour/common"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
	"github.com/milk9111/parkour/physics"
)

const (
	groundSnapDistance = 4.0
	groundSkin         = 1.0
	walkableNormalZ    = 0.7
	// The foot sphere is slightly thinner than the capsule so walls the
	// capsule is touching do not block the ground sweep.
	footRadiusScale = 0.9
)

// MovementSystem integrates character velocity against the collision world.
// Walking and falling characters get gravity, ground snapping and a
// horizontal sweep; flying characters keep their velocity untouched.
type MovementSystem struct {
	sweeper SphereSweeper
}

func NewMovementSystem(sweeper SphereSweeper) *MovementSystem {
	return &MovementSystem{sweeper: sweeper}
}

func (s *MovementSystem) SetSweeper(sweeper SphereSweeper) {
	if s == nil {
		return
	}
	s.sweeper = sweeper
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := w.DeltaSeconds()
	ecs.ForEach2(w, component.CharacterMovementComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, mv *component.CharacterMovement, transform *component.Transform) {
		input := mv.PendingInput
		mv.PendingInput = mgl64.Vec3{}

		if mv.Mode == component.MovementFlying {
			if CharacterOf(w, e).Moving() {
				return
			}
			transform.Position = transform.Position.Add(mv.Velocity.Mul(dt))
			return
		}

		exclude := map[uint64]struct{}{uint64(e): {}}
		input[2] = 0
		if l := input.Len(); l > 1 {
			input = input.Mul(1 / l)
		}
		s.applyLateral(mv, input)
		if !mv.Grounded {
			mv.Velocity[2] -= mv.Gravity * dt
		}

		transform.Position = s.moveHorizontal(transform.Position, mv, dt, exclude)
		transform.Position = s.moveVertical(transform.Position, mv, dt, exclude)

		if input.Len() > 0 && mv.RotationRate > 0 {
			target := mgl64.RadToDeg(math.Atan2(input.Y(), input.X()))
			transform.Rotation.Yaw = common.StepAngle(transform.Rotation.Yaw, target, mv.RotationRate*dt)
			transform.Rotation.Pitch = 0
			transform.Rotation.Roll = 0
		}
	})
}

func (s *MovementSystem) applyLateral(mv *component.CharacterMovement, input mgl64.Vec3) {
	desired := input.Mul(mv.WalkSpeed)
	if mv.Mode == component.MovementWalking {
		mv.Velocity[0] = desired.X()
		mv.Velocity[1] = desired.Y()
		return
	}
	control := mgl64.Clamp(mv.AirControl, 0, 1)
	mv.Velocity[0] = common.Lerp(mv.Velocity.X(), desired.X(), control)
	mv.Velocity[1] = common.Lerp(mv.Velocity.Y(), desired.Y(), control)
}

// moveHorizontal sweeps the capsule's centre sphere and slides along the
// first wall it meets.
func (s *MovementSystem) moveHorizontal(pos mgl64.Vec3, mv *component.CharacterMovement, dt float64, exclude map[uint64]struct{}) mgl64.Vec3 {
	delta := mgl64.Vec3{mv.Velocity.X() * dt, mv.Velocity.Y() * dt, 0}
	if delta.Len() == 0 {
		return pos
	}
	hit, ok := firstBlockingHit(s.sweep(pos, pos.Add(delta), mv.CapsuleRadius, exclude))
	if !ok {
		return pos.Add(delta)
	}

	n := mgl64.Vec3{hit.Normal.X(), hit.Normal.Y(), 0}
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}
	remaining := delta.Mul(1 - hit.Time)
	if into := remaining.Dot(n); into < 0 {
		remaining = remaining.Sub(n.Mul(into))
	}
	if into := mv.Velocity.Dot(n); into < 0 {
		mv.Velocity = mv.Velocity.Sub(n.Mul(into))
	}
	return mgl64.Vec3{hit.Location.X(), hit.Location.Y(), pos.Z()}.Add(remaining)
}

// moveVertical sweeps the capsule's foot sphere down to find the floor and
// lifts feet that start buried in walkable ground back onto it. A rising
// character skips the ground check.
func (s *MovementSystem) moveVertical(pos mgl64.Vec3, mv *component.CharacterMovement, dt float64, exclude map[uint64]struct{}) mgl64.Vec3 {
	dz := mv.Velocity.Z() * dt
	if dz > 0 {
		mv.Grounded = false
		mv.Mode = component.MovementFalling
		return pos.Add(mgl64.Vec3{0, 0, dz})
	}

	footRadius := mv.CapsuleRadius * footRadiusScale
	footOffset := mv.CapsuleHalfHeight - footRadius
	foot := pos.Sub(mgl64.Vec3{0, 0, footOffset})
	start := foot.Add(mgl64.Vec3{0, 0, groundSkin})
	reach := dz
	if mv.Grounded {
		reach -= groundSnapDistance
	}
	end := foot.Add(mgl64.Vec3{0, 0, reach})

	hit, ok := firstBlockingHit(s.sweep(start, end, footRadius, exclude))
	if ok && hit.Normal.Z() >= walkableNormalZ {
		landed := hit.Location
		if hit.StartPenetrating {
			// Feet inside the floor, e.g. letting go of a low ledge: push
			// the foot sphere out through the floor top.
			landed = start.Add(hit.Normal.Mul(hit.Depth))
		}
		mv.Velocity[2] = 0
		mv.Grounded = true
		mv.Mode = component.MovementWalking
		return landed.Add(mgl64.Vec3{0, 0, footOffset})
	}

	mv.Grounded = false
	mv.Mode = component.MovementFalling
	return pos.Add(mgl64.Vec3{0, 0, dz})
}

func (s *MovementSystem) sweep(start, end mgl64.Vec3, radius float64, exclude map[uint64]struct{}) []physics.Hit {
	if s.sweeper == nil {
		return nil
	}
	return s.sweeper.SphereSweep(start, end, radius, exclude)
}

func firstBlockingHit(hits []physics.Hit) (physics.Hit, bool) {
	for _, hit := range hits {
		if hit.Blocking {
			return hit, true
		}
	}
	return physics.Hit{}, false
}
