package system

import (
	"github.com/milk9111/parkour/common"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
)

// TransformMoveSystem advances active capsule moves linearly and snaps to
// the target when the duration has elapsed.
type TransformMoveSystem struct{}

func NewTransformMoveSystem() *TransformMoveSystem {
	return &TransformMoveSystem{}
}

func (s *TransformMoveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaSeconds()
	ecs.ForEach2(w, component.TransformMoveComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, move *component.TransformMove, transform *component.Transform) {
		if !move.Active {
			return
		}
		move.Elapsed += dt
		if move.Duration <= 0 || move.Elapsed >= move.Duration {
			*transform = move.To
			move.Active = false
			return
		}
		*transform = interpolateTransform(move.From, move.To, move.Elapsed/move.Duration)
	})
}

func interpolateTransform(from, to component.Transform, t float64) component.Transform {
	return component.Transform{
		Position: from.Position.Add(to.Position.Sub(from.Position).Mul(t)),
		Rotation: component.Rotator{
			Pitch: common.LerpAngle(from.Rotation.Pitch, to.Rotation.Pitch, t),
			Yaw:   common.LerpAngle(from.Rotation.Yaw, to.Rotation.Yaw, t),
			Roll:  common.LerpAngle(from.Rotation.Roll, to.Rotation.Roll, t),
		},
	}
}
