package entity

import (
	"fmt"

	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
	"github.com/milk9111/parkour/levels"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

// NewPlayerAt builds the player and places it on the level spawn.
func NewPlayerAt(w *ecs.World, spawn levels.Spawn) (ecs.Entity, error) {
	entity, err := BuildEntity(w, "player.yaml")
	if err != nil {
		return 0, err
	}
	t := component.Transform{
		Position: [3]float64{spawn.X, spawn.Y, spawn.Z},
		Rotation: component.Rotator{Yaw: spawn.Yaw},
	}
	if err := SetEntityTransform(w, entity, t); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	if controller, ok := ecs.Get(w, entity, component.ControllerComponent.Kind()); ok {
		controller.ControlRotation = t.Rotation
	}
	return entity, nil
}

// RebuildPlayer replaces old with a fresh build of the player prefab, which
// picks up edited tuning and scripts. With keep set the old placement carries
// over, otherwise the new player starts on spawn.
func RebuildPlayer(w *ecs.World, old ecs.Entity, spawn levels.Spawn, keep bool) (ecs.Entity, error) {
	var placement component.Transform
	hadTransform := false
	if t, ok := ecs.Get(w, old, component.TransformComponent.Kind()); ok {
		placement = *t
		hadTransform = true
	}
	ecs.DestroyEntity(w, old)

	player, err := NewPlayerAt(w, spawn)
	if err != nil {
		return 0, err
	}
	if keep && hadTransform {
		if err := SetEntityTransform(w, player, placement); err != nil {
			return 0, fmt.Errorf("player: keep transform: %w", err)
		}
		if controller, ok := ecs.Get(w, player, component.ControllerComponent.Kind()); ok {
			controller.ControlRotation = placement.Rotation.YawOnly()
		}
	}
	return player, nil
}
