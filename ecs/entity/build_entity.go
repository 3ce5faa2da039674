package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
	"github.com/milk9111/parkour/ecs/system"
	"github.com/milk9111/parkour/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":        addPlayerTag,
	"camera_tag":        addCameraTag,
	"input":             addInput,
	"transform":         addTransform,
	"movement":          addMovement,
	"controller":        addController,
	"skeleton":          addSkeleton,
	"ledge_climber":     addLedgeClimber,
	"parkour_listeners": addParkourListeners,
	"camera":            addCamera,
}

// Listeners are built last so scripts can see every other component.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"input",
	"transform",
	"movement",
	"controller",
	"skeleton",
	"ledge_climber",
	"camera",
	"parkour_listeners",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetEntityTransform places e, creating the transform if needed.
func SetEntityTransform(w *ecs.World, e ecs.Entity, t component.Transform) error {
	current, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return ecs.Add(w, e, component.TransformComponent.Kind(), &t)
	}
	*current = t
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: [3]float64{spec.X, spec.Y, spec.Z},
		Rotation: component.Rotator{Pitch: spec.Pitch, Yaw: spec.Yaw, Roll: spec.Roll},
	})
}

func addMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MovementComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode movement spec: %w", err)
	}
	if spec.CapsuleRadius <= 0 || spec.CapsuleHalfHeight < spec.CapsuleRadius {
		return fmt.Errorf("movement: capsule radius %v / half height %v", spec.CapsuleRadius, spec.CapsuleHalfHeight)
	}
	return ecs.Add(w, e, component.CharacterMovementComponent.Kind(), &component.CharacterMovement{
		Mode:              component.MovementFalling,
		WalkSpeed:         spec.WalkSpeed,
		JumpZVelocity:     spec.JumpZVelocity,
		AirControl:        spec.AirControl,
		Gravity:           spec.Gravity,
		RotationRate:      spec.RotationRate,
		CapsuleRadius:     spec.CapsuleRadius,
		CapsuleHalfHeight: spec.CapsuleHalfHeight,
	})
}

func addController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ControllerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode controller spec: %w", err)
	}
	controller := &component.Controller{
		BaseTurnRate:   spec.BaseTurnRate,
		BaseLookUpRate: spec.BaseLookUpRate,
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		controller.ControlRotation = t.Rotation.YawOnly()
	}
	return ecs.Add(w, e, component.ControllerComponent.Kind(), controller)
}

func addSkeleton(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SkeletonComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode skeleton spec: %w", err)
	}
	return ecs.Add(w, e, component.SkeletonComponent.Kind(), &component.Skeleton{Sockets: spec.SocketOffsets()})
}

func addLedgeClimber(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LedgeClimberComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ledge_climber spec: %w", err)
	}
	tuning := component.DefaultLedgeTuning()
	if spec.Spec != "" {
		parkour, err := prefabs.LoadParkourSpec(spec.Spec)
		if err != nil {
			return err
		}
		tuning = parkour.ToTuning()
	}
	return ecs.Add(w, e, component.LedgeClimberComponent.Kind(), &component.LedgeClimber{
		Tuning: tuning,
		State:  component.LedgeGrounded,
	})
}

func addParkourListeners(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParkourListenersComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode parkour_listeners spec: %w", err)
	}
	listeners := &component.ParkourListeners{}
	if spec.AnimationScript != "" {
		src, err := prefabs.LoadScript(spec.AnimationScript)
		if err != nil {
			return fmt.Errorf("load animation script %q: %w", spec.AnimationScript, err)
		}
		scripted, err := system.NewScriptedAnimationListener(w, e, src)
		if err != nil {
			return err
		}
		listeners.Listeners = append(listeners.Listeners, scripted)
	}
	if spec.Log {
		listeners.Listeners = append(listeners.Listeners, system.LogListener{Entity: e})
	}
	return ecs.Add(w, e, component.ParkourListenersComponent.Kind(), listeners)
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       zoom,
		Smoothness: spec.Smoothness,
	})
}
