package entity

import (
	"math"
	"testing"

	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
	"github.com/milk9111/parkour/ecs/system"
	"github.com/milk9111/parkour/levels"
	"github.com/milk9111/parkour/physics"
)

// newParkourWorld loads ledges.json with the player prefab on its spawn and
// the simulation systems in game order, without the ebiten input source.
func newParkourWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()

	lvl, err := levels.LoadLevel("ledges.json")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	w := ecs.NewWorld()
	phys := physics.NewWorld()
	if err := LoadLevelToWorld(w, phys, lvl); err != nil {
		t.Fatalf("load level to world: %v", err)
	}
	player, err := NewPlayerAt(w, lvl.Spawn)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	w.AddSystem(system.NewTimerSystem())
	w.AddSystem(system.NewCharacterControllerSystem())
	w.AddSystem(system.NewLedgeSystem(phys))
	w.AddSystem(system.NewMovementSystem(phys))
	w.AddSystem(system.NewTransformMoveSystem())
	return w, player
}

func TestLetGoOfWaistLedgeLandsOnFloor(t *testing.T) {
	w, player := newParkourWorld(t)
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	climber, _ := ecs.Get(w, player, component.LedgeClimberComponent.Kind())
	mv, _ := ecs.Get(w, player, component.CharacterMovementComponent.Kind())
	transform, _ := ecs.Get(w, player, component.TransformComponent.Kind())

	input.MoveForward = 1
	for i := 0; i < 300 && climber.State != component.LedgeHanging; i++ {
		w.Update()
	}
	if climber.State != component.LedgeHanging {
		t.Fatalf("expected to grab the waist ledge, got %s at %v", climber.State, transform.Position)
	}

	input.MoveForward = 0
	for i := 0; i < 15; i++ {
		w.Update()
	}
	if climber.GrabInFlight {
		t.Fatal("expected the grab to have settled")
	}
	if z := transform.Position.Z(); z >= 0 {
		t.Fatalf("expected the hang pose to sit below the floor top, got z=%v", z)
	}

	input.ExitPressed = true
	w.Update()
	input.ExitPressed = false

	if climber.State != component.LedgeGrounded {
		t.Fatalf("expected grounded after letting go, got %s", climber.State)
	}
	if !mv.Grounded || mv.Mode != component.MovementWalking {
		t.Fatalf("expected to stand on the floor, got grounded=%v mode=%s", mv.Grounded, mv.Mode)
	}
	if z := transform.Position.Z(); math.Abs(z-96) > 1e-6 {
		t.Fatalf("expected to stand at z=96, got %v", z)
	}
}
