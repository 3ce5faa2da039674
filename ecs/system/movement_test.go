package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
	"github.com/milk9111/parkour/physics"
)

func newWalker(t *testing.T, w *ecs.World, pos mgl64.Vec3, grounded bool) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mode := component.MovementFalling
	if grounded {
		mode = component.MovementWalking
	}
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	mustAdd(t, w, e, component.CharacterMovementComponent.Kind(), &component.CharacterMovement{
		Mode:              mode,
		Grounded:          grounded,
		WalkSpeed:         600,
		JumpZVelocity:     600,
		AirControl:        0.2,
		Gravity:           980,
		RotationRate:      540,
		CapsuleRadius:     42,
		CapsuleHalfHeight: 96,
	})
	return e
}

func floorWorld() *physics.World {
	phys := physics.NewWorld()
	phys.AddBox(1000, mgl64.Vec3{-2000, -2000, -100}, mgl64.Vec3{2000, 2000, 0}, physics.ResponseBlock)
	return phys
}

func TestMovementFallsAndLands(t *testing.T) {
	w := ecs.NewWorld()
	e := newWalker(t, w, mgl64.Vec3{0, 0, 300}, false)
	s := NewMovementSystem(floorWorld())

	for i := 0; i < 120; i++ {
		s.Update(w)
	}

	transform := mustGet(t, w, e, component.TransformComponent.Kind())
	mv := mustGet(t, w, e, component.CharacterMovementComponent.Kind())
	if !near(transform.Position.Z(), 96) {
		t.Fatalf("expected to rest at z=96, got %v", transform.Position.Z())
	}
	if !mv.Grounded || mv.Mode != component.MovementWalking || mv.Velocity.Z() != 0 {
		t.Fatalf("expected grounded walking, got grounded=%v mode=%s vz=%v", mv.Grounded, mv.Mode, mv.Velocity.Z())
	}
}

func TestMovementLiftsBuriedFeetOntoFloor(t *testing.T) {
	tests := []struct {
		name string
		z    float64
	}{
		// the hang pose under a 110 high ledge
		{"capsule_centre_below_floor", -25},
		{"foot_centre_below_floor", 40},
		{"foot_sphere_overlapping_top", 80},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newWalker(t, w, mgl64.Vec3{358, 0, tc.z}, false)
			mv := mustGet(t, w, e, component.CharacterMovementComponent.Kind())
			mv.Mode = component.MovementWalking
			s := NewMovementSystem(floorWorld())

			s.Update(w)

			transform := mustGet(t, w, e, component.TransformComponent.Kind())
			if !near(transform.Position.Z(), 96) {
				t.Fatalf("expected feet lifted onto the floor at z=96, got %v", transform.Position.Z())
			}
			if !mv.Grounded || mv.Mode != component.MovementWalking || mv.Velocity.Z() != 0 {
				t.Fatalf("expected grounded walking, got grounded=%v mode=%s vz=%v", mv.Grounded, mv.Mode, mv.Velocity.Z())
			}

			for i := 0; i < 30; i++ {
				s.Update(w)
			}
			if !near(transform.Position.Z(), 96) || !mv.Grounded {
				t.Fatalf("expected to stay on the floor, got z=%v grounded=%v", transform.Position.Z(), mv.Grounded)
			}
		})
	}
}

func TestMovementStopsAtWall(t *testing.T) {
	w := ecs.NewWorld()
	e := newWalker(t, w, mgl64.Vec3{0, 0, 96}, true)
	phys := floorWorld()
	phys.AddBox(2000, mgl64.Vec3{200, -500, 0}, mgl64.Vec3{300, 500, 300}, physics.ResponseBlock)
	s := NewMovementSystem(phys)

	mv := mustGet(t, w, e, component.CharacterMovementComponent.Kind())
	for i := 0; i < 60; i++ {
		mv.PendingInput = mgl64.Vec3{1, 0, 0}
		s.Update(w)
	}

	transform := mustGet(t, w, e, component.TransformComponent.Kind())
	if !vecNear(transform.Position, mgl64.Vec3{158, 0, 96}) {
		t.Fatalf("expected to stop against the wall at x=158, got %v", transform.Position)
	}
	if !mv.Grounded {
		t.Fatal("expected to stay grounded against the wall")
	}
	if !near(transform.Rotation.Yaw, 0) {
		t.Fatalf("expected to face +X, got yaw %v", transform.Rotation.Yaw)
	}
}

func TestMovementSlidesAlongWall(t *testing.T) {
	w := ecs.NewWorld()
	e := newWalker(t, w, mgl64.Vec3{158, 0, 96}, true)
	phys := floorWorld()
	phys.AddBox(2000, mgl64.Vec3{200, -500, 0}, mgl64.Vec3{300, 500, 300}, physics.ResponseBlock)
	s := NewMovementSystem(phys)

	mv := mustGet(t, w, e, component.CharacterMovementComponent.Kind())
	mv.PendingInput = mgl64.Vec3{1, 1, 0}
	s.Update(w)

	transform := mustGet(t, w, e, component.TransformComponent.Kind())
	if !near(transform.Position.X(), 158) {
		t.Fatalf("expected to stay against the wall, got x=%v", transform.Position.X())
	}
	if transform.Position.Y() <= 0 {
		t.Fatalf("expected to slide along +Y, got y=%v", transform.Position.Y())
	}
}

func TestMovementRotatesTowardsInput(t *testing.T) {
	w := ecs.NewWorld()
	e := newWalker(t, w, mgl64.Vec3{0, 0, 96}, true)
	s := NewMovementSystem(floorWorld())

	mv := mustGet(t, w, e, component.CharacterMovementComponent.Kind())
	mv.PendingInput = mgl64.Vec3{0, 1, 0}
	s.Update(w)

	transform := mustGet(t, w, e, component.TransformComponent.Kind())
	// 540 deg/s at 60 Hz is 9 degrees per tick
	if !near(transform.Rotation.Yaw, 9) {
		t.Fatalf("expected yaw 9 after one tick, got %v", transform.Rotation.Yaw)
	}
	for i := 0; i < 20; i++ {
		mv.PendingInput = mgl64.Vec3{0, 1, 0}
		s.Update(w)
	}
	if !near(transform.Rotation.Yaw, 90) {
		t.Fatalf("expected yaw to settle on 90, got %v", transform.Rotation.Yaw)
	}
}

func TestMovementJumpArc(t *testing.T) {
	w := ecs.NewWorld()
	e := newWalker(t, w, mgl64.Vec3{0, 0, 96}, true)
	s := NewMovementSystem(floorWorld())

	if !CharacterOf(w, e).Jump() {
		t.Fatal("expected grounded character to jump")
	}
	if CharacterOf(w, e).Jump() {
		t.Fatal("expected no double jump")
	}

	transform := mustGet(t, w, e, component.TransformComponent.Kind())
	apex := 0.0
	for i := 0; i < 180; i++ {
		s.Update(w)
		apex = max(apex, transform.Position.Z())
	}
	if apex < 250 || apex > 290 {
		t.Fatalf("expected apex near 96+184, got %v", apex)
	}
	mv := mustGet(t, w, e, component.CharacterMovementComponent.Kind())
	if !mv.Grounded || !near(transform.Position.Z(), 96) {
		t.Fatalf("expected to land again, grounded=%v z=%v", mv.Grounded, transform.Position.Z())
	}
}

func TestMovementFlyingIgnoresGravity(t *testing.T) {
	w := ecs.NewWorld()
	e := newWalker(t, w, mgl64.Vec3{0, 0, 500}, false)
	ch := CharacterOf(w, e)
	ch.SetMovementMode(component.MovementFlying)
	ch.StopImmediately()
	s := NewMovementSystem(floorWorld())

	for i := 0; i < 30; i++ {
		s.Update(w)
	}
	transform := mustGet(t, w, e, component.TransformComponent.Kind())
	if !vecNear(transform.Position, mgl64.Vec3{0, 0, 500}) {
		t.Fatalf("expected to hold position while flying, got %v", transform.Position)
	}
}

func TestTransformMoveIsLinear(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaSeconds(0.25)
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})

	CharacterOf(w, e).MoveTransformTo(mgl64.Vec3{100, 0, 40}, component.Rotator{Yaw: 90}, 1)
	s := NewTransformMoveSystem()

	transform := mustGet(t, w, e, component.TransformComponent.Kind())
	steps := []struct {
		pos mgl64.Vec3
		yaw float64
	}{
		{mgl64.Vec3{25, 0, 10}, 22.5},
		{mgl64.Vec3{50, 0, 20}, 45},
		{mgl64.Vec3{75, 0, 30}, 67.5},
		{mgl64.Vec3{100, 0, 40}, 90},
	}
	for i, step := range steps {
		s.Update(w)
		if !vecNear(transform.Position, step.pos) || !near(transform.Rotation.Yaw, step.yaw) {
			t.Fatalf("step %d: expected %v yaw %v, got %v yaw %v", i, step.pos, step.yaw, transform.Position, transform.Rotation.Yaw)
		}
	}
	if CharacterOf(w, e).Moving() {
		t.Fatal("expected move to finish")
	}
}

func TestMoveTransformToTeleportsWithoutDuration(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})

	CharacterOf(w, e).MoveTransformTo(mgl64.Vec3{1, 2, 3}, component.Rotator{Yaw: 10}, 0)
	transform := mustGet(t, w, e, component.TransformComponent.Kind())
	if transform.Position != (mgl64.Vec3{1, 2, 3}) || transform.Rotation.Yaw != 10 {
		t.Fatalf("expected teleport, got %+v", transform)
	}
	if CharacterOf(w, e).Moving() {
		t.Fatal("expected no move in flight")
	}
}

func TestTimerSystemRaisesEvents(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaSeconds(0.1)
	e := w.CreateEntity()
	CharacterOf(w, e).ArmTimer("short", 0.15, "short_done")
	CharacterOf(w, e).ArmTimer("silent", 0.05, "")
	CharacterOf(w, e).ArmTimer("long", 1, "long_done")

	s := NewTimerSystem()
	fired := map[string]int{}
	for i := 0; i < 3; i++ {
		s.Update(w)
		for _, evt := range w.Events().Drain() {
			if evt.Entity != e {
				t.Fatalf("event raised for wrong entity %v", evt.Entity)
			}
			fired[evt.Type]++
		}
	}

	if fired["short_done"] != 1 || fired["long_done"] != 0 || len(fired) != 1 {
		t.Fatalf("unexpected events %v", fired)
	}
	timers := mustGet(t, w, e, component.TimersComponent.Kind())
	if timers.Active("short") || timers.Active("silent") || !timers.Active("long") {
		t.Fatalf("unexpected timers %+v", timers.Items)
	}
}

func TestCharacterControllerAxes(t *testing.T) {
	tests := []struct {
		name    string
		yaw     float64
		input   component.Input
		state   component.LedgeState
		climber bool
		want    mgl64.Vec3
	}{
		{"forward_facing_x", 0, component.Input{MoveForward: 1}, component.LedgeGrounded, false, mgl64.Vec3{1, 0, 0}},
		{"forward_facing_y", 90, component.Input{MoveForward: 1}, component.LedgeGrounded, false, mgl64.Vec3{0, 1, 0}},
		{"right_facing_x", 0, component.Input{MoveRight: 1}, component.LedgeGrounded, false, mgl64.Vec3{0, 1, 0}},
		{"zero_input", 0, component.Input{}, component.LedgeGrounded, false, mgl64.Vec3{}},
		{"hanging_ignores_move", 0, component.Input{MoveForward: 1}, component.LedgeHanging, true, mgl64.Vec3{}},
		{"climbing_ignores_move", 0, component.Input{MoveRight: -1}, component.LedgeClimbing, true, mgl64.Vec3{}},
		{"grounded_climber_moves", 0, component.Input{MoveForward: -1}, component.LedgeGrounded, true, mgl64.Vec3{-1, 0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newWalker(t, w, mgl64.Vec3{}, true)
			input := tc.input
			mustAdd(t, w, e, component.InputComponent.Kind(), &input)
			mustAdd(t, w, e, component.ControllerComponent.Kind(), &component.Controller{ControlRotation: component.Rotator{Yaw: tc.yaw}})
			if tc.climber {
				mustAdd(t, w, e, component.LedgeClimberComponent.Kind(), &component.LedgeClimber{State: tc.state})
			}

			NewCharacterControllerSystem().Update(w)
			mv := mustGet(t, w, e, component.CharacterMovementComponent.Kind())
			if !vecNear(mv.PendingInput, tc.want) {
				t.Fatalf("expected pending input %v, got %v", tc.want, mv.PendingInput)
			}
		})
	}
}

func TestCharacterControllerRates(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaSeconds(0.5)
	e := newWalker(t, w, mgl64.Vec3{}, true)
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{TurnRate: 1, LookUpRate: -1})
	controller := &component.Controller{BaseTurnRate: 45, BaseLookUpRate: 45}
	mustAdd(t, w, e, component.ControllerComponent.Kind(), controller)

	NewCharacterControllerSystem().Update(w)
	if !near(controller.ControlRotation.Yaw, 22.5) || !near(controller.ControlRotation.Pitch, -22.5) {
		t.Fatalf("expected yaw 22.5 pitch -22.5, got %+v", controller.ControlRotation)
	}

	for i := 0; i < 10; i++ {
		NewCharacterControllerSystem().Update(w)
	}
	if controller.ControlRotation.Pitch != -maxControlPitch {
		t.Fatalf("expected pitch clamped, got %v", controller.ControlRotation.Pitch)
	}
}

func TestCharacterControllerJumpWithoutClimber(t *testing.T) {
	w := ecs.NewWorld()
	e := newWalker(t, w, mgl64.Vec3{}, true)
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{JumpPressed: true})

	NewCharacterControllerSystem().Update(w)
	mv := mustGet(t, w, e, component.CharacterMovementComponent.Kind())
	if mv.Velocity.Z() != 600 {
		t.Fatalf("expected jump impulse, got %v", mv.Velocity)
	}
}
