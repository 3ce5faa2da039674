package system

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
	"github.com/milk9111/parkour/physics"
)

type sweepCall struct {
	origin  mgl64.Vec3
	end     mgl64.Vec3
	radius  float64
	exclude map[uint64]struct{}
}

// fakeSweeper answers vertical sweeps with down and everything else with
// forward.
type fakeSweeper struct {
	forward []physics.Hit
	down    []physics.Hit
	calls   []sweepCall
}

func (f *fakeSweeper) SphereSweep(origin, end mgl64.Vec3, radius float64, exclude map[uint64]struct{}) []physics.Hit {
	f.calls = append(f.calls, sweepCall{origin: origin, end: end, radius: radius, exclude: exclude})
	if origin.X() == end.X() && origin.Y() == end.Y() {
		return f.down
	}
	return f.forward
}

type recordingListener struct {
	events []string
}

func (r *recordingListener) CanGrab(canGrab bool) {
	r.events = append(r.events, fmt.Sprintf("can_grab:%t", canGrab))
}

func (r *recordingListener) ClimbLedge(isClimbing bool) {
	r.events = append(r.events, fmt.Sprintf("climb_ledge:%t", isClimbing))
}

func (r *recordingListener) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

type climberFixture struct {
	w        *ecs.World
	e        ecs.Entity
	sweeper  *fakeSweeper
	ledge    *LedgeSystem
	listener *recordingListener
}

// newClimberFixture spawns a grounded walking character at (0, 0, 100)
// facing +X with its pelvis socket on the actor origin.
func newClimberFixture(t *testing.T) *climberFixture {
	t.Helper()

	w := ecs.NewWorld()
	e := w.CreateEntity()
	listener := &recordingListener{}
	sweeper := &fakeSweeper{}

	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{0, 0, 100}})
	mustAdd(t, w, e, component.CharacterMovementComponent.Kind(), &component.CharacterMovement{
		Mode:          component.MovementWalking,
		Grounded:      true,
		JumpZVelocity: 600,
		Gravity:       980,
	})
	mustAdd(t, w, e, component.SkeletonComponent.Kind(), &component.Skeleton{Sockets: map[string]mgl64.Vec3{"pelvis": {}}})
	mustAdd(t, w, e, component.LedgeClimberComponent.Kind(), &component.LedgeClimber{Tuning: component.DefaultLedgeTuning()})
	mustAdd(t, w, e, component.ParkourListenersComponent.Kind(), &component.ParkourListeners{Listeners: []component.ParkourListener{listener}})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})

	return &climberFixture{
		w:        w,
		e:        e,
		sweeper:  sweeper,
		ledge:    NewLedgeSystem(sweeper),
		listener: listener,
	}
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], value *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, value); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("missing component %T", v)
	}
	return v
}

func (f *climberFixture) climber(t *testing.T) *component.LedgeClimber {
	return mustGet(t, f.w, f.e, component.LedgeClimberComponent.Kind())
}

func (f *climberFixture) movement(t *testing.T) *component.CharacterMovement {
	return mustGet(t, f.w, f.e, component.CharacterMovementComponent.Kind())
}

func (f *climberFixture) input(t *testing.T) *component.Input {
	return mustGet(t, f.w, f.e, component.InputComponent.Kind())
}

// setLedge makes the fake world report a wall ahead and a ledge top whose
// probe sphere stops at ledgeZ.
func (f *climberFixture) setLedge(ledgeZ float64) {
	f.sweeper.forward = []physics.Hit{{Location: mgl64.Vec3{100, 0, 100}, Normal: mgl64.Vec3{-1, 0, 0}, Blocking: true}}
	f.sweeper.down = []physics.Hit{{Location: mgl64.Vec3{70, 0, ledgeZ}, Normal: mgl64.Vec3{0, 0, 1}, Blocking: true}}
}

func (f *climberFixture) clearProbes() {
	f.sweeper.forward = nil
	f.sweeper.down = nil
}

// hang drives the fixture into the hanging state through a normal tick.
func (f *climberFixture) hang(t *testing.T) {
	t.Helper()
	f.setLedge(110)
	f.ledge.Update(f.w)
	if got := f.climber(t).State; got != component.LedgeHanging {
		t.Fatalf("expected hanging after grab, got %s", got)
	}
}

func vecNear(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-6
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
