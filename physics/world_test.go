package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestSphereSweepFaceHit(t *testing.T) {
	w := NewWorld()
	w.AddBox(1, mgl64.Vec3{100, -100, 0}, mgl64.Vec3{300, 100, 180}, ResponseBlock)

	hits := w.SphereSweep(mgl64.Vec3{0, 0, 100}, mgl64.Vec3{150, 0, 100}, 20, nil)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	hit := hits[0]
	if !vecNear(hit.Location, mgl64.Vec3{80, 0, 100}, 1e-9) {
		t.Fatalf("expected sphere centre at (80,0,100), got %v", hit.Location)
	}
	if !vecNear(hit.ImpactPoint, mgl64.Vec3{100, 0, 100}, 1e-9) {
		t.Fatalf("expected impact point on the face, got %v", hit.ImpactPoint)
	}
	if !vecNear(hit.Normal, mgl64.Vec3{-1, 0, 0}, 1e-9) {
		t.Fatalf("expected normal (-1,0,0), got %v", hit.Normal)
	}
	if !hit.Blocking || hit.StartPenetrating {
		t.Fatalf("unexpected flags: %+v", hit)
	}
}

func TestSphereSweepDownOntoTop(t *testing.T) {
	w := NewWorld()
	w.AddBox(1, mgl64.Vec3{100, -100, 0}, mgl64.Vec3{300, 100, 180}, ResponseBlock)

	hits := w.SphereSweep(mgl64.Vec3{128, 0, 600}, mgl64.Vec3{128, 0, 100}, 20, nil)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if got := hits[0].Location.Z(); math.Abs(got-200) > 1e-9 {
		t.Fatalf("expected centre z 200, got %v", got)
	}
	if !vecNear(hits[0].Normal, mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Fatalf("expected up normal, got %v", hits[0].Normal)
	}
}

func TestSphereSweepMisses(t *testing.T) {
	cases := []struct {
		name   string
		origin mgl64.Vec3
		end    mgl64.Vec3
	}{
		{"short", mgl64.Vec3{0, 0, 100}, mgl64.Vec3{70, 0, 100}},
		{"above", mgl64.Vec3{0, 0, 300}, mgl64.Vec3{150, 0, 300}},
		{"beside", mgl64.Vec3{0, 200, 100}, mgl64.Vec3{150, 200, 100}},
		// crosses the inflated corner of the box but stays 21.2 from the
		// real corner
		{"rounded_corner", mgl64.Vec3{0, 30, 100}, mgl64.Vec3{200, 230, 100}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			w.AddBox(1, mgl64.Vec3{100, -100, 0}, mgl64.Vec3{300, 100, 180}, ResponseBlock)
			if hits := w.SphereSweep(c.origin, c.end, 20, nil); len(hits) != 0 {
				t.Fatalf("expected no hits, got %+v", hits)
			}
		})
	}
}

func TestSphereSweepEdgeContact(t *testing.T) {
	w := NewWorld()
	w.AddBox(1, mgl64.Vec3{100, -100, 0}, mgl64.Vec3{300, 100, 180}, ResponseBlock)

	// Dives diagonally onto the top front edge so the edge is touched
	// before either face.
	k := 20 / math.Sqrt2
	origin := mgl64.Vec3{100 - k - 60, 0, 180 + k + 60}
	end := mgl64.Vec3{100 - k + 60, 0, 180 + k - 60}

	hits := w.SphereSweep(origin, end, 20, nil)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	hit := hits[0]
	if !vecNear(hit.ImpactPoint, mgl64.Vec3{100, 0, 180}, 1e-4) {
		t.Fatalf("expected impact on the top edge, got %v", hit.ImpactPoint)
	}
	if !vecNear(hit.Location, mgl64.Vec3{100 - k, 0, 180 + k}, 1e-4) {
		t.Fatalf("expected centre one radius off the edge, got %v", hit.Location)
	}
	if !vecNear(hit.Normal, mgl64.Vec3{-1, 0, 1}.Normalize(), 1e-4) {
		t.Fatalf("expected diagonal normal, got %v", hit.Normal)
	}
	if math.Abs(hit.Time-0.5) > 1e-4 {
		t.Fatalf("expected contact half way, got %v", hit.Time)
	}
}

func TestSphereSweepStartPenetrating(t *testing.T) {
	w := NewWorld()
	w.AddBox(1, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10}, ResponseBlock)

	hits := w.SphereSweep(mgl64.Vec3{5, 5, 15}, mgl64.Vec3{5, 5, 100}, 20, nil)
	if len(hits) != 1 || !hits[0].StartPenetrating || hits[0].Time != 0 {
		t.Fatalf("expected a start penetrating hit, got %+v", hits)
	}
}

func TestSphereSweepStartPenetratingDepth(t *testing.T) {
	tests := []struct {
		name      string
		origin    mgl64.Vec3
		wantDepth float64
	}{
		{"shallow", mgl64.Vec3{50, 50, 10}, 10},
		{"buried", mgl64.Vec3{50, 50, -80}, 100},
		{"touching", mgl64.Vec3{50, 50, 20}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			w.AddBox(1, mgl64.Vec3{0, 0, -100}, mgl64.Vec3{100, 100, 0}, ResponseBlock)

			hits := w.SphereSweep(tc.origin, tc.origin.Sub(mgl64.Vec3{0, 0, 10}), 20, nil)
			if len(hits) != 1 || !hits[0].StartPenetrating {
				t.Fatalf("expected a start penetrating hit, got %+v", hits)
			}
			hit := hits[0]
			if !vecNear(hit.Normal, mgl64.Vec3{0, 0, 1}, 1e-9) {
				t.Fatalf("expected up normal, got %v", hit.Normal)
			}
			if math.Abs(hit.Depth-tc.wantDepth) > 1e-9 {
				t.Fatalf("expected depth %v, got %v", tc.wantDepth, hit.Depth)
			}
			// moving out by the depth leaves the sphere resting on the top
			out := tc.origin.Add(hit.Normal.Mul(hit.Depth))
			if math.Abs(out.Z()-20) > 1e-9 {
				t.Fatalf("expected resolved centre at z=20, got %v", out)
			}
		})
	}
}

func TestSphereSweepExcludesActor(t *testing.T) {
	w := NewWorld()
	w.AddBox(7, mgl64.Vec3{100, -100, 0}, mgl64.Vec3{300, 100, 180}, ResponseBlock)

	exclude := map[uint64]struct{}{7: {}}
	if hits := w.SphereSweep(mgl64.Vec3{0, 0, 100}, mgl64.Vec3{150, 0, 100}, 20, exclude); len(hits) != 0 {
		t.Fatalf("expected excluded actor to be ignored, got %+v", hits)
	}
}

func TestSphereSweepMultiOrdering(t *testing.T) {
	w := NewWorld()
	// trigger volume first, then a wall, then a wall behind it
	w.AddBox(1, mgl64.Vec3{40, -50, 0}, mgl64.Vec3{50, 50, 200}, ResponseOverlap)
	w.AddBox(2, mgl64.Vec3{100, -50, 0}, mgl64.Vec3{110, 50, 200}, ResponseBlock)
	w.AddBox(3, mgl64.Vec3{130, -50, 0}, mgl64.Vec3{140, 50, 200}, ResponseBlock)

	hits := w.SphereSweep(mgl64.Vec3{0, 0, 100}, mgl64.Vec3{150, 0, 100}, 20, nil)
	if len(hits) != 2 {
		t.Fatalf("expected overlap + first block, got %+v", hits)
	}
	if hits[0].Actor != 1 || hits[0].Blocking {
		t.Fatalf("expected overlap first, got %+v", hits[0])
	}
	if hits[1].Actor != 2 || !hits[1].Blocking {
		t.Fatalf("expected first wall last, got %+v", hits[1])
	}
}

func TestRemoveActorAndClear(t *testing.T) {
	w := NewWorld()
	w.AddBox(1, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10}, ResponseBlock)
	w.AddBox(1, mgl64.Vec3{20, 0, 0}, mgl64.Vec3{30, 10, 10}, ResponseBlock)
	w.AddBox(2, mgl64.Vec3{40, 0, 0}, mgl64.Vec3{50, 10, 10}, ResponseBlock)

	if n := w.RemoveActor(1); n != 2 {
		t.Fatalf("expected 2 boxes removed, got %d", n)
	}
	if len(w.Boxes()) != 1 {
		t.Fatalf("expected 1 box left, got %d", len(w.Boxes()))
	}
	w.Clear()
	if len(w.Boxes()) != 0 {
		t.Fatalf("expected empty world after clear")
	}
	if hits := w.SphereSweep(mgl64.Vec3{45, 5, 100}, mgl64.Vec3{45, 5, -100}, 1, nil); hits != nil {
		t.Fatalf("expected no hits after clear, got %+v", hits)
	}
}

func TestAddBoxNormalisesCorners(t *testing.T) {
	w := NewWorld()
	box := w.AddBox(1, mgl64.Vec3{10, 10, 10}, mgl64.Vec3{0, 0, 0}, ResponseBlock)
	if box.Min != (mgl64.Vec3{0, 0, 0}) || box.Max != (mgl64.Vec3{10, 10, 10}) {
		t.Fatalf("expected normalised corners, got min=%v max=%v", box.Min, box.Max)
	}
}
