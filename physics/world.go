package physics

import (
	"log"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Response decides whether a box stops a sweep or is only reported.
type Response int

const (
	ResponseBlock Response = iota
	ResponseOverlap
)

// Box is an axis aligned static collider owned by an actor.
type Box struct {
	Actor    uint64
	Min      mgl64.Vec3
	Max      mgl64.Vec3
	Response Response

	shape *cp.Shape
}

// Hit is one contact reported by a sweep. Location is the sphere centre at
// the time of impact, ImpactPoint the touched point on the box. For a sweep
// that starts inside a box, Depth is how far the sphere must move along
// Normal to separate from it.
type Hit struct {
	Actor            uint64
	Location         mgl64.Vec3
	ImpactPoint      mgl64.Vec3
	Normal           mgl64.Vec3
	Time             float64
	Depth            float64
	Blocking         bool
	StartPenetrating bool
}

// World is the static collision geometry. The XY footprint of every box is
// kept in a Chipmunk space used as the broadphase; the narrow phase is an
// exact sphere against box sweep in 3D.
type World struct {
	space *cp.Space
	boxes map[*cp.Shape]*Box
	debug bool
}

// NewWorld creates an empty collision world.
func NewWorld() *World {
	return &World{
		space: cp.NewSpace(),
		boxes: make(map[*cp.Shape]*Box),
	}
}

// SetDebug enables per-sweep logging.
func (w *World) SetDebug(debug bool) {
	if w == nil {
		return
	}
	w.debug = debug
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddBox registers a box. Corners may be given in any order.
func (w *World) AddBox(actor uint64, a, b mgl64.Vec3, response Response) *Box {
	if w == nil {
		return nil
	}
	box := &Box{
		Actor:    actor,
		Min:      mgl64.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])},
		Max:      mgl64.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])},
		Response: response,
	}
	bb := cp.BB{L: box.Min[0], B: box.Min[1], R: box.Max[0], T: box.Max[1]}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	w.space.AddShape(shape)
	box.shape = shape
	w.boxes[shape] = box
	return box
}

// RemoveActor drops every box owned by actor and returns how many went.
func (w *World) RemoveActor(actor uint64) int {
	if w == nil {
		return 0
	}
	removed := 0
	for shape, box := range w.boxes {
		if box.Actor != actor {
			continue
		}
		w.space.RemoveShape(shape)
		delete(w.boxes, shape)
		removed++
	}
	return removed
}

// Clear removes all geometry.
func (w *World) Clear() {
	if w == nil {
		return
	}
	for shape := range w.boxes {
		w.space.RemoveShape(shape)
	}
	w.boxes = make(map[*cp.Shape]*Box)
}

// Boxes returns the registered boxes ordered by actor then position.
func (w *World) Boxes() []*Box {
	if w == nil {
		return nil
	}
	out := make([]*Box, 0, len(w.boxes))
	for _, box := range w.boxes {
		out = append(out, box)
	}
	sortBoxes(out)
	return out
}

// SphereSweep moves a sphere from origin to end and reports the overlap hits
// met before the first blocking hit, followed by that blocking hit, ordered
// by time. Boxes owned by an excluded actor are ignored. No contact is an
// empty result, never an error.
func (w *World) SphereSweep(origin, end mgl64.Vec3, radius float64, exclude map[uint64]struct{}) []Hit {
	if w == nil || w.space == nil {
		return nil
	}

	bb := cp.BB{
		L: min(origin[0], end[0]) - radius,
		B: min(origin[1], end[1]) - radius,
		R: max(origin[0], end[0]) + radius,
		T: max(origin[1], end[1]) + radius,
	}
	var candidates []*Box
	w.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		box, ok := w.boxes[shape]
		if !ok {
			return
		}
		if _, skip := exclude[box.Actor]; skip {
			return
		}
		candidates = append(candidates, box)
	}, nil)
	sortBoxes(candidates)

	delta := end.Sub(origin)
	var hits []Hit
	for _, box := range candidates {
		contact, ok := sweepSphereBox(origin, delta, radius, box.Min, box.Max)
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			Actor:            box.Actor,
			Location:         contact.center,
			ImpactPoint:      contact.impact,
			Normal:           contact.normal,
			Time:             contact.t,
			Depth:            contact.depth,
			Blocking:         box.Response == ResponseBlock,
			StartPenetrating: contact.startPenetrating,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Time < hits[j].Time })

	out := hits[:0]
	for _, hit := range hits {
		out = append(out, hit)
		if hit.Blocking {
			break
		}
	}

	if w.debug {
		log.Printf("physics: sweep from=%v to=%v r=%.1f candidates=%d hits=%d", origin, end, radius, len(candidates), len(out))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortBoxes(boxes []*Box) {
	sort.Slice(boxes, func(i, j int) bool {
		a, b := boxes[i], boxes[j]
		if a.Actor != b.Actor {
			return a.Actor < b.Actor
		}
		for k := 0; k < 3; k++ {
			if a.Min[k] != b.Min[k] {
				return a.Min[k] < b.Min[k]
			}
		}
		return false
	})
}
