package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	sweepEpsilon   = 1e-9
	sweepRefineMax = 64
)

type sweepContact struct {
	t                float64
	center           mgl64.Vec3
	impact           mgl64.Vec3
	normal           mgl64.Vec3
	depth            float64
	startPenetrating bool
}

// sweepSphereBox sweeps a sphere of radius r from o along delta (t in
// [0,1]) against the box [lo, hi].
func sweepSphereBox(o, delta mgl64.Vec3, r float64, lo, hi mgl64.Vec3) (sweepContact, bool) {
	q0 := closestPointOnBox(o, lo, hi)
	if dist := o.Sub(q0).Len(); dist <= r {
		n := o.Sub(q0)
		switch {
		case dist > sweepEpsilon:
			n = n.Mul(1 / dist)
		case delta.Len() > sweepEpsilon:
			n = delta.Normalize().Mul(-1)
		default:
			n = mgl64.Vec3{0, 0, 1}
		}
		depth := r - dist
		if dist <= sweepEpsilon {
			rv := mgl64.Vec3{r, r, r}
			depth = exitDistance(o, n, lo.Sub(rv), hi.Add(rv))
		}
		return sweepContact{t: 0, center: o, impact: q0, normal: n, depth: depth, startPenetrating: true}, true
	}
	if delta.Len() <= sweepEpsilon {
		return sweepContact{}, false
	}

	rv := mgl64.Vec3{r, r, r}
	tEnter, axis, ok := segmentBoxEntry(o, delta, lo.Sub(rv), hi.Add(rv))
	if !ok {
		return sweepContact{}, false
	}

	p := o.Add(delta.Mul(tEnter))
	if axis >= 0 && outsideAxes(p, lo, hi) <= 1 {
		// Face region: the entry point on the inflated box is exact.
		n := mgl64.Vec3{}
		n[axis] = -math.Copysign(1, delta[axis])
		return sweepContact{t: tEnter, center: p, impact: closestPointOnBox(p, lo, hi), normal: n}, true
	}

	// Edge or corner region. The distance from the moving centre to a
	// convex box is convex in t, so the first touch is found by locating
	// the minimum and bisecting towards the entry side.
	gap := func(t float64) float64 {
		c := o.Add(delta.Mul(t))
		return c.Sub(closestPointOnBox(c, lo, hi)).Len() - r
	}
	a, b := tEnter, 1.0
	for i := 0; i < sweepRefineMax; i++ {
		m1 := a + (b-a)/3
		m2 := b - (b-a)/3
		if gap(m1) <= gap(m2) {
			b = m2
		} else {
			a = m1
		}
	}
	tMin := (a + b) / 2
	if gap(tMin) > 1e-6 {
		return sweepContact{}, false
	}
	lo2, hi2 := tEnter, tMin
	for i := 0; i < sweepRefineMax; i++ {
		mid := (lo2 + hi2) / 2
		if gap(mid) > 0 {
			lo2 = mid
		} else {
			hi2 = mid
		}
	}
	t := hi2
	center := o.Add(delta.Mul(t))
	impact := closestPointOnBox(center, lo, hi)
	n := center.Sub(impact)
	if l := n.Len(); l > sweepEpsilon {
		n = n.Mul(1 / l)
	} else {
		n = delta.Normalize().Mul(-1)
	}
	return sweepContact{t: t, center: center, impact: impact, normal: n}, true
}

// segmentBoxEntry is the slab test of a segment against a box, returning
// the entry parameter and the axis it entered through (-1 when the origin
// starts inside).
func segmentBoxEntry(o, d, lo, hi mgl64.Vec3) (float64, int, bool) {
	tmin := 0.0
	tmax := 1.0
	axis := -1
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) <= sweepEpsilon {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, -1, false
			}
			continue
		}
		inv := 1.0 / d[i]
		t1 := (lo[i] - o[i]) * inv
		t2 := (hi[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, -1, false
		}
	}
	return tmin, axis, true
}

// exitDistance is how far o travels along the unit direction n before it
// leaves the box [lo, hi].
func exitDistance(o, n, lo, hi mgl64.Vec3) float64 {
	t := math.Inf(1)
	for i := 0; i < 3; i++ {
		switch {
		case n[i] > sweepEpsilon:
			t = math.Min(t, (hi[i]-o[i])/n[i])
		case n[i] < -sweepEpsilon:
			t = math.Min(t, (lo[i]-o[i])/n[i])
		}
	}
	if math.IsInf(t, 1) || t < 0 {
		return 0
	}
	return t
}

func closestPointOnBox(p, lo, hi mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p[0], lo[0], hi[0]),
		mgl64.Clamp(p[1], lo[1], hi[1]),
		mgl64.Clamp(p[2], lo[2], hi[2]),
	}
}

func outsideAxes(p, lo, hi mgl64.Vec3) int {
	const tol = 1e-7
	n := 0
	for i := 0; i < 3; i++ {
		if p[i] < lo[i]-tol || p[i] > hi[i]+tol {
			n++
		}
	}
	return n
}
