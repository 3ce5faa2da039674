package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/parkour/ecs/component"
	"github.com/milk9111/parkour/physics"
)

// SphereSweeper is the world query the probes are cast against.
type SphereSweeper interface {
	SphereSweep(origin, end mgl64.Vec3, radius float64, exclude map[uint64]struct{}) []physics.Hit
}

type probeCast struct {
	start  mgl64.Vec3
	end    mgl64.Vec3
	result component.ProbeResult
}

// forwardProbeEnd scales only X and Y by the sweep distance unless
// ForwardProbeScaleZ is set; the unscaled Z is what older builds shipped.
func forwardProbeEnd(pose component.CharacterPose, tuning component.LedgeTuning) mgl64.Vec3 {
	f := pose.Forward
	z := f.Z()
	if tuning.ForwardProbeScaleZ {
		z *= tuning.ForwardDistance
	}
	return pose.Position.Add(mgl64.Vec3{f.X() * tuning.ForwardDistance, f.Y() * tuning.ForwardDistance, z})
}

func downwardProbeSegment(pose component.CharacterPose, tuning component.LedgeTuning) (mgl64.Vec3, mgl64.Vec3) {
	start := pose.Position.
		Add(mgl64.Vec3{0, 0, tuning.DownwardHeight}).
		Add(pose.Forward.Mul(tuning.DownwardForwardOffset))
	end := start.Sub(mgl64.Vec3{0, 0, tuning.DownwardHeight})
	return start, end
}

func castForward(sweeper SphereSweeper, pose component.CharacterPose, tuning component.LedgeTuning, exclude map[uint64]struct{}) probeCast {
	start := pose.Position
	end := forwardProbeEnd(pose, tuning)
	return probeCast{start: start, end: end, result: castSphere(sweeper, start, end, tuning.ProbeRadius, exclude)}
}

func castDownward(sweeper SphereSweeper, pose component.CharacterPose, tuning component.LedgeTuning, exclude map[uint64]struct{}) probeCast {
	start, end := downwardProbeSegment(pose, tuning)
	return probeCast{start: start, end: end, result: castSphere(sweeper, start, end, tuning.ProbeRadius, exclude)}
}

func castSphere(sweeper SphereSweeper, start, end mgl64.Vec3, radius float64, exclude map[uint64]struct{}) component.ProbeResult {
	if sweeper == nil {
		return component.ProbeResult{}
	}
	return lastHit(sweeper.SphereSweep(start, end, radius, exclude))
}

// lastHit keeps the last entry of a multi-hit result; callers rely on
// last-wins, not first-wins.
func lastHit(hits []physics.Hit) component.ProbeResult {
	if len(hits) == 0 {
		return component.ProbeResult{}
	}
	h := hits[len(hits)-1]
	return component.ProbeResult{Location: h.Location, Normal: h.Normal, Hit: true}
}
