package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/parkour/ecs/component"
)

// solveHangPlacement returns where the capsule goes when it grabs a ledge:
// pushed off the wall along its normal in X/Y, dropped below the ledge top.
func solveHangPlacement(wall component.WallContact, heightZ float64, tuning component.LedgeTuning) (mgl64.Vec3, component.Rotator) {
	n := wall.Normal
	position := mgl64.Vec3{
		wall.Location.X() + n.X()*tuning.WallOffset,
		wall.Location.Y() + n.Y()*tuning.WallOffset,
		heightZ - tuning.HangDrop,
	}
	return position, rotationFromNormal(n, tuning.Rotation)
}

func rotationFromNormal(n mgl64.Vec3, mode component.RotationFromNormal) component.Rotator {
	if mode == component.RotationLegacy {
		return component.Rotator{Pitch: n.X(), Yaw: n.Y(), Roll: n.Z()}
	}
	if math.Abs(n.X()) < 1e-9 && math.Abs(n.Y()) < 1e-9 {
		return component.Rotator{}
	}
	return component.Rotator{Yaw: mgl64.RadToDeg(math.Atan2(-n.Y(), -n.X()))}
}
