package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotator is an orientation in degrees. Yaw turns around +Z, pitch tilts the
// forward axis towards +Z.
type Rotator struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// Forward returns the unit forward axis of the rotation.
func (r Rotator) Forward() mgl64.Vec3 {
	pitch := mgl64.DegToRad(r.Pitch)
	yaw := mgl64.DegToRad(r.Yaw)
	cp := math.Cos(pitch)
	return mgl64.Vec3{cp * math.Cos(yaw), cp * math.Sin(yaw), math.Sin(pitch)}
}

// Right returns the unit right axis of the yaw-only rotation.
func (r Rotator) Right() mgl64.Vec3 {
	yaw := mgl64.DegToRad(r.Yaw)
	return mgl64.Vec3{-math.Sin(yaw), math.Cos(yaw), 0}
}

// Matrix returns the rotation as a matrix acting on column vectors.
func (r Rotator) Matrix() mgl64.Mat3 {
	yaw := mgl64.Rotate3DZ(mgl64.DegToRad(r.Yaw))
	pitch := mgl64.Rotate3DY(-mgl64.DegToRad(r.Pitch))
	roll := mgl64.Rotate3DX(mgl64.DegToRad(r.Roll))
	return yaw.Mul3(pitch).Mul3(roll)
}

// YawOnly drops pitch and roll.
func (r Rotator) YawOnly() Rotator {
	return Rotator{Yaw: r.Yaw}
}

// Transform is the world placement of an actor's capsule.
type Transform struct {
	Position mgl64.Vec3
	Rotation Rotator
}

// LocalToWorld maps an offset in the actor frame to a world position.
func (t Transform) LocalToWorld(offset mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.Rotation.Matrix().Mul3x1(offset))
}

var TransformComponent = NewComponent[Transform]()
