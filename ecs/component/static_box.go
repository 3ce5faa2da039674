package component

import "github.com/go-gl/mathgl/mgl64"

// StaticBox is an axis aligned piece of level geometry.
type StaticBox struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
	// Overlap boxes report hits without stopping a sweep.
	Overlap bool
	Color   string
}

var StaticBoxComponent = NewComponent[StaticBox]()
