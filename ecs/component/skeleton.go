package component

import "github.com/go-gl/mathgl/mgl64"

// Skeleton exposes named sockets as offsets in the actor's local frame
// (X forward, Y right, Z up).
type Skeleton struct {
	Sockets map[string]mgl64.Vec3
}

var SkeletonComponent = NewComponent[Skeleton]()
