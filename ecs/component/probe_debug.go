package component

import "github.com/go-gl/mathgl/mgl64"

// ProbeTrace is one sweep kept around for the debug overlay.
type ProbeTrace struct {
	Start     mgl64.Vec3
	End       mgl64.Vec3
	Radius    float64
	Hit       bool
	Location  mgl64.Vec3
	Remaining float64
}

type ProbeDebug struct {
	Traces []ProbeTrace
}

var ProbeDebugComponent = NewComponent[ProbeDebug]()
