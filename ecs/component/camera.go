package component

// Camera is a top-down view centred on a target entity.
type Camera struct {
	Zoom       float64
	Smoothness float64
	X, Y       float64
}

var CameraComponent = NewComponent[Camera]()
