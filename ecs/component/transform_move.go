package component

// TransformMove drives a capsule linearly from From to To over Duration
// seconds.
type TransformMove struct {
	From     Transform
	To       Transform
	Duration float64
	Elapsed  float64
	Active   bool
}

var TransformMoveComponent = NewComponent[TransformMove]()
