package component

// AnimationState is the animation the listener script last selected.
type AnimationState struct {
	Current string
	Changes int
}

var AnimationStateComponent = NewComponent[AnimationState]()
