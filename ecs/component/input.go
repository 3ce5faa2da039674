package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveForward float64
	MoveRight   float64
	Turn        float64
	TurnRate    float64
	LookUp      float64
	LookUpRate  float64

	Jump         bool
	JumpPressed  bool
	JumpReleased bool
	ExitPressed  bool
}

var InputComponent = NewComponent[Input]()
