package component

// Controller is the possessing controller of a character. Characters without
// one ignore movement and look input.
type Controller struct {
	ControlRotation Rotator
	// BaseTurnRate and BaseLookUpRate are in degrees per second.
	BaseTurnRate   float64
	BaseLookUpRate float64
}

var ControllerComponent = NewComponent[Controller]()
