package component

import "github.com/go-gl/mathgl/mgl64"

// MovementMode is the coarse locomotion state of a character.
type MovementMode int

const (
	MovementWalking MovementMode = iota
	MovementFalling
	MovementFlying
)

func (m MovementMode) String() string {
	switch m {
	case MovementWalking:
		return "walking"
	case MovementFalling:
		return "falling"
	case MovementFlying:
		return "flying"
	default:
		return "unknown"
	}
}

// CharacterMovement holds the tuning and runtime state of the character
// movement integrator.
type CharacterMovement struct {
	Mode     MovementMode
	Velocity mgl64.Vec3

	WalkSpeed     float64
	JumpZVelocity float64
	AirControl    float64
	Gravity       float64
	// RotationRate is the yaw turn speed in degrees per second used when
	// orienting to movement.
	RotationRate float64

	CapsuleRadius     float64
	CapsuleHalfHeight float64

	Grounded bool
	// JumpHeld is set by a jump press and cleared on release.
	JumpHeld bool
	// PendingInput is the movement direction accumulated this frame.
	PendingInput mgl64.Vec3
}

var CharacterMovementComponent = NewComponent[CharacterMovement]()
