package component

import "github.com/go-gl/mathgl/mgl64"

// LedgeState is the mutually exclusive ledge state of a climber.
type LedgeState int

const (
	LedgeGrounded LedgeState = iota
	LedgeHanging
	LedgeClimbing
)

func (s LedgeState) String() string {
	switch s {
	case LedgeGrounded:
		return "grounded"
	case LedgeHanging:
		return "hanging"
	case LedgeClimbing:
		return "climbing"
	default:
		return "unknown"
	}
}

// RotationFromNormal selects how the hang rotation is derived from the wall
// normal.
type RotationFromNormal string

const (
	// RotationAlign faces the character into the wall.
	RotationAlign RotationFromNormal = "align"
	// RotationLegacy feeds the raw normal components in as pitch, yaw and
	// roll degrees, matching recorded behaviour of older builds.
	RotationLegacy RotationFromNormal = "legacy"
)

// ProbeResult is the outcome of one sphere sweep. Location is the sphere
// centre at impact.
type ProbeResult struct {
	Location mgl64.Vec3
	Normal   mgl64.Vec3
	Hit      bool
}

// WallContact is the last successful forward probe.
type WallContact struct {
	Location mgl64.Vec3
	Normal   mgl64.Vec3
	Valid    bool
	// Tick is the world tick the contact was recorded on.
	Tick uint64
}

// CharacterPose is what the probes are cast from.
type CharacterPose struct {
	Position     mgl64.Vec3
	Forward      mgl64.Vec3
	PelvisHeight float64
}

// LedgeTuning holds the probe and placement constants.
type LedgeTuning struct {
	PelvisSocket string

	ProbeRadius           float64
	ForwardDistance       float64
	ForwardProbeScaleZ    bool
	DownwardHeight        float64
	DownwardForwardOffset float64

	// GapMin and GapMax bound pelvisHeight - ledgeZ, inclusive.
	GapMin float64
	GapMax float64

	WallOffset   float64
	HangDrop     float64
	GrabDuration float64
	Rotation     RotationFromNormal

	// ContactMaxAge is how many ticks a wall contact stays usable.
	ContactMaxAge uint64

	DebugDraw     bool
	DebugDuration float64
}

// DefaultLedgeTuning returns the stock parkour constants.
func DefaultLedgeTuning() LedgeTuning {
	return LedgeTuning{
		PelvisSocket:          "pelvis",
		ProbeRadius:           20,
		ForwardDistance:       150,
		DownwardHeight:        500,
		DownwardForwardOffset: 70,
		GapMin:                -50,
		GapMax:                0,
		WallOffset:            22,
		HangDrop:              135,
		GrabDuration:          0.13,
		Rotation:              RotationAlign,
		ContactMaxAge:         1,
		DebugDuration:         0.1,
	}
}

// LedgeClimber is the per-character ledge runtime.
type LedgeClimber struct {
	Tuning LedgeTuning

	State LedgeState
	// StateTicks counts ticks spent in State.
	StateTicks int

	Wall   WallContact
	Height ProbeResult
	// VerticalGap is pelvisHeight - Height.Location.Z from the last
	// downward hit.
	VerticalGap float64
	HasGap      bool

	// GrabInFlight is set while the hang placement move runs. A climb
	// cannot start until it clears; letting go cancels it.
	GrabInFlight bool
	// ClimbUpRequested latches a jump press while hanging.
	ClimbUpRequested bool
}

var LedgeClimberComponent = NewComponent[LedgeClimber]()

// LedgeStateHandler is one state of the ledge state machine.
type LedgeStateHandler interface {
	State() LedgeState
	Name() string
	Enter(ctx *LedgeStateContext)
	Exit(ctx *LedgeStateContext)
	HandleInput(ctx *LedgeStateContext)
	Update(ctx *LedgeStateContext)
}

// LedgeStateContext gives a state access to the climber and the character
// without depending on the ECS package.
type LedgeStateContext struct {
	Input   *Input
	Climber *LedgeClimber

	LedgeInReach func() bool
	GrabLedge    func() bool
	ExitLedge    func()
	Jump         func()
	StopJumping  func()
	ClimbUp      func()
}
