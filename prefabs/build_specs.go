package prefabs

import (
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
	Roll  float64 `yaml:"roll"`
}

type MovementComponentSpec struct {
	WalkSpeed         float64 `yaml:"walk_speed"`
	JumpZVelocity     float64 `yaml:"jump_z_velocity"`
	AirControl        float64 `yaml:"air_control"`
	Gravity           float64 `yaml:"gravity"`
	RotationRate      float64 `yaml:"rotation_rate"`
	CapsuleRadius     float64 `yaml:"capsule_radius"`
	CapsuleHalfHeight float64 `yaml:"capsule_half_height"`
}

type ControllerComponentSpec struct {
	BaseTurnRate   float64 `yaml:"base_turn_rate"`
	BaseLookUpRate float64 `yaml:"base_look_up_rate"`
}

type SkeletonComponentSpec struct {
	Sockets map[string][]float64 `yaml:"sockets"`
}

// SocketOffsets converts the [x, y, z] lists; short lists are zero padded.
func (s SkeletonComponentSpec) SocketOffsets() map[string]mgl64.Vec3 {
	out := make(map[string]mgl64.Vec3, len(s.Sockets))
	for name, xyz := range s.Sockets {
		var v mgl64.Vec3
		copy(v[:], xyz)
		out[name] = v
	}
	return out
}

type LedgeClimberComponentSpec struct {
	Spec string `yaml:"spec"`
}

type ParkourListenersComponentSpec struct {
	AnimationScript string `yaml:"animation_script"`
	Log             bool   `yaml:"log"`
}

type CameraComponentSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}
