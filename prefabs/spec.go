package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/parkour/ecs/component"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := decodeSpec(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// decodeSpec unmarshals onto out, so fields already set on out act as
// defaults for keys the file leaves out.
func decodeSpec(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// ParkourSpec is the ledge probe and placement tuning.
type ParkourSpec struct {
	PelvisSocket          string  `yaml:"pelvis_socket"`
	ProbeRadius           float64 `yaml:"probe_radius"`
	ForwardDistance       float64 `yaml:"forward_distance"`
	ForwardProbeScaleZ    bool    `yaml:"forward_probe_scale_z"`
	DownwardHeight        float64 `yaml:"downward_height"`
	DownwardForwardOffset float64 `yaml:"downward_forward_offset"`
	GapMin                float64 `yaml:"gap_min"`
	GapMax                float64 `yaml:"gap_max"`
	WallOffset            float64 `yaml:"wall_offset"`
	HangDrop              float64 `yaml:"hang_drop"`
	GrabDuration          float64 `yaml:"grab_duration"`
	RotationFromNormal    string  `yaml:"rotation_from_normal"`
	ContactMaxAge         uint64  `yaml:"contact_max_age"`
	DebugDraw             bool    `yaml:"debug_draw"`
	DebugDuration         float64 `yaml:"debug_duration"`
}

// DefaultParkourSpec mirrors component.DefaultLedgeTuning.
func DefaultParkourSpec() ParkourSpec {
	t := component.DefaultLedgeTuning()
	return ParkourSpec{
		PelvisSocket:          t.PelvisSocket,
		ProbeRadius:           t.ProbeRadius,
		ForwardDistance:       t.ForwardDistance,
		ForwardProbeScaleZ:    t.ForwardProbeScaleZ,
		DownwardHeight:        t.DownwardHeight,
		DownwardForwardOffset: t.DownwardForwardOffset,
		GapMin:                t.GapMin,
		GapMax:                t.GapMax,
		WallOffset:            t.WallOffset,
		HangDrop:              t.HangDrop,
		GrabDuration:          t.GrabDuration,
		RotationFromNormal:    string(t.Rotation),
		ContactMaxAge:         t.ContactMaxAge,
		DebugDraw:             t.DebugDraw,
		DebugDuration:         t.DebugDuration,
	}
}

// LoadParkourSpec loads filename over the defaults and validates it.
func LoadParkourSpec(filename string) (ParkourSpec, error) {
	spec := DefaultParkourSpec()
	if err := decodeSpec(filename, &spec); err != nil {
		return ParkourSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return ParkourSpec{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

func (s ParkourSpec) Validate() error {
	if s.ProbeRadius <= 0 {
		return fmt.Errorf("%w: probe_radius must be positive, got %v", ErrInvalidSpec, s.ProbeRadius)
	}
	if s.GapMin > s.GapMax {
		return fmt.Errorf("%w: gap_min %v above gap_max %v", ErrInvalidSpec, s.GapMin, s.GapMax)
	}
	if s.GrabDuration < 0 {
		return fmt.Errorf("%w: grab_duration must not be negative, got %v", ErrInvalidSpec, s.GrabDuration)
	}
	switch component.RotationFromNormal(s.RotationFromNormal) {
	case component.RotationAlign, component.RotationLegacy:
	default:
		return fmt.Errorf("%w: unknown rotation_from_normal %q", ErrInvalidSpec, s.RotationFromNormal)
	}
	return nil
}

func (s ParkourSpec) ToTuning() component.LedgeTuning {
	return component.LedgeTuning{
		PelvisSocket:          s.PelvisSocket,
		ProbeRadius:           s.ProbeRadius,
		ForwardDistance:       s.ForwardDistance,
		ForwardProbeScaleZ:    s.ForwardProbeScaleZ,
		DownwardHeight:        s.DownwardHeight,
		DownwardForwardOffset: s.DownwardForwardOffset,
		GapMin:                s.GapMin,
		GapMax:                s.GapMax,
		WallOffset:            s.WallOffset,
		HangDrop:              s.HangDrop,
		GrabDuration:          s.GrabDuration,
		Rotation:              component.RotationFromNormal(s.RotationFromNormal),
		ContactMaxAge:         s.ContactMaxAge,
		DebugDraw:             s.DebugDraw,
		DebugDuration:         s.DebugDuration,
	}
}
