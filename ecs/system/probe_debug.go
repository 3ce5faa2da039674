package system

import (
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
)

// ProbeDebugSystem ages the probe traces kept for the debug overlay.
type ProbeDebugSystem struct{}

func NewProbeDebugSystem() *ProbeDebugSystem {
	return &ProbeDebugSystem{}
}

func (s *ProbeDebugSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaSeconds()
	ecs.ForEach(w, component.ProbeDebugComponent.Kind(), func(e ecs.Entity, debug *component.ProbeDebug) {
		kept := debug.Traces[:0]
		for _, trace := range debug.Traces {
			trace.Remaining -= dt
			if trace.Remaining > 0 {
				kept = append(kept, trace)
			}
		}
		debug.Traces = kept
	})
}
