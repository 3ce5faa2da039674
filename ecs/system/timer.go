package system

import (
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
)

// TimerSystem counts named timers down by the world delta and raises their
// event when they expire.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaSeconds()
	ecs.ForEach(w, component.TimersComponent.Kind(), func(e ecs.Entity, timers *component.Timers) {
		if timers == nil || len(timers.Items) == 0 {
			return
		}
		kept := timers.Items[:0]
		for _, t := range timers.Items {
			t.Remaining -= dt
			if t.Remaining > 0 {
				kept = append(kept, t)
				continue
			}
			if t.Event != "" {
				w.Events().Push(ecs.Event{Type: t.Event, Entity: e, Data: t.Name})
			}
		}
		timers.Items = kept
	})
}
