package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
)

const parkourListenerDispatchScript = `
__result := ""
if __event == "can_grab" {
	__result = can_grab(__value, __current)
} else if __event == "climb_ledge" {
	__result = climb_ledge(__value, __current)
}
`

// ScriptedAnimationListener lets a tengo script pick the animation for each
// parkour notification. The script defines can_grab(value, current) and
// climb_ledge(value, current); each returns the next animation name, or
// nothing to keep the current one.
type ScriptedAnimationListener struct {
	w        *ecs.World
	e        ecs.Entity
	compiled *tengo.Compiled
}

// NewScriptedAnimationListener compiles src and makes sure e carries an
// AnimationState to write to.
func NewScriptedAnimationListener(w *ecs.World, e ecs.Entity, src []byte) (*ScriptedAnimationListener, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + parkourListenerDispatchScript))
	_ = script.Add("__event", "")
	_ = script.Add("__value", false)
	_ = script.Add("__current", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("parkour: compile animation script: %w", err)
	}

	if !ecs.Has(w, e, component.AnimationStateComponent.Kind()) {
		if err := ecs.Add(w, e, component.AnimationStateComponent.Kind(), &component.AnimationState{Current: "idle"}); err != nil {
			return nil, fmt.Errorf("parkour: add animation state: %w", err)
		}
	}

	return &ScriptedAnimationListener{w: w, e: e, compiled: compiled}, nil
}

func (l *ScriptedAnimationListener) CanGrab(canGrab bool) {
	l.dispatch("can_grab", canGrab)
}

func (l *ScriptedAnimationListener) ClimbLedge(isClimbing bool) {
	l.dispatch("climb_ledge", isClimbing)
}

func (l *ScriptedAnimationListener) dispatch(event string, value bool) {
	if l == nil || l.compiled == nil {
		return
	}
	anim, ok := ecs.Get(l.w, l.e, component.AnimationStateComponent.Kind())
	if !ok {
		return
	}

	_ = l.compiled.Set("__event", event)
	_ = l.compiled.Set("__value", value)
	_ = l.compiled.Set("__current", anim.Current)
	if err := l.compiled.Run(); err != nil {
		log.Printf("parkour: entity=%d animation script %s error: %v", l.e, event, err)
		return
	}

	next := strings.TrimSpace(l.compiled.Get("__result").String())
	if next == "" || next == anim.Current {
		return
	}
	anim.Current = next
	anim.Changes++
}

// LogListener logs every parkour notification.
type LogListener struct {
	Entity ecs.Entity
}

func (l LogListener) CanGrab(canGrab bool) {
	log.Printf("parkour: entity=%d can_grab=%t", l.Entity, canGrab)
}

func (l LogListener) ClimbLedge(isClimbing bool) {
	log.Printf("parkour: entity=%d climb_ledge=%t", l.Entity, isClimbing)
}
