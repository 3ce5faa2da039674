package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/parkour/common"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
)

// CameraSystem keeps the top-down camera centred on the player.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity

	screenW float64
	screenH float64
}

func NewCameraSystem(screenW, screenH int) *CameraSystem {
	return &CameraSystem{screenW: float64(screenW), screenH: float64(screenH)}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			cs.camEntity = camEntity
		}
	}
	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		if target, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			cs.targetEntity = target
		}
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	wantX := target.Position.X() - cs.screenW/(2*zoom)
	wantY := target.Position.Y() - cs.screenH/(2*zoom)

	t := 1.0
	if cam.Smoothness > 0 {
		t = mgl64.Clamp(1-cam.Smoothness, 0, 1)
	}
	cam.X = common.Lerp(cam.X, wantX, t)
	cam.Y = common.Lerp(cam.Y, wantY, t)
}
