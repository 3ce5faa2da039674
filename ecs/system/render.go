package system

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
	"golang.org/x/image/colornames"
)

const facingLineLength = 60

// RenderSystem draws the level and characters from above. Boxes are drawn
// lowest first so ledges sit on top of the floor.
type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	view := viewOf(w, r.camEntity)

	screen.Fill(colornames.Midnightblue)

	boxes := w.Query(component.StaticBoxComponent.Kind())
	sort.SliceStable(boxes, func(i, j int) bool {
		a, _ := ecs.Get(w, boxes[i], component.StaticBoxComponent.Kind())
		b, _ := ecs.Get(w, boxes[j], component.StaticBoxComponent.Kind())
		if a.Max.Z() != b.Max.Z() {
			return a.Max.Z() < b.Max.Z()
		}
		return uint64(boxes[i]) < uint64(boxes[j])
	})
	for _, e := range boxes {
		box, ok := ecs.Get(w, e, component.StaticBoxComponent.Kind())
		if !ok {
			continue
		}
		x, y := view.toScreen(box.Min)
		wdt := (box.Max.X() - box.Min.X()) * view.zoom
		hgt := (box.Max.Y() - box.Min.Y()) * view.zoom
		fill := boxColor(box)
		vector.FillRect(screen, float32(x), float32(y), float32(wdt), float32(hgt), fill, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(wdt), float32(hgt), 1.0, colornames.Black, false)
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.CharacterMovementComponent.Kind(), func(e ecs.Entity, t *component.Transform, mv *component.CharacterMovement) {
		cx, cy := view.toScreen(t.Position)
		radius := mv.CapsuleRadius * view.zoom
		if radius <= 0 {
			radius = 8
		}
		clr := stateColor(w, e)
		vector.FillCircle(screen, float32(cx), float32(cy), float32(radius), clr, true)
		tip := t.Position.Add(t.Rotation.YawOnly().Forward().Mul(facingLineLength))
		tx, ty := view.toScreen(tip)
		vector.StrokeLine(screen, float32(cx), float32(cy), float32(tx), float32(ty), 2, colornames.White, true)
	})
}

func boxColor(box *component.StaticBox) color.Color {
	base, ok := colornames.Map[box.Color]
	if !ok {
		base = colornames.Slategray
	}
	if box.Overlap {
		return color.NRGBA{R: base.R, G: base.G, B: base.B, A: 96}
	}
	return base
}

func stateColor(w *ecs.World, e ecs.Entity) color.Color {
	climber, ok := ecs.Get(w, e, component.LedgeClimberComponent.Kind())
	if !ok {
		return colornames.Crimson
	}
	switch climber.State {
	case component.LedgeHanging:
		return colornames.Gold
	case component.LedgeClimbing:
		return colornames.Deepskyblue
	default:
		return colornames.Crimson
	}
}

type cameraView struct {
	x, y float64
	zoom float64
}

func viewOf(w *ecs.World, camEntity ecs.Entity) cameraView {
	view := cameraView{zoom: 1}
	cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if !ok {
		return view
	}
	view.x = cam.X
	view.y = cam.Y
	if cam.Zoom > 0 {
		view.zoom = cam.Zoom
	}
	return view
}

func (v cameraView) toScreen(p mgl64.Vec3) (float64, float64) {
	return (p.X() - v.x) * v.zoom, (p.Y() - v.y) * v.zoom
}
