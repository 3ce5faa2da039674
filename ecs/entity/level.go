package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
	"github.com/milk9111/parkour/levels"
	"github.com/milk9111/parkour/physics"
)

// LoadLevelToWorld creates one entity per level box and registers its
// collider under the entity id.
func LoadLevelToWorld(world *ecs.World, phys *physics.World, lvl *levels.Level) error {
	if world == nil || phys == nil || lvl == nil {
		return fmt.Errorf("level: world, physics and level are required")
	}
	for i, b := range lvl.Boxes {
		e := world.CreateEntity()
		box := &component.StaticBox{
			Min:     mgl64.Vec3(b.Min),
			Max:     mgl64.Vec3(b.Max),
			Overlap: b.Overlap,
			Color:   b.Color,
		}
		if err := ecs.Add(world, e, component.StaticBoxComponent.Kind(), box); err != nil {
			return fmt.Errorf("level: box %d (%s): %w", i, b.Name, err)
		}
		response := physics.ResponseBlock
		if b.Overlap {
			response = physics.ResponseOverlap
		}
		registered := phys.AddBox(uint64(e), box.Min, box.Max, response)
		// keep the component in sync with the normalised corners
		box.Min, box.Max = registered.Min, registered.Max
	}
	return nil
}

// ClearLevel removes every level box from both worlds.
func ClearLevel(world *ecs.World, phys *physics.World) {
	for _, e := range world.Query(component.StaticBoxComponent.Kind()) {
		ecs.DestroyEntity(world, e)
	}
	phys.Clear()
}
