package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/parkour/ecs"
	"github.com/milk9111/parkour/ecs/component"
	"github.com/milk9111/parkour/ecs/entity"
	"github.com/milk9111/parkour/ecs/system"
	"github.com/milk9111/parkour/levels"
	"github.com/milk9111/parkour/physics"
	"github.com/milk9111/parkour/prefabs"
)

type Game struct {
	cfg   Config
	debug bool

	world *ecs.World
	phys  *physics.World
	level *levels.Level

	ledge    *system.LedgeSystem
	camera   *system.CameraSystem
	render   *system.RenderSystem
	watcher  *prefabs.Watcher
	player   ecs.Entity
	cameraID ecs.Entity
}

func NewGame(cfg Config) (*Game, error) {
	g := &Game{
		cfg:   cfg,
		debug: cfg.Debug,
		world: ecs.NewWorld(),
		phys:  physics.NewWorld(),
	}
	g.world.SetDeltaSeconds(1 / float64(cfg.TPS))
	g.phys.SetDebug(cfg.Verbose)

	g.ledge = system.NewLedgeSystem(g.phys)
	g.ledge.SetVerbose(cfg.Verbose)
	g.camera = system.NewCameraSystem(cfg.Width, cfg.Height)
	g.render = system.NewRenderSystem()

	g.world.AddSystem(system.NewInputSystem(system.KeyboardSource{}))
	g.world.AddSystem(system.NewTimerSystem())
	g.world.AddSystem(system.NewCharacterControllerSystem())
	g.world.AddSystem(g.ledge)
	g.world.AddSystem(system.NewMovementSystem(g.phys))
	g.world.AddSystem(system.NewTransformMoveSystem())
	g.world.AddSystem(g.camera)
	g.world.AddSystem(system.NewProbeDebugSystem())

	if err := g.loadLevel(cfg.Level); err != nil {
		return nil, err
	}
	if err := g.spawn(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		watcher, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("game: prefab hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func (g *Game) loadLevel(name string) error {
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	lvl, err := levels.LoadLevel(name)
	if err != nil {
		return fmt.Errorf("game: load level %s: %w", name, err)
	}
	entity.ClearLevel(g.world, g.phys)
	if err := entity.LoadLevelToWorld(g.world, g.phys, lvl); err != nil {
		return fmt.Errorf("game: build level %s: %w", name, err)
	}
	g.level = lvl
	log.Printf("game: loaded level %q with %d boxes", lvl.Name, len(lvl.Boxes))
	return nil
}

func (g *Game) spawn() error {
	player, err := entity.NewPlayerAt(g.world, g.level.Spawn)
	if err != nil {
		return fmt.Errorf("game: spawn player: %w", err)
	}
	g.player = player
	g.setDebugDraw(g.debug)
	return g.ensureCamera()
}

func (g *Game) ensureCamera() error {
	if g.cameraID.Valid() && g.world.IsAlive(g.cameraID) {
		return nil
	}
	cam, err := entity.NewCamera(g.world)
	if err != nil {
		return fmt.Errorf("game: spawn camera: %w", err)
	}
	g.cameraID = cam
	return nil
}

// respawn rebuilds the player from its prefab. keep carries the current
// placement over, which is what a prefab reload wants.
func (g *Game) respawn(keep bool) error {
	player, err := entity.RebuildPlayer(g.world, g.player, g.level.Spawn, keep)
	if err != nil {
		return fmt.Errorf("game: respawn player: %w", err)
	}
	g.player = player
	g.setDebugDraw(g.debug)
	return g.ensureCamera()
}

func (g *Game) setDebugDraw(on bool) {
	g.debug = on
	ecs.ForEach(g.world, component.LedgeClimberComponent.Kind(), func(e ecs.Entity, climber *component.LedgeClimber) {
		climber.Tuning.DebugDraw = on
	})
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: prefab changed: %s", name)
			changed = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("game: prefab watcher: %v", err)
			}
		default:
			if changed {
				if err := g.respawn(true); err != nil {
					log.Printf("game: reload prefabs: %v", err)
				}
			}
			return
		}
	}
}

func (g *Game) handleDebugKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.setDebugDraw(!g.debug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.respawn(false); err != nil {
			log.Printf("game: respawn: %v", err)
		}
	}
	// Stand-ins for the animation events that start and end a climb.
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ledge.ClimbLedge(g.world, g.player, true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.ledge.FinishClimb(g.world, g.player)
	}
}

func (g *Game) Update() error {
	g.drainReloads()
	g.handleDebugKeys()
	g.world.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.debug {
		system.DrawPhysicsDebug(g.phys.Space(), g.world, screen)
		system.DrawProbeDebug(g.world, screen)
		system.DrawLedgeStateDebug(g.world, screen)
	}

	anim := "none"
	if state, ok := ecs.Get(g.world, g.player, component.AnimationStateComponent.Kind()); ok {
		anim = state.Current
	}
	status := []string{
		fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		"Animation: " + anim,
		"WASD move  Space jump  S let go  C/F climb  F1 debug  R respawn",
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(status, "\n"), 10, g.cfg.Height-60)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
