package testbed

import (
	"fmt"

	"github.com/spaghettifunk/tangram/engine"
	"github.com/spaghettifunk/tangram/engine/assets/loaders"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

// seconds between two FPS log lines
const statsInterval = 2.0

// TangramGame plays the scene animations forward and back forever.
type TangramGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32

	// number of completed forward or backward runs
	Flips      uint32
	statsTimer float64
}

func NewTangramGame() *TangramGame {
	tg := &TangramGame{
		Game: &engine.Game{
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnOnReload = tg.OnReload
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TangramGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TangramGame) Initialize() error {
	core.LogDebug("TangramGame Initialize fn....")

	if g.SystemManager == nil || g.AssetManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	desc, err := g.AssetManager.LoadScene(g.ApplicationConfig.Scene)
	if err != nil {
		core.LogError("failed to load scene '%s'", g.ApplicationConfig.Scene)
		return err
	}
	return g.SystemManager.Scene().Load(desc)
}

func (g *TangramGame) Update(deltaTime float64) error {
	state := g.state()
	sc := g.SystemManager.Scene()

	sc.Update(deltaTime)
	if sc.Animations().Len() > 0 && sc.AnimationsDone() {
		sc.ToggleDirection()
		state.Flips++
		core.LogDebug("animations reached the end, rewinding: %v", sc.Rewinding())
	}

	state.statsTimer += deltaTime
	if state.statsTimer >= statsInterval {
		state.statsTimer = 0
		fps, frameTime := core.MetricsFrame()
		core.LogInfo("FPS: %5.1f(%4.1fms) scene '%s' %dx%d", fps, frameTime, sc.Name(), state.width, state.height)
	}
	return nil
}

func (g *TangramGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	return g.SystemManager.Scene().Draw()
}

func (g *TangramGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	return nil
}

// OnReload swaps in the new scene. The running animations restart forward.
func (g *TangramGame) OnReload(desc *loaders.SceneDescription) error {
	sc := g.SystemManager.Scene()
	if err := sc.Load(desc); err != nil {
		return err
	}
	core.LogInfo("scene '%s' reloaded", desc.Name)
	return nil
}

func (g *TangramGame) Shutdown() error {
	core.LogInfo("tangram played %d animation runs", g.state().Flips)
	return nil
}
