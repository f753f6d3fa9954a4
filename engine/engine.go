package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/tangram/engine/assets"
	"github.com/spaghettifunk/tangram/engine/assets/loaders"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/platform"
	"github.com/spaghettifunk/tangram/engine/renderer"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
	"github.com/spaghettifunk/tangram/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot_complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting_down"
	}
	return "unknown"
}

var ErrWrongStage = errors.New("engine is not in the expected stage")

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	platform      *platform.Platform
	renderer      *renderer.Renderer
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	clock         *core.Clock
	lastTime      float64
	frameCount    uint64
	// cleaned path compared against the asset manager changes
	scenePath string
}

func New(g *Game, config *ApplicationConfig, backend renderer.RendererBackend) (*Engine, error) {
	if g == nil || config == nil || backend == nil {
		return nil, fmt.Errorf("func New - game, config and backend are required: %w", core.ErrInvalidConfig)
	}
	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		clock:        core.NewClock(),
	}

	level, err := core.ParseLogLevel(config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("func New - log level '%s': %w", config.LogLevel, core.ErrInvalidConfig)
	}
	core.SetLogLevel(level)

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	e.platform = platform.New()
	e.renderer = renderer.New(backend)
	sm, err := systems.NewSystemManager(e.renderer, config.CameraSystemConfig())
	if err != nil {
		core.LogError(err.Error())
		am.Shutdown()
		return nil, err
	}

	e.assetManager = am
	e.systemManager = sm
	e.scenePath = filepath.Clean(config.Scene)

	g.ApplicationConfig = config
	g.SystemManager = sm
	g.AssetManager = am

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("func Initialize - stage is %s: %w", e.currentStage, ErrWrongStage)
	}
	e.currentStage = EngineStageInitializing

	config := e.gameInstance.ApplicationConfig
	if err := e.platform.Startup(config.Name, config.Width, config.Height); err != nil {
		return err
	}
	if err := e.renderer.Initialize(config.Name, config.Width, config.Height); err != nil {
		return err
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// initialize subsystems
	if config.WatchAssets {
		if err := e.assetManager.Initialize(filepath.Dir(e.scenePath)); err != nil {
			return err
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(config.Width, config.Height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop until ctx is done, MaxFrames frames were drawn or
// a game hook fails.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("func Run - stage is %s: %w", e.currentStage, ErrWrongStage)
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true

	config := e.gameInstance.ApplicationConfig

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64 = 1.0 / float64(config.TargetFPS)

	for e.isRunning {
		select {
		case <-ctx.Done():
			core.LogInfo("stop requested, shutting down.")
			e.isRunning = false
			continue
		default:
		}

		e.processAssetChanges()
		e.systemManager.Jobs().Update()

		if e.isSuspended {
			platform.Sleep(targetFrameSeconds * 1000)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()

		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)
		var frameStartTime float64 = platform.GetAbsoluteTime()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down.")
				e.isRunning = false
				return fmt.Errorf("game update: %w", err)
			}
		}

		packet := &metadata.RenderPacket{
			DeltaTime: delta,
			Frame:     e.frameCount,
		}
		if err := e.renderer.DrawFrame(packet, func() error {
			if e.gameInstance.FnRender == nil {
				return nil
			}
			return e.gameInstance.FnRender(packet, delta)
		}); err != nil {
			core.LogError("Game render failed, shutting down.")
			e.isRunning = false
			return fmt.Errorf("game render: %w", err)
		}

		// Figure out how long the frame took and, if below the target, give
		// the time back to the OS.
		var frameEndTime float64 = platform.GetAbsoluteTime()
		var frameElapsedTime float64 = frameEndTime - frameStartTime
		var remainingSeconds float64 = targetFrameSeconds - frameElapsedTime
		if remainingSeconds > 0 && config.LimitFrames {
			platform.Sleep(remainingSeconds*1000 - 1)
		}

		core.MetricsUpdate(delta)

		e.frameCount++
		if config.MaxFrames > 0 && e.frameCount >= config.MaxFrames {
			core.LogInfo("reached %d frames, shutting down.", e.frameCount)
			e.isRunning = false
		}

		// Update last time
		e.lastTime = currentTime
	}

	return nil
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return fmt.Errorf("func Shutdown - stage is %s: %w", e.currentStage, ErrWrongStage)
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if err := e.assetManager.Shutdown(); err != nil && !errors.Is(err, assets.ErrClosed) {
		errs = append(errs, err)
	}
	errs = append(errs, e.systemManager.Shutdown())
	errs = append(errs, e.renderer.Shutdown())
	errs = append(errs, e.platform.Shutdown())
	return errors.Join(errs...)
}

// OnResize forwards a new surface size. A zero dimension suspends the frame
// loop until a non-zero size arrives.
func (e *Engine) OnResize(width, height uint32) {
	if !e.platform.Resize(width, height) {
		return
	}
	core.LogDebug("Surface resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Surface minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Surface restored, resuming application.")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	e.systemManager.Cameras().OnResize(width, height)
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// FrameCount returns the number of frames drawn by Run.
func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

func (e *Engine) Suspended() bool {
	return e.isSuspended
}

// GetFramebufferSize returns the width and height (in this order) of the surface.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.platform.Width, e.platform.Height
}

// processAssetChanges drains the pending file changes and queues one reload
// when the scene description is among them.
func (e *Engine) processAssetChanges() {
	reload := false
	for draining := true; draining; {
		select {
		case path, ok := <-e.assetManager.Changes():
			if !ok {
				draining = false
				continue
			}
			if path == e.scenePath {
				reload = true
			}
		default:
			draining = false
		}
	}
	if reload {
		e.ReloadScene()
	}
}

// ReloadScene decodes the scene description on a worker. The game receives
// it through FnOnReload on the next frame.
func (e *Engine) ReloadScene() {
	core.LogInfo("reloading scene '%s'", e.scenePath)
	err := e.systemManager.Jobs().Submit(metadata.JobInfo{
		JobType:   metadata.JOB_TYPE_RESOURCE_LOAD,
		ParamData: e.scenePath,
		EntryPoint: func(params interface{}) (interface{}, error) {
			return e.assetManager.LoadScene(params.(string))
		},
		OnSuccess: func(result interface{}) {
			if e.gameInstance.FnOnReload == nil {
				return
			}
			if err := e.gameInstance.FnOnReload(result.(*loaders.SceneDescription)); err != nil {
				core.LogError("scene reload rejected, keeping the current scene: %s", err)
			}
		},
		OnFail: func(err error) {
			core.LogWarn("scene reload failed, keeping the current scene: %s", err)
		},
	})
	if err != nil {
		core.LogError(err.Error())
	}
}
