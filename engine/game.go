package engine

import (
	"github.com/spaghettifunk/tangram/engine/assets"
	"github.com/spaghettifunk/tangram/engine/assets/loaders"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
	"github.com/spaghettifunk/tangram/engine/systems"
)

// Game is filled by the application. The engine sets ApplicationConfig,
// SystemManager and AssetManager in New; every hook is optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	AssetManager      *assets.AssetManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnOnReload        OnReload
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error

// Render runs between the renderer's BeginFrame and EndFrame.
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error

// OnReload receives a scene description decoded after its file changed.
type OnReload func(desc *loaders.SceneDescription) error
type Shutdown func() error
