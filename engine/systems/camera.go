package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/containers"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/components"
)

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/** @brief The starting position of new cameras. */
	Position mgl32.Vec3
	/** @brief The point new cameras orbit around. */
	Center mgl32.Vec3
	Up     mgl32.Vec3
	/** @brief Vertical field of view in degrees. */
	Fov          float32
	Near         float32
	Far          float32
	Orthographic bool
	Width        uint32
	Height       uint32
}

type CameraSystem struct {
	Config *CameraSystemConfig
	// orbit controllers, by camera name
	cameras *containers.Registry[string, *components.OrbitCamera]
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.OrbitCamera
}

/**
 * @brief Initializes the camera system and its default camera.
 *
 * @param config The configuration for this system.
 */
func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config == nil || config.Width == 0 || config.Height == 0 {
		err := fmt.Errorf("func NewCameraSystem - viewport size must be > 0: %w", core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	if config.Near <= 0 || config.Far <= config.Near {
		err := fmt.Errorf("func NewCameraSystem - need 0 < near < far, got %v and %v: %w", config.Near, config.Far, core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	if config.Up.Len() == 0 {
		config.Up = mgl32.Vec3{0, 1, 0}
	}
	cs := &CameraSystem{
		Config:  config,
		cameras: containers.NewRegistry[string, *components.OrbitCamera](),
	}
	// Setup default camera.
	cs.DefaultCamera = cs.newOrbitCamera(components.DEFAULT_CAMERA_NAME)
	return cs, nil
}

func (cs *CameraSystem) Shutdown() error {
	cs.cameras.Clear()
	return nil
}

func (cs *CameraSystem) newOrbitCamera(name string) *components.OrbitCamera {
	oc := components.NewOrbitCamera(components.NewCamera(name), cs.Config.Position, cs.Config.Center, cs.Config.Up)
	oc.SetProjection(cs.projection())
	return oc
}

func (cs *CameraSystem) projection() mgl32.Mat4 {
	if cs.Config.Orthographic {
		return components.NewOrthographic(cs.Config.Near, cs.Config.Far)
	}
	aspect := float32(cs.Config.Width) / float32(cs.Config.Height)
	return components.NewPerspective(cs.Config.Fov, aspect, cs.Config.Near, cs.Config.Far)
}

/**
 * @brief Gets a camera by name. If one is not found, a new one is
 * created from the system configuration and returned.
 *
 * @param name The name of the camera to acquire.
 */
func (cs *CameraSystem) Acquire(name string) *components.OrbitCamera {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera
	}
	if oc, ok := cs.cameras.Get(name); ok {
		return oc
	}
	core.LogDebug("Creating new camera named '%s'...", name)
	oc := cs.newOrbitCamera(name)
	cs.cameras.Add(name, oc)
	return oc
}

// Release forgets a named camera. The default camera cannot be released.
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	if _, ok := cs.cameras.Get(name); !ok {
		core.LogWarn("CameraSystemRelease failed lookup for '%s'. Nothing was done.", name)
		return
	}
	cs.cameras.Remove(name)
}

func (cs *CameraSystem) GetDefault() *components.OrbitCamera {
	return cs.DefaultCamera
}

// ToggleProjection switches every camera between perspective and orthographic.
func (cs *CameraSystem) ToggleProjection() {
	cs.Config.Orthographic = !cs.Config.Orthographic
	cs.applyProjection()
}

// OnResize rebuilds every projection for the new aspect ratio.
func (cs *CameraSystem) OnResize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	cs.Config.Width = width
	cs.Config.Height = height
	cs.applyProjection()
}

func (cs *CameraSystem) applyProjection() {
	projection := cs.projection()
	cs.DefaultCamera.SetProjection(projection)
	for _, oc := range cs.cameras.All() {
		oc.SetProjection(projection)
	}
}
