package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/systems"
)

const (
	DEFAULT_TARGET_FPS uint32  = 60
	DEFAULT_WIDTH      uint32  = 640
	DEFAULT_HEIGHT     uint32  = 480
	DEFAULT_FOV        float32 = 30
	DEFAULT_NEAR       float32 = 0.1
	DEFAULT_FAR        float32 = 100
	DEFAULT_LOG_LEVEL          = "info"
)

type CameraConfig struct {
	// Camera starting position. Defaults to (5, 5, 5).
	Position []float32 `toml:"position"`
	// The point the camera orbits around. Defaults to the origin.
	Center []float32 `toml:"center"`
	Up     []float32 `toml:"up"`
	// Vertical field of view in degrees.
	Fov          float32 `toml:"fov"`
	Near         float32 `toml:"near"`
	Far          float32 `toml:"far"`
	Orthographic bool    `toml:"orthographic"`
}

type ApplicationConfig struct {
	// The application name used in logging and by the renderer backend.
	Name      string `toml:"name"`
	LogLevel  string `toml:"log_level"`
	TargetFPS uint32 `toml:"target_fps"`
	// Sleep away the rest of each frame that finishes before 1/TargetFPS.
	LimitFrames bool `toml:"limit_frames"`
	// The engine stops after this many frames. Zero runs until cancelled.
	MaxFrames uint64 `toml:"max_frames"`
	// Path of the scene description, relative to the config file.
	Scene string `toml:"scene"`
	// Reload the scene when its file changes.
	WatchAssets bool `toml:"watch_assets"`
	// Surface starting width.
	Width uint32 `toml:"width"`
	// Surface starting height.
	Height uint32       `toml:"height"`
	Camera CameraConfig `toml:"camera"`
}

// LoadApplicationConfig decodes a TOML application config, fills in the
// defaults and validates it.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config '%s'", path)
	}
	config := &ApplicationConfig{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		return nil, errors.Wrapf(err, "decoding config '%s'", path)
	}
	if config.Scene != "" && !filepath.IsAbs(config.Scene) {
		config.Scene = filepath.Join(filepath.Dir(path), config.Scene)
	}
	config.SetDefaults()
	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config '%s'", path)
	}
	return config, nil
}

// SetDefaults fills every zero field that has a default.
func (c *ApplicationConfig) SetDefaults() {
	if c.Name == "" {
		c.Name = "Tangram"
	}
	if c.LogLevel == "" {
		c.LogLevel = DEFAULT_LOG_LEVEL
	}
	if c.TargetFPS == 0 {
		c.TargetFPS = DEFAULT_TARGET_FPS
	}
	if c.Width == 0 {
		c.Width = DEFAULT_WIDTH
	}
	if c.Height == 0 {
		c.Height = DEFAULT_HEIGHT
	}
	if len(c.Camera.Position) == 0 {
		c.Camera.Position = []float32{5, 5, 5}
	}
	if len(c.Camera.Center) == 0 {
		c.Camera.Center = []float32{0, 0, 0}
	}
	if len(c.Camera.Up) == 0 {
		c.Camera.Up = []float32{0, 1, 0}
	}
	if c.Camera.Fov == 0 {
		c.Camera.Fov = DEFAULT_FOV
	}
	if c.Camera.Near == 0 {
		c.Camera.Near = DEFAULT_NEAR
	}
	if c.Camera.Far == 0 {
		c.Camera.Far = DEFAULT_FAR
	}
}

func (c *ApplicationConfig) Validate() error {
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level '%s': %w", c.LogLevel, core.ErrInvalidConfig)
	}
	if c.Scene == "" {
		return fmt.Errorf("scene is required: %w", core.ErrInvalidConfig)
	}
	for name, v := range map[string][]float32{
		"camera.position": c.Camera.Position,
		"camera.center":   c.Camera.Center,
		"camera.up":       c.Camera.Up,
	} {
		if len(v) != 3 {
			return fmt.Errorf("%s needs 3 components, got %d: %w", name, len(v), core.ErrInvalidConfig)
		}
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %v: %w", c.Camera.Fov, core.ErrInvalidConfig)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera needs 0 < near < far, got %v and %v: %w", c.Camera.Near, c.Camera.Far, core.ErrInvalidConfig)
	}
	return nil
}

// CameraSystemConfig converts the camera section for the camera system.
func (c *ApplicationConfig) CameraSystemConfig() *systems.CameraSystemConfig {
	return &systems.CameraSystemConfig{
		Position:     vec3(c.Camera.Position),
		Center:       vec3(c.Camera.Center),
		Up:           vec3(c.Camera.Up),
		Fov:          c.Camera.Fov,
		Near:         c.Camera.Near,
		Far:          c.Camera.Far,
		Orthographic: c.Camera.Orthographic,
		Width:        c.Width,
		Height:       c.Height,
	}
}

func vec3(v []float32) mgl32.Vec3 {
	if len(v) != 3 {
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}
