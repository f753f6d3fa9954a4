package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/tangram/engine/assets/loaders"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/headless"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `name = "test"

[[shaders]]
name = "default"
uniforms = ["ModelMatrix"]
blocks = [{ name = "Camera", binding = 0 }]

[[meshes]]
name = "tri"
shape = "triangle"

[[nodes]]
name = "root"
mesh = "tri"
shader = "default"

[[animations]]
target = "root"
duration = 0.5
position = [1.0, 0.0, 0.0]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scenes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenes", "test.toml"), []byte(testScene), 0o644))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadApplicationConfigDefaults(t *testing.T) {
	path := writeConfig(t, "scene = \"scenes/test.toml\"\n")

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Tangram", config.Name)
	assert.Equal(t, DEFAULT_LOG_LEVEL, config.LogLevel)
	assert.Equal(t, DEFAULT_TARGET_FPS, config.TargetFPS)
	assert.Equal(t, DEFAULT_WIDTH, config.Width)
	assert.Equal(t, DEFAULT_HEIGHT, config.Height)
	assert.Equal(t, DEFAULT_FOV, config.Camera.Fov)
	assert.Equal(t, DEFAULT_NEAR, config.Camera.Near)
	assert.Equal(t, DEFAULT_FAR, config.Camera.Far)
	assert.Equal(t, []float32{5, 5, 5}, config.Camera.Position)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "scenes", "test.toml"), config.Scene)
	assert.False(t, config.WatchAssets)
	assert.Zero(t, config.MaxFrames)
}

func TestLoadApplicationConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing scene", "name = \"x\"\n"},
		{"bad log level", "scene = \"s.toml\"\nlog_level = \"loud\"\n"},
		{"near after far", "scene = \"s.toml\"\n[camera]\nnear = 10.0\nfar = 1.0\n"},
		{"short vector", "scene = \"s.toml\"\n[camera]\nposition = [1.0, 2.0]\n"},
		{"fov too wide", "scene = \"s.toml\"\n[camera]\nfov = 190.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadApplicationConfig(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, core.ErrInvalidConfig)
		})
	}

	_, err := LoadApplicationConfig(writeConfig(t, "scene = \"s.toml\"\nunknown = 1\n"))
	assert.Error(t, err)
	_, err = LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

type recordingGame struct {
	*Game
	updates  int
	renders  int
	reloads  []string
	resizes  [][2]uint32
	shutdown bool
}

func newRecordingGame() *recordingGame {
	rg := &recordingGame{Game: &Game{}}
	rg.FnInitialize = func() error {
		desc, err := rg.AssetManager.LoadScene(rg.ApplicationConfig.Scene)
		if err != nil {
			return err
		}
		return rg.SystemManager.Scene().Load(desc)
	}
	rg.FnUpdate = func(deltaTime float64) error {
		rg.updates++
		rg.SystemManager.Scene().Update(deltaTime)
		return nil
	}
	rg.FnRender = func(packet *metadata.RenderPacket, deltaTime float64) error {
		rg.renders++
		return rg.SystemManager.Scene().Draw()
	}
	rg.FnOnResize = func(width, height uint32) error {
		rg.resizes = append(rg.resizes, [2]uint32{width, height})
		return nil
	}
	rg.FnOnReload = func(desc *loaders.SceneDescription) error {
		rg.reloads = append(rg.reloads, desc.Name)
		return rg.SystemManager.Scene().Load(desc)
	}
	rg.FnShutdown = func() error {
		rg.shutdown = true
		return nil
	}
	return rg
}

func newTestEngine(t *testing.T, body string) (*Engine, *recordingGame, *headless.HeadlessRenderer) {
	t.Helper()
	config, err := LoadApplicationConfig(writeConfig(t, body))
	require.NoError(t, err)
	rg := newRecordingGame()
	backend := headless.New()
	e, err := New(rg.Game, config, backend)
	require.NoError(t, err)
	assert.Equal(t, EngineStageBootComplete, e.Stage())
	return e, rg, backend
}

func TestRunStopsAfterMaxFrames(t *testing.T) {
	e, rg, backend := newTestEngine(t, "scene = \"scenes/test.toml\"\nmax_frames = 5\n")

	require.NoError(t, e.Initialize())
	assert.Equal(t, EngineStageInitialized, e.Stage())
	assert.Equal(t, [][2]uint32{{DEFAULT_WIDTH, DEFAULT_HEIGHT}}, rg.resizes)

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(5), e.FrameCount())
	assert.Equal(t, 5, rg.updates)
	assert.Equal(t, 5, rg.renders)
	assert.Equal(t, uint64(5), backend.Frames())

	draws := headless.Filter(backend.Commands(), headless.COMMAND_GEOMETRY_DRAW)
	assert.Len(t, draws, 5)

	require.NoError(t, e.Shutdown())
	assert.True(t, rg.shutdown)
	assert.Equal(t, EngineStageShuttingDown, e.Stage())
	assert.ErrorIs(t, e.Shutdown(), ErrWrongStage)
}

func TestRunStopsOnCancel(t *testing.T) {
	e, rg, _ := newTestEngine(t, "scene = \"scenes/test.toml\"\n")
	require.NoError(t, e.Initialize())

	ctx, cancel := context.WithCancel(context.Background())
	rg.FnUpdate = func(deltaTime float64) error {
		rg.updates++
		if rg.updates == 3 {
			cancel()
		}
		return nil
	}

	require.NoError(t, e.Run(ctx))
	assert.Equal(t, uint64(3), e.FrameCount())
	require.NoError(t, e.Shutdown())
}

func TestRunReturnsHookErrors(t *testing.T) {
	e, rg, backend := newTestEngine(t, "scene = \"scenes/test.toml\"\n")
	require.NoError(t, e.Initialize())

	boom := errors.New("boom")
	rg.FnRender = func(packet *metadata.RenderPacket, deltaTime float64) error {
		return boom
	}

	err := e.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	// the failed frame is still closed
	assert.Equal(t, uint64(1), backend.Frames())
	require.NoError(t, e.Shutdown())
}

func TestStageOrderIsEnforced(t *testing.T) {
	e, _, _ := newTestEngine(t, "scene = \"scenes/test.toml\"\n")

	assert.ErrorIs(t, e.Run(context.Background()), ErrWrongStage)
	require.NoError(t, e.Initialize())
	assert.ErrorIs(t, e.Initialize(), ErrWrongStage)
	require.NoError(t, e.Shutdown())
}

func TestNewRequiresArguments(t *testing.T) {
	_, err := New(nil, &ApplicationConfig{}, headless.New())
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	_, err = New(&Game{}, nil, headless.New())
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	_, err = New(&Game{}, &ApplicationConfig{LogLevel: "info"}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestOnResizeSuspendsOnZeroSize(t *testing.T) {
	e, rg, _ := newTestEngine(t, "scene = \"scenes/test.toml\"\n")
	require.NoError(t, e.Initialize())

	e.OnResize(DEFAULT_WIDTH, DEFAULT_HEIGHT)
	assert.Len(t, rg.resizes, 1)

	e.OnResize(0, 0)
	assert.True(t, e.Suspended())
	assert.Len(t, rg.resizes, 1)

	e.OnResize(1024, 768)
	assert.False(t, e.Suspended())
	assert.Equal(t, [2]uint32{1024, 768}, rg.resizes[len(rg.resizes)-1])
	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(1024), w)
	assert.Equal(t, uint32(768), h)
	require.NoError(t, e.Shutdown())
}

func TestSceneReloadsWhenFileChanges(t *testing.T) {
	e, rg, _ := newTestEngine(t, "scene = \"scenes/test.toml\"\nwatch_assets = true\n")
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { _ = e.Shutdown() })

	scenePath := rg.ApplicationConfig.Scene
	updated := []byte(testScene[len(`name = "test"`):])
	updated = append([]byte(`name = "edited"`), updated...)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	written := false
	rg.FnUpdate = func(deltaTime float64) error {
		if !written {
			written = true
			return os.WriteFile(scenePath, updated, 0o644)
		}
		if len(rg.reloads) > 0 {
			cancel()
		}
		return nil
	}

	require.NoError(t, e.Run(ctx))
	require.NotEmpty(t, rg.reloads, "scene was not reloaded before the timeout")
	assert.Equal(t, "edited", rg.reloads[0])
	assert.Equal(t, "edited", rg.SystemManager.Scene().Name())
}

func TestBrokenReloadKeepsScene(t *testing.T) {
	e, rg, _ := newTestEngine(t, "scene = \"scenes/test.toml\"\n")
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { _ = e.Shutdown() })

	require.NoError(t, os.WriteFile(rg.ApplicationConfig.Scene, []byte("[[nodes]]\nname = \"a\"\n[[nodes]]\nname = \"b\"\n"), 0o644))
	e.ReloadScene()

	require.Eventually(t, func() bool {
		return e.systemManager.Jobs().Update() > 0
	}, 5*time.Second, 10*time.Millisecond)

	assert.Empty(t, rg.reloads)
	assert.Equal(t, "test", rg.SystemManager.Scene().Name())
}
