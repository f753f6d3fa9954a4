package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer"
	"github.com/spaghettifunk/tangram/engine/renderer/components"
	"github.com/spaghettifunk/tangram/engine/renderer/headless"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func defaultCameraConfig() *CameraSystemConfig {
	return &CameraSystemConfig{
		Position: mgl32.Vec3{0, 0, 10},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      30,
		Near:     0.1,
		Far:      100,
		Width:    640,
		Height:   480,
	}
}

func newTestSystems(t *testing.T) (*SystemManager, *renderer.Renderer, *headless.HeadlessRenderer) {
	t.Helper()
	backend := headless.New()
	r := renderer.New(backend)
	require.NoError(t, r.Initialize("test", 640, 480))
	sm, err := NewSystemManager(r, defaultCameraConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sm.Shutdown() })
	return sm, r, backend
}

func TestGenerateShapeConfig(t *testing.T) {
	tests := []struct {
		shape    Shape
		size     mgl32.Vec3
		vertices int
		indices  int
		topology metadata.PrimitiveTopology
		min, max mgl32.Vec3
	}{
		{SHAPE_TRIANGLE, mgl32.Vec3{2, 3, 0}, 3, 3, metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_LIST, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 3, 0}},
		{SHAPE_SQUARE, mgl32.Vec3{1, 1, 1}, 4, 4, metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_STRIP, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 0}},
		{SHAPE_PARALLELOGRAM, mgl32.Vec3{1, 0.5, 1}, 4, 4, metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_STRIP, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 0}},
		{SHAPE_CUBE, mgl32.Vec3{2, 0.1, 2}, 24, 36, metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_LIST, mgl32.Vec3{-1, -0.05, -1}, mgl32.Vec3{1, 0.05, 1}},
		// zero components default to one
		{SHAPE_CUBE, mgl32.Vec3{0, 0, 0}, 24, 36, metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_LIST, mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}},
	}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			config, err := GenerateShapeConfig(tt.shape, tt.size, "piece")
			require.NoError(t, err)
			assert.Equal(t, "piece", config.Name)
			assert.Len(t, config.Vertices, tt.vertices)
			assert.Len(t, config.Indices, tt.indices)
			assert.Equal(t, tt.topology, config.Topology)
			assert.True(t, tt.min.ApproxEqualThreshold(config.MinExtents, tolerance), "min %v", config.MinExtents)
			assert.True(t, tt.max.ApproxEqualThreshold(config.MaxExtents, tolerance), "max %v", config.MaxExtents)
			for _, idx := range config.Indices {
				assert.Less(t, int(idx), len(config.Vertices))
			}
		})
	}

	_, err := GenerateShapeConfig("hexagon", mgl32.Vec3{1, 1, 1}, "")
	assert.ErrorIs(t, err, core.ErrUnknownShape)

	config := GenerateTriangleConfig(1, 1, "")
	assert.Equal(t, metadata.DefaultGeometryName, config.Name)
}

func TestCubeNormalsPointOutwards(t *testing.T) {
	config := GenerateCubeConfig(1, 1, 1, "cube")
	for _, v := range config.Vertices {
		assert.Greater(t, v.Position.Dot(v.Normal), float32(0))
	}
}

func TestMeshSystemFirstMatchWins(t *testing.T) {
	sm, _, backend := newTestSystems(t)
	ms := sm.Meshes()

	first, err := ms.CreateShape("piece", SHAPE_TRIANGLE, mgl32.Vec3{1, 1, 1})
	require.NoError(t, err)
	_, err = ms.CreateShape("piece", SHAPE_SQUARE, mgl32.Vec3{1, 1, 1})
	require.NoError(t, err)

	got, ok := ms.Get("piece")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 2, ms.Len())
	_, ok = ms.Get("missing")
	assert.False(t, ok)

	_, err = ms.CreateShape("bad", "circle", mgl32.Vec3{1, 1, 1})
	assert.ErrorIs(t, err, core.ErrUnknownShape)

	require.NoError(t, ms.Shutdown())
	assert.Equal(t, 0, ms.Len())
	assert.Len(t, headless.Filter(backend.Commands(), headless.COMMAND_GEOMETRY_DESTROY), 2)
}

func TestMeshSystemRollsBackPartialUploads(t *testing.T) {
	sm, _, backend := newTestSystems(t)

	good := GenerateSquareConfig(1, 1, "good")
	bad := &metadata.GeometryConfig{Name: "bad"}
	_, err := sm.Meshes().CreateFromConfigs("mixed", good, bad)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	assert.Equal(t, 0, sm.Meshes().Len())
	assert.Equal(t, []string{"geometry_create good", "geometry_destroy good"}, headless.Strings(backend.Commands()))
}

func TestShaderSystem(t *testing.T) {
	sm, _, _ := newTestSystems(t)
	ss := sm.Shaders()

	sp, err := ss.CreateShader(&metadata.ShaderConfig{Name: "default", Uniforms: []string{"ModelMatrix"}})
	require.NoError(t, err)

	_, err = ss.CreateShader(&metadata.ShaderConfig{Name: "default"})
	assert.ErrorIs(t, err, core.ErrDuplicateName)

	got, err := ss.GetShader("default")
	require.NoError(t, err)
	assert.Same(t, sp, got)

	_, err = ss.GetShader("other")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, ss.Shutdown())
	assert.Equal(t, metadata.SHADER_STATE_DESTROYED, sp.Shader().State)
	assert.Equal(t, 0, ss.Len())
}

func TestCameraSystem(t *testing.T) {
	_, err := NewCameraSystem(&CameraSystemConfig{Width: 1, Height: 1, Near: 1, Far: 0.5})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	_, err = NewCameraSystem(&CameraSystemConfig{Near: 0.1, Far: 1})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	cs, err := NewCameraSystem(defaultCameraConfig())
	require.NoError(t, err)

	def := cs.GetDefault()
	assert.Same(t, def, cs.Acquire(components.DEFAULT_CAMERA_NAME))
	assert.True(t, mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}).ApproxEqualThreshold(def.View(), tolerance))
	assert.True(t, components.NewPerspective(30, 640.0/480.0, 0.1, 100).ApproxEqualThreshold(def.Projection(), tolerance))

	side := cs.Acquire("side")
	assert.Same(t, side, cs.Acquire("side"))
	assert.NotSame(t, def, side)

	cs.ToggleProjection()
	assert.Equal(t, components.NewOrthographic(0.1, 100), def.Projection())
	assert.Equal(t, components.NewOrthographic(0.1, 100), side.Projection())

	cs.ToggleProjection()
	cs.OnResize(100, 100)
	assert.True(t, components.NewPerspective(30, 1, 0.1, 100).ApproxEqualThreshold(side.Projection(), tolerance))

	cs.Release("side")
	assert.NotSame(t, side, cs.Acquire("side"))
	cs.Release(components.DEFAULT_CAMERA_NAME)
	assert.Same(t, def, cs.GetDefault())
}
