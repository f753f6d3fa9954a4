package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/assets/loaders"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/math"
	"github.com/spaghettifunk/tangram/engine/renderer/headless"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
	"github.com/spaghettifunk/tangram/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tangramDescription() *loaders.SceneDescription {
	return &loaders.SceneDescription{
		Name: "tangram",
		Shaders: []metadata.ShaderConfig{
			{
				Name:     "default",
				Uniforms: []string{scene.ModelMatrixUniform, metadata.ColourUniformName},
				Blocks:   []metadata.UniformBlockConfig{{Name: metadata.CameraBlockName, Binding: 0}},
			},
			{
				Name:     "highlight",
				Uniforms: []string{scene.ModelMatrixUniform},
			},
		},
		Meshes: []loaders.MeshDescription{
			{Name: "Table.obj", Shape: "cube", Size: []float32{2, 0.1, 2}},
			{Name: "tri", Shape: "triangle"},
			{Name: "square", Shape: "square"},
		},
		Nodes: []loaders.NodeDescription{
			{Name: "table", Mesh: "Table.obj", Shader: "default"},
			{Name: "pieces", Parent: "table", Position: []float32{0, 0.1, 0}},
			{Name: "big", Parent: "pieces", Mesh: "tri"},
			{Name: "box", Parent: "pieces", Mesh: "square", Shader: "highlight", Scale: []float32{2, 2, 2}},
			{Name: "small", Parent: "pieces", Mesh: "tri", Rotation: &loaders.RotationDescription{Axis: []float32{0, 0, 1}, Angle: 90}},
		},
		Animations: []loaders.AnimationDescription{
			{Target: "big", Duration: 1, Position: []float32{1, 0, 0}},
			{Target: "box", Duration: 2, Rotation: &loaders.RotationDescription{Axis: []float32{0, 1, 0}, Angle: 180}},
		},
	}
}

func TestSceneSystemLoadBuildsTree(t *testing.T) {
	sm, _, _ := newTestSystems(t)
	s := sm.Scene()

	require.NoError(t, s.Load(tangramDescription()))

	assert.Equal(t, "tangram", s.Name())
	root := s.Root()
	require.NotNil(t, root)
	assert.Equal(t, "table", root.Name())

	pieces, ok := s.Node("pieces")
	require.True(t, ok)
	assert.Same(t, root, pieces.Parent())
	var names []string
	for _, c := range pieces.Children() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"big", "box", "small"}, names)

	big, _ := s.Node("big")
	defaultProgram, err := sm.Shaders().GetShader("default")
	require.NoError(t, err)
	assert.Same(t, defaultProgram, big.GetShaderProgram())

	box, _ := s.Node("box")
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, box.Scale())

	small, _ := s.Node("small")
	assert.True(t, math.QuatEqual(mgl32.QuatRotate(math.DegToRad(90), mgl32.Vec3{0, 0, 1}), small.Orientation(), tolerance))

	assert.Equal(t, 2, s.Animations().Len())
	assert.Equal(t, 3, sm.Meshes().Len())
	assert.Equal(t, 2, sm.Shaders().Len())
}

func TestSceneSystemDrawSwitchesPrograms(t *testing.T) {
	sm, r, backend := newTestSystems(t)
	s := sm.Scene()
	require.NoError(t, s.Load(tangramDescription()))
	backend.Reset()

	require.NoError(t, r.BeginFrame(0))
	require.NoError(t, s.Draw())
	require.NoError(t, r.EndFrame(0))

	assert.Equal(t, []string{
		"begin_frame",
		"shader_use default",
		"uniform_block Camera",
		"uniform_matrix4 ModelMatrix", "geometry_draw Table.obj",
		"uniform_matrix4 ModelMatrix", "geometry_draw tri",
		"shader_release default",
		"shader_use highlight",
		"uniform_matrix4 ModelMatrix", "geometry_draw square",
		"shader_release highlight",
		"shader_use default",
		"uniform_block Camera",
		"uniform_matrix4 ModelMatrix", "geometry_draw tri",
		"shader_release default",
		"end_frame",
	}, headless.Strings(backend.Commands()))

	big, _ := s.Node("big")
	assert.True(t, mgl32.Translate3D(0, 0.1, 0).ApproxEqualThreshold(big.WorldTransform(), tolerance))
}

func TestSceneSystemAnimationsFollowDirection(t *testing.T) {
	sm, _, _ := newTestSystems(t)
	s := sm.Scene()
	require.NoError(t, s.Load(tangramDescription()))

	big, _ := s.Node("big")
	box, _ := s.Node("box")

	s.Update(0.5)
	assert.True(t, big.Translation().ApproxEqualThreshold(mgl32.Vec3{0.5, 0, 0}, tolerance))
	assert.False(t, s.AnimationsDone())

	s.Update(5)
	assert.True(t, s.AnimationsDone())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, big.Translation())
	assert.True(t, math.QuatEqual(mgl32.QuatRotate(math.DegToRad(180), mgl32.Vec3{0, 1, 0}), box.Orientation(), tolerance))

	s.ToggleDirection()
	assert.True(t, s.Rewinding())
	assert.False(t, s.AnimationsDone())
	s.Update(5)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, big.Translation())
	assert.True(t, math.QuatEqual(mgl32.QuatIdent(), box.Orientation(), tolerance))
	assert.True(t, s.AnimationsDone())
}

func TestSceneSystemLoadFailureKeepsCurrentScene(t *testing.T) {
	sm, _, _ := newTestSystems(t)
	s := sm.Scene()
	require.NoError(t, s.Load(tangramDescription()))

	broken := tangramDescription()
	broken.Meshes[1].Shape = "hexagon"
	assert.ErrorIs(t, s.Load(broken), core.ErrUnknownShape)
	assert.Equal(t, "tangram", s.Name())

	broken = tangramDescription()
	broken.Nodes[2].Parent = "nowhere"
	assert.ErrorIs(t, s.Load(broken), core.ErrNotFound)
	assert.NotNil(t, s.Root())

	assert.ErrorIs(t, s.Load(nil), core.ErrInvalidConfig)
}

func TestSceneSystemReloadReplacesResources(t *testing.T) {
	sm, _, _ := newTestSystems(t)
	s := sm.Scene()
	require.NoError(t, s.Load(tangramDescription()))
	oldRoot := s.Root()

	require.NoError(t, s.Load(tangramDescription()))
	assert.NotSame(t, oldRoot, s.Root())
	assert.Equal(t, 3, sm.Meshes().Len())
	assert.Equal(t, 2, sm.Shaders().Len())

	s.Unload()
	assert.Nil(t, s.Root())
	assert.NoError(t, s.Draw())
	_, ok := s.Node("table")
	assert.False(t, ok)
}
