package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/headless"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
	"github.com/spaghettifunk/tangram/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compile-time checks against the scene graph interfaces
var (
	_ scene.ShaderProgram = (*ShaderProgram)(nil)
	_ scene.Mesh          = (*Mesh)(nil)
	_ RendererBackend     = (*headless.HeadlessRenderer)(nil)
)

func newTestRenderer(t *testing.T) (*Renderer, *headless.HeadlessRenderer) {
	t.Helper()
	backend := headless.New()
	r := New(backend)
	require.NoError(t, r.Initialize("test", 640, 480))
	return r, backend
}

func triangleConfig() *metadata.GeometryConfig {
	config := &metadata.GeometryConfig{
		Name: "triangle",
		Vertices: []metadata.Vertex3D{
			{Position: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{1, 0, 0}},
			{Position: mgl32.Vec3{0, 1, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
	config.ComputeExtents()
	return config
}

func TestCreateShaderResolvesUniformLocations(t *testing.T) {
	r, _ := newTestRenderer(t)

	sp, err := r.CreateShader(&metadata.ShaderConfig{
		Name:     "default",
		Uniforms: []string{scene.ModelMatrixUniform, metadata.ColourUniformName, scene.ModelMatrixUniform},
		Blocks:   []metadata.UniformBlockConfig{{Name: metadata.CameraBlockName, Binding: 0}},
	})
	require.NoError(t, err)

	assert.Equal(t, "default", sp.ID())
	assert.Equal(t, metadata.SHADER_STATE_INITIALIZED, sp.Shader().State)
	assert.Equal(t, int32(0), sp.UniformLocation(scene.ModelMatrixUniform))
	assert.Equal(t, int32(1), sp.UniformLocation(metadata.ColourUniformName))
	assert.Equal(t, int32(-1), sp.UniformLocation("missing"))
}

func TestCreateShaderRequiresName(t *testing.T) {
	r, _ := newTestRenderer(t)

	_, err := r.CreateShader(&metadata.ShaderConfig{})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	_, err = r.CreateShader(nil)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestUniformWritesToInvalidLocationAreIgnored(t *testing.T) {
	r, backend := newTestRenderer(t)
	sp, err := r.CreateShader(&metadata.ShaderConfig{Name: "s", Uniforms: []string{scene.ModelMatrixUniform}})
	require.NoError(t, err)
	backend.Reset()

	sp.Bind()
	sp.UniformMatrix4(sp.UniformLocation("nope"), mgl32.Ident4())
	sp.UniformMatrix4(sp.UniformLocation(scene.ModelMatrixUniform), mgl32.Translate3D(1, 2, 3))
	sp.Unbind()

	cmds := backend.Commands()
	assert.Equal(t, []string{"shader_use s", "uniform_matrix4 ModelMatrix", "shader_release s"}, headless.Strings(cmds))
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), cmds[1].Matrices[0])
}

func TestCreateGeometryValidatesConfig(t *testing.T) {
	r, _ := newTestRenderer(t)

	_, err := r.CreateGeometry(&metadata.GeometryConfig{Name: "empty"})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	bad := triangleConfig()
	bad.Indices = append(bad.Indices, 7)
	_, err = r.CreateGeometry(bad)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	g, err := r.CreateGeometry(triangleConfig())
	require.NoError(t, err)
	assert.Equal(t, uint32(3), g.IndexCount)
	assert.Equal(t, uint32(3), g.VertexCount)
	assert.NotEmpty(t, g.InternalID)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0}, g.Center)
	assert.Equal(t, metadata.Extents3D{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 0}}, g.Extents)
}

func TestMeshDrawsEveryGeometry(t *testing.T) {
	r, backend := newTestRenderer(t)
	first, err := r.CreateGeometry(triangleConfig())
	require.NoError(t, err)
	secondConfig := triangleConfig()
	secondConfig.Name = "second"
	second, err := r.CreateGeometry(secondConfig)
	require.NoError(t, err)

	mesh := NewMesh(r, "pair", first, second)
	assert.Equal(t, "pair", mesh.ID())

	backend.Reset()
	mesh.Draw()
	assert.Equal(t, []string{"geometry_draw triangle", "geometry_draw second"}, headless.Strings(backend.Commands()))

	backend.Reset()
	mesh.Destroy()
	assert.Equal(t, []string{"geometry_destroy triangle", "geometry_destroy second"}, headless.Strings(backend.Commands()))
	assert.Empty(t, mesh.Geometries())
}

func TestDrawFrameWithSceneGraph(t *testing.T) {
	r, backend := newTestRenderer(t)
	sp, err := r.CreateShader(&metadata.ShaderConfig{
		Name:     "default",
		Uniforms: []string{scene.ModelMatrixUniform},
		Blocks:   []metadata.UniformBlockConfig{{Name: metadata.CameraBlockName, Binding: 2}},
	})
	require.NoError(t, err)
	g, err := r.CreateGeometry(triangleConfig())
	require.NoError(t, err)
	mesh := NewMesh(r, "triangle", g)

	root := scene.NewNode("root", nil, sp)
	child := scene.NewNode("child", mesh, nil)
	child.SetPosition(mgl32.Vec3{1, 0, 0})
	require.NoError(t, root.AddChild(child))

	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	projection := mgl32.Perspective(mgl32.DegToRad(30), 4.0/3.0, 0.1, 100)

	backend.Reset()
	err = r.DrawFrame(&metadata.RenderPacket{DeltaTime: 0.016}, func() error {
		sp.Bind()
		defer sp.Unbind()
		if err := r.SetCamera(sp, view, projection); err != nil {
			return err
		}
		root.DrawSceneGraph(mgl32.Ident4())
		return nil
	})
	require.NoError(t, err)

	cmds := backend.Commands()
	assert.Equal(t, []string{
		"begin_frame",
		"shader_use default",
		"uniform_block Camera",
		"uniform_matrix4 ModelMatrix",
		"geometry_draw triangle",
		"shader_release default",
		"end_frame",
	}, headless.Strings(cmds))
	assert.Equal(t, int32(2), cmds[2].Location)
	assert.Equal(t, []mgl32.Mat4{view, projection}, cmds[2].Matrices)
	assert.Equal(t, mgl32.Translate3D(1, 0, 0), cmds[3].Matrices[0])
	assert.Equal(t, uint64(1), r.FrameCount())
}

func TestDrawFrameClosesFrameOnError(t *testing.T) {
	r, backend := newTestRenderer(t)

	err := r.DrawFrame(&metadata.RenderPacket{}, func() error { return core.ErrUnknown })
	assert.ErrorIs(t, err, core.ErrUnknown)

	// a new frame can start, so the failed one was closed
	require.NoError(t, r.DrawFrame(&metadata.RenderPacket{}, nil))
	assert.Equal(t, uint64(2), backend.Frames())
}

func TestDestroyShader(t *testing.T) {
	r, backend := newTestRenderer(t)
	sp, err := r.CreateShader(&metadata.ShaderConfig{Name: "gone"})
	require.NoError(t, err)

	r.DestroyShader(sp)
	r.DestroyShader(sp)

	assert.Equal(t, metadata.SHADER_STATE_DESTROYED, sp.Shader().State)
	assert.Len(t, headless.Filter(backend.Commands(), headless.COMMAND_SHADER_DESTROY), 1)
}
