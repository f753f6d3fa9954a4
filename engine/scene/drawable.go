package scene

import "github.com/go-gl/mathgl/mgl32"

// ModelMatrixUniform is the uniform every drawn node writes its world
// transform to, right before its mesh is drawn.
const ModelMatrixUniform = "ModelMatrix"

// Drawable is anything that can issue draw calls once a shader program
// has been bound and its per-object uniforms uploaded.
type Drawable interface {
	Draw()
}

// Mesh is shared, read-only geometry owned by a mesh registry. Nodes only
// reference meshes; they never release them.
type Mesh interface {
	Drawable
	// ID returns the key the mesh is registered under.
	ID() string
}

// ShaderProgram is the minimal view the scene graph needs of a linked
// program. Programs are owned by the application and may be shared by any
// number of nodes.
type ShaderProgram interface {
	Bind()
	Unbind()
	// UniformLocation resolves a uniform by name, returning -1 when the
	// program has no such uniform.
	UniformLocation(name string) int32
	// UniformMatrix4 uploads a 4x4 matrix to the given location.
	UniformMatrix4(location int32, value mgl32.Mat4)
}
