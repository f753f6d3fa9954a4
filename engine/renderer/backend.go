package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

// RendererBackend is the graphics API the renderer submits work to.
// Implementations are only called from the main loop.
type RendererBackend interface {
	Initialize(config *metadata.RendererBackendConfig) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error

	// ShaderCreate links the program and fills in its uniform locations and block bindings.
	ShaderCreate(shader *metadata.Shader, config *metadata.ShaderConfig) error
	ShaderDestroy(shader *metadata.Shader)
	ShaderUse(shader *metadata.Shader) error
	ShaderRelease(shader *metadata.Shader)
	SetUniformMatrix4(shader *metadata.Shader, location int32, value mgl32.Mat4) error
	SetUniformBlock(shader *metadata.Shader, block string, data *metadata.CameraData) error

	CreateGeometry(geometry *metadata.Geometry, vertices []metadata.Vertex3D, indices []uint32) error
	DestroyGeometry(geometry *metadata.Geometry)
	DrawGeometry(data *metadata.GeometryRenderData)
}
