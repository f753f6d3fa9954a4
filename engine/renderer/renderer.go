package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

type Renderer struct {
	backend RendererBackend

	nextShaderID   uint32
	nextGeometryID uint32
	frame          uint64
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{
		backend: backend,
	}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	return r.backend.Initialize(&metadata.RendererBackendConfig{
		ApplicationName: appName,
		Width:           appWidth,
		Height:          appHeight,
	})
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) BeginFrame(deltaTime float64) error {
	return r.backend.BeginFrame(deltaTime)
}

func (r *Renderer) EndFrame(deltaTime float64) error {
	if err := r.backend.EndFrame(deltaTime); err != nil {
		return err
	}
	r.frame++
	return nil
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

// FrameCount returns the number of frames completed so far.
func (r *Renderer) FrameCount() uint64 {
	return r.frame
}

// DrawFrame wraps draw between BeginFrame and EndFrame.
func (r *Renderer) DrawFrame(renderPacket *metadata.RenderPacket, draw func() error) error {
	if err := r.BeginFrame(renderPacket.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}
	if draw != nil {
		if err := draw(); err != nil {
			core.LogError("frame %d draw failed: %s", renderPacket.Frame, err)
			// the frame still has to be closed
			if endErr := r.EndFrame(renderPacket.DeltaTime); endErr != nil {
				core.LogError(endErr.Error())
			}
			return err
		}
	}
	if err := r.EndFrame(renderPacket.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return nil
}

// CreateShader links a new program from the given configuration.
func (r *Renderer) CreateShader(config *metadata.ShaderConfig) (*ShaderProgram, error) {
	if config == nil || config.Name == "" {
		return nil, fmt.Errorf("func CreateShader: shader config must have a name: %w", core.ErrInvalidConfig)
	}
	shader := &metadata.Shader{
		ID:               r.nextShaderID,
		Name:             config.Name,
		State:            metadata.SHADER_STATE_NOT_CREATED,
		UniformLocations: make(map[string]int32, len(config.Uniforms)),
		BlockBindings:    make(map[string]uint32, len(config.Blocks)),
	}
	if err := r.backend.ShaderCreate(shader, config); err != nil {
		return nil, fmt.Errorf("func CreateShader: failed to create shader '%s': %w", config.Name, err)
	}
	r.nextShaderID++
	shader.State = metadata.SHADER_STATE_INITIALIZED
	core.LogDebug("shader '%s' created with %d uniforms and %d blocks", shader.Name, len(shader.UniformLocations), len(shader.BlockBindings))
	return &ShaderProgram{shader: shader, renderer: r}, nil
}

func (r *Renderer) DestroyShader(sp *ShaderProgram) {
	if sp == nil || sp.shader.State != metadata.SHADER_STATE_INITIALIZED {
		return
	}
	r.backend.ShaderDestroy(sp.shader)
	sp.shader.State = metadata.SHADER_STATE_DESTROYED
}

// CreateGeometry uploads the vertices and indices of config to the backend.
func (r *Renderer) CreateGeometry(config *metadata.GeometryConfig) (*metadata.Geometry, error) {
	if config == nil || len(config.Vertices) == 0 {
		return nil, fmt.Errorf("func CreateGeometry: geometry has no vertices: %w", core.ErrInvalidConfig)
	}
	for _, idx := range config.Indices {
		if int(idx) >= len(config.Vertices) {
			return nil, fmt.Errorf("func CreateGeometry: index %d out of range for '%s': %w", idx, config.Name, core.ErrInvalidConfig)
		}
	}
	geometry := &metadata.Geometry{
		ID:          r.nextGeometryID,
		Name:        config.Name,
		Center:      config.Center,
		Extents:     metadata.Extents3D{Min: config.MinExtents, Max: config.MaxExtents},
		VertexCount: uint32(len(config.Vertices)),
		IndexCount:  uint32(len(config.Indices)),
		Topology:    config.Topology,
	}
	if err := r.backend.CreateGeometry(geometry, config.Vertices, config.Indices); err != nil {
		return nil, fmt.Errorf("func CreateGeometry: failed to create geometry '%s': %w", config.Name, err)
	}
	r.nextGeometryID++
	geometry.Generation++
	return geometry, nil
}

func (r *Renderer) DestroyGeometry(geometry *metadata.Geometry) {
	if geometry == nil {
		return
	}
	r.backend.DestroyGeometry(geometry)
}

func (r *Renderer) DrawGeometry(geometry *metadata.Geometry) {
	r.backend.DrawGeometry(&metadata.GeometryRenderData{Geometry: geometry})
}

// SetCamera uploads view and projection to the camera block of sp.
// The program must be bound.
func (r *Renderer) SetCamera(sp *ShaderProgram, view, projection mgl32.Mat4) error {
	if _, ok := sp.shader.BlockBindings[metadata.CameraBlockName]; !ok {
		core.LogDebug("shader '%s' has no '%s' block, camera not uploaded", sp.shader.Name, metadata.CameraBlockName)
		return nil
	}
	return r.backend.SetUniformBlock(sp.shader, metadata.CameraBlockName, &metadata.CameraData{
		View:       view,
		Projection: projection,
	})
}
