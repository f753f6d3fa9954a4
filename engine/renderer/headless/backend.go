// Package headless provides a renderer backend that records every command it
// receives instead of talking to a GPU. It backs the engine when no window
// is available and is what the tests assert against.
package headless

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

var (
	ErrNotInitialized  = errors.New("headless backend is not initialized")
	ErrFrameInProgress = errors.New("a frame is already in progress")
	ErrNoFrame         = errors.New("no frame in progress")
	ErrUnknownShader   = errors.New("unknown shader")
	ErrShaderNotBound  = errors.New("shader is not bound")
	ErrUnknownLocation = errors.New("unknown uniform location")
	ErrUnknownBlock    = errors.New("unknown uniform block")
)

type shaderState struct {
	name      string
	locations map[int32]string
}

type geometryState struct {
	name        string
	vertexCount uint32
	indexCount  uint32
}

type HeadlessRenderer struct {
	mu sync.Mutex

	config      *metadata.RendererBackendConfig
	FrameNumber uint64
	inFrame     bool

	shaders    map[string]*shaderState
	geometries map[string]*geometryState
	bound      string

	commands []Command
}

func New() *HeadlessRenderer {
	return &HeadlessRenderer{
		shaders:    make(map[string]*shaderState),
		geometries: make(map[string]*geometryState),
	}
}

func (hr *HeadlessRenderer) Initialize(config *metadata.RendererBackendConfig) error {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	hr.config = config
	core.LogInfo("headless renderer initialized for '%s' (%dx%d)", config.ApplicationName, config.Width, config.Height)
	return nil
}

func (hr *HeadlessRenderer) Shutdown() error {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if len(hr.shaders) > 0 || len(hr.geometries) > 0 {
		core.LogWarn("headless renderer shut down with %d shaders and %d geometries still alive", len(hr.shaders), len(hr.geometries))
	}
	hr.shaders = make(map[string]*shaderState)
	hr.geometries = make(map[string]*geometryState)
	hr.bound = ""
	hr.config = nil
	return nil
}

func (hr *HeadlessRenderer) Resized(width, height uint32) error {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if hr.config == nil {
		return ErrNotInitialized
	}
	hr.config.Width = width
	hr.config.Height = height
	return nil
}

func (hr *HeadlessRenderer) BeginFrame(deltaTime float64) error {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if hr.config == nil {
		return ErrNotInitialized
	}
	if hr.inFrame {
		return ErrFrameInProgress
	}
	hr.inFrame = true
	hr.record(Command{Type: COMMAND_BEGIN_FRAME})
	return nil
}

func (hr *HeadlessRenderer) EndFrame(deltaTime float64) error {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if !hr.inFrame {
		return ErrNoFrame
	}
	hr.inFrame = false
	hr.record(Command{Type: COMMAND_END_FRAME})
	hr.FrameNumber++
	return nil
}

// ShaderCreate assigns locations to uniforms in declaration order, starting at zero.
func (hr *HeadlessRenderer) ShaderCreate(shader *metadata.Shader, config *metadata.ShaderConfig) error {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if hr.config == nil {
		return ErrNotInitialized
	}
	state := &shaderState{
		name:      config.Name,
		locations: make(map[int32]string, len(config.Uniforms)),
	}
	for _, name := range config.Uniforms {
		if _, exists := shader.UniformLocations[name]; exists {
			continue
		}
		location := int32(len(state.locations))
		shader.UniformLocations[name] = location
		state.locations[location] = name
	}
	for _, block := range config.Blocks {
		shader.BlockBindings[block.Name] = block.Binding
	}

	shader.InternalID = uuid.NewString()
	hr.shaders[shader.InternalID] = state
	hr.record(Command{Type: COMMAND_SHADER_CREATE, Handle: shader.InternalID, Name: config.Name})
	return nil
}

func (hr *HeadlessRenderer) ShaderDestroy(shader *metadata.Shader) {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if _, ok := hr.shaders[shader.InternalID]; !ok {
		core.LogWarn("destroying unknown shader '%s'", shader.Name)
		return
	}
	delete(hr.shaders, shader.InternalID)
	if hr.bound == shader.InternalID {
		hr.bound = ""
	}
	hr.record(Command{Type: COMMAND_SHADER_DESTROY, Handle: shader.InternalID, Name: shader.Name})
}

func (hr *HeadlessRenderer) ShaderUse(shader *metadata.Shader) error {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if _, ok := hr.shaders[shader.InternalID]; !ok {
		return fmt.Errorf("use shader '%s': %w", shader.Name, ErrUnknownShader)
	}
	hr.bound = shader.InternalID
	hr.record(Command{Type: COMMAND_SHADER_USE, Handle: shader.InternalID, Name: shader.Name})
	return nil
}

func (hr *HeadlessRenderer) ShaderRelease(shader *metadata.Shader) {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if hr.bound != shader.InternalID {
		return
	}
	hr.bound = ""
	hr.record(Command{Type: COMMAND_SHADER_RELEASE, Handle: shader.InternalID, Name: shader.Name})
}

func (hr *HeadlessRenderer) SetUniformMatrix4(shader *metadata.Shader, location int32, value mgl32.Mat4) error {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	state, ok := hr.shaders[shader.InternalID]
	if !ok {
		return fmt.Errorf("set uniform on '%s': %w", shader.Name, ErrUnknownShader)
	}
	if hr.bound != shader.InternalID {
		return fmt.Errorf("set uniform on '%s': %w", shader.Name, ErrShaderNotBound)
	}
	name, ok := state.locations[location]
	if !ok {
		return fmt.Errorf("set uniform %d on '%s': %w", location, shader.Name, ErrUnknownLocation)
	}
	hr.record(Command{
		Type:     COMMAND_UNIFORM_MATRIX4,
		Handle:   shader.InternalID,
		Name:     name,
		Location: location,
		Matrices: []mgl32.Mat4{value},
	})
	return nil
}

func (hr *HeadlessRenderer) SetUniformBlock(shader *metadata.Shader, block string, data *metadata.CameraData) error {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if _, ok := hr.shaders[shader.InternalID]; !ok {
		return fmt.Errorf("set block on '%s': %w", shader.Name, ErrUnknownShader)
	}
	if hr.bound != shader.InternalID {
		return fmt.Errorf("set block on '%s': %w", shader.Name, ErrShaderNotBound)
	}
	binding, ok := shader.BlockBindings[block]
	if !ok {
		return fmt.Errorf("set block '%s' on '%s': %w", block, shader.Name, ErrUnknownBlock)
	}
	hr.record(Command{
		Type:     COMMAND_UNIFORM_BLOCK,
		Handle:   shader.InternalID,
		Name:     block,
		Location: int32(binding),
		Matrices: []mgl32.Mat4{data.View, data.Projection},
	})
	return nil
}

func (hr *HeadlessRenderer) CreateGeometry(geometry *metadata.Geometry, vertices []metadata.Vertex3D, indices []uint32) error {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if hr.config == nil {
		return ErrNotInitialized
	}
	geometry.InternalID = uuid.NewString()
	hr.geometries[geometry.InternalID] = &geometryState{
		name:        geometry.Name,
		vertexCount: uint32(len(vertices)),
		indexCount:  uint32(len(indices)),
	}
	hr.record(Command{
		Type:       COMMAND_GEOMETRY_CREATE,
		Handle:     geometry.InternalID,
		Name:       geometry.Name,
		IndexCount: uint32(len(indices)),
	})
	return nil
}

func (hr *HeadlessRenderer) DestroyGeometry(geometry *metadata.Geometry) {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	if _, ok := hr.geometries[geometry.InternalID]; !ok {
		core.LogWarn("destroying unknown geometry '%s'", geometry.Name)
		return
	}
	delete(hr.geometries, geometry.InternalID)
	hr.record(Command{Type: COMMAND_GEOMETRY_DESTROY, Handle: geometry.InternalID, Name: geometry.Name})
}

func (hr *HeadlessRenderer) DrawGeometry(data *metadata.GeometryRenderData) {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	g := data.Geometry
	state, ok := hr.geometries[g.InternalID]
	if !ok {
		core.LogError("draw of unknown geometry '%s'", g.Name)
		return
	}
	if !hr.inFrame {
		core.LogWarn("geometry '%s' drawn outside of a frame", g.Name)
	}
	if hr.bound == "" {
		core.LogWarn("geometry '%s' drawn without a bound shader", g.Name)
	}
	hr.record(Command{
		Type:       COMMAND_GEOMETRY_DRAW,
		Handle:     g.InternalID,
		Name:       state.name,
		IndexCount: state.indexCount,
	})
}

func (hr *HeadlessRenderer) record(cmd Command) {
	cmd.Frame = hr.FrameNumber
	hr.commands = append(hr.commands, cmd)
}

// Commands returns a copy of every command recorded since the last Reset.
func (hr *HeadlessRenderer) Commands() []Command {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	out := make([]Command, len(hr.commands))
	copy(out, hr.commands)
	return out
}

// Reset clears the command log. Shaders and geometries stay alive.
func (hr *HeadlessRenderer) Reset() {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	hr.commands = nil
}

func (hr *HeadlessRenderer) Frames() uint64 {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	return hr.FrameNumber
}
