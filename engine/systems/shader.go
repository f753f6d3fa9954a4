package systems

import (
	"fmt"

	"github.com/spaghettifunk/tangram/engine/containers"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

// ShaderSystem owns the linked shader programs, looked up by name.
type ShaderSystem struct {
	renderer *renderer.Renderer
	shaders  *containers.Manager[string, *renderer.ShaderProgram]
}

func NewShaderSystem(r *renderer.Renderer) (*ShaderSystem, error) {
	if r == nil {
		err := fmt.Errorf("func NewShaderSystem - renderer is required: %w", core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	return &ShaderSystem{
		renderer: r,
		shaders:  containers.NewManager[string, *renderer.ShaderProgram](),
	}, nil
}

func (shaderSystem *ShaderSystem) Shutdown() error {
	for sp := range shaderSystem.shaders.All() {
		shaderSystem.renderer.DestroyShader(sp)
	}
	shaderSystem.shaders.Clear()
	return nil
}

/**
 * @brief Creates a new shader with the given config.
 *
 * @param config The configuration to be used when creating the shader.
 * @return The created program, or an error if the name is taken or creation failed.
 */
func (shaderSystem *ShaderSystem) CreateShader(config *metadata.ShaderConfig) (*renderer.ShaderProgram, error) {
	if config == nil {
		return nil, fmt.Errorf("func CreateShader - config is nil: %w", core.ErrInvalidConfig)
	}
	if _, exists := shaderSystem.shaders.Get(config.Name); exists {
		err := fmt.Errorf("func CreateShader - shader '%s': %w", config.Name, core.ErrDuplicateName)
		core.LogError(err.Error())
		return nil, err
	}
	sp, err := shaderSystem.renderer.CreateShader(config)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	shaderSystem.shaders.Add(sp)
	return sp, nil
}

/**
 * @brief Gets a shader by name.
 *
 * @param shaderName The name to search for. Case sensitive.
 * @return The program, or an error wrapping ErrNotFound.
 */
func (shaderSystem *ShaderSystem) GetShader(shaderName string) (*renderer.ShaderProgram, error) {
	sp, ok := shaderSystem.shaders.Get(shaderName)
	if !ok {
		return nil, fmt.Errorf("func GetShader - shader '%s': %w", shaderName, core.ErrNotFound)
	}
	return sp, nil
}

func (shaderSystem *ShaderSystem) Len() int {
	return shaderSystem.shaders.Len()
}
