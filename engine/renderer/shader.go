package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

// ShaderProgram is a linked program created by the renderer. It satisfies
// scene.ShaderProgram.
type ShaderProgram struct {
	shader   *metadata.Shader
	renderer *Renderer
}

// ID returns the program name.
func (sp *ShaderProgram) ID() string {
	return sp.shader.Name
}

func (sp *ShaderProgram) Shader() *metadata.Shader {
	return sp.shader
}

func (sp *ShaderProgram) Bind() {
	if err := sp.renderer.backend.ShaderUse(sp.shader); err != nil {
		core.LogError("failed to bind shader '%s': %s", sp.shader.Name, err)
	}
}

func (sp *ShaderProgram) Unbind() {
	sp.renderer.backend.ShaderRelease(sp.shader)
}

// UniformLocation returns -1 for names the program does not declare.
func (sp *ShaderProgram) UniformLocation(name string) int32 {
	if location, ok := sp.shader.UniformLocations[name]; ok {
		return location
	}
	return metadata.INVALID_UNIFORM_LOCATION
}

// UniformMatrix4 ignores writes to location -1, like glUniform does.
func (sp *ShaderProgram) UniformMatrix4(location int32, value mgl32.Mat4) {
	if location < 0 {
		return
	}
	if err := sp.renderer.backend.SetUniformMatrix4(sp.shader, location, value); err != nil {
		core.LogError("failed to set uniform %d on shader '%s': %s", location, sp.shader.Name, err)
	}
}
