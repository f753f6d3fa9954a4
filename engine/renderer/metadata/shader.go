package metadata

/**
 * @brief Represents the current state of a given shader.
 */
type ShaderState int

const (
	/** @brief The shader has not yet gone through the creation process, and is unusable.*/
	SHADER_STATE_NOT_CREATED ShaderState = iota
	/** @brief The shader is created and linked, and is ready for use.*/
	SHADER_STATE_INITIALIZED
	/** @brief The shader has been destroyed and must not be used again.*/
	SHADER_STATE_DESTROYED
)

/** @brief The location reported for uniforms the program does not declare. */
const INVALID_UNIFORM_LOCATION int32 = -1

/**
 * @brief A uniform block and the binding point it is attached to.
 */
type UniformBlockConfig struct {
	Name    string `toml:"name" yaml:"name"`
	Binding uint32 `toml:"binding" yaml:"binding"`
}

/**
 * @brief Configuration for a shader program.
 */
type ShaderConfig struct {
	/** @brief The Name of the shader to be created. */
	Name string `toml:"name" yaml:"name"`
	/** @brief The plain uniforms declared by the program. */
	Uniforms []string `toml:"uniforms" yaml:"uniforms"`
	/** @brief The uniform blocks declared by the program. */
	Blocks []UniformBlockConfig `toml:"blocks" yaml:"blocks"`
}

/**
 * @brief Represents a shader on the frontend.
 */
type Shader struct {
	/** @brief The shader identifier */
	ID uint32
	/** @brief The backend handle of the linked program. */
	InternalID string

	Name string

	State ShaderState

	/** @brief Uniform locations by name, filled in by the backend when the program is created. */
	UniformLocations map[string]int32
	/** @brief Uniform block binding points by block name. */
	BlockBindings map[string]uint32
}
