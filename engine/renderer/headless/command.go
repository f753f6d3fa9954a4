package headless

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type CommandType int

const (
	COMMAND_BEGIN_FRAME CommandType = iota
	COMMAND_END_FRAME
	COMMAND_SHADER_CREATE
	COMMAND_SHADER_DESTROY
	COMMAND_SHADER_USE
	COMMAND_SHADER_RELEASE
	COMMAND_UNIFORM_MATRIX4
	COMMAND_UNIFORM_BLOCK
	COMMAND_GEOMETRY_CREATE
	COMMAND_GEOMETRY_DESTROY
	COMMAND_GEOMETRY_DRAW
)

var commandNames = map[CommandType]string{
	COMMAND_BEGIN_FRAME:      "begin_frame",
	COMMAND_END_FRAME:        "end_frame",
	COMMAND_SHADER_CREATE:    "shader_create",
	COMMAND_SHADER_DESTROY:   "shader_destroy",
	COMMAND_SHADER_USE:       "shader_use",
	COMMAND_SHADER_RELEASE:   "shader_release",
	COMMAND_UNIFORM_MATRIX4:  "uniform_matrix4",
	COMMAND_UNIFORM_BLOCK:    "uniform_block",
	COMMAND_GEOMETRY_CREATE:  "geometry_create",
	COMMAND_GEOMETRY_DESTROY: "geometry_destroy",
	COMMAND_GEOMETRY_DRAW:    "geometry_draw",
}

func (c CommandType) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Command is one call received by the headless backend.
type Command struct {
	Type CommandType
	// Frame is the number of frames completed when the command was received.
	Frame uint64
	// Handle is the backend handle of the shader or geometry involved.
	Handle string
	// Name is the shader, geometry, uniform or block name, depending on Type.
	Name string
	// Location is the uniform location, or the binding point for blocks.
	Location   int32
	Matrices   []mgl32.Mat4
	IndexCount uint32
}

func (c Command) String() string {
	if c.Name == "" {
		return c.Type.String()
	}
	return c.Type.String() + " " + c.Name
}

// Filter returns the commands of the given types, in order.
func Filter(commands []Command, types ...CommandType) []Command {
	var out []Command
	for _, c := range commands {
		for _, t := range types {
			if c.Type == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Strings renders commands with Command.String, which keeps test expectations short.
func Strings(commands []Command) []string {
	out := make([]string, 0, len(commands))
	for _, c := range commands {
		out = append(out, c.String())
	}
	return out
}
