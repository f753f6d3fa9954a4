package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

type Shape string

const (
	SHAPE_TRIANGLE      Shape = "triangle"
	SHAPE_SQUARE        Shape = "square"
	SHAPE_PARALLELOGRAM Shape = "parallelogram"
	SHAPE_CUBE          Shape = "cube"
)

// shapeData is the unit geometry of a flat tangram piece, lying on the z=0 plane.
type shapeData struct {
	positions []mgl32.Vec3
	colours   []mgl32.Vec4
	indices   []uint32
	topology  metadata.PrimitiveTopology
}

var (
	red    = mgl32.Vec4{1, 0, 0, 1}
	green  = mgl32.Vec4{0, 1, 0, 1}
	blue   = mgl32.Vec4{0, 0, 1, 1}
	yellow = mgl32.Vec4{1, 1, 0, 1}
)

var flatShapes = map[Shape]shapeData{
	SHAPE_TRIANGLE: {
		positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		colours:   []mgl32.Vec4{red, green, blue},
		indices:   []uint32{0, 1, 2},
		topology:  metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_LIST,
	},
	SHAPE_SQUARE: {
		positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		colours:   []mgl32.Vec4{red, green, blue, yellow},
		indices:   []uint32{0, 1, 3, 2},
		topology:  metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_STRIP,
	},
	SHAPE_PARALLELOGRAM: {
		positions: []mgl32.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 2, 0}},
		colours:   []mgl32.Vec4{red, green, blue, yellow},
		indices:   []uint32{0, 1, 2, 3},
		topology:  metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_STRIP,
	},
}

// sanitizeSize replaces zero components with one, like the plane and cube
// generators always did.
func sanitizeSize(size mgl32.Vec3, dims int) mgl32.Vec3 {
	axes := [3]string{"Width", "Height", "Depth"}
	for i := 0; i < dims; i++ {
		if size[i] == 0 {
			core.LogWarn("%s must be nonzero. Defaulting to one.", axes[i])
			size[i] = 1.0
		}
	}
	return size
}

func geometryName(name string) string {
	if len(name) > 0 {
		return name
	}
	return metadata.DefaultGeometryName
}

func generateFlatConfig(shape Shape, width, height float32, name string) *metadata.GeometryConfig {
	data := flatShapes[shape]
	size := sanitizeSize(mgl32.Vec3{width, height, 1}, 2)

	config := &metadata.GeometryConfig{
		Name:     geometryName(name),
		Vertices: make([]metadata.Vertex3D, len(data.positions)),
		Indices:  append([]uint32(nil), data.indices...),
		Topology: data.topology,
	}
	for i, p := range data.positions {
		config.Vertices[i] = metadata.Vertex3D{
			Position: mgl32.Vec3{p.X() * size.X(), p.Y() * size.Y(), 0},
			Normal:   mgl32.Vec3{0, 0, 1},
			Colour:   data.colours[i],
		}
	}
	config.ComputeExtents()
	return config
}

// GenerateTriangleConfig creates a right triangle with its right angle at the origin.
func GenerateTriangleConfig(width, height float32, name string) *metadata.GeometryConfig {
	return generateFlatConfig(SHAPE_TRIANGLE, width, height, name)
}

// GenerateSquareConfig creates a rectangle with a corner at the origin.
func GenerateSquareConfig(width, height float32, name string) *metadata.GeometryConfig {
	return generateFlatConfig(SHAPE_SQUARE, width, height, name)
}

// GenerateParallelogramConfig creates the tangram parallelogram, leaning right.
func GenerateParallelogramConfig(width, height float32, name string) *metadata.GeometryConfig {
	return generateFlatConfig(SHAPE_PARALLELOGRAM, width, height, name)
}

type cubeFace struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}

// corners are unit signs; indices per face are 0,1,2 0,3,1
var cubeFaces = [6]cubeFace{
	// Front face
	{normal: mgl32.Vec3{0, 0, 1}, corners: [4]mgl32.Vec3{{-1, -1, 1}, {1, 1, 1}, {-1, 1, 1}, {1, -1, 1}}},
	// Back face
	{normal: mgl32.Vec3{0, 0, -1}, corners: [4]mgl32.Vec3{{1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {-1, -1, -1}}},
	// Left
	{normal: mgl32.Vec3{-1, 0, 0}, corners: [4]mgl32.Vec3{{-1, -1, -1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}}},
	// Right face
	{normal: mgl32.Vec3{1, 0, 0}, corners: [4]mgl32.Vec3{{1, -1, 1}, {1, 1, -1}, {1, 1, 1}, {1, -1, -1}}},
	// Bottom face
	{normal: mgl32.Vec3{0, -1, 0}, corners: [4]mgl32.Vec3{{1, -1, 1}, {-1, -1, -1}, {1, -1, -1}, {-1, -1, 1}}},
	// Top face
	{normal: mgl32.Vec3{0, 1, 0}, corners: [4]mgl32.Vec3{{-1, 1, 1}, {1, 1, -1}, {-1, 1, -1}, {1, 1, 1}}},
}

// GenerateCubeConfig creates a box centered at the origin, with 4 vertices
// and 2 triangles per side so that every side has its own normal.
func GenerateCubeConfig(width, height, depth float32, name string) *metadata.GeometryConfig {
	size := sanitizeSize(mgl32.Vec3{width, height, depth}, 3)
	half := size.Mul(0.5)

	config := &metadata.GeometryConfig{
		Name:     geometryName(name),
		Vertices: make([]metadata.Vertex3D, 4*6), // 4 verts per side, 6 side
		Indices:  make([]uint32, 6*6),            // 6 indices per side, 6 side
		Topology: metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_LIST,
	}
	for i, face := range cubeFaces {
		v_offset := i * 4
		i_offset := i * 6
		for j, c := range face.corners {
			config.Vertices[v_offset+j] = metadata.Vertex3D{
				Position: mgl32.Vec3{c.X() * half.X(), c.Y() * half.Y(), c.Z() * half.Z()},
				Normal:   face.normal,
				Colour:   mgl32.Vec4{1, 1, 1, 1},
			}
		}
		config.Indices[i_offset+0] = uint32(v_offset + 0)
		config.Indices[i_offset+1] = uint32(v_offset + 1)
		config.Indices[i_offset+2] = uint32(v_offset + 2)
		config.Indices[i_offset+3] = uint32(v_offset + 0)
		config.Indices[i_offset+4] = uint32(v_offset + 3)
		config.Indices[i_offset+5] = uint32(v_offset + 1)
	}
	config.ComputeExtents()
	return config
}

// GenerateShapeConfig dispatches to the generator for shape. Flat shapes use
// the x and y components of size only.
func GenerateShapeConfig(shape Shape, size mgl32.Vec3, name string) (*metadata.GeometryConfig, error) {
	switch shape {
	case SHAPE_TRIANGLE:
		return GenerateTriangleConfig(size.X(), size.Y(), name), nil
	case SHAPE_SQUARE:
		return GenerateSquareConfig(size.X(), size.Y(), name), nil
	case SHAPE_PARALLELOGRAM:
		return GenerateParallelogramConfig(size.X(), size.Y(), name), nil
	case SHAPE_CUBE:
		return GenerateCubeConfig(size.X(), size.Y(), size.Z(), name), nil
	}
	return nil, fmt.Errorf("func GenerateShapeConfig: '%s': %w", shape, core.ErrUnknownShape)
}
