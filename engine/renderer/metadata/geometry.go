package metadata

import "github.com/go-gl/mathgl/mgl32"

/** @brief The name of the default geometry. */
const DefaultGeometryName string = "default"

/**
 * @brief The primitive topology used to assemble the indices of a geometry.
 */
type PrimitiveTopology uint8

const (
	/** @brief Every three indices form an independent triangle. */
	PRIMITIVE_TOPOLOGY_TRIANGLE_LIST PrimitiveTopology = iota
	/** @brief Each index after the first two forms a triangle with the previous two. */
	PRIMITIVE_TOPOLOGY_TRIANGLE_STRIP
)

func (t PrimitiveTopology) String() string {
	switch t {
	case PRIMITIVE_TOPOLOGY_TRIANGLE_LIST:
		return "triangle_list"
	case PRIMITIVE_TOPOLOGY_TRIANGLE_STRIP:
		return "triangle_strip"
	}
	return "unknown"
}

/**
 * @brief Represents a single vertex in 3D space.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position mgl32.Vec3
	/** @brief The normal of the vertex. */
	Normal mgl32.Vec3
	/** @brief The colour of the vertex. */
	Colour mgl32.Vec4
}

/** @brief The minimum and maximum corners of an axis-aligned box. */
type Extents3D struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

/**
 * @brief Represents the configuration for a geometry.
 */
type GeometryConfig struct {
	/** @brief An array of Vertices. */
	Vertices []Vertex3D
	/** @brief An array of Indices. */
	Indices []uint32
	/** @brief How the indices are assembled into triangles. */
	Topology PrimitiveTopology

	Center     mgl32.Vec3
	MinExtents mgl32.Vec3
	MaxExtents mgl32.Vec3

	/** @brief The Name of the geometry. */
	Name string
}

// ComputeExtents fills Center, MinExtents and MaxExtents from the vertices.
func (gc *GeometryConfig) ComputeExtents() {
	if len(gc.Vertices) == 0 {
		gc.Center, gc.MinExtents, gc.MaxExtents = mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}
		return
	}
	min := gc.Vertices[0].Position
	max := min
	for _, v := range gc.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	gc.MinExtents = min
	gc.MaxExtents = max
	gc.Center = min.Add(max).Mul(0.5)
}

/**
 * @brief Represents actual geometry uploaded to the backend.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The internal geometry identifier, used by the renderer backend to map to internal resources. */
	InternalID string
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The center of the geometry in local coordinates. */
	Center mgl32.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents Extents3D
	/** @brief The geometry name. */
	Name string
	/** @brief The number of vertices uploaded. */
	VertexCount uint32
	/** @brief The number of indices to draw. */
	IndexCount uint32
	/** @brief How the indices are assembled into triangles. */
	Topology PrimitiveTopology
}
