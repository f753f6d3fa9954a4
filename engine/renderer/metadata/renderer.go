package metadata

import "github.com/go-gl/mathgl/mgl32"

type RendererBackendConfig struct {
	/** @brief The name of the application */
	ApplicationName string
	Width           uint32
	Height          uint32
}

/**
 * @brief Data handed to the renderer for a single frame.
 */
type RenderPacket struct {
	DeltaTime float64
	/** @brief The frame number, starting at zero. */
	Frame uint64
}

type GeometryRenderData struct {
	Geometry *Geometry
}

/**
 * @brief The per-frame camera data uploaded to the camera uniform block.
 */
type CameraData struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}
