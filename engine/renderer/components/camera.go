package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/math"
)

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

/**
 * @brief Holds the view and projection matrices uploaded to the
 * camera uniform block every frame. Cameras are created and managed
 * by the camera system and driven by a controller such as OrbitCamera.
 */
type Camera struct {
	Name string
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: Do not set this directly, use SetView() instead.
	 */
	ViewMatrix mgl32.Mat4
	/**
	 * @brief The projection matrix of this camera.
	 * NOTE: Do not set this directly, use SetProjection() instead.
	 */
	ProjectionMatrix mgl32.Mat4
}

func NewCamera(name string) *Camera {
	camera := &Camera{Name: name}
	camera.Reset()
	return camera
}

func (c *Camera) ID() string {
	return c.Name
}

func (c *Camera) Reset() {
	c.ViewMatrix = mgl32.Ident4()
	c.ProjectionMatrix = mgl32.Ident4()
}

func (c *Camera) SetView(view mgl32.Mat4) {
	c.ViewMatrix = view
}

func (c *Camera) SetProjection(projection mgl32.Mat4) {
	c.ProjectionMatrix = projection
}

func (c *Camera) GetView() mgl32.Mat4 {
	return c.ViewMatrix
}

func (c *Camera) GetProjection() mgl32.Mat4 {
	return c.ProjectionMatrix
}

// NewPerspective builds a perspective projection; fov is vertical, in degrees.
func NewPerspective(fov, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(math.DegToRad(fov), aspect, near, far)
}

// NewOrthographic builds an orthographic projection of the [-2, 2] square.
func NewOrthographic(near, far float32) mgl32.Mat4 {
	return mgl32.Ortho(-2, 2, -2, 2, near, far)
}
