package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/math"
)

const (
	DEFAULT_ORBIT_SENSITIVITY float32 = 0.25
	DEFAULT_ORBIT_ZOOM_SPEED  float32 = 0.25
	DEFAULT_ORBIT_MOVE_SPEED  float32 = 0.001
)

/**
 * @brief Orbits a camera around a center point. Every operation
 * rebuilds the view matrix of the controlled camera with LookAt.
 */
type OrbitCamera struct {
	camera *Camera

	position mgl32.Vec3
	center   mgl32.Vec3
	up       mgl32.Vec3

	/** @brief Degrees of rotation per unit of Rotate input. */
	Sensitivity float32
	/** @brief Distance moved towards the center per unit of Zoom input. */
	ZoomSpeedFactor float32
	/** @brief Fraction of the distance to the center moved per unit of Move input. */
	MoveSpeedFactor float32
}

func NewOrbitCamera(camera *Camera, position, center, up mgl32.Vec3) *OrbitCamera {
	oc := &OrbitCamera{
		camera:          camera,
		position:        position,
		center:          center,
		up:              up,
		Sensitivity:     DEFAULT_ORBIT_SENSITIVITY,
		ZoomSpeedFactor: DEFAULT_ORBIT_ZOOM_SPEED,
		MoveSpeedFactor: DEFAULT_ORBIT_MOVE_SPEED,
	}
	oc.updateView()
	return oc
}

func (oc *OrbitCamera) Camera() *Camera {
	return oc.camera
}

func (oc *OrbitCamera) forward() mgl32.Vec3 {
	return oc.position.Sub(oc.center).Normalize()
}

func (oc *OrbitCamera) right() mgl32.Vec3 {
	return oc.forward().Cross(oc.up).Normalize()
}

// Rotate orbits the position around the center: dx about the up axis, dy
// about the camera right axis.
func (oc *OrbitCamera) Rotate(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	rotX := mgl32.QuatRotate(math.DegToRad(dx*oc.Sensitivity), oc.up)
	rotY := mgl32.QuatRotate(math.DegToRad(dy*oc.Sensitivity), oc.right())

	offset := rotY.Mul(rotX).Rotate(oc.position.Sub(oc.center))
	oc.position = oc.center.Add(offset)

	oc.updateView()
}

// Move pans sideways and dollies towards the center, slower when close to it.
func (oc *OrbitCamera) Move(dx, dy float32) {
	forward := oc.forward()
	right := oc.right()

	moveSpeed := oc.MoveSpeedFactor * oc.position.Sub(oc.center).Len()

	horizontal := right.Mul(dx * moveSpeed)
	vertical := forward.Mul(-dy * moveSpeed)

	// only the horizontal offset moves the center
	oc.position = oc.position.Add(horizontal).Add(vertical)
	oc.center = oc.center.Add(horizontal)

	oc.updateView()
}

func (oc *OrbitCamera) Zoom(offset float32) {
	oc.position = oc.position.Sub(oc.forward().Mul(offset * oc.ZoomSpeedFactor))
	oc.updateView()
}

func (oc *OrbitCamera) SetTarget(center, position mgl32.Vec3) {
	oc.center = center
	oc.position = position
	oc.updateView()
}

// SetCenter moves the orbit center. The view is rebuilt on the next change.
func (oc *OrbitCamera) SetCenter(center mgl32.Vec3) {
	oc.center = center
}

func (oc *OrbitCamera) SetProjection(projection mgl32.Mat4) {
	oc.camera.SetProjection(projection)
}

func (oc *OrbitCamera) Position() mgl32.Vec3 {
	return oc.position
}

func (oc *OrbitCamera) Center() mgl32.Vec3 {
	return oc.center
}

func (oc *OrbitCamera) View() mgl32.Mat4 {
	return oc.camera.GetView()
}

func (oc *OrbitCamera) Projection() mgl32.Mat4 {
	return oc.camera.GetProjection()
}

func (oc *OrbitCamera) updateView() {
	oc.camera.SetView(mgl32.LookAtV(oc.position, oc.center, oc.up))
}
