package math

import "github.com/go-gl/mathgl/mgl32"

/**
 * @brief Represents the transform of an object relative to its parent.
 * NOTE: The properties of this should not be edited directly, but through
 * the methods in transform.go so the local matrix is regenerated.
 */
type Transform struct {
	/** @brief The position relative to the parent. */
	Position mgl32.Vec3
	/** @brief The rotation relative to the parent. */
	Rotation mgl32.Quat
	/** @brief The component-wise scale. */
	Scale mgl32.Vec3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	IsDirty bool
	/**
	 * @brief The local transformation matrix, updated whenever
	 * the position, rotation or scale have changed.
	 */
	Local mgl32.Mat4
}
