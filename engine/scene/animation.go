package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/math"
)

// Animation moves a node from the transform it had when the animation was
// created to a final transform, over a fixed duration.
// The target node must outlive the animation.
type Animation struct {
	// progress in [0, 1]
	state float64
	// seconds for a full run
	duration float64

	itranslation mgl32.Vec3
	iscaling     mgl32.Vec3
	iorientation mgl32.Quat

	ftranslation mgl32.Vec3
	fscaling     mgl32.Vec3
	forientation mgl32.Quat

	target *Node
}

// NewAnimation snapshots target's current translation, scale and
// orientation as the initial keyframe.
func NewAnimation(target *Node, duration float64, translation, scaling mgl32.Vec3, orientation mgl32.Quat) (*Animation, error) {
	if target == nil {
		return nil, ErrNilNode
	}
	if duration <= 0 {
		return nil, fmt.Errorf("animation of '%s' with duration %v: %w", target.Name(), duration, ErrInvalidDuration)
	}
	return &Animation{
		duration:     duration,
		target:       target,
		itranslation: target.Translation(),
		iscaling:     target.Scale(),
		iorientation: target.Orientation(),
		ftranslation: translation,
		fscaling:     scaling,
		forientation: orientation,
	}, nil
}

// Play advances (or rewinds) the progress by elapsed/duration, clamps it to
// [0, 1] and writes the interpolated transform to the target.
func (a *Animation) Play(elapsedTime float64, rewind bool) {
	direction := 1.0
	if rewind {
		direction = -1.0
	}
	a.state = math.Saturate(a.state + direction*(elapsedTime/a.duration))

	t := float32(a.state)
	a.target.SetPosition(math.LerpVec3(a.itranslation, a.ftranslation, t))
	a.target.SetScale(math.LerpVec3(a.iscaling, a.fscaling, t))
	a.target.SetRotation(math.Slerp(a.iorientation, a.forientation, t))
}

// State returns the progress, 0 at the initial keyframe and 1 at the final one.
func (a *Animation) State() float64 {
	return a.state
}

// Done reports whether further playback in the given direction has no effect.
func (a *Animation) Done(rewind bool) bool {
	if rewind {
		return a.state <= 0
	}
	return a.state >= 1
}

func (a *Animation) Target() *Node {
	return a.target
}

func (a *Animation) Duration() float64 {
	return a.duration
}
