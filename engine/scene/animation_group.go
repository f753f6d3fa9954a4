package scene

// AnimationGroup plays a set of independent animations in lock-step.
type AnimationGroup struct {
	animations []*Animation
}

func NewAnimationGroup() *AnimationGroup {
	return &AnimationGroup{}
}

// Add takes ownership of anim. Nil animations are ignored.
func (ag *AnimationGroup) Add(anim *Animation) {
	if anim == nil {
		return
	}
	ag.animations = append(ag.animations, anim)
}

func (ag *AnimationGroup) Clear() {
	ag.animations = nil
}

func (ag *AnimationGroup) Len() int {
	return len(ag.animations)
}

// Play advances every animation by the same elapsed time and direction.
func (ag *AnimationGroup) Play(elapsedTime float64, rewind bool) {
	for _, animation := range ag.animations {
		animation.Play(elapsedTime, rewind)
	}
}

// Done reports whether every animation has reached the endpoint for the
// given direction. An empty group is always done.
func (ag *AnimationGroup) Done(rewind bool) bool {
	for _, animation := range ag.animations {
		if !animation.Done(rewind) {
			return false
		}
	}
	return true
}
