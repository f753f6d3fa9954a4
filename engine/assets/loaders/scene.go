package loaders

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/math"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

// RotationDescription is an axis and an angle in degrees.
type RotationDescription struct {
	Axis  []float32 `toml:"axis" yaml:"axis"`
	Angle float32   `toml:"angle" yaml:"angle"`
}

// Quat returns the rotation as a unit quaternion. A nil description is the identity.
func (rd *RotationDescription) Quat() mgl32.Quat {
	if rd == nil {
		return mgl32.QuatIdent()
	}
	axis, _ := toVec3(rd.Axis, mgl32.Vec3{0, 0, 1})
	return math.NewQuatFromAxisAngle(axis, math.DegToRad(rd.Angle))
}

type MeshDescription struct {
	Name  string    `toml:"name" yaml:"name"`
	Shape string    `toml:"shape" yaml:"shape"`
	Size  []float32 `toml:"size" yaml:"size"`
}

func (md *MeshDescription) SizeVec3() mgl32.Vec3 {
	v, _ := toVec3(md.Size, mgl32.Vec3{1, 1, 1})
	return v
}

type NodeDescription struct {
	Name string `toml:"name" yaml:"name"`
	// Parent is empty for the root node.
	Parent   string               `toml:"parent" yaml:"parent"`
	Mesh     string               `toml:"mesh" yaml:"mesh"`
	Shader   string               `toml:"shader" yaml:"shader"`
	Position []float32            `toml:"position" yaml:"position"`
	Scale    []float32            `toml:"scale" yaml:"scale"`
	Rotation *RotationDescription `toml:"rotation" yaml:"rotation"`
}

func (nd *NodeDescription) PositionVec3() mgl32.Vec3 {
	v, _ := toVec3(nd.Position, mgl32.Vec3{})
	return v
}

func (nd *NodeDescription) ScaleVec3() mgl32.Vec3 {
	v, _ := toVec3(nd.Scale, mgl32.Vec3{1, 1, 1})
	return v
}

// AnimationDescription gives the final keyframe of an animation. Omitted
// fields keep the value the target has when the animation is created.
type AnimationDescription struct {
	Target   string               `toml:"target" yaml:"target"`
	Duration float64              `toml:"duration" yaml:"duration"`
	Position []float32            `toml:"position" yaml:"position"`
	Scale    []float32            `toml:"scale" yaml:"scale"`
	Rotation *RotationDescription `toml:"rotation" yaml:"rotation"`
}

// Final resolves the final keyframe against the target's current values.
func (ad *AnimationDescription) Final(position, scale mgl32.Vec3, rotation mgl32.Quat) (mgl32.Vec3, mgl32.Vec3, mgl32.Quat) {
	p, _ := toVec3(ad.Position, position)
	s, _ := toVec3(ad.Scale, scale)
	r := rotation
	if ad.Rotation != nil {
		r = ad.Rotation.Quat()
	}
	return p, s, r
}

type SceneDescription struct {
	Name       string                  `toml:"name" yaml:"name"`
	Shaders    []metadata.ShaderConfig `toml:"shaders" yaml:"shaders"`
	Meshes     []MeshDescription       `toml:"meshes" yaml:"meshes"`
	Nodes      []NodeDescription       `toml:"nodes" yaml:"nodes"`
	Animations []AnimationDescription  `toml:"animations" yaml:"animations"`
}

// Root returns the only node without a parent. Call Validate first.
func (sd *SceneDescription) Root() *NodeDescription {
	for i := range sd.Nodes {
		if sd.Nodes[i].Parent == "" {
			return &sd.Nodes[i]
		}
	}
	return nil
}

// Validate checks that every name resolves, that names are unique and that
// the nodes form a single tree.
func (sd *SceneDescription) Validate() error {
	shaders := make(map[string]bool, len(sd.Shaders))
	for _, s := range sd.Shaders {
		if s.Name == "" {
			return errors.Wrap(core.ErrInvalidConfig, "shader without a name")
		}
		if shaders[s.Name] {
			return errors.Wrapf(core.ErrDuplicateName, "shader '%s'", s.Name)
		}
		shaders[s.Name] = true
	}

	meshes := make(map[string]bool, len(sd.Meshes))
	for _, m := range sd.Meshes {
		if m.Name == "" {
			return errors.Wrap(core.ErrInvalidConfig, "mesh without a name")
		}
		if meshes[m.Name] {
			return errors.Wrapf(core.ErrDuplicateName, "mesh '%s'", m.Name)
		}
		if err := checkVec3(m.Size); err != nil {
			return errors.Wrapf(err, "mesh '%s' size", m.Name)
		}
		meshes[m.Name] = true
	}

	nodes := make(map[string]*NodeDescription, len(sd.Nodes))
	roots := 0
	for i := range sd.Nodes {
		n := &sd.Nodes[i]
		if n.Name == "" {
			return errors.Wrapf(core.ErrInvalidConfig, "node %d has no name", i)
		}
		if _, exists := nodes[n.Name]; exists {
			return errors.Wrapf(core.ErrDuplicateName, "node '%s'", n.Name)
		}
		nodes[n.Name] = n
		if n.Parent == "" {
			roots++
		}
	}
	switch {
	case roots == 0:
		return errors.WithStack(core.ErrNoRoot)
	case roots > 1:
		return errors.Wrapf(core.ErrMultipleRoots, "%d nodes have no parent", roots)
	}

	for i := range sd.Nodes {
		n := &sd.Nodes[i]
		if n.Parent != "" {
			if _, ok := nodes[n.Parent]; !ok {
				return errors.Wrapf(core.ErrNotFound, "parent '%s' of node '%s'", n.Parent, n.Name)
			}
		}
		if n.Mesh != "" && !meshes[n.Mesh] {
			return errors.Wrapf(core.ErrNotFound, "mesh '%s' of node '%s'", n.Mesh, n.Name)
		}
		if n.Shader != "" && !shaders[n.Shader] {
			return errors.Wrapf(core.ErrNotFound, "shader '%s' of node '%s'", n.Shader, n.Name)
		}
		for field, v := range map[string][]float32{"position": n.Position, "scale": n.Scale} {
			if err := checkVec3(v); err != nil {
				return errors.Wrapf(err, "node '%s' %s", n.Name, field)
			}
		}
		if err := checkRotation(n.Rotation); err != nil {
			return errors.Wrapf(err, "node '%s' rotation", n.Name)
		}
	}

	// with a single root and resolvable parents, any node that cannot reach
	// the root sits on a parent cycle
	for _, n := range nodes {
		steps := 0
		for p := n; p.Parent != ""; p = nodes[p.Parent] {
			steps++
			if steps > len(nodes) {
				return errors.Wrapf(core.ErrNodeCycle, "node '%s'", n.Name)
			}
		}
	}

	for i, a := range sd.Animations {
		if _, ok := nodes[a.Target]; !ok {
			return errors.Wrapf(core.ErrNotFound, "target '%s' of animation %d", a.Target, i)
		}
		if a.Duration <= 0 {
			return errors.Wrapf(core.ErrInvalidDuration, "animation %d of '%s'", i, a.Target)
		}
		for field, v := range map[string][]float32{"position": a.Position, "scale": a.Scale} {
			if err := checkVec3(v); err != nil {
				return errors.Wrapf(err, "animation %d %s", i, field)
			}
		}
		if err := checkRotation(a.Rotation); err != nil {
			return errors.Wrapf(err, "animation %d rotation", i)
		}
	}
	return nil
}

func checkVec3(v []float32) error {
	if len(v) != 0 && len(v) != 3 {
		return errors.Wrapf(core.ErrInvalidConfig, "expected 3 components, got %d", len(v))
	}
	return nil
}

func checkRotation(rd *RotationDescription) error {
	if rd == nil {
		return nil
	}
	return checkVec3(rd.Axis)
}

func toVec3(v []float32, def mgl32.Vec3) (mgl32.Vec3, bool) {
	if len(v) != 3 {
		return def, false
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, true
}
