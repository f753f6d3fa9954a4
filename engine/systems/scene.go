package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/assets/loaders"
	"github.com/spaghettifunk/tangram/engine/containers"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
	"github.com/spaghettifunk/tangram/engine/scene"
)

// SceneSystem builds a scene graph from a description and drives it every
// frame: animations first, then the draw traversal.
type SceneSystem struct {
	renderer *renderer.Renderer
	meshes   *MeshSystem
	shaders  *ShaderSystem
	cameras  *CameraSystem

	name  string
	root  *scene.Node
	nodes *containers.Registry[string, *scene.Node]

	animations *scene.AnimationGroup
	rewind     bool

	// program bound during the current Draw
	bound            *renderer.ShaderProgram
	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
}

func NewSceneSystem(r *renderer.Renderer, ms *MeshSystem, ss *ShaderSystem, cs *CameraSystem) (*SceneSystem, error) {
	if r == nil || ms == nil || ss == nil || cs == nil {
		err := fmt.Errorf("func NewSceneSystem - renderer, mesh, shader and camera systems are required: %w", core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	return &SceneSystem{
		renderer:   r,
		meshes:     ms,
		shaders:    ss,
		cameras:    cs,
		nodes:      containers.NewRegistry[string, *scene.Node](),
		animations: scene.NewAnimationGroup(),
	}, nil
}

func (s *SceneSystem) Shutdown() error {
	s.Unload()
	return nil
}

/**
 * @brief Replaces the current scene with the one described by desc.
 * The description is validated and every geometry is generated before the
 * current scene is unloaded, so a broken description leaves it untouched.
 */
func (s *SceneSystem) Load(desc *loaders.SceneDescription) error {
	if desc == nil {
		return fmt.Errorf("func Load - scene description is nil: %w", core.ErrInvalidConfig)
	}
	if err := desc.Validate(); err != nil {
		return err
	}
	geometries := make(map[string]*metadata.GeometryConfig, len(desc.Meshes))
	for _, m := range desc.Meshes {
		config, err := GenerateShapeConfig(Shape(m.Shape), m.SizeVec3(), m.Name)
		if err != nil {
			return fmt.Errorf("func Load - mesh '%s': %w", m.Name, err)
		}
		geometries[m.Name] = config
	}

	s.Unload()

	if err := s.build(desc, geometries); err != nil {
		s.Unload()
		return err
	}
	s.name = desc.Name
	core.LogInfo("scene '%s' loaded: %d nodes, %d meshes, %d shaders, %d animations",
		s.name, s.nodes.Len(), s.meshes.Len(), s.shaders.Len(), s.animations.Len())
	return nil
}

func (s *SceneSystem) build(desc *loaders.SceneDescription, geometries map[string]*metadata.GeometryConfig) error {
	for i := range desc.Shaders {
		if _, err := s.shaders.CreateShader(&desc.Shaders[i]); err != nil {
			return err
		}
	}
	for _, m := range desc.Meshes {
		if _, err := s.meshes.CreateFromConfigs(m.Name, geometries[m.Name]); err != nil {
			return err
		}
	}

	for i := range desc.Nodes {
		nd := &desc.Nodes[i]
		var mesh scene.Mesh
		if m, ok := s.meshes.Get(nd.Mesh); ok {
			mesh = m
		}
		var program scene.ShaderProgram
		if nd.Shader != "" {
			sp, err := s.shaders.GetShader(nd.Shader)
			if err != nil {
				return err
			}
			program = sp
		}
		node := scene.NewNode(nd.Name, mesh, program)
		node.SetPosition(nd.PositionVec3())
		node.SetRotation(nd.Rotation.Quat())
		node.SetScale(nd.ScaleVec3())
		node.PreDraw = s.bindProgram
		s.nodes.Add(node.Name(), node)
	}

	// attach in description order so siblings keep that order
	for i := range desc.Nodes {
		nd := &desc.Nodes[i]
		node, _ := s.nodes.Get(nd.Name)
		if nd.Parent == "" {
			s.root = node
			continue
		}
		parent, _ := s.nodes.Get(nd.Parent)
		if err := parent.AddChild(node); err != nil {
			return err
		}
	}

	for _, ad := range desc.Animations {
		target, ok := s.nodes.Get(ad.Target)
		if !ok {
			return fmt.Errorf("func Load - animation target '%s': %w", ad.Target, core.ErrNotFound)
		}
		position, scale, rotation := ad.Final(target.Translation(), target.Scale(), target.Orientation())
		anim, err := scene.NewAnimation(target, ad.Duration, position, scale, rotation)
		if err != nil {
			return err
		}
		s.animations.Add(anim)
	}
	return nil
}

// Unload drops the node tree and animations and releases the meshes and
// shaders the scene created.
func (s *SceneSystem) Unload() {
	s.root = nil
	s.nodes.Clear()
	s.animations.Clear()
	s.rewind = false
	s.name = ""
	_ = s.meshes.Shutdown()
	_ = s.shaders.Shutdown()
}

func (s *SceneSystem) Name() string {
	return s.name
}

func (s *SceneSystem) Root() *scene.Node {
	return s.root
}

// Node looks a node up by name.
func (s *SceneSystem) Node(name string) (*scene.Node, bool) {
	return s.nodes.Get(name)
}

func (s *SceneSystem) Animations() *scene.AnimationGroup {
	return s.animations
}

// Update advances every animation by deltaTime seconds in the current direction.
func (s *SceneSystem) Update(deltaTime float64) {
	s.animations.Play(deltaTime, s.rewind)
}

// ToggleDirection flips between playing forward and rewinding.
func (s *SceneSystem) ToggleDirection() {
	s.rewind = !s.rewind
}

func (s *SceneSystem) Rewinding() bool {
	return s.rewind
}

// AnimationsDone reports whether every animation reached the end it is heading to.
func (s *SceneSystem) AnimationsDone() bool {
	return s.animations.Done(s.rewind)
}

// Draw traverses the scene with the default camera. It must run between
// the renderer's BeginFrame and EndFrame.
func (s *SceneSystem) Draw() error {
	if s.root == nil {
		return nil
	}
	camera := s.cameras.GetDefault()
	s.viewMatrix = camera.View()
	s.projectionMatrix = camera.Projection()

	s.root.DrawSceneGraph(mgl32.Ident4())

	if s.bound != nil {
		s.bound.Unbind()
		s.bound = nil
	}
	return nil
}

// bindProgram runs before every node is drawn. It switches programs only
// when the node resolves to a different one than the last drawn node, and
// uploads the camera block each time it does.
func (s *SceneSystem) bindProgram(n *scene.Node) {
	if n.Mesh() == nil {
		return
	}
	sp, ok := n.GetShaderProgram().(*renderer.ShaderProgram)
	if !ok || sp == s.bound {
		return
	}
	if s.bound != nil {
		s.bound.Unbind()
	}
	sp.Bind()
	s.bound = sp
	if err := s.renderer.SetCamera(sp, s.viewMatrix, s.projectionMatrix); err != nil {
		core.LogError("failed to upload camera for shader '%s': %s", sp.ID(), err)
	}
}
