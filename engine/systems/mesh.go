package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/containers"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

// MeshSystem owns every mesh uploaded to the renderer. Nodes only borrow them.
type MeshSystem struct {
	renderer *renderer.Renderer
	meshes   *containers.Manager[string, *renderer.Mesh]
}

func NewMeshSystem(r *renderer.Renderer) (*MeshSystem, error) {
	if r == nil {
		err := fmt.Errorf("func NewMeshSystem - renderer is required: %w", core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	return &MeshSystem{
		renderer: r,
		meshes:   containers.NewManager[string, *renderer.Mesh](),
	}, nil
}

// Shutdown destroys every mesh.
func (ms *MeshSystem) Shutdown() error {
	for mesh := range ms.meshes.All() {
		mesh.Destroy()
	}
	ms.meshes.Clear()
	return nil
}

/**
 * @brief Uploads the given geometry configs and registers a mesh named
 * name made of them. Registering the same name twice keeps both meshes, but
 * lookups keep returning the first one.
 */
func (ms *MeshSystem) CreateFromConfigs(name string, configs ...*metadata.GeometryConfig) (*renderer.Mesh, error) {
	if _, exists := ms.meshes.Get(name); exists {
		core.LogWarn("mesh '%s' is already registered, the new one will be shadowed", name)
	}
	geometries := make([]*metadata.Geometry, 0, len(configs))
	for _, config := range configs {
		g, err := ms.renderer.CreateGeometry(config)
		if err != nil {
			for _, created := range geometries {
				ms.renderer.DestroyGeometry(created)
			}
			return nil, fmt.Errorf("func CreateFromConfigs - mesh '%s': %w", name, err)
		}
		geometries = append(geometries, g)
	}
	mesh := renderer.NewMesh(ms.renderer, name, geometries...)
	ms.meshes.Add(mesh)
	core.LogDebug("mesh '%s' created with %d geometries", name, len(geometries))
	return mesh, nil
}

// CreateShape generates and uploads one of the built-in shapes.
func (ms *MeshSystem) CreateShape(name string, shape Shape, size mgl32.Vec3) (*renderer.Mesh, error) {
	config, err := GenerateShapeConfig(shape, size, name)
	if err != nil {
		return nil, err
	}
	return ms.CreateFromConfigs(name, config)
}

func (ms *MeshSystem) Get(name string) (*renderer.Mesh, bool) {
	return ms.meshes.Get(name)
}

func (ms *MeshSystem) Len() int {
	return ms.meshes.Len()
}
