package renderer

import "github.com/spaghettifunk/tangram/engine/renderer/metadata"

// Mesh is a named group of geometries drawn together. It satisfies scene.Mesh.
type Mesh struct {
	name       string
	geometries []*metadata.Geometry
	renderer   *Renderer
}

func NewMesh(r *Renderer, name string, geometries ...*metadata.Geometry) *Mesh {
	return &Mesh{
		name:       name,
		geometries: geometries,
		renderer:   r,
	}
}

func (m *Mesh) ID() string {
	return m.name
}

func (m *Mesh) Geometries() []*metadata.Geometry {
	return m.geometries
}

// Draw issues one draw per geometry, in order.
func (m *Mesh) Draw() {
	for _, g := range m.geometries {
		m.renderer.DrawGeometry(g)
	}
}

// Destroy releases the backend resources of every geometry.
func (m *Mesh) Destroy() {
	for _, g := range m.geometries {
		m.renderer.DestroyGeometry(g)
	}
	m.geometries = nil
}
