package metadata

// Names shared by every shader program the engine creates.
const (
	// CameraBlockName is the uniform block holding the view and projection
	// matrices, bound once per frame before the scene is drawn.
	CameraBlockName    = "Camera"
	CameraBlockBinding = uint32(0)

	ColourUniformName = "objectColor"
)
