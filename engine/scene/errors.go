package scene

import "github.com/spaghettifunk/tangram/engine/core"

// Re-exported so callers of this package can use errors.Is without importing core.
var (
	ErrNilNode         = core.ErrNilNode
	ErrNodeHasParent   = core.ErrNodeHasParent
	ErrNodeCycle       = core.ErrNodeCycle
	ErrNotChild        = core.ErrNotChild
	ErrInvalidDuration = core.ErrInvalidDuration
)
