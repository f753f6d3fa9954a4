package core

import (
	"errors"
)

var (
	// scene graph preconditions
	ErrNilNode         = errors.New("node is nil")
	ErrNodeHasParent   = errors.New("node is already attached to a parent")
	ErrNodeCycle       = errors.New("attaching node would create a cycle")
	ErrNotChild        = errors.New("node is not a child of this node")
	ErrInvalidDuration = errors.New("animation duration must be greater than zero")

	// lookups and scene building
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate name")
	ErrNoRoot        = errors.New("scene has no root node")
	ErrMultipleRoots = errors.New("scene has more than one root node")
	ErrUnknownShape  = errors.New("unknown shape")

	// configuration and assets
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidConfig     = errors.New("invalid configuration")

	ErrUnknown = errors.New("unknown")
)
