package scene

import "errors"

// Precondition errors returned before rendering starts
var (
	ErrMissingPrimitive = errors.New("scene: missing primitives; the scene must contain at least one primitive")
	ErrMissingCamera    = errors.New("scene: missing camera primitive; add a primitive with a camera")
	ErrMissingLight     = errors.New("scene: no light in the scene; add at least one light primitive")
	ErrMissingAccel     = errors.New("scene: missing acceleration structure; set one before building the scene")
	ErrNotBuilt         = errors.New("scene: scene has not been built")
)

// Endpoint conversion errors returned by AsType
var (
	ErrNotLight  = errors.New("scene: primitive is not a light")
	ErrNotCamera = errors.New("scene: primitive is not a camera")
)
