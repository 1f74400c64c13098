package scene

import (
	"github.com/df07/go-lighttransport/pkg/camera"
	"github.com/df07/go-lighttransport/pkg/core"
)

// InteractionType discriminates the variants of SceneInteraction
type InteractionType int

const (
	SurfaceInteraction InteractionType = iota
	MediumInteraction
	CameraEndpoint
	LightEndpoint
	EnvironmentEndpoint
)

func (t InteractionType) String() string {
	switch t {
	case SurfaceInteraction:
		return "surface"
	case MediumInteraction:
		return "medium"
	case CameraEndpoint:
		return "camera"
	case LightEndpoint:
		return "light"
	case EnvironmentEndpoint:
		return "environment"
	default:
		return "unknown"
	}
}

// TerminatorType marks an endpoint whose position has not been sampled yet
type TerminatorType int

const (
	NoTerminator TerminatorType = iota
	CameraTerminator
	LightTerminator
)

// SceneInteraction is a point where a path interacts with the scene.
//
// Terminators are path origins: a camera terminator carries the raster window that
// primary rays are sampled in, a light terminator asks for a light emission ray.
// Window and Aspect are also carried by camera endpoints so that direction sampling
// from a sampled camera position knows the image shape.
type SceneInteraction struct {
	Type       InteractionType
	Primitive  int
	Geom       core.PointGeometry
	Terminator TerminatorType
	Window     camera.Window
	Aspect     float64
}

// NewCameraTerminator creates a camera path origin sampling rays inside window
func NewCameraTerminator(window camera.Window, aspect float64) SceneInteraction {
	return SceneInteraction{Type: CameraEndpoint, Primitive: -1, Terminator: CameraTerminator, Window: window, Aspect: aspect}
}

// NewLightTerminator creates a light path origin
func NewLightTerminator() SceneInteraction {
	return SceneInteraction{Type: LightEndpoint, Primitive: -1, Terminator: LightTerminator}
}

// NewSurfaceInteraction creates a surface hit on a primitive
func NewSurfaceInteraction(primitive int, geom core.PointGeometry) SceneInteraction {
	return SceneInteraction{Type: SurfaceInteraction, Primitive: primitive, Geom: geom}
}

// NewMediumInteraction creates a scattering event inside a medium primitive
func NewMediumInteraction(primitive int, geom core.PointGeometry) SceneInteraction {
	return SceneInteraction{Type: MediumInteraction, Primitive: primitive, Geom: geom}
}

// NewCameraEndpoint creates an endpoint on a camera primitive
func NewCameraEndpoint(primitive int, geom core.PointGeometry, window camera.Window, aspect float64) SceneInteraction {
	return SceneInteraction{Type: CameraEndpoint, Primitive: primitive, Geom: geom, Window: window, Aspect: aspect}
}

// NewLightEndpoint creates an endpoint on a light primitive
func NewLightEndpoint(primitive int, geom core.PointGeometry) SceneInteraction {
	return SceneInteraction{Type: LightEndpoint, Primitive: primitive, Geom: geom}
}

// NewEnvironmentEndpoint creates an endpoint on the environment light
func NewEnvironmentEndpoint(primitive int, geom core.PointGeometry) SceneInteraction {
	return SceneInteraction{Type: EnvironmentEndpoint, Primitive: primitive, Geom: geom}
}

// IsTerminator reports whether sp is an unsampled path origin
func (sp SceneInteraction) IsTerminator() bool {
	return sp.Terminator != NoTerminator
}

// RaySample is a sampled interaction with an outgoing direction.
// Weight is the contribution divided by the sampling probability.
type RaySample struct {
	SP     SceneInteraction
	Comp   int
	Wo     core.Vec3
	Weight core.Vec3
}

// Ray returns the ray leaving the sampled interaction
func (s RaySample) Ray() core.Ray {
	return core.NewRay(s.SP.Geom.P, s.Wo)
}

// PositionSample is a sampled endpoint position
type PositionSample struct {
	SP     SceneInteraction
	Weight core.Vec3
}

// DistanceSample is the next interaction along a ray, either a medium event or a surface.
// No density is exposed; Weight already carries transmittance over density.
type DistanceSample struct {
	SP     SceneInteraction
	Weight core.Vec3
}
