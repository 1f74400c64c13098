package core

// CompDontCare is the component index of single-lobe primitives
const CompDontCare = -1

// DirectionSample is a sampled outgoing direction.
// Weight is the contribution divided by the sampling density.
type DirectionSample struct {
	Comp   int
	Wo     Vec3
	Weight Vec3
}

// PositionSample is a sampled endpoint position
type PositionSample struct {
	Geom   PointGeometry
	Weight Vec3
}

// ComponentSample is a sampled lobe of a multi-lobe primitive
type ComponentSample struct {
	Comp   int
	Weight Vec3
}

// EndpointSample is a sampled position and direction on a light or a camera.
// For direct sampling Wo points away from the endpoint.
type EndpointSample struct {
	Geom   PointGeometry
	Comp   int
	Wo     Vec3
	Weight Vec3
}
