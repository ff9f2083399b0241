package game

// Frame timing.
const (
	MaxFrameDt     = 0.1  // longer frames (window drag, breakpoints) are clamped
	TitleInterval  = 0.25 // seconds between window title refreshes
	ImpactMinSpeed = 0.6  // slower contacts stay silent
)

// Render buffers.
const (
	MaxParticleRender = 8192
	MaxLineVerts      = 65536
	PivotRadius       = 4.0
	SurfaceChunkSize  = 512 // track surface texture slice, in texels
)

// Spatial index.
const (
	QuadCapacity = 8
	QuadMaxDepth = 6
)

// Player car texture (texels). The sprite is stretched to the body size.
const (
	CarTexW = 16
	CarTexH = 8
)

// Camera shake on impacts.
const (
	ShakePerSpeed = 0.8
	ShakeMax      = 6.0
	ShakeDuration = 0.18
)
