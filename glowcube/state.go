package glowcube

// Cube is the part of the cube the animation drives.
type Cube interface {
	SetRotation(rx, ry, rz float32)
	SetScale(sx, sy, sz float32)
}

// Glow is the cube surface whose emissive intensity pulses.
type Glow interface {
	SetEmissiveIntensity(intensity float32)
}

// Orbiter is a light moved around the cube every tick.
type Orbiter interface {
	Position() [3]float32
	SetPosition(x, y, z float32)
}

// Lens is the camera projection kept in step with the surface size.
type Lens interface {
	SetViewport(width, height int)
}

// Output is the render target resized with the window.
type Output interface {
	Resize(width, height int)
}

// State is everything the frame callback and the resize handler mutate. It is owned by
// the application and only ever touched under the engine's frame lock.
type State struct {
	// Time is the elapsed-time accumulator, advanced by TimeStep every tick.
	Time float64
	// Ticks counts calls to Tick.
	Ticks uint64
	// RotationX and RotationY accumulate the cube's rotation in radians.
	RotationX, RotationY float64
	// Scale and Emissive are the last values applied to the cube.
	Scale, Emissive float64
	// Width and Height are the last surface size applied by Resize.
	Width, Height int

	Cube   Cube
	Glow   Glow
	Light1 Orbiter
	Light2 Orbiter
	Camera Lens
	Output Output
}
