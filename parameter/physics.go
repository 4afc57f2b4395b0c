package parameter

import "time"

// Simulation step
const (
	// TickRate is the fixed update frequency of the game loop.
	TickRate     = 60
	TickInterval = time.Second / TickRate

	// MaxFrameTime caps the dt handed to the simulation after a
	// stall, so a debugger pause does not become a physics explosion.
	MaxFrameTime = time.Second / 30

	// Substeps splits each physics step for stabler stacking of
	// small fast bodies.
	Substeps = 2

	VelocityIterations = 8
	PositionIterations = 3
)

// Bodies
const (
	// Restitution applies to every dynamic circle in the arena.
	Restitution = 0.5

	// LinearDamping bleeds residual speed so launched bodies settle.
	LinearDamping = 0.4

	// BodyDensity sets circle mass; the launch impulse is tuned
	// against it, so changing one means retuning the other.
	BodyDensity = 25.0
	Friction    = 0.1

	Gravity = 0.0
)

// Classifier
const (
	// MaxParentHops bounds the walk from a contacted collider up to
	// its body-bearing ancestor. Anything deeper is treated as
	// unresolvable and the contact is dropped.
	MaxParentHops = 8
)
