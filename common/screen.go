package common

const (
	BaseWidth  = 640
	BaseHeight = 480

	// TicksPerSecond is the fixed host update rate.
	TicksPerSecond = 60
)
