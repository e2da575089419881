package core

// RuntimeConfig is passed to a device when it starts. It carries the display
// size and the RNG seed for reproducible rolls.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Housekeeping ticks per second
	Seed     int64  // RNG seed; 0 means seed from the current time
	DeviceID string // Key for persisted settings and statistics
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 4,
		Seed:     0,
		DeviceID: "local",
	}
}
