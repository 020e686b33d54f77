package components

// Position represents a prop's screen position (top-left corner).
type Position struct {
	X, Y float32
}

// Velocity represents a prop's velocity in pixels per second.
type Velocity struct {
	X, Y float32
}
