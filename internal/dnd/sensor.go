package dnd

import "math"

// DefaultActivationDistance is how far the pointer travels before a press
// becomes a drag
const DefaultActivationDistance = 5

// Point is a pointer position in cell coordinates
type Point struct {
	X, Y int
}

// Sensor turns raw pointer presses and motion into drag activation.
// A press only becomes a drag after the pointer has travelled the
// activation distance, so plain clicks stay clicks.
type Sensor struct {
	threshold float64
	pressedAt Point
	itemID    string
	pressed   bool
	active    bool
}

// NewSensor creates a sensor. A non-positive distance uses the default.
func NewSensor(distance int) *Sensor {
	if distance <= 0 {
		distance = DefaultActivationDistance
	}
	return &Sensor{threshold: float64(distance)}
}

// Press records a pointer-down on itemID at p
func (s *Sensor) Press(p Point, itemID string) {
	s.pressedAt = p
	s.itemID = itemID
	s.pressed = true
	s.active = false
}

// Move reports whether this motion activated the drag. It returns true
// exactly once per press.
func (s *Sensor) Move(p Point) bool {
	if !s.pressed || s.active {
		return false
	}
	dx := float64(p.X - s.pressedAt.X)
	dy := float64(p.Y - s.pressedAt.Y)
	if math.Hypot(dx, dy) < s.threshold {
		return false
	}
	s.active = true
	return true
}

// Release ends the press and reports whether it had become a drag
func (s *Sensor) Release() bool {
	wasActive := s.active
	s.pressed = false
	s.active = false
	s.itemID = ""
	return wasActive
}

// Active reports whether a drag is in progress
func (s *Sensor) Active() bool {
	return s.active
}

// Pressed reports whether the pointer is down
func (s *Sensor) Pressed() bool {
	return s.pressed
}

// ItemID is the card under the initial press
func (s *Sensor) ItemID() string {
	return s.itemID
}
