package entity

import (
	"github.com/san-kum/sticksim/internal/dynamo"
)

// Point is a Verlet particle. Velocity is implied by Pos - Prev.
type Point struct {
	Pos    dynamo.Vec2
	Prev   dynamo.Vec2
	Locked bool
}

// Stick is a distance constraint between two points. Length is the rest
// length measured when the stick was created.
type Stick struct {
	A, B   dynamo.PointID
	Length float64
	Alive  bool
}

// Store owns the point and stick arenas. Handles index directly into the
// arenas and stay valid until Clear (sticks also until ClearSticks).
type Store struct {
	points []Point
	sticks []Stick
}

func New() *Store {
	return &Store{
		points: make([]Point, 0),
		sticks: make([]Stick, 0),
	}
}

func (s *Store) NumPoints() int { return len(s.points) }
func (s *Store) NumSticks() int { return len(s.sticks) }

// NumAlive counts sticks that have not been removed.
func (s *Store) NumAlive() int {
	n := 0
	for i := range s.sticks {
		if s.sticks[i].Alive {
			n++
		}
	}
	return n
}

func (s *Store) Valid(id dynamo.PointID) bool {
	return id >= 0 && int(id) < len(s.points)
}

func (s *Store) ValidStick(id dynamo.StickID) bool {
	return id >= 0 && int(id) < len(s.sticks) && s.sticks[id].Alive
}

// AddPoint places a point at rest: both current and previous positions are pos.
func (s *Store) AddPoint(pos dynamo.Vec2) dynamo.PointID {
	s.points = append(s.points, Point{Pos: pos, Prev: pos})
	return dynamo.PointID(len(s.points) - 1)
}

// AddStick connects a and b with a rest length equal to their current distance.
func (s *Store) AddStick(a, b dynamo.PointID) (dynamo.StickID, error) {
	if !s.Valid(a) {
		return -1, &dynamo.EditError{Op: "add stick", Handle: int(a), Wrapped: dynamo.ErrInvalidHandle}
	}
	if !s.Valid(b) {
		return -1, &dynamo.EditError{Op: "add stick", Handle: int(b), Wrapped: dynamo.ErrInvalidHandle}
	}
	if a == b {
		return -1, &dynamo.EditError{Op: "add stick", Handle: int(a), Wrapped: dynamo.ErrSelfLoop}
	}

	s.sticks = append(s.sticks, Stick{
		A:      a,
		B:      b,
		Length: s.points[a].Pos.Dist(s.points[b].Pos),
		Alive:  true,
	})
	return dynamo.StickID(len(s.sticks) - 1), nil
}

// RemoveStick marks a stick dead. Its slot is kept so other handles stay valid.
func (s *Store) RemoveStick(id dynamo.StickID) error {
	if !s.ValidStick(id) {
		return &dynamo.EditError{Op: "remove stick", Handle: int(id), Wrapped: dynamo.ErrInvalidHandle}
	}
	s.sticks[id].Alive = false
	return nil
}

// ToggleLock flips the locked flag and returns the new value.
func (s *Store) ToggleLock(id dynamo.PointID) (bool, error) {
	if !s.Valid(id) {
		return false, &dynamo.EditError{Op: "toggle lock", Handle: int(id), Wrapped: dynamo.ErrInvalidHandle}
	}
	s.points[id].Locked = !s.points[id].Locked
	return s.points[id].Locked, nil
}

func (s *Store) SetLocked(id dynamo.PointID, locked bool) error {
	if !s.Valid(id) {
		return &dynamo.EditError{Op: "set lock", Handle: int(id), Wrapped: dynamo.ErrInvalidHandle}
	}
	s.points[id].Locked = locked
	return nil
}

// SetPosition moves the current position only, leaving Prev untouched, so a
// free point picks up the implied velocity on the next integration.
func (s *Store) SetPosition(id dynamo.PointID, pos dynamo.Vec2) error {
	if !s.Valid(id) {
		return &dynamo.EditError{Op: "set position", Handle: int(id), Wrapped: dynamo.ErrInvalidHandle}
	}
	s.points[id].Pos = pos
	return nil
}

// Teleport moves a point and zeroes its implied velocity.
func (s *Store) Teleport(id dynamo.PointID, pos dynamo.Vec2) error {
	if !s.Valid(id) {
		return &dynamo.EditError{Op: "teleport", Handle: int(id), Wrapped: dynamo.ErrInvalidHandle}
	}
	s.points[id].Pos = pos
	s.points[id].Prev = pos
	return nil
}

func (s *Store) Point(id dynamo.PointID) (Point, error) {
	if !s.Valid(id) {
		return Point{}, &dynamo.EditError{Op: "point", Handle: int(id), Wrapped: dynamo.ErrInvalidHandle}
	}
	return s.points[id], nil
}

func (s *Store) Stick(id dynamo.StickID) (Stick, error) {
	if id < 0 || int(id) >= len(s.sticks) {
		return Stick{}, &dynamo.EditError{Op: "stick", Handle: int(id), Wrapped: dynamo.ErrInvalidHandle}
	}
	return s.sticks[id], nil
}

// At returns a pointer into the point arena for in-place mutation by the
// integrator and solver. The pointer is invalidated by AddPoint and Clear.
func (s *Store) At(id dynamo.PointID) *Point {
	return &s.points[id]
}

// StickAt returns a pointer into the stick arena.
func (s *Store) StickAt(id dynamo.StickID) *Stick {
	return &s.sticks[id]
}

// Clear empties both arenas. Every outstanding handle becomes invalid.
func (s *Store) Clear() {
	s.points = s.points[:0]
	s.sticks = s.sticks[:0]
}

// ClearSticks drops every stick and keeps the points.
func (s *Store) ClearSticks() {
	s.sticks = s.sticks[:0]
}

// IsValid reports whether every point position is finite.
func (s *Store) IsValid() bool {
	for i := range s.points {
		if !s.points[i].Pos.IsValid() {
			return false
		}
	}
	return true
}
