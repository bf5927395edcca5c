package entity

import "github.com/san-kum/sticksim/internal/dynamo"

// PointView is the read-only render view of a point.
type PointView struct {
	ID     dynamo.PointID
	Pos    dynamo.Vec2
	Locked bool
}

// StickView is the read-only render view of a live stick.
type StickView struct {
	ID       dynamo.StickID
	A, B     dynamo.PointID
	From, To dynamo.Vec2
	Length   float64
}

// Stretch is the signed relative deviation from rest length.
func (v StickView) Stretch() float64 {
	if v.Length == 0 {
		return 0
	}
	return (v.From.Dist(v.To) - v.Length) / v.Length
}

// Snapshot is a detached copy of the store, safe to hold across steps.
type Snapshot struct {
	Points []PointView
	Sticks []StickView
}

func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Points: make([]PointView, len(s.points)),
		Sticks: make([]StickView, 0, len(s.sticks)),
	}
	for i, p := range s.points {
		snap.Points[i] = PointView{ID: dynamo.PointID(i), Pos: p.Pos, Locked: p.Locked}
	}
	for i, st := range s.sticks {
		if !st.Alive {
			continue
		}
		snap.Sticks = append(snap.Sticks, StickView{
			ID:     dynamo.StickID(i),
			A:      st.A,
			B:      st.B,
			From:   s.points[st.A].Pos,
			To:     s.points[st.B].Pos,
			Length: st.Length,
		})
	}
	return snap
}

// Bounds returns the axis-aligned box around every point. ok is false for an
// empty snapshot.
func (s Snapshot) Bounds() (min, max dynamo.Vec2, ok bool) {
	if len(s.Points) == 0 {
		return min, max, false
	}
	min, max = s.Points[0].Pos, s.Points[0].Pos
	for _, p := range s.Points[1:] {
		if p.Pos.X < min.X {
			min.X = p.Pos.X
		}
		if p.Pos.Y < min.Y {
			min.Y = p.Pos.Y
		}
		if p.Pos.X > max.X {
			max.X = p.Pos.X
		}
		if p.Pos.Y > max.Y {
			max.Y = p.Pos.Y
		}
	}
	return min, max, true
}
