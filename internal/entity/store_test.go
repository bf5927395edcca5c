package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sticksim/internal/dynamo"
)

func TestStoreAddPoint(t *testing.T) {
	s := New()
	a := s.AddPoint(dynamo.V(1, 2))
	b := s.AddPoint(dynamo.V(3, 4))

	if a != 0 || b != 1 {
		t.Errorf("expected handles 0,1 got %d,%d", a, b)
	}

	p, err := s.Point(b)
	if err != nil {
		t.Fatalf("point lookup failed: %v", err)
	}
	if p.Pos != p.Prev {
		t.Errorf("new point should have zero velocity, pos=%v prev=%v", p.Pos, p.Prev)
	}
	if p.Locked {
		t.Error("new point should be free")
	}
}

func TestStoreAddStickRestLength(t *testing.T) {
	s := New()
	a := s.AddPoint(dynamo.V(0, 0))
	b := s.AddPoint(dynamo.V(0, 3))

	id, err := s.AddStick(a, b)
	if err != nil {
		t.Fatalf("add stick failed: %v", err)
	}

	st, _ := s.Stick(id)
	if math.Abs(st.Length-3) > 1e-12 {
		t.Errorf("expected rest length 3, got %f", st.Length)
	}
	if !st.Alive {
		t.Error("new stick should be alive")
	}
}

func TestStoreAddStickErrors(t *testing.T) {
	s := New()
	a := s.AddPoint(dynamo.V(0, 0))

	tests := []struct {
		name string
		a, b dynamo.PointID
		want error
	}{
		{"self loop", a, a, dynamo.ErrSelfLoop},
		{"unknown b", a, 5, dynamo.ErrInvalidHandle},
		{"negative a", -1, a, dynamo.ErrInvalidHandle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddStick(tt.a, tt.b)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if s.NumSticks() != 0 {
				t.Errorf("stick count changed to %d", s.NumSticks())
			}
		})
	}
}

func TestStoreToggleLock(t *testing.T) {
	s := New()
	a := s.AddPoint(dynamo.V(0, 0))

	locked, err := s.ToggleLock(a)
	if err != nil || !locked {
		t.Fatalf("expected locked=true, got %v (%v)", locked, err)
	}
	locked, _ = s.ToggleLock(a)
	if locked {
		t.Error("second toggle should unlock")
	}

	if _, err := s.ToggleLock(9); !errors.Is(err, dynamo.ErrInvalidHandle) {
		t.Errorf("expected ErrInvalidHandle, got %v", err)
	}
}

func TestStoreRemoveStick(t *testing.T) {
	s := New()
	a := s.AddPoint(dynamo.V(0, 0))
	b := s.AddPoint(dynamo.V(1, 0))
	c := s.AddPoint(dynamo.V(2, 0))
	s1, _ := s.AddStick(a, b)
	s2, _ := s.AddStick(b, c)

	if err := s.RemoveStick(s1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if s.NumSticks() != 2 || s.NumAlive() != 1 {
		t.Errorf("expected 2 slots / 1 alive, got %d / %d", s.NumSticks(), s.NumAlive())
	}
	if !s.ValidStick(s2) {
		t.Error("remaining stick handle should stay valid")
	}
	if err := s.RemoveStick(s1); !errors.Is(err, dynamo.ErrInvalidHandle) {
		t.Errorf("double remove should fail with ErrInvalidHandle, got %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Sticks) != 1 || snap.Sticks[0].ID != s2 {
		t.Errorf("snapshot should only carry live sticks, got %+v", snap.Sticks)
	}
}

func TestStoreClear(t *testing.T) {
	s := New()
	a := s.AddPoint(dynamo.V(0, 0))
	b := s.AddPoint(dynamo.V(1, 0))
	s.AddStick(a, b)

	s.Clear()

	if s.NumPoints() != 0 || s.NumSticks() != 0 {
		t.Errorf("expected empty store, got %d points %d sticks", s.NumPoints(), s.NumSticks())
	}
	if s.Valid(a) {
		t.Error("handles should be invalid after clear")
	}
}

func TestStoreSetPositionKeepsPrev(t *testing.T) {
	s := New()
	a := s.AddPoint(dynamo.V(0, 0))

	s.SetPosition(a, dynamo.V(1, 0))
	p, _ := s.Point(a)
	if p.Prev != dynamo.V(0, 0) || p.Pos != dynamo.V(1, 0) {
		t.Errorf("SetPosition: got pos=%v prev=%v", p.Pos, p.Prev)
	}

	s.Teleport(a, dynamo.V(5, 5))
	p, _ = s.Point(a)
	if p.Prev != p.Pos {
		t.Errorf("Teleport should zero velocity, got pos=%v prev=%v", p.Pos, p.Prev)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := New()
	a := s.AddPoint(dynamo.V(0, 0))
	b := s.AddPoint(dynamo.V(0, 2))
	s.AddStick(a, b)

	snap := s.Snapshot()
	s.SetPosition(b, dynamo.V(0, 4))

	if snap.Points[1].Pos != dynamo.V(0, 2) {
		t.Errorf("snapshot changed after mutation: %v", snap.Points[1].Pos)
	}
	if got := snap.Sticks[0].Stretch(); got != 0 {
		t.Errorf("expected zero stretch, got %f", got)
	}

	snap = s.Snapshot()
	if got := snap.Sticks[0].Stretch(); math.Abs(got-1) > 1e-12 {
		t.Errorf("expected stretch 1.0, got %f", got)
	}
}

func TestSnapshotBounds(t *testing.T) {
	s := New()
	if _, _, ok := s.Snapshot().Bounds(); ok {
		t.Error("empty snapshot should report no bounds")
	}

	s.AddPoint(dynamo.V(-1, 2))
	s.AddPoint(dynamo.V(3, -4))
	min, max, ok := s.Snapshot().Bounds()
	if !ok || min != dynamo.V(-1, -4) || max != dynamo.V(3, 2) {
		t.Errorf("bounds = %v..%v (%v)", min, max, ok)
	}
}
