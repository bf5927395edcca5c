package models

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

func TestRopeDefaults(t *testing.T) {
	s, err := New(NewRope())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	store := s.Store()
	if store.NumPoints() != DefaultRopeSegments {
		t.Errorf("expected %d points, got %d", DefaultRopeSegments, store.NumPoints())
	}
	if store.NumAlive() != DefaultRopeSegments-1 {
		t.Errorf("expected %d sticks, got %d", DefaultRopeSegments-1, store.NumAlive())
	}
	if s.Params().ConstrainMinLength {
		t.Error("rope should only resist stretching")
	}

	anchor, driven := s.Anchor()
	if !driven || anchor != 0 {
		t.Errorf("expected point 0 anchored, got %d (%v)", anchor, driven)
	}

	tip, _ := s.Tip()
	want := float64(DefaultRopeSegments-1) * DefaultRopeSegmentLength
	if math.Abs(tip.Y-want) > 1e-9 {
		t.Errorf("expected tip at y=%f, got %v", want, tip)
	}
}

func TestRopeHangsStill(t *testing.T) {
	s, err := New(NewRope())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		s.Step(0.02)
	}
	if r := s.Residual(); r > 0.02 || !s.Store().IsValid() {
		t.Errorf("hanging rope drifted, residual %f", r)
	}
}

func TestSceneTopology(t *testing.T) {
	tests := []struct {
		scene  Scene
		points int
		sticks int
		locked int
	}{
		{NewEmpty(), 0, 0, 0},
		{&Chain{Links: 5, LinkLength: 1}, 5, 4, 1},
		{&Bridge{Planks: 4, Span: 4}, 5, 4, 2},
		{NewBox(), 4, 6, 0},
		{&Cloth{Cols: 3, Rows: 2, Spacing: 1, Pin: 2}, 6, 7, 2},
	}

	for _, tt := range tests {
		t.Run(tt.scene.Name(), func(t *testing.T) {
			s, err := New(tt.scene)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			snap := s.Snapshot()
			if len(snap.Points) != tt.points || len(snap.Sticks) != tt.sticks {
				t.Errorf("got %d points %d sticks", len(snap.Points), len(snap.Sticks))
			}
			locked := 0
			for _, p := range snap.Points {
				if p.Locked {
					locked++
				}
			}
			if locked != tt.locked {
				t.Errorf("expected %d locked, got %d", tt.locked, locked)
			}
			if len(s.Solver().Order()) != tt.sticks {
				t.Errorf("order array not regenerated: %d", len(s.Solver().Order()))
			}
		})
	}
}

func TestSceneBoundsErrors(t *testing.T) {
	bad := []Scene{
		&Rope{Segments: 1, SegmentLength: 1},
		&Chain{Links: 3, LinkLength: 0},
		&Bridge{Planks: 0, Span: 1},
		&Cloth{Cols: 0, Rows: 1, Spacing: 1},
		&Box{Size: -1},
	}
	for _, sc := range bad {
		if _, err := New(sc); !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("%s: expected ErrParameterBounds, got %v", sc.Name(), err)
		}
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range List() {
		sc, err := Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		if sc.Name() != name {
			t.Errorf("registry name %s built scene %s", name, sc.Name())
		}
	}
	if _, err := Get("trebuchet"); !errors.Is(err, dynamo.ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}
}

func TestBuildWithAutoChain(t *testing.T) {
	p := dynamo.DefaultParams()
	p.AutoChain = true

	s, err := Build(NewBox(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Editor().AutoChain() {
		t.Error("auto-chain should be on after build")
	}
	if got := s.Store().NumAlive(); got != 3 {
		t.Errorf("auto-chain should relink the 4 corners with 3 sticks, got %d", got)
	}
}

func TestLockStopsAtBadHandle(t *testing.T) {
	store := entity.New()
	a := store.AddPoint(dynamo.V(0, 0))
	b := store.AddPoint(dynamo.V(1, 0))

	err := lock(store, a, 7, b)
	if !errors.Is(err, dynamo.ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
	pa, _ := store.Point(a)
	pb, _ := store.Point(b)
	if !pa.Locked || pb.Locked {
		t.Errorf("expected only the point before the bad handle locked, got %v %v", pa.Locked, pb.Locked)
	}

	if err := lock(store, a, b); err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	pb, _ = store.Point(b)
	if !pb.Locked {
		t.Error("second point should be locked")
	}
}

func TestBoxKeepsShapeInFreeFall(t *testing.T) {
	s, err := New(NewBox())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for i := 0; i < 50; i++ {
		s.Step(0.02)
	}
	if r := s.Residual(); r > 1e-3 {
		t.Errorf("box deformed while falling, residual %f", r)
	}
	p, _ := s.Store().Point(0)
	if p.Pos.Y <= 0 {
		t.Errorf("box should fall (+y), got %v", p.Pos)
	}
}
