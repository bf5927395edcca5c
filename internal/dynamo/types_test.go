package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestVec2_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"zero", Vec2{}, true},
		{"normal", V(1.5, -2), true},
		{"with NaN", V(1, math.NaN()), false},
		{"with +Inf", V(math.Inf(1), 0), false},
		{"with -Inf", V(0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVec2_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	if got := a.Add(b); got != V(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != V(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != V(2, 4) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Dot(b); got != 16 {
		t.Errorf("Dot failed: got %v", got)
	}
	if got := a.Dist(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("Dist failed: got %v", got)
	}
	if got := a.Lerp(b, 0.5); got != V(2.5, 4) {
		t.Errorf("Lerp failed: got %v", got)
	}
}

func TestVec2_Normalized(t *testing.T) {
	n, l := V(3, 4).Normalized()
	if math.Abs(l-5) > 1e-12 {
		t.Errorf("length = %v, want 5", l)
	}
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", n.Len())
	}

	z, l := Vec2{}.Normalized()
	if l != 0 || z != (Vec2{}) {
		t.Errorf("zero vector normalized to %v (len %v)", z, l)
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
		ok     bool
	}{
		{"defaults", func(p *Params) {}, true},
		{"zero passes", func(p *Params) { p.Passes = 0 }, true},
		{"negative passes", func(p *Params) { p.Passes = -1 }, false},
		{"NaN gravity", func(p *Params) { p.Gravity = math.NaN() }, false},
		{"negative pick radius", func(p *Params) { p.PickRadius = -0.1 }, false},
		{"full damping", func(p *Params) { p.Damping = 1 }, true},
		{"damping above one", func(p *Params) { p.Damping = 1.5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestParams_GravityVector(t *testing.T) {
	p := DefaultParams()
	p.Gravity = 2
	if got := p.GravityVector(); got != V(0, 2) {
		t.Errorf("GravityVector() = %v, want (0, 2)", got)
	}
}

func TestEditError_Unwrap(t *testing.T) {
	err := &EditError{Op: "lock", Handle: 7, Wrapped: ErrInvalidHandle}
	if !errors.Is(err, ErrInvalidHandle) {
		t.Error("EditError should unwrap to ErrInvalidHandle")
	}
	if err.Error() != "lock 7: dynamo: invalid handle" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
