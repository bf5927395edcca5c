package integrators

import (
	"testing"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

func benchStore(n int) *entity.Store {
	store := entity.New()
	for i := 0; i < n; i++ {
		store.AddPoint(dynamo.V(float64(i)*0.1, 0))
	}
	return store
}

func BenchmarkVerlet_100(b *testing.B) {
	store := benchStore(100)
	integ := NewVerlet(dynamo.Down.Scale(9.8))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(store, 0.016)
	}
}

func BenchmarkVerlet_10000(b *testing.B) {
	store := benchStore(10000)
	integ := NewVerlet(dynamo.Down.Scale(9.8))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(store, 0.016)
	}
}

func BenchmarkDamped_10000(b *testing.B) {
	store := benchStore(10000)
	integ := NewDamped(dynamo.Down.Scale(9.8), 0.99)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(store, 0.016)
	}
}
