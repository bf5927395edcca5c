package sim_test

import (
	"math"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/editor"
	"github.com/san-kum/sticksim/internal/sim"
)

func newSim(mutate func(p *dynamo.Params)) *sim.Simulation {
	p := dynamo.DefaultParams()
	if mutate != nil {
		mutate(&p)
	}
	s, err := sim.New(p)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func addPoints(s *sim.Simulation, pts ...dynamo.Vec2) {
	for _, pt := range pts {
		Expect(s.Apply(editor.AddPoint{Pos: pt})).To(Succeed())
	}
}

func distance(s *sim.Simulation, a, b dynamo.PointID) float64 {
	snap := s.Snapshot()
	return snap.Points[a].Pos.Dist(snap.Points[b].Pos)
}

var _ = Describe("Simulation", func() {
	Describe("integration", func() {
		It("keeps resting points still without gravity", func() {
			s := newSim(func(p *dynamo.Params) { p.Gravity = 0 })
			addPoints(s, dynamo.V(1, 1), dynamo.V(-2, 4))

			for i := 0; i < 50; i++ {
				s.Step(0.016)
			}

			snap := s.Snapshot()
			Expect(snap.Points[0].Pos).To(Equal(dynamo.V(1, 1)))
			Expect(snap.Points[1].Pos).To(Equal(dynamo.V(-2, 4)))
		})

		It("pulls a free point down by g*dt² on the first step", func() {
			s := newSim(func(p *dynamo.Params) { p.Gravity = 1 })
			addPoints(s, dynamo.V(0, 0))

			s.Step(1)

			Expect(s.Snapshot().Points[0].Pos).To(Equal(dynamo.V(0, 1)))
		})

		It("never moves locked points", func() {
			s := newSim(nil)
			addPoints(s, dynamo.V(0, 0), dynamo.V(0, 1), dynamo.V(0, 2))
			Expect(s.Apply(editor.SetAutoChain{On: true})).To(Succeed())
			Expect(s.Apply(editor.ToggleLock{ID: 0})).To(Succeed())
			Expect(s.Apply(editor.ToggleLock{ID: 2})).To(Succeed())

			for i := 0; i < 200; i++ {
				s.Step(0.02)
				snap := s.Snapshot()
				Expect(snap.Points[0].Pos).To(Equal(dynamo.V(0, 0)))
				Expect(snap.Points[2].Pos).To(Equal(dynamo.V(0, 2)))
			}
		})
	})

	Describe("constraint relaxation", func() {
		It("restores a stretched stick to within 1e-3 of rest length", func() {
			s := newSim(func(p *dynamo.Params) {
				p.Gravity = 0
				p.Passes = 50
				p.ConstrainMinLength = true
			})
			addPoints(s, dynamo.V(0, 0), dynamo.V(0, 3))
			Expect(s.Apply(editor.AddStick{A: 0, B: 1})).To(Succeed())

			Expect(s.Store().Teleport(1, dynamo.V(0, 5))).To(Succeed())
			s.Solver().Solve(s.Store())

			Expect(distance(s, 0, 1)).To(BeNumerically("~", 3.0, 1e-3))
		})

		It("does not increase the error as passes are added", func() {
			s := newSim(func(p *dynamo.Params) { p.Gravity = 0 })
			addPoints(s, dynamo.V(0, 0), dynamo.V(2, 0))
			Expect(s.Apply(editor.AddStick{A: 0, B: 1})).To(Succeed())
			Expect(s.Store().Teleport(1, dynamo.V(7, 3))).To(Succeed())

			prev := math.Abs(distance(s, 0, 1) - 2)
			for pass := 0; pass < 10; pass++ {
				s.Solver().Relax(s.Store())
				e := math.Abs(distance(s, 0, 1) - 2)
				Expect(e).To(BeNumerically("<=", prev+1e-12))
				prev = e
			}
		})
	})

	Describe("topology edits", func() {
		It("keeps the order array a permutation sized to the stick count", func() {
			s := newSim(nil)
			addPoints(s, dynamo.V(0, 0), dynamo.V(1, 0), dynamo.V(2, 0), dynamo.V(3, 0))

			for i := 0; i < 3; i++ {
				Expect(s.Apply(editor.AddStick{A: dynamo.PointID(i), B: dynamo.PointID(i + 1)})).To(Succeed())
				order := s.Solver().Order()
				Expect(order).To(HaveLen(i + 1))
				sort.Ints(order)
				for j, v := range order {
					Expect(v).To(Equal(j))
				}
			}
		})

		DescribeTable("auto-chain stick count",
			func(n, want int) {
				s := newSim(nil)
				for i := 0; i < n; i++ {
					addPoints(s, dynamo.V(float64(i), 0))
				}
				Expect(s.Apply(editor.SetAutoChain{On: true})).To(Succeed())

				snap := s.Snapshot()
				Expect(snap.Sticks).To(HaveLen(want))
				for i, st := range snap.Sticks {
					Expect(st.A).To(Equal(dynamo.PointID(i)))
					Expect(st.B).To(Equal(dynamo.PointID(i + 1)))
				}
			},
			Entry("no points", 0, 0),
			Entry("one point", 1, 0),
			Entry("five points", 5, 4),
		)

		It("rejects a self-loop without changing the stick count", func() {
			s := newSim(nil)
			addPoints(s, dynamo.V(0, 0), dynamo.V(1, 0))

			Expect(s.Apply(editor.BeginStick{From: 1})).To(Succeed())
			err := s.Apply(editor.EndStick{To: 1})

			Expect(err).To(MatchError(dynamo.ErrSelfLoop))
			Expect(s.Snapshot().Sticks).To(BeEmpty())
		})

		It("reports unknown handles to the caller", func() {
			s := newSim(nil)
			addPoints(s, dynamo.V(0, 0))

			Expect(s.Apply(editor.ToggleLock{ID: 3})).To(MatchError(dynamo.ErrInvalidHandle))
			Expect(s.Apply(editor.BeginStick{From: -1})).To(MatchError(dynamo.ErrInvalidHandle))
		})

		It("drops the anchor when the scene is cleared", func() {
			s := newSim(nil)
			addPoints(s, dynamo.V(0, 0))
			Expect(s.SetAnchor(0)).To(Succeed())

			Expect(s.Apply(editor.Clear{})).To(Succeed())

			_, ok := s.Anchor()
			Expect(ok).To(BeFalse())
			Expect(s.Snapshot().Points).To(BeEmpty())
			Expect(func() { s.Step(0.016) }).NotTo(Panic())
		})
	})

	Describe("anchor", func() {
		It("pins the anchor to the driver before relaxing", func() {
			s := newSim(func(p *dynamo.Params) { p.ConstrainMinLength = false })
			for i := 0; i < 10; i++ {
				addPoints(s, dynamo.V(0, float64(i)*0.25))
			}
			Expect(s.Apply(editor.SetAutoChain{On: true})).To(Succeed())
			Expect(s.SetAnchor(0)).To(Succeed())

			s.SetDriver(dynamo.V(2, 0))
			for i := 0; i < 5; i++ {
				s.Step(0.02)
			}

			snap := s.Snapshot()
			Expect(snap.Points[0].Pos).To(Equal(dynamo.V(2, 0)))
			Expect(snap.Points[0].Locked).To(BeTrue())
			Expect(distance(s, 0, 1)).To(BeNumerically("<=", 0.25+1e-2))
		})

		It("stops driving an anchor once it is unlocked", func() {
			s := newSim(nil)
			addPoints(s, dynamo.V(0, 0), dynamo.V(1, 0))
			Expect(s.Apply(editor.AddStick{A: 0, B: 1})).To(Succeed())
			Expect(s.SetAnchor(0)).To(Succeed())

			Expect(s.Apply(editor.ToggleLock{ID: 0})).To(Succeed())
			_, driven := s.Anchor()
			Expect(driven).To(BeFalse())

			s.SetDriver(dynamo.V(5, 5))
			for i := 0; i < 20; i++ {
				s.Step(0.02)
			}
			snap := s.Snapshot()
			Expect(snap.Points[0].Locked).To(BeFalse())
			Expect(snap.Points[0].Pos).NotTo(Equal(dynamo.V(5, 5)))
			Expect(snap.Points[0].Pos.Y).To(BeNumerically(">", 0))
		})

		It("keeps driving the anchor through unrelated edits", func() {
			s := newSim(nil)
			addPoints(s, dynamo.V(0, 0), dynamo.V(1, 0))
			Expect(s.SetAnchor(0)).To(Succeed())
			Expect(s.Apply(editor.ToggleLock{ID: 1})).To(Succeed())

			id, driven := s.Anchor()
			Expect(driven).To(BeTrue())
			Expect(id).To(Equal(dynamo.PointID(0)))
		})
	})

	Describe("frame gating", func() {
		It("only advances while simulating", func() {
			s := newSim(nil)
			addPoints(s, dynamo.V(0, 0))

			Expect(s.Frame(0.1)).To(BeFalse())
			Expect(s.Snapshot().Points[0].Pos).To(Equal(dynamo.V(0, 0)))

			Expect(s.ToggleSimulating()).To(BeTrue())
			Expect(s.Frame(0.1)).To(BeTrue())
			Expect(s.Snapshot().Points[0].Pos.Y).To(BeNumerically(">", 0))
			Expect(s.Steps()).To(Equal(1))
		})
	})

	Describe("parameters", func() {
		It("rejects invalid parameters at construction", func() {
			_, err := sim.New(dynamo.Params{Passes: -1})
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("applies new parameters to the running simulation", func() {
			s := newSim(nil)
			p := s.Params()
			p.Passes = 7
			p.Gravity = 0
			Expect(s.SetParams(p)).To(Succeed())
			Expect(s.Solver().Passes()).To(Equal(7))

			addPoints(s, dynamo.V(0, 0))
			s.Step(1)
			Expect(s.Snapshot().Points[0].Pos).To(Equal(dynamo.V(0, 0)))
		})

		It("bleeds velocity off when damping is set", func() {
			s := newSim(func(p *dynamo.Params) { p.Gravity = 0 })
			addPoints(s, dynamo.V(0, 0))
			Expect(s.Store().SetPosition(0, dynamo.V(1, 0))).To(Succeed())

			p := s.Params()
			p.Damping = 0.5
			Expect(s.SetParams(p)).To(Succeed())
			s.Step(1)
			Expect(s.Snapshot().Points[0].Pos.X).To(BeNumerically("~", 1.5, 1e-12))
		})
	})
})
