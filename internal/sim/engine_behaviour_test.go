package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
)

var _ = Describe("Engine", func() {
	var e *sim.Engine

	BeforeEach(func() {
		cfg := sim.DefaultConfig()
		cfg.Seed = 2024
		var err error
		e, err = sim.New(cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("placing a body by gesture", func() {
		It("grows while dragging and launches opposite to the drag", func() {
			e.GestureStart(dynamo.V(0, 0))
			for i := 0; i < 10; i++ {
				e.GestureDrag(dynamo.V(float64(i), 0))
			}
			Expect(e.Gesture().Radius).To(Equal(5.0))

			id, err := e.GestureEnd(dynamo.V(20, -10))
			Expect(err).NotTo(HaveOccurred())

			b, err := e.Body(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Vel).To(Equal(dynamo.V(-30, 15)))
			Expect(b.Mass).To(BeNumerically("~", math.Pi*125*100, 1e-6))
			Expect(e.Gesture().Active).To(BeFalse())
		})

		It("produces nothing when cancelled", func() {
			e.GestureStart(dynamo.V(3, 3))
			e.GestureDrag(dynamo.V(4, 4))
			e.GestureCancel()

			id, err := e.GestureEnd(dynamo.V(4, 4))
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(BeZero())
			Expect(e.Len()).To(BeZero())
		})

		It("rejects a release with no drag", func() {
			e.GestureStart(dynamo.V(3, 3))
			_, err := e.GestureEnd(dynamo.V(3, 3))
			Expect(err).To(MatchError(dynamo.ErrDegenerateBody))
			Expect(e.Len()).To(BeZero())
		})
	})

	Describe("random spawning", func() {
		It("adds ten bodies inside the spawn rectangle", func() {
			ids := e.SpawnRandom()
			Expect(ids).To(HaveLen(10))

			for _, b := range e.Bodies() {
				Expect(b.Radius).To(BeNumerically(">=", 2.0))
				Expect(b.Radius).To(BeNumerically("<", 15.0))
				Expect(math.Abs(b.Pos.X)).To(BeNumerically("<=", 0.4*800))
				Expect(math.Abs(b.Pos.Y)).To(BeNumerically("<=", 0.4*600))
				Expect(b.Vel.IsZero()).To(BeTrue())
			}
		})
	})

	Describe("ticking", func() {
		It("keeps momentum for a closed system", func() {
			e.AddMetric(metrics.NewMomentumDrift())
			e.SpawnRandom()
			before := e.Momentum()

			for i := 0; i < 30; i++ {
				Expect(e.Tick(1.0 / 60)).To(Succeed())
			}

			drift := e.Momentum().Sub(before).Len()
			Expect(drift).To(BeNumerically("<", 1e-3*(1+e.KineticEnergy())))
			Expect(e.Metrics()).To(HaveKey("momentum_drift"))
		})

		It("leaves every acceleration at zero afterwards", func() {
			Expect(sim.Populate(e, "trio")).To(Succeed())
			Expect(e.Tick(0.5)).To(Succeed())

			for _, s := range e.Bodies() {
				b, err := e.Body(s.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(b.Acc.IsZero()).To(BeTrue())
			}
		})

		It("is a no-op on an empty registry", func() {
			Expect(e.Tick(1)).To(Succeed())
			Expect(e.Ticks()).To(Equal(1))
			Expect(e.Time()).To(Equal(1.0))
		})
	})

	Describe("clear-all", func() {
		It("empties the registry regardless of size", func() {
			e.SpawnRandom()
			e.SpawnRandom()
			e.SpawnRandom()
			e.ClearAll()
			Expect(e.Bodies()).To(BeEmpty())
		})
	})
})
