package broadening

import (
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Model", func() {
	newExample := func() *Model {
		m, err := New(1.0, 0.05,
			WithOpeningAngle(10),
			WithResolutionConst(0.03),
			WithBetaSpread(0.001),
		)
		Expect(err).NotTo(HaveOccurred())
		return m
	}

	Describe("New", func() {
		It("applies the defaults for the optional inputs", func() {
			m, err := New(1.33, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Params()).To(Equal(Params{EnergyMeV: 1.33, Beta: 0.1, DThetaDeg: 0, ResolutionConst: 1, DBeta: 0}))
		})

		It("converts the opening angle to radians", func() {
			m := newExample()
			Expect(m.Params().DThetaRad()).To(BeNumerically("~", 0.174533, 1e-6))
		})

		It("derives all four functions immediately", func() {
			m := newExample()
			for _, f := range m.Funcs() {
				Expect(Finite(f.Eval(90))).To(BeTrue(), f.Name)
			}
		})

		It("names the accessors", func() {
			m := newExample()
			Expect(m.EnergyBroadening().Name).To(Equal("Energy Broadening"))
			Expect(m.SolidAngleBroadening().Name).To(Equal("Solid Angle Broadening"))
			Expect(m.BetaBroadening().Name).To(Equal("Beta Broadening"))
			Expect(m.TotalBroadening().Name).To(Equal("Total Broadening"))
		})

		DescribeTable("rejects invalid parameters",
			func(energy, beta float64, opts []Option, name string) {
				m, err := New(energy, beta, opts...)
				Expect(m).To(BeNil())
				Expect(err).To(MatchError(ErrInvalidParameter))
				Expect(err.Error()).To(ContainSubstring(name))
			},
			Entry("beta above light speed", 1.0, 1.2, nil, ParamBeta),
			Entry("beta exactly one", 1.0, 1.0, nil, ParamBeta),
			Entry("beta minus one", 1.0, -1.0, nil, ParamBeta),
			Entry("NaN beta", 1.0, math.NaN(), nil, ParamBeta),
			Entry("zero energy", 0.0, 0.1, nil, ParamEnergy),
			Entry("negative opening angle", 1.0, 0.1, []Option{WithOpeningAngle(-1)}, ParamOpeningAngle),
			Entry("zero resolution constant", 1.0, 0.1, []Option{WithResolutionConst(0)}, ParamResolutionConst),
			Entry("negative beta spread", 1.0, 0.1, []Option{WithBetaSpread(-0.01)}, ParamBetaSpread),
		)

		It("reports every violation at once", func() {
			err := Params{EnergyMeV: -1, Beta: 2, DThetaDeg: -1, ResolutionConst: -1, DBeta: -1}.Validate()
			Expect(err).To(HaveOccurred())
			for _, name := range ParamNames {
				Expect(err.Error()).To(ContainSubstring(name))
			}
		})
	})

	Describe("UpdateParameters", func() {
		It("is idempotent", func() {
			m := newExample()
			fs := m.Funcs()
			once := make([]float64, 0)
			for _, th := range angles(15) {
				for _, f := range fs {
					once = append(once, f.Eval(th))
				}
			}

			m.UpdateParameters()
			m.UpdateParameters()

			i := 0
			for _, th := range angles(15) {
				for _, f := range fs {
					Expect(f.Eval(th)).To(Equal(once[i]))
					i++
				}
			}
		})
	})

	Describe("SetParameters", func() {
		It("refreshes handles taken before the update", func() {
			m := newExample()
			total := m.TotalBroadening()
			solid := m.SolidAngleBroadening()
			before := total.Eval(90)

			p := m.Params()
			p.Beta = 0
			p.DBeta = 0
			Expect(m.SetParameters(p)).To(Succeed())

			Expect(solid.Eval(90)).To(BeNumerically("~", 0, tol))
			Expect(total.Eval(90)).NotTo(Equal(before))
			Expect(total.Eval(90)).To(BeNumerically("~", m.EnergyBroadening().Eval(90), tol))
		})

		It("leaves the model untouched on invalid input", func() {
			m := newExample()
			before := m.Params()
			snap := m.Snapshot()

			p := before
			p.Beta = 1.2
			Expect(m.SetParameters(p)).To(MatchError(ErrInvalidParameter))
			Expect(m.Params()).To(Equal(before))
			Expect(m.Snapshot()).To(BeIdenticalTo(snap))
		})

		It("does not disturb snapshots already handed out", func() {
			m := newExample()
			snap := m.Snapshot()
			v := snap.Total(30)

			p := m.Params()
			p.EnergyMeV = 4
			Expect(m.SetParameters(p)).To(Succeed())

			Expect(snap.Total(30)).To(Equal(v))
			Expect(m.Snapshot().Total(30)).NotTo(Equal(v))
		})
	})

	Describe("SetParam", func() {
		It("round-trips through GetParams", func() {
			m := newExample()
			Expect(m.SetParam(ParamBeta, 0.2)).To(Succeed())
			Expect(m.SetParam(ParamOpeningAngle, 5)).To(Succeed())
			got := m.GetParams()
			Expect(got[ParamBeta]).To(Equal(0.2))
			Expect(got[ParamOpeningAngle]).To(Equal(5.0))
			Expect(got[ParamEnergy]).To(Equal(1.0))
			Expect(got).To(HaveLen(len(ParamNames)))
		})

		It("rejects unknown names", func() {
			m := newExample()
			Expect(m.SetParam("gamma", 1)).To(MatchError(ErrUnknownParameter))
		})

		It("rejects values that break validation", func() {
			m := newExample()
			Expect(m.SetParam(ParamResolutionConst, -0.1)).To(MatchError(ErrInvalidParameter))
			Expect(m.Params().ResolutionConst).To(Equal(0.03))
		})
	})

	It("evaluates consistently while parameters change", func() {
		m := newExample()
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer GinkgoRecover()
			defer wg.Done()
			for i := 0; i < 200; i++ {
				p := m.Params()
				p.Beta = 0.01 * float64(i%50)
				Expect(m.SetParameters(p)).To(Succeed())
			}
		}()
		go func() {
			defer GinkgoRecover()
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s := m.Snapshot()
				e, o, b := s.Energy(60), s.SolidAngle(60), s.Beta(60)
				Expect(s.Total(60)).To(BeNumerically("~", math.Sqrt(e*e+o*o+b*b), tol))
			}
		}()
		wg.Wait()
	})

	Describe("zero values", func() {
		It("evaluates a zero Func to NaN", func() {
			var f Func
			Expect(math.IsNaN(f.Eval(90))).To(BeTrue())
		})

		It("keeps a zero Model usable until it is given parameters", func() {
			var m Model
			Expect(m.Params()).To(Equal(Params{}))
			Expect(m.Snapshot()).NotTo(BeNil())
			Expect(math.IsNaN(m.TotalBroadening().Eval(90))).To(BeTrue())

			Expect(m.SetParameters(NewParams(1, 0.1))).To(Succeed())
			Expect(Finite(m.TotalBroadening().Eval(90))).To(BeTrue())
		})
	})
})
