package broadening

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const tol = 1e-9

func angles(step float64) []float64 {
	var out []float64
	for th := MinAngleDeg; th <= MaxAngleDeg; th += step {
		out = append(out, th)
	}
	return out
}

var _ = Describe("Snapshot", func() {
	example := Params{
		EnergyMeV:       1.0,
		Beta:            0.05,
		DThetaDeg:       10,
		ResolutionConst: 0.03,
		DBeta:           0.001,
	}

	Describe("reference values", func() {
		var s *Snapshot

		BeforeEach(func() {
			var err error
			s, err = NewSnapshot(example)
			Expect(err).NotTo(HaveOccurred())
		})

		It("shifts the energy forward at 0 degrees", func() {
			Expect(s.dopplerShift(0)).To(BeNumerically("~", 0.9975/0.95, tol))
			Expect(s.Energy(0)).To(BeNumerically("~", 0.03/math.Sqrt(1.05), tol))
			Expect(s.Energy(0)).To(BeNumerically("~", 0.029277, 1e-6))
		})

		It("has the full acceptance term at 90 degrees", func() {
			Expect(s.dopplerShift(90)).To(BeNumerically("~", 0.9975, tol))
			Expect(s.SolidAngle(90)).To(BeNumerically("~", 10*math.Pi/180*0.05, tol))
			Expect(s.SolidAngle(90)).To(BeNumerically("~", 0.008727, 1e-6))
		})

		It("uses the combined beta-spread denominator", func() {
			th := 60.0
			c := math.Cos(th * math.Pi / 180)
			want := 0.001 * math.Abs(c-0.05) / ((1 - 0.0025) * (1 - 0.05*c))
			Expect(s.Beta(th)).To(BeNumerically("~", want, tol))
		})
	})

	Describe("total broadening", func() {
		DescribeTable("is the quadrature sum of the contributions",
			func(p Params) {
				s, err := NewSnapshot(p)
				Expect(err).NotTo(HaveOccurred())
				for _, th := range angles(5) {
					e, o, b := s.Energy(th), s.SolidAngle(th), s.Beta(th)
					total := s.Total(th)
					Expect(total).To(BeNumerically(">=", 0))
					Expect(total).To(BeNumerically("~", math.Sqrt(e*e+o*o+b*b), tol))
				}
			},
			Entry("example", example),
			Entry("backward beam", Params{EnergyMeV: 2, Beta: -0.4, DThetaDeg: 5, ResolutionConst: 0.05, DBeta: 0.01}),
			Entry("fast beam", Params{EnergyMeV: 0.5, Beta: 0.9, DThetaDeg: 20, ResolutionConst: 0.02, DBeta: 0.02}),
			Entry("defaults", NewParams(1.33, 0.1)),
		)

		It("equals the energy term for a source at rest without beta spread", func() {
			s, err := NewSnapshot(Params{EnergyMeV: 1, Beta: 0, DThetaDeg: 15, ResolutionConst: 0.03})
			Expect(err).NotTo(HaveOccurred())
			for _, th := range angles(10) {
				Expect(s.SolidAngle(th)).To(BeNumerically("~", 0, tol))
				Expect(s.Beta(th)).To(BeNumerically("~", 0, tol))
				Expect(s.Total(th)).To(BeNumerically("~", s.Energy(th), tol))
			}
		})

		It("keeps the beta-spread term for a source at rest", func() {
			s, err := NewSnapshot(Params{EnergyMeV: 1, Beta: 0, ResolutionConst: 0.03, DBeta: 0.01})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.SolidAngle(45)).To(BeNumerically("~", 0, tol))
			Expect(s.Beta(0)).To(BeNumerically("~", 0.01, tol))
		})
	})

	It("has no solid angle term without opening angle", func() {
		s, err := NewSnapshot(Params{EnergyMeV: 1, Beta: 0.3, ResolutionConst: 0.03, DBeta: 0.01})
		Expect(err).NotTo(HaveOccurred())
		for _, th := range angles(10) {
			Expect(s.SolidAngle(th)).To(Equal(0.0))
		}
	})

	It("has no solid angle term along the beam axis", func() {
		s, err := NewSnapshot(example)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.SolidAngle(0)).To(BeNumerically("~", 0, tol))
		Expect(s.SolidAngle(180)).To(BeNumerically("~", 0, tol))
	})

	It("has no beta term without beta spread", func() {
		s, err := NewSnapshot(Params{EnergyMeV: 1, Beta: 0.3, DThetaDeg: 8, ResolutionConst: 0.03})
		Expect(err).NotTo(HaveOccurred())
		for _, th := range angles(10) {
			Expect(s.Beta(th)).To(Equal(0.0))
		}
	})

	It("peaks the shifted energy forward and dips it backward", func() {
		s, err := NewSnapshot(Params{EnergyMeV: 1, Beta: 0.2, ResolutionConst: 1})
		Expect(err).NotTo(HaveOccurred())
		maxE, minE := s.dopplerShift(0), s.dopplerShift(180)
		prev := maxE
		for _, th := range angles(1)[1:] {
			e := s.dopplerShift(th)
			Expect(e).To(BeNumerically("<=", maxE))
			Expect(e).To(BeNumerically(">=", minE))
			Expect(e).To(BeNumerically("<=", prev+tol))
			prev = e
		}
	})

	It("reports a non-positive shifted energy as a non-finite value", func() {
		s := newSnapshot(Params{EnergyMeV: -1, Beta: 0.1, ResolutionConst: 0.03})
		Expect(Finite(s.Energy(30))).To(BeFalse())
		Expect(Finite(s.Total(30))).To(BeFalse())

		s = newSnapshot(Params{EnergyMeV: 0, Beta: 0.1, ResolutionConst: 0.03})
		Expect(math.IsInf(s.Energy(30), 1)).To(BeTrue())
	})

	Describe("Breakdown", func() {
		It("matches the individual functions", func() {
			s, err := NewSnapshot(example)
			Expect(err).NotTo(HaveOccurred())
			bd := s.Breakdown(45)
			for _, k := range Kinds {
				Expect(bd.Value(k)).To(BeNumerically("~", s.Eval(k, 45), tol))
			}
			Expect(bd.Dominant).To(Equal(Energy))
		})

		It("picks the largest contribution", func() {
			s, err := NewSnapshot(Params{EnergyMeV: 1, Beta: 0.3, DThetaDeg: 30, ResolutionConst: 0.001})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Breakdown(90).Dominant).To(Equal(SolidAngle))
		})
	})

	Describe("Kind", func() {
		It("carries the display names", func() {
			Expect(Energy.String()).To(Equal("Energy Broadening"))
			Expect(SolidAngle.String()).To(Equal("Solid Angle Broadening"))
			Expect(Beta.String()).To(Equal("Beta Broadening"))
			Expect(Total.String()).To(Equal("Total Broadening"))
		})

		It("parses identifiers and names", func() {
			k, err := ParseKind("betaBroadening")
			Expect(err).NotTo(HaveOccurred())
			Expect(k).To(Equal(Beta))

			k, err = ParseKind("Total Broadening")
			Expect(err).NotTo(HaveOccurred())
			Expect(k).To(Equal(Total))

			_, err = ParseKind("doppler")
			Expect(err).To(HaveOccurred())
		})
	})
})
