package isa_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/polyderiv/isa"
)

var _ = Describe("Program", func() {
	It("should ignore non-instruction bytes when parsing", func() {
		p := isa.Parse("+ + hello\n[->+<] ;.")
		Expect(p.String()).To(Equal("++[->+<]."))
	})

	It("should classify opcodes", func() {
		Expect(isa.Right.IsMove()).To(BeTrue())
		Expect(isa.Inc.IsMove()).To(BeFalse())
		Expect(isa.LoopClose.IsLoop()).To(BeTrue())
		Expect(isa.Opcode('x').Valid()).To(BeFalse())
		Expect(isa.Out.Name()).To(Equal("OUT"))
		Expect(isa.In.Symbol()).To(Equal(","))
	})

	It("should wrap formatted text", func() {
		p := isa.Parse("+++++++")
		Expect(p.Format(3)).To(Equal("+++\n+++\n+\n"))
		Expect(p.Format(0)).To(Equal("+++++++\n"))
	})

	Context("when matching brackets", func() {
		It("should pair nested loops", func() {
			p := isa.Parse("[[-]>]")
			jumps, err := p.MatchBrackets()
			Expect(err).NotTo(HaveOccurred())
			Expect(jumps).To(Equal([]int{5, 3, -1, 1, -1, 0}))
		})

		It("should report an unmatched close", func() {
			_, err := isa.Parse("+]").MatchBrackets()
			Expect(errors.Is(err, isa.ErrUnmatchedBracket)).To(BeTrue())

			var be *isa.BracketError
			Expect(errors.As(err, &be)).To(BeTrue())
			Expect(be.Pos).To(Equal(1))
			Expect(be.Op).To(Equal(isa.LoopClose))
		})

		It("should report an unmatched open", func() {
			_, err := isa.Parse("[[]").MatchBrackets()

			var be *isa.BracketError
			Expect(errors.As(err, &be)).To(BeTrue())
			Expect(be.Pos).To(Equal(0))
			Expect(be.Op).To(Equal(isa.LoopOpen))
		})
	})

	It("should collect stats", func() {
		s := isa.Parse("[[-]>+]").Stats()
		Expect(s.Length).To(Equal(7))
		Expect(s.MaxDepth).To(Equal(2))
		Expect(s.Counts[isa.LoopOpen]).To(Equal(2))
		Expect(s.Counts[isa.Inc]).To(Equal(1))
	})
})
