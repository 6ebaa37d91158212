package core

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/polyderiv/isa"
)

var _ = Describe("Machine", func() {
	var (
		engine  sim.Engine
		m       *Machine
		console *BufferConsole
	)

	build := func(b Builder) {
		m = b.WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Machine")
	}

	run := func(text, input string) {
		Expect(m.MapProgram(isa.Parse(text))).To(Succeed())
		console = NewBufferConsole([]byte(input))
		m.Attach(console)
		m.Start()
		engine.Run()
	}

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		build(NewBuilder().WithTapeSize(16))
	})

	It("should echo its input", func() {
		run(",[.,]", "hello")

		Expect(m.Halted()).To(BeTrue())
		Expect(m.Err()).NotTo(HaveOccurred())
		Expect(console.String()).To(Equal("hello"))
	})

	It("should advance simulated time one cycle per instruction", func() {
		run("+++", "")

		Expect(m.Steps()).To(Equal(3))
		Expect(m.Cell(0)).To(Equal(byte(3)))
		Expect(float64(engine.CurrentTime() * 1e9)).To(BeNumerically(">=", 3))
	})

	It("should run several instructions per cycle", func() {
		build(NewBuilder().WithTapeSize(16).WithInstsPerTick(4))
		run("++++++++>+", "")

		Expect(m.Steps()).To(Equal(10))
		Expect(m.Cell(0)).To(Equal(byte(8)))
		Expect(m.Cell(1)).To(Equal(byte(1)))
		Expect(m.Pointer()).To(Equal(1))
	})

	It("should stop at the step limit", func() {
		build(NewBuilder().WithTapeSize(16).WithMaxSteps(100))
		run("+[]", "")

		Expect(m.Halted()).To(BeTrue())
		Expect(m.Err()).To(MatchError(ErrStepLimit))
		Expect(m.Steps()).To(Equal(100))
	})

	It("should stop when the cursor leaves the tape", func() {
		run("+.<", "")

		Expect(m.Err()).To(MatchError(ErrCursorUnderflow))
		Expect(console.String()).To(Equal("\x01"))
	})

	It("should reject unmatched brackets", func() {
		err := m.MapProgram(isa.Parse("[[]"))
		Expect(err).To(MatchError(isa.ErrUnmatchedBracket))
	})

	It("should reset the tape on a new program", func() {
		run("+++>++", "")
		Expect(m.Cell(1)).To(Equal(byte(2)))

		Expect(m.MapProgram(isa.Parse("+"))).To(Succeed())
		Expect(m.Cell(1)).To(Equal(byte(0)))
		Expect(m.Pointer()).To(Equal(0))
		Expect(m.Halted()).To(BeFalse())
	})

	It("should panic on an invalid builder option", func() {
		Expect(func() { NewBuilder().WithTapeSize(0) }).To(Panic())
		Expect(func() { NewBuilder().WithInstsPerTick(0) }).To(Panic())
	})

	It("should print its state", func() {
		run("++>+++", "")

		var buf bytes.Buffer
		PrintState(&buf, m, 10)
		Expect(buf.String()).To(ContainSubstring("State@Machine"))
		Expect(buf.String()).To(ContainSubstring("[3]"))
		LogState(m, 10)
	})

	It("should execute a program end to end", func() {
		out, em, err := Execute(NewBuilder(), isa.Parse(",+."), []byte("A"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("B"))
		Expect(em.Halted()).To(BeTrue())
	})
})
