package macro

import (
	"strconv"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/polyderiv/emit"
	"github.com/sarchlab/polyderiv/isa"
	"github.com/sarchlab/polyderiv/layout"
	"github.com/sarchlab/polyderiv/verify"
)

const snapshotCells = 32

// tapeRun is one macro executed in isolation on a simulated tape.
type tapeRun struct {
	fs     *verify.FunctionalSimulator
	before []byte
	after  []byte
	err    error
}

func runMacro(preload map[int]byte, input string, build func(e *emit.Emitter)) tapeRun {
	e := emit.New()
	build(e)

	fs := verify.NewFunctionalSimulator(e.Program(), &verify.TapeInfo{Cells: 64})
	for offset, v := range preload {
		Expect(fs.PreloadCell(offset, v)).To(Succeed())
	}

	run := tapeRun{fs: fs, before: fs.Snapshot(snapshotCells)}
	run.err = fs.Run([]byte(input), 1_000_000)
	run.after = fs.Snapshot(snapshotCells)
	return run
}

func (r tapeRun) cell(offset int) byte {
	return r.after[offset]
}

func (r tapeRun) expectNeutral(outputs ...int) {
	ExpectWithOffset(1, r.err).NotTo(HaveOccurred())
	ExpectWithOffset(1, verify.CheckScratchNeutral(r.before, r.after, outputs...)).To(BeEmpty())
}

var _ = Describe("Macros", func() {
	Context("Zero", func() {
		It("should clear a cell", func() {
			r := runMacro(map[int]byte{3: 7, 4: 9}, "", func(e *emit.Emitter) {
				Zero(e, 3)
			})
			r.expectNeutral(3)
			Expect(r.cell(3)).To(BeZero())
			Expect(r.cell(4)).To(Equal(byte(9)))
		})

		It("should emit the loop through the emitter", func() {
			mockCtrl := gomock.NewController(GinkgoT())
			defer mockCtrl.Finish()

			e := NewMockEmitter(mockCtrl)
			gomock.InOrder(
				e.EXPECT().Loop(3, gomock.Any()).Do(func(_ int, body func()) { body() }),
				e.EXPECT().EmitAt(3, isa.Dec),
			)

			Zero(e, 3)
		})
	})

	Context("AddConst and Set", func() {
		It("should wrap at 256", func() {
			r := runMacro(map[int]byte{1: 250, 2: 1}, "", func(e *emit.Emitter) {
				AddConst(e, 1, 10)
				AddConst(e, 2, -3)
			})
			r.expectNeutral(1, 2)
			Expect(r.cell(1)).To(Equal(byte(4)))
			Expect(r.cell(2)).To(Equal(byte(254)))
		})

		It("should set a cell whatever it held", func() {
			r := runMacro(map[int]byte{5: 200}, "", func(e *emit.Emitter) {
				Set(e, 5, 32)
			})
			r.expectNeutral(5)
			Expect(r.cell(5)).To(Equal(byte(32)))
		})
	})

	Context("Move", func() {
		It("should add src to dst and clear src", func() {
			r := runMacro(map[int]byte{2: 5, 6: 2}, "", func(e *emit.Emitter) {
				Move(e, 2, 6)
			})
			r.expectNeutral(2, 6)
			Expect(r.cell(2)).To(BeZero())
			Expect(r.cell(6)).To(Equal(byte(7)))
		})

		It("should visit src and dst in order", func() {
			mockCtrl := gomock.NewController(GinkgoT())
			defer mockCtrl.Finish()

			e := NewMockEmitter(mockCtrl)
			gomock.InOrder(
				e.EXPECT().Loop(2, gomock.Any()).Do(func(_ int, body func()) { body() }),
				e.EXPECT().EmitAt(2, isa.Dec),
				e.EXPECT().EmitAt(6, isa.Inc),
			)

			Move(e, 2, 6)
		})
	})

	Context("Copy", func() {
		It("should keep src and restore tmp", func() {
			r := runMacro(map[int]byte{1: 9, 3: 1}, "", func(e *emit.Emitter) {
				Copy(e, 1, 3, 8)
			})
			r.expectNeutral(3)
			Expect(r.cell(1)).To(Equal(byte(9)))
			Expect(r.cell(3)).To(Equal(byte(10)))
			Expect(r.cell(8)).To(BeZero())
		})

		It("should copy zero", func() {
			r := runMacro(nil, "", func(e *emit.Emitter) {
				Copy(e, 1, 3, 8)
			})
			r.expectNeutral()
		})
	})

	DescribeTable("Multiply",
		func(a, b int, want byte) {
			r := runMacro(map[int]byte{2: byte(a), 3: byte(b)}, "", func(e *emit.Emitter) {
				Multiply(e, 2, 3, 4, 5)
			})
			r.expectNeutral(2, 4)
			Expect(r.cell(2)).To(BeZero())
			Expect(r.cell(3)).To(Equal(byte(b)))
			Expect(r.cell(4)).To(Equal(want))
			Expect(r.cell(5)).To(BeZero())
		},
		Entry("zero coefficient", 0, 5, byte(0)),
		Entry("zero degree", 5, 0, byte(0)),
		Entry("unit degree", 7, 1, byte(7)),
		Entry("largest supported product", 9, 28, byte(252)),
		Entry("wraps past 255", 16, 16, byte(0)),
		Entry("wraps to a remainder", 9, 30, byte(14)),
	)

	Context("conditionals", func() {
		run := func(cond byte, build func(e *emit.Emitter)) tapeRun {
			return runMacro(map[int]byte{1: cond}, "", build)
		}

		It("should run If only for a nonzero condition", func() {
			for _, cond := range []byte{0, 1, 200} {
				r := run(cond, func(e *emit.Emitter) {
					If(e, 1, func() { AddConst(e, 4, 1) })
				})
				r.expectNeutral(1, 4)
				Expect(r.cell(1)).To(BeZero())
				if cond == 0 {
					Expect(r.cell(4)).To(BeZero())
				} else {
					Expect(r.cell(4)).To(Equal(byte(1)))
				}
			}
		})

		It("should take exactly one IfElse branch", func() {
			for _, cond := range []byte{0, 3} {
				r := run(cond, func(e *emit.Emitter) {
					IfElse(e, 1, 2,
						func() { AddConst(e, 4, 1) },
						func() { AddConst(e, 5, 1) })
				})
				r.expectNeutral(1, 4, 5)
				Expect(r.cell(2)).To(BeZero())
				if cond == 0 {
					Expect(r.after[4:6]).To(Equal([]byte{0, 1}))
				} else {
					Expect(r.after[4:6]).To(Equal([]byte{1, 0}))
				}
			}
		})

		It("should run IfZero only for zero", func() {
			for _, cond := range []byte{0, 9} {
				r := run(cond, func(e *emit.Emitter) {
					IfZero(e, 1, 2, func() { AddConst(e, 4, 1) })
				})
				r.expectNeutral(1, 4)
				Expect(r.cell(4) == 1).To(Equal(cond == 0))
			}
		})
	})

	Context("DivMod10", func() {
		It("should divide every byte value", func() {
			s := DivScratch{Counter: 6, Temp: 7, Flag: 8}
			for n := 0; n < 256; n++ {
				r := runMacro(map[int]byte{1: byte(n)}, "", func(e *emit.Emitter) {
					DivMod10(e, 1, 2, 3, s)
				})
				r.expectNeutral(1, 2, 3)
				Expect(r.cell(1)).To(BeZero())
				Expect(r.cell(2)).To(Equal(byte(n/10)), "quotient of %d", n)
				Expect(r.cell(3)).To(Equal(byte(n%10)), "remainder of %d", n)
			}
		})

		It("should add to a running quotient", func() {
			s := DivScratch{Counter: 6, Temp: 7, Flag: 8}
			r := runMacro(map[int]byte{1: 47, 2: 100}, "", func(e *emit.Emitter) {
				DivMod10(e, 1, 2, 3, s)
			})
			r.expectNeutral(1, 2, 3)
			Expect(r.cell(2)).To(Equal(byte(104)))
			Expect(r.cell(3)).To(Equal(byte(7)))
		})
	})

	Context("PrintDecimal", func() {
		var ws Workspace

		BeforeEach(func() {
			ws = WorkspaceFrom(layout.Default())
		})

		It("should print every byte value without leading zeros", func() {
			for v := 0; v < 256; v++ {
				r := runMacro(map[int]byte{4: byte(v)}, "", func(e *emit.Emitter) {
					PrintDecimal(e, 4, ws)
				})
				r.expectNeutral(4)
				Expect(r.cell(4)).To(BeZero())
				Expect(r.fs.Output()).To(Equal(strconv.Itoa(v)))
			}
		})

		DescribeTable("known values",
			func(v byte, want string) {
				r := runMacro(map[int]byte{4: v}, "", func(e *emit.Emitter) {
					PrintDecimal(e, 4, ws)
				})
				Expect(r.err).NotTo(HaveOccurred())
				Expect(r.fs.Output()).To(Equal(want))
				for _, c := range ws.Cells() {
					Expect(r.cell(c)).To(BeZero())
				}
			},
			Entry("zero", byte(0), "0"),
			Entry("one digit", byte(5), "5"),
			Entry("two digits", byte(81), "81"),
			Entry("zero tens", byte(100), "100"),
			Entry("zero tens, nonzero ones", byte(105), "105"),
			Entry("largest", byte(255), "255"),
		)
	})

	Context("I/O", func() {
		It("should print a fixed character", func() {
			r := runMacro(nil, "", func(e *emit.Emitter) {
				PrintChar(e, ' ', 1)
				PrintChar(e, '\n', 1)
			})
			r.expectNeutral()
			Expect(r.fs.Output()).To(Equal(" \n"))
		})

		It("should read a digit", func() {
			r := runMacro(nil, "7", func(e *emit.Emitter) {
				ReadDigit(e, 2)
			})
			r.expectNeutral(2)
			Expect(r.cell(2)).To(Equal(byte(7)))
		})

		DescribeTable("ReadSeparator",
			func(input string, flag byte) {
				r := runMacro(nil, input, func(e *emit.Emitter) {
					ReadSeparator(e, 0, 1)
				})
				r.expectNeutral(0)
				Expect(r.cell(0)).To(Equal(flag))
				Expect(r.cell(1)).To(BeZero())
			},
			Entry("space", " ", byte(1)),
			Entry("newline", "\n", byte(0)),
			Entry("end of input", "", byte(0)),
		)
	})

	It("should lay the workspace out from a layout", func() {
		ws := WorkspaceFrom(layout.Default())
		Expect(ws.Hundreds).To(Equal(7))
		Expect(ws.Scratch.Flag).To(Equal(15))
		Expect(ws.Cells()).To(HaveLen(layout.WorkspaceSlots))
	})
})
