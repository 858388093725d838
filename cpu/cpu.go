// Package cpu implements the DCPU-16, a 16-bit word-addressed
// microprocessor with eight general-purpose registers, a descending
// stack, and cycle-exact instruction timing.
//
// The Cpu has no memory of its own beyond its register bank; it
// executes out of a mem.RAM it holds a pointer to. A Step is one full
// fetch-decode-execute round and is atomic from the caller's point of
// view. Callers sharing a Cpu across goroutines must serialize access
// themselves.
package cpu

import (
	"errors"
	"io"

	"dcpu16/mem"
)

// Decode failures. Partial side effects made before the error (the PC
// has at least advanced past the opcode word) are kept.
var (
	ErrBadOpcode  = errors.New("cpu: unknown opcode")
	ErrBadOperand = errors.New("cpu: operand code out of range")
)

const defaultWordLength = 16

// A Cpu executes instructions out of Ram, mutating Reg and Ram in
// place and accumulating elapsed cycles in Cycle.
type Cpu struct {
	Reg   *Registers
	Ram   *mem.RAM
	Cycle int

	// Trace, when non-nil, receives a one-line record per Step.
	Trace io.Writer
}

// New returns a Cpu over the given register bank, RAM, and starting
// cycle count. A nil reg means a zeroed bank; a nil ram means 2^16
// words of width 16.
func New(reg *Registers, ram *mem.RAM, cycle int) *Cpu {
	if reg == nil {
		reg = zeroRegisters(defaultWordLength)
	}
	if ram == nil {
		// Size and word length here match the register width, so
		// construction cannot fail.
		ram, _ = mem.New(defaultWordLength, 1<<defaultWordLength, nil)
	}
	return &Cpu{Reg: reg, Ram: ram, Cycle: cycle}
}

// Step executes the instruction at PC: fetch, decode, resolve
// operands (A before B, with their side effects), dispatch, and
// account cycles. All failure modes surface here; arithmetic on a
// zero divisor is not one of them.
func (c *Cpu) Step() error {
	pc := c.Reg.Get(PC)
	word, err := c.nextWord()
	if err != nil {
		return err
	}
	b, a, o := DecompileWord(word)

	if Opcode(o) == Nonbasic {
		// a holds the non-basic opcode, b its single operand.
		err = c.executeNonbasic(Opcode(a), b)
	} else {
		err = c.executeBasic(Opcode(o), a, b)
	}
	if err != nil {
		return err
	}
	c.trace(pc, word, Opcode(o), Opcode(a))
	return nil
}

func (c *Cpu) executeBasic(op Opcode, acode, bcode uint16) error {
	// A is resolved fully before B; both captures are frozen here,
	// before any further fetch.
	dst, err := c.resolve(acode)
	if err != nil {
		return err
	}
	src, err := c.resolve(bcode)
	if err != nil {
		return err
	}
	return c.execute(op, dst, src)
}

// nextWord returns the word at PC and advances PC by one.
func (c *Cpu) nextWord() (uint16, error) {
	pc := c.Reg.Get(PC)
	word, err := c.Ram.Get(int(pc))
	if err != nil {
		return 0, err
	}
	c.Reg.Set(PC, int(pc)+1)
	return word, nil
}

// skip consumes the next instruction without executing it: one word,
// plus one more for each operand code that takes an inline word. Costs
// one cycle.
func (c *Cpu) skip() error {
	word, err := c.nextWord()
	if err != nil {
		return err
	}
	b, a, _ := DecompileWord(word)
	for _, code := range [2]uint16{a, b} {
		if takesNextWord(code) {
			if _, err := c.nextWord(); err != nil {
				return err
			}
		}
	}
	c.Cycle++
	return nil
}

// pushWord stores value at the new top of the descending stack.
func (c *Cpu) pushWord(value uint16) error {
	sp := int(c.Reg.Get(SP)) - 1
	c.Reg.Set(SP, sp)
	return c.Ram.Set(int(c.Reg.Get(SP)), int(value))
}
