package cpu

import "fmt"

// A targetKind says where an operand's write lands. Literal forms have
// no storage behind them; assignments to them are discarded.
type targetKind int

const (
	targetNone targetKind = iota
	targetRegister
	targetMemory
)

// An operand is the result of resolving a 6-bit operand code: the
// value read, plus the frozen write target. Whatever SP, PC, and
// inline words the code consumed are captured here at resolution
// time; later writes go to the captured location even if those
// registers have moved since.
type operand struct {
	value uint16
	kind  targetKind
	reg   Register
	addr  uint16
}

// takesNextWord reports whether code consumes an inline word from the
// instruction stream.
func takesNextWord(code uint16) bool {
	return (code >= 0x10 && code <= 0x17) || code == 0x1e || code == 0x1f
}

// resolve evaluates an operand code, performing its side effects (PC
// advance for next-word forms, SP moves for POP and PUSH) and paying
// the one-cycle surcharge for forms that consume an inline word.
func (c *Cpu) resolve(code uint16) (operand, error) {
	switch {
	case code <= 0x07: // register
		r := Register(code)
		return operand{value: c.Reg.Get(r), kind: targetRegister, reg: r}, nil

	case code <= 0x0f: // [register]
		addr := c.Reg.Get(Register(code - 0x08))
		v, err := c.Ram.Get(int(addr))
		if err != nil {
			return operand{}, err
		}
		return operand{value: v, kind: targetMemory, addr: addr}, nil

	case code <= 0x17: // [next word + register]
		c.Cycle++
		nw, err := c.nextWord()
		if err != nil {
			return operand{}, err
		}
		// The effective address is formed by the machine's 16-bit
		// adder, so it wraps at the word width.
		addr := nw + c.Reg.Get(Register(code-0x10))
		v, err := c.Ram.Get(int(addr))
		if err != nil {
			return operand{}, err
		}
		return operand{value: v, kind: targetMemory, addr: addr}, nil

	case code == 0x18: // POP: [SP], then SP++
		addr := c.Reg.Get(SP)
		v, err := c.Ram.Get(int(addr))
		if err != nil {
			return operand{}, err
		}
		c.Reg.Set(SP, int(addr)+1)
		return operand{value: v, kind: targetMemory, addr: addr}, nil

	case code == 0x19: // PEEK: [SP]
		addr := c.Reg.Get(SP)
		v, err := c.Ram.Get(int(addr))
		if err != nil {
			return operand{}, err
		}
		return operand{value: v, kind: targetMemory, addr: addr}, nil

	case code == 0x1a: // PUSH: --SP, then [SP]
		c.Reg.Set(SP, int(c.Reg.Get(SP))-1)
		addr := c.Reg.Get(SP)
		v, err := c.Ram.Get(int(addr))
		if err != nil {
			return operand{}, err
		}
		return operand{value: v, kind: targetMemory, addr: addr}, nil

	case code == 0x1b:
		return operand{value: c.Reg.Get(SP), kind: targetRegister, reg: SP}, nil

	case code == 0x1c:
		return operand{value: c.Reg.Get(PC), kind: targetRegister, reg: PC}, nil

	case code == 0x1d:
		return operand{value: c.Reg.Get(O), kind: targetRegister, reg: O}, nil

	case code == 0x1e: // [next word]
		c.Cycle++
		nw, err := c.nextWord()
		if err != nil {
			return operand{}, err
		}
		v, err := c.Ram.Get(int(nw))
		if err != nil {
			return operand{}, err
		}
		return operand{value: v, kind: targetMemory, addr: nw}, nil

	case code == 0x1f: // next word, as a literal
		c.Cycle++
		nw, err := c.nextWord()
		if err != nil {
			return operand{}, err
		}
		return operand{value: nw, kind: targetNone}, nil

	case code <= operandCodeMask: // inline literal 0x00..0x1f
		return operand{value: code - 0x20, kind: targetNone}, nil
	}
	return operand{}, fmt.Errorf("%w: %#x", ErrBadOperand, code)
}

// write stores value at the operand's frozen target. Writes to
// literal operands are discarded without comment.
func (c *Cpu) write(dst operand, value int) error {
	switch dst.kind {
	case targetRegister:
		c.Reg.Set(dst.reg, value)
		return nil
	case targetMemory:
		return c.Ram.Set(int(dst.addr), value)
	}
	return nil
}

// GetByCode reads a value through an operand code, side effects
// included.
func (c *Cpu) GetByCode(code uint16) (uint16, error) {
	op, err := c.resolve(code)
	if err != nil {
		return 0, err
	}
	return op.value, nil
}

// SetByCode writes value through an operand code. The write paths
// mirror resolve, except that the literal forms store nothing: the
// next-word literal 0x1f pays its cycle surcharge but the discarded
// write never fetches the word.
func (c *Cpu) SetByCode(code uint16, value int) error {
	switch {
	case code <= 0x07:
		c.Reg.Set(Register(code), value)
		return nil

	case code <= 0x0f:
		return c.Ram.Set(int(c.Reg.Get(Register(code-0x08))), value)

	case code <= 0x17:
		c.Cycle++
		nw, err := c.nextWord()
		if err != nil {
			return err
		}
		return c.Ram.Set(int(nw+c.Reg.Get(Register(code-0x10))), value)

	case code == 0x18: // POP target: [SP], then SP++
		sp := c.Reg.Get(SP)
		if err := c.Ram.Set(int(sp), value); err != nil {
			return err
		}
		c.Reg.Set(SP, int(sp)+1)
		return nil

	case code == 0x19:
		return c.Ram.Set(int(c.Reg.Get(SP)), value)

	case code == 0x1a: // PUSH target: --SP, then [SP]
		c.Reg.Set(SP, int(c.Reg.Get(SP))-1)
		return c.Ram.Set(int(c.Reg.Get(SP)), value)

	case code == 0x1b:
		c.Reg.Set(SP, value)
		return nil

	case code == 0x1c:
		c.Reg.Set(PC, value)
		return nil

	case code == 0x1d:
		c.Reg.Set(O, value)
		return nil

	case code == 0x1e:
		c.Cycle++
		nw, err := c.nextWord()
		if err != nil {
			return err
		}
		return c.Ram.Set(int(nw), value)

	case code == 0x1f:
		c.Cycle++
		return nil

	case code <= operandCodeMask:
		return nil
	}
	return fmt.Errorf("%w: %#x", ErrBadOperand, code)
}
