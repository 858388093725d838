package cpu

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// machineState is the shape Dump renders: the full register file by
// name, in canonical order, plus the cycle counter.
type machineState struct {
	Registers [numRegisters]string
	Cycle     int
}

// Dump returns a readable snapshot of the register bank and cycle
// counter, for debugging and test failure output.
func (c *Cpu) Dump() string {
	var s machineState
	for i, name := range registerNames {
		s.Registers[i] = fmt.Sprintf("%s=%#04x", name, c.Reg.Get(Register(i)))
	}
	s.Cycle = c.Cycle
	return spew.Sdump(s)
}

// trace emits one line per executed instruction when Trace is set:
// the PC the instruction was fetched from, the raw word, the
// mnemonic, and the cycle total after execution.
func (c *Cpu) trace(pc, word uint16, o, a Opcode) {
	if c.Trace == nil {
		return
	}
	info := opcodeTable[o]
	if o == Nonbasic {
		info = nonbasicTable[a]
	}
	fmt.Fprintf(c.Trace, "%04x: %04x %s cycle=%d\n", pc, word, info.Name, c.Cycle)
}
