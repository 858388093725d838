package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initialRegisterValues() map[string]int {
	return map[string]int{
		"a":  0x1000,
		"b":  0x2000,
		"c":  0x3000,
		"x":  0x4000,
		"y":  0x5000,
		"z":  0x6000,
		"i":  0x7000,
		"j":  0x8000,
		"pc": 0x9000,
		"sp": 0xa000,
		"o":  0x1,
	}
}

func TestNewRegisters(t *testing.T) {
	values := initialRegisterValues()
	bank, err := NewRegisters(16, values)
	require.NoError(t, err)

	for _, name := range RegisterNames() {
		v, err := bank.GetByName(name)
		require.NoError(t, err)
		assert.Equal(t, uint16(values[name]), v, "register %s", name)
	}
}

func TestNewRegistersRequiresAllNames(t *testing.T) {
	values := initialRegisterValues()
	delete(values, "sp")
	_, err := NewRegisters(16, values)
	assert.ErrorIs(t, err, ErrUnknownRegister)

	values = initialRegisterValues()
	values["nonsense"] = 1
	_, err = NewRegisters(16, values)
	assert.ErrorIs(t, err, ErrUnknownRegister)
}

func TestRegisterSanitization(t *testing.T) {
	bank, err := NewRegisters(16, initialRegisterValues())
	require.NoError(t, err)

	for _, name := range RegisterNames() {
		require.NoError(t, bank.SetByName(name, 0x1010))
		v, _ := bank.GetByName(name)
		assert.Equal(t, uint16(0x1010), v, "register %s", name)

		// a value past the word width stores its remainder
		require.NoError(t, bank.SetByName(name, 1<<16+0x10))
		v, _ = bank.GetByName(name)
		assert.Equal(t, uint16(0x10), v, "register %s", name)

		// -1 stores the all-ones word
		require.NoError(t, bank.SetByName(name, -1))
		v, _ = bank.GetByName(name)
		assert.Equal(t, uint16(0xffff), v, "register %s", name)
	}
}

func TestRegisterUnknownName(t *testing.T) {
	bank, err := NewRegisters(16, initialRegisterValues())
	require.NoError(t, err)

	_, err = bank.GetByName("nonsense")
	assert.ErrorIs(t, err, ErrUnknownRegister)
	assert.ErrorIs(t, bank.SetByName("nonsense", 0), ErrUnknownRegister)
}

func TestRegisterOrder(t *testing.T) {
	// operand codes 0..7 address the general-purpose registers in
	// this order
	want := []string{"a", "b", "c", "x", "y", "z", "i", "j", "pc", "sp", "o"}
	assert.Equal(t, want, RegisterNames())
	for i, name := range want {
		assert.Equal(t, name, Register(i).String())
	}
}
