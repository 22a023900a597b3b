package base

const (
	OpWait       int = iota // Wait, duration fixed or taken from operands
	OpRegister              // OPL2 register write
	OpEndOfSound            // End of the current pass
)

// VGM opcodes handled by the decoder
const (
	VGMOpRegisterWrite = 0x5A
	VGMOpWait          = 0x61
	VGMOpWait735       = 0x62
	VGMOpWait882       = 0x63
	VGMOpEndOfSound    = 0x66
	VGMOpWait1         = 0x70
)

type VGMOp struct {
	Name     string
	Type     int
	Operands int   // Operand bytes following the opcode
	Wait     int32 // Fixed wait in VGM samples. Zero when taken from the operands.
}

var VGMOps = map[byte]VGMOp{
	VGMOpRegisterWrite: {"YM3812 write", OpRegister, 2, 0},
	VGMOpWait:          {"wait n", OpWait, 2, 0},
	VGMOpWait735:       {"wait 735", OpWait, 0, 735},
	VGMOpWait882:       {"wait 882", OpWait, 0, 882},
	VGMOpEndOfSound:    {"end of sound", OpEndOfSound, 0, 0},
	VGMOpWait1:         {"wait 1", OpWait, 0, 1},
}

// The compact 0x7n waits (n+1 samples). Only 0x70 is part of the default
// table, the rest are accepted when explicitly enabled.
var VGMShorthandOps = map[byte]VGMOp{}

func init() {
	for n := 1; n < 16; n++ {
		VGMShorthandOps[byte(VGMOpWait1+n)] = VGMOp{"wait short", OpWait, 0, int32(n + 1)}
	}
}

// Returns the opcode definition, looking in the shorthand table only when
// 'shorthand' is set.
func LookupVGMOp(code byte, shorthand bool) (VGMOp, bool) {
	op, found := VGMOps[code]
	if found {
		return op, true
	}
	if shorthand {
		op, found = VGMShorthandOps[code]
	}
	return op, found
}
