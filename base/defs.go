package base

// Script format limits
const (
	LineMaximum    = 1023 // Bytes in one script line, not counting the line break
	ScriptTag      = "OPL2"
	MinControlRate = 1
	MaxControlRate = 1024
)

// Supported output sample rates
const (
	SampleRate44100 = 44100
	SampleRate48000 = 48000
)

// VGM header layout. All fields are little-endian dwords.
const (
	VGMMagic           = 0x206d6756 // "Vgm "
	VGMMagicOffset     = 0x00
	VGMLengthOffset    = 0x04
	VGMVersionOffset   = 0x08
	VGMLoopOffset      = 0x1C
	VGMDataOffset      = 0x34
	VGMDefaultData     = 0x40
	VGMDataOffsetMinor = 0x150 // First version with a data offset field
	VGMLegacyDataLimit = 52    // Data offsets at or below this use VGMDefaultData

	MaxDataSection = 16 * 1024 * 1024

	VGMClockRate   = 44100 // VGM wait units per second
	VGMControlRate = 980   // Script control rate produced from VGM (1/45th)
)

type EventKind int

const (
	RegisterWrite EventKind = iota
	Wait
)

func (k EventKind) String() string {
	switch k {
	case RegisterWrite:
		return "register-write"
	case Wait:
		return "wait"
	}
	return "unknown"
}

// An Event is one command of the abstract event stream shared by the
// script interpreter and the VGM decoder.
type Event struct {
	Kind  EventKind
	Addr  byte  // RegisterWrite only
	Value byte  // RegisterWrite only
	Ticks int32 // Wait only, in control-rate ticks
}

func NewRegisterWrite(addr byte, val byte) Event {
	return Event{Kind: RegisterWrite, Addr: addr, Value: val}
}

func NewWait(ticks int32) Event {
	return Event{Kind: Wait, Ticks: ticks}
}
