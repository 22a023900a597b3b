package dsp

// Operator register banks. The low 5 bits select the operator slot.
const (
	RegTest         = 0x01
	RegOpFlags      = 0x20 // AM, VIB, EG-type, KSR, multiplier
	RegOpLevel      = 0x40 // Key scale level, total level
	RegOpAttackDec  = 0x60 // Attack rate, decay rate
	RegOpSustainRel = 0x80 // Sustain level, release rate
	RegFNumLow      = 0xA0
	RegKeyBlockFNum = 0xB0 // Key-on, block, F-number high bits
	RegRhythm       = 0xBD
	RegFeedbackConn = 0xC0
	RegOpWaveform   = 0xE0
)

const opSlotCount = 0x16

func (s *State) operator(addr byte) *Operator {
	return s.slots[int(addr)&0x1F]
}

// Applies a register write to the synthesis parameters
func decodeRegister(s *State, addr byte, val byte) {
	switch {
	case addr == RegTest:
		s.WaveSelect = val&0x20 != 0

	case addr >= RegOpFlags && addr < RegOpFlags+opSlotCount:
		if op := s.operator(addr); op != nil {
			op.sustain = val&0x20 != 0
			op.mult = multipliers[val&0x0F]
		}

	case addr >= RegOpLevel && addr < RegOpLevel+opSlotCount:
		if op := s.operator(addr); op != nil {
			op.tl = int(val & 0x3F)
		}

	case addr >= RegOpAttackDec && addr < RegOpAttackDec+opSlotCount:
		if op := s.operator(addr); op != nil {
			op.ar = int(val >> 4)
			op.dr = int(val & 0x0F)
		}

	case addr >= RegOpSustainRel && addr < RegOpSustainRel+opSlotCount:
		if op := s.operator(addr); op != nil {
			op.sl = int(val >> 4)
			op.rr = int(val & 0x0F)
		}

	case addr >= RegFNumLow && addr < RegFNumLow+NumChannels:
		c := &s.Channels[addr-RegFNumLow]
		c.FNum = (c.FNum & 0x300) | int(val)

	case addr >= RegKeyBlockFNum && addr < RegKeyBlockFNum+NumChannels:
		c := &s.Channels[addr-RegKeyBlockFNum]
		c.FNum = (c.FNum & 0xFF) | (int(val&0x03) << 8)
		c.Block = int((val >> 2) & 0x07)

		keyOn := val&0x20 != 0
		if keyOn && !c.KeyOn {
			c.Mod.KeyOn()
			c.Car.KeyOn()
			s.DebugFlags.KeyOnCount++
		} else if !keyOn && c.KeyOn {
			c.Mod.KeyOff()
			c.Car.KeyOff()
		}
		c.KeyOn = keyOn

	// FIXME: RegRhythm is only stored. The five percussion voices
	// need their own noise and phase generators. (20261016 handegar)

	case addr >= RegFeedbackConn && addr < RegFeedbackConn+NumChannels:
		c := &s.Channels[addr-RegFeedbackConn]
		c.Feedback = int((val >> 1) & 0x07)
		c.Additive = val&0x01 != 0

	case addr >= RegOpWaveform && addr < RegOpWaveform+opSlotCount:
		if op := s.operator(addr); op != nil {
			op.wave = int(val & 0x03)
		}
	}
}

// Maps the slot bits of an operator register to its channel. Returns
// false for the unused slots.
func OperatorSlot(addr byte) (channel int, carrier bool, ok bool) {
	slot := int(addr) & 0x1F
	for ch, m := range modulatorSlots {
		if slot == m {
			return ch, false, true
		}
		if slot == m+3 {
			return ch, true, true
		}
	}
	return 0, false, false
}
