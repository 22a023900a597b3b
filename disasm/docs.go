package disasm

type RegDoc struct {
	First byte // First register of the bank
	Last  byte // Last register of the bank
	Name  string
	Short string
	Long  string
}

var RegDocs = []RegDoc{
	{0x01, 0x01, "TEST", "Test / waveform select enable",
		"Bit 5 enables the waveform select registers 0xE0-0xF5. " +
			"The other bits are test bits and should be zero."},
	{0x02, 0x02, "TIMER1", "Timer 1 count",
		"Counts up in 80us steps and raises a flag on overflow."},
	{0x03, 0x03, "TIMER2", "Timer 2 count",
		"Counts up in 320us steps and raises a flag on overflow."},
	{0x04, 0x04, "TIMERCTL", "Timer control",
		"Starts, masks and resets the two timers."},
	{0x08, 0x08, "CSM/SEL", "Composite sine mode / keyboard split",
		"Bit 7 enables composite sine speech mode, bit 6 selects the " +
			"keyboard split point for key scaling."},
	{0x20, 0x35, "AVEKM", "AM / VIB / EG-type / KSR / multiplier",
		"Per operator: tremolo, vibrato, sustaining envelope, key scale " +
			"rate and the frequency multiplier in the low nibble."},
	{0x40, 0x55, "KSLTL", "Key scale level / total level",
		"Per operator: attenuation growing with pitch in the top two bits, " +
			"total attenuation in 0.75dB steps in the low six bits."},
	{0x60, 0x75, "ARDR", "Attack rate / decay rate",
		"Per operator: attack rate in the high nibble, decay rate in the low nibble. " +
			"Zero means the phase never ends."},
	{0x80, 0x95, "SLRR", "Sustain level / release rate",
		"Per operator: sustain level in 3dB steps in the high nibble, " +
			"release rate in the low nibble."},
	{0xA0, 0xA8, "FNUM", "F-number, low 8 bits",
		"Per channel: low eight bits of the 10-bit frequency number."},
	{0xB0, 0xB8, "KON/BLOCK", "Key-on / block / F-number high bits",
		"Per channel: bit 5 keys the note on, bits 2-4 are the octave block, " +
			"bits 0-1 are the top of the frequency number."},
	{0xBD, 0xBD, "RHYTHM", "Tremolo/vibrato depth, rhythm mode",
		"Deep tremolo and vibrato bits, rhythm mode enable and the five " +
			"percussion key bits."},
	{0xC0, 0xC8, "FBCNT", "Feedback / connection",
		"Per channel: modulator feedback in bits 1-3, bit 0 selects additive " +
			"synthesis instead of FM."},
	{0xE0, 0xF5, "WS", "Waveform select",
		"Per operator: sine, half sine, absolute sine or quarter sine pulses. " +
			"Only active when enabled through register 0x01."},
}

// Finds the documentation for the bank holding 'addr'
func LookupRegDoc(addr byte) (RegDoc, bool) {
	for _, doc := range RegDocs {
		if addr >= doc.First && addr <= doc.Last {
			return doc, true
		}
	}
	return RegDoc{}, false
}
