package dsp

// Device is the sound hardware the script interpreter drives. Calls are
// made from one goroutine only.
type Device interface {
	// Prepare for output at the given rate (44100 or 48000)
	Init(sampleRate int32)
	Finish()
	Write(addr byte, val byte)
	// Fills all of 'out' using the registers written so far
	Generate(out []int16)
}
