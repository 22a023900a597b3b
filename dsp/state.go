package dsp

import (
	"fmt"
	"math"
)

const NumChannels = 9

// Input clock of the YM3812 divided by 72
const chipRate = 49716.0

// Output scaling. Nine full level channels may still clip.
const mixGain = 0.25 * 32767.0

// How far (in cycles) a full level modulator moves the carrier phase
const modulationDepth = 1.0

// Feedback modulation in cycles, indexed by the 3-bit feedback field
var feedbackDepth = [8]float64{0, 1.0 / 32, 1.0 / 16, 1.0 / 8, 1.0 / 4, 1.0 / 2, 1.0, 2.0}

// Register offsets of the modulator operator of each channel. The
// carrier sits 3 above.
var modulatorSlots = [NumChannels]int{0x00, 0x01, 0x02, 0x08, 0x09, 0x0A, 0x10, 0x11, 0x12}

type Channel struct {
	FNum     int  // 10 bits
	Block    int  // 3 bits
	KeyOn    bool //
	Feedback int
	Additive bool // Connection bit. FM when false.

	Mod *Operator
	Car *Operator
}

func (c *Channel) Frequency() float64 {
	return float64(c.FNum) * chipRate / math.Pow(2, float64(20-c.Block))
}

// State is a simplified software OPL2. It has the melodic voices with
// their envelopes, feedback and waveforms. Rhythm mode, vibrato, tremolo
// and the timers are not modelled.
type State struct {
	Registers  [256]byte
	Channels   [NumChannels]Channel
	WaveSelect bool

	DebugFlags *DebugFlags

	sampleRate float64
	slots      map[int]*Operator // Register offset -> operator
}

func NewState() *State {
	s := new(State)
	s.DebugFlags = new(DebugFlags)
	s.slots = make(map[int]*Operator)
	for ch := 0; ch < NumChannels; ch++ {
		s.Channels[ch].Mod = NewOperator()
		s.Channels[ch].Car = NewOperator()
		s.slots[modulatorSlots[ch]] = s.Channels[ch].Mod
		s.slots[modulatorSlots[ch]+3] = s.Channels[ch].Car
	}
	s.Reset()
	return s
}

func (s *State) Reset() {
	for i := range s.Registers {
		s.Registers[i] = 0
	}
	for ch := range s.Channels {
		c := &s.Channels[ch]
		c.FNum, c.Block, c.Feedback = 0, 0, 0
		c.KeyOn, c.Additive = false, false
		c.Mod.Reset()
		c.Car.Reset()
	}
	s.WaveSelect = false
	s.DebugFlags.Reset()
}

func (s *State) Init(sampleRate int32) {
	s.Reset()
	s.sampleRate = float64(sampleRate)
}

func (s *State) Finish() {
}

func (s *State) SampleRate() int32 {
	return int32(s.sampleRate)
}

func (s *State) Write(addr byte, val byte) {
	s.Registers[addr] = val
	s.DebugFlags.RegisterWrites++
	decodeRegister(s, addr, val)
}

func (s *State) Generate(out []int16) {
	if s.sampleRate == 0 {
		for i := range out {
			out[i] = 0
		}
		return
	}

	for i := range out {
		v := 0.0
		for ch := range s.Channels {
			v += s.channelSample(&s.Channels[ch])
		}

		v *= mixGain
		if v > math.MaxInt16 {
			v = math.MaxInt16
			s.DebugFlags.ClippedSamples++
		} else if v < math.MinInt16 {
			v = math.MinInt16
			s.DebugFlags.ClippedSamples++
		}
		out[i] = int16(v)
	}
	s.DebugFlags.SamplesGenerated += int64(len(out))
}

func (s *State) wave(op *Operator) int {
	if !s.WaveSelect {
		return 0
	}
	return op.wave
}

func (s *State) channelSample(c *Channel) float64 {
	if c.Mod.Silent() && c.Car.Silent() {
		return 0
	}

	freq := c.Frequency()
	mod, car := c.Mod, c.Car

	fb := 0.0
	if c.Feedback > 0 {
		fb = ((mod.out1 + mod.out2) / 2.0) * feedbackDepth[c.Feedback]
	}
	modOut := mod.Level() * Waveform(s.wave(mod), mod.phase+fb)
	mod.out2 = mod.out1
	mod.out1 = modOut

	var out float64
	if c.Additive {
		out = modOut + car.Level()*Waveform(s.wave(car), car.phase)
	} else {
		out = car.Level() * Waveform(s.wave(car), car.phase+modOut*modulationDepth)
	}

	mod.Advance(freq, s.sampleRate)
	car.Advance(freq, s.sampleRate)
	mod.UpdateEnvelope(s.sampleRate)
	car.UpdateEnvelope(s.sampleRate)

	return out
}

func (s *State) Print() {
	fmt.Printf("State (%d Hz, waveform select %t):\n", int(s.sampleRate), s.WaveSelect)
	for ch, c := range s.Channels {
		fmt.Printf(" CH%d: fnum=%4d block=%d key=%-5t fb=%d additive=%-5t freq=%8.2fHz\n",
			ch, c.FNum, c.Block, c.KeyOn, c.Feedback, c.Additive, c.Frequency())
	}
	s.DebugFlags.Print()
}
