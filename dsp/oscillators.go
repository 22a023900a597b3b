package dsp

import (
	"math"
)

const (
	EnvOff int = iota
	EnvAttack
	EnvDecay
	EnvSustain
	EnvRelease
)

const silenceDB = 96.0

// Frequency multipliers selected by the low nibble of 0x20-0x35
var multipliers = [16]float64{0.5, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 12, 12, 15, 15}

// Seconds for a full attack/decay at rate 1. Every rate step halves it.
const attackBaseSeconds = 2.82624
const decayBaseSeconds = 39.28064

//
// Operator: phase generator + envelope
//

type Operator struct {
	phase float64 // 0..1
	mult  float64

	sustain bool // EG-type bit. Percussive when false.
	tl      int  // Total level, 0.75dB steps
	ar      int
	dr      int
	sl      int
	rr      int
	wave    int

	envState int
	envDB    float64 // Current attenuation, 0..96

	out1, out2 float64 // The two previous outputs, used for feedback
}

func NewOperator() *Operator {
	op := new(Operator)
	op.Reset()
	return op
}

func (op *Operator) Reset() {
	*op = Operator{mult: 1.0, envState: EnvOff, envDB: silenceDB}
}

func (op *Operator) KeyOn() {
	op.phase = 0
	op.envState = EnvAttack
	if op.ar == 15 {
		op.envDB = 0
		op.envState = EnvDecay
	}
}

func (op *Operator) KeyOff() {
	if op.envState != EnvOff {
		op.envState = EnvRelease
	}
}

func (op *Operator) Silent() bool {
	return op.envState == EnvOff
}

func rateStep(rate int, baseSeconds float64, sampleRate float64) float64 {
	if rate == 0 {
		return 0
	}
	seconds := baseSeconds / math.Pow(2, float64(rate-1))
	return silenceDB / (seconds * sampleRate)
}

// Advances the envelope one output sample
func (op *Operator) UpdateEnvelope(sampleRate float64) {
	switch op.envState {
	case EnvAttack:
		op.envDB -= rateStep(op.ar, attackBaseSeconds, sampleRate)
		if op.envDB <= 0 {
			op.envDB = 0
			op.envState = EnvDecay
		}
	case EnvDecay:
		sustainDB := float64(op.sl) * 3.0
		if op.sl == 15 {
			sustainDB = 93.0
		}
		op.envDB += rateStep(op.dr, decayBaseSeconds, sampleRate)
		if op.envDB >= sustainDB {
			op.envDB = sustainDB
			if op.sustain {
				op.envState = EnvSustain
			} else {
				op.envState = EnvRelease
			}
		}
	case EnvRelease:
		op.envDB += rateStep(op.rr, decayBaseSeconds, sampleRate)
		if op.envDB >= silenceDB {
			op.envDB = silenceDB
			op.envState = EnvOff
		}
	}
}

// Linear output level including the total level attenuation
func (op *Operator) Level() float64 {
	db := op.envDB + float64(op.tl)*0.75
	if db >= silenceDB {
		return 0
	}
	return math.Pow(10, -db/20.0)
}

func (op *Operator) Advance(freq float64, sampleRate float64) {
	op.phase += (freq * op.mult) / sampleRate
	op.phase -= math.Floor(op.phase)
}

// Waveform value for phase 'p' (in cycles). Only the sine is available
// unless waveform selection was enabled through register 0x01.
func Waveform(wave int, p float64) float64 {
	p -= math.Floor(p)
	s := math.Sin(2.0 * math.Pi * p)

	switch wave {
	case 1: // Half sine
		if p >= 0.5 {
			return 0
		}
	case 2: // Absolute sine
		return math.Abs(s)
	case 3: // Quarter sine pulses
		if math.Mod(p, 0.5) >= 0.25 {
			return 0
		}
		return math.Abs(s)
	}
	return s
}
