package dsp

import (
	"fmt"
)

// Counters collected while generating, printed with -print-debug
type DebugFlags struct {
	RegisterWrites   int64
	KeyOnCount       int64
	SamplesGenerated int64
	ClippedSamples   int64
}

func (df *DebugFlags) Reset() {
	df.RegisterWrites = 0
	df.KeyOnCount = 0
	df.SamplesGenerated = 0
	df.ClippedSamples = 0
}

func (df *DebugFlags) Print() {
	fmt.Printf("DebugFlags:\n"+
		" RegisterWrites = %d\n"+
		" KeyOnCount = %d\n"+
		" SamplesGenerated = %d\n"+
		" ClippedSamples = %d\n",
		df.RegisterWrites,
		df.KeyOnCount,
		df.SamplesGenerated,
		df.ClippedSamples)
}
