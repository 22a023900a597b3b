package writer

import (
	"math"

	"github.com/handegar/retroopl/base"
	"github.com/handegar/retroopl/utils"
)

// Sink receives the generated samples when the buffer is flushed
type Sink interface {
	WriteSamples(samples []int16) error
}

// SampleBuffer collects generated samples and hands them to the sink in
// chunks of at most 'capacity' samples.
type SampleBuffer struct {
	samples []int16
	fill    int
	total   int32 // Samples flushed so far
	sink    Sink
}

func NewSampleBuffer(capacity int, sink Sink) *SampleBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &SampleBuffer{
		samples: make([]int16, capacity),
		sink:    sink,
	}
}

// Samples flushed to the sink so far
func (sb *SampleBuffer) Total() int32 {
	return sb.total
}

// Samples waiting to be flushed
func (sb *SampleBuffer) Pending() int {
	return sb.fill
}

// Generates 'count' samples with 'generate', flushing whenever the
// buffer fills up. 'generate' must fill the whole slice it is given.
func (sb *SampleBuffer) Compute(count int32, generate func(out []int16)) error {
	if count < 1 {
		return base.Errorf(base.RangeError, "invalid sample count %d", count)
	}

	for count > 0 {
		if sb.fill >= len(sb.samples) {
			if err := sb.Flush(); err != nil {
				return err
			}
		}

		work := len(sb.samples) - sb.fill
		if int64(count) < int64(work) {
			work = int(count)
		}

		generate(sb.samples[sb.fill : sb.fill+work])
		sb.fill += work
		count -= int32(work)
	}

	return nil
}

// Writes any buffered samples to the sink and clears the buffer
func (sb *SampleBuffer) Flush() error {
	if sb.fill == 0 {
		return nil
	}

	if int64(sb.fill) > math.MaxInt32 {
		return base.Errorf(base.OverflowError, "sample count overflow")
	}
	total, err := utils.AddChecked(sb.total, int32(sb.fill), "sample count")
	if err != nil {
		return err
	}

	if err := sb.sink.WriteSamples(sb.samples[:sb.fill]); err != nil {
		return err
	}

	sb.total = total
	sb.fill = 0
	return nil
}
