package writer

import (
	"errors"
	"math"
	"testing"

	"github.com/handegar/retroopl/base"
)

type recordingSink struct {
	chunks  []int
	samples []int16
	fail    error
}

func (rs *recordingSink) WriteSamples(samples []int16) error {
	if rs.fail != nil {
		return rs.fail
	}
	rs.chunks = append(rs.chunks, len(samples))
	rs.samples = append(rs.samples, samples...)
	return nil
}

// Generates a running counter so the order of the samples can be checked
func counter() func([]int16) {
	next := int16(0)
	return func(out []int16) {
		for i := range out {
			out[i] = next
			next++
		}
	}
}

func TestSampleBuffer(t *testing.T) {
	t.Run("Chunked flushing", func(t *testing.T) {
		sink := &recordingSink{}
		sb := NewSampleBuffer(4, sink)
		gen := counter()

		if err := sb.Compute(3, gen); err != nil {
			t.Fatal(err)
		}
		if err := sb.Compute(6, gen); err != nil {
			t.Fatal(err)
		}
		if sb.Total() != 8 || sb.Pending() != 1 {
			t.Errorf("Total()=%d, Pending()=%d, expected 8 and 1", sb.Total(), sb.Pending())
		}
		if err := sb.Flush(); err != nil {
			t.Fatal(err)
		}

		expectedChunks := []int{4, 4, 1}
		if len(sink.chunks) != len(expectedChunks) {
			t.Fatalf("Got chunks %v, expected %v", sink.chunks, expectedChunks)
		}
		for i := range expectedChunks {
			if sink.chunks[i] != expectedChunks[i] {
				t.Errorf("Got chunks %v, expected %v", sink.chunks, expectedChunks)
			}
		}
		for i, s := range sink.samples {
			if int(s) != i {
				t.Fatalf("Sample %d is %d", i, s)
			}
		}
		if sb.Total() != 9 || sb.Pending() != 0 {
			t.Errorf("Total()=%d, Pending()=%d", sb.Total(), sb.Pending())
		}
	})

	t.Run("Full buffer is kept until more is needed", func(t *testing.T) {
		sink := &recordingSink{}
		sb := NewSampleBuffer(4, sink)
		if err := sb.Compute(4, counter()); err != nil {
			t.Fatal(err)
		}
		if len(sink.chunks) != 0 || sb.Pending() != 4 {
			t.Errorf("Expected 4 pending samples and no flush, got %v / %d", sink.chunks, sb.Pending())
		}
	})

	t.Run("Empty flush", func(t *testing.T) {
		sink := &recordingSink{}
		sb := NewSampleBuffer(4, sink)
		if err := sb.Flush(); err != nil || len(sink.chunks) != 0 {
			t.Errorf("Flushing nothing should not touch the sink")
		}
	})

	t.Run("Invalid count", func(t *testing.T) {
		sb := NewSampleBuffer(4, &recordingSink{})
		for _, count := range []int32{0, -1} {
			if err := sb.Compute(count, counter()); !base.IsKind(err, base.RangeError) {
				t.Errorf("Compute(%d) should fail, got %v", count, err)
			}
		}
	})

	t.Run("Sink failure", func(t *testing.T) {
		failure := base.WrapIO(errors.New("disk full"), "writing samples")
		sb := NewSampleBuffer(2, &recordingSink{fail: failure})
		err := sb.Compute(5, counter())
		if !base.IsKind(err, base.IOError) {
			t.Errorf("Expected the sink error, got %v", err)
		}
	})

	t.Run("Total overflow", func(t *testing.T) {
		sink := &recordingSink{}
		sb := NewSampleBuffer(4, sink)
		sb.total = math.MaxInt32 - 1
		if err := sb.Compute(2, counter()); err != nil {
			t.Fatal(err)
		}
		if err := sb.Flush(); !base.IsKind(err, base.OverflowError) {
			t.Errorf("Expected an overflow, got %v", err)
		}
		if len(sink.chunks) != 0 {
			t.Errorf("Nothing should reach the sink on overflow")
		}
	})
}
