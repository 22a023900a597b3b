package writer

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/handegar/retroopl/base"
)

const (
	wavBitDepth    = 16
	wavChannels    = 1
	wavFormatPCM   = 1
	wavHeaderBytes = 36 // RIFF chunk bytes in front of the sample data, minus the first 8
)

// WAVSink writes mono 16-bit PCM. The RIFF and data chunk sizes are
// unknown until Close(), which seeks back and patches them in. The
// writer therefore has to support seeking.
type WAVSink struct {
	enc        *wav.Encoder
	buf        *audio.IntBuffer
	sampleRate int
	samples    int64
	closed     bool
}

func NewWAVSink(w io.WriteSeeker, sampleRate int) (*WAVSink, error) {
	if sampleRate != base.SampleRate44100 && sampleRate != base.SampleRate48000 {
		return nil, base.Errorf(base.RangeError, "unsupported sampling rate %d", sampleRate)
	}

	return &WAVSink{
		enc: wav.NewEncoder(w, sampleRate, wavBitDepth, wavChannels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: wavChannels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: wavBitDepth,
		},
		sampleRate: sampleRate,
	}, nil
}

func (ws *WAVSink) SampleRate() int {
	return ws.sampleRate
}

// Samples written so far
func (ws *WAVSink) Samples() int64 {
	return ws.samples
}

func (ws *WAVSink) WriteSamples(samples []int16) error {
	if cap(ws.buf.Data) < len(samples) {
		ws.buf.Data = make([]int, len(samples))
	}
	ws.buf.Data = ws.buf.Data[:len(samples)]
	for i, s := range samples {
		ws.buf.Data[i] = int(s)
	}

	if err := ws.enc.Write(ws.buf); err != nil {
		return base.WrapIO(err, "writing samples")
	}
	ws.samples += int64(len(samples))
	return nil
}

// Finishes the file by back-patching the chunk sizes
func (ws *WAVSink) Close() error {
	if ws.closed {
		return nil
	}
	ws.closed = true

	dataSize := ws.samples * (wavBitDepth / 8)
	if dataSize > math.MaxInt32 || dataSize > math.MaxInt32-wavHeaderBytes {
		return base.Errorf(base.OverflowError, "overflow computing file size")
	}

	// An empty buffer still makes the encoder emit the header and an
	// empty data chunk
	if ws.samples == 0 {
		ws.buf.Data = ws.buf.Data[:0]
		if err := ws.enc.Write(ws.buf); err != nil {
			return base.WrapIO(err, "writing WAV header")
		}
	}

	if err := ws.enc.Close(); err != nil {
		return base.WrapIO(err, "finishing WAV file")
	}
	return nil
}
