package reader

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/faiface/beep/wav"

	"github.com/handegar/retroopl/base"
)

// Decompressed VGZ input is capped to keep a corrupt file from eating
// all memory. The data section itself is capped separately.
const maxDecompressedVGM = 2 * base.MaxDataSection

// The VGM data section and the positions needed to walk it
type VGMFile struct {
	Version    uint32
	DataOffset uint32 // Absolute offset of the data section in the file
	LoopOffset uint32 // Loop start, relative to the data section
	Looped     bool   // The header sets a loop offset, possibly the data start
	Data       []byte
}

func (f *VGMFile) HasLoop() bool {
	return f.Looped
}

func readHead(rdr io.ReadSeeker, offs int64) (uint32, error) {
	if _, err := rdr.Seek(offs, io.SeekStart); err != nil {
		return 0, base.WrapIO(err, "input seek failed")
	}

	var value uint32
	if err := binary.Read(rdr, binary.LittleEndian, &value); err != nil {
		return 0, base.WrapIO(err, "failed to read header field 0x%02x", offs)
	}
	return value, nil
}

// Resolves the VGM header and loads the whole data section into memory.
func ReadVGM(rdr io.ReadSeeker) (*VGMFile, error) {
	magic, err := readHead(rdr, base.VGMMagicOffset)
	if err != nil {
		return nil, err
	}
	if magic != base.VGMMagic {
		return nil, base.Errorf(base.FormatError,
			"input is not a VGM file (decompress VGZ files first)")
	}

	version, err := readHead(rdr, base.VGMVersionOffset)
	if err != nil {
		return nil, err
	}

	// Header offsets are relative to their own field position
	fileLen, err := readHead(rdr, base.VGMLengthOffset)
	if err != nil {
		return nil, err
	}
	fileLen += base.VGMLengthOffset

	loopOffs, err := readHead(rdr, base.VGMLoopOffset)
	if err != nil {
		return nil, err
	}
	loopOffs += base.VGMLoopOffset
	looped := loopOffs > base.VGMLoopOffset
	if !looped {
		loopOffs = 0
	}

	dataOffs := uint32(base.VGMDefaultData)
	if version >= base.VGMDataOffsetMinor {
		dataOffs, err = readHead(rdr, base.VGMDataOffset)
		if err != nil {
			return nil, err
		}
		dataOffs += base.VGMDataOffset
		if dataOffs <= base.VGMLegacyDataLimit {
			dataOffs = base.VGMDefaultData
		}
	}

	if loopOffs == 0 {
		loopOffs = dataOffs
	}

	if loopOffs < dataOffs || loopOffs >= fileLen {
		return nil, base.Errorf(base.FormatError,
			"invalid looping offset 0x%x (data 0x%x, end 0x%x)", loopOffs, dataOffs, fileLen)
	}

	if fileLen <= dataOffs {
		return nil, base.Errorf(base.FormatError,
			"improper data offset 0x%x and file length 0x%x", dataOffs, fileLen)
	}

	dataLen := fileLen - dataOffs
	if dataLen > base.MaxDataSection {
		return nil, base.Errorf(base.RangeError,
			"VGM data section is too large (%d bytes, max %d)", dataLen, base.MaxDataSection)
	}

	if _, err := rdr.Seek(int64(dataOffs), io.SeekStart); err != nil {
		return nil, base.WrapIO(err, "data seek failed")
	}

	data := make([]byte, dataLen)
	if _, err := io.ReadFull(rdr, data); err != nil {
		return nil, base.WrapIO(err, "failed to read %d bytes of VGM data", dataLen)
	}

	return &VGMFile{
		Version:    version,
		DataOffset: dataOffs,
		LoopOffset: loopOffs - dataOffs,
		Looped:     looped,
		Data:       data,
	}, nil
}

// Reads a VGM file from disk. Gzip compressed (VGZ) files are unpacked
// first.
func ReadVGMFile(filename string) (*VGMFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, base.WrapIO(err, "failed to open file '%s'", filename)
	}
	defer file.Close()

	buf := bufio.NewReader(file)
	magic, err := buf.Peek(2)
	if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
		return ReadVGM(file)
	}

	gz, err := gzip.NewReader(buf)
	if err != nil {
		return nil, base.WrapIO(err, "failed to decompress '%s'", filename)
	}
	defer gz.Close()

	raw, err := io.ReadAll(io.LimitReader(gz, maxDecompressedVGM+1))
	if err != nil {
		return nil, base.WrapIO(err, "failed to decompress '%s'", filename)
	}
	if len(raw) > maxDecompressedVGM {
		return nil, base.Errorf(base.RangeError, "decompressed VGM file is too large")
	}

	return ReadVGM(bytes.NewReader(raw))
}

type WAVInfo struct {
	SampleRate int
	Channels   int
	Precision  int // Bytes per sample
	Samples    int
	Peak       float64 // Largest absolute sample value, 0..1
}

func (i WAVInfo) Seconds() float64 {
	if i.SampleRate == 0 {
		return 0
	}
	return float64(i.Samples) / float64(i.SampleRate)
}

// Decodes a WAV file and reports its format, length and peak level.
func ReadWAV(filename string) (WAVInfo, error) {
	var info WAVInfo

	f, err := os.Open(filename)
	if err != nil {
		return info, base.WrapIO(err, "failed to open file '%s'", filename)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return info, base.WrapIO(err, "failed to decode '%s'", filename)
	}
	defer stream.Close()

	info.SampleRate = int(format.SampleRate)
	info.Channels = format.NumChannels
	info.Precision = format.Precision
	info.Samples = stream.Len()

	samples := make([][2]float64, 4096)
	for {
		n, ok := stream.Stream(samples)
		for i := 0; i < n; i++ {
			info.Peak = math.Max(info.Peak, math.Abs(samples[i][0]))
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return info, base.WrapIO(err, "failed to decode '%s'", filename)
	}

	return info, nil
}
