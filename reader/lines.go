package reader

import (
	"bufio"
	"io"
	"math"

	"github.com/handegar/retroopl/base"
)

// LineReader pulls one script line at a time. The line buffer is owned by
// the reader and is only valid until the next call to Next().
type LineReader struct {
	rdr    *bufio.Reader
	buf    []byte
	lineNo int32
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		rdr: bufio.NewReader(r),
		buf: make([]byte, 0, base.LineMaximum),
	}
}

// Current line, without the line break
func (lr *LineReader) Line() []byte {
	return lr.buf
}

// 1-based number of the current line. Zero before the first line.
func (lr *LineReader) LineNo() int32 {
	return lr.lineNo
}

// Reads the next line. Returns false (and no error) only when the input
// was exhausted before any character of a new line was read.
func (lr *LineReader) Next() (bool, error) {
	lr.buf = lr.buf[:0]

	c, err := lr.rdr.ReadByte()
	if err == io.EOF {
		return false, nil
	} else if err != nil {
		return false, base.WrapIO(err, "reading input")
	}

	if lr.lineNo == math.MaxInt32 {
		return false, base.Errorf(base.OverflowError, "too many lines in input")
	}
	lr.lineNo++

	for {
		if c == '\r' {
			c, err = lr.rdr.ReadByte()
			if err != nil && err != io.EOF {
				return false, base.WrapIO(err, "reading input")
			}
			if err == io.EOF || c != '\n' {
				return false, base.LineErrorf(base.FormatError, lr.lineNo,
					"CR without following LF")
			}
		}

		if c == '\n' {
			break
		}

		if c != '\t' && (c < 0x20 || c > 0x7e) {
			return false, base.LineErrorf(base.FormatError, lr.lineNo,
				"line contains invalid character 0x%02x", c)
		}

		if len(lr.buf) >= base.LineMaximum {
			return false, base.LineErrorf(base.FormatError, lr.lineNo,
				"line is too long (max %d bytes)", base.LineMaximum)
		}
		lr.buf = append(lr.buf, c)

		c, err = lr.rdr.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return false, base.WrapIO(err, "reading input")
		}
	}

	return true, nil
}
