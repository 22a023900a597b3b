package reader

import (
	"math"

	"github.com/handegar/retroopl/base"
)

func isBlankChar(c byte) bool {
	return c == ' ' || c == '\t'
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

func skipBlanks(line []byte, pos int) int {
	for pos < len(line) && isBlankChar(line[pos]) {
		pos++
	}
	return pos
}

// True if the string only contains spaces and tabs (or nothing)
func IsBlank(str []byte) bool {
	for _, c := range str {
		if !isBlankChar(c) {
			return false
		}
	}
	return true
}

// Parses exactly two base-16 digits after any blanks. Returns the value
// and the position right after the digits. A third hex digit directly
// following is an error.
func ParseByte(line []byte, pos int, lineNo int32) (byte, int, error) {
	p := skipBlanks(line, pos)

	var result byte
	for i := 0; i < 2; i++ {
		if p >= len(line) {
			return 0, pos, base.LineErrorf(base.FormatError, lineNo, "byte parse failed")
		}
		v, ok := hexValue(line[p])
		if !ok {
			return 0, pos, base.LineErrorf(base.FormatError, lineNo, "byte parse failed")
		}
		result = (result << 4) | v
		p++
	}

	if p < len(line) {
		if _, ok := hexValue(line[p]); ok {
			return 0, pos, base.LineErrorf(base.FormatError, lineNo, "byte parse failed")
		}
	}

	return result, p, nil
}

// Parses a sequence of decimal digits after any blanks into a
// non-negative int32.
func ParseInt(line []byte, pos int, lineNo int32) (int32, int, error) {
	p := skipBlanks(line, pos)

	if p >= len(line) || line[p] < '0' || line[p] > '9' {
		return 0, pos, base.LineErrorf(base.FormatError, lineNo, "integer parse failed")
	}

	var result int32
	for p < len(line) && line[p] >= '0' && line[p] <= '9' {
		d := int32(line[p] - '0')

		if result > math.MaxInt32/10 {
			return 0, pos, base.LineErrorf(base.OverflowError, lineNo, "integer value overflow")
		}
		result *= 10

		if result > math.MaxInt32-d {
			return 0, pos, base.LineErrorf(base.OverflowError, lineNo, "integer value overflow")
		}
		result += d
		p++
	}

	return result, p, nil
}
