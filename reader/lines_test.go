package reader

import (
	"math"
	"strings"
	"testing"

	"github.com/handegar/retroopl/base"
)

func readAll(t *testing.T, input string) ([]string, error) {
	t.Helper()
	lr := NewLineReader(strings.NewReader(input))
	var lines []string
	for {
		ok, err := lr.Next()
		if err != nil {
			return lines, err
		}
		if !ok {
			return lines, nil
		}
		lines = append(lines, string(lr.Line()))
	}
}

func TestLineReader(t *testing.T) {
	t.Run("LF and CRLF", func(t *testing.T) {
		lines, err := readAll(t, "OPL2 60\r\nr 20 01\n\nw 2\r\n")
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		expected := []string{"OPL2 60", "r 20 01", "", "w 2"}
		if strings.Join(lines, "|") != strings.Join(expected, "|") {
			t.Errorf("Got %q, expected %q", lines, expected)
		}
	})

	t.Run("Last line without line break", func(t *testing.T) {
		lines, err := readAll(t, "OPL2 60\nw 2")
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		if len(lines) != 2 || lines[1] != "w 2" {
			t.Errorf("Got %q", lines)
		}
	})

	t.Run("Empty input", func(t *testing.T) {
		lines, err := readAll(t, "")
		if err != nil || len(lines) != 0 {
			t.Errorf("Expected no lines and no error, got %q, %v", lines, err)
		}
	})

	t.Run("Tabs are allowed", func(t *testing.T) {
		lines, err := readAll(t, "r\t20\t01\n")
		if err != nil || len(lines) != 1 {
			t.Errorf("Got %q, %v", lines, err)
		}
	})

	t.Run("Lone CR", func(t *testing.T) {
		lines, err := readAll(t, "OPL2 60\nr 20\r01\n")
		if !base.IsKind(err, base.FormatError) {
			t.Fatalf("Expected a format error, got %v", err)
		}
		if len(lines) != 1 {
			t.Errorf("Expected the first line to be read, got %q", lines)
		}
		if !strings.Contains(err.Error(), "(line 2)") {
			t.Errorf("Expected line 2 in '%s'", err.Error())
		}
	})

	t.Run("CR at end of input", func(t *testing.T) {
		_, err := readAll(t, "OPL2 60\r")
		if !base.IsKind(err, base.FormatError) {
			t.Errorf("Expected a format error, got %v", err)
		}
	})

	t.Run("Invalid character", func(t *testing.T) {
		for _, input := range []string{"r 20 \x0101\n", "w 2\x7f\n", "w \xc3\xa52\n"} {
			_, err := readAll(t, input)
			if !base.IsKind(err, base.FormatError) {
				t.Errorf("Expected a format error for %q, got %v", input, err)
			}
		}
	})

	t.Run("Line length", func(t *testing.T) {
		longest := strings.Repeat("x", base.LineMaximum)
		lines, err := readAll(t, longest+"\n")
		if err != nil || len(lines) != 1 || len(lines[0]) != base.LineMaximum {
			t.Fatalf("A %d byte line should be accepted (err=%v)", base.LineMaximum, err)
		}

		_, err = readAll(t, longest+"x\n")
		if !base.IsKind(err, base.FormatError) {
			t.Fatalf("Expected a format error, got %v", err)
		}
		if !strings.Contains(err.Error(), "too long") {
			t.Errorf("Unexpected message '%s'", err.Error())
		}
	})

	t.Run("Line numbers", func(t *testing.T) {
		lr := NewLineReader(strings.NewReader("a\nb\nc\n"))
		for i := int32(1); i <= 3; i++ {
			if ok, err := lr.Next(); !ok || err != nil {
				t.Fatalf("Next() failed at line %d", i)
			}
			if lr.LineNo() != i {
				t.Errorf("LineNo() = %d, expected %d", lr.LineNo(), i)
			}
		}
	})

	t.Run("Line counter overflow", func(t *testing.T) {
		lr := NewLineReader(strings.NewReader("w 1\n"))
		lr.lineNo = math.MaxInt32
		_, err := lr.Next()
		if !base.IsKind(err, base.OverflowError) {
			t.Errorf("Expected an overflow, got %v", err)
		}
	})
}
