package reader

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/handegar/retroopl/base"
)

func TestParseByte(t *testing.T) {
	line := []byte("r a2 87")

	addr, pos, err := ParseByte(line, 1, 1)
	if err != nil || addr != 0xa2 || pos != 4 {
		t.Fatalf("ParseByte = (0x%02x, %d, %v), expected (0xa2, 4, nil)", addr, pos, err)
	}
	val, pos, err := ParseByte(line, pos, 1)
	if err != nil || val != 0x87 || pos != 7 {
		t.Fatalf("ParseByte = (0x%02x, %d, %v), expected (0x87, 7, nil)", val, pos, err)
	}

	t.Run("Upper case", func(t *testing.T) {
		v, _, err := ParseByte([]byte("\tFF"), 0, 1)
		if err != nil || v != 0xFF {
			t.Errorf("Got 0x%02x, %v", v, err)
		}
	})

	failing := []string{"", " ", "a", " 1", "1g", "123", " xy", "-1"}
	for _, str := range failing {
		_, pos, err := ParseByte([]byte(str), 0, 7)
		if !base.IsKind(err, base.FormatError) {
			t.Errorf("ParseByte(%q) should fail, got %v", str, err)
		}
		if pos != 0 {
			t.Errorf("ParseByte(%q) moved the position to %d on failure", str, pos)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		str      string
		expected int32
		pos      int
	}{
		{"0", 0, 1},
		{"  60", 60, 4},
		{"\t1024 ", 1024, 5},
		{"2147483647", 2147483647, 10},
		{"007x", 7, 3},
	}
	for _, tc := range tests {
		v, pos, err := ParseInt([]byte(tc.str), 0, 1)
		if err != nil || v != tc.expected || pos != tc.pos {
			t.Errorf("ParseInt(%q) = (%d, %d, %v), expected (%d, %d, nil)",
				tc.str, v, pos, err, tc.expected, tc.pos)
		}
	}

	t.Run("Overflow", func(t *testing.T) {
		for _, str := range []string{"2147483648", "99999999999"} {
			_, pos, err := ParseInt([]byte(str), 0, 3)
			if !base.IsKind(err, base.OverflowError) {
				t.Errorf("ParseInt(%q) should overflow, got %v", str, err)
			}
			if pos != 0 {
				t.Errorf("ParseInt(%q) moved the position on failure", str)
			}
		}
	})

	t.Run("No digits", func(t *testing.T) {
		for _, str := range []string{"", "  ", "-5", "x1"} {
			_, _, err := ParseInt([]byte(str), 0, 3)
			if !base.IsKind(err, base.FormatError) {
				t.Errorf("ParseInt(%q) should fail, got %v", str, err)
			}
		}
	})
}

func TestIsBlank(t *testing.T) {
	if !IsBlank(nil) || !IsBlank([]byte(" \t ")) {
		t.Errorf("Expected blanks to be blank")
	}
	if IsBlank([]byte(" x")) {
		t.Errorf("' x' is not blank")
	}
}

func TestParseRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("Bytes survive formatting", prop.ForAll(
		func(v uint8) bool {
			got, pos, err := ParseByte([]byte(fmt.Sprintf(" %02x", v)), 0, 1)
			return err == nil && got == v && pos == 3
		},
		gen.UInt8(),
	))

	properties.Property("Ints survive formatting", prop.ForAll(
		func(v int32) bool {
			got, _, err := ParseInt([]byte(fmt.Sprintf("%d", v)), 0, 1)
			return err == nil && got == v
		},
		gen.Int32Range(0, 2147483647),
	))

	properties.TestingRun(t)
}
