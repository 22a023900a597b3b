package vgm

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/handegar/retroopl/base"
	"github.com/handegar/retroopl/reader"
	"github.com/handegar/retroopl/script"
)

func walk(t *testing.T, d *Decoder) ([]base.Event, error) {
	t.Helper()
	var events []base.Event
	err := d.Walk(func(ev base.Event) error {
		events = append(events, ev)
		return nil
	})
	return events, err
}

func sameEvents(a, b []base.Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func vgmFile(loop uint32, data ...byte) *reader.VGMFile {
	return &reader.VGMFile{Version: 0x151, DataOffset: 0x40, LoopOffset: loop, Data: data}
}

func TestWalk(t *testing.T) {
	t.Run("Register writes and waits", func(t *testing.T) {
		d := NewDecoder(vgmFile(0,
			0x5A, 0x20, 0x01,
			0x62,
			0x5A, 0xB0, 0x32,
			0x63,
			0x61, 0x10, 0x27, // 10000 samples
			0x66), 1)
		events, err := walk(t, d)
		if err != nil {
			t.Fatalf("Walk failed: %s", err)
		}
		// 735 -> 16 ticks, 1617 -> 35 ticks, 11617 -> 258 ticks
		expected := []base.Event{
			base.NewRegisterWrite(0x20, 0x01),
			base.NewWait(16),
			base.NewRegisterWrite(0xB0, 0x32),
			base.NewWait(19),
			base.NewWait(223),
		}
		if !sameEvents(events, expected) {
			t.Errorf("Got %v, expected %v", events, expected)
		}
	})

	t.Run("Short waits accumulate", func(t *testing.T) {
		data := bytes.Repeat([]byte{0x70}, 90)
		events, err := walk(t, NewDecoder(vgmFile(0, data...), 1))
		if err != nil {
			t.Fatalf("Walk failed: %s", err)
		}
		expected := []base.Event{base.NewWait(1), base.NewWait(1)}
		if !sameEvents(events, expected) {
			t.Errorf("Got %v, expected %v", events, expected)
		}
	})

	t.Run("Zero wait is dropped", func(t *testing.T) {
		events, err := walk(t, NewDecoder(vgmFile(0, 0x61, 0x00, 0x00, 0x5A, 0x01, 0x20), 1))
		if err != nil {
			t.Fatalf("Walk failed: %s", err)
		}
		if !sameEvents(events, []base.Event{base.NewRegisterWrite(0x01, 0x20)}) {
			t.Errorf("Got %v", events)
		}
	})

	t.Run("Unassigned opcode", func(t *testing.T) {
		events, err := walk(t, NewDecoder(vgmFile(0,
			0x5A, 0x20, 0x01,
			0x7A,
			0x5A, 0x40, 0x00), 1))
		if !base.IsKind(err, base.UnsupportedOpcode) {
			t.Fatalf("Expected an unsupported opcode, got %v", err)
		}
		if !strings.Contains(err.Error(), "0x7a") {
			t.Errorf("Opcode missing from '%s'", err.Error())
		}
		if !sameEvents(events, []base.Event{base.NewRegisterWrite(0x20, 0x01)}) {
			t.Errorf("Nothing should be emitted after the bad opcode, got %v", events)
		}
	})

	t.Run("Shorthand waits", func(t *testing.T) {
		d := NewDecoder(vgmFile(0, 0x7A, 0x7F, 0x7F, 0x7F), 1)
		d.ShorthandWaits = true
		events, err := walk(t, d)
		if err != nil {
			t.Fatalf("Walk failed: %s", err)
		}
		// 11 + 3*16 = 59 samples
		if !sameEvents(events, []base.Event{base.NewWait(1)}) {
			t.Errorf("Got %v", events)
		}
	})

	t.Run("Loop replay", func(t *testing.T) {
		d := NewDecoder(vgmFile(0, 0x5A, 0x20, 0x01, 0x61, 80, 0x00, 0x66), 2)
		events, err := walk(t, d)
		if err != nil {
			t.Fatalf("Walk failed: %s", err)
		}
		// 80 samples -> 1 tick, 160 samples -> 3 ticks
		expected := []base.Event{
			base.NewRegisterWrite(0x20, 0x01),
			base.NewWait(1),
			base.NewRegisterWrite(0x20, 0x01),
			base.NewWait(2),
		}
		if !sameEvents(events, expected) {
			t.Errorf("Got %v, expected %v", events, expected)
		}
	})

	t.Run("Loop body only", func(t *testing.T) {
		d := NewDecoder(vgmFile(3, 0x5A, 0x01, 0x20, 0x5A, 0xB0, 0x32, 0x66), 2)
		events, err := walk(t, d)
		if err != nil {
			t.Fatalf("Walk failed: %s", err)
		}
		expected := []base.Event{
			base.NewRegisterWrite(0x01, 0x20),
			base.NewRegisterWrite(0xB0, 0x32),
			base.NewRegisterWrite(0xB0, 0x32),
		}
		if !sameEvents(events, expected) {
			t.Errorf("Got %v, expected %v", events, expected)
		}
	})

	t.Run("End of sound stops the pass", func(t *testing.T) {
		d := NewDecoder(vgmFile(0, 0x5A, 0x20, 0x01, 0x66, 0x5A, 0x40, 0x00), 2)
		events, err := walk(t, d)
		if err != nil {
			t.Fatalf("Walk failed: %s", err)
		}
		expected := []base.Event{
			base.NewRegisterWrite(0x20, 0x01),
			base.NewRegisterWrite(0x20, 0x01),
		}
		if !sameEvents(events, expected) {
			t.Errorf("Got %v, expected %v", events, expected)
		}
	})

	t.Run("Missing parameters", func(t *testing.T) {
		for _, data := range [][]byte{{0x5A, 0x20}, {0x61, 0x01}} {
			_, err := walk(t, NewDecoder(vgmFile(0, data...), 1))
			if !base.IsKind(err, base.FormatError) {
				t.Errorf("% x: expected a format error, got %v", data, err)
			}
		}
	})

	t.Run("Sample counter overflow", func(t *testing.T) {
		// 32770 * 65535 samples is past MaxInt32
		data := bytes.Repeat([]byte{0x61, 0xFF, 0xFF}, 32770)
		_, err := walk(t, NewDecoder(vgmFile(0, data...), 1))
		if !base.IsKind(err, base.OverflowError) {
			t.Errorf("Expected an overflow, got %v", err)
		}
	})

	t.Run("Bad repeat count", func(t *testing.T) {
		for _, repeat := range []int{0, 3} {
			_, err := walk(t, NewDecoder(vgmFile(0, 0x66), repeat))
			if !base.IsKind(err, base.RangeError) {
				t.Errorf("Repeat %d: expected a range error, got %v", repeat, err)
			}
		}
	})
}

func TestConvert(t *testing.T) {
	t.Run("Script text", func(t *testing.T) {
		var out bytes.Buffer
		d := NewDecoder(vgmFile(0, 0x5A, 0xA2, 0x87, 0x62, 0x66), 1)
		if err := d.Convert(&out); err != nil {
			t.Fatalf("Convert failed: %s", err)
		}
		expected := "OPL2 980\nr a2 87\nw 16\n"
		if out.String() != expected {
			t.Errorf("Got %q, expected %q", out.String(), expected)
		}
	})

	t.Run("Output parses back to the same events", func(t *testing.T) {
		d := NewDecoder(vgmFile(0,
			0x5A, 0x20, 0x01, 0x5A, 0x63, 0xF0, 0x5A, 0xA0, 0x44, 0x5A, 0xB0, 0x32,
			0x63, 0x5A, 0xB0, 0x12, 0x61, 0x44, 0xAC, 0x66), 2)
		d.Annotate = true

		expected, err := walk(t, d)
		if err != nil {
			t.Fatal(err)
		}

		var out bytes.Buffer
		if err := d.Convert(&out); err != nil {
			t.Fatalf("Convert failed: %s", err)
		}

		scanner := bufio.NewScanner(&out)
		scanner.Scan()
		if scanner.Text() != "OPL2 980" {
			t.Fatalf("Bad header '%s'", scanner.Text())
		}
		var parsed []base.Event
		for scanner.Scan() {
			ev, ok, err := script.ParseLine(scanner.Text())
			if err != nil {
				t.Fatalf("Line '%s' does not parse: %s", scanner.Text(), err)
			}
			if ok {
				parsed = append(parsed, ev)
			}
		}
		if !sameEvents(parsed, expected) {
			t.Errorf("Got %v, expected %v", parsed, expected)
		}
	})

	t.Run("Partial output on error", func(t *testing.T) {
		var out bytes.Buffer
		d := NewDecoder(vgmFile(0, 0x5A, 0x20, 0x01, 0x99), 1)
		err := d.Convert(&out)
		if !base.IsKind(err, base.UnsupportedOpcode) {
			t.Fatalf("Expected an unsupported opcode, got %v", err)
		}
		if out.String() != "OPL2 980\nr 20 01\n" {
			t.Errorf("Got %q", out.String())
		}
	})
}

func TestConvertIdempotent(t *testing.T) {
	d := NewDecoder(vgmFile(0,
		0x5A, 0x20, 0x01, 0x62, 0x5A, 0xB0, 0x32, 0x70, 0x70, 0x63, 0x61, 0x39, 0x05, 0x66), 1)

	var first, second bytes.Buffer
	if err := d.Convert(&first); err != nil {
		t.Fatalf("Convert failed: %s", err)
	}
	if err := d.Convert(&second); err != nil {
		t.Fatalf("Second Convert failed: %s", err)
	}
	if first.String() != second.String() {
		t.Errorf("Output differs between runs:\n%s\n---\n%s", first.String(), second.String())
	}
}
