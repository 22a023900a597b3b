package disasm

import (
	"fmt"

	"github.com/handegar/retroopl/base"
	"github.com/handegar/retroopl/dsp"
)

var waveNames = [4]string{"sine", "half sine", "abs sine", "quarter sine"}

// Formats an event as a script body line (without line break)
func EventToString(ev base.Event) string {
	switch ev.Kind {
	case base.RegisterWrite:
		return fmt.Sprintf("r %02x %02x", ev.Addr, ev.Value)
	case base.Wait:
		return fmt.Sprintf("w %d", ev.Ticks)
	}
	return fmt.Sprintf("' <unknown event %d>", int(ev.Kind))
}

// Returns a comment line describing the event, or "" if there is
// nothing to say about it
func CommentFor(ev base.Event) string {
	if ev.Kind != base.RegisterWrite {
		return ""
	}
	return "' " + DescribeWrite(ev.Addr, ev.Value)
}

// Names the register, including the channel or operator it belongs to
func DescribeRegister(addr byte) string {
	doc, found := LookupRegDoc(addr)
	if !found {
		return fmt.Sprintf("REG_%02X", addr)
	}

	if doc.Last-doc.First == 0x15 { // Operator bank
		ch, carrier, ok := dsp.OperatorSlot(addr)
		if !ok {
			return fmt.Sprintf("%s <unused slot>", doc.Name)
		}
		if carrier {
			return fmt.Sprintf("%s CH%d car", doc.Name, ch)
		}
		return fmt.Sprintf("%s CH%d mod", doc.Name, ch)
	}

	if doc.Last-doc.First == dsp.NumChannels-1 { // Channel bank
		return fmt.Sprintf("%s CH%d", doc.Name, addr-doc.First)
	}

	return doc.Name
}

func onOff(v byte, mask byte) string {
	if v&mask != 0 {
		return "on"
	}
	return "off"
}

// Describes a register write with the fields decoded
func DescribeWrite(addr byte, val byte) string {
	name := DescribeRegister(addr)
	doc, found := LookupRegDoc(addr)
	if !found {
		return fmt.Sprintf("%s = 0x%02x", name, val)
	}

	switch doc.First {
	case dsp.RegTest:
		return fmt.Sprintf("%s: waveform select %s", name, onOff(val, 0x20))
	case dsp.RegOpFlags:
		return fmt.Sprintf("%s: am %s, vib %s, sustain %s, ksr %s, mult %d",
			name, onOff(val, 0x80), onOff(val, 0x40), onOff(val, 0x20),
			onOff(val, 0x10), val&0x0F)
	case dsp.RegOpLevel:
		return fmt.Sprintf("%s: ksl %d, tl %d (-%.2fdB)", name, val>>6, val&0x3F, float64(val&0x3F)*0.75)
	case dsp.RegOpAttackDec:
		return fmt.Sprintf("%s: attack %d, decay %d", name, val>>4, val&0x0F)
	case dsp.RegOpSustainRel:
		return fmt.Sprintf("%s: sustain %d, release %d", name, val>>4, val&0x0F)
	case dsp.RegFNumLow:
		return fmt.Sprintf("%s: fnum low 0x%02x", name, val)
	case dsp.RegKeyBlockFNum:
		return fmt.Sprintf("%s: key %s, block %d, fnum high %d", name, onOff(val, 0x20), (val>>2)&0x07, val&0x03)
	case dsp.RegRhythm:
		return fmt.Sprintf("%s: rhythm %s, keys 0b%05b", name, onOff(val, 0x20), val&0x1F)
	case dsp.RegFeedbackConn:
		conn := "fm"
		if val&0x01 != 0 {
			conn = "additive"
		}
		return fmt.Sprintf("%s: feedback %d, %s", name, (val>>1)&0x07, conn)
	case dsp.RegOpWaveform:
		return fmt.Sprintf("%s: %s", name, waveNames[val&0x03])
	}

	return fmt.Sprintf("%s = 0x%02x", name, val)
}
