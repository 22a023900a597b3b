package vgm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/handegar/retroopl/base"
	"github.com/handegar/retroopl/disasm"
	"github.com/handegar/retroopl/reader"
	"github.com/handegar/retroopl/utils"
)

type Decoder struct {
	File *reader.VGMFile

	// 1 plays the data once, 2 plays it again from the loop offset
	Repeat int

	// Accept the compact waits 0x71-0x7F
	ShorthandWaits bool

	// Write a comment line in front of every register write
	Annotate bool
}

func NewDecoder(file *reader.VGMFile, repeat int) *Decoder {
	return &Decoder{File: file, Repeat: repeat}
}

type span struct {
	start, end int
}

// The data ranges to play: the whole data section, then optionally the
// loop body
func (d *Decoder) passes() ([]span, error) {
	if d.Repeat != 1 && d.Repeat != 2 {
		return nil, base.Errorf(base.RangeError, "unrecognized repeat count %d", d.Repeat)
	}

	full := len(d.File.Data)
	passes := []span{{0, full}}
	if d.Repeat == 2 {
		passes = append(passes, span{int(d.File.LoopOffset), full})
	}
	return passes, nil
}

// Walks the event stream, calling 'emit' for every register write and
// every wait of at least one control tick. Waits are summed at 44100Hz
// and only whole 980Hz ticks are emitted.
func (d *Decoder) Walk(emit func(ev base.Event) error) error {
	passes, err := d.passes()
	if err != nil {
		return err
	}

	data := d.File.Data
	var sampleOffs int32 // VGM samples since the start
	var ctlOffs int32    // Control ticks emitted so far

	for _, pass := range passes {
	walk:
		for pos := pass.start; pos < pass.end; {
			code := data[pos]
			op, found := base.LookupVGMOp(code, d.ShorthandWaits)
			if !found {
				return base.OpcodeError(code)
			}
			if pass.end-pos < 1+op.Operands {
				return base.Errorf(base.FormatError,
					"VGM opcode 0x%02x at 0x%x missing parameters", code, pos)
			}

			waitCmd := false
			var waitReq int32

			switch op.Type {
			case base.OpEndOfSound:
				break walk
			case base.OpWait:
				waitCmd = true
				waitReq = op.Wait
				if op.Operands == 2 {
					waitReq = int32(data[pos+1]) | (int32(data[pos+2]) << 8)
				}
			case base.OpRegister:
				if err := emit(base.NewRegisterWrite(data[pos+1], data[pos+2])); err != nil {
					return err
				}
			}

			if waitCmd && waitReq >= 1 {
				sampleOffs, err = utils.AddChecked(sampleOffs, waitReq, "sample count")
				if err != nil {
					return err
				}

				newCtl, err := utils.ConvertRate(sampleOffs, base.VGMClockRate, base.VGMControlRate)
				if err != nil {
					return err
				}

				if newCtl > ctlOffs {
					if err := emit(base.NewWait(newCtl - ctlOffs)); err != nil {
						return err
					}
					ctlOffs = newCtl
				}
			}

			pos += 1 + op.Operands
		}
	}

	return nil
}

// Writes the whole conversion as an OPL2 script
func (d *Decoder) Convert(w io.Writer) error {
	out := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(out, "%s %d\n", base.ScriptTag, base.VGMControlRate); err != nil {
		return base.WrapIO(err, "writing script")
	}

	err := d.Walk(func(ev base.Event) error {
		if d.Annotate {
			if comment := disasm.CommentFor(ev); comment != "" {
				if _, err := fmt.Fprintln(out, comment); err != nil {
					return base.WrapIO(err, "writing script")
				}
			}
		}
		if _, err := fmt.Fprintln(out, disasm.EventToString(ev)); err != nil {
			return base.WrapIO(err, "writing script")
		}
		return nil
	})

	// Whatever was produced before an error is still written out
	if ferr := out.Flush(); ferr != nil && err == nil {
		err = base.WrapIO(ferr, "writing script")
	}
	return err
}
