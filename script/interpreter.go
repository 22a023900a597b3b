package script

import (
	"io"

	"github.com/handegar/retroopl/base"
	"github.com/handegar/retroopl/dsp"
	"github.com/handegar/retroopl/reader"
	"github.com/handegar/retroopl/utils"
	"github.com/handegar/retroopl/writer"
)

// Observer is told about every command after it has been applied. An
// error aborts the run.
type Observer interface {
	Command(lineNo int32, line string, ev base.Event, in *Interpreter) error
}

// Interpreter holds the state of one script session. It is not safe
// for concurrent use.
type Interpreter struct {
	dev        dsp.Device
	buf        *writer.SampleBuffer
	sampleRate int32

	controlRate int32
	clock       int32 // Ticks at the control rate
	position    int32 // Samples generated at the output rate

	Observer Observer
}

func New(dev dsp.Device, buf *writer.SampleBuffer, sampleRate int32) (*Interpreter, error) {
	if sampleRate != base.SampleRate44100 && sampleRate != base.SampleRate48000 {
		return nil, base.Errorf(base.RangeError, "unsupported sampling rate %d", sampleRate)
	}

	return &Interpreter{
		dev:        dev,
		buf:        buf,
		sampleRate: sampleRate,
	}, nil
}

func (in *Interpreter) SampleRate() int32  { return in.sampleRate }
func (in *Interpreter) ControlRate() int32 { return in.controlRate }
func (in *Interpreter) Clock() int32       { return in.clock }
func (in *Interpreter) Position() int32    { return in.position }

// Samples handed to the sink so far
func (in *Interpreter) Written() int32 { return in.buf.Total() }

// Runs a whole script: header, body and the final flush. An interpreter
// runs one script only.
func (in *Interpreter) Run(r io.Reader) error {
	if in.controlRate != 0 {
		return base.Errorf(base.RangeError, "interpreter has already run a script")
	}

	lr := reader.NewLineReader(r)

	rate, err := readHeader(lr)
	if err != nil {
		return err
	}
	in.controlRate = rate

	in.dev.Init(in.sampleRate)
	defer in.dev.Finish()

	for {
		ok, err := lr.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		line := lr.Line()
		ev, isCommand, err := parseCommand(line, lr.LineNo())
		if err != nil {
			return err
		}
		if !isCommand {
			continue
		}

		if err := in.Apply(ev, lr.LineNo()); err != nil {
			return err
		}

		if in.Observer != nil {
			if err := in.Observer.Command(lr.LineNo(), string(line), ev, in); err != nil {
				return err
			}
		}
	}

	return in.buf.Flush()
}

// Applies one command to the device and the clock
func (in *Interpreter) Apply(ev base.Event, lineNo int32) error {
	switch ev.Kind {
	case base.RegisterWrite:
		in.dev.Write(ev.Addr, ev.Value)
		return nil
	case base.Wait:
		return in.wait(ev.Ticks, lineNo)
	}
	return base.LineErrorf(base.FormatError, lineNo, "invalid command")
}

func (in *Interpreter) wait(ticks int32, lineNo int32) error {
	if ticks == 0 {
		return nil
	}

	clock, err := utils.AddChecked(in.clock, ticks, "time counter")
	if err != nil {
		return base.AtLine(err, lineNo)
	}

	target, err := utils.ConvertRate(clock, in.controlRate, in.sampleRate)
	if err != nil {
		return base.AtLine(err, lineNo)
	}
	if target <= in.position {
		return base.LineErrorf(base.NumericError, lineNo,
			"sample offset %d does not advance past %d", target, in.position)
	}

	if err := in.buf.Compute(target-in.position, in.dev.Generate); err != nil {
		return err
	}

	in.clock = clock
	in.position = target
	return nil
}

// "OPL2 <rate>", the control rate in ticks per second (1..1024). The
// body lines are blank, comments starting with an apostrophe, "r AA VV"
// register writes or "w N" waits of N ticks.
func readHeader(lr *reader.LineReader) (int32, error) {
	ok, err := lr.Next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, base.Errorf(base.FormatError, "failed to read header line")
	}

	line := lr.Line()
	if len(line) < len(base.ScriptTag) || string(line[:len(base.ScriptTag)]) != base.ScriptTag {
		return 0, base.LineErrorf(base.FormatError, lr.LineNo(),
			"input does not have %s header", base.ScriptTag)
	}

	rate, pos, err := reader.ParseInt(line, len(base.ScriptTag), lr.LineNo())
	if err != nil {
		return 0, err
	}
	if rate < base.MinControlRate || rate > base.MaxControlRate {
		return 0, base.LineErrorf(base.RangeError, lr.LineNo(),
			"control rate must be in range [%d, %d]", base.MinControlRate, base.MaxControlRate)
	}

	if !reader.IsBlank(line[pos:]) {
		return 0, base.LineErrorf(base.FormatError, lr.LineNo(), "invalid header line syntax")
	}

	return rate, nil
}

// Parses one body line. Returns false for blank and comment lines.
func parseCommand(line []byte, lineNo int32) (base.Event, bool, error) {
	if len(line) == 0 || line[0] == '\'' || reader.IsBlank(line) {
		return base.Event{}, false, nil
	}

	if len(line) < 2 || (line[1] != ' ' && line[1] != '\t') {
		return base.Event{}, false, base.LineErrorf(base.FormatError, lineNo, "invalid command")
	}

	switch line[0] {
	case 'r':
		addr, pos, err := reader.ParseByte(line, 1, lineNo)
		if err != nil {
			return base.Event{}, false, err
		}
		val, pos, err := reader.ParseByte(line, pos, lineNo)
		if err != nil {
			return base.Event{}, false, err
		}
		if !reader.IsBlank(line[pos:]) {
			return base.Event{}, false, base.LineErrorf(base.FormatError, lineNo, "invalid command syntax")
		}
		return base.NewRegisterWrite(addr, val), true, nil

	case 'w':
		ticks, pos, err := reader.ParseInt(line, 1, lineNo)
		if err != nil {
			return base.Event{}, false, err
		}
		if !reader.IsBlank(line[pos:]) {
			return base.Event{}, false, base.LineErrorf(base.FormatError, lineNo, "invalid command syntax")
		}
		return base.NewWait(ticks), true, nil
	}

	return base.Event{}, false, base.LineErrorf(base.FormatError, lineNo, "invalid command")
}

// Parses a single script body line into an event. Blank and comment
// lines give false.
func ParseLine(line string) (base.Event, bool, error) {
	return parseCommand([]byte(line), 0)
}
