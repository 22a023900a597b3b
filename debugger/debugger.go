package debugger

import (
	"github.com/pkg/errors"

	ui "github.com/gizak/termui/v3"

	"github.com/handegar/retroopl/base"
	"github.com/handegar/retroopl/script"
)

// Returned from the observers when the user quits mid-run
var ErrQuit = errors.New("debugger: quit")

const historySize = 256

type historyLine struct {
	lineNo int32
	text   string
	ev     base.Event
}

const (
	runStep int = iota
	runUntilWait
	runCount
	runToEnd
)

// Debugger is a full screen script.Observer. It stops after every
// command and shows the script, the clock and the register file.
type Debugger struct {
	history   []historyLine
	registers [256]byte
	written   [256]bool

	lastLineNo int32
	lastEvent  base.Event
	interp     *script.Interpreter

	runMode  int
	runLeft  int
	commands int64

	// One poller for the whole session. Every PollEvents() call starts
	// a goroutine which never exits.
	events <-chan ui.Event
}

func New() *Debugger {
	return &Debugger{}
}

func (d *Debugger) Init() error {
	if err := ui.Init(); err != nil {
		return errors.Wrap(err, "debugger: failed to initialize terminal")
	}
	initUI()
	d.events = ui.PollEvents()
	return nil
}

func (d *Debugger) Close() {
	ui.Close()
}

func (d *Debugger) record(lineNo int32, line string, ev base.Event) {
	d.history = append(d.history, historyLine{lineNo, line, ev})
	if len(d.history) > historySize {
		d.history = d.history[len(d.history)-historySize:]
	}

	if ev.Kind == base.RegisterWrite {
		d.registers[ev.Addr] = ev.Value
		d.written[ev.Addr] = true
	}

	d.lastLineNo = lineNo
	d.lastEvent = ev
	d.commands++
}

// Decides if the run should stop at this command
func (d *Debugger) shouldStop(ev base.Event) bool {
	switch d.runMode {
	case runToEnd:
		return false
	case runUntilWait:
		if ev.Kind != base.Wait {
			return false
		}
	case runCount:
		d.runLeft--
		if d.runLeft > 0 {
			return false
		}
	}
	d.runMode = runStep
	return true
}

// Command implements script.Observer
func (d *Debugger) Command(lineNo int32, line string, ev base.Event, in *script.Interpreter) error {
	d.interp = in
	d.record(lineNo, line, ev)

	if !d.shouldStop(ev) {
		return nil
	}

	UpdateScreen(d)
	switch WaitForInput(d) {
	case "quit":
		return ErrQuit
	case "next wait":
		d.runMode = runUntilWait
	case "next 100":
		d.runMode = runCount
		d.runLeft = 100
	case "next 1000":
		d.runMode = runCount
		d.runLeft = 1000
	case "continue":
		d.runMode = runToEnd
	}
	return nil
}
