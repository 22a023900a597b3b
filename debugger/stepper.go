package debugger

import (
	"fmt"

	"github.com/eiannone/keyboard"
	"github.com/fatih/color"

	"github.com/handegar/retroopl/base"
	"github.com/handegar/retroopl/disasm"
	"github.com/handegar/retroopl/dsp"
	"github.com/handegar/retroopl/script"
)

const stepPrompt = "< (N)ext | next (W)ait | (V)iew state | (P)rint register | (C)ontinue | (Q)uit >"

// Stepper is a line based script.Observer. It prints every command and
// waits for a key before the next one.
type Stepper struct {
	State *dsp.State

	skipToWait bool
	skipToEnd  bool
}

func NewStepper(state *dsp.State) *Stepper {
	return &Stepper{State: state}
}

func (s *Stepper) Init() error {
	return keyboard.Open()
}

func (s *Stepper) Close() {
	_ = keyboard.Close()
}

func (s *Stepper) Command(lineNo int32, line string, ev base.Event, in *script.Interpreter) error {
	if s.skipToEnd {
		return nil
	}
	if s.skipToWait {
		if ev.Kind != base.Wait {
			return nil
		}
		s.skipToWait = false
	}

	color.Blue("Line %d, clock=%d, position=%d, written=%d",
		lineNo, in.Clock(), in.Position(), in.Written())
	color.Cyan(line)
	if comment := disasm.CommentFor(ev); comment != "" {
		color.White("  %s", comment)
	}

	fmt.Println()
	color.Yellow(stepPrompt)
	for {
		char, _, err := keyboard.GetKey()
		if err != nil {
			return base.WrapIO(err, "reading keyboard")
		}

		switch char {
		case 'q':
			return ErrQuit
		case 'n':
			return nil
		case 'w':
			s.skipToWait = true
			color.Red("Skipping to next wait")
			return nil
		case 'c':
			s.skipToEnd = true
			color.Red("Running to the end of the script")
			return nil
		case 'v':
			if s.State != nil {
				s.State.Print()
			}
			color.Yellow(stepPrompt)
		case 'p':
			if ev.Kind == base.RegisterWrite {
				color.Cyan(disasm.DescribeWrite(ev.Addr, ev.Value))
			} else {
				color.Cyan(disasm.EventToString(ev))
			}
			color.Yellow(stepPrompt)
		}
	}
}
