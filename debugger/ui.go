package debugger

import (
	"fmt"
	"strings"

	termui "github.com/gizak/termui/v3"
	ui "github.com/gizak/termui/v3"
	widgets "github.com/gizak/termui/v3/widgets"

	"github.com/handegar/retroopl/base"
	"github.com/handegar/retroopl/disasm"
	"github.com/handegar/retroopl/dsp"
	"github.com/handegar/retroopl/settings"
)

const (
	MainScreen int = iota
	RegisterScreen
	HelpScreen
)

type UIState struct {
	terminalWidth  int
	terminalHeight int
	centerLine     int

	currentScreen  int
	registerCursor int

	scriptView      *widgets.Paragraph
	stateView       *widgets.Paragraph
	channelView     *widgets.Paragraph
	infoView        *widgets.Paragraph
	versionLineView *widgets.Paragraph
	helpLineView    *widgets.Paragraph
}

var uiState UIState

var boxTitleStyle = termui.NewStyle(termui.ColorRed, termui.ColorBlue)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func initUI() {
	width, height := termui.TerminalDimensions()
	uiState.terminalHeight = height
	uiState.terminalWidth = width
	uiState.centerLine = maxInt(width/2, 40)
	uiState.currentScreen = MainScreen
}

/*
Returns the Event.ID string for events which is relevant for the run
loop (quit, continue etc.)
*/
func WaitForInput(d *Debugger) string {
	for e := range d.events {
		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			if uiState.currentScreen != MainScreen {
				uiState.currentScreen = MainScreen
				UpdateScreen(d)
			} else {
				return "quit"
			}
		case "n", "<Down>", "<Space>":
			return "next command"
		case "w", "<PageDown>":
			return "next wait"
		case "s":
			return "next 100"
		case "S":
			return "next 1000"
		case "c":
			return "continue"
		case "6", "<Right>":
			moveRegisterCursor(d, 1)
		case "4", "<Left>":
			moveRegisterCursor(d, -1)
		case "2":
			moveRegisterCursor(d, 16)
		case "8":
			moveRegisterCursor(d, -16)
		case "h", "<F1>", "?":
			if uiState.currentScreen == HelpScreen {
				uiState.currentScreen = MainScreen
			} else {
				uiState.currentScreen = HelpScreen
			}
			UpdateScreen(d)
		case "m", "<F2>":
			if uiState.currentScreen == RegisterScreen {
				uiState.currentScreen = MainScreen
			} else {
				uiState.currentScreen = RegisterScreen
			}
			UpdateScreen(d)
		case "<Resize>":
			initUIKeepScreen()
			UpdateScreen(d)
		}
	}

	return ""
}

func initUIKeepScreen() {
	screen := uiState.currentScreen
	initUI()
	uiState.currentScreen = screen
}

func moveRegisterCursor(d *Debugger, count int) {
	uiState.registerCursor = (uiState.registerCursor + count + 256) % 256
	if uiState.currentScreen == RegisterScreen {
		UpdateScreen(d)
	}
}

func UpdateScreen(d *Debugger) {
	ui.Clear()
	switch uiState.currentScreen {
	case HelpScreen:
		renderHelpScreen()
	case RegisterScreen:
		renderRegisterMap(d, uiState.registerCursor)
	default:
		renderMainScreen(d)
	}
}

func renderMainScreen(d *Debugger) {
	updateScriptView(d)
	updateStateView(d)
	updateChannelView(d)
	updateInfoView(d)
	updateHelpLineView()

	ui.Render(uiState.scriptView, uiState.stateView, uiState.channelView,
		uiState.infoView, uiState.versionLineView, uiState.helpLineView)
}

func updateHelpLineView() {
	helpLine := widgets.NewParagraph()
	helpLine.Text =
		"[ESC/q:](fg:black) Quit [|](fg:white,bg:black) " +
			"[F1/h/?:](fg:black) Help [|](fg:white,bg:black) " +
			"[m/F2:](fg:black) Registers [|](fg:white,bg:black) " +
			"[n/Down:](fg:black) Next [|](fg:white,bg:black) " +
			"[w/PgDn:](fg:black) Next wait [|](fg:white,bg:black) " +
			"[c:](fg:black) Continue "

	helpLine.Border = false
	helpLine.TextStyle = boxTitleStyle
	helpLine.SetRect(0, uiState.terminalHeight-1, uiState.terminalWidth, uiState.terminalHeight)

	uiState.helpLineView = helpLine
}

func renderHelpScreen() {
	ypos := 0

	frame := widgets.NewParagraph()
	frame.Title = "  Help / Keys / Keywords  "
	frame.TitleStyle = boxTitleStyle
	frame.SetRect(0, 0, uiState.terminalWidth, uiState.terminalHeight)
	ypos += 1

	keys := widgets.NewList()
	keys.Border = false
	keys.TextStyle = termui.NewStyle(termui.ColorYellow)

	keys.Rows = append(keys.Rows, "Keys:")
	keys.Rows = append(keys.Rows, " h, F1, ?:          [This help-page](fg:white)")
	keys.Rows = append(keys.Rows, " ESC, q, CTRL-C:    [Quit debugger / exit help](fg:white)")
	keys.Rows = append(keys.Rows, " m, F2:             [Show register map](fg:white)")
	keys.Rows = append(keys.Rows, " 6/4 (Right/Left):  [Register map: Next/Prev register](fg:white)")
	keys.Rows = append(keys.Rows, " 2/8:               [Register map: Down/Up one row](fg:white)")
	keys.Rows = append(keys.Rows, " n, Down, Space:    [Next command](fg:white)")
	keys.Rows = append(keys.Rows, " w, PgDn:           [Run to the next wait](fg:white)")
	keys.Rows = append(keys.Rows, " s:                 [Skip 100 commands](fg:white)")
	keys.Rows = append(keys.Rows, " SHIFT-s:           [Skip 1000 commands](fg:white)")
	keys.Rows = append(keys.Rows, " c:                 [Continue to the end of the script](fg:white)")

	keys.SetRect(1, ypos, uiState.terminalWidth-1, ypos+len(keys.Rows)+2)
	ypos += len(keys.Rows) + 1

	help := widgets.NewParagraph()
	help.Border = false
	help.Text = "[Keywords:](fg:cyan)\n" +
		" [Clock](fg:yellow):        Ticks at the script control rate.\n" +
		" [Position](fg:yellow):     Samples generated at the output rate.\n" +
		" [Written](fg:yellow):      Samples flushed to the output file.\n" +
		" [mod/car](fg:yellow):      Modulator / carrier operator of a channel.\n" +
		" [Block](fg:yellow):        Octave of the channel frequency.\n" +
		" [FNum](fg:yellow):         10-bit frequency number.\n"

	help.SetRect(1, ypos, uiState.terminalWidth-1, uiState.terminalHeight-1)

	ui.Render(frame, keys, help)
}

// Prints the most recent script lines with the current one highlighted
func updateScriptView(d *Debugger) {
	height := uiState.terminalHeight - 7

	var lines []string
	first := maxInt(0, len(d.history)-(height-2))
	for i := first; i < len(d.history); i++ {
		h := d.history[i]
		codeColor := "fg:white"
		numColor := "fg:yellow"
		if i == len(d.history)-1 {
			codeColor = "fg:red,bg:white,mod:bold"
			numColor = "fg:black,bg:white,mod:bold"
		}
		lines = append(lines, fmt.Sprintf("[%6d](%s)[  %s  ](%s)",
			h.lineNo, numColor, escape(h.text), codeColor))
	}

	code := widgets.NewParagraph()
	code.Title = fmt.Sprintf("  Script (%d commands)  ", d.commands)
	code.TitleStyle = boxTitleStyle
	code.Text = strings.Join(lines, "\n")
	code.SetRect(0, 0, uiState.centerLine, height)

	uiState.scriptView = code
}

// termui treats '[' as the start of a style block
func escape(s string) string {
	return strings.NewReplacer("[", "(", "]", ")").Replace(s)
}

func updateStateView(d *Debugger) {
	in := d.interp
	seconds := 0.0
	if in.SampleRate() > 0 {
		seconds = float64(in.Position()) / float64(in.SampleRate())
	}

	stateStr := fmt.Sprintf(" [Control rate:](fg:yellow) %d Hz, [Output rate:](fg:yellow) %d Hz\n"+
		" [Clock:](fg:yellow,mod:bold) %d ticks\n"+
		" [Position:](fg:yellow,mod:bold) %d samples [(%.3f s)](fg:gray)\n"+
		" [Written:](fg:yellow) %d samples\n",
		in.ControlRate(), in.SampleRate(),
		in.Clock(),
		in.Position(), seconds,
		in.Written())

	stateP := widgets.NewParagraph()
	stateP.Title = fmt.Sprintf("  State (line #%d)  ", d.lastLineNo)
	stateP.TitleStyle = boxTitleStyle
	stateP.BorderStyle = termui.NewStyle(termui.ColorGreen)
	stateP.Text = stateStr
	stateP.SetRect(uiState.centerLine-1, 0, uiState.terminalWidth, 6)

	uiState.stateView = stateP
}

func (d *Debugger) reg(addr int) byte {
	return d.registers[addr]
}

func updateChannelView(d *Debugger) {
	var lines []string
	for ch := 0; ch < dsp.NumChannels; ch++ {
		a0 := d.reg(dsp.RegFNumLow + ch)
		b0 := d.reg(dsp.RegKeyBlockFNum + ch)
		c0 := d.reg(dsp.RegFeedbackConn + ch)
		fnum := int(a0) | (int(b0&0x03) << 8)

		key := "[off](fg:gray)"
		if b0&0x20 != 0 {
			key = "[ON ](fg:green,mod:bold)"
		}
		lines = append(lines, fmt.Sprintf(" [CH%d](fg:cyan) %s [Block:](fg:yellow) %d [FNum:](fg:yellow) %4d [FB:](fg:yellow) %d [Conn:](fg:yellow) %d",
			ch, key, (b0>>2)&0x07, fnum, (c0>>1)&0x07, c0&0x01))
	}

	chP := widgets.NewParagraph()
	chP.Title = "  Channels  "
	chP.TitleStyle = boxTitleStyle
	chP.BorderStyle = termui.NewStyle(termui.ColorGreen)
	chP.Text = strings.Join(lines, "\n")
	chP.SetRect(uiState.centerLine-1, 6, uiState.terminalWidth, uiState.terminalHeight-7)

	uiState.channelView = chP
}

// Shows what the current command did
func updateInfoView(d *Debugger) {
	infoStr := ""
	ev := d.lastEvent
	switch ev.Kind {
	case base.RegisterWrite:
		infoStr = fmt.Sprintf("[%s](fg:red)\n", escape(disasm.DescribeWrite(ev.Addr, ev.Value)))
		if doc, found := disasm.LookupRegDoc(ev.Addr); found {
			infoStr += fmt.Sprintf("[%s](fg:yellow): [%s](fg:cyan)", doc.Short, doc.Long)
		}
	case base.Wait:
		infoStr = fmt.Sprintf("[Wait %d ticks](fg:red)\n[Advances the clock and generates audio up to the new position](fg:cyan)", ev.Ticks)
	}

	infoP := widgets.NewParagraph()
	infoP.Title = "  Info  "
	infoP.TitleStyle = boxTitleStyle
	infoP.Text = infoStr
	infoP.SetRect(0, uiState.terminalHeight-7, uiState.terminalWidth, uiState.terminalHeight-1)

	versionP := widgets.NewParagraph()
	versionP.Border = false
	versionP.Text = fmt.Sprintf("[v%s](fg:blue)", settings.Version)
	versionP.SetRect(uiState.terminalWidth-len(settings.Version)-6, uiState.terminalHeight-2,
		uiState.terminalWidth-3, uiState.terminalHeight-1)

	uiState.infoView = infoP
	uiState.versionLineView = versionP
}
