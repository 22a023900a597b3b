package debugger

import (
	"fmt"

	termui "github.com/gizak/termui/v3"
	ui "github.com/gizak/termui/v3"
	widgets "github.com/gizak/termui/v3/widgets"

	"github.com/handegar/retroopl/disasm"
)

const CURSOR_COLOR = "(fg:black,bg:green)"
const WRITTEN_COLOR = "(fg:red)"
const UNTOUCHED_COLOR = "(fg:gray)"

// Renders the full 256 byte register file as a 16x16 grid. Registers
// the script has written are highlighted.
func renderRegisterMap(d *Debugger, cursorPosition int) {
	width, height := termui.TerminalDimensions()

	table := buildRegisterTable(d, cursorPosition)
	table.Title = fmt.Sprintf("  Registers (line #%d)  ", d.lastLineNo)
	table.TitleStyle = boxTitleStyle
	table.BorderStyle = termui.NewStyle(termui.ColorGreen)
	table.SetRect(0, 0, width, 16+2+2)

	addr := byte(cursorPosition)
	infoP := widgets.NewParagraph()
	infoP.Title = fmt.Sprintf("  0x%02x  ", addr)
	infoP.TitleStyle = boxTitleStyle
	infoStr := fmt.Sprintf("[%s](fg:red)\n", escape(disasm.DescribeWrite(addr, d.registers[addr])))
	if doc, found := disasm.LookupRegDoc(addr); found {
		infoStr += fmt.Sprintf("[%s](fg:yellow)\n[%s](fg:cyan)", doc.Short, doc.Long)
	} else {
		infoStr += "[Not a register on the OPL2](fg:gray)"
	}
	if !d.written[addr] {
		infoStr += "\n[Not written yet](fg:gray)"
	}
	infoP.Text = infoStr
	infoP.SetRect(0, 20, width, height)

	ui.Render(table)
	ui.Render(infoP)
}

func buildRegisterTable(d *Debugger, cursorPosition int) *widgets.Table {
	table := widgets.NewTable()
	table.RowSeparator = false
	table.TextAlignment = termui.AlignCenter

	header := []string{""}
	for col := 0; col < 16; col++ {
		header = append(header, fmt.Sprintf("[x%X](fg:cyan)", col))
	}
	table.Rows = append(table.Rows, header)

	for row := 0; row < 16; row++ {
		cells := []string{fmt.Sprintf("[%Xx](fg:cyan)", row)}
		for col := 0; col < 16; col++ {
			addr := row*16 + col
			style := UNTOUCHED_COLOR
			if d.written[addr] {
				style = WRITTEN_COLOR
			}
			if addr == cursorPosition {
				style = CURSOR_COLOR
			}
			cells = append(cells, fmt.Sprintf("[%02x]%s", d.registers[addr], style))
		}
		table.Rows = append(table.Rows, cells)
	}

	return table
}
