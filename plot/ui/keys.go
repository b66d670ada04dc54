package ui

import (
	"strings"
	"unicode"

	"grapher/hal"
)

// HandleKey applies one key event. Releases are ignored.
//
//	Enter   add the input as a function, or run a ":" command
//	F1      plot
//	F2      enable/disable the selected function
//	F3      delete the selected function
//	Up/Down select a function
//	Esc     clear the input line
func (t *Task) HandleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	t.panelDirty = true

	if ev.Code == hal.KeyUnknown && ev.Rune != 0 {
		switch ev.Rune {
		case 0x01: // ^A
			t.cursor = 0
		case 0x05: // ^E
			t.cursor = len(t.input)
		case 0x15: // ^U
			t.setInput("")
		case '\r', '\n':
			t.submit()
		default:
			if unicode.IsPrint(ev.Rune) {
				t.insertRune(ev.Rune)
			}
		}
		return
	}

	switch ev.Code {
	case hal.KeyEnter:
		t.submit()
	case hal.KeyEscape:
		t.setInput("")
	case hal.KeyBackspace:
		t.backspace()
	case hal.KeyDelete:
		t.deleteForward()
	case hal.KeyLeft:
		if t.cursor > 0 {
			t.cursor--
		}
	case hal.KeyRight:
		if t.cursor < len(t.input) {
			t.cursor++
		}
	case hal.KeyHome:
		t.cursor = 0
	case hal.KeyEnd:
		t.cursor = len(t.input)
	case hal.KeyUp:
		if t.selected > 0 {
			t.selected--
		}
	case hal.KeyDown:
		if t.selected < t.reg.Len()-1 {
			t.selected++
		}
	case hal.KeyF1:
		if t.reg.Len() > 0 {
			_ = t.Plot(true)
		}
	case hal.KeyF2, hal.KeyTab:
		if e, err := t.reg.Entry(t.selected); err == nil {
			_ = t.ToggleFunction(t.selected, !e.Enabled)
		}
	case hal.KeyF3:
		if t.reg.Len() > 0 {
			_ = t.RemoveFunction(t.selected)
		}
	}
}

func (t *Task) insertRune(r rune) {
	if len(t.input) >= maxInput {
		return
	}
	t.input = append(t.input, 0)
	copy(t.input[t.cursor+1:], t.input[t.cursor:])
	t.input[t.cursor] = r
	t.cursor++
}

func (t *Task) backspace() {
	if t.cursor <= 0 || len(t.input) == 0 {
		return
	}
	copy(t.input[t.cursor-1:], t.input[t.cursor:])
	t.input = t.input[:len(t.input)-1]
	t.cursor--
}

func (t *Task) deleteForward() {
	if t.cursor < 0 || t.cursor >= len(t.input) {
		return
	}
	copy(t.input[t.cursor:], t.input[t.cursor+1:])
	t.input = t.input[:len(t.input)-1]
}

func (t *Task) setInput(s string) {
	t.input = []rune(s)
	t.cursor = len(t.input)
}

// submit consumes the input line. A rejected function stays in the line so
// it can be corrected.
func (t *Task) submit() {
	line := strings.TrimSpace(string(t.input))
	if strings.HasPrefix(line, ":") {
		t.setInput("")
		_ = t.command(line)
		return
	}
	if err := t.AddFunction(line); err == nil {
		t.setInput("")
	}
}
