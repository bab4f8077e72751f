package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/cavecrawl/internal/game"
	"github.com/samdwyer/cavecrawl/internal/gamedata"
)

var (
	hudStyle     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	menuStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	hotkeyStyle  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	warningStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Renderer handles drawing turns to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the status line, the tail of the message log and the action
// menu (or footer once the session is over).
func (r *Renderer) Render(turn game.Turn, log []string, footer string) {
	r.screen.Clear()
	width, height := r.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	r.screen.DrawText(0, 0, runewidth.Truncate(statusLine(turn), width, "…"), hudStyle)

	var menu []string
	if footer != "" {
		menu = append(menu, footer)
	} else {
		menu = append(menu, "Choose an action:")
		for _, c := range turn.Choices() {
			menu = append(menu, c.Hotkey+": "+c.Name)
		}
	}
	if turn.Rejected != "" {
		menu = append(menu, fmt.Sprintf("Unknown action %q.", turn.Rejected))
	}

	// Rows 0 and 1 hold the status line and a gap; the menu sits at the bottom.
	menuTop := height - len(menu)
	if menuTop < 2 {
		menuTop = 2
	}
	r.renderLog(log, 2, menuTop-1, width, gamedata.ColorOrDefault(turn.TileColor, tcell.ColorWhite))

	for i, line := range menu {
		y := menuTop + i
		if y >= height {
			break
		}
		r.renderMenuLine(line, y, i == 0 && footer == "")
	}

	r.screen.Show()
}

// renderLog draws the last lines of log that fit between rows top and bottom
// (exclusive). The newest message uses the room color.
func (r *Renderer) renderLog(log []string, top, bottom, width int, current tcell.Color) {
	if bottom <= top {
		return
	}

	type line struct {
		text   string
		newest bool
	}
	var lines []line
	for i, msg := range log {
		for _, l := range Wrap(msg, width) {
			lines = append(lines, line{text: l, newest: i == len(log)-1})
		}
		lines = append(lines, line{})
	}

	if visible := bottom - top; len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	for i, l := range lines {
		style := textStyle
		if l.newest {
			style = style.Foreground(current)
		}
		r.screen.DrawText(0, top+i, l.text, style)
	}
}

func (r *Renderer) renderMenuLine(line string, y int, heading bool) {
	if heading {
		r.screen.DrawText(0, y, line, menuStyle)
		return
	}
	if strings.HasPrefix(line, "Unknown action") {
		r.screen.DrawText(0, y, line, warningStyle)
		return
	}
	if key, rest, ok := strings.Cut(line, ": "); ok && runewidth.StringWidth(key) == 1 {
		x := r.screen.DrawText(2, y, key, hotkeyStyle)
		r.screen.DrawText(x, y, ": "+rest, textStyle)
		return
	}
	r.screen.DrawText(0, y, line, hudStyle)
}

func statusLine(turn game.Turn) string {
	return fmt.Sprintf("HP %d  Gold %d  %s  %s", turn.HP, turn.Gold, turn.At, turn.State)
}

// Wrap splits text into lines no wider than width cells, breaking at spaces
// where possible. Embedded newlines are kept.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		var cur string
		for _, w := range words {
			for runewidth.StringWidth(w) > width {
				if cur != "" {
					out = append(out, cur)
					cur = ""
				}
				head := runewidth.Truncate(w, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(w)
					head = w[:size]
				}
				out = append(out, head)
				w = w[len(head):]
			}
			switch {
			case w == "":
			case cur == "":
				cur = w
			case runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) <= width:
				cur += " " + w
			default:
				out = append(out, cur)
				cur = w
			}
		}
		if cur != "" {
			out = append(out, cur)
		}
	}
	return out
}
