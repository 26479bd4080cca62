package engine

import (
	"fmt"

	"github.com/paulrobello/termflix/canvas"
	"github.com/paulrobello/termflix/terminal"
)

// buildStatus renders the inverse-video status line positioned at the
// bottom terminal row. The text is truncated and padded to exactly
// the terminal width.
func buildStatus(out []byte, animName string, render canvas.RenderMode, color canvas.ColorMode,
	fps string, recording bool, cols, bottomRow int) []byte {

	rec := ""
	if recording {
		rec = " [REC]"
	}
	status := fmt.Sprintf(" %s | %s | %s | %s%s | [←/→] anim  [r] render  [c] color  [h] hide  [q] quit ",
		animName, render, color, fps, rec)

	runes := []rune(status)
	if len(runes) > cols {
		runes = runes[:cols]
	}
	for len(runes) < cols {
		runes = append(runes, ' ')
	}

	out = terminal.AppendCursorPos(out, 0, bottomRow-1)
	out = append(out, "\x1b[7m"...)
	out = append(out, string(runes)...)
	return append(out, terminal.Reset()...)
}
