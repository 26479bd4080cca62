package canvas

import "unicode/utf8"

// densityRamp maps brightness to characters, darkest to brightest
const densityRamp = " .:-=+*#%@"

func renderASCII(c *Canvas) []byte {
	cols, rows := c.TermSize()
	out := make([]byte, 0, cols*rows*10)

	var runeBuf [utf8.UTFMax]byte
	useColor := c.ColorMode != ColorMono
	lastFg := ""

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := row*c.Width + col
			v := clamp01(c.Pixels[idx])

			ch := c.charOverride[idx]
			if ch == 0 {
				ch = rune(densityRamp[int(v*float64(len(densityRamp)-1))])
			}

			if useColor {
				rgb := c.Colors[idx]
				fg := c.fgParams(rgb.R, rgb.G, rgb.B)
				if fg != lastFg {
					out = append(out, "\x1b["...)
					out = append(out, fg...)
					out = append(out, 'm')
					lastFg = fg
				}
			}

			if ch < utf8.RuneSelf {
				out = append(out, byte(ch))
			} else {
				n := utf8.EncodeRune(runeBuf[:], ch)
				out = append(out, runeBuf[:n]...)
			}
		}
		out = appendRowAdvance(out, row)
		lastFg = ""
	}
	return out
}
