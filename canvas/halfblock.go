package canvas

// Half-block rendering: each terminal cell shows two vertically stacked
// pixels via ▀ with fg = top pixel color and bg = bottom pixel color.

// darkThreshold is the brightness at or below which a half-block pixel is
// treated as unlit. Far lower than the braille threshold: this mode encodes
// brightness continuously through color, not on/off dots.
const darkThreshold = 0.02

// monoThreshold is the on/off cutoff used when no color is available
const monoThreshold = 0.3

func renderHalfBlock(c *Canvas) []byte {
	termCols := c.Width
	termRows := c.Height / 2
	out := make([]byte, 0, termCols*termRows*15)

	lastFg := ""
	lastBg := ""

	for row := 0; row < termRows; row++ {
		for col := 0; col < termCols; col++ {
			topIdx := (row*2)*c.Width + col
			botIdx := (row*2+1)*c.Width + col

			topV := c.Pixels[topIdx]
			botV := c.Pixels[botIdx]

			if c.ColorMode == ColorMono {
				switch {
				case topV > monoThreshold && botV > monoThreshold:
					out = append(out, "█"...)
				case topV > monoThreshold:
					out = append(out, "▀"...)
				case botV > monoThreshold:
					out = append(out, "▄"...)
				default:
					out = append(out, ' ')
				}
				continue
			}

			if topV <= darkThreshold && botV <= darkThreshold {
				// Both pixels dark: no color escape, just a space.
				// Clear any active colors so the space shows the
				// terminal default background.
				if lastFg != "" || lastBg != "" {
					out = append(out, "\x1b[0m"...)
					lastFg = ""
					lastBg = ""
				}
				out = append(out, ' ')
				continue
			}

			top := c.Colors[topIdx]
			bot := c.Colors[botIdx]
			fg := c.fgParams(scaleChannel(top.R, topV), scaleChannel(top.G, topV), scaleChannel(top.B, topV))
			bg := c.bgParams(scaleChannel(bot.R, botV), scaleChannel(bot.G, botV), scaleChannel(bot.B, botV))

			fgChanged := fg != lastFg
			bgChanged := bg != lastBg

			switch {
			case fgChanged && bgChanged:
				out = append(out, "\x1b["...)
				out = append(out, fg...)
				out = append(out, ';')
				out = append(out, bg...)
				out = append(out, 'm')
			case fgChanged:
				out = append(out, "\x1b["...)
				out = append(out, fg...)
				out = append(out, 'm')
			case bgChanged:
				out = append(out, "\x1b["...)
				out = append(out, bg...)
				out = append(out, 'm')
			}
			lastFg = fg
			lastBg = bg

			out = append(out, "▀"...)
		}
		out = appendRowAdvance(out, row)
		lastFg = ""
		lastBg = ""
	}
	return out
}

// scaleChannel darkens a color channel by pixel brightness, clamping the
// brightness at the color-mapping boundary
func scaleChannel(ch uint8, v float64) uint8 {
	return uint8(float64(ch) * clamp01(v))
}
