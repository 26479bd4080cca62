package canvas

import "unicode/utf8"

// Braille dot layout within a 2x4 cell:
//
//	(0,0) (1,0)    dot1 dot4
//	(0,1) (1,1)    dot2 dot5
//	(0,2) (1,2)    dot3 dot6
//	(0,3) (1,3)    dot7 dot8
//
// The glyph is U+2800 + dot bits. Dots 7 and 8 carry the high bits even
// though they sit on the bottom row; the table is the block's convention,
// not row-major.
const brailleOffset = 0x2800

var dotMap = [8]struct {
	dx, dy int
	bit    rune
}{
	{0, 0, 0x01}, // dot 1
	{0, 1, 0x02}, // dot 2
	{0, 2, 0x04}, // dot 3
	{1, 0, 0x08}, // dot 4
	{1, 1, 0x10}, // dot 5
	{1, 2, 0x20}, // dot 6
	{0, 3, 0x40}, // dot 7
	{1, 3, 0x80}, // dot 8
}

// litThreshold is the brightness above which a dot turns on. Chosen so
// mid-intensity scenes fill roughly half the cell.
const litThreshold = 0.3

func renderBraille(c *Canvas) []byte {
	termCols := c.Width / 2
	termRows := c.Height / 4
	out := make([]byte, 0, termCols*termRows*20)

	var runeBuf [utf8.UTFMax]byte
	lastFg := ""

	for row := 0; row < termRows; row++ {
		for col := 0; col < termCols; col++ {
			px := col * 2
			py := row * 4

			var bits rune
			var totalR, totalG, totalB, lit int

			for _, d := range dotMap {
				x := px + d.dx
				y := py + d.dy
				if x >= c.Width || y >= c.Height {
					continue
				}
				idx := y*c.Width + x
				if c.Pixels[idx] > litThreshold {
					bits |= d.bit
					rgb := c.Colors[idx]
					totalR += int(rgb.R)
					totalG += int(rgb.G)
					totalB += int(rgb.B)
					lit++
				}
			}

			if bits == 0 {
				// Nothing lit: a bare space, cheaper than the blank
				// braille glyph and needs no color escape
				out = append(out, ' ')
				continue
			}

			if c.ColorMode != ColorMono && lit > 0 {
				// Foreground is the mean color of the lit dots
				fg := c.fgParams(uint8(totalR/lit), uint8(totalG/lit), uint8(totalB/lit))
				if fg != lastFg {
					out = append(out, "\x1b["...)
					out = append(out, fg...)
					out = append(out, 'm')
					lastFg = fg
				}
			}
			n := utf8.EncodeRune(runeBuf[:], brailleOffset+bits)
			out = append(out, runeBuf[:n]...)
		}
		out = appendRowAdvance(out, row)
		lastFg = ""
	}
	return out
}
