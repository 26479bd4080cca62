package canvas

import "strconv"

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps a channel value 0-255 to the nearest cube level 0-5,
// pre-computed at init time
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := absInt(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := absInt(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 converts RGB to the nearest 6x6x6 color cube index
func RGBTo256(r, g, b uint8) uint8 {
	return 16 + 36*cubeIndex[r] + 6*cubeIndex[g] + cubeIndex[b]
}

// ansi16Code picks a basic palette SGR foreground code from a
// brightness + dominant-hue heuristic
func ansi16Code(r, g, b uint8) int {
	brightness := (int(r) + int(g) + int(b)) / 3
	bright := brightness > 180
	switch {
	case brightness < 64:
		return 30 // black
	case r > g && r > b:
		if bright {
			return 91
		}
		return 31
	case g > r && g > b:
		if bright {
			return 92
		}
		return 32
	case b > r && b > g:
		if bright {
			return 94
		}
		return 34
	case bright:
		return 97
	default:
		return 37
	}
}

// quantize rounds a channel to the nearest multiple of the quantization step
func quantize(v uint8, q uint8) uint8 {
	step := uint16(q)
	rounded := (uint16(v) + step/2) / step * step
	if rounded > 255 {
		rounded = 255
	}
	return uint8(rounded)
}

// fgParams returns the SGR parameter string selecting the foreground color
// for the canvas color mode. Empty string means "emit nothing" (mono).
func (c *Canvas) fgParams(r, g, b uint8) string {
	return c.colorParams(r, g, b, false)
}

// bgParams is fgParams for the background
func (c *Canvas) bgParams(r, g, b uint8) string {
	return c.colorParams(r, g, b, true)
}

func (c *Canvas) colorParams(r, g, b uint8, background bool) string {
	if c.ColorQuant > 1 {
		r = quantize(r, c.ColorQuant)
		g = quantize(g, c.ColorQuant)
		b = quantize(b, c.ColorQuant)
	}

	switch c.ColorMode {
	case ColorTrueColor:
		prefix := "38;2;"
		if background {
			prefix = "48;2;"
		}
		buf := make([]byte, 0, 16)
		buf = append(buf, prefix...)
		buf = strconv.AppendUint(buf, uint64(r), 10)
		buf = append(buf, ';')
		buf = strconv.AppendUint(buf, uint64(g), 10)
		buf = append(buf, ';')
		buf = strconv.AppendUint(buf, uint64(b), 10)
		return string(buf)

	case ColorAnsi256:
		prefix := "38;5;"
		if background {
			prefix = "48;5;"
		}
		return prefix + strconv.Itoa(int(RGBTo256(r, g, b)))

	case ColorAnsi16:
		code := ansi16Code(r, g, b)
		if background {
			code += 10
		}
		return strconv.Itoa(code)

	default: // ColorMono
		return ""
	}
}

// clamp01 bounds a brightness value to 0..1 at the color-mapping boundary
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
