package palette

// ColorsFor produces exactly numClasses colors from the anchor sequence.
//
// Reversal applies to the anchors before any selection, so it flips the
// interpolation direction rather than just the output order. When the anchor
// set is at least as large as the class count the first numClasses anchors are
// returned as-is; schemes are deliberately not stretched across their full
// range for small class counts. Only when more classes are requested than
// anchors exist are colors linearly interpolated across the full anchor range,
// each channel independently, truncated to integer.
func ColorsFor(anchors []Color, numClasses int, reversed bool) []Color {
	if numClasses < 1 || len(anchors) == 0 {
		return nil
	}

	base := make([]Color, len(anchors))
	copy(base, anchors)
	if reversed {
		for i, j := 0, len(base)-1; i < j; i, j = i+1, j-1 {
			base[i], base[j] = base[j], base[i]
		}
	}

	if numClasses <= len(base) {
		return base[:numClasses]
	}

	colors := make([]Color, numClasses)
	for i := range colors {
		pos := 0.0
		if numClasses > 1 {
			pos = float64(i) / float64(numClasses-1)
		}
		baseIdx := pos * float64(len(base)-1)
		lower := int(baseIdx)
		upper := lower + 1
		if upper > len(base)-1 {
			upper = len(base) - 1
		}

		if lower == upper {
			colors[i] = base[lower]
			continue
		}
		ratio := baseIdx - float64(lower)
		c1, c2 := base[lower], base[upper]
		colors[i] = Color{
			R: lerpChannel(c1.R, c2.R, ratio),
			G: lerpChannel(c1.G, c2.G, ratio),
			B: lerpChannel(c1.B, c2.B, ratio),
		}
	}
	return colors
}

// lerpChannel interpolates one 0-255 channel, truncating like the integer
// conversion in the original scheme builder.
func lerpChannel(a, b uint8, ratio float64) uint8 {
	return uint8(int(float64(a) + (float64(b)-float64(a))*ratio))
}

// ForScheme resolves a named scheme (or the custom min/max pair) and produces
// numClasses colors. min and max are only consulted for the Custom scheme.
func ForScheme(name string, numClasses int, reversed bool, min, max Color) []Color {
	var anchors []Color
	if name == SchemeCustom {
		anchors = []Color{min, max}
	} else {
		anchors = Anchors(name)
	}
	return ColorsFor(anchors, numClasses, reversed)
}
