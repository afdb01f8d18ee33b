package palette

import "sort"

// Scheme names. Custom is a two-anchor scheme built from user-chosen min/max
// colors rather than the fixed table.
const (
	SchemeBlue    = "Blue"
	SchemeRed     = "Red"
	SchemeGreen   = "Green"
	SchemeRainbow = "Rainbow"
	SchemePurple  = "Purple"
	SchemeHeat    = "Heat"
	SchemeOrange  = "Orange"
	SchemeCustom  = "Custom"
)

// schemes holds the built-in anchor sequences, ordered light to dark.
var schemes = map[string][]Color{
	SchemeBlue: {
		RGB(247, 251, 255),
		RGB(222, 235, 247),
		RGB(198, 219, 239),
		RGB(158, 202, 225),
		RGB(107, 174, 214),
		RGB(66, 146, 198),
		RGB(33, 113, 181),
		RGB(8, 81, 156),
		RGB(8, 48, 107),
	},
	SchemeRed: {
		RGB(255, 245, 240),
		RGB(254, 224, 210),
		RGB(252, 187, 161),
		RGB(252, 146, 114),
		RGB(251, 106, 74),
		RGB(239, 59, 44),
		RGB(203, 24, 29),
		RGB(165, 15, 21),
		RGB(103, 0, 13),
	},
	SchemeGreen: {
		RGB(247, 252, 245),
		RGB(229, 245, 224),
		RGB(199, 233, 192),
		RGB(161, 217, 155),
		RGB(116, 196, 118),
		RGB(65, 171, 93),
		RGB(35, 139, 69),
		RGB(0, 109, 44),
		RGB(0, 68, 27),
	},
	SchemeRainbow: {
		RGB(158, 202, 225),
		RGB(171, 221, 164),
		RGB(255, 255, 191),
		RGB(253, 174, 97),
		RGB(244, 109, 67),
		RGB(215, 48, 39),
		RGB(165, 0, 38),
	},
	SchemePurple: {
		RGB(252, 251, 253),
		RGB(239, 237, 245),
		RGB(218, 218, 235),
		RGB(188, 189, 220),
		RGB(158, 154, 200),
		RGB(128, 125, 186),
		RGB(106, 81, 163),
		RGB(84, 39, 143),
		RGB(63, 0, 125),
	},
	SchemeHeat: {
		RGB(255, 255, 204),
		RGB(255, 237, 160),
		RGB(254, 217, 118),
		RGB(254, 178, 76),
		RGB(253, 141, 60),
		RGB(252, 78, 42),
		RGB(227, 26, 28),
		RGB(189, 0, 38),
		RGB(128, 0, 38),
	},
	SchemeOrange: {
		RGB(255, 245, 235),
		RGB(254, 230, 206),
		RGB(253, 208, 162),
		RGB(253, 174, 107),
		RGB(254, 143, 66),
		RGB(253, 109, 30),
		RGB(236, 82, 11),
		RGB(204, 76, 2),
		RGB(140, 45, 4),
	},
}

// Anchors returns the anchor colors for a named scheme. Unknown names fall
// back to Blue. The returned slice is a copy and safe to reverse in place.
func Anchors(name string) []Color {
	base, ok := schemes[name]
	if !ok {
		base = schemes[SchemeBlue]
	}
	out := make([]Color, len(base))
	copy(out, base)
	return out
}

// SchemeNames lists the built-in scheme names sorted alphabetically, with
// Custom appended last.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes)+1)
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(names, SchemeCustom)
}
