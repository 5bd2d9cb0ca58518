package textutil

import "strings"

var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x00AD: "⟪SHY⟫",
	0x180E: "⟪MVS⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0x206A: "⟪ISS⟫",
	0x206B: "⟪ASS⟫",
	0x206C: "⟪IAFS⟫",
	0x206D: "⟪AAFS⟫",
	0x206E: "⟪NADS⟫",
	0x206F: "⟪NODS⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText replaces control characters so user-controlled text cannot
// inject terminal escape sequences when rendered.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if requiresSanitization(r) {
			var b strings.Builder
			for _, c := range SanitizeRunes(text) {
				b.WriteRune(c.R)
			}
			return b.String()
		}
	}
	return text
}

// Glyph is one rune to draw and the index of the source rune it came from.
type Glyph struct {
	R   rune
	Src int
}

// SanitizeRunes is SanitizeTerminalText keeping track of where each output
// rune came from, so match spans over the source text still line up.
// Formatting runes expand into a visible label that maps back to the one
// source rune.
func SanitizeRunes(text string) []Glyph {
	out := make([]Glyph, 0, len(text))
	idx := 0
	for _, r := range text {
		switch {
		case isFormattingRune(r):
			for _, lr := range formattingRuneLabels[r] {
				out = append(out, Glyph{R: lr, Src: idx})
			}
		case r == '\t', r == '\n', r == '\r':
			out = append(out, Glyph{R: ' ', Src: idx})
		case r < 0x20 || r == 0x7f:
			out = append(out, Glyph{R: '?', Src: idx})
		default:
			out = append(out, Glyph{R: r, Src: idx})
		}
		idx++
	}
	return out
}

func requiresSanitization(r rune) bool {
	return isFormattingRune(r) || (r >= 0 && r < 0x20) || r == 0x7f
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}
