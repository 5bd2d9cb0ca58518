package textutil

import "github.com/mattn/go-runewidth"

const ellipsis = '…'

// RuneWidth is the number of terminal cells r occupies; zero-width runes
// still take one cell so every rune stays addressable.
func RuneWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, r := range text {
		width += RuneWidth(r)
	}
	return width
}

// GlyphsWidth is DisplayWidth for sanitized glyphs.
func GlyphsWidth(glyphs []Glyph) int {
	width := 0
	for _, g := range glyphs {
		width += RuneWidth(g.R)
	}
	return width
}

// TruncateLeft keeps the tail of glyphs that fits in width cells, replacing
// the dropped head with an ellipsis. Paths keep their last folder visible.
func TruncateLeft(glyphs []Glyph, width int) []Glyph {
	if width <= 0 {
		return nil
	}
	if GlyphsWidth(glyphs) <= width {
		return glyphs
	}

	used := 1
	start := len(glyphs)
	for start > 0 {
		w := RuneWidth(glyphs[start-1].R)
		if used+w > width {
			break
		}
		used += w
		start--
	}
	out := make([]Glyph, 0, len(glyphs)-start+1)
	out = append(out, Glyph{R: ellipsis, Src: -1})
	return append(out, glyphs[start:]...)
}

// TruncateRight shortens text to width cells, ending with an ellipsis when
// anything was cut.
func TruncateRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, string(ellipsis))
}
