package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/quickmove/internal/search"
	"github.com/kk-code-lab/quickmove/internal/textutil"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		if w := r.runeWidthCache[ru]; w != 0 {
			return w
		}
		w := textutil.RuneWidth(ru)
		r.runeWidthCache[ru] = w
		return w
	}
	if w, ok := r.runeWidthWide[ru]; ok {
		return w
	}
	w := textutil.RuneWidth(ru)
	r.runeWidthWide[ru] = w
	return w
}

func (r *Renderer) drawStyledRune(x, y, maxX int, ru rune, style tcell.Style) int {
	if x >= maxX {
		return x
	}

	width := r.cachedRuneWidth(ru)
	if x+width > maxX {
		// A wide rune that does not fit leaves a blank cell instead of spilling.
		r.screen.SetContent(x, y, ' ', nil, style)
		return maxX
	}

	r.screen.SetContent(x, y, ru, nil, style)
	for w := 1; w < width; w++ {
		r.screen.SetContent(x+w, y, ' ', nil, style)
	}
	return x + width
}

func (r *Renderer) drawStyledStringClipped(startX, y, maxX int, text string, style tcell.Style) int {
	if maxX <= startX {
		return startX
	}

	x := startX
	for _, ru := range text {
		if x >= maxX {
			break
		}
		x = r.drawStyledRune(x, y, maxX, ru, style)
	}
	return x
}

// drawHighlightedGlyphs draws sanitized glyphs, switching to highlightStyle
// for glyphs whose source rune falls inside spans.
func (r *Renderer) drawHighlightedGlyphs(startX, y, maxX int, glyphs []textutil.Glyph, spans []search.MatchSpan, baseStyle, highlightStyle tcell.Style) int {
	x := startX
	for _, g := range glyphs {
		if x >= maxX {
			break
		}
		style := baseStyle
		if g.Src >= 0 && search.SpanContains(spans, g.Src) {
			style = highlightStyle
		}
		x = r.drawStyledRune(x, y, maxX, g.R, style)
	}
	return x
}

func (r *Renderer) fillRow(startX, y, maxX int, style tcell.Style) {
	for x := startX; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
