package render

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/quickmove/internal/state"
	"github.com/kk-code-lab/quickmove/internal/textutil"
)

const (
	headerRow   = 0
	queryRow    = 1
	listStartY  = 2
	queryPrompt = "> "
	placeholder = "(type a folder name)"
	dryRunTag   = " [dry run] "
	newTag      = " (new)"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen         tcell.Screen
	theme          ColorTheme
	runeWidthCache [128]int // ASCII cache (0-127)
	runeWidthWide  map[rune]int
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen:        screen,
		theme:         GetColorTheme(),
		runeWidthWide: make(map[rune]int),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if state == nil || w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	if h > queryRow {
		r.drawQueryLine(state, w)
	}
	if h > listStartY {
		r.drawCandidates(state, w, h)
		r.drawStatusLine(state, w, h)
	}

	r.screen.Show()
}

// drawHeader renders the top bar with the payload summary
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fillRow(0, headerRow, w, headerStyle)

	maxX := w
	if state.DryRun {
		tagWidth := textutil.DisplayWidth(dryRunTag)
		if tagWidth < w {
			maxX = w - tagWidth
			r.drawStyledStringClipped(maxX, headerRow, w, dryRunTag, headerStyle.Foreground(r.theme.DryRunFg).Bold(true))
		}
	}

	x := r.drawStyledStringClipped(0, headerRow, maxX, "quickmove ", headerStyle.Bold(true))
	summary := textutil.SanitizeTerminalText(formatPayloadSummary(state.Payload))
	summary = textutil.TruncateRight(summary, maxX-x)
	r.drawStyledStringClipped(x, headerRow, maxX, summary, headerStyle)
}

// drawQueryLine renders the prompt, the query and its cursor
func (r *Renderer) drawQueryLine(state *statepkg.AppState, w int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	cursorStyle := baseStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	placeholderStyle := baseStyle.Dim(true)

	r.fillRow(0, queryRow, w, baseStyle)
	x := r.drawStyledStringClipped(0, queryRow, w, queryPrompt, baseStyle.Bold(true))

	queryRunes := []rune(textutil.SanitizeTerminalText(state.Query))
	cursor := state.CursorPos
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(queryRunes) {
		cursor = len(queryRunes)
	}

	if len(queryRunes) == 0 {
		x = r.drawStyledRune(x, queryRow, w, '█', cursorStyle)
		r.drawStyledStringClipped(x, queryRow, w, placeholder, placeholderStyle)
		return
	}

	// Keep the cursor on screen by dropping the head of a long query.
	available := w - x - 1
	start := 0
	for start < cursor && textutil.DisplayWidth(string(queryRunes[start:cursor])) > available {
		start++
	}

	for idx := start; idx < len(queryRunes); idx++ {
		if x >= w {
			break
		}
		style := baseStyle
		if idx == cursor {
			style = cursorStyle
		}
		x = r.drawStyledRune(x, queryRow, w, queryRunes[idx], style)
	}
	if cursor == len(queryRunes) {
		r.drawStyledRune(x, queryRow, w, '█', cursorStyle)
	}
}

// drawCandidates renders the ranked destination list
func (r *Renderer) drawCandidates(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	bottomLimit := h - 1
	for y := listStartY; y < bottomLimit; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	if len(state.Candidates) == 0 {
		if listStartY < bottomLimit {
			r.drawStyledStringClipped(2, listStartY, w, "(no folders under "+textutil.SanitizeTerminalText(state.Root)+")", baseStyle.Dim(true))
		}
		return
	}

	startIdx := state.ScrollOffset
	if startIdx < 0 {
		startIdx = 0
	}
	maxScore := determineMaxScore(state.Candidates)

	y := listStartY
	for idx := startIdx; idx < len(state.Candidates) && y < bottomLimit; idx++ {
		candidate := state.Candidates[idx]
		isSelected := idx == state.SelectedIndex

		rowStyle := baseStyle
		if isSelected {
			rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
			r.fillRow(0, y, w, rowStyle)
		}

		var scoreText string
		scoreStyle := rowStyle
		if candidate.IsNew {
			scoreText = newTag
			if !isSelected {
				scoreStyle = rowStyle.Foreground(r.theme.NewFolderFg)
			}
		} else {
			var ratio float64
			scoreText, ratio = formatScoreText(candidate.Score, maxScore)
			scoreStyle = r.scoreStyleForRatio(rowStyle, ratio)
		}
		scoreX := w - textutil.DisplayWidth(scoreText)
		if scoreX < 0 {
			scoreX = 0
		}
		pathLimit := scoreX - 1
		if pathLimit < 0 {
			pathLimit = 0
		}

		marker := ' '
		if isSelected {
			marker = '▶'
		}
		x := r.drawStyledRune(0, y, pathLimit, marker, rowStyle.Bold(isSelected))
		x = r.drawStyledRune(x, y, pathLimit, ' ', rowStyle)

		labelStyle, matchStyle := r.candidateStyles(rowStyle, isSelected, candidate.IsNew)
		glyphs := textutil.TruncateLeft(textutil.SanitizeRunes(candidate.Label), pathLimit-x)
		r.drawHighlightedGlyphs(x, y, pathLimit, glyphs, candidate.Spans, labelStyle, matchStyle)

		r.drawStyledStringClipped(scoreX, y, w, scoreText, scoreStyle)
		y++
	}
}

// drawStatusLine renders the destination path, or the last error, with key help
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	y := h - 1
	r.fillRow(0, y, w, normalStyle)

	text := formatTargetStatus(state)
	style := normalStyle
	if state.LastError != nil {
		text = "error: " + state.LastError.Error()
		style = normalStyle.Foreground(r.theme.ErrorFg).Bold(true)
	}
	text = textutil.SanitizeTerminalText(text)

	help := buildFooterHelpText(state)
	helpWidth := textutil.DisplayWidth(help)
	textLimit := w
	if helpWidth > 0 && textutil.DisplayWidth(text)+helpWidth+1 <= w {
		textLimit = w - helpWidth
		r.drawStyledStringClipped(textLimit, y, w, help, normalStyle.Dim(true))
	}

	r.drawStyledStringClipped(0, y, textLimit, textutil.TruncateRight(text, textLimit), style)
}

func (r *Renderer) scoreStyleForRatio(base tcell.Style, ratio float64) tcell.Style {
	switch {
	case ratio >= 0.85:
		return base.Foreground(tcell.ColorGreen).Bold(true)
	case ratio >= 0.6:
		return base.Foreground(tcell.ColorYellowGreen)
	case ratio >= 0.4:
		return base.Foreground(tcell.ColorYellow)
	default:
		return base.Foreground(tcell.ColorDarkGray)
	}
}

func (r *Renderer) candidateStyles(rowStyle tcell.Style, isSelected, isNew bool) (tcell.Style, tcell.Style) {
	if isSelected {
		base := rowStyle.Foreground(r.theme.SelectionFg)
		return base, base.Bold(true).Underline(true)
	}

	color := r.theme.DirectoryFg
	if isNew {
		color = r.theme.NewFolderFg
	}
	base := rowStyle.Foreground(color)
	match := rowStyle.Foreground(r.theme.MatchFg).Bold(true)
	return base, match
}
