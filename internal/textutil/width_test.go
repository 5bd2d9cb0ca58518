package textutil

import "testing"

func glyphText(glyphs []Glyph) string {
	runes := make([]rune, len(glyphs))
	for i, g := range glyphs {
		runes[i] = g.R
	}
	return string(runes)
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"Music/Rock", 10},
		{"Łódź", 4},
		{"写真", 4},
		{"e\u0301", 2},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.text); got != tt.want {
			t.Fatalf("DisplayWidth(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestTruncateLeftKeepsTail(t *testing.T) {
	glyphs := SanitizeRunes("Project Stuff/Tiamblia")

	got := TruncateLeft(glyphs, 10)
	if text := glyphText(got); text != "…/Tiamblia" {
		t.Fatalf("TruncateLeft = %q", text)
	}
	if got[0].Src != -1 || got[1].Src != 13 {
		t.Fatalf("unexpected source indexes %+v", got[:2])
	}

	if text := glyphText(TruncateLeft(glyphs, 40)); text != "Project Stuff/Tiamblia" {
		t.Fatalf("short text should be untouched, got %q", text)
	}
	if got := TruncateLeft(glyphs, 0); got != nil {
		t.Fatalf("zero width should drop everything, got %q", glyphText(got))
	}
}

func TestTruncateLeftWideRunes(t *testing.T) {
	got := TruncateLeft(SanitizeRunes("写真/旅行"), 5)
	if text := glyphText(got); text != "…旅行" {
		t.Fatalf("TruncateLeft = %q", text)
	}
	if w := GlyphsWidth(got); w > 5 {
		t.Fatalf("width %d exceeds limit", w)
	}
}

func TestTruncateRight(t *testing.T) {
	if got := TruncateRight("short", 10); got != "short" {
		t.Fatalf("TruncateRight = %q", got)
	}
	if got := TruncateRight("a-long-file-name.txt", 8); got != "a-long-…" {
		t.Fatalf("TruncateRight = %q", got)
	}
	if got := TruncateRight("abc", 0); got != "" {
		t.Fatalf("TruncateRight = %q", got)
	}
}
