package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestIsCompact(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          bool
	}{
		{"wide and tall", 120, 40, false},
		{"narrow", 90, 40, true},
		{"short once chrome is added", 120, 23, true},
		{"exactly at threshold", 100, 24, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCompact(tt.width, tt.height); got != tt.want {
				t.Errorf("IsCompact(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestFrameRender(t *testing.T) {
	f := Frame{
		Title:  "Assessment",
		UserID: "u1",
		Hints:  []KeyHint{{Key: "Enter", Description: "Next"}},
	}

	var gotW, gotH int
	out := f.Render(100, 30, func(w, h int) string {
		gotW, gotH = w, h
		return "BODY"
	})

	if gotW != 100 || gotH != 30-chromeHeight {
		t.Errorf("content area = %dx%d, want 100x%d", gotW, gotH, 30-chromeHeight)
	}
	plain := ansi.Strip(out)
	for _, want := range []string{AppName, "Assessment", "user u1", "BODY", "Enter Next"} {
		if !strings.Contains(plain, want) {
			t.Errorf("expected %q in frame", want)
		}
	}
	if n := strings.Count(out, "\n") + 1; n != 30 {
		t.Errorf("frame has %d rows, want 30", n)
	}
}

func TestFrameRender_NoticeAndMissingUser(t *testing.T) {
	f := Frame{Notice: Notice{Text: "Quiz submitted.", Error: false}}

	var rows int
	plain := ansi.Strip(f.Render(100, 30, func(_, h int) string { rows = h; return "" }))
	if !strings.Contains(plain, "Quiz submitted.") {
		t.Error("expected notice in frame")
	}
	if !strings.Contains(plain, "user no user") {
		t.Error("expected missing user marker")
	}
	if rows != 30-chromeHeight-1 {
		t.Errorf("content rows = %d, want %d", rows, 30-chromeHeight-1)
	}
}

func TestFrameRender_TooSmall(t *testing.T) {
	called := false
	out := Frame{}.Render(60, 20, func(int, int) string { called = true; return "" })
	if called {
		t.Error("content should not render below the minimum size")
	}
	if !strings.Contains(out, "Terminal too small") {
		t.Error("expected resize message")
	}
}
