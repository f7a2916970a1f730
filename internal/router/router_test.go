package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/dsaintel/dsaiq/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestReset(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Push(&stubScreen{title: "second"})
	r.Push(&stubScreen{title: "third"})

	s4 := &stubScreen{title: "landing"}
	r.Update(ResetScreenMsg{Screen: s4})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after reset, got %d", r.Depth())
	}
	if r.Active().Title() != "landing" {
		t.Errorf("expected active 'landing', got %q", r.Active().Title())
	}
	if !s4.initRan {
		t.Error("expected Init() to run on reset screen")
	}
}

func TestNavigateMsg(t *testing.T) {
	resolve := func(route string) screen.Screen {
		if route == "missing" {
			return nil
		}
		return &stubScreen{title: route}
	}

	tests := []struct {
		name      string
		mode      Mode
		wantDepth int
	}{
		{"push", ModePush, 3},
		{"replace", ModeReplace, 2},
		{"reset", ModeReset, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubScreen{title: "first"}).WithResolver(resolve)
			r.Push(&stubScreen{title: "second"})

			r.Update(NavigateMsg{Route: "dashboard", Mode: tt.mode})

			if r.Depth() != tt.wantDepth {
				t.Errorf("expected depth %d, got %d", tt.wantDepth, r.Depth())
			}
			if r.Active().Title() != "dashboard" {
				t.Errorf("expected active 'dashboard', got %q", r.Active().Title())
			}
		})
	}
}

func TestNavigateWithoutResolver(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Update(NavigateMsg{Route: "dashboard"})

	if r.Depth() != 1 || r.Active().Title() != "first" {
		t.Error("expected navigation without a resolver to be ignored")
	}
}

func TestNavigateUnresolvedRoute(t *testing.T) {
	r := New(&stubScreen{title: "first"}).WithResolver(func(string) screen.Screen { return nil })
	r.Update(NavigateMsg{Route: "missing", Mode: ModeReset})

	if r.Active().Title() != "first" {
		t.Errorf("expected stack unchanged, got %q", r.Active().Title())
	}
}

func TestNavigateCmd(t *testing.T) {
	msg := Navigate("quiz", ModeReplace)()
	nav, ok := msg.(NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", msg)
	}
	if nav.Route != "quiz" || nav.Mode != ModeReplace {
		t.Errorf("unexpected msg %+v", nav)
	}
}
