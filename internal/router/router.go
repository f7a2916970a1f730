package router

import (
	"github.com/dsaintel/dsaiq/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top of the stack for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// ResetScreenMsg clears the stack and leaves Screen as its only entry.
type ResetScreenMsg struct {
	Screen screen.Screen
}

// Mode selects how a NavigateMsg changes the stack.
type Mode int

const (
	ModePush Mode = iota
	ModeReplace
	ModeReset
)

// NavigateMsg requests navigation by route name. Screens emit it when they
// cannot construct the destination themselves.
type NavigateMsg struct {
	Route string
	Mode  Mode
}

// Navigate returns a command emitting a NavigateMsg.
func Navigate(route string, mode Mode) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: route, Mode: mode}
	}
}

// Resolver builds the screen for a route name. Unknown routes should map to
// a fallback screen rather than nil.
type Resolver func(route string) screen.Screen

// Router manages a stack of screens.
type Router struct {
	stack   []screen.Screen
	resolve Resolver
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// WithResolver sets the route table used for NavigateMsg.
func (r *Router) WithResolver(fn Resolver) *Router {
	r.resolve = fn
	return r
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen for s and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		r.stack = append(r.stack, s)
	} else {
		r.stack[len(r.stack)-1] = s
	}
	return s.Init()
}

// Reset drops every screen and starts over from s.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	r.stack = []screen.Screen{s}
	return s.Init()
}

// Navigate resolves route and applies it with mode.
func (r *Router) Navigate(route string, mode Mode) tea.Cmd {
	if r.resolve == nil {
		return nil
	}
	s := r.resolve(route)
	if s == nil {
		return nil
	}
	switch mode {
	case ModeReplace:
		return r.Replace(s)
	case ModeReset:
		return r.Reset(s)
	default:
		return r.Push(s)
	}
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case ResetScreenMsg:
		return r.Reset(msg.Screen)
	case NavigateMsg:
		return r.Navigate(msg.Route, msg.Mode)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
