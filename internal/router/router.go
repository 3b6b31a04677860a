// Package router keeps the stack of open screens. Screens never touch the
// stack directly; they return the commands below and the app routes the
// resulting NavMsg.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlquest/internal/screen"
)

// Op is a stack operation.
type Op int

const (
	OpPush Op = iota
	OpBack
	OpReplace
)

// NavMsg asks the router to change the stack. Screen is unused for OpBack.
type NavMsg struct {
	Op     Op
	Screen screen.Screen
}

// Push opens s on top of the current screen.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return NavMsg{Op: OpPush, Screen: s} }
}

// Back closes the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return NavMsg{Op: OpBack} }
}

// Replace swaps the current screen for s, so Back skips it.
func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return NavMsg{Op: OpReplace, Screen: s} }
}

// Router is a stack of screens. The bottom screen is never closed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Active returns the top screen, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies a NavMsg or hands msg to the active screen. A screen
// uncovered by OpBack is resumed if it implements screen.Resumer; a new
// screen is initialised.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if nav, ok := msg.(NavMsg); ok {
		return r.navigate(nav)
	}
	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) navigate(nav NavMsg) tea.Cmd {
	if nav.Op != OpBack && nav.Screen == nil {
		return nil
	}
	switch nav.Op {
	case OpBack:
		if len(r.stack) < 2 {
			return nil
		}
		r.stack[len(r.stack)-1] = nil
		r.stack = r.stack[:len(r.stack)-1]
		if res, ok := r.Active().(screen.Resumer); ok {
			return res.Resume()
		}
		return nil
	case OpReplace:
		if len(r.stack) > 0 {
			r.stack = r.stack[:len(r.stack)-1]
		}
	}
	r.stack = append(r.stack, nav.Screen)
	return nav.Screen.Init()
}

// View renders the active screen into width x height.
func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
