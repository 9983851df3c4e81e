// Package input binds raw window callbacks to session commands.
package input

import (
	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/Carmen-Shannon/oxy-bulb/engine/session"
)

// Source is the subset of window.Window that produces input events.
type Source interface {
	SetResizeCallback(callback func(width, height int))
	SetScrollCallback(callback func(delta float64))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetMouseDownCallback(callback func(button int, x, y float64))
	SetMouseUpCallback(callback func(button int, x, y float64))
	SetMouseMoveCallback(callback func(x, y float64))
}

// Sink receives commands translated from input events.
type Sink interface {
	Submit(cmds ...session.Command)
}

// Binding holds the keys that the input layer handles itself instead of forwarding.
type Binding struct {
	sink      Sink
	exportKey uint32
	onExport  func()
}

// Bind installs callbacks on src that forward every event to sink as a command.
//
// Parameters:
//   - src: the window producing events
//   - sink: the receiver of translated commands
//   - options: functional options to configure the binding
//
// Returns:
//   - *Binding: the installed binding
func Bind(src Source, sink Sink, options ...BindingOption) *Binding {
	b := &Binding{
		sink:      sink,
		exportKey: common.KeyP,
	}
	for _, option := range options {
		option(b)
	}

	src.SetMouseDownCallback(b.mouseDown)
	src.SetMouseUpCallback(b.mouseUp)
	src.SetMouseMoveCallback(b.mouseMove)
	src.SetScrollCallback(b.scroll)
	src.SetKeyDownCallback(b.keyDown)
	src.SetResizeCallback(b.resize)
	return b
}

func (b *Binding) mouseDown(button int, x, y float64) {
	b.sink.Submit(session.PointerDown{Button: button, X: x, Y: y})
}

func (b *Binding) mouseUp(button int, x, y float64) {
	b.sink.Submit(session.PointerUp{Button: button})
}

func (b *Binding) mouseMove(x, y float64) {
	b.sink.Submit(session.PointerMove{X: x, Y: y})
}

// scroll maps the GLFW wheel offset, positive when the wheel turns up, to a zoom
// step. Wheel up zooms toward the surface.
func (b *Binding) scroll(delta float64) {
	if delta == 0 {
		return
	}
	b.sink.Submit(session.ZoomDelta{Amount: -delta})
}

func (b *Binding) keyDown(code uint32) {
	if code == b.exportKey && b.onExport != nil {
		b.onExport()
		return
	}
	b.sink.Submit(session.KeyPress{Code: code})
}

func (b *Binding) resize(width, height int) {
	b.sink.Submit(session.Resize{Width: width, Height: height})
}
