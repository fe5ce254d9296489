package inspector

import (
	"github.com/rivo/tview"
)

// App is the part of *tview.Application the inspector drives.
type App interface {
	Run() error
	QueueUpdateDraw(f func())
	SetFocus(p tview.Primitive)
	SetRoot(root tview.Primitive, fullscreen bool)
	Stop()
	EnableMouse(bool)
}

type AppOption func(a *appProxy)

// NewApp wraps app. Options replace individual methods, which lets tests
// drive an inspector without a screen.
func NewApp(app *tview.Application, o ...AppOption) App {
	a := &appProxy{
		queueUpdateDraw: func(f func()) { f() },
		setFocus:        func(tview.Primitive) {},
		setRoot:         func(tview.Primitive, bool) {},
		enableMouse:     func(bool) {},
		run:             func() error { return nil },
		stop:            func() {},
	}
	if app != nil {
		a.queueUpdateDraw = func(f func()) {
			_ = app.QueueUpdateDraw(f)
		}
		a.setFocus = func(p tview.Primitive) {
			_ = app.SetFocus(p)
		}
		a.setRoot = func(root tview.Primitive, fullscreen bool) {
			_ = app.SetRoot(root, fullscreen)
		}
		a.enableMouse = func(b bool) {
			_ = app.EnableMouse(b)
		}
		a.run = app.Run
		a.stop = app.Stop
	}
	for _, option := range o {
		option(a)
	}
	return a
}

func WithQueueUpdateDraw(queueUpdateDraw func(func())) AppOption {
	return func(a *appProxy) {
		a.queueUpdateDraw = queueUpdateDraw
	}
}

func WithSetFocus(setFocus func(tview.Primitive)) AppOption {
	return func(a *appProxy) {
		a.setFocus = setFocus
	}
}

func WithSetRoot(setRoot func(root tview.Primitive, fullscreen bool)) AppOption {
	return func(a *appProxy) {
		a.setRoot = setRoot
	}
}

func WithRun(run func() error) AppOption {
	return func(a *appProxy) {
		a.run = run
	}
}

func WithStop(stop func()) AppOption {
	return func(a *appProxy) {
		a.stop = stop
	}
}

var _ App = (*appProxy)(nil)

type appProxy struct {
	queueUpdateDraw func(func())
	setFocus        func(tview.Primitive)
	setRoot         func(tview.Primitive, bool)
	enableMouse     func(bool)
	run             func() error
	stop            func()
}

func (a *appProxy) EnableMouse(b bool) {
	a.enableMouse(b)
}

func (a *appProxy) QueueUpdateDraw(f func()) {
	a.queueUpdateDraw(f)
}

func (a *appProxy) SetFocus(p tview.Primitive) {
	a.setFocus(p)
}

func (a *appProxy) SetRoot(root tview.Primitive, fullscreen bool) {
	a.setRoot(root, fullscreen)
}

func (a *appProxy) Run() error {
	return a.run()
}

func (a *appProxy) Stop() {
	a.stop()
}
