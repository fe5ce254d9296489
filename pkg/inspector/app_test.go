package inspector

import (
	"errors"
	"testing"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

func TestNewApp(t *testing.T) {
	t.Run("nil_app_has_no_op_methods", func(t *testing.T) {
		a := NewApp(nil)
		assert.NotNil(t, a)
		assert.NoError(t, a.Run())
		a.Stop()
		a.EnableMouse(true)
		a.SetFocus(nil)
		a.SetRoot(nil, true)
		called := false
		a.QueueUpdateDraw(func() { called = true })
		assert.True(t, called)
	})

	t.Run("wraps_tview_application", func(t *testing.T) {
		a := NewApp(tview.NewApplication(), WithQueueUpdateDraw(func(f func()) { f() }))
		ap := a.(*appProxy)
		assert.NotNil(t, ap.run)
		assert.NotNil(t, ap.stop)

		root := tview.NewTextView()
		a.SetRoot(root, true)
		a.SetFocus(root)
		a.EnableMouse(false)
	})
}

func TestAppProxy_Options(t *testing.T) {
	var focusCalled, rootCalled, stopCalled bool
	runErr := errors.New("no screen")
	a := NewApp(nil,
		WithSetFocus(func(tview.Primitive) { focusCalled = true }),
		WithSetRoot(func(tview.Primitive, bool) { rootCalled = true }),
		WithRun(func() error { return runErr }),
		WithStop(func() { stopCalled = true }),
	)

	a.SetFocus(nil)
	a.SetRoot(nil, false)
	a.Stop()
	assert.True(t, focusCalled)
	assert.True(t, rootCalled)
	assert.True(t, stopCalled)
	assert.Equal(t, runErr, a.Run())
}
