package main

import (
	"fmt"
	"runtime/debug"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/oukeidos/lorakit/internal/logger"
)

// withPanicGuard runs fn, turning a panic into an error log and an onPanic call.
func withPanicGuard(scope string, onPanic func(any), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			if onPanic != nil {
				onPanic(r)
			}
		}
	}()
	fn()
}

func (a *lorakitApp) recoverer(scope string) func(any) {
	if a == nil {
		return nil
	}
	return func(r any) { a.handleRecoveredPanic(scope, r) }
}

// safeGo runs fn on a new goroutine.
func (a *lorakitApp) safeGo(scope string, fn func()) {
	go withPanicGuard(scope, a.recoverer(scope), fn)
}

// safeDo runs fn on the UI goroutine.
func (a *lorakitApp) safeDo(scope string, fn func()) {
	fyne.Do(func() {
		withPanicGuard(scope, a.recoverer(scope), fn)
	})
}

// runTask runs work off the UI goroutine, then the function it returns on
// the UI goroutine. When either step panics, reset runs on the UI goroutine
// so the caller can leave its busy state.
func (a *lorakitApp) runTask(scope string, work func() func(), reset func()) {
	fail := func(r any) {
		if rec := a.recoverer(scope); rec != nil {
			rec(r)
		}
		if reset != nil {
			fyne.Do(func() { withPanicGuard(scope+".reset", nil, reset) })
		}
	}
	go withPanicGuard(scope, fail, func() {
		then := work()
		if then == nil {
			return
		}
		fyne.Do(func() { withPanicGuard(scope+".done", fail, then) })
	})
}

// handleRecoveredPanic stops background capture and tells the user once.
func (a *lorakitApp) handleRecoveredPanic(scope string, _ any) {
	if a == nil || fyne.CurrentApp() == nil {
		return
	}
	if a.shots != nil {
		a.shots.stop()
	}
	a.panicNoticeOnce.Do(func() {
		a.safeDo("panic.notice", func() {
			if a.window == nil {
				return
			}
			dialog.ShowInformation(
				"Unexpected Error",
				"An internal error occurred in "+scope+" and the action was stopped. Your files were not changed by the failed step. If this repeats, restart the app.",
				a.window,
			)
		})
	})
}
