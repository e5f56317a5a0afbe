package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/oukeidos/lorakit/internal/logger"
	"github.com/oukeidos/lorakit/internal/version"
)

func main() {
	logger.Init(logger.LevelInfo, nil)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()

	myApp := app.NewWithID("com.oukeidos.lorakit")

	w := myApp.NewWindow(version.Short())
	w.SetMaster()
	w.Resize(fyne.NewSize(1180, 780))
	w.CenterOnScreen()

	la := newLorakitApp(w)
	w.SetCloseIntercept(func() {
		la.shutdown()
		w.SetCloseIntercept(nil)
		w.Close()
	})

	w.ShowAndRun()
}
