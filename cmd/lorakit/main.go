package main

import "golang.design/x/hotkey/mainthread"

// Global hotkeys must be registered from the main thread on macOS.
func main() { mainthread.Init(execute) }
