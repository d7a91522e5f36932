package main

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// transportUI is a minimal Fyne transport-bar window: a play/pause toggle
// plus a frame/fps status label, updated from the playback goroutine.
// Grounded on the teacher's internal/ui.FyneUI (same statusLabel/paused
// shape, same fyne.Do-guarded cross-thread refresh rule, same
// ShowAndRun-on-main-goroutine/update-loop-on-its-own-goroutine split) but
// trimmed to transport controls only: the register/memory/tile debug
// panels are Non-goal chrome this project has no SPEC_FULL.md use for.
type transportUI struct {
	app    fyne.App
	window fyne.Window

	mu     sync.Mutex
	paused bool

	statusLabel *widget.Label
	playButton  *widget.Button
}

func newTransportUI(title string) *transportUI {
	t := &transportUI{}
	t.app = app.NewWithID("com.directorcore.player")
	t.window = t.app.NewWindow(title)

	t.statusLabel = widget.NewLabel("Frame: 0 / 0 | FPS: 0.0")
	t.playButton = widget.NewButton("Pause", t.togglePause)

	t.window.SetContent(container.NewVBox(t.statusLabel, t.playButton))
	t.window.Resize(fyne.NewSize(280, 80))
	return t
}

func (t *transportUI) togglePause() {
	t.mu.Lock()
	t.paused = !t.paused
	label := "Pause"
	if t.paused {
		label = "Resume"
	}
	t.mu.Unlock()
	t.playButton.SetText(label)
}

// Paused reports whether the playback goroutine should hold at the current
// frame, polled once per tick before calling Movie.Tick.
func (t *transportUI) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// Refresh updates the status label from the playback goroutine; wrapped in
// fyne.Do since Fyne widgets may only be touched from the UI goroutine.
func (t *transportUI) Refresh(frame, total uint32, fps float64) {
	fyne.Do(func() {
		t.statusLabel.SetText(fmt.Sprintf("Frame: %d / %d | FPS: %.1f", frame, total, fps))
	})
}

// Run shows the window and blocks until it's closed, same contract as the
// teacher's FyneUI.Run.
func (t *transportUI) Run() {
	t.window.ShowAndRun()
}

// Close requests the window close from the playback goroutine once
// playback has ended, so Run's ShowAndRun returns and main can exit.
func (t *transportUI) Close() {
	fyne.Do(func() { t.window.Close() })
}
