package sdlhost

import (
	"github.com/veandco/go-sdl2/sdl"

	"directorcore/internal/host"
)

// Input is the SDL2-backed implementation of host.InputSource, grounded
// on ui.go's handleEvent/updateInput (sdl.PollEvent loop, sdl.GetKeyboardState
// for the live key set).
type Input struct {
	keysDown map[int]bool
	quit     bool
}

// NewInput creates an input source with no keys held.
func NewInput() *Input {
	return &Input{keysDown: make(map[int]bool)}
}

// Quit reports whether the window's close button (or an OS quit signal)
// has been seen, for the player binary's main loop to check after every
// PollEvents call.
func (in *Input) Quit() bool { return in.quit }

// PollEvents drains SDL's event queue, translating quit/keyboard/mouse
// events into host.InputEvent and updating the live key-down set consumed
// by KeysDown (and, through it, internal/builtin's keyPressed()).
func (in *Input) PollEvents() []host.InputEvent {
	var events []host.InputEvent
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			in.quit = true
		case *sdl.KeyboardEvent:
			code := int(ev.Keysym.Sym)
			switch ev.Type {
			case sdl.KEYDOWN:
				in.keysDown[code] = true
				events = append(events, host.InputEvent{Kind: host.EventKeyDown, Key: code})
			case sdl.KEYUP:
				delete(in.keysDown, code)
				events = append(events, host.InputEvent{Kind: host.EventKeyUp, Key: code})
			}
		case *sdl.MouseMotionEvent:
			events = append(events, host.InputEvent{
				Kind:  host.EventMouseMove,
				Mouse: host.MouseEvent{X: int(ev.X), Y: int(ev.Y)},
			})
		case *sdl.MouseButtonEvent:
			kind := host.EventMouseUp
			down := ev.Type == sdl.MOUSEBUTTONDOWN
			if down {
				kind = host.EventMouseDown
			}
			events = append(events, host.InputEvent{
				Kind:  kind,
				Mouse: host.MouseEvent{X: int(ev.X), Y: int(ev.Y), ButtonDown: down},
			})
		}
	}
	return events
}

// KeysDown returns the scan codes currently held, matching
// internal/builtin.MovieContext's KeysDown contract.
func (in *Input) KeysDown() []int {
	codes := make([]int, 0, len(in.keysDown))
	for code := range in.keysDown {
		codes = append(codes, code)
	}
	return codes
}
