// Command director-player loads a bundle (manifest.toml + cast bitmaps +
// sound files, this project's own stand-in for an already-extracted
// Director movie, since parsing the real .dir container is out of scope)
// and plays it back through internal/player.Movie, wired to an SDL2-backed
// internal/host/sdlhost canvas/audio/input, paced by internal/clock's
// FramePacer. Grounded on the teacher's cmd/emulator/main.go: flag-driven,
// -log toggles every debug component, Ctrl+C / window-close stops cleanly.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"directorcore/internal/audio"
	"directorcore/internal/clock"
	"directorcore/internal/config"
	"directorcore/internal/debug"
	"directorcore/internal/host"
	"directorcore/internal/host/sdlhost"
	"directorcore/internal/player"
	"directorcore/internal/score"
	"directorcore/internal/sprite"
)

// noopHost is sprite.Host with no Lingo VM behind it: the core's
// spec.md §4.5 span-activation timing (beginSprite/endSprite dispatch,
// behavior attachment order) still runs, but the behaviors themselves do
// nothing, since the Lingo interpreter proper is an explicit Non-goal.
type noopHost struct {
	next sprite.InstanceHandle
}

func (h *noopHost) InstantiateBehavior(sprite.CastMemberRef) (sprite.InstanceHandle, error) {
	h.next++
	return h.next, nil
}
func (h *noopHost) ApplyParameters(sprite.InstanceHandle, string) error { return nil }
func (h *noopHost) Dispatch(sprite.InstanceHandle, string, []any) (bool, error) {
	return true, nil
}

func main() {
	bundleDir := flag.String("bundle", "", "Path to a director-player bundle directory (must contain manifest.toml)")
	configPath := flag.String("config", "director.toml", "Path to a player config TOML file")
	scale := flag.Int("scale", 2, "Display scale (1-6)")
	headless := flag.Bool("headless", false, "Run without an SDL window (ticks the movie with no canvas/audio/input)")
	enableLog := flag.Bool("log", false, "Enable debug logging on every component")
	unlimited := flag.Bool("unlimited", false, "Run at unlimited speed (no frame pacing)")
	showUI := flag.Bool("ui", false, "Show a Fyne transport-bar window (play/pause, frame/fps status)")
	frameLogPath := flag.String("framelog", "", "Write a per-frame sprite/audio state log to this file (empty disables)")
	flag.Parse()

	if *bundleDir == "" {
		fmt.Println("Usage: director-player -bundle <dir>")
		fmt.Println("  -bundle <dir>    Path to a bundle directory (manifest.toml + cast files)")
		fmt.Println("  -config <path>   Player config TOML (default: director.toml)")
		fmt.Println("  -scale <1-6>     Display scale (default: 2)")
		fmt.Println("  -headless        Run without a window")
		fmt.Println("  -log             Enable debug logging")
		fmt.Println("  -unlimited       Disable frame pacing")
		fmt.Println("  -ui              Show a transport-bar window")
		fmt.Println("  -framelog <path> Write a per-frame sprite/audio state log")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "director-player: %v\n", err)
		os.Exit(1)
	}

	logger := debug.NewLogger(10000)
	cfg.ApplyLogging(logger)
	if *enableLog {
		// -log overrides whatever director.toml set: every component on.
		for _, c := range []debug.Component{
			debug.ComponentScore, debug.ComponentCompositor, debug.ComponentAudio,
			debug.ComponentLingo, debug.ComponentBuiltin, debug.ComponentHost, debug.ComponentSystem,
		} {
			logger.SetComponentEnabled(c, true)
		}
	}

	cfgStore := config.NewStore(cfg)
	watchDone := make(chan struct{})
	defer close(watchDone)
	if _, err := os.Stat(*configPath); err == nil {
		go func() {
			if err := config.Watch(*configPath, cfgStore, logger, watchDone); err != nil {
				logger.LogSystem(debug.LogLevelWarning, "config watch stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	b, err := loadBundle(*bundleDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "director-player: %v\n", err)
		os.Exit(1)
	}

	header := scorechunkHeader(b.manifest.Movie)
	stream := encodeDeltaStream(b.manifest.Movie, b.manifest.Sprite)
	timeline, err := score.Reconstruct(header, stream)
	if err != nil {
		fmt.Fprintf(os.Stderr, "director-player: reconstruct timeline: %v\n", err)
		os.Exit(1)
	}
	intervals, behaviors := buildSpans(b.manifest.Sprite)
	spans := score.BuildSpans(intervals, behaviors)

	var canvas host.Canvas
	var audioCtx host.AudioContext
	var in host.InputSource
	var sdlInput *sdlhost.Input

	if !*headless {
		sdlCanvas, err := sdlhost.NewCanvas("Director Player", b.manifest.Movie.StageWidth, b.manifest.Movie.StageHeight, *scale)
		if err != nil {
			fmt.Fprintf(os.Stderr, "director-player: create canvas: %v\n", err)
			os.Exit(1)
		}
		defer sdlCanvas.Close()
		canvas = sdlCanvas

		sdlAudio, err := sdlhost.NewAudioContext(b.manifest.Movie.SampleRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "director-player: create audio context: %v\n", err)
			os.Exit(1)
		}
		defer sdlAudio.Close()
		audioCtx = sdlAudio

		sdlInput = sdlhost.NewInput()
		in = sdlInput
	}

	movie := player.NewMovie(timeline, spans, &noopHost{}, b, canvas, in,
		b.manifest.Movie.StageWidth, b.manifest.Movie.StageHeight,
		b.manifest.Movie.NumAudioChannels, logger)
	for _, l := range b.manifest.Label {
		movie.SetLabel(l.Frame, l.Name)
	}

	fps := b.manifest.Movie.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	pacer := clock.NewFramePacer(fps)
	pacer.Enabled = !*unlimited

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	bridging := newAudioBridgeState()

	var frameLogger *debug.FrameLogger
	if *frameLogPath != "" {
		fl, err := debug.NewFrameLogger(*frameLogPath, 0, 0, movie.Machine, movie.Audio(),
			int(b.manifest.Movie.NumChannels), b.manifest.Movie.NumAudioChannels)
		if err != nil {
			fmt.Fprintf(os.Stderr, "director-player: %v\n", err)
			os.Exit(1)
		}
		defer fl.Close()
		frameLogger = fl
	}

	fmt.Printf("Director Player — bundle %s, %dx%d, %d frames, %.0f fps\n",
		*bundleDir, b.manifest.Movie.StageWidth, b.manifest.Movie.StageHeight, b.manifest.Movie.FrameCount, fps)

	playback := func(ui *transportUI) {
		for frame := uint32(0); frame < b.manifest.Movie.FrameCount; frame++ {
			select {
			case <-sigCh:
				return
			default:
			}
			if sdlInput != nil && sdlInput.Quit() {
				return
			}
			if ui != nil {
				for ui.Paused() {
					pacer.WaitNextFrame()
					if sdlInput != nil && sdlInput.Quit() {
						return
					}
				}
			}

			if err := movie.Tick(1.0 / fps); err != nil {
				fmt.Fprintf(os.Stderr, "director-player: tick: %v\n", err)
				os.Exit(1)
			}
			if audioCtx != nil {
				bridging.bridgeLoadingChannels(movie, b, audioCtx)
			}
			if frameLogger != nil {
				frameLogger.LogFrame(frame)
			}
			pacer.WaitNextFrame()
			if ui != nil {
				ui.Refresh(frame+1, b.manifest.Movie.FrameCount, pacer.FPS)
			}
		}
		if ui != nil {
			ui.Close()
		}
	}

	if *showUI {
		// A transport window needs Fyne's own event loop on the main
		// goroutine (ShowAndRun), so playback runs on a second goroutine,
		// matching the teacher's FyneUI.Run/updateLoop split.
		ui := newTransportUI(fmt.Sprintf("Director Player — %s", *bundleDir))
		go playback(ui)
		ui.Run()
		return
	}

	playback(nil)
}

// audioBridgeState tracks which channels already have a DecodeAsync call
// in flight, since Engine.Channel.IsDecoding stays true for the whole
// Loading→Playing span and the main loop's per-tick scan would otherwise
// fire a fresh decode every frame until the callback lands. Guarded by a
// mutex because DecodeAsync's callback runs on its own goroutine
// (internal/host/sdlhost's decode/resample suspension points, spec.md §5).
type audioBridgeState struct {
	mu       sync.Mutex
	inFlight map[int]bool
}

func newAudioBridgeState() *audioBridgeState {
	return &audioBridgeState{inFlight: make(map[int]bool)}
}

// bridgeLoadingChannels drives internal/audio's Loading-state channels
// through the host audio surface: decode the member's raw bytes, hand the
// result to a freshly created host buffer, and report completion back to
// the engine. This is the one place in the player binary where a
// CastLibrary's raw sample bytes and a host.AudioContext meet —
// internal/player.Movie holds neither the bytes nor the host audio handle
// together, by design (see Movie.Audio's doc comment).
func (s *audioBridgeState) bridgeLoadingChannels(movie *player.Movie, b *bundle, audioCtx host.AudioContext) {
	engine := movie.Audio()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range engine.Channels {
		ch := &engine.Channels[i]
		if ch.Status != audio.Loading || s.inFlight[ch.Number] {
			continue
		}
		data, ok := b.SoundBytes(ch.Member)
		if !ok {
			continue
		}
		s.inFlight[ch.Number] = true
		n := ch.Number
		audioCtx.DecodeAsync(data, func(samples []float32, err error) {
			s.mu.Lock()
			delete(s.inFlight, n)
			s.mu.Unlock()
			if err != nil {
				return
			}
			buf, err := audioCtx.CreateBuffer(samples, b.manifest.Movie.SampleRate, 1)
			if err != nil {
				return
			}
			audioCtx.Play(buf, n)
			engine.OnDecoded(n)
		})
	}
}
