// Package clock paces a movie's frame loop against wall-clock time,
// grounded on the teacher's internal/emulator.Emulator frame-limiting tail
// (FrameLimitEnabled/TargetFPS/FrameTime/LastFrameTime, RunFrame's
// time.Sleep(FrameTime-elapsed) call and rolling FPS counter). Director
// has no CPU/PPU/APU cycle grid to coordinate against (the teacher's
// MasterClock), so the cycle-stepping scheduler has no SPEC_FULL.md home;
// what survives is the wall-clock pacing a player binary's own main loop
// needs to drive internal/player.Movie.Tick at the movie's tempo.
package clock

import "time"

// FramePacer sleeps out whatever time is left in a frame's budget after the
// caller's work for that frame completes, and tracks a rolling FPS reading
// the way the teacher's Emulator.FPS field does.
type FramePacer struct {
	TargetFPS     float64
	FrameTime     time.Duration
	Enabled       bool
	lastFrameTime time.Time

	FPS           float64
	frameCount    uint64
	fpsUpdateTime time.Time
}

// NewFramePacer creates a pacer targeting fps frames per second. A
// Director movie's tempo channel can retarget this at runtime via
// SetTargetFPS (e.g. a "tempo" frame-channel entry changing playback
// speed mid-movie).
func NewFramePacer(fps float64) *FramePacer {
	now := time.Now()
	return &FramePacer{
		TargetFPS:     fps,
		FrameTime:     time.Duration(float64(time.Second) / fps),
		Enabled:       true,
		lastFrameTime: now,
		fpsUpdateTime: now,
	}
}

// SetTargetFPS retargets the pacer's frame budget, e.g. in response to a
// tempo channel record changing a movie's playback speed.
func (p *FramePacer) SetTargetFPS(fps float64) {
	p.TargetFPS = fps
	p.FrameTime = time.Duration(float64(time.Second) / fps)
}

// WaitNextFrame blocks until the current frame's time budget has elapsed
// (a no-op once the budget already passed), then resets the budget clock
// for the next frame and updates the rolling FPS counter.
func (p *FramePacer) WaitNextFrame() {
	now := time.Now()
	if p.Enabled {
		elapsed := now.Sub(p.lastFrameTime)
		if elapsed < p.FrameTime {
			time.Sleep(p.FrameTime - elapsed)
		}
		now = time.Now()
	}
	p.lastFrameTime = now

	p.frameCount++
	if now.Sub(p.fpsUpdateTime) >= time.Second {
		p.FPS = float64(p.frameCount) / now.Sub(p.fpsUpdateTime).Seconds()
		p.frameCount = 0
		p.fpsUpdateTime = now
	}
}
