package audio

// FadeIn ramps from 0 to the channel's current volume over ticks/60
// seconds (sound_channel.rs fade_in, which also zeroes the starting
// volume before the ramp begins).
func (e *Engine) FadeIn(n int, ticks int) {
	ch := e.channel(n)
	if ch == nil {
		return
	}
	target := float64(ch.Volume)
	ch.Volume = 0
	e.startFade(ch, 0, target, ticks)
}

// FadeOut ramps the channel's current volume down to 0.
func (e *Engine) FadeOut(n int, ticks int) {
	ch := e.channel(n)
	if ch == nil {
		return
	}
	e.startFade(ch, float64(ch.Volume), 0, ticks)
}

// FadeTo ramps the channel's current volume to an arbitrary target.
func (e *Engine) FadeTo(n int, ticks int, target uint8) {
	ch := e.channel(n)
	if ch == nil {
		return
	}
	e.startFade(ch, float64(ch.Volume), float64(target), ticks)
}

func (e *Engine) startFade(ch *Channel, start, target float64, ticks int) {
	ch.Fade = FadeEnvelope{
		Active:       true,
		StartVolume:  start,
		TargetVolume: target,
		DurationSecs: float64(ticks) / 60.0,
		ElapsedSecs:  0,
	}
}

// updateFade advances a channel's fade envelope by dt seconds (spec.md
// §4.7 "Fade envelope"): volume interpolates linearly and the envelope
// clears once elapsed reaches duration.
func (e *Engine) updateFade(ch *Channel, dt float64) {
	f := &ch.Fade
	if !f.Active {
		return
	}
	f.ElapsedSecs += dt

	if f.DurationSecs <= 0 || f.ElapsedSecs >= f.DurationSecs {
		ch.Volume = clampVolume(f.TargetVolume)
		f.Active = false
		return
	}

	t := f.ElapsedSecs / f.DurationSecs
	v := f.StartVolume + (f.TargetVolume-f.StartVolume)*t
	ch.Volume = clampVolume(v)
}

func clampVolume(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
