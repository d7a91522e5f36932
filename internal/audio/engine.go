package audio

// SetPlayList replaces channel n's playlist (spec.md §4.7 "Playlist
// semantics"): entries with loopCount<=0 are dropped with a warning; an
// empty list clears the channel entirely. Grounded on sound_channel.rs
// set_playlist, which builds playlist_segments from a list of proplists
// and queues the first segment.
func (e *Engine) SetPlayList(n int, entries []PlaylistEntry) {
	ch := e.channel(n)
	if ch == nil {
		return
	}

	kept := make([]PlaylistEntry, 0, len(entries))
	for _, pe := range entries {
		if pe.LoopCount <= 0 {
			e.warnf("channel %d: dropping playlist entry for member %+v, loopCount %d <= 0", n, pe.Member, pe.LoopCount)
			continue
		}
		pe.LoopsRemaining = pe.LoopCount
		kept = append(kept, pe)
	}

	ch.Playlist = kept
	ch.CurrentPlaylistIndex = 0
	ch.Queued = nil
	if len(kept) > 0 {
		m := kept[0].Member
		ch.Queued = &m
	}
}

// Play starts channel n. With no explicit member it plays the current
// playlist from index 0; PlayMember below is the direct single-member form
// that clears the playlist (spec.md §4.7).
func (e *Engine) Play(n int) {
	ch := e.channel(n)
	if ch == nil {
		return
	}
	if ch.Status == Playing {
		return
	}
	if ch.Status == Paused {
		ch.Status = Playing
		return
	}
	if len(ch.Playlist) == 0 {
		return
	}
	ch.CurrentPlaylistIndex = 0
	e.startSegment(ch, ch.Playlist[0].Member)
}

// PlayMember plays member directly, clearing any existing playlist
// (sound_channel.rs play_member_direct). loopCount==0 means loop forever.
func (e *Engine) PlayMember(n int, member MemberHandle, loopCount int) {
	ch := e.channel(n)
	if ch == nil {
		return
	}
	ch.Playlist = nil
	ch.CurrentPlaylistIndex = 0
	ch.LoopCount = loopCount
	ch.LoopsRemaining = loopCount
	e.startSegment(ch, member)
}

func (e *Engine) startSegment(ch *Channel, member MemberHandle) {
	if ch.IsDecoding {
		e.warnf("channel %d: decode already in progress, dropping play request", ch.Number)
		return
	}
	ch.Member = member
	ch.Status = Loading
	ch.IsDecoding = true
	ch.elapsedSecs = 0
}

// OnDecoded is the host's "decode finished" callback: transitions Loading
// to Playing. The host calls this once codec decode (internal/audio/codec)
// completes, possibly after a resample.
func (e *Engine) OnDecoded(n int) {
	ch := e.channel(n)
	if ch == nil || ch.Status != Loading {
		return
	}
	ch.IsDecoding = false
	ch.Status = Playing
}

// OnEnded is the host's "playback finished" callback (spec.md §4.7 state
// diagram: Playing --ended--> next in playlist?). Per the concurrency
// guard in spec.md §4.7, this only transitions state and queues the next
// segment; it must not itself perform blocking decode work.
func (e *Engine) OnEnded(n int) {
	ch := e.channel(n)
	if ch == nil {
		return
	}
	e.playNext(ch)
}

// playNext advances the playlist per sound_channel.rs start_next_segment:
// if the finishing segment loops forever or has loops remaining beyond
// one, replay it (decrementing unless infinite); otherwise drop it from
// the playlist and advance to the next entry, stopping if none remain.
func (e *Engine) playNext(ch *Channel) {
	if len(ch.Playlist) == 0 {
		ch.Status = Stopped
		return
	}

	idx := ch.CurrentPlaylistIndex
	if idx < 0 || idx >= len(ch.Playlist) {
		ch.Status = Stopped
		return
	}
	cur := &ch.Playlist[idx]

	if cur.LoopCount == 0 || cur.LoopsRemaining > 1 {
		if cur.LoopCount != 0 {
			cur.LoopsRemaining--
		}
		e.startSegment(ch, cur.Member)
		return
	}

	ch.Playlist = append(ch.Playlist[:idx], ch.Playlist[idx+1:]...)
	if idx >= len(ch.Playlist) {
		ch.Status = Stopped
		ch.CurrentPlaylistIndex = 0
		return
	}
	ch.CurrentPlaylistIndex = idx
	e.startSegment(ch, ch.Playlist[idx].Member)
}

// Stop halts channel n immediately (sound_channel.rs stop).
func (e *Engine) Stop(n int) {
	ch := e.channel(n)
	if ch == nil {
		return
	}
	ch.Status = Stopped
	ch.IsDecoding = false
	ch.Fade = FadeEnvelope{}
}

// Pause suspends a Playing channel; resuming restores Playing (spec.md
// §4.7 state diagram).
func (e *Engine) Pause(n int) {
	ch := e.channel(n)
	if ch == nil || ch.Status != Playing {
		return
	}
	ch.Status = Paused
}

// Resume restores playback on a Paused channel.
func (e *Engine) Resume(n int) {
	ch := e.channel(n)
	if ch == nil || ch.Status != Paused {
		return
	}
	ch.Status = Playing
}

// Update advances per-tick channel state (elapsed time, fade envelopes)
// across all channels, grounded on sound_channel.rs's update loop.
func (e *Engine) Update(dt float64) {
	for i := range e.Channels {
		ch := &e.Channels[i]
		if ch.Status == Playing {
			ch.elapsedSecs += dt
		}
		e.updateFade(ch, dt)
	}
}
