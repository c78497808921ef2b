package playback

import "testing"

func TestMergeOverlayWinsWhenPresent(t *testing.T) {
	base := State{Mode: "Focus", TrackName: "Base Track"}
	overlay := State{Mode: "Sleep"}

	merged := Merge(base, overlay)
	if merged.Mode != "Sleep" {
		t.Fatalf("Mode = %q, want Sleep", merged.Mode)
	}
	if merged.TrackName != "Base Track" {
		t.Fatalf("TrackName = %q, want Base Track", merged.TrackName)
	}
}

func TestMergeIsPlayingAlwaysFromOverlay(t *testing.T) {
	merged := Merge(State{IsPlaying: true}, State{IsPlaying: false})
	if merged.IsPlaying {
		t.Fatal("overlay is_playing=false must override base true")
	}

	merged = Merge(State{IsPlaying: false}, State{IsPlaying: true})
	if !merged.IsPlaying {
		t.Fatal("overlay is_playing=true must win")
	}
}

func TestMergeFlagsAreORed(t *testing.T) {
	merged := Merge(State{ADHDMode: true}, State{InfinitePlay: true})
	if !merged.ADHDMode {
		t.Fatal("ADHDMode set in base must survive the overlay")
	}
	if !merged.InfinitePlay {
		t.Fatal("InfinitePlay set in overlay must be kept")
	}
}

func TestMergeNeuralEffectLevelPointer(t *testing.T) {
	lvl := 0.42
	merged := Merge(State{NeuralEffectLevel: &lvl}, State{})
	if merged.NeuralEffectLevel == nil || *merged.NeuralEffectLevel != 0.42 {
		t.Fatalf("level lost in merge: %v", merged.NeuralEffectLevel)
	}

	overlayLvl := 0.9
	merged = Merge(State{NeuralEffectLevel: &lvl}, State{NeuralEffectLevel: &overlayLvl})
	if *merged.NeuralEffectLevel != 0.9 {
		t.Fatalf("overlay level must win, got %v", *merged.NeuralEffectLevel)
	}
}

func TestMergeBothEmpty(t *testing.T) {
	merged := Merge(State{}, State{})
	if merged.Mode != "" || merged.TrackName != "" || merged.IsPlaying {
		t.Fatalf("merging two empty states must stay empty: %+v", merged)
	}
}

func TestReduceAppliesLeftToRight(t *testing.T) {
	base := State{Mode: "Focus", Genre: "Piano"}
	first := State{Mode: "Sleep", IsPlaying: true}
	second := State{TrackName: "Blooming", IsPlaying: false}

	merged := Reduce(base, first, second)
	if merged.Mode != "Sleep" {
		t.Fatalf("Mode = %q, want Sleep", merged.Mode)
	}
	if merged.Genre != "Piano" {
		t.Fatalf("Genre = %q, want Piano", merged.Genre)
	}
	if merged.TrackName != "Blooming" {
		t.Fatalf("TrackName = %q, want Blooming", merged.TrackName)
	}
	if merged.IsPlaying {
		t.Fatal("last overlay reported paused; IsPlaying must be false")
	}
}

func TestPresenceString(t *testing.T) {
	s := State{Mode: "Deep Work", SessionState: "IN FOCUS", SessionTime: "0:12:30"}
	if got := s.PresenceString(); got != "Deep Work (IN FOCUS) [0:12:30]" {
		t.Fatalf("PresenceString = %q", got)
	}
	if got := (State{}).PresenceString(); got != "Brain.fm" {
		t.Fatalf("empty PresenceString = %q", got)
	}
}

func TestDetailsString(t *testing.T) {
	s := State{TrackName: "Nothing Remains", Genre: "Piano", NeuralEffect: "High Neural Effect"}
	want := "Nothing Remains • Piano • High Neural Effect"
	if got := s.DetailsString(); got != want {
		t.Fatalf("DetailsString = %q, want %q", got, want)
	}
	if got := (State{}).DetailsString(); got != "" {
		t.Fatalf("empty DetailsString = %q, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Hi", 10); got != "Hi" {
		t.Fatalf("Truncate short = %q", got)
	}
	if got := Truncate("Hello, World!", 10); got != "Hello, ..." {
		t.Fatalf("Truncate long = %q", got)
	}
	if got := Truncate("日本語テスト", 5); got != "日本..." {
		t.Fatalf("Truncate unicode = %q", got)
	}
}

func TestGenreIconURL(t *testing.T) {
	if got := GenreIconURL("Piano"); got != "https://cdn.brain.fm/icons/piano.png" {
		t.Fatalf("Piano icon = %q", got)
	}
	if GenreIconURL("PIANO") != GenreIconURL("piano") {
		t.Fatal("icon lookup must be case-insensitive")
	}
	if got := GenreIconURL("UnknownGenre"); got != "https://cdn.brain.fm/icons/electronic.png" {
		t.Fatalf("unknown genre fallback = %q", got)
	}
}
