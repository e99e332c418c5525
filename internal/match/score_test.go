package match

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		name      string
		reference string
		candidate string
		want      int
	}{
		{"exact match", "circles", "Circles", ScoreExact},
		{"official music video in brackets", "blinding lights", "Blinding Lights (Official Music Video)", ScoreOfficialQualifier},
		{"official video in brackets", "song", "Song (Official Video)", ScoreOfficialQualifier},
		{"reject keyword wins over containment", "stay", "Stay - Behind The Scenes", 0},
		{"unrelated continuation fails boundary", "hello", "Hello World", 0},
		{"live cut fails bracket boundary", "song", "Song (Live)", 0},
		{"lyric video rejected", "song", "Song (Official Video) Lyrics", 0},
		{"cover rejected", "song", "Song Cover", 0},
		{"bare name after suffix strip", "song", "Song - 4K", ScoreBareSongName},
		{"bare name after qualifier strip", "song", "Song: HD", ScoreBareSongName},
		{"spaced prefix with short residue", "song", "Song - Remix", ScoreSpacedPrefix},
		{"word bounded interior match", "song", "The Song Video", ScoreWordMatch},
		{"plain containment", "song", "Thesong Video", ScoreSubstring},
		{"no containment", "song", "Completely Different", 0},
		{"empty reference", "", "Anything", 0},
		{"fan content rejected", "dynamite", "Dynamite MV Fan Edit", 0},
		{"dance practice rejected", "dynamite", "Dynamite (Dance Practice)", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.reference, tc.candidate); got != tc.want {
				t.Fatalf("Score(%q, %q) = %d, want %d", tc.reference, tc.candidate, got, tc.want)
			}
		})
	}
}

func TestScorePrefersOfficialOverLive(t *testing.T) {
	// The end-to-end disambiguation case: a live cut and the official video
	// both contain the reference, only the official upload survives.
	live := Score("song", "Song (Live)")
	official := Score("song", "Song (Official Video)")
	if live != 0 {
		t.Fatalf("expected live cut rejected, got %d", live)
	}
	if official != ScoreOfficialQualifier {
		t.Fatalf("expected official video at %d, got %d", ScoreOfficialQualifier, official)
	}
}

func TestStripDecorations(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"song (official music video)", "song"},
		{"song - official video", "song"},
		{"song hd", "song"},
		{"song [4k] hd", "song"},
		{"song", "song"},
		{"song remix", "song remix"},
	}
	for _, tc := range cases {
		if got := stripDecorations(tc.input); got != tc.want {
			t.Fatalf("stripDecorations(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
