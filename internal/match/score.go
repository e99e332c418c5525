package match

import (
	"strings"
	"unicode/utf8"
)

// Score tiers, best match first.
const (
	ScoreExact             = 1000
	ScoreOfficialQualifier = 900
	ScoreBareSongName      = 800
	ScoreSpacedPrefix      = 700
	ScorePrefix            = 600
	ScoreWordMatch         = 500
	ScoreSubstring         = 400
)

// separatorCutset is the punctuation that commonly sets a title off from
// trailing decorations ("Song - Official Video", "Song: HD").
const separatorCutset = "-–—:|•~*.,'\" "

// qualifiers are trailing decorations a music-video upload legitimately
// carries. Ordered longest first so suffix stripping removes whole phrases.
var qualifiers = []string{
	"official music video",
	"official video",
	"official mv",
	"music video",
	"video",
	"uhd",
	"4k",
	"mv",
	"hd",
}

// officialPhrases are the qualifier subset that positively identifies an
// official music-video upload rather than merely tolerable trailing noise.
var officialPhrases = []string{
	"official music video",
	"official video",
	"official mv",
	"music video",
	"mv",
}

// rejectKeywords mark uploads that share the song title but are not the music
// video: extras, fan content, lyric videos, and the like.
var rejectKeywords = []string{
	"behind the scenes",
	"bts",
	"interview",
	"making of",
	"teaser",
	"trailer",
	"snippet",
	"shorts",
	"reaction",
	"fan",
	"cover",
	"dance",
	"lyrics",
}

// Score rates how plausibly candidateTitle is the counterpart rendition of the
// reference song title. reference must already be normalized (see Normalize).
// Zero is a hard reject; higher is better. Search results are dominated by
// noise sharing the song title, so a candidate must both contain the reference
// with a clean boundary and avoid reject keywords before any tier applies.
func Score(reference, candidateTitle string) int {
	if reference == "" {
		return 0
	}
	candidate := Normalize(candidateTitle)
	if !strings.Contains(candidate, reference) {
		return 0
	}
	if !boundaryOK(candidate, reference) {
		return 0
	}
	for _, keyword := range rejectKeywords {
		if strings.Contains(candidate, keyword) {
			return 0
		}
	}

	switch {
	case candidate == reference:
		return ScoreExact
	case containsOfficialPhrase(candidate):
		return ScoreOfficialQualifier
	case stripDecorations(candidate) == reference:
		return ScoreBareSongName
	case strings.HasPrefix(candidate, reference+" "):
		return ScoreSpacedPrefix
	case strings.HasPrefix(candidate, reference):
		return ScorePrefix
	case strings.Contains(candidate, " "+reference+" "):
		return ScoreWordMatch
	default:
		return ScoreSubstring
	}
}

// boundaryOK validates that the text after the reference substring is a
// legitimate decoration rather than the tail of a longer, unrelated title.
func boundaryOK(candidate, reference string) bool {
	idx := strings.Index(candidate, reference)
	raw := candidate[idx+len(reference):]
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}

	// A remainder that is exactly one bracket group is decisive: the interior
	// must be a recognized qualifier.
	if interior, ok := bracketGroup(trimmed); ok {
		return isQualifier(strings.Trim(interior, separatorCutset))
	}

	rest := strings.Trim(raw, separatorCutset)
	if rest == "" {
		return true
	}
	if hasQualifierPrefix(rest) {
		return true
	}
	// Short residue is tolerated only when punctuation set it off from the
	// title; a plain continuing word ("Hello World") is a different song.
	return startsWithSeparator(raw) && utf8.RuneCountInString(rest) <= 8
}

func startsWithSeparator(s string) bool {
	for _, r := range s {
		if r == ' ' || r == '\t' {
			continue
		}
		return strings.ContainsRune(separatorCutset, r)
	}
	return false
}

func bracketGroup(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	var closer byte
	switch s[0] {
	case '(':
		closer = ')'
	case '[':
		closer = ']'
	default:
		return "", false
	}
	if s[len(s)-1] != closer {
		return "", false
	}
	interior := s[1 : len(s)-1]
	if strings.ContainsAny(interior, "()[]") {
		return "", false
	}
	return interior, true
}

func isQualifier(s string) bool {
	for _, q := range qualifiers {
		if s == q {
			return true
		}
	}
	return false
}

func hasQualifierPrefix(s string) bool {
	for _, q := range qualifiers {
		if s == q || strings.HasPrefix(s, q+" ") {
			return true
		}
	}
	return false
}

func containsOfficialPhrase(candidate string) bool {
	padded := " " + strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '[', ']':
			return ' '
		}
		return r
	}, candidate) + " "
	for _, phrase := range officialPhrases {
		if strings.Contains(padded, " "+phrase+" ") {
			return true
		}
	}
	return false
}

// stripDecorations removes trailing bracket groups and qualifier suffixes
// until the bare song name remains.
func stripDecorations(candidate string) string {
	t := candidate
	for {
		t = strings.Trim(t, separatorCutset)
		before := t

		if strings.HasSuffix(t, ")") || strings.HasSuffix(t, "]") {
			if idx := strings.LastIndexAny(t, "(["); idx >= 0 {
				t = t[:idx]
			}
		} else {
			for _, q := range qualifiers {
				if t == q {
					t = ""
					break
				}
				if strings.HasSuffix(t, " "+q) {
					t = t[:len(t)-len(q)-1]
					break
				}
			}
		}

		if t == before {
			break
		}
	}
	return strings.Trim(t, separatorCutset)
}
