package subtitles

import (
	"fmt"
	"math"
	"strings"

	"reelpress/internal/captions"
)

// Style names referenced by the generated dialogue events.
const (
	styleDefault   = "Default"
	styleHighlight = "Highlight"
)

// Playfield dimensions and highlight layout constants. Highlights are
// positioned around the horizontal center with a fixed per-word offset step.
const (
	playCenterX    = 960
	playCenterY    = 540
	wordOffsetStep = 40
)

// Color transition applied to highlighted words: accent (yellow) fading to
// the base white. Colors are ASS &HBBGGRR& values.
const (
	accentColor = `&H0000FFFF&`
	baseColor   = `&H00FFFFFF&`
)

var assHeader = strings.TrimSpace(`
[Script Info]
Title: Scrolling Captions
ScriptType: v4.00+

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,32,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,1,0,0,0,100,100,0,0,1,2,3,2,30,30,50,1
Style: Highlight,Arial,32,&H0000FFFF,&H000000FF,&H00000000,&H80000000,1,0,0,0,100,100,0,0,1,2,3,2,30,30,50,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`) + "\n"

// BuildASS renders cues (and optional word timings) into an animated ASS
// subtitle definition with two styles: full caption lines on layer 0 and
// per-word highlight events on layer 1.
//
// A word timing produces a highlight only when its start falls inside the
// owning cue's time window and its text matches one of the cue's tokens
// case-insensitively; ties resolve to the first matching token.
func BuildASS(cues []captions.Cue, words []captions.WordTiming) string {
	var b strings.Builder
	b.WriteString(assHeader)

	for _, cue := range cues {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			assTime(cue.Start), assTime(cue.End), styleDefault, sanitizeText(cue.Text))

		if len(words) == 0 {
			continue
		}
		cueWords := strings.Fields(cue.Text)
		for _, timing := range words {
			word := strings.TrimSpace(timing.Word)
			if word == "" {
				continue
			}
			if timing.Start < cue.Start || timing.Start > cue.End {
				continue
			}
			index, ok := matchToken(cueWords, word)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "Dialogue: 1,%s,%s,%s,,0,0,0,,%s\n",
				assTime(timing.Start), assTime(timing.End), styleHighlight,
				highlightText(word, index, len(cueWords)))
		}
	}

	return b.String()
}

// matchToken returns the index of the first case-insensitive match of word
// within tokens.
func matchToken(tokens []string, word string) (int, bool) {
	for i, token := range tokens {
		if strings.EqualFold(token, word) {
			return i, true
		}
	}
	return 0, false
}

// highlightText positions a word horizontally relative to the cue center and
// applies the accent-to-base color transition.
func highlightText(word string, index, total int) string {
	offset := int((float64(index) - float64(total)/2) * wordOffsetStep)
	return fmt.Sprintf(`{\pos(%d%+d,%d)\c%s\t(\c%s)}%s`,
		playCenterX, offset, playCenterY, accentColor, baseColor, sanitizeText(word))
}

// assTime renders seconds as the H:MM:SS.cc timestamp ASS expects.
func assTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalCS := int(math.Round(seconds * 100))
	hours := totalCS / 360_000
	totalCS -= hours * 360_000
	minutes := totalCS / 6000
	totalCS -= minutes * 6000
	secs := totalCS / 100
	centis := totalCS - secs*100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

// sanitizeText keeps caption text from being interpreted as ASS override tags.
func sanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}
