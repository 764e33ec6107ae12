package captions

import "strings"

// DefaultCharBudget is the default maximum joined character length of a
// packed caption line.
const DefaultCharBudget = 47

// PackWords converts word-level timestamps into line-level cues with a greedy
// character-budget packer. A line's start is its first word's start and its
// end tracks the last appended word's end. A single word longer than the
// budget is still emitted alone.
func PackWords(words []WordTiming, charBudget int) []Cue {
	if charBudget <= 0 {
		charBudget = DefaultCharBudget
	}

	var cues []Cue
	var line []string
	var lineStart, lineEnd float64
	lineLen := 0

	flush := func() {
		if len(line) == 0 {
			return
		}
		cues = append(cues, Cue{
			Text:  strings.Join(line, " "),
			Start: lineStart,
			End:   lineEnd,
		})
		line = line[:0]
		lineLen = 0
	}

	for _, timing := range words {
		word := strings.TrimSpace(timing.Word)
		if word == "" {
			continue
		}
		if len(line) == 0 {
			line = append(line, word)
			lineLen = len(word)
			lineStart = timing.Start
			lineEnd = timing.End
			continue
		}
		if lineLen+1+len(word) <= charBudget {
			line = append(line, word)
			lineLen += 1 + len(word)
			lineEnd = timing.End
			continue
		}
		flush()
		line = append(line, word)
		lineLen = len(word)
		lineStart = timing.Start
		lineEnd = timing.End
	}
	flush()

	return cues
}
