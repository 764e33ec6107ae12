package captions

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Text-fallback synthesis parameters. Cue pacing is fixed; only the packer's
// character budget is configurable.
const (
	WordsPerTextCue = 6
	TextCueSeconds  = 3
	maxCorpusChars  = 500

	leadInPhrase = "The video shows"
)

var (
	urlPattern         = regexp.MustCompile(`https?://\S+`)
	boilerplatePattern = regexp.MustCompile(`(?i)realistic and casual.*`)
	leadInPattern      = regexp.MustCompile(`(?i)first person view.*?shot of`)
	whitespacePattern  = regexp.MustCompile(`\s+`)

	denyTermPatterns = compileDenyTerms([]string{
		"POV", "GoPro", "MacBook", "LinkedIn", "TikTok", "iPhone camera",
	})
)

func compileDenyTerms(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return patterns
}

// SanitizeMetadataText cleans a clip's free-text metadata for caption use:
// URLs and marketing/technical terms are stripped, boilerplate phrasing is
// removed or collapsed to the canonical lead-in, whitespace is normalized,
// and the result is truncated.
func SanitizeMetadataText(text string) string {
	processed := urlPattern.ReplaceAllString(text, "")
	for _, pattern := range denyTermPatterns {
		processed = pattern.ReplaceAllString(processed, "")
	}
	processed = boilerplatePattern.ReplaceAllString(processed, "")
	processed = leadInPattern.ReplaceAllString(processed, leadInPhrase)
	processed = strings.TrimSpace(processed)
	processed = whitespacePattern.ReplaceAllString(processed, " ")
	return truncateAtRune(processed, maxCorpusChars)
}

// truncateAtRune caps text at limit bytes without splitting a multi-byte
// rune; the cut backs off to the preceding rune boundary.
func truncateAtRune(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// BuildCorpus sanitizes each clip's metadata text and joins the non-empty
// results with blank lines.
func BuildCorpus(texts []string) string {
	var parts []string
	for _, text := range texts {
		if text == "" {
			continue
		}
		if cleaned := SanitizeMetadataText(text); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return strings.Join(parts, "\n\n")
}

// CuesFromText splits a corpus into fixed-size word groups, pacing each group
// over a fixed duration: group i spans [i*TextCueSeconds, (i+1)*TextCueSeconds].
func CuesFromText(text string) []Cue {
	words := strings.Fields(text)
	var cues []Cue
	for i := 0; i < len(words); i += WordsPerTextCue {
		end := i + WordsPerTextCue
		if end > len(words) {
			end = len(words)
		}
		group := i / WordsPerTextCue
		start := float64(group * TextCueSeconds)
		cues = append(cues, Cue{
			Text:  strings.Join(words[i:end], " "),
			Start: start,
			End:   start + TextCueSeconds,
		})
	}
	return cues
}
