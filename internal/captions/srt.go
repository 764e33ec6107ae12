package captions

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var timingPattern = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})[,.](\d{1,3})$`)

// ParseScript parses an SRT-format caption script into line-level cues.
// Multi-line entry text is joined into one line; malformed blocks are
// skipped. An error is returned only when the script yields no cues at all.
func ParseScript(script string) ([]Cue, error) {
	normalized := strings.ReplaceAll(script, "\r\n", "\n")
	trimmed := strings.TrimSpace(normalized)
	if trimmed == "" {
		return nil, fmt.Errorf("parse script: empty input")
	}

	var cues []Cue
	for _, block := range strings.Split(trimmed, "\n\n") {
		cue, ok := parseBlock(block)
		if !ok {
			continue
		}
		cues = append(cues, cue)
	}
	if len(cues) == 0 {
		return nil, fmt.Errorf("parse script: no cues found")
	}
	return cues, nil
}

func parseBlock(block string) (Cue, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	idx := 0
	if idx < len(lines) && isNumeric(lines[idx]) {
		idx++
	}
	if idx >= len(lines) || !strings.Contains(lines[idx], "-->") {
		return Cue{}, false
	}

	parts := strings.SplitN(lines[idx], "-->", 2)
	start, err := ParseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return Cue{}, false
	}
	end, err := ParseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil || end < start {
		return Cue{}, false
	}
	idx++

	var text []string
	for _, line := range lines[idx:] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			text = append(text, trimmed)
		}
	}
	if len(text) == 0 {
		return Cue{}, false
	}
	return Cue{Text: strings.Join(text, " "), Start: start, End: end}, true
}

// ParseTimestamp converts an HH:MM:SS,mmm timestamp into seconds.
func ParseTimestamp(value string) (float64, error) {
	match := timingPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0, fmt.Errorf("parse timestamp %q", value)
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	// Millisecond fields are fractional: ",5" means 500ms, not 5ms.
	millis, _ := strconv.Atoi(match[4] + strings.Repeat("0", 3-len(match[4])))
	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000, nil
}

// FormatTimestamp renders seconds as an HH:MM:SS,mmm timestamp. Values round
// to the nearest millisecond so format/parse round trips stay within 1 ms.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(math.Round(seconds * 1000))
	hours := total / 3_600_000
	total -= hours * 3_600_000
	minutes := total / 60_000
	total -= minutes * 60_000
	secs := total / 1000
	millis := total - secs*1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// WriteSRT renders cues as a plain SRT document.
func WriteSRT(cues []Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, FormatTimestamp(cue.Start), FormatTimestamp(cue.End), cue.Text)
	}
	return b.String()
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
