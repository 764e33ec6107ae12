package subtitles_test

import (
	"strings"
	"testing"

	"reelpress/internal/captions"
	"reelpress/internal/subtitles"
)

func TestBuildASSHeaderStyles(t *testing.T) {
	doc := subtitles.BuildASS([]captions.Cue{{Text: "hi", Start: 0, End: 1}}, nil)
	for _, want := range []string{
		"[Script Info]",
		"Style: Default,Arial,32,&H00FFFFFF",
		"Style: Highlight,Arial,32,&H0000FFFF",
		"[Events]",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("missing %q in:\n%s", want, doc)
		}
	}
}

func TestBuildASSLineEvents(t *testing.T) {
	cues := []captions.Cue{
		{Text: "first line", Start: 0, End: 3},
		{Text: "second line", Start: 3, End: 6.5},
	}
	doc := subtitles.BuildASS(cues, nil)

	if !strings.Contains(doc, "Dialogue: 0,0:00:00.00,0:00:03.00,Default,,0,0,0,,first line") {
		t.Fatalf("missing first line event:\n%s", doc)
	}
	if !strings.Contains(doc, "Dialogue: 0,0:00:03.00,0:00:06.50,Default,,0,0,0,,second line") {
		t.Fatalf("missing second line event:\n%s", doc)
	}
	if strings.Contains(doc, "Dialogue: 1,") {
		t.Fatal("no highlight events expected without word timings")
	}
}

func TestBuildASSHighlightInclusionRules(t *testing.T) {
	cues := []captions.Cue{{Text: "Hello brave world", Start: 0, End: 3}}
	words := []captions.WordTiming{
		{Word: "hello", Start: 0.2, End: 0.6},  // matches case-insensitively
		{Word: "world", Start: 5, End: 5.5},    // outside cue window
		{Word: "missing", Start: 1, End: 1.5},  // no token match
		{Word: "brave", Start: 1.6, End: 2},    // matches
	}
	doc := subtitles.BuildASS(cues, words)

	highlights := 0
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, "Dialogue: 1,") {
			highlights++
		}
	}
	if highlights != 2 {
		t.Fatalf("expected 2 highlight events, got %d in:\n%s", highlights, doc)
	}
	if !strings.Contains(doc, "Dialogue: 1,0:00:00.20,0:00:00.60,Highlight") {
		t.Fatalf("missing hello highlight:\n%s", doc)
	}
}

func TestBuildASSHighlightOffsetAndAnimation(t *testing.T) {
	// Three tokens: index 0 offset (0-1.5)*40 = -60, index 2 offset (2-1.5)*40 = +20.
	cues := []captions.Cue{{Text: "one two three", Start: 0, End: 2}}
	words := []captions.WordTiming{
		{Word: "one", Start: 0, End: 0.5},
		{Word: "three", Start: 1.5, End: 2},
	}
	doc := subtitles.BuildASS(cues, words)

	if !strings.Contains(doc, `{\pos(960-60,540)\c&H0000FFFF&\t(\c&H00FFFFFF&)}one`) {
		t.Fatalf("missing left-offset highlight:\n%s", doc)
	}
	if !strings.Contains(doc, `{\pos(960+20,540)\c&H0000FFFF&\t(\c&H00FFFFFF&)}three`) {
		t.Fatalf("missing right-offset highlight:\n%s", doc)
	}
}

func TestBuildASSSanitizesOverrideBraces(t *testing.T) {
	cues := []captions.Cue{{Text: `bad {\b1} text`, Start: 0, End: 1}}
	doc := subtitles.BuildASS(cues, nil)
	if strings.Contains(doc, `{\b1}`) {
		t.Fatalf("override braces survived sanitization:\n%s", doc)
	}
	if !strings.Contains(doc, `(\\b1)`) {
		t.Fatalf("expected neutralized braces in:\n%s", doc)
	}
}
