package captions_test

import (
	"math"
	"strings"
	"testing"

	"reelpress/internal/captions"
)

const sampleScript = "1\n00:00:00,000 --> 00:00:03,000\nFirst line\n\n2\n00:00:03,000 --> 00:00:06,000\nSecond line\n"

func TestParseScriptTwoCues(t *testing.T) {
	cues, err := captions.ParseScript(sampleScript)
	if err != nil {
		t.Fatalf("parse script: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Text != "First line" || cues[0].Start != 0 || cues[0].End != 3 {
		t.Fatalf("unexpected first cue %+v", cues[0])
	}
	if cues[1].Text != "Second line" || cues[1].Start != 3 || cues[1].End != 6 {
		t.Fatalf("unexpected second cue %+v", cues[1])
	}
}

func TestParseScriptJoinsMultiLineText(t *testing.T) {
	script := "1\n00:00:01,500 --> 00:00:04,250\nline one\nline two\n"
	cues, err := captions.ParseScript(script)
	if err != nil {
		t.Fatalf("parse script: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "line one line two" {
		t.Fatalf("expected joined text, got %q", cues[0].Text)
	}
}

func TestParseScriptSkipsMalformedBlocks(t *testing.T) {
	script := "garbage block\n\n1\n00:00:00,000 --> 00:00:02,000\nok\n\nbad --> timing\nnope\n"
	cues, err := captions.ParseScript(script)
	if err != nil {
		t.Fatalf("parse script: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "ok" {
		t.Fatalf("expected the single valid cue, got %+v", cues)
	}
}

func TestParseScriptErrorsWhenNoCues(t *testing.T) {
	if _, err := captions.ParseScript("not a script at all"); err == nil {
		t.Fatal("expected error for script without cues")
	}
	if _, err := captions.ParseScript("   "); err == nil {
		t.Fatal("expected error for empty script")
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 0.5, 1.234, 59.999, 61.01, 3599.5, 3661.333, 7325.875} {
		formatted := captions.FormatTimestamp(seconds)
		parsed, err := captions.ParseTimestamp(formatted)
		if err != nil {
			t.Fatalf("parse %q: %v", formatted, err)
		}
		if diff := math.Abs(parsed - seconds); diff > 0.001 {
			t.Fatalf("round trip of %v drifted by %v (formatted %q)", seconds, diff, formatted)
		}
	}
}

func TestParseTimestampShortMillisecondFields(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
	}{
		{"00:00:00,5", 0.5},
		{"00:00:00,50", 0.5},
		{"00:00:00,500", 0.5},
		{"00:00:01.25", 1.25},
		{"00:01:02,7", 62.7},
	} {
		got, err := captions.ParseTimestamp(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > 0.0001 {
			t.Fatalf("parse %q: got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWriteSRTRoundTrips(t *testing.T) {
	cues := []captions.Cue{
		{Text: "hello there", Start: 0.25, End: 2.75},
		{Text: "general", Start: 2.75, End: 5},
	}

	doc := captions.WriteSRT(cues)
	if !strings.HasPrefix(doc, "1\n00:00:00,250 --> 00:00:02,750\nhello there\n") {
		t.Fatalf("unexpected srt output:\n%s", doc)
	}

	parsed, err := captions.ParseScript(doc)
	if err != nil {
		t.Fatalf("reparse srt: %v", err)
	}
	if len(parsed) != len(cues) {
		t.Fatalf("expected %d cues back, got %d", len(cues), len(parsed))
	}
	for i := range cues {
		if parsed[i].Text != cues[i].Text {
			t.Fatalf("cue %d text mismatch: %q vs %q", i, parsed[i].Text, cues[i].Text)
		}
		if math.Abs(parsed[i].Start-cues[i].Start) > 0.001 || math.Abs(parsed[i].End-cues[i].End) > 0.001 {
			t.Fatalf("cue %d timing drifted: %+v vs %+v", i, parsed[i], cues[i])
		}
	}
}
