package captions_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"reelpress/internal/captions"
)

func TestSanitizeMetadataTextStripsURLsAndTerms(t *testing.T) {
	in := "Check https://example.com/clip.mp4 my GoPro POV footage on TikTok now"
	out := captions.SanitizeMetadataText(in)
	for _, banned := range []string{"http", "GoPro", "POV", "TikTok"} {
		if strings.Contains(out, banned) {
			t.Fatalf("sanitized text still contains %q: %q", banned, out)
		}
	}
	if !strings.Contains(out, "footage") {
		t.Fatalf("expected remaining text preserved, got %q", out)
	}
}

func TestSanitizeMetadataTextReplacesLeadIn(t *testing.T) {
	in := "First person view selfie shot of a man walking on a beach"
	out := captions.SanitizeMetadataText(in)
	if !strings.HasPrefix(out, "The video shows") {
		t.Fatalf("expected lead-in replacement, got %q", out)
	}
	if !strings.Contains(out, "a man walking on a beach") {
		t.Fatalf("expected subject preserved, got %q", out)
	}
}

func TestSanitizeMetadataTextDropsBoilerplateTail(t *testing.T) {
	in := "A calm morning scene. Realistic and casual footage, shot on a phone"
	out := captions.SanitizeMetadataText(in)
	if strings.Contains(strings.ToLower(out), "realistic and casual") {
		t.Fatalf("boilerplate tail survived: %q", out)
	}
	if !strings.Contains(out, "A calm morning scene.") {
		t.Fatalf("expected leading text preserved, got %q", out)
	}
}

func TestSanitizeMetadataTextTruncates(t *testing.T) {
	in := strings.Repeat("wordy ", 200)
	out := captions.SanitizeMetadataText(in)
	if len(out) > 500 {
		t.Fatalf("expected truncation to 500 chars, got %d", len(out))
	}
}

func TestSanitizeMetadataTextTruncatesOnRuneBoundary(t *testing.T) {
	in := strings.Repeat("日本語の説明 ", 60)
	out := captions.SanitizeMetadataText(in)
	if len(out) > 500 {
		t.Fatalf("expected truncation to 500 bytes, got %d", len(out))
	}
	if !utf8.ValidString(out) {
		t.Fatalf("truncation split a multi-byte rune: %q", out[len(out)-8:])
	}
}

func TestBuildCorpusSkipsEmptyEntries(t *testing.T) {
	corpus := captions.BuildCorpus([]string{"", "  https://only.url/x.mp4 ", "a scene"})
	if corpus != "a scene" {
		t.Fatalf("unexpected corpus %q", corpus)
	}
}

func TestCuesFromTextGroupsAndPaces(t *testing.T) {
	cues := captions.CuesFromText("a b c d e f g")
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Text != "a b c d e f" || cues[0].Start != 0 || cues[0].End != 3 {
		t.Fatalf("unexpected first cue %+v", cues[0])
	}
	if cues[1].Text != "g" || cues[1].Start != 3 || cues[1].End != 6 {
		t.Fatalf("unexpected second cue %+v", cues[1])
	}
}

func TestCuesFromTextEmptyInput(t *testing.T) {
	if cues := captions.CuesFromText("   "); len(cues) != 0 {
		t.Fatalf("expected no cues for blank text, got %+v", cues)
	}
}
