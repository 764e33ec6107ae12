package transcode

import (
	"strings"
	"testing"
)

func TestBuildEncodeSingleArgs(t *testing.T) {
	args := buildEncodeSingleArgs("in.mp4", "out.mp4", true)
	joined := strings.Join(args, " ")
	for _, want := range []string{"-map 0:v:0", "-map 0:a:0", "-c:v libx264", "-preset fast", "-c:a aac"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in %q", want, joined)
		}
	}
	if args[len(args)-1] != "out.mp4" {
		t.Fatalf("output must be last arg, got %v", args)
	}

	silent := strings.Join(buildEncodeSingleArgs("in.mp4", "out.mp4", false), " ")
	if !strings.Contains(silent, "-an") || strings.Contains(silent, "-c:a") {
		t.Fatalf("expected audio disabled, got %q", silent)
	}
}

func TestBuildConcatArgsWithAudio(t *testing.T) {
	args := buildConcatArgs([]string{"a.mp4", "b.mp4", "c.mp4"}, "out.mp4", true)
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "[0:v][0:a][1:v][1:a][2:v][2:a]concat=n=3:v=1:a=1[v][a]") {
		t.Fatalf("unexpected filter graph in %q", joined)
	}
	if !strings.Contains(joined, "-map [v]") || !strings.Contains(joined, "-map [a]") {
		t.Fatalf("missing stream maps in %q", joined)
	}
}

func TestBuildConcatArgsWithoutAudio(t *testing.T) {
	args := buildConcatArgs([]string{"a.mp4", "b.mp4"}, "out.mp4", false)
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "[0:v][1:v]concat=n=2:v=1:a=0[v]") {
		t.Fatalf("unexpected filter graph in %q", joined)
	}
	if strings.Contains(joined, "[a]") || strings.Contains(joined, "-c:a") {
		t.Fatalf("audio must be absent in %q", joined)
	}
}

func TestBuildExtractAudioArgs(t *testing.T) {
	joined := strings.Join(buildExtractAudioArgs("in.mp4", "out.wav"), " ")
	for _, want := range []string{"-vn", "-ac 1", "-ar 16000", "-f wav"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in %q", want, joined)
		}
	}
}

func TestBuildBurnASSArgs(t *testing.T) {
	joined := strings.Join(buildBurnASSArgs("in.mp4", "subs.ass", "out.mp4", true), " ")
	for _, want := range []string{
		"-vf subtitles=subs.ass",
		"-preset medium", "-crf 23", "-pix_fmt yuv420p",
		"-c:a aac", "-b:a 128k",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in %q", want, joined)
		}
	}
}

func TestBuildBurnSRTArgsForceStyle(t *testing.T) {
	joined := strings.Join(buildBurnSRTArgs("in.mp4", "subs.srt", "out.mp4", false, FallbackStyle), " ")
	if !strings.Contains(joined, "subtitles=subs.srt:force_style='"+FallbackStyle+"'") {
		t.Fatalf("missing force_style in %q", joined)
	}
	if !strings.Contains(joined, "-preset fast") || !strings.Contains(joined, "-an") {
		t.Fatalf("unexpected encode settings in %q", joined)
	}
}

func TestBuildCopyArgs(t *testing.T) {
	joined := strings.Join(buildCopyArgs("in.mp4", "out.mp4", true), " ")
	if !strings.Contains(joined, "-c:v copy") || !strings.Contains(joined, "-c:a copy") {
		t.Fatalf("expected stream copies in %q", joined)
	}
}

func TestEscapeFilterPath(t *testing.T) {
	if got := escapeFilterPath(`C:\tmp\subs.ass`); got != `C\:\\tmp\\subs.ass` {
		t.Fatalf("unexpected escape %q", got)
	}
}
