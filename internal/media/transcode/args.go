package transcode

import (
	"fmt"
	"strings"
)

// Argument builders are kept as pure functions so the command plans can be
// tested without invoking ffmpeg.

func buildEncodeSingleArgs(input, output string, hasAudio bool) []string {
	args := []string{"-y", "-i", input, "-map", "0:v:0"}
	if hasAudio {
		args = append(args, "-map", "0:a:0")
	}
	args = append(args, "-c:v", "libx264", "-preset", "fast")
	if hasAudio {
		args = append(args, "-c:a", "aac")
	} else {
		args = append(args, "-an")
	}
	return append(args, output)
}

func buildConcatArgs(inputs []string, output string, withAudio bool) []string {
	args := []string{"-y"}
	for _, input := range inputs {
		args = append(args, "-i", input)
	}

	var filter strings.Builder
	for i := range inputs {
		fmt.Fprintf(&filter, "[%d:v]", i)
		if withAudio {
			fmt.Fprintf(&filter, "[%d:a]", i)
		}
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=1:a=%d[v]", len(inputs), boolToInt(withAudio))
	if withAudio {
		filter.WriteString("[a]")
	}

	args = append(args, "-filter_complex", filter.String(), "-map", "[v]")
	if withAudio {
		args = append(args, "-map", "[a]")
	}
	args = append(args, "-c:v", "libx264", "-preset", "fast")
	if withAudio {
		args = append(args, "-c:a", "aac")
	}
	return append(args, output)
}

func buildExtractAudioArgs(input, output string) []string {
	return []string{"-y", "-i", input, "-vn", "-ac", "1", "-ar", "16000", "-f", "wav", output}
}

func buildBurnASSArgs(input, assPath, output string, hasAudio bool) []string {
	args := []string{
		"-y", "-i", input,
		"-vf", "subtitles=" + escapeFilterPath(assPath),
		"-c:v", "libx264", "-preset", "medium", "-crf", "23", "-pix_fmt", "yuv420p",
	}
	if hasAudio {
		args = append(args, "-c:a", "aac", "-b:a", "128k")
	} else {
		args = append(args, "-an")
	}
	return append(args, output)
}

func buildBurnSRTArgs(input, srtPath, output string, hasAudio bool, forceStyle string) []string {
	filter := "subtitles=" + escapeFilterPath(srtPath)
	if forceStyle != "" {
		filter += ":force_style='" + forceStyle + "'"
	}
	args := []string{
		"-y", "-i", input,
		"-vf", filter,
		"-c:v", "libx264", "-preset", "fast", "-crf", "23",
	}
	if hasAudio {
		args = append(args, "-c:a", "aac")
	} else {
		args = append(args, "-an")
	}
	return append(args, output)
}

func buildCopyArgs(input, output string, hasAudio bool) []string {
	args := []string{"-y", "-i", input, "-c:v", "copy"}
	if hasAudio {
		args = append(args, "-c:a", "copy")
	} else {
		args = append(args, "-an")
	}
	return append(args, output)
}

// escapeFilterPath escapes characters the ffmpeg filter parser treats
// specially in file paths.
func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
