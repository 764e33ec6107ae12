package main

import (
	"strings"
	"testing"
)

func TestRenderTaskTableColumns(t *testing.T) {
	out := renderTaskTable([]taskView{
		{
			TaskID:             "aaa-111",
			Status:             "processing",
			Progress:           70,
			VideoCount:         3,
			HasCustomSubtitles: true,
			CreatedAt:          "2026-08-31T10:00:00Z",
		},
		{
			TaskID:     "bbb-222",
			Status:     "error",
			Progress:   20,
			VideoCount: 1,
			CreatedAt:  "2026-08-31T11:00:00Z",
		},
	})

	for _, want := range []string{"TASK", "STATUS", "PROGRESS", "CLIPS", "SRT", "CREATED"} {
		if !strings.Contains(strings.ToUpper(out), want) {
			t.Fatalf("missing header %q in:\n%s", want, out)
		}
	}
	for _, want := range []string{"aaa-111", "processing", "70%", "yes", "bbb-222", "error", "20%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing cell %q in:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	var subtitleCells int
	for _, line := range lines {
		if strings.Contains(line, "bbb-222") {
			if !strings.Contains(line, " - ") {
				t.Fatalf("expected dash marker for task without custom subtitles:\n%s", line)
			}
			subtitleCells++
		}
	}
	if subtitleCells != 1 {
		t.Fatalf("expected one row for bbb-222, found %d", subtitleCells)
	}
}

func TestRenderTaskTableEmpty(t *testing.T) {
	out := renderTaskTable(nil)
	if !strings.Contains(strings.ToUpper(out), "TASK") {
		t.Fatalf("expected header row even without tasks:\n%s", out)
	}
}
