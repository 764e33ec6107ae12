package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// statusColors maps task states to the colors used in the interactive
// listing. Unknown states render uncolored.
var statusColors = map[string]text.Colors{
	"initiated":  {text.FgCyan},
	"processing": {text.FgYellow},
	"completed":  {text.FgGreen},
	"error":      {text.FgRed},
}

// renderTaskTable renders the task listing as a rounded table: identifier,
// colored state, right-aligned progress and clip counts, custom-subtitle
// marker, and creation time.
func renderTaskTable(tasks []taskView) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Task", "Status", "Progress", "Clips", "SRT", "Created"})

	for _, t := range tasks {
		status := t.Status
		if colors, ok := statusColors[t.Status]; ok {
			status = colors.Sprint(t.Status)
		}
		srt := "-"
		if t.HasCustomSubtitles {
			srt = "yes"
		}
		tw.AppendRow(table.Row{
			t.TaskID,
			status,
			strconv.Itoa(t.Progress) + "%",
			t.VideoCount,
			srt,
			t.CreatedAt,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
