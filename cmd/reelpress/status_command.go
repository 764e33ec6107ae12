package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type taskView struct {
	TaskID             string   `json:"task_id"`
	Status             string   `json:"status"`
	Progress           int      `json:"progress"`
	CreatedAt          string   `json:"created_at"`
	VideoCount         int      `json:"video_count"`
	HasCustomSubtitles bool     `json:"has_custom_subtitles"`
	DownloadURL        string   `json:"download_url"`
	OutputFile         string   `json:"output_file"`
	Error              string   `json:"error"`
	Warnings           []string `json:"warnings"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status [task-id]",
		Short: "Show task status, or list all tasks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showTask(cmd, ctx, args[0])
			}
			return listTasks(cmd, ctx)
		},
	}
}

func showTask(cmd *cobra.Command, ctx *commandContext, id string) error {
	var view taskView
	if err := ctx.getJSON("/status/"+id, &view); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Task:      %s\n", view.TaskID)
	fmt.Fprintf(out, "Status:    %s\n", view.Status)
	fmt.Fprintf(out, "Progress:  %d%%\n", view.Progress)
	fmt.Fprintf(out, "Created:   %s\n", view.CreatedAt)
	fmt.Fprintf(out, "Clips:     %d\n", view.VideoCount)
	fmt.Fprintf(out, "Custom SRT: %v\n", view.HasCustomSubtitles)
	if view.OutputFile != "" {
		fmt.Fprintf(out, "Output:    %s\n", view.OutputFile)
	}
	if view.Error != "" {
		fmt.Fprintf(out, "Error:     %s\n", view.Error)
	}
	for _, warning := range view.Warnings {
		fmt.Fprintf(out, "Warning:   %s\n", warning)
	}
	return nil
}

func listTasks(cmd *cobra.Command, ctx *commandContext) error {
	var listing struct {
		Count int        `json:"count"`
		Tasks []taskView `json:"tasks"`
	}
	if err := ctx.getJSON("/tasks", &listing); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listing.Count == 0 {
		fmt.Fprintln(out, "No tasks")
		return nil
	}

	if !stdoutIsTerminal() {
		for _, t := range listing.Tasks {
			fmt.Fprintf(out, "%s\t%s\t%d%%\t%d clips\n", t.TaskID, t.Status, t.Progress, t.VideoCount)
		}
		return nil
	}

	fmt.Fprintln(out, renderTaskTable(listing.Tasks))
	return nil
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return true
	}
	return strings.EqualFold(os.Getenv("REELPRESS_FORCE_TTY"), "1")
}
