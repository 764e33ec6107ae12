package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var srtPath string

	cmd := &cobra.Command{
		Use:   "submit <clips.json>",
		Short: "Submit a clip list for processing",
		Long: "Submit a JSON file describing the clips to process. The file may be a " +
			"full webhook payload or a bare JSON array of clip descriptors.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := buildSubmitPayload(args[0], srtPath)
			if err != nil {
				return err
			}

			var accepted struct {
				TaskID             string `json:"task_id"`
				Status             string `json:"status"`
				Message            string `json:"message"`
				VideoCount         int    `json:"video_count"`
				HasCustomSubtitles bool   `json:"has_custom_subtitles"`
			}
			if err := ctx.postJSON("/webhook", payload, &accepted); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Task %s accepted (%d clips)\n", accepted.TaskID, accepted.VideoCount)
			if accepted.HasCustomSubtitles {
				fmt.Fprintln(out, "Custom subtitles attached")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&srtPath, "srt", "", "Attach an SRT subtitle file to the submission")
	return cmd
}

func buildSubmitPayload(clipsPath, srtPath string) ([]byte, error) {
	data, err := os.ReadFile(clipsPath)
	if err != nil {
		return nil, fmt.Errorf("read clip list: %w", err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		// Not an object: accept a bare descriptor array.
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse clip list %s: expected a JSON object or array", clipsPath)
		}
		payload = map[string]json.RawMessage{}
		payload["videos"], _ = json.Marshal(list)
	}

	if srtPath != "" {
		srt, err := os.ReadFile(srtPath)
		if err != nil {
			return nil, fmt.Errorf("read srt file: %w", err)
		}
		payload["srt"], _ = json.Marshal(string(srt))
	}

	return json.Marshal(payload)
}
