package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "download <task-id>",
		Short: "Download the finished video for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			dest := outputPath
			if dest == "" {
				dest = fmt.Sprintf("final_%s.mp4", id)
			}

			base, err := ctx.serverBase()
			if err != nil {
				return err
			}
			resp, err := ctx.client.Get(base + "/download/" + id)
			if err != nil {
				return fmt.Errorf("connect to daemon: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return decodeResponse(resp, nil)
			}

			out, err := os.Create(dest)
			if err != nil {
				return fmt.Errorf("create %s: %w", dest, err)
			}
			written, err := io.Copy(out, resp.Body)
			if err != nil {
				out.Close()
				_ = os.Remove(dest)
				return fmt.Errorf("write %s: %w", dest, err)
			}
			if err := out.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", dest, written)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file path")
	return cmd
}
