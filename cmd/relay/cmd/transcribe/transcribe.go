package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"audio-relay/internal/client"
)

const (
	// EnvServerURL points the command at a running relay.
	EnvServerURL     = "RELAY_URL"
	defaultServerURL = "http://localhost:8080"
	transcribePath   = "/api/transcribe"
)

var (
	serverURL string
	outDir    string
	progress  bool
	timeout   time.Duration
)

func init() {
	Cmd.Flags().StringVarP(&serverURL, "server", "s", "",
		"relay base URL (default $RELAY_URL or "+defaultServerURL+")")
	Cmd.Flags().StringVarP(&outDir, "out", "o", ".",
		"directory to save "+client.DownloadFileName+" in")
	Cmd.Flags().BoolVar(&progress, "progress", false,
		"always show the upload progress bar, even when stderr is not a terminal")
	Cmd.Flags().DurationVar(&timeout, "timeout", 0,
		"give up after this long (0 waits for the relay)")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Send an audio file to a relay and save the transcription",
	Long: `Send an audio file to a relay and save the transcription

- The file must be an audio file, detected from its content or extension
- The text is printed and saved as transcription.txt in --out`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base := lo.CoalesceOrEmpty(serverURL, os.Getenv(EnvServerURL), defaultServerURL)
		endpoint := strings.TrimRight(base, "/") + transcribePath

		upload, err := client.OpenUpload(args[0])
		if err != nil {
			return err
		}

		stderr := cmd.ErrOrStderr()
		bar := NewUploadProgress(ProgressConfig{
			Enabled: ShouldShowProgress(progress, stderr),
			Writer:  stderr,
		})
		controller := client.NewFormController(endpoint,
			client.WithNotifier(client.NotifierFunc(func(message string) {
				fmt.Fprintln(stderr, message)
			})),
			client.WithProgress(bar.Wrap),
		)

		if err := controller.SelectFile(upload); err != nil {
			return fmt.Errorf("%s: %w", upload.Name, err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		text, err := controller.Submit(ctx)
		bar.Wait()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)

		path, err := controller.Download(outDir)
		if errors.Is(err, client.ErrNothingToDownload) {
			fmt.Fprintln(stderr, "The transcription is empty; nothing saved.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Saved to %s\n", path)
		return nil
	},
}
