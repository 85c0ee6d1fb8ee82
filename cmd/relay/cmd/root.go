package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"audio-relay/cmd/relay/cmd/serve"
	"audio-relay/cmd/relay/cmd/transcribe"
	"audio-relay/cmd/relay/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Upload audio files and get their transcription back",
	Long: `Upload audio files and get their transcription back.
- relay serve starts the upload page and the /api/transcribe endpoint
- relay transcribe sends a local file to a running relay and saves transcription.txt
- The speech-to-text provider is configured with GROQ_API_KEY and GROQ_BASE_URL.`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (YAML); defaults to $RELAY_CONFIG")
}
