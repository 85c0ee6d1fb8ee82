// Command relay serves the audio upload page and relays uploads to an
// OpenAI-compatible speech-to-text provider.
//
// @title Audio Relay API
// @version 1.0
// @description Relays uploaded audio files to an OpenAI-compatible speech-to-text provider.
// @BasePath /api
package main

import "audio-relay/cmd/relay/cmd"

func main() {
	cmd.Execute()
}
