// Package testutil provides testing utilities for the relay.
//
// It contains:
//
//   - MockTranscriber: a testify mock of provider.Transcriber that records
//     the audio bytes each call received.
//   - Audio fixtures: minimal WAV content and helpers to write it to disk.
//   - FakeProvider: an httptest server speaking the OpenAI-compatible
//     /audio/transcriptions wire format.
//
// # Usage
//
//	mt := testutil.NewMockTranscriber()
//	mt.On("Transcribe", mock.Anything, mock.Anything).
//	    Return(&provider.Transcription{Text: "hello world"}, nil)
//
//	srv := testutil.NewFakeProvider(t, testutil.RespondJSON(`{"text":"hi"}`))
//	defer srv.Close()
package testutil
