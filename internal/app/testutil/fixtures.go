package testutil

import (
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// WAVBytes returns a PCM WAV file (16 kHz, mono, 16-bit) of the given
// duration in seconds, filled with silence.
func WAVBytes(seconds int) []byte {
	const (
		sampleRate    = 16000
		bitsPerSample = 16
		channels      = 1
	)
	dataSize := uint32(seconds * sampleRate * channels * bitsPerSample / 8)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], sampleRate*channels*bitsPerSample/8)
	binary.LittleEndian.PutUint16(header[32:34], channels*bitsPerSample/8)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	return append(header, make([]byte, dataSize)...)
}

// CreateTestAudioFile writes a short WAV file into a per-test directory
func CreateTestAudioFile(t *testing.T, filename string, seconds int) string {
	t.Helper()
	return WriteTestFile(t, filename, WAVBytes(seconds))
}

// WriteTestFile writes data into a per-test directory and returns the path.
func WriteTestFile(t *testing.T, filename string, data []byte) string {
	t.Helper()

	fullPath := filepath.Join(t.TempDir(), filepath.Base(filename))
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return fullPath
}

// ProviderUpload is what the fake provider received for one request.
type ProviderUpload struct {
	Model    string
	FileName string
	Audio    []byte
	Auth     string
}

// ProviderResponder writes the fake provider's reply.
type ProviderResponder func(w http.ResponseWriter, upload ProviderUpload)

// RespondJSON replies 200 with body.
func RespondJSON(body string) ProviderResponder {
	return func(w http.ResponseWriter, _ ProviderUpload) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, body)
	}
}

// RespondError replies with an OpenAI-style error body.
func RespondError(status int, message string) ProviderResponder {
	return func(w http.ResponseWriter, _ ProviderUpload) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, `{"error":{"message":"`+message+`","type":"invalid_request_error"}}`)
	}
}

// FakeProvider is an httptest server implementing POST /v1/audio/transcriptions.
type FakeProvider struct {
	*httptest.Server

	mu      sync.Mutex
	uploads []ProviderUpload
}

// NewFakeProvider starts a fake provider. BaseURL() is suitable as the
// client base URL.
func NewFakeProvider(t *testing.T, respond ProviderResponder) *FakeProvider {
	t.Helper()

	fp := &FakeProvider{}
	fp.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)

		upload := ProviderUpload{
			Model:    r.FormValue("model"),
			FileName: header.Filename,
			Audio:    data,
			Auth:     r.Header.Get("Authorization"),
		}
		fp.mu.Lock()
		fp.uploads = append(fp.uploads, upload)
		fp.mu.Unlock()

		respond(w, upload)
	}))
	return fp
}

// BaseURL returns the OpenAI-style base URL of the fake provider.
func (fp *FakeProvider) BaseURL() string {
	return fp.URL + "/v1"
}

// Uploads returns a copy of everything received so far.
func (fp *FakeProvider) Uploads() []ProviderUpload {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	out := make([]ProviderUpload, len(fp.uploads))
	copy(out, fp.uploads)
	return out
}
