// Package client drives the relay endpoint the way the upload page does:
// pick an audio file, submit it once, keep the text, save it to disk.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

const (
	// DownloadFileName is the name every saved transcription gets.
	DownloadFileName = "transcription.txt"

	AlertInvalidFile         = "Please select a valid audio file"
	AlertTranscriptionFailed = "An error occurred during transcription. Please try again."
)

var (
	ErrNotAudio          = errors.New("selected file is not an audio file")
	ErrNoFileSelected    = errors.New("no file selected")
	ErrSubmitInProgress  = errors.New("a submission is already in progress")
	ErrNothingToDownload = errors.New("no transcription to download")
	ErrMalformedResponse = errors.New("malformed transcription response")
)

// StatusError is returned when the relay answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay returned status %d: %s", e.StatusCode, e.Message)
}

// Notifier surfaces blocking messages to the user.
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Alert implements Notifier.
func (f NotifierFunc) Alert(message string) { f(message) }

// State is a read-only copy of the controller state.
type State struct {
	SelectedFile *Upload
	ResultText   string
	IsSubmitting bool
}

// Option configures a FormController.
type Option func(*FormController)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(fc *FormController) { fc.httpClient = c }
}

// WithNotifier sets where user alerts go.
func WithNotifier(n Notifier) Option {
	return func(fc *FormController) { fc.notifier = n }
}

// WithProgress wraps the request body, typically to drive a progress bar.
func WithProgress(wrap func(r io.Reader, size int64) io.Reader) Option {
	return func(fc *FormController) { fc.progress = wrap }
}

// FormController holds the upload form state machine.
type FormController struct {
	endpoint   string
	httpClient *http.Client
	notifier   Notifier
	progress   func(io.Reader, int64) io.Reader

	submitting atomic.Bool

	mu         sync.RWMutex
	selected   *Upload
	resultText string
}

// NewFormController creates a controller posting to endpoint, the full
// URL of the relay's transcribe route.
func NewFormController(endpoint string, opts ...Option) *FormController {
	fc := &FormController{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		notifier:   NotifierFunc(func(string) {}),
	}
	for _, opt := range opts {
		opt(fc)
	}
	return fc
}

// SelectFile stores the upload when its declared type is audio. Anything else
// is reported to the user and leaves the previous selection in place.
func (fc *FormController) SelectFile(upload *Upload) error {
	if !upload.IsAudio() {
		fc.notifier.Alert(AlertInvalidFile)
		return ErrNotAudio
	}

	fc.mu.Lock()
	fc.selected = upload
	fc.mu.Unlock()
	return nil
}

// Submit posts the selected file and stores the returned text. Only one
// submission runs at a time; concurrent calls get ErrSubmitInProgress.
func (fc *FormController) Submit(ctx context.Context) (string, error) {
	fc.mu.RLock()
	upload := fc.selected
	fc.mu.RUnlock()
	if upload == nil {
		return "", ErrNoFileSelected
	}

	if !fc.submitting.CompareAndSwap(false, true) {
		return "", ErrSubmitInProgress
	}
	defer fc.submitting.Store(false)

	text, err := fc.post(ctx, upload)
	if err != nil {
		fc.notifier.Alert(AlertTranscriptionFailed)
		return "", err
	}

	fc.mu.Lock()
	fc.resultText = text
	fc.mu.Unlock()
	return text, nil
}

func (fc *FormController) post(ctx context.Context, upload *Upload) (string, error) {
	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return "", err
	}

	var reader io.Reader = bytes.NewReader(body)
	if fc.progress != nil {
		reader = fc.progress(reader, int64(len(body)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fc.endpoint, reader)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := fc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(payload, &apiErr)
		return "", &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	var result struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result.Text == nil {
		return "", fmt.Errorf("%w: missing text", ErrMalformedResponse)
	}
	return *result.Text, nil
}

// encodeUpload builds a multipart body with the file under the "file" part,
// keeping the declared content type.
func encodeUpload(upload *Upload) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, upload.Name))
	header.Set("Content-Type", upload.ContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

// Download writes the current text to transcription.txt inside dir and
// returns the written path.
func (fc *FormController) Download(dir string) (string, error) {
	fc.mu.RLock()
	text := fc.resultText
	fc.mu.RUnlock()
	if text == "" {
		return "", ErrNothingToDownload
	}

	path := filepath.Join(dir, DownloadFileName)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to save transcription: %w", err)
	}
	return path, nil
}

// Snapshot returns a copy of the current state.
func (fc *FormController) Snapshot() State {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	return State{
		SelectedFile: fc.selected,
		ResultText:   fc.resultText,
		IsSubmitting: fc.submitting.Load(),
	}
}
