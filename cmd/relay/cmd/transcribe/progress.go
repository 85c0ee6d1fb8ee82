package transcribe

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// UploadProgress draws one byte-counting bar for the request body.
type UploadProgress struct {
	container *mpb.Progress
	enabled   bool

	mu  sync.Mutex
	bar *mpb.Bar
}

func NewUploadProgress(config ProgressConfig) *UploadProgress {
	if !config.Enabled {
		return &UploadProgress{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &UploadProgress{
		container: container,
		enabled:   true,
	}
}

// Wrap returns r with reads counted against a new bar of the given size.
func (up *UploadProgress) Wrap(r io.Reader, size int64) io.Reader {
	if !up.enabled || up.container == nil {
		return r
	}

	up.mu.Lock()
	defer up.mu.Unlock()

	description := "Uploading"
	up.bar = up.container.AddBar(size,
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ ",
			),
		),
	)
	return up.bar.ProxyReader(r)
}

// Wait ends a bar left short by a failed request and flushes output.
// The bar has a fixed total, so it is aborted rather than re-totalled.
func (up *UploadProgress) Wait() {
	if !up.enabled || up.container == nil {
		return
	}

	up.mu.Lock()
	if up.bar != nil && !up.bar.Completed() {
		up.bar.Abort(false)
	}
	up.mu.Unlock()

	up.container.Wait()
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool, writer io.Writer) bool {
	if forced {
		return true
	}

	return IsTTY(writer)
}
