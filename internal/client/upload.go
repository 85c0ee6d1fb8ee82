package client

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Upload is a file picked for transcription together with its declared type.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// IsAudio reports whether the declared type is an audio type.
func (u *Upload) IsAudio() bool {
	return u != nil && strings.HasPrefix(u.ContentType, "audio/")
}

// audioExtensions covers containers the sniffer cannot always identify
// from their first bytes.
var audioExtensions = map[string]string{
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".mpeg": "audio/mpeg",
	".mpga": "audio/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".weba": "audio/webm",
}

// OpenUpload reads a local file and declares its type the way a browser
// would: content sniffing first, the file extension as a fallback.
func OpenUpload(path string) (*Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &Upload{
		Name:        filepath.Base(path),
		ContentType: detectContentType(filepath.Base(path), data),
		Data:        data,
	}, nil
}

func detectContentType(name string, data []byte) string {
	sniffed := mediaType(mimetype.Detect(data).String())
	if strings.HasPrefix(sniffed, "audio/") {
		return sniffed
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := audioExtensions[ext]; ok {
		return ct
	}
	if ct := mediaType(mime.TypeByExtension(ext)); ct != "" && sniffed == "application/octet-stream" {
		return ct
	}
	return sniffed
}

// mediaType drops parameters such as charset.
func mediaType(ct string) string {
	if ct == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return parsed
}
