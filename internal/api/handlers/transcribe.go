package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audio-relay/internal/api/errors"
	"audio-relay/internal/api/middleware"
	"audio-relay/internal/app/provider"
	"audio-relay/internal/app/scratch"
)

// UploadField is the multipart part carrying the audio.
const UploadField = "file"

// TranscribeOptions tunes the relay endpoint.
type TranscribeOptions struct {
	// Model is sent with every provider call. Empty means the provider default.
	Model string
	// MaxUploadBytes caps the accepted upload. Zero disables the cap.
	MaxUploadBytes int64
}

// TranscribeHandler relays uploaded audio to a speech-to-text provider
type TranscribeHandler struct {
	transcriber provider.Transcriber
	store       *scratch.Store
	opts        TranscribeOptions
	logger      *zap.Logger
}

// NewTranscribeHandler creates a new relay handler
func NewTranscribeHandler(transcriber provider.Transcriber, store *scratch.Store, opts TranscribeOptions, logger *zap.Logger) *TranscribeHandler {
	return &TranscribeHandler{
		transcriber: transcriber,
		store:       store,
		opts:        opts,
		logger:      logger,
	}
}

// Transcribe handles POST /api/transcribe
//
// @Summary Transcribe an audio file
// @Description Accepts one audio file in the multipart part "file", forwards it to the configured speech-to-text provider and returns the provider result unchanged.
// @Tags transcription
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file"
// @Success 200 {object} provider.Transcription "Provider transcription result"
// @Failure 400 {object} errors.APIError "No file provided"
// @Failure 500 {object} errors.APIError "Transcription failed"
// @Router /transcribe [post]
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	requestID := c.GetString(middleware.RequestIDKey)
	log := h.logger.With(zap.String("request_id", requestID))

	header, err := c.FormFile(UploadField)
	if err != nil {
		log.Debug("rejected upload", zap.Error(err))
		middleware.HandleError(c, errors.NewBadRequestError(errors.MsgNoFileProvided))
		return
	}
	log.Debug("upload received",
		zap.String("file_name", header.Filename),
		zap.Int64("size", header.Size),
	)

	result, err := h.relay(c, header, log)
	if err != nil {
		log.Error("transcription failed",
			zap.String("file_name", header.Filename),
			zap.String("code", provider.ErrorCode(err)),
			zap.Error(err),
		)
		middleware.HandleError(c, errors.NewInternalError(errors.MsgTranscriptionFailed))
		return
	}

	log.Info("transcription relayed",
		zap.String("file_name", header.Filename),
		zap.Int("text_length", len(result.Text)),
	)
	if len(result.Raw) > 0 {
		c.Data(http.StatusOK, "application/json; charset=utf-8", result.Raw)
		return
	}
	c.JSON(http.StatusOK, result)
}

// relay runs persist, provider call and cleanup. A failed release turns an
// otherwise successful call into an error.
func (h *TranscribeHandler) relay(c *gin.Context, header *multipart.FileHeader, log *zap.Logger) (result *provider.Transcription, err error) {
	data, err := h.readUpload(header)
	if err != nil {
		return nil, err
	}

	transient := h.store.Acquire(header.Filename)
	defer func() {
		if releaseErr := transient.Release(); releaseErr != nil {
			log.Error("failed to release transient file",
				zap.String("path", transient.Path()),
				zap.Error(releaseErr),
			)
			if err == nil {
				result, err = nil, releaseErr
			}
			return
		}
		log.Debug("transient file released", zap.String("path", transient.Path()))
	}()

	if err := transient.Write(data); err != nil {
		return nil, err
	}
	log.Debug("upload persisted", zap.String("path", transient.Path()))

	audio, err := transient.Open()
	if err != nil {
		return nil, err
	}
	defer audio.Close()

	result, err = h.transcriber.Transcribe(c.Request.Context(), &provider.TranscriptionRequest{
		Audio:    audio,
		FileName: transient.OriginalName(),
		Model:    h.opts.Model,
	})
	if err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

func (h *TranscribeHandler) readUpload(header *multipart.FileHeader) ([]byte, error) {
	limit := h.opts.MaxUploadBytes
	if limit > 0 && header.Size > limit {
		return nil, fmt.Errorf("upload of %d bytes exceeds limit of %d", header.Size, limit)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if limit > 0 {
		reader = io.LimitReader(file, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("upload exceeds limit of %d bytes", limit)
	}
	return data, nil
}
