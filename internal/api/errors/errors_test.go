package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected int
	}{
		{KindBadRequest, http.StatusBadRequest},
		{KindInternal, http.StatusInternalServerError},
		{ErrorKind("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := &APIError{Kind: tt.kind}
			assert.Equal(t, tt.expected, err.HTTPStatus())
		})
	}
}

func TestAPIError_WireShape(t *testing.T) {
	err := NewBadRequestError(MsgNoFileProvided)
	err.RequestID = "abc-123"

	body, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"error":"No file provided"}`, string(body))

	internal := NewInternalError(MsgTranscriptionFailed)
	body, marshalErr = json.Marshal(internal)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"error":"Transcription failed"}`, string(body))
}
