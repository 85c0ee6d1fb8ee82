package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewStaticHandler().Register(router)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		contentType    string
		contains       string
	}{
		{"root serves the page", "/", http.StatusOK, "text/html; charset=utf-8", "Audio Transcription"},
		{"index alias", "/index.html", http.StatusOK, "text/html; charset=utf-8", `id="upload-form"`},
		{"script", "/static/app.js", http.StatusOK, "application/javascript", "transcription.txt"},
		{"stylesheet", "/static/style.css", http.StatusOK, "text/css; charset=utf-8", ".layout"},
		{"unknown asset", "/static/missing.js", http.StatusNotFound, "", ""},
		{"no escape from the asset root", "/static/../web.go", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}
}

// scriptFunction returns the body of a top-level function in app.js.
func scriptFunction(t *testing.T, script, signature string) string {
	t.Helper()
	start := strings.Index(script, signature)
	require.GreaterOrEqual(t, start, 0, "%s not found", signature)
	end := strings.Index(script[start:], "\n  }\n")
	require.Greater(t, end, 0, "%s has no closing brace", signature)
	return script[start : start+end]
}

func TestUploadScriptBehaviour(t *testing.T) {
	w := httptest.NewRecorder()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewStaticHandler().Register(router)
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	require.Equal(t, http.StatusOK, w.Code)
	script := w.Body.String()

	t.Run("rejected file keeps the selection", func(t *testing.T) {
		body := scriptFunction(t, script, "function selectFile(file)")
		accept := strings.Index(body, "file.type.startsWith('audio/')")
		reject := strings.Index(body, "} else {")
		require.GreaterOrEqual(t, accept, 0)
		require.Greater(t, reject, accept)
		assert.Contains(t, body[accept:reject], "state.selectedFile = file")
		assert.NotContains(t, body[reject:], "state.selectedFile")
		assert.Contains(t, body[reject:], "Please select a valid audio file")
	})

	t.Run("submit is guarded while in flight", func(t *testing.T) {
		body := scriptFunction(t, script, "async function submit()")
		guard := strings.Index(body, "if (!state.selectedFile || state.isSubmitting)")
		flight := strings.Index(body, "state.isSubmitting = true")
		require.GreaterOrEqual(t, guard, 0)
		assert.Greater(t, flight, guard, "the guard must run before the request is marked in flight")
		assert.Contains(t, body, "formData.append('file', state.selectedFile)")
		assert.Contains(t, body, "An error occurred during transcription. Please try again.")

		release := strings.Index(body, "finally")
		require.Greater(t, release, flight)
		assert.Contains(t, body[release:], "state.isSubmitting = false")
	})

	t.Run("download ignores an empty result", func(t *testing.T) {
		body := scriptFunction(t, script, "function download()")
		guard := strings.Index(body, "if (state.resultText === '')")
		save := strings.Index(body, "link.click()")
		require.GreaterOrEqual(t, guard, 0)
		assert.Greater(t, save, guard)
		assert.Contains(t, body, "'transcription.txt'")
	})
}
