package provider

import (
	"encoding/json"
	"io"
)

// TranscriptionRequest carries one audio stream to the provider.
type TranscriptionRequest struct {
	// Audio is read to EOF by the provider. The caller owns closing it.
	Audio io.Reader `json:"-"`

	// FileName is sent along with the audio; providers infer the container
	// format from its extension.
	FileName string `json:"file_name"`

	// Model overrides the provider's configured model when set.
	Model    string `json:"model,omitempty"`
	Language string `json:"language,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
}

// Transcription is the result schema enforced at the relay boundary.
// Text is the only required field.
type Transcription struct {
	Text     string    `json:"text"`
	Task     string    `json:"task,omitempty"`
	Language string    `json:"language,omitempty"`
	Duration float64   `json:"duration,omitempty"`
	Segments []Segment `json:"segments,omitempty"`

	// Raw is the provider body exactly as received, when available.
	// The relay forwards it unchanged once the schema check has passed.
	Raw json.RawMessage `json:"-"`
}

// Segment is a time-aligned piece of a transcription.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// ProviderInfo contains metadata about a transcription provider
type ProviderInfo struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	BaseURL        string `json:"base_url,omitempty"`
	DefaultModel   string `json:"default_model"`
	RequiresAPIKey bool   `json:"requires_api_key"`
	MaxFileSizeMB  int    `json:"max_file_size_mb,omitempty"`
}

// ParseTranscription decodes a provider body and checks it against the
// boundary schema. The returned value keeps the original bytes in Raw.
func ParseTranscription(body []byte) (*Transcription, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &ProviderSchemaError{Reason: "response is not a JSON object", Cause: err}
	}

	rawText, ok := fields["text"]
	if !ok {
		return nil, &ProviderSchemaError{Reason: `response has no "text" field`}
	}
	var text string
	if err := json.Unmarshal(rawText, &text); err != nil {
		return nil, &ProviderSchemaError{Reason: `"text" is not a string`, Cause: err}
	}

	var result Transcription
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ProviderSchemaError{Reason: "response does not match the transcription schema", Cause: err}
	}
	result.Raw = append(json.RawMessage(nil), body...)
	return &result, nil
}

// Validate checks a decoded result. It is the fallback for providers that do
// not expose their raw body.
func (t *Transcription) Validate() error {
	if t == nil {
		return &ProviderSchemaError{Reason: "provider returned no result"}
	}
	return nil
}
