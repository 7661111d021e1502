package uploader

import "encoding/json"

// unknownErrorMessage is the fallback when a response body carries no usable
// error field.
const unknownErrorMessage = "Unknown error occurred"

// ExtractErrorMessage pulls a human-readable message out of an API error
// body. The backend is not consistent about its error shape, so every remote
// failure path goes through this one extraction: a string "error" field is
// used verbatim, an object "error" field contributes its "message", and
// anything else falls back to a generic message.
func ExtractErrorMessage(body []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return unknownErrorMessage
	}

	var s string
	if err := json.Unmarshal(envelope.Error, &s); err == nil && s != "" {
		return s
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}

	return unknownErrorMessage
}
