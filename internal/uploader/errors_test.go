package uploader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string error field", `{"error":"boom"}`, "boom"},
		{"object error with message", `{"error":{"message":"boom2"}}`, "boom2"},
		{"no error field", `{"status":"oops"}`, "Unknown error occurred"},
		{"empty body", ``, "Unknown error occurred"},
		{"not json", `<html>502</html>`, "Unknown error occurred"},
		{"empty string error", `{"error":""}`, "Unknown error occurred"},
		{"object error without message", `{"error":{"code":42}}`, "Unknown error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractErrorMessage([]byte(tt.body)))
		})
	}
}
