package security

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileValidationResult contains the result of content sniffing
type FileValidationResult struct {
	Valid        bool   // Whether the content is one of the allowed types
	DetectedMIME string // MIME type detected from magic bytes
	Extension    string // Extension of the detected type, with dot
	Error        string // Error message if validation failed
}

// ValidateContent sniffs data and checks the detected type against allowed.
// The declared Content-Type of an upload is client-controlled; the magic
// bytes are not.
func ValidateContent(data []byte, allowed []string) FileValidationResult {
	if len(data) == 0 {
		return FileValidationResult{Error: "file is empty"}
	}

	mt := mimetype.Detect(data)
	result := FileValidationResult{
		DetectedMIME: mt.String(),
		Extension:    mt.Extension(),
	}

	for _, a := range allowed {
		if mt.Is(strings.ToLower(a)) {
			result.Valid = true
			return result
		}
	}

	result.Error = "file content does not match an accepted type: " + mt.String()
	return result
}
