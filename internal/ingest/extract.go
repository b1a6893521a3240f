package ingest

import "strings"

// Placeholder texts for content types without real extraction. PDF and
// image extraction are deliberate stubs, not errors, so the rest of the
// pipeline stays exercisable end-to-end for every supported type.
const (
	pdfPlaceholder   = "PDF content placeholder"
	imagePlaceholder = "Image file processed"
)

// ExtractText produces plain text from raw file bytes according to the
// declared content type. Stateless; no data is retained between calls.
func ExtractText(data []byte, contentType string) (string, error) {
	switch {
	case contentType == "text/plain":
		return string(data), nil
	case contentType == "application/pdf":
		return pdfPlaceholder, nil
	case strings.HasPrefix(contentType, "image/"):
		return imagePlaceholder, nil
	default:
		return "", &UnsupportedFileTypeError{Extension: contentType}
	}
}
