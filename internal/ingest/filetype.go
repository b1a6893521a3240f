// Package ingest contains the document ingestion pipeline: declared
// content type resolution, text extraction, chunking, tokenization and
// the chunk record write.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// UnsupportedFileTypeError is returned when a file name has no extension
// or its extension is not in the supported table, and when the extractor
// is handed a declared content type it does not know.
type UnsupportedFileTypeError struct {
	Extension string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("Unsupported file type: %s", e.Extension)
}

// supportedTypes maps lowercased file extensions to declared content
// types. The table is closed on purpose: only types the extractor knows
// how to handle are admitted.
var supportedTypes = map[string]string{
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"webp": "image/webp",
}

// ResolveFileType maps a file name's extension to its declared content
// type. No side effects.
func ResolveFileType(fileName string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	contentType, ok := supportedTypes[ext]
	if !ok {
		return "", &UnsupportedFileTypeError{Extension: ext}
	}
	return contentType, nil
}
