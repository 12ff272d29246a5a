package converter

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// IsTextualContentType reports whether a Content-Type header names text:
// any text/* type or a type mentioning javascript, json, xml or yaml.
func IsTextualContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
		ct = mediaType
	}

	if strings.HasPrefix(ct, "text/") {
		return true
	}
	for _, marker := range []string{"javascript", "json", "xml", "yaml"} {
		if strings.Contains(ct, marker) {
			return true
		}
	}
	return false
}

// SniffContentType detects the MIME type of content from its bytes
func SniffContentType(content []byte) string {
	return mimetype.Detect(content).String()
}

// IsTextual reports whether content should be treated as text. Content is
// binary only when both the header and the sniffed type say so.
func IsTextual(content []byte, contentType string) bool {
	if IsTextualContentType(contentType) {
		return true
	}

	for m := mimetype.Detect(content); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
