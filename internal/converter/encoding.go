package converter

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DetectEncoding returns the character encoding of content. A byte order
// mark wins over a charset parameter on contentType. Without either, valid
// UTF-8 is reported as such and anything else falls back to sniffing.
func DetectEncoding(content []byte, contentType string) string {
	_, name, certain := charset.DetermineEncoding(content, contentType)
	if certain && name != "" {
		return normalizeName(name)
	}

	if utf8.Valid(content) {
		return "utf-8"
	}

	if name == "" {
		return "utf-8"
	}
	return normalizeName(name)
}

func normalizeName(name string) string {
	name = strings.ToLower(name)
	if name == "utf8" {
		return "utf-8"
	}
	return name
}

// DecodeText converts content to a UTF-8 string. Sequences that are not
// valid in the detected encoding are replaced with U+FFFD.
func DecodeText(content []byte, contentType string) string {
	enc := DetectEncoding(content, contentType)
	content = bytes.TrimPrefix(content, utf8BOM)

	if enc != "utf-8" {
		if converted, err := ConvertToUTF8(content, enc); err == nil {
			content = converted
		}
	}

	return strings.ToValidUTF8(string(content), string(utf8.RuneError))
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ConvertToUTF8 converts content from the named encoding to UTF-8
func ConvertToUTF8(content []byte, encodingName string) ([]byte, error) {
	e, err := GetEncoder(encodingName)
	if err != nil {
		return nil, err
	}

	reader := transform.NewReader(bytes.NewReader(content), e.NewDecoder())
	return io.ReadAll(reader)
}

// GetEncoder returns the encoding for a charset name
func GetEncoder(charsetName string) (encoding.Encoding, error) {
	return htmlindex.Get(charsetName)
}
