package export

import (
	"strings"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/tree"
)

const (
	sectionRule   = "---"
	sectionPrefix = "File: /"
)

// Section is one file of a text document
type Section struct {
	Path string
	Text string
}

// FormatText renders contents as one document: the directory structure of
// the exported paths, then every file behind a path header.
func FormatText(contents []domain.FetchedContent) string {
	paths := make([]string, len(contents))
	for i, c := range contents {
		paths[i] = c.Path
	}

	var b strings.Builder
	b.WriteString(tree.Render(paths))
	b.WriteString("\n")

	for _, c := range contents {
		b.WriteString(sectionRule + "\n")
		b.WriteString(sectionPrefix + strings.TrimPrefix(c.Path, "/") + "\n")
		b.WriteString(sectionRule + "\n\n")
		b.WriteString(c.Text)
		b.WriteString("\n\n")
	}

	return b.String()
}

// ParseText splits a document produced by FormatText back into its
// sections. A file whose own text contains a complete header line triple
// splits at that point.
func ParseText(doc string) []Section {
	header := "\n" + sectionRule + "\n" + sectionPrefix
	doc = "\n" + doc

	var sections []Section
	start := strings.Index(doc, header)
	for start >= 0 {
		pathStart := start + len(header)
		pathEnd := strings.IndexByte(doc[pathStart:], '\n')
		if pathEnd < 0 {
			break
		}
		p := doc[pathStart : pathStart+pathEnd]

		closing := "\n" + sectionRule + "\n\n"
		rest := doc[pathStart+pathEnd:]
		if !strings.HasPrefix(rest, closing) {
			start = nextHeader(doc, pathStart, header)
			continue
		}
		bodyStart := pathStart + pathEnd + len(closing)

		next := nextHeader(doc, bodyStart, header)
		end := len(doc)
		if next >= 0 {
			end = next + 1
		}
		body := strings.TrimSuffix(doc[bodyStart:end], "\n\n")

		sections = append(sections, Section{Path: p, Text: body})
		start = next
	}

	return sections
}

func nextHeader(doc string, from int, header string) int {
	i := strings.Index(doc[from:], header)
	if i < 0 {
		return -1
	}
	return from + i
}
