package locator

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
)

// DefaultHost is the host accepted when no other is configured
const DefaultHost = "github.com"

// Parser matches repository URLs for a fixed set of hosts
type Parser struct {
	hosts    []string
	patterns []*regexp.Regexp
}

// NewParser creates a parser for the given hosts. With no hosts it accepts
// DefaultHost only.
func NewParser(hosts ...string) *Parser {
	if len(hosts) == 0 {
		hosts = []string{DefaultHost}
	}
	p := &Parser{}
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		p.hosts = append(p.hosts, h)
		p.patterns = append(p.patterns, regexp.MustCompile(
			`^https://`+regexp.QuoteMeta(h)+`/([^/?#]+)/([^/?#]+)(?:/(?:tree|blob|commit)/([^?#]+))?(?:[/?#].*)?$`))
	}
	return p
}

// Parse parses rawURL with the default parser
func Parse(rawURL string) (domain.RepositoryLocator, error) {
	return NewParser().Parse(rawURL)
}

// Parse turns rawURL into a locator. Surrounding whitespace and a trailing
// slash are ignored and backslashes are treated as forward slashes.
func (p *Parser) Parse(rawURL string) (domain.RepositoryLocator, error) {
	normalized := Normalize(rawURL)

	for i, pat := range p.patterns {
		m := pat.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}

		repo := strings.TrimSuffix(m[2], ".git")
		if m[1] == "" || repo == "" {
			break
		}

		loc := domain.RepositoryLocator{
			Host:  p.hosts[i],
			Owner: m[1],
			Repo:  repo,
		}
		if m[3] != "" {
			loc.Fragment = decodeFragment(m[3])
		}
		return loc, nil
	}

	return domain.RepositoryLocator{}, fmt.Errorf("%w: expected format: https://%s/owner/repo or https://%s/owner/repo/tree/branch/path",
		domain.ErrInvalidURLFormat, p.hosts[0], p.hosts[0])
}

// Normalize trims whitespace and trailing slashes and replaces backslashes
func Normalize(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	s = strings.ReplaceAll(s, `\`, "/")
	return strings.TrimRight(s, "/")
}

func decodeFragment(fragment string) string {
	fragment = strings.Trim(fragment, "/")
	if decoded, err := url.PathUnescape(fragment); err == nil {
		return decoded
	}
	return fragment
}
