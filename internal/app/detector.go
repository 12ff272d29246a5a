package app

import (
	"net/url"
	"strings"

	"github.com/quantmind-br/repo2txt-go/internal/config"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/github"
	"github.com/quantmind-br/repo2txt-go/internal/locator"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// RefSourceType selects where branch and tag names are listed from
type RefSourceType string

const (
	RefSourceAPI     RefSourceType = config.RefSourceAPI
	RefSourceRemote  RefSourceType = config.RefSourceRemote
	RefSourceUnknown RefSourceType = "unknown"
)

// DetectRefSource maps a configured name to a RefSourceType
func DetectRefSource(name string) RefSourceType {
	switch RefSourceType(strings.ToLower(strings.TrimSpace(name))) {
	case "", RefSourceAPI:
		return RefSourceAPI
	case RefSourceRemote:
		return RefSourceRemote
	}
	return RefSourceUnknown
}

// CreateRefLister creates the reference lister for a source type. The API
// source reuses client; the remote source talks git smart HTTP to gitURL.
func CreateRefLister(source RefSourceType, client *github.Client, gitURL string, logger *utils.Logger) domain.RefLister {
	switch source {
	case RefSourceAPI:
		return client
	case RefSourceRemote:
		return github.NewRemoteRefLister(github.RemoteRefListerOptions{
			GitURL: gitURL,
			Logger: logger,
		})
	default:
		return nil
	}
}

// DetectHosts returns the hosts whose URLs are accepted: github.com and the
// host of gitURL when it points elsewhere
func DetectHosts(gitURL string) []string {
	hosts := []string{locator.DefaultHost}

	u, err := url.Parse(gitURL)
	if err != nil || u.Host == "" {
		return hosts
	}
	if h := strings.ToLower(u.Host); h != locator.DefaultHost {
		hosts = append(hosts, h)
	}
	return hosts
}

// NewParser creates a URL parser for the configured hosts
func NewParser(cfg *config.Config) *locator.Parser {
	return locator.NewParser(DetectHosts(cfg.GitHub.GitURL)...)
}
