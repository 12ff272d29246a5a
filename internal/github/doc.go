// Package github implements domain.Host against the GitHub REST API.
//
// Client wraps google/go-github with one authenticated API client per
// bearer token. RemoteRefLister lists branches and tags over the git smart
// HTTP protocol instead of the REST API; it is not limited to one page.
package github
