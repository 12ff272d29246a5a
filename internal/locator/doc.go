// Package locator parses repository URLs into a RepositoryLocator.
//
// Accepted forms:
//
//	https://github.com/owner/repo
//	https://github.com/owner/repo/tree/<fragment>
//	https://github.com/owner/repo/blob/<fragment>
//	https://github.com/owner/repo/commit/<fragment>
//
// The fragment is kept verbatim (after percent-decoding). It may hold a
// branch, a tag or a path, each possibly containing slashes; splitting it
// is the resolver's job.
package locator
