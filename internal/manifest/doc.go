// Package manifest loads selection manifests: files that record which
// paths of a repository to export, so an export can be repeated.
//
// # Manifest Format
//
// Manifests can be written in YAML or JSON format:
//
//	url: https://github.com/acme/widgets/tree/main
//	paths:
//	  - src
//	  - README.md
//	include:
//	  - "**/*.go"
//	exclude:
//	  - "**/*_test.go"
//	options:
//	  format: zip
//	  keep_errors: true
//	  output: ./exports
//
// Paths select files and whole directories. Include and exclude take glob
// patterns where `*` stays within one path segment and `**` crosses them.
// A manifest with only exclude patterns starts from every file.
//
// # Usage
//
//	loader := manifest.NewLoader()
//	cfg, err := loader.Load("selection.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrEmptyManifest: manifest selects nothing
//   - ErrInvalidFormat: file is not valid YAML/JSON
//   - ErrFileNotFound: manifest file does not exist
//   - ErrUnsupportedExt: unsupported file extension
package manifest
