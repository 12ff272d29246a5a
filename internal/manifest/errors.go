package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrEmptyManifest indicates the manifest has no paths or patterns
	ErrEmptyManifest = errors.New("manifest must contain paths, include or exclude patterns")

	// ErrEmptyPath indicates a blank entry in paths
	ErrEmptyPath = errors.New("manifest path cannot be empty")

	// ErrInvalidFormat indicates the manifest file is not valid YAML or JSON
	ErrInvalidFormat = errors.New("manifest must be valid YAML or JSON")

	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")
)
