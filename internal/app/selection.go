package app

import (
	"fmt"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/manifest"
	"github.com/quantmind-br/repo2txt-go/internal/selection"
)

// SelectionOptions describes the files to export from a listing
type SelectionOptions struct {
	Paths    []string
	Include  []string
	Exclude  []string
	Manifest *manifest.Config
}

func (o SelectionOptions) empty() bool {
	return len(o.Paths) == 0 && len(o.Include) == 0 && o.Manifest == nil
}

// BuildSelection applies the manifest first and then the explicit paths
// and patterns. Without paths, includes or a manifest every file starts
// selected, so exclusions alone narrow the full listing.
func BuildSelection(listing *domain.Listing, opts SelectionOptions) (*selection.Model, error) {
	model := selection.NewModel(listing)

	if opts.empty() {
		model.SelectAll()
	}
	if opts.Manifest != nil {
		if err := model.Apply(opts.Manifest); err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
	}
	if err := model.Select(opts.Paths...); err != nil {
		return nil, err
	}
	for _, p := range opts.Include {
		if _, err := model.Include(p); err != nil {
			return nil, err
		}
	}
	for _, p := range opts.Exclude {
		if _, err := model.Exclude(p); err != nil {
			return nil, err
		}
	}
	return model, nil
}
