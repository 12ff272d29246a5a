package utils

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// DescFetching labels the per-file content fetch
const DescFetching = "Fetching"

// NewProgressBar creates a consistently styled progress bar on stderr, so
// an export streamed to stdout stays clean.
//
// Parameters:
//   - total: Total number of items. Use -1 for unknown totals (indeterminate/spinner mode).
//   - description: Text description to show before the progress bar (e.g., DescFetching).
//
// Example:
//
//	bar := utils.NewProgressBar(len(files), utils.DescFetching)
//	defer bar.Finish()
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}
