package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
)

// Stage names the user action an error interrupted
type Stage int

const (
	StageLoad Stage = iota
	StageText
	StageArchive
)

// Status messages shown after an action completes or starts
const (
	StatusFetchingStructure = "Fetching repository structure..."
	StatusLoaded            = `Repository structure loaded. Select files and click "Generate Text File" or "Download Zip".`
	StatusGeneratingText    = "Generating text file..."
	StatusGeneratingArchive = "Generating zip file..."
	StatusArchiveDone       = "Zip file generated and download started."
	StatusNothingToDownload = "Error: No content to download. Please generate the text file first."
)

var loadChecklist = []string{
	"The repository URL is correct and accessible.",
	"You have the necessary permissions to access the repository.",
	"If it's a private repository, you've provided a valid access token.",
	"The specified branch/tag and path (if any) exist in the repository.",
}

var exportChecklist = []string{
	"You have selected at least one file from the directory structure.",
	"Your access token (if provided) is valid and has the necessary permissions.",
	"You have a stable internet connection.",
	"The GitHub API is accessible and functioning normally.",
}

// FormatError renders err as the multi-line message shown for a failed
// action, followed by the checklist of likely causes
func FormatError(stage Stage, err error) string {
	var prefix string
	checklist := exportChecklist

	switch stage {
	case StageLoad:
		prefix = "Error fetching repository contents: "
		checklist = loadChecklist
	case StageArchive:
		prefix = "Error generating zip file: "
	default:
		prefix = "Error generating text file: "
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(errorMessage(err))
	b.WriteString("\n\nPlease ensure:\n")
	for i, item := range checklist {
		fmt.Fprintf(&b, "%d. %s", i+1, item)
		if i < len(checklist)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// StageFor returns the export stage of format
func StageFor(format domain.ExportFormat) Stage {
	if format == domain.FormatArchive {
		return StageArchive
	}
	return StageText
}

func errorMessage(err error) string {
	if errors.Is(err, domain.ErrEmptySelection) {
		return "No files selected"
	}
	return err.Error()
}

// WithWarnings appends non-fatal warnings to a status message
func WithWarnings(status string, warnings []string) string {
	if len(warnings) == 0 {
		return status
	}
	return status + "\n\n" + strings.Join(warnings, "\n")
}
