package export

import (
	"time"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// TimestampLayout is the timestamp suffix of artifact filenames
const TimestampLayout = "20060102_150405"

// Filename returns the artifact name for repo at ref exported at ts:
// <repo>[_<ref>]_<YYYYMMDD_HHMMSS>.<ext>. Slashes and every other character
// not allowed in a filename become dashes in ref.
// Without a repository name text exports are called "output" and
// archives "partial_repo".
func Filename(repo, ref string, ts time.Time, format domain.ExportFormat) string {
	name := repo
	if name == "" {
		name = "output"
		if format == domain.FormatArchive {
			name = "partial_repo"
		}
	}

	if ref != "" {
		name += "_" + utils.SanitizeFilename(ref)
	}

	return name + "_" + ts.Format(TimestampLayout) + "." + format.Extension()
}
