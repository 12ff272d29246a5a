package utils

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// invalidFilenameChars are rejected in artifact names on any platform
const invalidFilenameChars = `<>:"|?*\/`

// isReservedName reports whether base is a device name Windows refuses
// as a filename (CON, PRN, AUX, NUL, COM1-9, LPT1-9)
func isReservedName(base string) bool {
	switch base {
	case "CON", "PRN", "AUX", "NUL":
		return true
	}
	if len(base) == 4 && (strings.HasPrefix(base, "COM") || strings.HasPrefix(base, "LPT")) {
		return base[3] >= '1' && base[3] <= '9'
	}
	return false
}

// IsValidFilename reports whether name can be written as a single file in
// the output directory
func IsValidFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, invalidFilenameChars) {
		return false
	}

	upper := strings.ToUpper(name)
	if isReservedName(strings.TrimSuffix(upper, filepath.Ext(upper))) {
		return false
	}

	return strings.IndexFunc(name, unicode.IsControl) < 0
}

// SanitizeFilename replaces every character IsValidFilename rejects with a
// dash, so the result can be embedded in an artifact name
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(invalidFilenameChars, r) {
			return '-'
		}
		return r
	}, name)
}

// EnsureDir creates the parent directory of the file at path
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
