package media

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultTitle replaces names that are empty once tags and mentions are removed
const DefaultTitle = "未命名视频"

var (
	// a tag or mention runs until whitespace or the next marker.
	// \s is ASCII-only in RE2, so Unicode spaces (U+3000, U+00A0) are matched by \p{Z}.
	tagPattern        = regexp.MustCompile(`#[^#@\s\p{Z}]+`)
	mentionPattern    = regexp.MustCompile(`@[^#@\s\p{Z}]+`)
	whitespacePattern = regexp.MustCompile(`[\s\p{Z}]+`)
)

// CleanFileName derives a display title from a file name by dropping the
// extension, #tags and @mentions, and collapsing whitespace.
func CleanFileName(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	name = tagPattern.ReplaceAllString(name, "")
	name = mentionPattern.ReplaceAllString(name, "")
	name = strings.TrimSpace(whitespacePattern.ReplaceAllString(name, " "))

	if name == "" {
		return DefaultTitle
	}
	return name
}
