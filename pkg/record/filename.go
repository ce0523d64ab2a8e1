package record

import (
	"regexp"
	"strings"
)

// FileNameNormalizer strips known spectra-file extensions from file names.
type FileNameNormalizer struct {
	patterns []*regexp.Regexp
}

// NewFileNameNormalizer compiles case-insensitive matchers for extensions
// such as ".raw" or ".mzML". Order matters when one extension contains another.
func NewFileNameNormalizer(extensions []string) *FileNameNormalizer {
	n := &FileNameNormalizer{}
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		n.patterns = append(n.patterns, regexp.MustCompile("(?i)"+regexp.QuoteMeta(ext)))
	}
	return n
}

// Normalize removes every known extension and any leading directory.
// Names without a '.' are returned unchanged.
func (n *FileNameNormalizer) Normalize(name string) string {
	name = strings.TrimSpace(name)
	if !strings.Contains(name, ".") {
		return name
	}
	for _, re := range n.patterns {
		name = lastSegment(re.ReplaceAllString(name, ""))
	}
	return name
}

// NormalizeFileName is a one-off Normalize.
func NormalizeFileName(name string, extensions []string) string {
	return NewFileNameNormalizer(extensions).Normalize(name)
}

func lastSegment(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
