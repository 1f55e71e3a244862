package corpus

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnvTagPath names the environment variable holding extra vocabulary
// locations, delimited by the platform path-list separator. Each entry is a
// file or a directory scanned non-recursively.
const EnvTagPath = "PROMPTKIT_TAG_PATH"

// eligibleExts are the file extensions the loader understands.
var eligibleExts = map[string]bool{
	".csv":  true,
	".json": true,
	".yaml": true,
	".yml":  true,
	".txt":  true,
	".gz":   true,
}

// DefaultSources returns the ordered source list: the bundled vocabulary
// first (if non-empty), then entries from EnvTagPath. The bundled source
// coming first makes it win canonical fields on collisions.
func DefaultSources(bundled string) []string {
	var sources []string
	if bundled != "" {
		sources = append(sources, bundled)
	}
	return append(sources, EnvSources()...)
}

// EnvSources parses EnvTagPath into individual source paths.
func EnvSources() []string {
	value := os.Getenv(EnvTagPath)
	if value == "" {
		return nil
	}
	var sources []string
	for _, entry := range strings.Split(value, string(os.PathListSeparator)) {
		if entry = strings.TrimSpace(entry); entry != "" {
			sources = append(sources, entry)
		}
	}
	return sources
}

// expandSource resolves a source path to the files it contributes.
// Directories are scanned one level deep for eligible extensions, sorted by
// name for a stable merge order.
func expandSource(src string, warnings *[]Warning) []string {
	info, err := os.Stat(src)
	if err != nil {
		*warnings = append(*warnings, Warning{
			Kind:   WarnSourceUnreadable,
			Source: src,
			Detail: err.Error(),
		})
		return nil
	}

	if !info.IsDir() {
		return []string{src}
	}

	dirents, err := os.ReadDir(src)
	if err != nil {
		*warnings = append(*warnings, Warning{
			Kind:   WarnSourceUnreadable,
			Source: src,
			Detail: err.Error(),
		})
		return nil
	}

	var files []string
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		if eligibleExts[strings.ToLower(filepath.Ext(d.Name()))] {
			files = append(files, filepath.Join(src, d.Name()))
		}
	}
	sort.Strings(files)
	return files
}
