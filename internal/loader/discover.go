package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/trafficgo/internal/fsutil"
)

// Extensions lists the scenario file extensions New understands.
var Extensions = []string{".json", ".yaml", ".yml", ".hcl"}

// ErrNoScenarios is returned when a directory holds no scenario files.
var ErrNoScenarios = errors.New("no scenario files found")

// Discover resolves path into scenario files. A file is returned as is; a
// directory is searched recursively for files with a known extension.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, Extensions...)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoScenarios)
	}
	return files, nil
}
