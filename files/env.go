package files

import (
	"os"
	"path/filepath"
)

// SearchPathEnv names the environment variable listing directories searched
// for imported manifests.
const SearchPathEnv = "FASTCODE_PATH"

func SearchPath() []string {
	var dirs []string
	for _, dir := range filepath.SplitList(os.Getenv(SearchPathEnv)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
