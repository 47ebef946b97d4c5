package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var workbookExts = map[string]bool{".xls": true, ".xlsx": true, ".csv": true}

// Expand resolves command-line arguments into workbook files. Each argument
// may be a file, a glob or a directory; directories contribute their
// spreadsheet files, one level deep.
func Expand(args ...string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files found matching pattern %s", arg)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				files = append(files, match)
				continue
			}

			entries, err := os.ReadDir(match)
			if err != nil {
				return nil, fmt.Errorf("error reading directory: %w", err)
			}
			var found []string
			for _, entry := range entries {
				if entry.IsDir() || !workbookExts[strings.ToLower(filepath.Ext(entry.Name()))] {
					continue
				}
				found = append(found, filepath.Join(match, entry.Name()))
			}
			sort.Strings(found)
			files = append(files, found...)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no workbooks found")
	}
	return files, nil
}
