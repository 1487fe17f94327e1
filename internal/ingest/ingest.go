package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// screenshotExtensions are the file types accepted as charging-app
// screenshots. PDFs are included for apps that export session summaries.
var screenshotExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".heic": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".pdf":  true,
}

// CollectImages expands file and directory arguments into a concrete,
// deduplicated list of screenshot paths. Directories are walked recursively
// with files before subdirectories, both in case-insensitive name order, so
// the output order is deterministic across runs. A file argument with an
// unrecognized extension is an error; unrecognized files inside directories
// are silently skipped.
func CollectImages(inputs []string) ([]string, error) {
	var collected []string
	seen := make(map[string]bool)

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}
		if !seen[abs] {
			seen[abs] = true
			collected = append(collected, abs)
		}
		return nil
	}

	var collectDir func(dir string) error
	collectDir = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("reading directory %s: %w", dir, err)
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].IsDir() != entries[j].IsDir() {
				return !entries[i].IsDir()
			}
			return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
		})
		for _, entry := range entries {
			child := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if err := collectDir(child); err != nil {
					return err
				}
				continue
			}
			if screenshotExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				if err := add(child); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("input path not found: %s", input)
		}
		if info.IsDir() {
			if err := collectDir(input); err != nil {
				return nil, err
			}
			continue
		}
		if !screenshotExtensions[strings.ToLower(filepath.Ext(input))] {
			return nil, fmt.Errorf("unsupported file type: %s", input)
		}
		if err := add(input); err != nil {
			return nil, err
		}
	}
	return collected, nil
}
