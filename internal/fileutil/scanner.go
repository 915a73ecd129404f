// Package fileutil provides error-tolerant directory traversal for the
// bundle scans. Results are sorted for deterministic output; non-fatal
// errors are collected so one unreadable subtree cannot abort a scan.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures a directory scan.
type ScanOptions struct {
	// Suffixes filters basenames case-insensitively (e.g. ".js",
	// "1024.png", "_bindings.xml"). Empty means every regular file.
	Suffixes []string
}

// ScanResult holds the files found by one scan plus any non-fatal
// errors encountered along the way.
type ScanResult struct {
	Files  []string
	Errors []error
}

// ScanDirectory walks dir recursively and returns all regular files
// whose basename ends with one of the configured suffixes. The root
// directory must exist; everything below it is best-effort.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	suffixes := make([]string, len(opts.Suffixes))
	for i, s := range opts.Suffixes {
		suffixes[i] = strings.ToLower(s)
	}

	result := &ScanResult{}
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if len(suffixes) > 0 && !matchesSuffix(d.Name(), suffixes) {
			return nil
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}
		result.Files = append(result.Files, absPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Files)
	return result, nil
}

// ListChildDirs returns the immediate child directories of dir, sorted
// by name.
func ListChildDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func matchesSuffix(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
