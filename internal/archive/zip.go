// Package archive extracts exported bundle archives to temporary
// directories so they can be scanned like plain directory bundles.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bizflow/wmanalyzer/internal/fileutil"
)

// ExtractZip unpacks the archive at zipPath into a fresh temporary
// directory and returns its path. The caller owns the directory and is
// expected to remove it when the scan completes.
func ExtractZip(zipPath string) (string, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive %s: %w", zipPath, err)
	}
	defer reader.Close()

	tempDir, err := os.MkdirTemp("", "wmanalyzer_"+uuid.NewString()[:8]+"_")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	for _, entry := range reader.File {
		if err := extractEntry(entry, tempDir); err != nil {
			os.RemoveAll(tempDir)
			return "", fmt.Errorf("failed to extract %s: %w", entry.Name, err)
		}
	}

	return tempDir, nil
}

func extractEntry(entry *zip.File, destDir string) error {
	// Reject entries that would escape the extraction root.
	target := filepath.Join(destDir, filepath.FromSlash(entry.Name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal entry path %q", entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// FindZips returns every .zip file under dir, recursively, sorted.
func FindZips(dir string) ([]string, error) {
	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{Suffixes: []string{".zip"}})
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// SanitizeLabel derives a result-tree label from a bundle path: the
// base name with any .zip extension stripped and every character
// outside [A-Za-z0-9.-] replaced with an underscore.
func SanitizeLabel(path string) string {
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), ".zip") {
		name = name[:len(name)-len(".zip")]
	}

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
