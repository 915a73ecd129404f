// Package copier places qualifying artifacts into the result tree with
// deterministic collision handling. Placements for one run are
// sequential; the suffix search checks the filesystem directly and has
// no cross-process reservation.
package copier

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bizflow/wmanalyzer/internal/models"
)

// Place copies sourceFile into destRoot/label (destRoot itself when
// label is empty), creating the subdirectory on demand. If the basename
// is already taken the stem is suffixed with _1, _2, ... until a free
// name is found, so an existing file is never overwritten.
func Place(sourceFile, destRoot, label string, kind models.ArtifactKind) (models.PlacedArtifact, error) {
	targetDir := destRoot
	if label != "" {
		targetDir = filepath.Join(destRoot, label)
	}
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return models.PlacedArtifact{}, &models.CopyError{
			Source: sourceFile,
			Err:    fmt.Errorf("create destination %s: %w", targetDir, err),
		}
	}

	dest := freePath(targetDir, filepath.Base(sourceFile))
	if err := copyContents(sourceFile, dest); err != nil {
		return models.PlacedArtifact{}, &models.CopyError{Source: sourceFile, Err: err}
	}

	return models.PlacedArtifact{Source: sourceFile, Dest: dest, Kind: kind}, nil
}

// freePath returns the first unoccupied path for name inside dir,
// inserting the lowest unused integer suffix before the extension when
// the plain name is taken.
func freePath(dir, name string) string {
	candidate := filepath.Join(dir, name)
	if !exists(candidate) {
		return candidate
	}

	stem := name
	ext := ""
	if dot := strings.LastIndex(name, "."); dot > 0 {
		stem = name[:dot]
		ext = name[dot:]
	}

	for i := 1; ; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// copyContents copies file content only; no metadata or timestamps.
func copyContents(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy bytes: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close target: %w", err)
	}
	return nil
}
