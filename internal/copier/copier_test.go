package copier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizflow/wmanalyzer/internal/models"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPlaceIntoLabelSubdir(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := t.TempDir()
	src := writeSource(t, srcDir, "app.js", "var x = 1;")

	placed, err := Place(src, destRoot, "order_export", models.KindScript)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destRoot, "order_export", "app.js"), placed.Dest)
	assert.Equal(t, models.KindScript, placed.Kind)

	content, err := os.ReadFile(placed.Dest)
	require.NoError(t, err)
	assert.Equal(t, "var x = 1;", string(content))
}

func TestPlaceEmptyLabelUsesRoot(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := t.TempDir()
	src := writeSource(t, srcDir, "page.html", "<html></html>")

	placed, err := Place(src, destRoot, "", models.KindPage)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destRoot, "page.html"), placed.Dest)
}

func TestPlaceNeverOverwrites(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := t.TempDir()

	first := writeSource(t, srcDir, "app.js", "first")
	seen := map[string]bool{}

	for i, content := range []string{"first", "second", "third", "fourth"} {
		src := first
		if i > 0 {
			sub := filepath.Join(srcDir, string(rune('a'+i)))
			require.NoError(t, os.MkdirAll(sub, 0755))
			src = writeSource(t, sub, "app.js", content)
		}

		placed, err := Place(src, destRoot, "label", models.KindScript)
		require.NoError(t, err)
		assert.False(t, seen[placed.Dest], "destination %s reused", placed.Dest)
		seen[placed.Dest] = true

		got, err := os.ReadFile(placed.Dest)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	}

	assert.Contains(t, seen, filepath.Join(destRoot, "label", "app.js"))
	assert.Contains(t, seen, filepath.Join(destRoot, "label", "app_1.js"))
	assert.Contains(t, seen, filepath.Join(destRoot, "label", "app_2.js"))
	assert.Contains(t, seen, filepath.Join(destRoot, "label", "app_3.js"))
}

func TestPlaceLowestFreeSuffix(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := t.TempDir()
	src := writeSource(t, srcDir, "app.js", "new")

	sub := filepath.Join(destRoot, "label")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "app.js"), []byte("old"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "app_2.js"), []byte("old"), 0644))

	placed, err := Place(src, destRoot, "label", models.KindScript)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sub, "app_1.js"), placed.Dest)
}

func TestPlaceNameWithoutExtension(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := t.TempDir()
	src := writeSource(t, srcDir, "README", "one")

	_, err := Place(src, destRoot, "", models.KindScript)
	require.NoError(t, err)

	placed, err := Place(src, destRoot, "", models.KindScript)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destRoot, "README_1"), placed.Dest)
}

func TestPlaceMissingSource(t *testing.T) {
	destRoot := t.TempDir()

	_, err := Place(filepath.Join(t.TempDir(), "missing.js"), destRoot, "", models.KindScript)
	require.Error(t, err)

	var copyErr *models.CopyError
	assert.ErrorAs(t, err, &copyErr)
}
