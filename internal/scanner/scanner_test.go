package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizflow/wmanalyzer/internal/models"
)

// memorySink collects log output for assertions.
type memorySink struct {
	messages []string
	elements []string
}

func (s *memorySink) WriteMessage(m string) { s.messages = append(s.messages, m) }
func (s *memorySink) WriteElement(e string) { s.elements = append(s.elements, e) }

func (s *memorySink) hasMessage(substr string) bool {
	for _, m := range s.messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const rulesWithQuery = `<hy:rules xmlns:hy="http://www.hyfinity.com/xengine">
  <hy:target action="Query">
    <hy:params><hy:param name="sql_statement">SELECT * FROM ORDERS</hy:param></hy:params>
  </hy:target>
</hy:rules>`

const rulesWithoutQuery = `<hy:rules xmlns:hy="http://www.hyfinity.com/xengine">
  <hy:target action="Update">
    <hy:params><hy:param name="sql_statement">UPDATE X</hy:param></hy:params>
  </hy:target>
</hy:rules>`

const bindingsDoc = `<fm:bindings xmlns:fm="http://www.hyfinity.com/formmaker">
  <fm:element name="assignee">
    <fm:value_xpath>/ProcessVariables/AssignedTo</fm:value_xpath>
  </fm:element>
</fm:bindings>`

func TestScanBundleScripts(t *testing.T) {
	bundle := t.TempDir()
	resultRoot := t.TempDir()
	writeFile(t, bundle, "webapps/js/app.js", "var a;")
	writeFile(t, bundle, "webapps/js/jquery.min.js", "lib")
	writeFile(t, bundle, "webapps/js/angular/foo.js", "lib")

	sink := &memorySink{}
	summary := New(resultRoot, sink).ScanBundle(models.Bundle{Root: bundle, Label: "app1"})

	assert.Equal(t, 1, summary.Placed[models.KindScript])
	assert.True(t, sink.hasMessage("Found JS file: app.js"))
	assert.False(t, sink.hasMessage("jquery.min.js"))

	_, err := os.Stat(filepath.Join(resultRoot, "app1", "app.js"))
	assert.NoError(t, err)
}

func TestScanBundleCollisionAcrossBundles(t *testing.T) {
	resultRoot := t.TempDir()

	for i := 0; i < 2; i++ {
		bundle := t.TempDir()
		writeFile(t, bundle, "webapps/js/app.js", "var a;")
		sink := &memorySink{}
		New(resultRoot, sink).ScanBundle(models.Bundle{Root: bundle, Label: "same_label"})
	}

	_, err := os.Stat(filepath.Join(resultRoot, "same_label", "app.js"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(resultRoot, "same_label", "app_1.js"))
	assert.NoError(t, err)
}

func TestScanBundlePagesAndThumbnails(t *testing.T) {
	bundle := t.TempDir()
	resultRoot := t.TempDir()
	writeFile(t, bundle, "webapps/OrderForm.html", "<html/>")
	writeFile(t, bundle, "webapps/Order_BizFlowEntry.html", "<html/>")
	writeFile(t, bundle, "webapps/theme/header.html", "<html/>")
	writeFile(t, bundle, "webapps/thumbnails/OrderForm_1024.png", "png")
	writeFile(t, bundle, "webapps/thumbnails/BizFlowEntry_1024.png", "png")

	sink := &memorySink{}
	summary := New(resultRoot, sink).ScanBundle(models.Bundle{Root: bundle, Label: "app1"})

	assert.Equal(t, 1, summary.Placed[models.KindPage])
	assert.Equal(t, 1, summary.Placed[models.KindThumbnail])
}

func TestScanBundleRuleDocs(t *testing.T) {
	bundle := t.TempDir()
	resultRoot := t.TempDir()
	writeFile(t, bundle, "orderapp/logicsheet_pool/Order_Controller_rules.xml", rulesWithQuery)
	writeFile(t, bundle, "orderapp/logicsheet_pool/Nav_Controller_rules.xml", rulesWithoutQuery)

	sink := &memorySink{}
	summary := New(resultRoot, sink).ScanBundle(models.Bundle{Root: bundle, Label: "app1"})

	assert.Equal(t, 1, summary.Placed[models.KindRuleDoc])
	assert.Equal(t, 1, summary.Skipped)
	assert.True(t, sink.hasMessage("Found logicsheet_pool in orderapp"))
	assert.True(t, sink.hasMessage("Found 1 database actions in Order_Controller_rules.xml"))
	assert.True(t, sink.hasMessage("No database actions found in Nav_Controller_rules.xml"))

	// The zero-record document must not be copied.
	_, err := os.Stat(filepath.Join(resultRoot, "app1", "Nav_Controller_rules.xml"))
	assert.True(t, os.IsNotExist(err))

	// Extracted blocks are mirrored into the log.
	found := false
	for _, e := range sink.elements {
		if strings.Contains(e, "SELECT * FROM ORDERS") {
			found = true
		}
	}
	assert.True(t, found, "extracted action not logged")
}

func TestScanBundleBindingDocs(t *testing.T) {
	bundle := t.TempDir()
	resultRoot := t.TempDir()
	writeFile(t, bundle, "orderapp/hyfinityBindings/Order_bindings.xml", bindingsDoc)
	writeFile(t, bundle, "orderapp/hyfinityBindings/Empty_bindings.xml", "<bindings/>")

	sink := &memorySink{}
	summary := New(resultRoot, sink).ScanBundle(models.Bundle{Root: bundle, Label: "app1"})

	assert.Equal(t, 1, summary.Placed[models.KindBindingDoc])
	assert.True(t, sink.hasMessage("Found 1 mappings in Order_bindings.xml"))
	assert.True(t, sink.hasMessage("No mappings found in Empty_bindings.xml"))
}

func TestScanBundleMalformedDocContinues(t *testing.T) {
	bundle := t.TempDir()
	resultRoot := t.TempDir()
	writeFile(t, bundle, "a/logicsheet_pool/Broken_Controller_rules.xml", "<rules><unclosed")
	writeFile(t, bundle, "a/logicsheet_pool/Order_Controller_rules.xml", rulesWithQuery)

	sink := &memorySink{}
	summary := New(resultRoot, sink).ScanBundle(models.Bundle{Root: bundle, Label: "app1"})

	assert.Equal(t, 1, summary.Placed[models.KindRuleDoc])
	assert.Equal(t, 1, summary.Failures)
	assert.True(t, sink.hasMessage("Error processing Broken_Controller_rules.xml"))
}

func TestScanBundleMissingSubpaths(t *testing.T) {
	bundle := t.TempDir()
	resultRoot := t.TempDir()
	// Bundle has only a bindings dir; webapps/* subpaths are absent.
	writeFile(t, bundle, "orderapp/hyfinityBindings/Order_bindings.xml", bindingsDoc)

	sink := &memorySink{}
	summary := New(resultRoot, sink).ScanBundle(models.Bundle{Root: bundle, Label: "app1"})

	// The three fixed sub-scans failed but the dynamic scan still ran.
	assert.Equal(t, 3, summary.Failures)
	assert.Equal(t, 1, summary.Placed[models.KindBindingDoc])
	assert.True(t, sink.hasMessage("Error scanning JS files"))
}

func TestScanBundleChildWithoutWellKnownDirsSkipped(t *testing.T) {
	bundle := t.TempDir()
	resultRoot := t.TempDir()
	writeFile(t, bundle, "webapps/js/app.js", "var a;")
	require.NoError(t, os.MkdirAll(filepath.Join(bundle, "plain_child"), 0755))

	sink := &memorySink{}
	summary := New(resultRoot, sink).ScanBundle(models.Bundle{Root: bundle, Label: "app1"})

	assert.Zero(t, summary.Placed[models.KindRuleDoc])
	assert.Zero(t, summary.Placed[models.KindBindingDoc])
	assert.False(t, sink.hasMessage("Found logicsheet_pool"))
}

func TestScanBundleEmptyLabelPlacesAtRoot(t *testing.T) {
	bundle := t.TempDir()
	resultRoot := t.TempDir()
	writeFile(t, bundle, "webapps/js/app.js", "var a;")

	sink := &memorySink{}
	New(resultRoot, sink).ScanBundle(models.Bundle{Root: bundle})

	_, err := os.Stat(filepath.Join(resultRoot, "app.js"))
	assert.NoError(t, err)
}
