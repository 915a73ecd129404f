package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeBundleFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestAnalyzeCommandRequiresArgs(t *testing.T) {
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"analyze"})

	if err := cmd.Execute(); err == nil {
		t.Error("analyze without arguments should fail")
	}
}

func TestAnalyzeCommandScansBundle(t *testing.T) {
	work := t.TempDir()
	bundle := filepath.Join(work, "order_app")
	writeBundleFile(t, bundle, "webapps/js/app.js", "var a = 1;")
	writeBundleFile(t, bundle, "webapps/Order_View.html", "<html><title>Order</title></html>")
	if err := os.MkdirAll(filepath.Join(bundle, "webapps", "thumbnails"), 0755); err != nil {
		t.Fatal(err)
	}

	resultDir := filepath.Join(work, "results")

	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"analyze", "--result-dir", resultDir, "--no-report", bundle})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(resultDir, "order_app", "app.js")); err != nil {
		t.Errorf("expected script in result dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(resultDir, "order_app", "Order_View.html")); err != nil {
		t.Errorf("expected page in result dir: %v", err)
	}
}

func TestAnalyzeCommandConfigFlagOverride(t *testing.T) {
	work := t.TempDir()
	bundle := filepath.Join(work, "app")
	writeBundleFile(t, bundle, "webapps/js/main.js", "var b = 2;")

	cfgPath := filepath.Join(work, "custom.yaml")
	cfgResultDir := filepath.Join(work, "from_config")
	if err := os.WriteFile(cfgPath, []byte("result_dir: "+cfgResultDir+"\nreport: false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"analyze", "--config", cfgPath, bundle})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfgResultDir, "app", "main.js")); err != nil {
		t.Errorf("expected script under config result dir: %v", err)
	}
}

func TestAnalyzeCommandBadConfig(t *testing.T) {
	work := t.TempDir()
	cfgPath := filepath.Join(work, "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte(":::not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"analyze", "--config", cfgPath, work})

	if err := cmd.Execute(); err == nil {
		t.Error("malformed config should fail the command")
	}
}
