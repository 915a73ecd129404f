package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd == nil {
		t.Fatal("Root command should not be nil")
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()

	output := buf.String()

	if !strings.Contains(output, "wmanalyzer") {
		t.Errorf("Help text should contain 'wmanalyzer', got: %s", output)
	}

	if !strings.Contains(output, "analyze") {
		t.Errorf("Help text should list the analyze subcommand, got: %s", output)
	}

	if err != nil && !strings.Contains(err.Error(), "help requested") {
		t.Logf("Help command returned error (this is ok): %v", err)
	}
}

func TestRootCommandHasAnalyzeSubcommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "wmanalyzer" {
		t.Errorf("Expected Use to be 'wmanalyzer', got '%s'", cmd.Use)
	}

	found := false
	for _, sub := range cmd.Commands() {
		if sub.Name() == "analyze" {
			found = true
		}
	}
	if !found {
		t.Error("Root command should have an analyze subcommand")
	}
}
