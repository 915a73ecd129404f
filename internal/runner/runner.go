// Package runner owns the lifecycle of one analyzer run: result-tree
// reset, run lock, log sink, bundle iteration (directories, zips found
// inside them, and zip arguments), temp-directory cleanup and report
// generation.
package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bizflow/wmanalyzer/internal/archive"
	"github.com/bizflow/wmanalyzer/internal/config"
	"github.com/bizflow/wmanalyzer/internal/filelock"
	"github.com/bizflow/wmanalyzer/internal/logger"
	"github.com/bizflow/wmanalyzer/internal/models"
	"github.com/bizflow/wmanalyzer/internal/report"
	"github.com/bizflow/wmanalyzer/internal/scanlog"
	"github.com/bizflow/wmanalyzer/internal/scanner"
)

// lockFileName guards the result tree against a second concurrent run.
const lockFileName = ".wmanalyzer.lock"

// Runner executes one full analysis over a set of input paths.
type Runner struct {
	cfg     *config.Config
	console *logger.ConsoleLogger

	tempDirs []string
}

// New returns a Runner using the given configuration and console
// logger.
func New(cfg *config.Config, console *logger.ConsoleLogger) *Runner {
	return &Runner{cfg: cfg, console: console}
}

// Result summarizes a completed run.
type Result struct {
	RunID      string
	LogPath    string
	ReportPath string
	Placed     int
	Failures   int
}

// Run analyzes every input path (directory or zip archive) into the
// result tree. The tree is cleared first; every invocation is a full
// scan. Individual input failures are logged and skipped.
func (r *Runner) Run(inputs []string) (*Result, error) {
	if err := os.MkdirAll(r.cfg.ResultDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create result directory %s: %w", r.cfg.ResultDir, err)
	}

	lock := filelock.New(filepath.Join(r.cfg.ResultDir, lockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("result directory %s is in use by another run", r.cfg.ResultDir)
	}
	defer lock.Unlock()

	// Clear before the first bundle; every invocation is a full scan.
	if err := resetResultDir(r.cfg.ResultDir); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logName := fmt.Sprintf("REPORT_%s.LOG", time.Now().Format("20060102_150405"))
	sink, err := scanlog.New(filepath.Join(r.cfg.ResultDir, logName))
	if err != nil {
		return nil, err
	}
	defer sink.Close()
	defer r.cleanupTempDirs()

	sink.WriteMessage("Run " + runID)
	sink.WriteMessage("Results will be stored in: " + r.cfg.ResultDir)
	r.console.Infof("Run %s started, results in %s", runID, r.cfg.ResultDir)

	orch := scanner.New(r.cfg.ResultDir, sink)
	result := &Result{RunID: runID, LogPath: sink.Path()}

	for _, input := range inputs {
		r.processInput(orch, sink, input, result)
	}

	if r.cfg.Report {
		// The report reads placed copies, so the scans must be done.
		reportPath, err := report.NewGenerator(r.cfg.ResultDir).Generate()
		if err != nil {
			sink.WriteMessage("Error generating report: " + err.Error())
			r.console.Errorf("Report generation failed: %v", err)
			result.Failures++
		} else {
			result.ReportPath = reportPath
			r.console.Successf("HTML report generated at: %s", reportPath)
		}
	}

	r.console.Successf("Analysis complete. Log written to: %s", result.LogPath)
	return result, nil
}

func (r *Runner) processInput(orch *scanner.Orchestrator, sink *scanlog.Writer, input string, result *Result) {
	info, err := os.Stat(input)
	if err != nil {
		sink.WriteMessage("Error: the path does not exist: " + input)
		r.console.Errorf("Path does not exist: %s", input)
		result.Failures++
		return
	}

	switch {
	case info.IsDir():
		r.console.Infof("Processing directory: %s", input)
		r.scanBundle(orch, input, archive.SanitizeLabel(input), result)
		r.scanNestedZips(orch, sink, input, result)
	case strings.HasSuffix(strings.ToLower(input), ".zip"):
		r.scanZip(orch, sink, input, result)
	default:
		sink.WriteMessage("Skipping unsupported file: " + input)
		r.console.Warnf("Skipping unsupported file: %s", input)
	}
}

// scanNestedZips discovers archives inside a directory input and scans
// each as its own bundle.
func (r *Runner) scanNestedZips(orch *scanner.Orchestrator, sink *scanlog.Writer, dir string, result *Result) {
	zips, err := archive.FindZips(dir)
	if err != nil {
		sink.WriteMessage(fmt.Sprintf("Error scanning for zip files in %s: %v", dir, err))
		result.Failures++
		return
	}
	if len(zips) > 0 {
		r.console.Infof("Found %d zip file(s) in directory: %s", len(zips), dir)
	}
	for _, zipPath := range zips {
		r.scanZip(orch, sink, zipPath, result)
	}
}

func (r *Runner) scanZip(orch *scanner.Orchestrator, sink *scanlog.Writer, zipPath string, result *Result) {
	r.console.Infof("Processing zip file: %s", zipPath)

	extracted, err := archive.ExtractZip(zipPath)
	if err != nil {
		sink.WriteMessage(fmt.Sprintf("Error extracting zip file %s: %v", zipPath, err))
		r.console.Errorf("Failed to extract %s: %v", zipPath, err)
		result.Failures++
		return
	}
	r.tempDirs = append(r.tempDirs, extracted)

	r.scanBundle(orch, extracted, archive.SanitizeLabel(zipPath), result)
}

func (r *Runner) scanBundle(orch *scanner.Orchestrator, root, label string, result *Result) {
	summary := orch.ScanBundle(models.Bundle{Root: root, Label: label})
	result.Placed += placedTotal(summary)
	result.Failures += summary.Failures
	r.console.Debugf("Bundle %s: %d placed, %d skipped, %d failures",
		label, placedTotal(summary), summary.Skipped, summary.Failures)
}

func placedTotal(summary *models.ScanSummary) int {
	total := 0
	for _, count := range summary.Placed {
		total += count
	}
	return total
}

func (r *Runner) cleanupTempDirs() {
	for _, dir := range r.tempDirs {
		if err := os.RemoveAll(dir); err != nil {
			r.console.Warnf("Failed to clean up %s: %v", dir, err)
		}
	}
	r.tempDirs = nil
}

// resetResultDir clears the result tree, keeping the directory itself
// and the run lock, so every run starts from an empty tree.
func resetResultDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read result directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.Name() == lockFileName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to clear result directory: %w", err)
		}
	}
	return nil
}
