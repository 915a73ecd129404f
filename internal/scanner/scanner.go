// Package scanner drives the scan-classify-extract-place pipeline for
// one bundle at a time: three fixed-subpath scans (scripts, pages,
// thumbnails) plus dynamically located rule and binding directories.
//
// Every skip and failure is logged; no failure inside a bundle aborts
// the rest of the bundle's scans.
package scanner

import (
	"fmt"
	"path/filepath"

	"github.com/bizflow/wmanalyzer/internal/copier"
	"github.com/bizflow/wmanalyzer/internal/extract"
	"github.com/bizflow/wmanalyzer/internal/fileutil"
	"github.com/bizflow/wmanalyzer/internal/matcher"
	"github.com/bizflow/wmanalyzer/internal/models"
)

// Directory names located dynamically under each top-level child of a
// bundle root.
const (
	rulePoolDirName  = "logicsheet_pool"
	bindingsDirName  = "hyfinityBindings"
	scriptSubpath    = "webapps/js"
	pageSubpath      = "webapps"
	thumbnailSubpath = "webapps/thumbnails"
)

// LogSink records scan decisions. Implemented by scanlog.Writer.
type LogSink interface {
	WriteMessage(message string)
	WriteElement(element string)
}

// Orchestrator scans bundles into the result tree. Placements are
// sequential; running two orchestrators against the same result tree
// concurrently would race on collision suffixes and is unsupported.
type Orchestrator struct {
	resultRoot string
	log        LogSink
	rules      *extract.RuleExtractor
	bindings   *extract.BindingExtractor
}

// New returns an Orchestrator placing artifacts under resultRoot and
// recording decisions to log.
func New(resultRoot string, log LogSink) *Orchestrator {
	return &Orchestrator{
		resultRoot: resultRoot,
		log:        log,
		rules:      extract.NewRuleExtractor(),
		bindings:   extract.NewBindingExtractor(),
	}
}

// ScanBundle runs all six sub-scans for one bundle. Traversal errors on
// individual subpaths and parse failures on individual documents are
// logged and skipped.
func (o *Orchestrator) ScanBundle(bundle models.Bundle) *models.ScanSummary {
	summary := models.NewScanSummary()

	o.scanScripts(filepath.Join(bundle.Root, filepath.FromSlash(scriptSubpath)), bundle.Label, summary)
	o.scanPages(filepath.Join(bundle.Root, filepath.FromSlash(pageSubpath)), bundle.Label, summary)
	o.scanThumbnails(filepath.Join(bundle.Root, filepath.FromSlash(thumbnailSubpath)), bundle.Label, summary)

	o.scanDynamicDirs(bundle, rulePoolDirName, summary, o.scanRuleDocs)
	o.scanDynamicDirs(bundle, bindingsDirName, summary, o.scanBindingDocs)

	return summary
}

// scanDynamicDirs checks every immediate child directory of the bundle
// root for a subdirectory with the well-known name and dispatches scan
// into each one found. A child without the subdirectory is simply
// skipped.
func (o *Orchestrator) scanDynamicDirs(bundle models.Bundle, dirName string, summary *models.ScanSummary, scan func(string, string, *models.ScanSummary)) {
	children, err := fileutil.ListChildDirs(bundle.Root)
	if err != nil {
		o.log.WriteMessage(fmt.Sprintf("Error listing directories in %s: %v", bundle.Root, err))
		summary.Failures++
		return
	}

	for _, child := range children {
		target := filepath.Join(child, dirName)
		if !fileutil.IsDir(target) {
			continue
		}
		o.log.WriteMessage(fmt.Sprintf("Found %s in %s", dirName, filepath.Base(child)))
		scan(target, bundle.Label, summary)
	}
}

func (o *Orchestrator) scanScripts(dir, label string, summary *models.ScanSummary) {
	o.log.WriteMessage("JavaScript Files Report")

	files, ok := o.traverse(dir, "JS files", []string{".js"}, summary)
	if !ok {
		return
	}
	for _, file := range files {
		if !matcher.Qualifies(file, models.KindScript) {
			continue
		}
		o.log.WriteMessage("Found JS file: " + filepath.Base(file))
		o.log.WriteElement(file)
		o.place(file, label, models.KindScript, summary)
	}
}

func (o *Orchestrator) scanPages(dir, label string, summary *models.ScanSummary) {
	o.log.WriteMessage("HTML Files Report")

	files, ok := o.traverse(dir, "HTML files", []string{".html"}, summary)
	if !ok {
		return
	}
	for _, file := range files {
		if !matcher.Qualifies(file, models.KindPage) {
			continue
		}
		o.log.WriteMessage("Found HTML file: " + filepath.Base(file))
		o.log.WriteElement(file)
		o.place(file, label, models.KindPage, summary)
	}
}

func (o *Orchestrator) scanThumbnails(dir, label string, summary *models.ScanSummary) {
	o.log.WriteMessage("Thumbnail Files Report")

	files, ok := o.traverse(dir, "thumbnail files", []string{"1024.png"}, summary)
	if !ok {
		return
	}
	for _, file := range files {
		if !matcher.Qualifies(file, models.KindThumbnail) {
			continue
		}
		o.log.WriteMessage("Found thumbnail: " + filepath.Base(file))
		o.log.WriteElement(file)
		o.place(file, label, models.KindThumbnail, summary)
	}
}

func (o *Orchestrator) scanRuleDocs(dir, label string, summary *models.ScanSummary) {
	o.log.WriteMessage("Logicsheet Rules with Database Actions Report")

	files, ok := o.traverse(dir, "rules files", []string{"controller_rules.xml"}, summary)
	if !ok {
		return
	}
	for _, file := range files {
		if !matcher.Qualifies(file, models.KindRuleDoc) {
			continue
		}
		name := filepath.Base(file)
		o.log.WriteMessage("Processing rules file: " + name)

		record, err := o.rules.ExtractFile(file)
		if err != nil {
			o.log.WriteMessage(fmt.Sprintf("Error processing %s: %v", name, err))
			summary.Failures++
			continue
		}
		if record.Empty() {
			o.log.WriteMessage("No database actions found in " + name)
			summary.Skipped++
			continue
		}

		o.log.WriteMessage(fmt.Sprintf("Found %d database actions in %s", len(record.Blocks), name))
		for _, block := range record.Blocks {
			o.log.WriteElement(block.Text)
		}
		o.place(file, label, models.KindRuleDoc, summary)
	}
}

func (o *Orchestrator) scanBindingDocs(dir, label string, summary *models.ScanSummary) {
	o.log.WriteMessage("Hyfinity Bindings Mapping Report")

	files, ok := o.traverse(dir, "bindings files", []string{"_bindings.xml"}, summary)
	if !ok {
		return
	}
	for _, file := range files {
		if !matcher.Qualifies(file, models.KindBindingDoc) {
			continue
		}
		name := filepath.Base(file)
		o.log.WriteMessage("Processing bindings file: " + name)

		record, err := o.bindings.ExtractFile(file)
		if err != nil {
			o.log.WriteMessage(fmt.Sprintf("Error processing %s: %v", name, err))
			summary.Failures++
			continue
		}
		if record.Empty() {
			o.log.WriteMessage("No mappings found in " + name)
			summary.Skipped++
			continue
		}

		o.log.WriteMessage(fmt.Sprintf("Found %d mappings in %s", len(record.Blocks), name))
		for _, block := range record.Blocks {
			o.log.WriteElement(block.Text)
		}
		o.place(file, label, models.KindBindingDoc, summary)
	}
}

// traverse walks one configured subpath. A missing or unreadable
// subpath yields zero candidates and is logged; sibling sub-scans still
// run.
func (o *Orchestrator) traverse(dir, what string, suffixes []string, summary *models.ScanSummary) ([]string, bool) {
	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{Suffixes: suffixes})
	if err != nil {
		terr := &models.TraversalError{Dir: dir, Err: err}
		o.log.WriteMessage(fmt.Sprintf("Error scanning %s: %v", what, terr))
		summary.Failures++
		return nil, false
	}
	for _, scanErr := range result.Errors {
		o.log.WriteMessage(fmt.Sprintf("Error scanning %s: %v", what, scanErr))
	}
	return result.Files, true
}

func (o *Orchestrator) place(file, label string, kind models.ArtifactKind, summary *models.ScanSummary) {
	placed, err := copier.Place(file, o.resultRoot, label, kind)
	if err != nil {
		o.log.WriteMessage(fmt.Sprintf("Error copying %s: %v", filepath.Base(file), err))
		summary.Failures++
		return
	}
	o.log.WriteMessage("Copied to: " + placed.Dest)
	summary.Placed[kind]++
}
