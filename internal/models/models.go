// Package models defines the shared types passed between the scanner,
// matcher, extractors, copier and report generator.
package models

import "fmt"

// ArtifactKind identifies the category a discovered file belongs to.
// The set is closed: each kind has exactly one matcher rule set and,
// for the XML kinds, one extractor.
type ArtifactKind int

const (
	KindScript ArtifactKind = iota
	KindPage
	KindThumbnail
	KindRuleDoc
	KindBindingDoc
)

// String returns the human-readable kind name used in logs and reports.
func (k ArtifactKind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindPage:
		return "page"
	case KindThumbnail:
		return "thumbnail"
	case KindRuleDoc:
		return "rule-document"
	case KindBindingDoc:
		return "binding-document"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Bundle is one analyzed application export: a directory subtree plus a
// sanitized label naming its section in the result tree. Read-only for
// the duration of one scan pass.
type Bundle struct {
	Root  string
	Label string
}

// ExtractionRecord is the result of running a structural extractor over
// one document: self-contained text blocks in document order. A document
// that yields no blocks does not qualify for placement.
type ExtractionRecord struct {
	Blocks []Block
}

// Block is one matched structural element rendered as text. Marker is
// set when any of the element's binding paths contains the
// ProcessVariables substring; it is diagnostic only and never affects
// inclusion.
type Block struct {
	Text   string
	Marker bool
}

// Empty reports whether the record holds no blocks.
func (r ExtractionRecord) Empty() bool { return len(r.Blocks) == 0 }

// PlacedArtifact is the outcome of a collision-safe copy: the final
// destination path, unique within its subtree at placement time.
type PlacedArtifact struct {
	Source string
	Dest   string
	Kind   ArtifactKind
}

// ScanSummary counts per-kind placements for one bundle pass.
type ScanSummary struct {
	Placed   map[ArtifactKind]int
	Skipped  int
	Failures int
}

// NewScanSummary returns an empty summary ready for counting.
func NewScanSummary() *ScanSummary {
	return &ScanSummary{Placed: make(map[ArtifactKind]int)}
}

// ParseError wraps a malformed-XML failure. The document is skipped and
// the scan continues.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CopyError wraps a placement failure (subdirectory creation or byte
// copy). Placement of that one artifact is abandoned.
type CopyError struct {
	Source string
	Err    error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s: %v", e.Source, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// TraversalError wraps a failed sub-scan: the configured subpath is
// missing or unreadable. That sub-scan yields zero candidates; sibling
// sub-scans still run.
type TraversalError struct {
	Dir string
	Err error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("traverse %s: %v", e.Dir, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }
