// Package matcher decides whether a discovered file qualifies as an
// artifact of a given kind. All predicates are pure functions of the
// candidate's path and basename; exclusion sets are process-wide
// constants initialized once and never mutated.
package matcher

import (
	"path/filepath"
	"strings"

	"github.com/bizflow/wmanalyzer/internal/models"
)

// scriptExclusions lists library and utility scripts shipped with every
// WebMaker export. They carry no application-specific logic and would
// drown the real scripts in the report.
var scriptExclusions = map[string]bool{
	"basicwihactionclient.js": true,
	"bizflowFunctions.js":     true,
	"BooleanValidator.js":     true,
	"CalendarPopup.js":        true,
	"combobox.js":             true,
	"date.js":                 true,
	"DateValidator.js":        true,
	"DisplayMessages.js":      true,
	"DisplayUtils.js":         true,
	"engineer_review.js":      true,
	"ErrorDisplay.js":         true,
	"FMActions.js":            true,
	"FormValidator.js":        true,
	"jquery-ui.min.js":        true,
	"jquery.min.js":           true,
	"NumberValidator.js":      true,
	"PIE_uncompressed.js":     true,
	"PIE.js":                  true,
	"StringValidator.js":      true,
	"ValidationError.js":      true,
	"ValueConverter.js":       true,
	"editabletable.js":        true,
	"checkbox_switch.js":      true,
}

// pageExclusions lists template pages generated by the designer itself.
var pageExclusions = map[string]bool{
	"Page_preview_BizFlowEntry.html": true,
}

// scriptPrefixExclusions and scriptSuffixExclusions are matched
// case-insensitively against the basename.
var (
	scriptPrefixExclusions = []string{"test", "sample", "angular"}
	scriptSuffixExclusions = []string{"min.js", "debug.js"}
)

// excludedRuleDoc is the one generated rules file that always contains a
// query action but never application SQL.
const excludedRuleDoc = "GetWICDetails_Controller_rules.xml"

// Qualifies reports whether path belongs in the output tree as an
// artifact of the given kind. For rule and binding documents this is
// the name-level check only; content-level qualification (non-empty
// extraction) is the scanner's responsibility.
func Qualifies(path string, kind models.ArtifactKind) bool {
	switch kind {
	case models.KindScript:
		return qualifiesScript(path)
	case models.KindPage:
		return qualifiesPage(path)
	case models.KindThumbnail:
		return qualifiesThumbnail(path)
	case models.KindRuleDoc:
		return qualifiesRuleDoc(path)
	case models.KindBindingDoc:
		return qualifiesBindingDoc(path)
	default:
		return false
	}
}

func qualifiesScript(path string) bool {
	name := filepath.Base(path)
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".js") {
		return false
	}
	if scriptExclusions[name] {
		return false
	}
	if strings.Contains(path, "PIE") {
		return false
	}
	for _, prefix := range scriptPrefixExclusions {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	for _, suffix := range scriptSuffixExclusions {
		if strings.HasSuffix(lower, suffix) {
			return false
		}
	}
	for _, segment := range splitSegments(path) {
		if strings.HasPrefix(strings.ToLower(segment), "angular") {
			return false
		}
	}
	return true
}

func qualifiesPage(path string) bool {
	name := filepath.Base(path)
	if !strings.HasSuffix(strings.ToLower(name), ".html") {
		return false
	}
	if strings.HasSuffix(name, "_BizFlowEntry.html") {
		return false
	}
	for _, segment := range splitSegments(filepath.Dir(path)) {
		if segment == "theme" {
			return false
		}
	}
	return !pageExclusions[name]
}

func qualifiesThumbnail(path string) bool {
	name := filepath.Base(path)
	if !strings.HasSuffix(strings.ToLower(name), "1024.png") {
		return false
	}
	return !strings.HasPrefix(name, "BizFlowEntry")
}

func qualifiesRuleDoc(path string) bool {
	name := filepath.Base(path)
	if !strings.HasSuffix(strings.ToLower(name), "controller_rules.xml") {
		return false
	}
	return name != excludedRuleDoc
}

func qualifiesBindingDoc(path string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), "_bindings.xml")
}

func splitSegments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == filepath.Separator || r == '/'
	})
}
