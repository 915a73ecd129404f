package extract

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/bizflow/wmanalyzer/internal/models"
)

// RuleExtractor pulls query actions out of controller rules documents.
// A matching element is a target in the xengine namespace whose action
// attribute is exactly "Query" and whose subtree contains a params
// element with a param named sql_statement, at any depth.
type RuleExtractor struct{}

// NewRuleExtractor returns a RuleExtractor. The type is stateless and
// safe to reuse across documents.
func NewRuleExtractor() *RuleExtractor { return &RuleExtractor{} }

// ExtractFile parses the document at path and extracts matching query
// actions. Extraction is idempotent: re-running it over a placed copy
// yields the same record.
func (x *RuleExtractor) ExtractFile(path string) (models.ExtractionRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return models.ExtractionRecord{}, &models.ParseError{Path: path, Err: err}
	}
	return x.extract(doc, path)
}

// Extract parses document bytes and extracts matching query actions.
func (x *RuleExtractor) Extract(data []byte, path string) (models.ExtractionRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return models.ExtractionRecord{}, &models.ParseError{Path: path, Err: err}
	}
	return x.extract(doc, path)
}

func (x *RuleExtractor) extract(doc *etree.Document, path string) (models.ExtractionRecord, error) {
	root := doc.Root()
	if root == nil {
		return models.ExtractionRecord{}, &models.ParseError{
			Path: path,
			Err:  fmt.Errorf("document has no root element"),
		}
	}

	var record models.ExtractionRecord
	for _, target := range findAllNS(root, "target", XEngineNamespace) {
		if target.SelectAttrValue("action", "") != "Query" {
			continue
		}
		if !hasSQLStatementParam(target) {
			continue
		}
		text, err := serializeSubtree(target)
		if err != nil {
			return models.ExtractionRecord{}, &models.ParseError{Path: path, Err: err}
		}
		record.Blocks = append(record.Blocks, models.Block{Text: text})
	}
	return record, nil
}

// hasSQLStatementParam checks the structural containment condition:
// somewhere under target there is a params element holding a param whose
// name attribute is sql_statement. Depth between target, params and
// param does not matter.
func hasSQLStatementParam(target *etree.Element) bool {
	for _, params := range findAllNS(target, "params", XEngineNamespace) {
		if params == target {
			continue
		}
		for _, param := range findAllNS(params, "param", XEngineNamespace) {
			if param.SelectAttrValue("name", "") == "sql_statement" {
				return true
			}
		}
	}
	return false
}

// serializeSubtree renders the element and all its descendants as
// pretty-indented XML without a declaration.
func serializeSubtree(el *etree.Element) (string, error) {
	sub := etree.NewDocument()
	sub.SetRoot(el.Copy())
	sub.Indent(2)
	return sub.WriteToString()
}
