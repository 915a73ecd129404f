package extract

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/bizflow/wmanalyzer/internal/models"
)

// Marker is the substring that flags a binding path as referencing
// workflow process state. It only affects diagnostic emphasis, never
// inclusion.
const Marker = "ProcessVariables"

// bindingField is one of the optional XPath fields read off a binding
// element, in the fixed order they are rendered.
type bindingField struct {
	label string
	tag   string
}

var bindingFields = []bindingField{
	{"Form", "xform_xpath"},
	{"Transform", "transform_xpath"},
	{"Value", "value_xpath"},
	{"Text", "text_xpath"},
	{"Repeat", "repeat_xpath"},
}

// BindingExtractor pulls per-element mapping records out of hyfinity
// binding documents.
type BindingExtractor struct{}

// NewBindingExtractor returns a BindingExtractor. The type is stateless
// and safe to reuse across documents.
func NewBindingExtractor() *BindingExtractor { return &BindingExtractor{} }

// ExtractFile parses the document at path and builds one record block
// per binding element.
func (x *BindingExtractor) ExtractFile(path string) (models.ExtractionRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return models.ExtractionRecord{}, &models.ParseError{Path: path, Err: err}
	}
	return x.extract(doc, path)
}

// Extract parses document bytes and builds one record block per binding
// element.
func (x *BindingExtractor) Extract(data []byte, path string) (models.ExtractionRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return models.ExtractionRecord{}, &models.ParseError{Path: path, Err: err}
	}
	return x.extract(doc, path)
}

func (x *BindingExtractor) extract(doc *etree.Document, path string) (models.ExtractionRecord, error) {
	root := doc.Root()
	if root == nil {
		return models.ExtractionRecord{}, &models.ParseError{
			Path: path,
			Err:  fmt.Errorf("document has no root element"),
		}
	}

	var record models.ExtractionRecord
	for _, el := range findAll(root, "element", FormMakerNamespace) {
		record.Blocks = append(record.Blocks, buildBlock(el))
	}
	return record, nil
}

// buildBlock renders one binding element as text. Every element yields
// a block, even when all five path fields are absent; mapping-less
// elements are deliberately kept visible.
func buildBlock(el *etree.Element) models.Block {
	name := el.SelectAttrValue("name", "")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Element: %s\n", name)

	marker := false
	for _, field := range bindingFields {
		value, present := lookupField(el, field.tag)
		if !present || value == "" {
			continue
		}
		fmt.Fprintf(&sb, "  %s XPath: %s\n", field.label, value)
		if strings.Contains(value, Marker) {
			marker = true
		}
	}

	return models.Block{Text: sb.String(), Marker: marker}
}

// lookupField reads one optional field. xform_xpath lives one level
// deeper, inside the element's first action child; the other four are
// looked up directly under the element. Every stage tries the formmaker
// namespace first, then falls back to no-namespace lookup.
func lookupField(el *etree.Element, tag string) (string, bool) {
	if tag == "xform_xpath" {
		var action *etree.Element
		for _, a := range findAll(el, "action", FormMakerNamespace) {
			if a != el {
				action = a
				break
			}
		}
		if action == nil {
			return "", false
		}
		return firstText(action, tag, FormMakerNamespace)
	}
	return firstText(el, tag, FormMakerNamespace)
}
