// Package report renders an HTML report over the populated result tree:
// one section per result subdirectory, files grouped by kind, with
// rule and binding documents re-extracted for display. Extraction is
// idempotent, so re-running it over the placed copies is safe.
package report

import (
	"fmt"
	"html"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"

	"github.com/bizflow/wmanalyzer/internal/extract"
)

// Generator builds the report for one result tree.
type Generator struct {
	resultDir string
	rules     *extract.RuleExtractor
	bindings  *extract.BindingExtractor
}

// NewGenerator returns a Generator reading from resultDir.
func NewGenerator(resultDir string) *Generator {
	return &Generator{
		resultDir: resultDir,
		rules:     extract.NewRuleExtractor(),
		bindings:  extract.NewBindingExtractor(),
	}
}

type reportData struct {
	Date     string
	Sections []section
	SQL      []sqlQuery
}

type section struct {
	Index       string
	Name        string
	Export      bool
	Thumbnails  []thumbnail
	RuleDocs    []document
	BindingDocs []document
	Scripts     []fileEntry
}

type thumbnail struct {
	Image     string
	PageLink  string
	PageTitle string
}

type document struct {
	Name    string
	RelPath string
	Blocks  []template.HTML
	Empty   bool
}

type fileEntry struct {
	Name    string
	RelPath string
}

type sqlQuery struct {
	File   string
	RuleID string
	SQL    string
}

// Generate writes REPORT_<timestamp>.html into the result directory and
// returns its path.
func (g *Generator) Generate() (string, error) {
	data, err := g.collect()
	if err != nil {
		return "", err
	}

	reportPath := filepath.Join(g.resultDir,
		fmt.Sprintf("REPORT_%s.html", time.Now().Format("20060102_150405")))

	out, err := os.Create(reportPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer out.Close()

	if err := reportTemplate.Execute(out, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return reportPath, nil
}

func (g *Generator) collect() (*reportData, error) {
	entries, err := os.ReadDir(g.resultDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read result directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	data := &reportData{Date: time.Now().Format("2006/01/02")}
	for i, name := range names {
		sec, err := g.buildSection(name, i+1)
		if err != nil {
			return nil, err
		}
		data.SQL = append(data.SQL, g.collectSQL(name)...)
		data.Sections = append(data.Sections, sec)
	}
	return data, nil
}

func (g *Generator) buildSection(name string, index int) (section, error) {
	sec := section{Name: name, Export: strings.HasSuffix(name, "_export")}
	sec.Index = fmt.Sprintf("%d", index)
	if sec.Export {
		sec.Index = fmt.Sprintf("E%d", index)
	}

	dir := filepath.Join(g.resultDir, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return sec, fmt.Errorf("failed to read section %s: %w", name, err)
	}

	pages := map[string]string{} // base name -> file name
	var pngs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fname := entry.Name()
		lower := strings.ToLower(fname)
		switch {
		case strings.HasSuffix(lower, ".png"):
			pngs = append(pngs, fname)
		case strings.HasSuffix(lower, ".html"):
			pages[baseName(fname)] = fname
		case strings.HasSuffix(lower, "controller_rules.xml"):
			sec.RuleDocs = append(sec.RuleDocs, g.ruleDocument(name, fname))
		case strings.HasSuffix(lower, "_bindings.xml"):
			sec.BindingDocs = append(sec.BindingDocs, g.bindingDocument(name, fname))
		case strings.HasSuffix(lower, ".js"):
			sec.Scripts = append(sec.Scripts, fileEntry{Name: fname, RelPath: name + "/" + fname})
		}
	}

	for _, png := range pngs {
		thumb := thumbnail{Image: name + "/" + png}
		if page, ok := matchPage(baseName(png), pages); ok {
			thumb.PageLink = name + "/" + page
			thumb.PageTitle = pageTitle(filepath.Join(dir, page), page)
		}
		sec.Thumbnails = append(sec.Thumbnails, thumb)
	}
	return sec, nil
}

// ruleDocument re-extracts a placed rules file for display, with SQL
// statements highlighted. A document that cannot be parsed is shown as
// empty rather than failing the whole report.
func (g *Generator) ruleDocument(sectionName, fname string) document {
	doc := document{Name: fname, RelPath: sectionName + "/" + fname}
	record, err := g.rules.ExtractFile(filepath.Join(g.resultDir, sectionName, fname))
	if err != nil || record.Empty() {
		doc.Empty = true
		return doc
	}
	for _, block := range record.Blocks {
		doc.Blocks = append(doc.Blocks, highlightSQL(block.Text))
	}
	return doc
}

func (g *Generator) bindingDocument(sectionName, fname string) document {
	doc := document{Name: fname, RelPath: sectionName + "/" + fname}
	record, err := g.bindings.ExtractFile(filepath.Join(g.resultDir, sectionName, fname))
	if err != nil || record.Empty() {
		doc.Empty = true
		return doc
	}
	for _, block := range record.Blocks {
		doc.Blocks = append(doc.Blocks, highlightMarker(block.Text))
	}
	return doc
}

// collectSQL gathers every sql_statement parameter in the section's
// rule documents together with the id of the enclosing rule, for the
// appendix.
func (g *Generator) collectSQL(sectionName string) []sqlQuery {
	dir := filepath.Join(g.resultDir, sectionName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var queries []sqlQuery
	for _, entry := range entries {
		fname := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(fname), "controller_rules.xml") {
			continue
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromFile(filepath.Join(dir, fname)); err != nil {
			continue
		}
		root := doc.Root()
		if root == nil {
			continue
		}
		for _, param := range elementsNamed(root, "param") {
			if param.SelectAttrValue("name", "") != "sql_statement" {
				continue
			}
			queries = append(queries, sqlQuery{
				File:   fname,
				RuleID: enclosingRuleID(param),
				SQL:    param.Text(),
			})
		}
	}
	return queries
}

// elementsNamed returns every descendant with the given local name,
// regardless of namespace, in document order.
func elementsNamed(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	if el.Tag == local {
		out = append(out, el)
	}
	for _, child := range el.ChildElements() {
		out = append(out, elementsNamed(child, local)...)
	}
	return out
}

func enclosingRuleID(el *etree.Element) string {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag == "rule" {
			if id := p.SelectAttrValue("id", ""); id != "" {
				return id
			}
			return "Unknown"
		}
	}
	return "Unknown"
}

// pageTitle reads the page's <title> for the thumbnail caption, falling
// back to the file name.
func pageTitle(path, fallback string) string {
	f, err := os.Open(path)
	if err != nil {
		return fallback
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return fallback
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return fallback
	}
	return title
}

var trailingNumber = regexp.MustCompile(`_\d+$`)

// baseName normalizes a file name for thumbnail-to-page matching:
// lowercase, extension and numeric suffix stripped, designer prefix
// removed.
func baseName(fname string) string {
	name := strings.ToLower(fname)
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		name = name[:dot]
	}
	name = trailingNumber.ReplaceAllString(name, "")
	return strings.TrimPrefix(name, "page_preview_")
}

// matchPage finds the page whose base name matches the thumbnail's,
// exactly or by containment in either direction.
func matchPage(base string, pages map[string]string) (string, bool) {
	if page, ok := pages[base]; ok {
		return page, true
	}
	keys := make([]string, 0, len(pages))
	for k := range pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(k, base) || strings.Contains(base, k) {
			return pages[k], true
		}
	}
	return "", false
}

var sqlParam = regexp.MustCompile(`(?s)(<hy:param\s+name="sql_statement"[^>]*>)(.*?)(</hy:param>)`)

// highlightSQL escapes an extracted rule block and wraps the content of
// sql_statement parameters in a highlight span.
func highlightSQL(block string) template.HTML {
	const startToken = "\x00SQL_START\x00"
	const endToken = "\x00SQL_END\x00"

	tokenized := sqlParam.ReplaceAllString(block, "${1}"+startToken+"${2}"+endToken+"${3}")
	escaped := html.EscapeString(tokenized)
	escaped = strings.ReplaceAll(escaped, startToken, `<span class="sql-highlight">`)
	escaped = strings.ReplaceAll(escaped, endToken, `</span>`)
	return template.HTML(escaped)
}

// highlightMarker escapes a binding block and wraps every line that
// mentions ProcessVariables in a highlight span.
func highlightMarker(block string) template.HTML {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	for i, line := range lines {
		escaped := html.EscapeString(line)
		if strings.Contains(line, extract.Marker) {
			escaped = `<span class="sql-highlight">` + escaped + `</span>`
		}
		lines[i] = escaped
	}
	return template.HTML(strings.Join(lines, "\n"))
}
