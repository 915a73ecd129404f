package report

import "html/template"

// reportTemplate lays out the report: table of contents, one section
// per result subdirectory, and the SQL appendix. Sections for labels
// ending in _export carry an E index and an Analysis badge.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>WebMaker Analyzer Report</title>
  <style>
    :root {
      --primary-color: #2c3e50;
      --secondary-color: #3498db;
      --accent-color: #e74c3c;
      --light-bg: #f8f9fa;
      --border-color: #e9ecef;
      --text-color: #343a40;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      color: var(--text-color);
      line-height: 1.6;
      padding: 20px;
      max-width: 1400px;
      margin: 0 auto;
      background-color: #ffffff;
    }
    h1 {
      color: var(--primary-color);
      border-bottom: 2px solid var(--secondary-color);
      padding-bottom: 15px;
    }
    h2 {
      color: var(--secondary-color);
      margin-top: 40px;
      border-bottom: 1px solid var(--border-color);
      padding-bottom: 8px;
    }
    .toc {
      background-color: var(--light-bg);
      border: 1px solid var(--border-color);
      border-radius: 8px;
      padding: 15px 30px;
    }
    .toc a { text-decoration: none; color: var(--secondary-color); }
    .folder-content { margin-left: 20px; padding: 10px 0; }
    .thumbnails { display: flex; flex-wrap: wrap; gap: 24px; margin: 20px 0; }
    .thumbnail {
      display: flex;
      flex-direction: column;
      align-items: center;
      border-radius: 10px;
      overflow: hidden;
      box-shadow: 0 4px 12px rgba(0,0,0,0.08);
      background-color: white;
    }
    .thumbnail img { max-width: 350px; border-bottom: 1px solid var(--border-color); }
    .xml-content {
      background-color: var(--light-bg);
      padding: 18px;
      border-radius: 8px;
      border: 1px solid var(--border-color);
      overflow: auto;
      margin-bottom: 24px;
    }
    pre {
      white-space: pre-wrap;
      font-family: 'SFMono-Regular', Consolas, Menlo, monospace;
      margin: 0;
      font-size: 14px;
    }
    .sql-highlight { background-color: #fff3cd; color: #856404; font-weight: 600; }
    .export-badge {
      background-color: var(--accent-color);
      color: white;
      border-radius: 4px;
      padding: 2px 8px;
      font-size: 13px;
      margin-left: 10px;
    }
    .file-link a { color: var(--secondary-color); text-decoration: none; }
  </style>
</head>
<body>
  <h1>WebMaker Analyzer Report - {{.Date}}</h1>
  <div class="toc">
    <ul>
{{- range .Sections}}
      <li><a href="#section-{{.Name}}">{{.Index}}. {{.Name}}</a></li>
{{- end}}
      <li><a href="#appendix">Appendix - SQL Queries</a></li>
    </ul>
  </div>
{{- range .Sections}}
  <div>
    <h2 id="section-{{.Name}}">{{.Index}}. {{.Name}}{{if .Export}} <span class="export-badge">Analysis</span>{{end}}</h2>
    <div class="folder-content">
{{- if .Thumbnails}}
      <h3>Pages</h3>
      <div class="thumbnails">
{{- range .Thumbnails}}
        <div class="thumbnail">
{{- if .PageLink}}
          <a href="{{.PageLink}}"><img src="{{.Image}}" alt="{{.PageTitle}}"></a>
          <div class="file-link"><a href="{{.PageLink}}">{{.PageTitle}}</a></div>
{{- else}}
          <img src="{{.Image}}" alt="thumbnail">
{{- end}}
        </div>
{{- end}}
      </div>
{{- end}}
{{- if .RuleDocs}}
      <h3>Database Actions</h3>
{{- range .RuleDocs}}
      <div class="xml-content">
        <a href="{{.RelPath}}">{{.Name}}</a>
{{- if .Empty}}
        <p>No database actions found.</p>
{{- else}}
{{- range .Blocks}}
        <pre>{{.}}</pre>
{{- end}}
{{- end}}
      </div>
{{- end}}
{{- end}}
{{- if .BindingDocs}}
      <h3>Data Bindings</h3>
{{- range .BindingDocs}}
      <div class="xml-content">
        <a href="{{.RelPath}}">{{.Name}}</a>
{{- if .Empty}}
        <p>No mappings found.</p>
{{- else}}
{{- range .Blocks}}
        <pre>{{.}}</pre>
{{- end}}
{{- end}}
      </div>
{{- end}}
{{- end}}
{{- if .Scripts}}
      <h3>Scripts</h3>
      <ul>
{{- range .Scripts}}
        <li class="file-link"><a href="{{.RelPath}}">{{.Name}}</a></li>
{{- end}}
      </ul>
{{- end}}
    </div>
  </div>
{{- end}}
  <h2 id="appendix">Appendix - SQL Queries</h2>
  <div class="folder-content">
{{- if .SQL}}
{{- range .SQL}}
    <div class="xml-content">
      <p>{{.File}} &mdash; rule {{.RuleID}}</p>
      <pre>{{.SQL}}</pre>
    </div>
{{- end}}
{{- else}}
    <p>No SQL queries found.</p>
{{- end}}
  </div>
</body>
</html>
`))
