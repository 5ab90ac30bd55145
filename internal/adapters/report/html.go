package report

import (
	"bytes"
	"html/template"
	"io"

	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/zerr"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Audit report: {{.Root}}</title>
<style>
body { font-family: monospace, "Courier New"; }
td { padding: 8px; }
td.command { background: #efefef; }
</style>
</head>
<body>
<h1>Audit report</h1>
<p>{{.Root}}</p>
<hr>
<table>
<tr><th>Start time</th><th>Command</th><th>Duration</th></tr>
{{- range .Tasks}}
<tr><td>{{.Start}}</td><td class="command">{{.Command}}</td><td>{{.Duration}}</td></tr>
{{- end}}
</table>
<hr>
{{if .SVG}}{{.SVG}}{{else}}<pre>{{.DOT}}</pre>{{end}}
<hr>
</body>
</html>
`))

type htmlTask struct {
	Start    string
	Command  string
	Duration string
}

type htmlView struct {
	Root  string
	Tasks []htmlTask
	DOT   string
	SVG   template.HTML
}

// HTML writes a standalone document with the task table and the graph.
// The rendered SVG is embedded when present; otherwise the DOT source is shown.
func (r *Reporter) HTML(w io.Writer, report *domain.Report) error {
	view := htmlView{
		Root: report.Root,
		DOT:  report.DOT,
	}
	if len(report.SVG) > 0 {
		//nolint:gosec // SVG is produced locally by the graph renderer
		view.SVG = template.HTML(report.SVG)
	}
	for _, t := range report.Tasks {
		view.Tasks = append(view.Tasks, htmlTask{
			Start:    t.StartTime.String(),
			Command:  t.Command,
			Duration: t.Duration,
		})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return zerr.Wrap(err, "failed to render HTML report")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return zerr.Wrap(err, "failed to write HTML report")
	}
	return nil
}
