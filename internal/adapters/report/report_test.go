package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sci/internal/adapters/report"
	"go.trai.ch/sci/internal/core/domain"
)

var start = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func chain() []domain.AuditRecord {
	hej := domain.NewAuditRecord(
		domain.NewCommandInvocation("echo hej > o:out/hej.txt", "echo hej > out/hej.txt"),
		nil,
		[]domain.FileReference{domain.NewFileReference("out/hej.txt")},
		domain.NewTags(start, start.Add(time.Second)),
	)
	da := domain.NewAuditRecord(
		domain.NewCommandInvocation("echo $(cat i:out/hej.txt) da > o:out/hej.da.txt", "echo $(cat out/hej.txt) da > out/hej.da.txt"),
		[]domain.FileReference{domain.NewFileReference("out/hej.txt")},
		[]domain.FileReference{domain.NewFileReference("out/hej.da.txt")},
		domain.NewTags(start.Add(time.Minute), start.Add(time.Minute+250*time.Millisecond)),
	)
	return []domain.AuditRecord{hej, da}
}

func TestReporter_DOT(t *testing.T) {
	dot := report.NewReporter().DOT(domain.ProjectGraph(chain()))

	g := goldie.New(t)
	g.Assert(t, "chain.dot", []byte(dot))
}

func TestReporter_DOT_EscapesQuotes(t *testing.T) {
	records := []domain.AuditRecord{domain.NewAuditRecord(
		domain.NewCommandInvocation(`echo "hi" > o:x`, `echo "hi" > x`),
		nil,
		[]domain.FileReference{domain.NewFileReference("x")},
		domain.NewTags(start, start),
	)}

	dot := report.NewReporter().DOT(domain.ProjectGraph(records))
	assert.Contains(t, dot, `"cmd:echo \"hi\" > x" [label="echo \"hi\" > x", fillcolor="#CCE2F1"];`)
	assert.Contains(t, dot, `"cmd:echo \"hi\" > x" -> "file:x";`)
}

func TestReporter_DOT_KeepsFileAndCommandApart(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(domain.Node{ID: domain.FileNodeID("make"), Label: "make", Kind: domain.NodeKindFile})
	g.AddNode(domain.Node{ID: domain.CommandNodeID("make"), Label: "make", Kind: domain.NodeKindCommand})
	g.AddEdge(domain.FileNodeID("make"), domain.CommandNodeID("make"))

	dot := report.NewReporter().DOT(g)
	assert.Contains(t, dot, `"file:make" [label="make"];`)
	assert.Contains(t, dot, `"cmd:make" [label="make", fillcolor="#CCE2F1"];`)
	assert.Contains(t, dot, `"file:make" -> "cmd:make";`)
}

func TestReporter_Table(t *testing.T) {
	var buf bytes.Buffer
	err := report.NewReporter().Table(&buf, domain.TaskTable(chain()))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "START TIME")
	assert.Contains(t, out, "2024-01-02T03:04:05.000000Z")
	assert.Contains(t, out, "echo hej > out/hej.txt")
	assert.Contains(t, out, "0-00:00:00.250000")
	assert.Contains(t, out, "1.000")
	assert.Less(t, strings.Index(out, "echo hej >"), strings.Index(out, "echo $(cat"))
}

func TestReporter_HTML(t *testing.T) {
	records := chain()
	g := domain.ProjectGraph(records)
	r := report.NewReporter()

	rep := &domain.Report{
		Root:    "out/hej.da.txt.au.json",
		Records: records,
		Graph:   g,
		DOT:     r.DOT(g),
		Tasks:   domain.TaskTable(records),
	}

	var buf bytes.Buffer
	require.NoError(t, r.HTML(&buf, rep))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Audit report: out/hej.da.txt.au.json</title>")
	assert.Contains(t, out, `<td class="command">echo hej &gt; out/hej.txt</td>`)
	assert.Contains(t, out, "<pre>digraph G {")

	rep.SVG = []byte(`<svg id="graph"></svg>`)
	buf.Reset()
	require.NoError(t, r.HTML(&buf, rep))
	assert.Contains(t, buf.String(), `<svg id="graph"></svg>`)
	assert.NotContains(t, buf.String(), "<pre>")
}

func TestGraphvizRenderer_Unavailable(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := report.NewGraphvizRenderer().Render(context.Background(), "digraph G {}")
	require.ErrorIs(t, err, domain.ErrRendererUnavailable)
}
