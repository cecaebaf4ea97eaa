package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/redfox/internal/model"
)

// MarkdownWriter outputs sweep reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown output
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the sweep report in Markdown format.
func (w *MarkdownWriter) Write(report *model.SweepReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeResults(md, report)
	w.writeFailures(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with target information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.SweepReport) {
	md.H1("RedFox Sweep Report")
	md.PlainText("")

	scheme := "http"
	if report.TLS {
		scheme = "https"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + report.Host + ":" + strconv.Itoa(report.Port) + "`"},
			{"Scheme", scheme},
			{"Started", report.Started.Format("2006-01-02 15:04:05 MST")},
			{"Paths Probed", strconv.Itoa(len(report.Results))},
			{"Succeeded", strconv.Itoa(report.Succeeded())},
			{"Failed", strconv.Itoa(report.Failed())},
			{"Redirects", strconv.Itoa(report.Redirects())},
		},
	})
	md.PlainText("")
}

// writeResults writes the per-path result table for completed probes.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.SweepReport) {
	md.H2("Results")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Results))
	for i := range report.Results {
		r := &report.Results[i]
		if !r.Succeeded() {
			continue
		}

		redirect := r.Redirect
		if redirect == "" {
			redirect = "-"
		}

		rows = append(rows, []string{
			"`" + r.Target + "`",
			r.StatusLine(),
			redirect,
			strconv.Itoa(r.ResponseBytes),
			r.Elapsed.String(),
		})
	}

	if len(rows) == 0 {
		md.PlainText("No path answered.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Path", "Status", "Redirect", "Bytes", "Elapsed"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes the failed-probe table, if any probes failed.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.SweepReport) {
	rows := make([][]string, 0)
	for i := range report.Results {
		r := &report.Results[i]
		if r.Succeeded() {
			continue
		}
		rows = append(rows, []string{"`" + r.Target + "`", r.Error})
	}

	if len(rows) == 0 {
		return
	}

	md.H2("Failures")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Path", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}
