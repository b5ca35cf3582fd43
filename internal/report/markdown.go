package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/offlist/offlist/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: the nao1215/markdown library provides type-safe
// generation with tables, GitHub-flavored alerts, and mermaid charts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeExposures(md, report)
	w.writeErrors(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("Offlist Exposure Report")
	md.PlainText("")

	status := "✅ Complete"
	if report.ErrorMessage != "" {
		status = "❌ Error - " + report.ErrorMessage
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Profile", report.ProfileName},
			{"Scan Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Sources Probed", strconv.Itoa(report.Sources)},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeSummary writes the risk summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Risk Summary")
	md.PlainText("")

	counts := report.CountByRisk()
	md.Table(markdown.TableSet{
		Header: []string{"Risk", "Count"},
		Rows: [][]string{
			{"🔴 High", strconv.Itoa(counts[model.RiskHigh])},
			{"🟡 Medium", strconv.Itoa(counts[model.RiskMedium])},
			{"🔵 Low", strconv.Itoa(counts[model.RiskLow])},
			{"**Total**", "**" + strconv.Itoa(len(report.Candidates)) + "**"},
		},
	})
	md.PlainText("")

	if len(report.Candidates) > 0 {
		w.writePieChart(md, counts)
	}

	w.writeAlert(md, report, counts)
}

// writePieChart writes a mermaid pie chart of the risk distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts map[model.RiskTier]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Exposure Risk Distribution"),
		piechart.WithShowData(true),
	)

	if counts[model.RiskHigh] > 0 {
		chart.LabelAndIntValue("High", uint64(counts[model.RiskHigh]))
	}
	if counts[model.RiskMedium] > 0 {
		chart.LabelAndIntValue("Medium", uint64(counts[model.RiskMedium]))
	}
	if counts[model.RiskLow] > 0 {
		chart.LabelAndIntValue("Low", uint64(counts[model.RiskLow]))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the findings.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.ScanReport, counts map[model.RiskTier]int) {
	switch {
	case counts[model.RiskHigh] > 0:
		md.Cautionf(
			"Your data was found on %d high-risk site(s). Filing removal requests is strongly recommended.",
			counts[model.RiskHigh],
		)
	case len(report.Candidates) > 0:
		md.Warningf(
			"%d exposure(s) found. Review them and consider opting out.",
			len(report.Candidates),
		)
	default:
		md.Tip("No exposures found in this scan.")
	}
	md.PlainText("")
}

// writeExposures writes the exposure table, highest confidence first.
func (w *MarkdownWriter) writeExposures(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Exposures")
	md.PlainText("")

	if len(report.Candidates) == 0 {
		md.PlainText("No exposures detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Candidates))
	for i, c := range report.Candidates {
		url := c.Result.ProfileURL
		if url == "" {
			url = "-"
		}
		data := joinCategories(c.Result.DataFound)
		if data == "" {
			data = "-"
		}
		removable := "yes"
		if !c.Removable {
			removable = "no"
		}

		rows[i] = []string{
			c.Result.Source.Name,
			string(c.Class),
			string(c.Risk),
			fmt.Sprintf("%.0f%%", c.Result.Confidence*100),
			truncateString(data, 50),
			removable,
			truncateString(url, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Source", "Class", "Risk", "Confidence", "Data Found", "Removable", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeErrors writes the fetch error tally.
func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, report *model.ScanReport) {
	if len(report.Errors) == 0 {
		return
	}

	md.H2("Fetch Errors")
	md.PlainText("")

	var rows [][]string
	for _, tag := range []model.FetchError{
		model.FetchTimeout,
		model.FetchBlocked,
		model.FetchNotFound,
		model.FetchHTTPError,
		model.FetchFailed,
	} {
		if n := report.Errors[tag]; n > 0 {
			rows = append(rows, []string{string(tag), strconv.Itoa(n)})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Error", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by Offlist*")
}

// truncateString truncates a string to maxLen characters with
// ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
