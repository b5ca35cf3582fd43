package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/offlist/offlist/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: plain text with ASCII formatting rather than ANSI
// colors by default because it works in all terminals and pipes
// cleanly to files or other tools.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no entries are shown.
	showEmpty bool

	// verbose enables additional detail, such as match signals and
	// per-source misses.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given
// writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeExposures(&sb, report)
	w.writeErrors(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       OFFLIST EXPOSURE REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Profile:        %s\n", report.ProfileName))
	sb.WriteString(fmt.Sprintf("Scan Date:      %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Sources Probed: %d\n", report.Sources))
	sb.WriteString(fmt.Sprintf("Elapsed:        %s\n", report.Elapsed.Round(time.Millisecond)))

	if report.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Status:         ERROR - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:         Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the risk summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RISK SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	counts := report.CountByRisk()
	sb.WriteString(fmt.Sprintf("  HIGH:   %d\n", counts[model.RiskHigh]))
	sb.WriteString(fmt.Sprintf("  MEDIUM: %d\n", counts[model.RiskMedium]))
	sb.WriteString(fmt.Sprintf("  LOW:    %d\n", counts[model.RiskLow]))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:  %d exposures (%d removable, %d new)\n",
		len(report.Candidates), len(report.Removable()), report.NewExposures))
	sb.WriteString("\n")
}

// writeExposures writes the exposure list, highest confidence first.
func (w *SimpleWriter) writeExposures(sb *strings.Builder, report *model.ScanReport) {
	if len(report.Candidates) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("EXPOSURES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Candidates) == 0 {
		sb.WriteString("  No exposures found\n\n")
		return
	}

	for _, c := range report.Candidates {
		marker := "-"
		if c.Risk == model.RiskHigh {
			marker = "!"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s (%.0f%% confidence, %s)\n",
			marker, c.Result.Source.Name, c.Result.Confidence*100, c.Class))

		if c.Result.ProfileURL != "" {
			sb.WriteString(fmt.Sprintf("      URL: %s\n", c.Result.ProfileURL))
		}
		if len(c.Result.DataFound) > 0 {
			sb.WriteString(fmt.Sprintf("      Data: %s\n", joinCategories(c.Result.DataFound)))
		}
		if !c.Removable {
			sb.WriteString("      Removal: not available for this site class\n")
		}
		if w.verbose && len(c.Result.Signals) > 0 {
			sb.WriteString(fmt.Sprintf("      Signals: %s\n", joinSignals(c.Result.Signals)))
		}
	}
	sb.WriteString("\n")
}

// writeErrors writes the fetch error tally.
func (w *SimpleWriter) writeErrors(sb *strings.Builder, report *model.ScanReport) {
	if len(report.Errors) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FETCH ERRORS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Errors) == 0 {
		sb.WriteString("  No fetch errors\n")
	} else {
		for _, tag := range []model.FetchError{
			model.FetchTimeout,
			model.FetchBlocked,
			model.FetchNotFound,
			model.FetchHTTPError,
			model.FetchFailed,
		} {
			if n := report.Errors[tag]; n > 0 {
				sb.WriteString(fmt.Sprintf("  %-18s %d\n", string(tag)+":", n))
			}
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by Offlist\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// joinCategories renders data categories as a comma list.
func joinCategories(cats []model.DataCategory) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// joinSignals renders match signals as a comma list.
func joinSignals(signals []model.Signal) string {
	parts := make([]string, len(signals))
	for i, s := range signals {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
