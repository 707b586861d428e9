package cli

import (
	"fmt"
	"strings"

	"github.com/kmantas/sedes/internal/corpus"
	"github.com/kmantas/sedes/internal/storage"
)

// RenderScanReport renders the outcome counts of a corpus run.
func RenderScanReport(stats corpus.Stats) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Scansion report"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Lines processed: %s\n", BoldStyle.Render(fmt.Sprintf("%d", stats.Total))))
	b.WriteString(fmt.Sprintf("  %s\n", FormatSuccess(fmt.Sprintf("Resolved:     %d", stats.Resolved))))
	b.WriteString(fmt.Sprintf("  %s\n", FormatSuccess(fmt.Sprintf("Overridden:   %d", stats.Overridden))))
	if stats.Ambiguous > 0 {
		b.WriteString(fmt.Sprintf("  %s\n", FormatWarning(fmt.Sprintf("Ambiguous:    %d", stats.Ambiguous))))
	}
	if stats.Unscannable > 0 {
		b.WriteString(fmt.Sprintf("  %s\n", FormatWarning(fmt.Sprintf("Unscannable:  %d", stats.Unscannable))))
	}
	if stats.Unrecognized > 0 {
		b.WriteString(fmt.Sprintf("  %s\n", FormatError(fmt.Sprintf("Unrecognized: %d", stats.Unrecognized))))
	}

	scanned := stats.Resolved + stats.Overridden
	if stats.Total > 0 {
		pct := 100 * float64(scanned) / float64(stats.Total)
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %.1f%% of lines assigned sedes", pct)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderWorkStats renders per-work outcome counts as a table.
func RenderWorkStats(stats []storage.WorkStats) string {
	if len(stats) == 0 {
		return SubtleStyle.Render("No works in the database.") + "\n"
	}

	var b strings.Builder
	header := fmt.Sprintf("%-20s %8s %8s %8s %8s %8s %8s",
		"Work", "Lines", "Resolved", "Known", "Ambig", "Unscan", "Unrec")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")
	for _, s := range stats {
		row := fmt.Sprintf("%-20s %8d %8d %8d %8d %8d %8d",
			s.Work, s.Total, s.Resolved, s.Overridden, s.Ambiguous, s.Unscannable, s.Unrecognized)
		b.WriteString(TableCellStyle.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}
