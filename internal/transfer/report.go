package transfer

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/existflow/taskpad/internal/derive"
	"github.com/existflow/taskpad/internal/logger"
	"github.com/existflow/taskpad/internal/model"
)

const (
	// ReportFileName is the fixed name of a report export
	ReportFileName = "tasks-report.txt"
	// DefaultLinesPerPage is the line budget of one report page
	DefaultLinesPerPage = 26

	reportTitle    = "Task Manager Report"
	reportDueStyle = "Jan 2, 2006"
)

// Report is a paginated task report
type Report struct {
	Title     string
	Generated time.Time
	Stats     derive.Stats
	Pages     [][]string
}

// BuildReport lays out the stats summary and one line per task, starting a
// new page whenever the next line would exceed linesPerPage
func BuildReport(tasks []model.Task, asOf time.Time, linesPerPage int) Report {
	if linesPerPage <= 0 {
		linesPerPage = DefaultLinesPerPage
	}
	stats := derive.ComputeStats(tasks, asOf)

	r := Report{Title: reportTitle, Generated: asOf, Stats: stats}

	var page []string
	add := func(line string) {
		if len(page) >= linesPerPage {
			r.Pages = append(r.Pages, page)
			page = nil
		}
		page = append(page, line)
	}

	add(reportTitle)
	add("Generated on: " + asOf.Format("January 2, 2006"))
	add("")
	add(fmt.Sprintf("Total Tasks: %d", stats.Total))
	add(fmt.Sprintf("Completed Tasks: %d", stats.Completed))
	add(fmt.Sprintf("Completion Rate: %d%%", stats.CompletionRate))
	add(fmt.Sprintf("Due Today: %d", stats.DueToday))
	add(fmt.Sprintf("Overdue: %d", stats.Overdue))
	add("")
	add("Tasks List:")

	for _, t := range tasks {
		add(reportLine(t))
	}

	r.Pages = append(r.Pages, page)
	return r
}

func reportLine(t model.Task) string {
	status := "[ ]"
	if t.Completed {
		status = "[✓]"
	}
	line := status + " " + t.OneLine()
	if t.HasDueDate() {
		line += " (Due: " + t.DueDate.Format(reportDueStyle) + ")"
	}
	return line
}

// WriteTo renders the pages as plain text separated by form feeds
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for i, page := range r.Pages {
		if i > 0 {
			b.WriteString("\f")
		}
		for _, line := range page {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "\n%*s\n", 40, fmt.Sprintf("Page %d/%d", i+1, len(r.Pages)))
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// ExportReportFile writes the report for the current collection into dir
func (c *Codec) ExportReportFile(dir string, asOf time.Time, linesPerPage int) (string, error) {
	report := BuildReport(c.tasks.Snapshot(), asOf, linesPerPage)

	var buf bytes.Buffer
	if _, err := report.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	path := filepath.Join(dir, ReportFileName)
	if err := writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}

	c.log.Info("Report exported", logger.F("path", path), logger.F("pages", len(report.Pages)))
	return path, nil
}
