// Package report renders the computed aggregates for people: terminal
// tables for interactive runs and a standalone HTML summary written next
// to the charts.
package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"title-lens/dataset"
	"title-lens/summary"
)

// Summary carries everything a single analysis run produced.
type Summary struct {
	DatasetPath string
	Rows        int
	Skipped     dataset.SkipCounts
	Types       []summary.Bucket
	Countries   []summary.Bucket
	Genres      []summary.Bucket
	Years       []summary.YearCount
	Added       []summary.YearCount
	ByCountry   summary.Grouped
}

// Writer renders a Summary as an HTML report.
type Writer struct {
	htmlTemplate *template.Template
}

// NewWriter creates a report writer with the embedded HTML template.
func NewWriter() (*Writer, error) {
	tmpl, err := template.New("report").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Title Lens - Catalog Summary</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; }
        h1 { color: #e50914; }
        h2 { color: #0071c5; margin-top: 30px; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
        th { background-color: #f4f4f4; text-align: left; padding: 10px; }
        td { padding: 10px; border-bottom: 1px solid #ddd; }
        .count { font-weight: bold; color: #e50914; }
        .skipped { font-style: italic; color: #666; }
        .footer { font-size: 12px; color: #666; margin-top: 50px; text-align: center; }
    </style>
</head>
<body>
    <h1>Title Lens - Catalog Summary</h1>
    <p>Generated on {{.Date}} from {{.DatasetPath}}.</p>
    <p>Rows read: <span class="count">{{.Rows}}</span></p>
    {{if gt .Skipped.Total 0}}
    <p class="skipped">Rows with defects: missing type {{.Skipped.MissingType}},
    bad release year {{.Skipped.BadYear}}, empty genre {{.Skipped.EmptyGenre}},
    bad date added {{.Skipped.BadDateAdded}}.</p>
    {{end}}

    <h2>Movies vs TV Shows</h2>
    <table>
        <tr><th>Type</th><th>Titles</th></tr>
        {{range .Types}}<tr><td>{{.Label}}</td><td>{{.Count}}</td></tr>
        {{end}}
    </table>

    <h2>Top Countries</h2>
    <table>
        <tr><th>Country</th><th>Titles</th></tr>
        {{range .Countries}}<tr><td>{{.Label}}</td><td>{{.Count}}</td></tr>
        {{end}}
    </table>

    <h2>Top Genres</h2>
    <table>
        <tr><th>Genre</th><th>Titles</th></tr>
        {{range .Genres}}<tr><td>{{.Label}}</td><td>{{.Count}}</td></tr>
        {{end}}
    </table>

    <h2>Titles per Release Year</h2>
    <table>
        <tr><th>Year</th><th>Titles</th></tr>
        {{range .Years}}<tr><td>{{.Year}}</td><td>{{.Count}}</td></tr>
        {{end}}
    </table>

    {{if .Added}}
    <h2>Titles Added per Year</h2>
    <table>
        <tr><th>Year</th><th>Titles</th></tr>
        {{range .Added}}<tr><td>{{.Year}}</td><td>{{.Count}}</td></tr>
        {{end}}
    </table>
    {{end}}

    <div class="footer">
        <p>Generated by title-lens.</p>
    </div>
</body>
</html>
`)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %v", err)
	}

	return &Writer{htmlTemplate: tmpl}, nil
}

// WriteHTML renders the summary report to path.
func (w *Writer) WriteHTML(s Summary, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %v", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %v", err)
	}
	defer file.Close()

	data := struct {
		Summary
		Date string
	}{
		Summary: s,
		Date:    time.Now().Format("January 2, 2006 at 3:04 PM"),
	}

	if err := w.htmlTemplate.Execute(file, data); err != nil {
		return fmt.Errorf("failed to render report: %v", err)
	}
	return nil
}

// PrintTables writes every aggregate of the summary as a terminal table.
func PrintTables(out io.Writer, s Summary) {
	printDistribution(out, "Type", s.Types)
	printDistribution(out, "Country", s.Countries)
	printDistribution(out, "Genre", s.Genres)
	printTrend(out, "Release Year", s.Years)
	if len(s.Added) > 0 {
		printTrend(out, "Added Year", s.Added)
	}
	printGrouped(out, "Country", s.ByCountry)
}

func printDistribution(out io.Writer, label string, buckets []summary.Bucket) {
	if len(buckets) == 0 {
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{label, "Titles"})
	for _, b := range buckets {
		table.Append([]string{b.Label, strconv.Itoa(b.Count)})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(summary.TotalCount(buckets))})
	table.Render()
}

func printTrend(out io.Writer, label string, trend []summary.YearCount) {
	if len(trend) == 0 {
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{label, "Titles"})
	for _, yc := range trend {
		table.Append([]string{strconv.Itoa(yc.Year), strconv.Itoa(yc.Count)})
	}
	table.Render()
}

func printGrouped(out io.Writer, label string, grouped summary.Grouped) {
	if len(grouped.Labels) == 0 {
		return
	}

	header := []string{label}
	for _, s := range grouped.Series {
		header = append(header, s.Name)
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	for i, l := range grouped.Labels {
		row := []string{l}
		for _, s := range grouped.Series {
			row = append(row, strconv.Itoa(s.Counts[i]))
		}
		table.Append(row)
	}
	table.Render()
}
