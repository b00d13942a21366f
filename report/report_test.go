package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"title-lens/dataset"
	"title-lens/summary"
)

func testSummary() Summary {
	return Summary{
		DatasetPath: "data/netflix_titles.csv",
		Rows:        3,
		Skipped:     dataset.SkipCounts{BadYear: 1},
		Types:       []summary.Bucket{{Label: "Movie", Count: 2}, {Label: "TV Show", Count: 1}},
		Countries:   []summary.Bucket{{Label: "United States", Count: 2}, {Label: "India", Count: 1}},
		Genres:      []summary.Bucket{{Label: "Drama", Count: 3}, {Label: "Comedy", Count: 1}},
		Years:       []summary.YearCount{{Year: 2019, Count: 1}, {Year: 2020, Count: 2}},
		Added:       []summary.YearCount{{Year: 2020, Count: 3}},
		ByCountry: summary.Grouped{
			Labels: []string{"United States", "India"},
			Series: []summary.Series{
				{Name: "Movie", Counts: []int{1, 0}},
				{Name: "TV Show", Counts: []int{1, 1}},
			},
		},
	}
}

func TestWriteHTML(t *testing.T) {
	writer, err := NewWriter()
	if err != nil {
		t.Fatalf("Failed to create report writer: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "summary.html")
	if err := writer.WriteHTML(testSummary(), path); err != nil {
		t.Fatalf("Failed to write report: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report back: %v", err)
	}

	html := string(data)
	for _, want := range []string{"Movies vs TV Shows", "United States", "Drama", "2019", "bad release year 1"} {
		if !strings.Contains(html, want) {
			t.Errorf("Report should contain %q", want)
		}
	}
}

func TestWriteHTMLOmitsSkipsWhenClean(t *testing.T) {
	writer, err := NewWriter()
	if err != nil {
		t.Fatalf("Failed to create report writer: %v", err)
	}

	clean := testSummary()
	clean.Skipped = dataset.SkipCounts{}

	path := filepath.Join(t.TempDir(), "summary.html")
	if err := writer.WriteHTML(clean, path); err != nil {
		t.Fatalf("Failed to write report: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report back: %v", err)
	}

	if strings.Contains(string(data), "Rows with defects") {
		t.Error("Clean runs should not mention defects")
	}
}

func TestPrintTables(t *testing.T) {
	var out bytes.Buffer
	PrintTables(&out, testSummary())

	text := out.String()
	for _, want := range []string{"Movie", "United States", "Drama", "2019", "TOTAL"} {
		if !strings.Contains(text, want) {
			t.Errorf("Tables should contain %q, got:\n%s", want, text)
		}
	}
}

func TestPrintTablesEmptySummary(t *testing.T) {
	var out bytes.Buffer
	PrintTables(&out, Summary{})

	if out.Len() != 0 {
		t.Errorf("Empty summary should print nothing, got:\n%s", out.String())
	}
}
