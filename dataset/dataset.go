package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Title is one row of the catalog. Records are immutable after load.
type Title struct {
	ShowID      string   `json:"show_id"`
	Type        string   `json:"type"` // "Movie" or "TV Show"
	Name        string   `json:"title"`
	Director    string   `json:"director,omitempty"`
	Cast        string   `json:"cast,omitempty"`
	Countries   []string `json:"countries"`
	ReleaseYear int      `json:"release_year"` // 0 when the source value was unparseable
	AddedYear   int      `json:"added_year"`   // year from date_added, 0 when absent or unparseable
	Rating      string   `json:"rating,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Genres      []string `json:"genres"`
	Description string   `json:"description,omitempty"`
}

// SkipCounts tallies per-row defects found during load. Rows are never
// dropped wholesale; each defect only excludes the row from the one
// aggregate it would corrupt.
type SkipCounts struct {
	MissingType  int `json:"missing_type"`
	BadYear      int `json:"bad_year"`
	EmptyGenre   int `json:"empty_genre"`
	BadDateAdded int `json:"bad_date_added"`
}

// Total returns the sum of all skip counters.
func (s SkipCounts) Total() int {
	return s.MissingType + s.BadYear + s.EmptyGenre + s.BadDateAdded
}

// LoadResult holds the fully materialized dataset plus load diagnostics.
type LoadResult struct {
	Titles  []Title    `json:"titles"`
	Rows    int        `json:"rows"` // data rows read, including defective ones
	Skipped SkipCounts `json:"skipped"`
}

// UnknownCountry is the bucket for rows with an empty country field.
const UnknownCountry = "Unknown"

// requiredColumns must all be present in the header or the load fails.
var requiredColumns = []string{"type", "title", "country", "release_year", "listed_in"}

// dateAddedLayouts covers the formats seen in catalog exports.
var dateAddedLayouts = []string{"January 2, 2006", "2-Jan-06", "2006-01-02"}

// Load reads the catalog CSV at path fully into memory.
// A missing or unreadable file, or a header missing required columns,
// is a fatal error. Defective rows are kept where possible and their
// defects counted in the result.
func Load(path string) (*LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %v", err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses catalog CSV rows from r. See Load for the error contract.
func Read(r io.Reader) (*LoadResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("failed to read dataset: file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %v", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken row can't be attributed to any
			// aggregate; count it against every per-row policy it misses.
			result.Rows++
			result.Skipped.MissingType++
			result.Skipped.BadYear++
			result.Skipped.EmptyGenre++
			continue
		}

		result.Rows++
		result.Titles = append(result.Titles, parseRow(row, cols, &result.Skipped))
	}

	return result, nil
}

// columnIndex maps normalized header names to their positions.
type columnIndex map[string]int

func mapColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset is missing required columns: %s", strings.Join(missing, ", "))
	}

	return cols, nil
}

// normalizeHeader converts "Release Year" to "release_year".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

func (c columnIndex) value(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, cols columnIndex, skipped *SkipCounts) Title {
	title := Title{
		ShowID:      cols.value(row, "show_id"),
		Type:        cols.value(row, "type"),
		Name:        cols.value(row, "title"),
		Director:    cols.value(row, "director"),
		Cast:        cols.value(row, "cast"),
		Rating:      cols.value(row, "rating"),
		Duration:    cols.value(row, "duration"),
		Description: cols.value(row, "description"),
	}

	if title.Type == "" {
		skipped.MissingType++
	}

	if year, err := strconv.Atoi(cols.value(row, "release_year")); err == nil && year > 0 {
		title.ReleaseYear = year
	} else {
		skipped.BadYear++
	}

	title.Countries = SplitValues(cols.value(row, "country"))
	if len(title.Countries) == 0 {
		title.Countries = []string{UnknownCountry}
	}

	title.Genres = SplitValues(cols.value(row, "listed_in"))
	if len(title.Genres) == 0 {
		skipped.EmptyGenre++
	}

	if added := cols.value(row, "date_added"); added != "" {
		if year := parseAddedYear(added); year > 0 {
			title.AddedYear = year
		} else {
			skipped.BadDateAdded++
		}
	}

	return title
}

// SplitValues splits a comma-delimited multi-value field into trimmed,
// non-empty values. Each value counts independently in distributions,
// so multi-country and multi-genre totals may exceed the record count.
func SplitValues(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}

	parts := strings.Split(field, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func parseAddedYear(s string) int {
	for _, layout := range dateAddedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year()
		}
	}
	return 0
}
