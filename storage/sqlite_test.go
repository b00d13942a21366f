package storage

import (
	"os"
	"path/filepath"
	"testing"

	"title-lens/dataset"
)

func TestSQLiteStorage(t *testing.T) {
	// Create temporary directory for test
	tempDir := t.TempDir()

	// Initialize storage
	storage := NewSQLiteStorage(tempDir)
	err := storage.Initialize()
	if err != nil {
		t.Fatalf("Failed to initialize storage: %v", err)
	}
	defer storage.Close()

	// Test saving a title
	year := 2023
	testTitle := Title{
		ShowID:      "s1",
		Type:        "Movie",
		Name:        "Test Movie",
		Countries:   "United States",
		ReleaseYear: &year,
		Genres:      "Dramas",
	}

	err = storage.SaveTitle(testTitle)
	if err != nil {
		t.Fatalf("Failed to save title: %v", err)
	}

	// Test retrieving all titles
	titles, err := storage.GetAllTitles()
	if err != nil {
		t.Fatalf("Failed to get all titles: %v", err)
	}

	if len(titles) != 1 {
		t.Fatalf("Expected 1 title, got %d", len(titles))
	}

	if titles[0].Name != testTitle.Name {
		t.Errorf("Expected title %s, got %s", testTitle.Name, titles[0].Name)
	}

	// Test retrieving titles by type
	movies, err := storage.GetTitlesByType("Movie")
	if err != nil {
		t.Fatalf("Failed to get movies: %v", err)
	}

	if len(movies) != 1 {
		t.Fatalf("Expected 1 movie, got %d", len(movies))
	}

	// Test search
	searchResults, err := storage.SearchTitles("Test")
	if err != nil {
		t.Fatalf("Failed to search titles: %v", err)
	}

	if len(searchResults) != 1 {
		t.Fatalf("Expected 1 search result, got %d", len(searchResults))
	}

	// Test stats
	stats, err := storage.GetStats()
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}

	if stats["total"] != 1 {
		t.Errorf("Expected total 1, got %d", stats["total"])
	}

	if stats["movies"] != 1 {
		t.Errorf("Expected movies 1, got %d", stats["movies"])
	}

	if stats["tv_shows"] != 0 {
		t.Errorf("Expected tv_shows 0, got %d", stats["tv_shows"])
	}
}

func TestSQLiteStorageSaveTitleUpsert(t *testing.T) {
	tempDir := t.TempDir()

	storage := NewSQLiteStorage(tempDir)
	if err := storage.Initialize(); err != nil {
		t.Fatalf("Failed to initialize storage: %v", err)
	}
	defer storage.Close()

	title := Title{ShowID: "s1", Type: "Movie", Name: "Original"}
	if err := storage.SaveTitle(title); err != nil {
		t.Fatalf("Failed to save title: %v", err)
	}

	title.Name = "Renamed"
	if err := storage.SaveTitle(title); err != nil {
		t.Fatalf("Failed to update title: %v", err)
	}

	titles, err := storage.GetAllTitles()
	if err != nil {
		t.Fatalf("Failed to get titles: %v", err)
	}

	if len(titles) != 1 {
		t.Fatalf("Expected upsert to keep 1 title, got %d", len(titles))
	}
	if titles[0].Name != "Renamed" {
		t.Errorf("Expected updated name, got %s", titles[0].Name)
	}
}

func TestSQLiteStorageImportTitles(t *testing.T) {
	tempDir := t.TempDir()

	storage := NewSQLiteStorage(tempDir)
	if err := storage.Initialize(); err != nil {
		t.Fatalf("Failed to initialize storage: %v", err)
	}
	defer storage.Close()

	year := 2019
	batch := []Title{
		{ShowID: "s1", Type: "Movie", Name: "First", ReleaseYear: &year},
		{ShowID: "s2", Type: "TV Show", Name: "Second"},
		{ShowID: "s3", Type: "Movie", Name: "Third"},
	}

	count, err := storage.ImportTitles(batch)
	if err != nil {
		t.Fatalf("Failed to import titles: %v", err)
	}
	if count != 3 {
		t.Fatalf("Expected 3 imported titles, got %d", count)
	}

	// Re-importing the same batch must not duplicate rows.
	if _, err := storage.ImportTitles(batch); err != nil {
		t.Fatalf("Failed to re-import titles: %v", err)
	}

	stats, err := storage.GetStats()
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats["total"] != 3 {
		t.Errorf("Expected 3 titles after re-import, got %d", stats["total"])
	}
	if stats["movies"] != 2 || stats["tv_shows"] != 1 {
		t.Errorf("Unexpected type counts: %v", stats)
	}

	dist, err := storage.GetTypeDistribution()
	if err != nil {
		t.Fatalf("Failed to get type distribution: %v", err)
	}
	if dist["Movie"] != 2 || dist["TV Show"] != 1 {
		t.Errorf("Unexpected type distribution: %v", dist)
	}
}

func TestFromRecord(t *testing.T) {
	record := dataset.Title{
		ShowID:      "s1",
		Type:        "TV Show",
		Name:        "Some Show",
		Countries:   []string{"India", "United States"},
		ReleaseYear: 2019,
		AddedYear:   2020,
		Genres:      []string{"Comedy", "Drama"},
	}

	title := FromRecord(record)

	if title.Countries != "India, United States" {
		t.Errorf("Expected joined countries, got %q", title.Countries)
	}
	if title.Genres != "Comedy, Drama" {
		t.Errorf("Expected joined genres, got %q", title.Genres)
	}
	if title.ReleaseYear == nil || *title.ReleaseYear != 2019 {
		t.Errorf("Expected release year 2019, got %v", title.ReleaseYear)
	}
	if title.Director != nil {
		t.Errorf("Expected NULL director for empty field, got %v", *title.Director)
	}

	// Zero year maps to NULL so bad rows don't pollute SQL aggregates.
	record.ReleaseYear = 0
	if got := FromRecord(record); got.ReleaseYear != nil {
		t.Errorf("Expected NULL release year, got %v", *got.ReleaseYear)
	}
}

func TestSQLiteStorageInit(t *testing.T) {
	tempDir := t.TempDir()

	storage := NewSQLiteStorage(tempDir)
	err := storage.Initialize()
	if err != nil {
		t.Fatalf("Failed to initialize storage: %v", err)
	}
	defer storage.Close()

	// Check if database file was created
	dbPath := filepath.Join(tempDir, "title_lens.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("Database file was not created")
	}
}
