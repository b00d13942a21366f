package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	dataPath string
}

type StorageInterface interface {
	Initialize() error
	SaveTitle(title Title) error
	ImportTitles(titles []Title) (int, error)
	GetAllTitles() ([]Title, error)
	GetTitlesByType(contentType string) ([]Title, error)
	SearchTitles(name string) ([]Title, error)
	Close() error
}

const titleColumns = `show_id, type, title, director, cast_members, countries,
	release_year, added_year, rating, duration, genres, description`

func NewSQLiteStorage(dataPath string) *SQLiteStorage {
	dbPath := filepath.Join(dataPath, "title_lens.db")
	return &SQLiteStorage{
		dbPath:   dbPath,
		dataPath: dataPath,
	}
}

func (s *SQLiteStorage) Initialize() error {
	// Create data directory if it doesn't exist
	if err := os.MkdirAll(s.dataPath, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	// Open database connection
	db, err := sql.Open("sqlite3", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}

	s.db = db

	// Initialize and run migrations using Goose
	migrationManager := NewMigrationManager(s.db)
	if err := migrationManager.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize migrations: %v", err)
	}

	if err := migrationManager.Up(); err != nil {
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	log.Printf("SQLite database initialized at: %s", s.dbPath)
	return nil
}

// SaveTitle upserts a single title keyed on its show ID.
func (s *SQLiteStorage) SaveTitle(title Title) error {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM titles WHERE show_id = ?)`,
		title.ShowID).Scan(&exists)

	if err != nil {
		return fmt.Errorf("failed to check if title exists: %v", err)
	}

	if exists {
		// For existing records, only update fields but keep original imported_at
		query := `
		UPDATE titles
		SET type = ?, title = ?, director = ?, cast_members = ?, countries = ?,
			release_year = ?, added_year = ?, rating = ?, duration = ?, genres = ?,
			description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE show_id = ?
		`

		_, err := s.db.Exec(query, title.Type, title.Name, title.Director, title.Cast,
			title.Countries, title.ReleaseYear, title.AddedYear, title.Rating,
			title.Duration, title.Genres, title.Description, title.ShowID)
		if err != nil {
			return fmt.Errorf("failed to update title: %v", err)
		}
	} else {
		query := `
		INSERT INTO titles (` + titleColumns + `,
			imported_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		`

		_, err := s.db.Exec(query, title.ShowID, title.Type, title.Name, title.Director,
			title.Cast, title.Countries, title.ReleaseYear, title.AddedYear,
			title.Rating, title.Duration, title.Genres, title.Description)
		if err != nil {
			return fmt.Errorf("failed to insert title: %v", err)
		}
	}

	return nil
}

// ImportTitles bulk-inserts titles in a single transaction and returns
// the number of rows written. Existing show IDs are overwritten so
// re-importing the same file is idempotent.
func (s *SQLiteStorage) ImportTitles(titles []Title) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin import transaction: %v", err)
	}

	query := `
	INSERT INTO titles (` + titleColumns + `,
		imported_at, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(show_id) DO UPDATE SET
		type = excluded.type, title = excluded.title, director = excluded.director,
		cast_members = excluded.cast_members, countries = excluded.countries,
		release_year = excluded.release_year, added_year = excluded.added_year,
		rating = excluded.rating, duration = excluded.duration,
		genres = excluded.genres, description = excluded.description,
		updated_at = CURRENT_TIMESTAMP
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare import statement: %v", err)
	}
	defer stmt.Close()

	count := 0
	for _, title := range titles {
		_, err := stmt.Exec(title.ShowID, title.Type, title.Name, title.Director,
			title.Cast, title.Countries, title.ReleaseYear, title.AddedYear,
			title.Rating, title.Duration, title.Genres, title.Description)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to import title %q: %v", title.ShowID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import transaction: %v", err)
	}

	return count, nil
}

func (s *SQLiteStorage) GetAllTitles() ([]Title, error) {
	query := `
	SELECT ` + titleColumns + `
	FROM titles
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query titles: %v", err)
	}
	defer rows.Close()

	return scanTitles(rows)
}

func (s *SQLiteStorage) GetTitlesByType(contentType string) ([]Title, error) {
	query := `
	SELECT ` + titleColumns + `
	FROM titles
	WHERE type = ?
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(query, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to query titles by type: %v", err)
	}
	defer rows.Close()

	return scanTitles(rows)
}

func (s *SQLiteStorage) SearchTitles(name string) ([]Title, error) {
	query := `
	SELECT ` + titleColumns + `
	FROM titles
	WHERE title LIKE ?
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(query, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search titles: %v", err)
	}
	defer rows.Close()

	return scanTitles(rows)
}

func scanTitles(rows *sql.Rows) ([]Title, error) {
	var titles []Title
	for rows.Next() {
		var title Title
		err := rows.Scan(&title.ShowID, &title.Type, &title.Name, &title.Director,
			&title.Cast, &title.Countries, &title.ReleaseYear, &title.AddedYear,
			&title.Rating, &title.Duration, &title.Genres, &title.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan title: %v", err)
		}
		titles = append(titles, title)
	}

	return titles, nil
}

func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStorage) GetDB() (*sql.DB, error) {
	if s.db == nil {
		// Open database connection if not already open
		db, err := sql.Open("sqlite3", s.dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %v", err)
		}
		s.db = db
	}
	return s.db, nil
}

// GetStats returns headline counts computed in SQL: total rows, movies
// and TV shows.
func (s *SQLiteStorage) GetStats() (map[string]int, error) {
	stats := make(map[string]int)

	var total int
	err := s.db.QueryRow("SELECT COUNT(*) FROM titles").Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %v", err)
	}
	stats["total"] = total

	var movies int
	err = s.db.QueryRow("SELECT COUNT(*) FROM titles WHERE type = 'Movie'").Scan(&movies)
	if err != nil {
		return nil, fmt.Errorf("failed to get movies count: %v", err)
	}
	stats["movies"] = movies

	var shows int
	err = s.db.QueryRow("SELECT COUNT(*) FROM titles WHERE type = 'TV Show'").Scan(&shows)
	if err != nil {
		return nil, fmt.Errorf("failed to get tv shows count: %v", err)
	}
	stats["tv_shows"] = shows

	return stats, nil
}

// GetTypeDistribution groups imported titles by type in SQL, mirroring
// the in-memory aggregate for data that has already been persisted.
func (s *SQLiteStorage) GetTypeDistribution() (map[string]int, error) {
	rows, err := s.db.Query(`
	SELECT type, COUNT(*)
	FROM titles
	WHERE type != ''
	GROUP BY type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query type distribution: %v", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var contentType string
		var count int
		if err := rows.Scan(&contentType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan type distribution: %v", err)
		}
		counts[contentType] = count
	}

	return counts, nil
}

// Migration management methods
func (s *SQLiteStorage) GetMigrationManager() *MigrationManager {
	return NewMigrationManager(s.db)
}

func (s *SQLiteStorage) GetDatabaseVersion() (int64, error) {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return 0, err
	}
	return migrationManager.Version()
}

func (s *SQLiteStorage) RunMigrations() error {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return err
	}
	return migrationManager.Up()
}

func (s *SQLiteStorage) RollbackMigration() error {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return err
	}
	return migrationManager.Down()
}

func (s *SQLiteStorage) ResetDatabase() error {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return err
	}
	return migrationManager.Reset()
}
