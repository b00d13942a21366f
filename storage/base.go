package storage

import (
	"strings"

	"title-lens/dataset"
)

// Title is the persisted form of a catalog record. Multi-valued fields
// keep their source delimiting so a row round-trips losslessly.
type Title struct {
	ShowID      string  `json:"show_id"`
	Type        string  `json:"type"` // "Movie" or "TV Show"
	Name        string  `json:"title"`
	Director    *string `json:"director,omitempty"`
	Cast        *string `json:"cast,omitempty"`
	Countries   string  `json:"countries"`
	ReleaseYear *int    `json:"release_year,omitempty"`
	AddedYear   *int    `json:"added_year,omitempty"`
	Rating      *string `json:"rating,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	Genres      string  `json:"genres"`
	Description *string `json:"description,omitempty"`
}

// FromRecord converts a loaded catalog record into its persisted form.
// Zero-valued optional fields become NULLs.
func FromRecord(t dataset.Title) Title {
	title := Title{
		ShowID:    t.ShowID,
		Type:      t.Type,
		Name:      t.Name,
		Countries: strings.Join(t.Countries, ", "),
		Genres:    strings.Join(t.Genres, ", "),
	}

	if t.Director != "" {
		title.Director = &t.Director
	}
	if t.Cast != "" {
		title.Cast = &t.Cast
	}
	if t.ReleaseYear > 0 {
		year := t.ReleaseYear
		title.ReleaseYear = &year
	}
	if t.AddedYear > 0 {
		year := t.AddedYear
		title.AddedYear = &year
	}
	if t.Rating != "" {
		title.Rating = &t.Rating
	}
	if t.Duration != "" {
		title.Duration = &t.Duration
	}
	if t.Description != "" {
		title.Description = &t.Description
	}

	return title
}
