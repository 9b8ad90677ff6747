// Package storage provides the SQLite profile store. Search hits carry only
// document IDs; the store is where full profiles are hydrated from.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/rireki/internal/models"
)

// ErrNotFound is returned when a profile ID does not exist.
var ErrNotFound = errors.New("profile not found")

// ProfileStore implements profile persistence using SQLite.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not
// exist.
func NewProfileStore(dbPath string) (*ProfileStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &ProfileStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		job_title TEXT NOT NULL,
		industry TEXT NOT NULL,
		summary TEXT NOT NULL,
		location_country TEXT NOT NULL,
		education TEXT NOT NULL,
		experience TEXT NOT NULL,
		skills TEXT NOT NULL,
		job_summary TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Reset drops all stored profiles. Used by ingest, which replaces the
// corpus rather than merging into it.
func (s *ProfileStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM profiles"); err != nil {
		return fmt.Errorf("failed to reset profiles: %w", err)
	}
	return nil
}

// CreateProfile inserts a profile. Tag columns are stored as JSON arrays.
func (s *ProfileStore) CreateProfile(ctx context.Context, p *models.ProfileRecord) error {
	education, err := marshalTags(p.Education)
	if err != nil {
		return err
	}
	experience, err := marshalTags(p.Experience)
	if err != nil {
		return err
	}
	skills, err := marshalTags(p.Skills)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, full_name, job_title, industry, summary,
		   location_country, education, experience, skills, job_summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FullName, p.JobTitle, p.Industry, p.Summary,
		p.LocationCountry, education, experience, skills, p.JobSummary,
	)
	if err != nil {
		return fmt.Errorf("failed to store profile %s: %w", p.ID, err)
	}
	return nil
}

// GetProfile returns a profile by ID.
func (s *ProfileStore) GetProfile(ctx context.Context, id string) (*models.ProfileRecord, error) {
	var p models.ProfileRecord
	var education, experience, skills string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, full_name, job_title, industry, summary, location_country,
		   education, experience, skills, job_summary
		 FROM profiles WHERE id = ?`, id,
	).Scan(&p.ID, &p.FullName, &p.JobTitle, &p.Industry, &p.Summary,
		&p.LocationCountry, &education, &experience, &skills, &p.JobSummary)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if p.Education, err = unmarshalTags(education); err != nil {
		return nil, err
	}
	if p.Experience, err = unmarshalTags(experience); err != nil {
		return nil, err
	}
	if p.Skills, err = unmarshalTags(skills); err != nil {
		return nil, err
	}
	return &p, nil
}

// CountProfiles returns the number of stored profiles.
func (s *ProfileStore) CountProfiles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&count)
	return count, err
}

// Close closes the database.
func (s *ProfileStore) Close() error {
	return s.db.Close()
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(b), nil
}

func unmarshalTags(raw string) ([]string, error) {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}
