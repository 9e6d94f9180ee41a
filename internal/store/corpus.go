package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"jobagg-engine/internal/domain"
)

// The corpus is a mapping from job URL to canonical record: url is the
// primary key, is_recruiter persists NULL for unknown, and the vendor
// passthrough fields travel as one JSON column.

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  url TEXT PRIMARY KEY,
  company TEXT NOT NULL,
  company_slug TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  ats TEXT NOT NULL DEFAULT '',
  is_recruiter INTEGER,
  scraped_at TEXT NOT NULL DEFAULT '',
  extra TEXT NOT NULL DEFAULT '{}'
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_scraped_at
ON jobs(scraped_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  last_updated TEXT NOT NULL,
  total_jobs INTEGER NOT NULL,
  active_companies INTEGER NOT NULL,
  recruiter_jobs INTEGER NOT NULL,
  source TEXT NOT NULL DEFAULT '[]'
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// extra is the JSON shape of the passthrough column.
type extra struct {
	VendorID    string   `json:"id,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	Departments []string `json:"departments,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ReadAll loads the whole corpus; called once at the start of a run.
func ReadAll(ctx context.Context, db *sql.DB) ([]domain.Job, error) {
	rows, err := db.QueryContext(ctx, `
SELECT url, company, company_slug, title, location, ats, is_recruiter, scraped_at, extra
FROM jobs;`)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var j domain.Job
		var rec sql.NullBool
		var extraJSON string
		if err := rows.Scan(&j.URL, &j.Company, &j.CompanySlug, &j.Title,
			&j.Location, &j.ATS, &rec, &j.ScrapedAt, &extraJSON); err != nil {
			return nil, err
		}
		if rec.Valid {
			v := rec.Bool
			j.IsRecruiter = &v
		}
		var ex extra
		if err := json.Unmarshal([]byte(extraJSON), &ex); err == nil {
			j.VendorID = ex.VendorID
			j.UpdatedAt = ex.UpdatedAt
			j.Departments = ex.Departments
			j.Description = ex.Description
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// ReplaceAll rewrites the corpus and metadata wholesale in one transaction;
// called once at the end of a run.
func ReplaceAll(ctx context.Context, db *sql.DB, jobs []domain.Job, md domain.Metadata) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs;`); err != nil {
		return fmt.Errorf("clear corpus: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO jobs(url, company, company_slug, title, location, ats, is_recruiter, scraped_at, extra)
VALUES(?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, j := range jobs {
		if j.URL == "" {
			continue
		}
		var rec any
		if j.IsRecruiter != nil {
			rec = *j.IsRecruiter
		}
		exB, _ := json.Marshal(extra{
			VendorID:    j.VendorID,
			UpdatedAt:   j.UpdatedAt,
			Departments: j.Departments,
			Description: j.Description,
		})
		if _, err := stmt.ExecContext(ctx, j.URL, j.Company, j.CompanySlug,
			j.Title, j.Location, j.ATS, rec, j.ScrapedAt, string(exB)); err != nil {
			return fmt.Errorf("insert job url=%q: %w", j.URL, err)
		}
	}

	srcB, _ := json.Marshal(md.Source)
	if _, err := tx.ExecContext(ctx, `
INSERT INTO metadata(id, last_updated, total_jobs, active_companies, recruiter_jobs, source)
VALUES(1,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  last_updated = excluded.last_updated,
  total_jobs = excluded.total_jobs,
  active_companies = excluded.active_companies,
  recruiter_jobs = excluded.recruiter_jobs,
  source = excluded.source;`,
		md.LastUpdated, md.TotalJobs, md.ActiveCompanies, md.RecruiterJobs, string(srcB),
	); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	return tx.Commit()
}

// ReadMetadata returns the persisted summary; ok is false before the first run.
func ReadMetadata(ctx context.Context, db *sql.DB) (domain.Metadata, bool, error) {
	var md domain.Metadata
	var srcJSON string
	err := db.QueryRowContext(ctx, `
SELECT last_updated, total_jobs, active_companies, recruiter_jobs, source
FROM metadata WHERE id = 1;`).Scan(
		&md.LastUpdated, &md.TotalJobs, &md.ActiveCompanies, &md.RecruiterJobs, &srcJSON)
	if err == sql.ErrNoRows {
		return md, false, nil
	}
	if err != nil {
		return md, false, err
	}
	_ = json.Unmarshal([]byte(srcJSON), &md.Source)
	return md, true, nil
}
