package report

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/careworks/cincensus/internal/rules"
)

//go:embed schema.sql
var schemaSQL string

// levelTables maps each level to its findings table. The names are part of
// the report's external contract.
var levelTables = map[rules.Level]string{
	rules.LevelReturn:         "return_findings",
	rules.LevelChild:          "child_findings",
	rules.LevelEpisode:        "episode_findings",
	rules.LevelAssessment:     "assessment_findings",
	rules.LevelEnquiry:        "enquiry_findings",
	rules.LevelPlan:           "plan_findings",
	rules.LevelProtectionPlan: "protection_plan_findings",
}

// WriteSQLite persists the report at path, creating the database and schema
// when needed. Each call appends one run; the whole run is written in a
// single transaction.
func (r *Report) WriteSQLite(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening report database: %w", err)
	}
	defer db.Close()

	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("applying %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("applying report schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning report transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO runs (run_id, errors, queries) VALUES (?, ?, ?)",
		r.RunID, r.Errors, r.Queries,
	); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	for _, section := range r.Sections {
		table := levelTables[section.Level]
		stmt, err := tx.Prepare(fmt.Sprintf(
			`INSERT INTO %s (run_id, code, severity, message, subject_id, la_child_id, upn, birth_date, keys)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, table))
		if err != nil {
			return fmt.Errorf("preparing %s insert: %w", table, err)
		}
		for _, f := range section.Findings {
			keys, err := json.Marshal(f.Subject.Keys)
			if err != nil {
				stmt.Close()
				return fmt.Errorf("encoding subject keys: %w", err)
			}
			birth := ""
			if f.Subject.BirthDate != nil {
				birth = f.Subject.BirthDate.String()
			}
			if _, err := stmt.Exec(
				r.RunID, f.Code, string(f.Severity), f.Message,
				int64(f.Subject.ID), f.Subject.LAChildID, f.Subject.UPN, birth, string(keys),
			); err != nil {
				stmt.Close()
				return fmt.Errorf("inserting into %s: %w", table, err)
			}
		}
		stmt.Close()
	}

	return tx.Commit()
}
