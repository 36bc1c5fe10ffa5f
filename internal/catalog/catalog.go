// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package catalog stores parsed edit lists and their edits in SQLite.
package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mrjoshuak/cmx3600"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned for an unknown edit list id.
var ErrNotFound = errors.New("catalog: edit list not found")

// EditList is the stored summary of a parsed list.
type EditList struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Title             string    `json:"title"`
	Format            string    `json:"format"`
	DropFrame         bool      `json:"drop_frame"`
	Channels          string    `json:"channels"`
	EventCount        int       `json:"event_count"`
	EditCount         int       `json:"edit_count"`
	UnrecognizedCount int       `json:"unrecognized_count"`
	CreatedAt         time.Time `json:"created_at"`
}

// Edit is one stored edit. EffectDuration is nil when the transition has no
// operand.
type Edit struct {
	ID             int64  `json:"id"`
	ListID         int64  `json:"list_id"`
	Position       int    `json:"position"`
	Line           int    `json:"line"`
	EventNumber    string `json:"event_number"`
	Source         string `json:"source"`
	Channels       string `json:"channels"`
	Transition     string `json:"transition"`
	EffectDuration *int   `json:"effect_duration,omitempty"`
	SourceIn       string `json:"source_in"`
	SourceOut      string `json:"source_out"`
	RecordIn       string `json:"record_in"`
	RecordOut      string `json:"record_out"`
	ClipName       string `json:"clip_name,omitempty"`
	SourceFile     string `json:"source_file,omitempty"`
}

type Store struct {
	conn   *sql.DB
	logger *slog.Logger
}

// Open opens or creates the database at path and applies pending
// migrations. logger may be nil.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	s := &Store{conn: conn, logger: logger}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	migrations, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, m := range migrations {
		if m.IsDir() {
			continue
		}
		name := m.Name()
		if s.isMigrationApplied(name) {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.conn.Exec(string(content)); err != nil {
			return fmt.Errorf("execute migration %s: %w", name, err)
		}
		if _, err := s.conn.Exec("INSERT INTO _migrations (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if s.logger != nil {
			s.logger.Info("applied migration", "name", name)
		}
	}
	return nil
}

func (s *Store) isMigrationApplied(name string) bool {
	var applied int
	err := s.conn.QueryRow("SELECT 1 FROM _migrations WHERE name = ?", name).Scan(&applied)
	return err == nil && applied == 1
}

// SaveEditList stores edl and all of its edits under name and returns the
// new list id.
func (s *Store) SaveEditList(ctx context.Context, name string, edl *cmx3600.EditList) (int64, error) {
	events := edl.Events()
	edits := edl.Edits()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO edit_lists (name, title, format, drop_frame, channels,
			event_count, edit_count, unrecognized_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name, edl.Title(), string(edl.Format()), edl.DropFrame(), edl.Channels().String(),
		len(events), len(edits), len(edl.UnrecognizedStatements()),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert edit list: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("edit list id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO edits (list_id, position, line, event_number, source, channels,
			transition, effect_duration, source_in, source_out, record_in, record_out,
			clip_name, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare edit insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range edits {
		var duration sql.NullInt64
		if d, err := e.Transition().EffectDuration(); err == nil {
			duration = sql.NullInt64{Int64: int64(d), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			id, i, e.LineNumber(), e.EventNumber(), e.Source(), e.Channels().String(),
			e.Transition().String(), duration,
			e.SourceIn(), e.SourceOut(), e.RecordIn(), e.RecordOut(),
			nullString(e.ClipName()), nullString(e.SourceFile()))
		if err != nil {
			return 0, fmt.Errorf("insert edit %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("stored edit list", "id", id, "name", name, "edits", len(edits))
	}
	return id, nil
}

const editListColumns = `id, name, title, format, drop_frame, channels,
	event_count, edit_count, unrecognized_count, created_at`

// GetEditList returns the list with the given id, or ErrNotFound.
func (s *Store) GetEditList(ctx context.Context, id int64) (*EditList, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT `+editListColumns+` FROM edit_lists WHERE id = ?`, id)
	l, err := scanEditList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get edit list %d: %w", id, err)
	}
	return l, nil
}

// ListEditLists returns every stored list, newest first.
func (s *Store) ListEditLists(ctx context.Context) ([]*EditList, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+editListColumns+` FROM edit_lists ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list edit lists: %w", err)
	}
	defer rows.Close()

	var out []*EditList
	for rows.Next() {
		l, err := scanEditList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan edit list: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListEdits returns the edits of a list in list order, or ErrNotFound.
func (s *Store) ListEdits(ctx context.Context, listID int64) ([]*Edit, error) {
	if _, err := s.GetEditList(ctx, listID); err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, list_id, position, line, event_number, source, channels,
			transition, effect_duration, source_in, source_out, record_in, record_out,
			clip_name, source_file
		FROM edits WHERE list_id = ? ORDER BY position`, listID)
	if err != nil {
		return nil, fmt.Errorf("list edits: %w", err)
	}
	defer rows.Close()

	var out []*Edit
	for rows.Next() {
		var (
			e          Edit
			duration   sql.NullInt64
			clip, file sql.NullString
		)
		err := rows.Scan(&e.ID, &e.ListID, &e.Position, &e.Line, &e.EventNumber,
			&e.Source, &e.Channels, &e.Transition, &duration,
			&e.SourceIn, &e.SourceOut, &e.RecordIn, &e.RecordOut, &clip, &file)
		if err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		if duration.Valid {
			d := int(duration.Int64)
			e.EffectDuration = &d
		}
		e.ClipName = clip.String
		e.SourceFile = file.String
		out = append(out, &e)
	}
	return out, rows.Err()
}

// DeleteEditList removes a list and its edits, or returns ErrNotFound.
func (s *Store) DeleteEditList(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM edit_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete edit list %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete edit list %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEditList(row scanner) (*EditList, error) {
	var (
		l       EditList
		created string
	)
	err := row.Scan(&l.ID, &l.Name, &l.Title, &l.Format, &l.DropFrame, &l.Channels,
		&l.EventCount, &l.EditCount, &l.UnrecognizedCount, &created)
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		l.CreatedAt = t
	}
	return &l, nil
}

func nullString(s string, ok bool) sql.NullString {
	return sql.NullString{String: s, Valid: ok}
}
