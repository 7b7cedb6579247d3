package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/bugboard/internal/model"
)

// SQLiteStore implements Store on a SQLite database. The dashboard opens it
// at ":memory:" so the session state disappears with the process.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens a SQLite database at dbPath and runs any pending
// schema migrations. Use ":memory:" for a session-scoped database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection keeps the in-memory database alive and shared;
	// each new connection to :memory: would otherwise see a fresh database.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ticketRow is the database shape of a ticket.
type ticketRow struct {
	ID                  string    `db:"id"`
	Title               string    `db:"title"`
	Description         string    `db:"description"`
	Repository          string    `db:"repository"`
	Severity            string    `db:"severity"`
	Status              string    `db:"status"`
	Labels              string    `db:"labels"`
	AssignedAt          time.Time `db:"assigned_at"`
	EstimatedCompletion int       `db:"estimated_completion"`
	Author              string    `db:"author"`
	Comments            int       `db:"comments"`
	URL                 string    `db:"url"`
	IsPullRequest       bool      `db:"is_pull_request"`
	Position            int       `db:"position"`
}

func (r ticketRow) toModel() (model.Ticket, error) {
	var labels []string
	if err := json.Unmarshal([]byte(r.Labels), &labels); err != nil {
		return model.Ticket{}, fmt.Errorf("unmarshaling labels for ticket %s: %w", r.ID, err)
	}

	return model.Ticket{
		ID:                  r.ID,
		Title:               r.Title,
		Description:         r.Description,
		Repository:          r.Repository,
		Severity:            model.Severity(r.Severity),
		Status:              r.Status,
		Labels:              labels,
		AssignedAt:          r.AssignedAt,
		EstimatedCompletion: r.EstimatedCompletion,
		Author:              r.Author,
		Comments:            r.Comments,
		URL:                 r.URL,
		IsPullRequest:       r.IsPullRequest,
	}, nil
}

// ReplaceTickets swaps the whole collection inside one transaction.
func (s *SQLiteStore) ReplaceTickets(ctx context.Context, tickets []model.Ticket) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tickets"); err != nil {
		return fmt.Errorf("clearing tickets: %w", err)
	}

	const query = `
		INSERT INTO tickets (
			id, title, description, repository,
			severity, status, labels, assigned_at,
			estimated_completion, author, comments, url,
			is_pull_request, position
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for i, t := range tickets {
		labels, err := json.Marshal(t.Labels)
		if err != nil {
			return fmt.Errorf("marshaling labels for ticket %s: %w", t.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			t.ID, t.Title, t.Description, t.Repository,
			string(t.Severity), t.Status, string(labels), t.AssignedAt.UTC(),
			t.EstimatedCompletion, t.Author, t.Comments, t.URL,
			t.IsPullRequest, i,
		)
		if err != nil {
			return fmt.Errorf("inserting ticket %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// GetTickets returns the collection in source order.
func (s *SQLiteStore) GetTickets(ctx context.Context) ([]model.Ticket, error) {
	var rows []ticketRow
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM tickets ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying tickets: %w", err)
	}

	tickets := make([]model.Ticket, 0, len(rows))
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// GetTicketByID returns one ticket, or nil when absent.
func (s *SQLiteStore) GetTicketByID(ctx context.Context, id string) (*model.Ticket, error) {
	var row ticketRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM tickets WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying ticket %s: %w", id, err)
	}

	t, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTicket removes one ticket.
func (s *SQLiteStore) DeleteTicket(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tickets WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting ticket %s: %w", id, err)
	}
	return nil
}

// ResolveTicket marks a ticket resolved.
func (s *SQLiteStore) ResolveTicket(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE tickets SET status = ? WHERE id = ?",
		model.StatusResolved, id,
	)
	if err != nil {
		return fmt.Errorf("resolving ticket %s: %w", id, err)
	}
	return nil
}

// ClearTickets empties the collection.
func (s *SQLiteStore) ClearTickets(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tickets"); err != nil {
		return fmt.Errorf("clearing tickets: %w", err)
	}
	return nil
}

// TicketCounts derives the dashboard statistics in a single query.
func (s *SQLiteStore) TicketCounts(ctx context.Context) (model.Counts, error) {
	var row struct {
		Open         int `db:"open"`
		PullRequests int `db:"pull_requests"`
		Resolved     int `db:"resolved"`
		InProgress   int `db:"in_progress"`
	}

	const query = `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'open' AND is_pull_request = 0 THEN 1 ELSE 0 END), 0) AS open,
			COALESCE(SUM(CASE WHEN is_pull_request = 1 THEN 1 ELSE 0 END), 0) AS pull_requests,
			COALESCE(SUM(CASE WHEN status = 'resolved' THEN 1 ELSE 0 END), 0) AS resolved,
			COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress
		FROM tickets`

	if err := s.db.GetContext(ctx, &row, query); err != nil {
		return model.Counts{}, fmt.Errorf("counting tickets: %w", err)
	}

	return model.Counts{
		Open:         row.Open,
		PullRequests: row.PullRequests,
		Resolved:     row.Resolved,
		InProgress:   row.InProgress,
	}, nil
}

// AppendActivity records one activity entry.
func (s *SQLiteStore) AppendActivity(ctx context.Context, rec model.ActivityRecord) error {
	const query = `
		INSERT INTO activities (id, ticket_id, timestamp, action, details, type)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx,
		query,
		rec.ID, rec.TicketID, rec.Timestamp.UTC(), rec.Action, rec.Details, string(rec.Type),
	)
	if err != nil {
		return fmt.Errorf("appending activity %s: %w", rec.ID, err)
	}
	return nil
}

// activityRow is the database shape of an activity record.
type activityRow struct {
	ID        string    `db:"id"`
	TicketID  string    `db:"ticket_id"`
	Timestamp time.Time `db:"timestamp"`
	Action    string    `db:"action"`
	Details   string    `db:"details"`
	Type      string    `db:"type"`
}

// GetActivities returns all activity records, newest first.
func (s *SQLiteStore) GetActivities(ctx context.Context) ([]model.ActivityRecord, error) {
	var rows []activityRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM activities ORDER BY timestamp DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}

	records := make([]model.ActivityRecord, len(rows))
	for i, r := range rows {
		records[i] = model.ActivityRecord{
			ID:        r.ID,
			TicketID:  r.TicketID,
			Timestamp: r.Timestamp,
			Action:    r.Action,
			Details:   r.Details,
			Type:      model.ActivityType(r.Type),
		}
	}
	return records, nil
}

// ClearActivities empties the activity log.
func (s *SQLiteStore) ClearActivities(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM activities"); err != nil {
		return fmt.Errorf("clearing activities: %w", err)
	}
	return nil
}
