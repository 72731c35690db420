package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the name of the history database file.
const FileName = "itemreport.db"

// ErrNotFound is returned when a report record does not exist.
var ErrNotFound = errors.New("report not found")

// HistoryDB stores generated reports in SQLite.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		report_type TEXT NOT NULL,
		user_name TEXT NOT NULL,
		role TEXT NOT NULL,
		input_count INTEGER NOT NULL,
		visible_count INTEGER NOT NULL,
		total REAL NOT NULL,
		body TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reports_run ON reports(run_id);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON reports(timestamp);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// Record is a stored report.
type Record struct {
	ID           int64
	RunID        string
	ReportType   string
	UserName     string
	Role         string
	InputCount   int
	VisibleCount int
	Total        float64
	Body         string
	Timestamp    time.Time
}

// NewRunID returns an identifier shared by all reports of one invocation.
func NewRunID() string {
	return uuid.NewString()
}

// SaveReport stores a record and sets its ID.
// An empty RunID is replaced with a fresh one.
func (h *HistoryDB) SaveReport(ctx context.Context, record *Record) error {
	if record.RunID == "" {
		record.RunID = NewRunID()
	}

	query := `
	INSERT INTO reports (run_id, report_type, user_name, role, input_count, visible_count, total, body)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := h.db.ExecContext(ctx, query,
		record.RunID,
		record.ReportType,
		record.UserName,
		record.Role,
		record.InputCount,
		record.VisibleCount,
		record.Total,
		record.Body,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read report id: %w", err)
	}
	record.ID = id
	return nil
}

// ListReports returns the most recent records first, without bodies.
// A non-positive limit returns every record.
func (h *HistoryDB) ListReports(ctx context.Context, limit int) ([]Record, error) {
	query := `
	SELECT id, run_id, report_type, user_name, role, input_count, visible_count, total, timestamp
	FROM reports
	ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var timestamp string
		if err := rows.Scan(&r.ID, &r.RunID, &r.ReportType, &r.UserName, &r.Role,
			&r.InputCount, &r.VisibleCount, &r.Total, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		r.Timestamp = parseTimestamp(timestamp)
		records = append(records, r)
	}

	return records, rows.Err()
}

// GetReport returns the record with the given ID, including its body.
func (h *HistoryDB) GetReport(ctx context.Context, id int64) (*Record, error) {
	query := `
	SELECT id, run_id, report_type, user_name, role, input_count, visible_count, total, body, timestamp
	FROM reports
	WHERE id = ?
	`

	var r Record
	var timestamp string
	err := h.db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.RunID, &r.ReportType, &r.UserName,
		&r.Role, &r.InputCount, &r.VisibleCount, &r.Total, &r.Body, &timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	r.Timestamp = parseTimestamp(timestamp)
	return &r, nil
}

// CountReports returns the number of stored records.
func (h *HistoryDB) CountReports(ctx context.Context) (int, error) {
	var n int
	if err := h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return n, nil
}

// parseTimestamp parses SQLite timestamps, returning the zero time on failure.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
