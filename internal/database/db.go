// Package database persists draw histories and report snapshots in PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/parser"
)

// DB represents a database connection
type DB struct {
	*sql.DB
	logger zerolog.Logger
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the params as a lib/pq connection string
func (p ConnectionParams) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// New creates a new database connection
func New(ctx context.Context, params ConnectionParams) (*DB, error) {
	conn, err := sql.Open("postgres", params.DSN())
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := NewWithDB(conn)
	// Create tables if they don't exist
	if err := db.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB wraps an open connection without pinging or migrating it
func NewWithDB(conn *sql.DB) *DB {
	return &DB{
		DB:     conn,
		logger: log.With().Str("component", "database").Logger(),
	}
}

// Migrate creates the necessary tables if they don't exist
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS draw_records (
			dataset_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			draw_date DATE,
			open_triple CHAR(3) NOT NULL,
			pair CHAR(2) NOT NULL,
			close_triple CHAR(3) NOT NULL,
			PRIMARY KEY (dataset_id, seq)
		)
	`)
	if err != nil {
		return fmt.Errorf("create draw_records: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS report_snapshots (
			id TEXT PRIMARY KEY,
			dataset_id TEXT NOT NULL,
			generated_at TIMESTAMP NOT NULL,
			final_pairs TEXT[] NOT NULL,
			jackpot_triples TEXT[] NOT NULL,
			accuracy DOUBLE PRECISION NOT NULL,
			report JSONB NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create report_snapshots: %w", err)
	}
	return nil
}

// ReplaceRecords stores records as the full history of a dataset
func (db *DB) ReplaceRecords(ctx context.Context, datasetID string, records []model.DrawRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM draw_records WHERE dataset_id = $1`, datasetID); err != nil {
		return fmt.Errorf("clear %s: %w", datasetID, err)
	}
	if err := insertRecords(ctx, tx, datasetID, 0, records); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	db.logger.Info().Str("dataset", datasetID).Int("records", len(records)).Msg("Records replaced")
	return nil
}

// AppendRecords adds records after the dataset's existing history
func (db *DB) AppendRecords(ctx context.Context, datasetID string, records []model.DrawRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq) + 1, 0)
		FROM draw_records
		WHERE dataset_id = $1
	`, datasetID).Scan(&next)
	if err != nil {
		return fmt.Errorf("next sequence for %s: %w", datasetID, err)
	}

	if err := insertRecords(ctx, tx, datasetID, next, records); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	db.logger.Info().Str("dataset", datasetID).Int("records", len(records)).Int("from_seq", next).Msg("Records appended")
	return nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, datasetID string, start int, records []model.DrawRecord) error {
	for i, r := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO draw_records (
				dataset_id, seq, draw_date, open_triple, pair, close_triple
			) VALUES ($1, $2, $3, $4, $5, $6)
		`, datasetID, start+i, nullDate(r.Date), r.Open, r.Pair, r.Close)
		if err != nil {
			return fmt.Errorf("insert %s record %d: %w", datasetID, start+i, err)
		}
	}
	return nil
}

// LoadRecords returns the stored history of a dataset in order
func (db *DB) LoadRecords(ctx context.Context, datasetID string) ([]model.DrawRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT seq, draw_date, open_triple, pair, close_triple
		FROM draw_records
		WHERE dataset_id = $1
		ORDER BY seq
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.DrawRecord
	for rows.Next() {
		var (
			seq  int
			date sql.NullTime
			r    model.DrawRecord
		)
		if err := rows.Scan(&seq, &date, &r.Open, &r.Pair, &r.Close); err != nil {
			return nil, err
		}
		if err := parser.Validate(r); err != nil {
			return nil, fmt.Errorf("%s record %d: %w", datasetID, seq, err)
		}
		if date.Valid {
			r.Date = date.Time
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveSnapshot records an assembled report
func (db *DB) SaveSnapshot(ctx context.Context, r model.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO report_snapshots (
			id, dataset_id, generated_at, final_pairs, jackpot_triples, accuracy, report
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ID, r.DatasetID, r.GeneratedAt, pq.Array(r.Final4Pairs), pq.Array(r.JackpotTriples), r.HistoricalAccuracy, payload)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", r.ID, err)
	}
	return nil
}

// LatestFinalPairs returns the final pairs of the most recent snapshot of a
// dataset, or nil when none was saved
func (db *DB) LatestFinalPairs(ctx context.Context, datasetID string) ([]string, error) {
	var pairs []string
	err := db.QueryRowContext(ctx, `
		SELECT final_pairs
		FROM report_snapshots
		WHERE dataset_id = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`, datasetID).Scan(pq.Array(&pairs))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// Datasets lists the ids with stored records
func (db *DB) Datasets(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT dataset_id FROM draw_records ORDER BY dataset_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
