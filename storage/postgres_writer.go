package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"robot-order-bot/models"
)

// PostgresWriter persists order results to PostgreSQL. It is an optional
// backend: the run works without it and enables it only through config.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS order_results (
			id            SERIAL PRIMARY KEY,
			order_number  VARCHAR(50)  NOT NULL,
			status        VARCHAR(20)  NOT NULL,
			head          TEXT         NOT NULL DEFAULT '',
			attempts      INT          NOT NULL DEFAULT 0,
			receipt_path  TEXT         NOT NULL DEFAULT '',
			error         TEXT         NOT NULL DEFAULT '',
			completed_at  TIMESTAMPTZ,
			recorded_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_order_results_number ON order_results(order_number);
		CREATE INDEX IF NOT EXISTS idx_order_results_status ON order_results(status);
	`)
	return err
}

// Write batch-inserts all order results. Results append across runs; each
// run is distinguished by recorded_at.
func (pw *PostgresWriter) Write(results []*models.OrderResult) error {
	if len(results) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(results); i += batchSize {
		end := i + batchSize
		if end > len(results) {
			end = len(results)
		}
		if err := pw.insertBatch(results[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.OrderResult) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*7)

	for idx, r := range batch {
		base := idx * 7
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))

		var completedAt interface{}
		if !r.CompletedAt.IsZero() {
			completedAt = r.CompletedAt
		}
		valueArgs = append(valueArgs,
			r.Number, r.Status, r.Head, r.Attempts, r.ReceiptPath, r.Err, completedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO order_results (order_number, status, head, attempts, receipt_path, error, completed_at)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
