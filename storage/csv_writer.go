package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"robot-order-bot/models"
)

// CSVWriter writes per-order results to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	// Write header
	if err := w.Write([]string{
		"order_number", "status", "head", "attempts", "receipt_path", "screenshot_path", "completed_at", "error",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per order result.
func (c *CSVWriter) Write(results []*models.OrderResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range results {
		completedAt := ""
		if !r.CompletedAt.IsZero() {
			completedAt = r.CompletedAt.Format(time.RFC3339)
		}
		row := []string{
			r.Number,
			r.Status,
			r.Head,
			strconv.Itoa(r.Attempts),
			r.ReceiptPath,
			r.ScreenshotPath,
			completedAt,
			r.Err,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
