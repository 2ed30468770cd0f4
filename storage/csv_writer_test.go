package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"robot-order-bot/models"
)

func TestCSVWriterWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	results := []*models.OrderResult{
		{Number: "1", Head: "Roll-a-thor head", Status: models.StatusCompleted, Attempts: 1,
			ReceiptPath: "output/receipts/1.pdf", ScreenshotPath: "output/screenshots/1.png",
			CompletedAt: time.Now()},
		{Number: "2", Head: "D.A.V.E head", Status: models.StatusFailed, Attempts: 10,
			Err: "submission rejected"},
	}
	if err := w.Write(results); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open results: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse results: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "order_number" {
		t.Errorf("header: got %q", rows[0][0])
	}
	if rows[1][0] != "1" || rows[1][1] != models.StatusCompleted {
		t.Errorf("first row: got %v", rows[1])
	}
	if rows[2][3] != "10" {
		t.Errorf("failed row attempts: got %q, want 10", rows[2][3])
	}
	if rows[2][6] != "" {
		t.Errorf("failed row completed_at should be empty, got %q", rows[2][6])
	}
}

func TestCSVWriterTruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	w1, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	_ = w1.Write([]*models.OrderResult{{Number: "1", Status: models.StatusCompleted, Attempts: 1}})
	_ = w1.Close()

	w2, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter (second run): %v", err)
	}
	_ = w2.Write([]*models.OrderResult{{Number: "9", Status: models.StatusCompleted, Attempts: 1}})
	_ = w2.Close()

	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected header + 1 row after rerun, got %d rows", len(rows))
	}
	if rows[1][0] != "9" {
		t.Errorf("rerun row: got %q, want 9", rows[1][0])
	}
}
