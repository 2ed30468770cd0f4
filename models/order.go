package models

import "time"

// Order is one row of the orders CSV describing a single robot to order.
// Fields are kept as strings exactly as they appear in the file; the form
// is the authority on what they mean.
type Order struct {
	Number  string
	Head    string
	Body    string
	Legs    string
	Address string
}

// Result statuses for a processed order.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// OrderResult records the outcome of submitting a single order.
type OrderResult struct {
	Number         string
	Head           string
	Status         string
	Attempts       int
	ReceiptPath    string
	ScreenshotPath string
	CompletedAt    time.Time
	Err            string
}

// RunReport holds the aggregate outcome of a full run.
type RunReport struct {
	TotalOrders   int
	Completed     int
	Failed        int
	TotalAttempts int
	Retried       int
	FailedNumbers []string
	OrdersByHead  map[string]int
}
