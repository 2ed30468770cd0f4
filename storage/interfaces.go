package storage

import "robot-order-bot/models"

// ResultWriter is the interface any results backend must satisfy.
type ResultWriter interface {
	Write(results []*models.OrderResult) error
	Close() error
}
