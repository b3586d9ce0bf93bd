// Package backend builds the configured record store and its optional
// change notifier.
package backend

import (
	"context"

	"expensetracker/internal/amqp"
	"expensetracker/internal/store"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the store instance, the optional AMQP publisher and a
// cleanup function releasing both.
type Result struct {
	Store store.Store
	// Notifier is nil when AMQP is not configured or unreachable.
	Notifier *amqp.Client
	Cleanup  CleanupFunc
}

// Factory creates stores based on configuration
type Factory interface {
	CreateStore(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for store creation
type Config struct {
	Type BackendType

	// csv specific
	RecordsFile string

	// sqlite specific
	SQLiteDBPath string

	// Change events, optional for every backend
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	CSVBackend    BackendType = "csv"
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case CSVBackend, MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
