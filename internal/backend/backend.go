// Package backend selects and wires a row-store implementation:
// memory for local runs and tests, sheets for direct Google Sheets
// access, sqlite for local persistence with asynchronous sheet sync.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"ledgerbot/internal/amqp"
	"ledgerbot/internal/sheets"
	gsheet "ledgerbot/internal/sheets/google"
	"ledgerbot/internal/sheets/memory"
	"ledgerbot/internal/storage"
)

// Type names a backend implementation.
type Type string

const (
	Memory Type = "memory"
	Sheets Type = "sheets"
	SQLite Type = "sqlite"
)

func (t Type) String() string { return string(t) }

// IsValid reports whether the type is one of the known backends.
func (t Type) IsValid() bool {
	switch t {
	case Memory, Sheets, SQLite:
		return true
	default:
		return false
	}
}

// Types returns every valid backend type.
func Types() []Type { return []Type{Memory, Sheets, SQLite} }

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Config holds what backend creation needs beyond the environment the
// Google client reads itself.
type Config struct {
	Type         Type
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Result is the wired store plus an optional cleanup.
type Result struct {
	Store   sheets.RowStore
	Cleanup CleanupFunc
}

// Create builds the configured backend.
func Create(ctx context.Context, cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Type {
	case Sheets:
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		logger.Info("Initialized Google Sheets backend")
		return &Result{Store: cli}, nil

	case SQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		var publisher *amqp.Client
		if cfg.AMQPURL != "" {
			publisher, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				logger.Warn("Failed to initialize AMQP client, continuing without sheet sync", "error", err)
				publisher = nil
			} else {
				logger.Info("Initialized AMQP publisher", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
			}
		}
		store := newSyncedStore(repo, publisher)
		cleanup := func() error {
			if publisher != nil {
				publisher.Close()
			}
			return repo.Close()
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath, "amqp_enabled", publisher != nil)
		return &Result{Store: store, Cleanup: cleanup}, nil

	case Memory:
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
}
