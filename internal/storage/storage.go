// Package storage persists raw catalog tables so the offline scraper output can be
// imported once and loaded by the recommender later.
package storage

import (
	"context"

	"github.com/hyperjump/pakar/internal/tabular"
)

// Storage defines catalog table persistence operations.
type Storage interface {
	// ImportTable replaces the stored table with t.
	ImportTable(ctx context.Context, t *tabular.Table) error
	// ReadTable returns the stored table in import order.
	ReadTable(ctx context.Context) (*tabular.Table, error)

	// Stats
	CountRows(ctx context.Context) (int64, error)
	SizeBytes(ctx context.Context) (int64, error)

	Close() error
}
