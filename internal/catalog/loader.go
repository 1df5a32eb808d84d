package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/pakar/internal/storage"
	"github.com/hyperjump/pakar/internal/tabular"
)

// ErrDataUnavailable is returned when a catalog source cannot be read or has no usable
// price column. Recommendation queries cannot be served without a catalog.
var ErrDataUnavailable = errors.New("catalog data unavailable")

// Loader reads catalog sources and normalizes them into snapshots.
type Loader struct {
	reader *tabular.Reader
	logger *zap.Logger
}

// NewLoader creates a Loader. A nil logger disables logging.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{reader: tabular.NewReader(), logger: logger}
}

// IsDatabase reports whether path names a SQLite catalog rather than a spreadsheet file.
func IsDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Load reads path and returns a normalized snapshot. Spreadsheet files are parsed by
// extension; .db/.sqlite paths are read from an imported SQLite catalog.
func (l *Loader) Load(ctx context.Context, path string) (*Catalog, error) {
	var (
		t   *tabular.Table
		err error
	)
	if IsDatabase(path) {
		t, err = l.readDatabase(ctx, path)
	} else {
		t, err = l.reader.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, path, err)
	}
	return l.LoadTable(t, path)
}

func (l *Loader) readDatabase(ctx context.Context, path string) (*tabular.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.ReadTable(ctx)
}

// LoadTable normalizes an already-read table. It fails only when no price column can be
// resolved; every other problem degrades to default values per cell.
func (l *Loader) LoadTable(t *tabular.Table, source string) (*Catalog, error) {
	if t == nil || len(t.Header) == 0 {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, source, tabular.ErrNoHeader)
	}
	s := resolveSchema(t.Header)
	if !s.hasPrice() {
		l.logger.Error("catalog has no price column", zap.String("source", source), zap.Strings("header", t.Header))
		return nil, fmt.Errorf("%w: %s: no price column", ErrDataUnavailable, source)
	}
	products := normalizeTable(s, t)
	c := New(products, source)
	l.logger.Info("catalog loaded",
		zap.String("source", source),
		zap.String("catalog_id", c.ID()),
		zap.Int("products", c.Len()),
		zap.Strings("missing_numeric_columns", s.missing),
	)
	return c, nil
}
