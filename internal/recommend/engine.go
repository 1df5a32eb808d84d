// Package recommend answers laptop recommendation queries against the active catalog
// snapshot: filter, score, sort and page, with a result cache per snapshot.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/pakar/internal/cache"
	"github.com/hyperjump/pakar/internal/catalog"
	"github.com/hyperjump/pakar/internal/config"
	"github.com/hyperjump/pakar/internal/keyword"
	"github.com/hyperjump/pakar/internal/metrics"
	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/ranking"
	"github.com/hyperjump/pakar/internal/rules"
)

// Engine is safe for concurrent use. Queries read whichever snapshot is current when
// they start; Reload installs a new one without blocking them.
type Engine struct {
	store   *catalog.Store
	loader  *catalog.Loader
	index   atomic.Pointer[keyword.NameIndex]
	results *cache.LRU[string, *models.ResultPage]
	config  config.RecommendConfig
	metrics *metrics.Metrics
	logger  *zap.Logger

	// reloadMu serializes reloads; queries never take it.
	reloadMu sync.Mutex
}

// NewEngine creates an engine with no catalog loaded. A nil metrics or logger is replaced
// by a private registry or a no-op logger.
func NewEngine(loader *catalog.Loader, cfg config.RecommendConfig, m *metrics.Metrics, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loader == nil {
		loader = catalog.NewLoader(logger)
	}
	if m == nil {
		m = metrics.New()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = ranking.DefaultPageSize
	}
	if cfg.SuggestionLimit == 0 {
		cfg.SuggestionLimit = 5
	}
	return &Engine{
		store:   catalog.NewStore(),
		loader:  loader,
		results: cache.NewLRU[string, *models.ResultPage](cfg.CacheSize),
		config:  cfg,
		metrics: m,
		logger:  logger,
	}
}

// Ready reports whether a catalog snapshot is installed.
func (e *Engine) Ready() bool {
	return e.store.Ready()
}

// Catalog returns the current snapshot, or nil before the first successful load.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.store.Load()
}

// Reload loads path and installs it. On failure the previous snapshot keeps serving.
func (e *Engine) Reload(ctx context.Context, path string) error {
	c, err := e.loader.Load(ctx, path)
	if err != nil {
		e.metrics.RecordReload(0, err)
		return err
	}
	return e.Install(ctx, c)
}

// Install makes c the current snapshot, rebuilds the name index and drops cached results.
func (e *Engine) Install(ctx context.Context, c *catalog.Catalog) error {
	if c == nil {
		return errors.New("nil catalog")
	}
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	idx, err := keyword.Build(ctx, c)
	if err != nil {
		if ctx.Err() != nil {
			e.metrics.RecordReload(0, err)
			return fmt.Errorf("failed to index catalog: %w", err)
		}
		// Suggestions are optional; serve the catalog without them.
		e.logger.Warn("name index build failed", zap.String("catalog_id", c.ID()), zap.Error(err))
		idx = nil
	}

	old := e.index.Swap(idx)
	prev := e.store.Swap(c)
	e.results.Purge()
	if old != nil {
		_ = old.Close()
	}

	e.metrics.RecordReload(c.Len(), nil)
	fields := []zap.Field{
		zap.String("catalog_id", c.ID()),
		zap.String("source", c.Source()),
		zap.Int("products", c.Len()),
	}
	if prev != nil {
		fields = append(fields, zap.String("previous_catalog_id", prev.ID()))
	}
	e.logger.Info("catalog installed", fields...)
	return nil
}

// ListBrands returns the fixed brand vocabulary in display order.
func (e *Engine) ListBrands() []string {
	return catalog.Brands()
}

// Categories returns the rule base for UI population.
func (e *Engine) Categories() []rules.CategoryInfo {
	return rules.Categories()
}

// Recommend runs q against the current snapshot. An empty match is a ResultPage with
// TotalItems 0, not an error. Errors are *InvalidQueryError, ErrNotReady or ctx errors.
// The returned page may be shared with other callers and must not be modified.
func (e *Engine) Recommend(ctx context.Context, q *models.RecommendQuery) (*models.ResultPage, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q == nil {
		return nil, &InvalidQueryError{cause: errors.New("nil query")}
	}

	cat, prof, err := ProcessQuery(q, e.config.DefaultPageSize, e.config.MaxPageSize)
	if err != nil {
		e.metrics.RecordQuery("invalid", metrics.OutcomeInvalid, 0)
		return nil, err
	}
	label := string(cat)

	snap := e.store.Load()
	if snap == nil {
		e.metrics.RecordQuery(label, metrics.OutcomeNotReady, 0)
		return nil, ErrNotReady
	}

	key := snap.ID() + "|" + q.Key()
	if cached, ok := e.results.Get(key); ok {
		e.metrics.RecordCache(true)
		page := *cached
		page.QueryTime = time.Since(start).Milliseconds()
		e.metrics.RecordQuery(label, outcome(&page), time.Since(start))
		return &page, nil
	}
	e.metrics.RecordCache(false)

	page := e.compute(ctx, snap, q, cat, prof)
	e.storeResult(key, snap, page)

	out := *page
	out.QueryTime = time.Since(start).Milliseconds()
	e.metrics.RecordQuery(label, outcome(&out), time.Since(start))
	e.logger.Debug("recommend",
		zap.String("category", label),
		zap.String("sub_category", q.SubCategory),
		zap.Int64("budget", q.Budget),
		zap.Int("total_items", out.TotalItems),
		zap.String("empty_reason", string(out.EmptyReason)),
		zap.Duration("took", time.Since(start)),
	)
	return &out, nil
}

func (e *Engine) compute(ctx context.Context, snap *catalog.Catalog, q *models.RecommendQuery, cat rules.Category, prof rules.Profile) *models.ResultPage {
	page := &models.ResultPage{
		Items:     []*models.Recommendation{},
		PageSize:  q.PageSize,
		Sort:      q.Sort,
		Advisory:  rules.CheckBudget(cat, q.Budget),
		CatalogID: snap.ID(),
	}

	filtered := ranking.Filter(snap.Products(), ranking.Criteria{
		Budget:  q.Budget,
		Search:  q.Search,
		Brand:   q.Brand,
		Bypass:  cat.IsBypass(),
		Profile: prof,
	})
	if len(filtered.Products) == 0 {
		page.CurrentPage = 1
		page.EmptyReason = filtered.EmptyAt
		if filtered.EmptyAt == models.EmptyReasonSearch {
			page.Suggestions, page.DidYouMean = e.suggest(ctx, snap, q.Search)
		}
		return page
	}

	scored := ranking.ScoreAll(filtered.Products, prof, cat.IsBypass())
	ranking.Sort(scored, q.Sort)
	p := ranking.Paginate(scored, q.Page, q.PageSize)

	page.Items = p.Items
	page.TotalItems = p.TotalItems
	page.TotalPages = p.TotalPages
	page.CurrentPage = p.CurrentPage
	return page
}

// storeResult caches page unless a newer snapshot was installed while it was computed.
func (e *Engine) storeResult(key string, snap *catalog.Catalog, page *models.ResultPage) {
	if e.store.Load() != snap {
		return
	}
	e.results.Set(key, page)
}

// suggest only consults the name index built from snap. During a reload the index
// may already belong to the next snapshot, or be closed; both yield no suggestions.
func (e *Engine) suggest(ctx context.Context, snap *catalog.Catalog, term string) ([]string, string) {
	idx := e.index.Load()
	if idx == nil || idx.CatalogID() != snap.ID() {
		return nil, ""
	}
	names, err := idx.Suggest(ctx, term, e.config.SuggestionLimit)
	switch {
	case errors.Is(err, keyword.ErrClosed):
		return nil, ""
	case err != nil:
		e.logger.Warn("name suggestions failed", zap.String("term", term), zap.Error(err))
		names = nil
	}
	corrected, changed := idx.Correct(term)
	if !changed {
		corrected = ""
	}
	return names, corrected
}

func outcome(p *models.ResultPage) string {
	if p.IsEmpty() {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeOK
}
