// Package keyword indexes product names in an in-memory Bleve index and offers
// "did you mean" help when a name search matches nothing.
package keyword

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/hyperjump/pakar/internal/catalog"
)

// ErrClosed is returned by searches on an index that has been closed.
var ErrClosed = errors.New("name index closed")

// DefaultFuzziness is the edit distance allowed per term in name suggestions.
const DefaultFuzziness = 2

const (
	fieldName  = "name"
	fieldBrand = "brand"
)

type nameDoc struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// NameIndex is a read-only index over the product names of one catalog snapshot.
// It is safe for concurrent use.
type NameIndex struct {
	index     bleve.Index
	catalogID string
	terms     map[string]uint64

	// mu lets Close wait for searches already running.
	mu     sync.RWMutex
	closed bool
}

func newMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()
	doc := bleve.NewDocumentMapping()
	// Standard analyzer: lowercase and tokenize, no stemming, so model codes stay intact.
	text := bleve.NewTextFieldMapping()
	text.Analyzer = standard.Name
	text.Store = true
	doc.AddFieldMappingsAt(fieldName, text)
	doc.AddFieldMappingsAt(fieldBrand, bleve.NewKeywordFieldMapping())
	im.DefaultMapping = doc
	return im
}

// Build indexes every product of c.
func Build(ctx context.Context, c *catalog.Catalog) (*NameIndex, error) {
	index, err := bleve.NewMemOnly(newMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create name index: %w", err)
	}

	batch := index.NewBatch()
	for _, p := range c.Products() {
		if err := ctx.Err(); err != nil {
			_ = index.Close()
			return nil, err
		}
		if err := batch.Index(catalog.ProductID(p), nameDoc{Name: p.Name, Brand: p.Brand}); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index %q: %w", p.Name, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to commit name index: %w", err)
	}

	terms, err := readTerms(index)
	if err != nil {
		_ = index.Close()
		return nil, err
	}
	return &NameIndex{index: index, catalogID: c.ID(), terms: terms}, nil
}

func readTerms(index bleve.Index) (map[string]uint64, error) {
	dict, err := index.FieldDict(fieldName)
	if err != nil {
		return nil, fmt.Errorf("failed to read name terms: %w", err)
	}
	defer dict.Close()

	terms := make(map[string]uint64)
	for {
		entry, err := dict.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to read name terms: %w", err)
		}
		if entry == nil {
			return terms, nil
		}
		terms[entry.Term] = entry.Count
	}
}

// CatalogID is the snapshot the index was built from.
func (n *NameIndex) CatalogID() string { return n.catalogID }

// DocCount returns the number of indexed products.
func (n *NameIndex) DocCount() (uint64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return 0, ErrClosed
	}
	return n.index.DocCount()
}

// Suggest returns up to limit distinct product names that fuzzily match term, best first.
func (n *NameIndex) Suggest(ctx context.Context, term string, limit int) ([]string, error) {
	words := tokenize(term)
	if len(words) == 0 || limit <= 0 {
		return nil, nil
	}

	queries := make([]blevequery.Query, 0, len(words))
	for _, w := range words {
		fq := bleve.NewFuzzyQuery(w)
		fq.SetFuzziness(DefaultFuzziness)
		fq.SetField(fieldName)
		queries = append(queries, fq)
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return nil, ErrClosed
	}

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(queries...))
	// Several products can share a name; over-fetch so the distinct list can still fill limit.
	req.Size = limit * 4
	req.Fields = []string{fieldName}
	res, err := n.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("name search failed: %w", err)
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	for _, hit := range res.Hits {
		name, _ := hit.Fields[fieldName].(string)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Close releases the index once in-flight searches finish. Later calls are no-ops.
func (n *NameIndex) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	return n.index.Close()
}

func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
