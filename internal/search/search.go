// Package search is a full-text index over catalog functions.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/char/html"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/mvp-joe/autodoc/internal/catalog"
)

// Limits applied to Options.Limit.
const (
	DefaultLimit = 15
	MaxLimit     = 100
)

const htmlAnalyzer = "html_text"

// Options filter a search. Zero values match everything.
type Options struct {
	Limit     int
	Namespace string
	Tag       string
	Source    string
}

// Result is one matching function.
type Result struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Namespace  string   `json:"namespace"`
	Source     string   `json:"source"`
	Signature  string   `json:"signature"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
}

// Index is an in-memory bleve index safe for concurrent use.
type Index struct {
	index bleve.Index
	mu    sync.RWMutex
}

// New builds an index over fns.
func New(ctx context.Context, fns []*catalog.Function) (*Index, error) {
	indexMapping, err := buildMapping()
	if err != nil {
		return nil, err
	}
	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	if err := indexFunctions(ctx, index, fns); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index functions: %w", err)
	}
	return &Index{index: index}, nil
}

func buildMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	// Descriptions are rendered Markdown; strip the markup before tokenizing.
	err := indexMapping.AddCustomAnalyzer(htmlAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"char_filters":  []string{html.Name},
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register analyzer: %w", err)
	}

	field := func(analyzer string) *mapping.FieldMapping {
		m := bleve.NewTextFieldMapping()
		m.Analyzer = analyzer
		m.Store = true
		m.Index = true
		return m
	}

	description := field(htmlAnalyzer)
	description.IncludeTermVectors = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", field("standard"))
	docMapping.AddFieldMappingsAt("short_name", field("keyword"))
	docMapping.AddFieldMappingsAt("namespace", field("keyword"))
	docMapping.AddFieldMappingsAt("source", field("keyword"))
	docMapping.AddFieldMappingsAt("tags", field("keyword"))
	docMapping.AddFieldMappingsAt("signature", field("standard"))
	docMapping.AddFieldMappingsAt("description", description)
	docMapping.AddFieldMappingsAt("examples", field("standard"))

	indexMapping.DefaultMapping = docMapping
	return indexMapping, nil
}

func indexFunctions(ctx context.Context, index bleve.Index, fns []*catalog.Function) error {
	const batchSize = 1000

	batch := index.NewBatch()
	for i, fn := range fns {
		if i%batchSize == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if err := batch.Index(docID(fn.ID), toDocument(fn)); err != nil {
			return fmt.Errorf("failed to add %s to batch: %w", fn.Name, err)
		}
		if batch.Size() >= batchSize {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("failed to execute batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("failed to execute final batch: %w", err)
		}
	}
	return nil
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func toDocument(fn *catalog.Function) map[string]interface{} {
	examples := make([]string, 0, len(fn.Examples))
	for _, example := range fn.Examples {
		examples = append(examples, example.Input+" => "+example.Expected)
	}
	return map[string]interface{}{
		"name":        fn.Name,
		"short_name":  fn.ShortName,
		"namespace":   fn.Namespace,
		"source":      fn.Source,
		"tags":        fn.Tags,
		"signature":   fn.Signature,
		"description": fn.Description,
		"examples":    strings.Join(examples, "\n"),
	}
}

// Search runs a bleve query string (field scoping, boolean operators,
// phrases, wildcards) narrowed by opts. An empty query matches every
// function.
func (ix *Index) Search(ctx context.Context, queryStr string, opts Options) ([]Result, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	queries := []query.Query{}
	if strings.TrimSpace(queryStr) == "" {
		queries = append(queries, bleve.NewMatchAllQuery())
	} else {
		queries = append(queries, bleve.NewQueryStringQuery(queryStr))
	}
	for field, value := range map[string]string{
		"namespace": opts.Namespace,
		"tags":      opts.Tag,
		"source":    opts.Source,
	} {
		if value == "" {
			continue
		}
		term := bleve.NewTermQuery(value)
		term.SetField(field)
		queries = append(queries, term)
	}

	var final query.Query = queries[0]
	if len(queries) > 1 {
		final = bleve.NewConjunctionQuery(queries...)
	}

	request := bleve.NewSearchRequestOptions(final, limit, 0, false)
	style := "html"
	request.Highlight = bleve.NewHighlight()
	request.Highlight.Style = &style
	request.Highlight.Fields = []string{"description"}
	request.Fields = []string{"name", "namespace", "source", "signature"}
	request.SortBy([]string{"-_score", "_id"})

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	res, err := ix.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad document id %q: %w", hit.ID, err)
		}
		result := Result{ID: id, Score: hit.Score}
		result.Name, _ = hit.Fields["name"].(string)
		result.Namespace, _ = hit.Fields["namespace"].(string)
		result.Source, _ = hit.Fields["source"].(string)
		result.Signature, _ = hit.Fields["signature"].(string)
		for _, fragments := range hit.Fragments {
			result.Highlights = append(result.Highlights, fragments...)
		}
		if len(result.Highlights) > 3 {
			result.Highlights = result.Highlights[:3]
		}
		results = append(results, result)
	}
	return results, nil
}

// Update indexes upserted functions and drops deleted ids in one batch.
func (ix *Index) Update(upserted []*catalog.Function, deleted []int64) error {
	batch := ix.index.NewBatch()
	for _, id := range deleted {
		batch.Delete(docID(id))
	}
	for _, fn := range upserted {
		if err := batch.Index(docID(fn.ID), toDocument(fn)); err != nil {
			return fmt.Errorf("failed to add %s to batch: %w", fn.Name, err)
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if err := ix.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}
	return nil
}

// Count returns the number of indexed functions.
func (ix *Index) Count() (uint64, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.index.DocCount()
}

// Close releases the index.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.index.Close()
}
