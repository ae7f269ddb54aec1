// Package search provides full-text search over blog posts using Bleve.
package search

import (
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/rasiler/academy-graphql1/internal/blog"
)

// Index wraps a Bleve in-memory index over posts.
type Index struct {
	index bleve.Index
}

// postDocument is the structure stored in the Bleve index.
type postDocument struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category,omitempty"`
}

// NewIndex creates a new in-memory Bleve index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}

	return &Index{index: idx}, nil
}

// buildIndexMapping creates the Bleve index mapping for post documents.
func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = "standard"

	keywordFieldMapping := bleve.NewKeywordFieldMapping()

	postMapping := bleve.NewDocumentMapping()
	postMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	postMapping.AddFieldMappingsAt("title", textFieldMapping)
	postMapping.AddFieldMappingsAt("body", textFieldMapping)
	postMapping.AddFieldMappingsAt("category", keywordFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = postMapping
	indexMapping.DefaultAnalyzer = "standard"
	indexMapping.IndexDynamic = false
	indexMapping.StoreDynamic = false

	// BM25 ranks repeated terms and short bodies more sensibly than the
	// default TF-IDF (available in Bleve v2.5.0+).
	indexMapping.ScoringModel = "bm25"

	return indexMapping
}

// Close closes the index.
func (idx *Index) Close() error {
	return idx.index.Close()
}

// IndexPost adds or updates a post in the search index.
func (idx *Index) IndexPost(p *blog.Post) error {
	doc := postDocument{
		ID:       strconv.Itoa(p.ID),
		Title:    p.Title,
		Body:     p.Body,
		Category: string(p.Category),
	}
	return idx.index.Index(doc.ID, doc)
}

// DefaultSearchLimit is the maximum number of search results returned.
const DefaultSearchLimit = 1000

// Search executes a query-string search over titles and bodies and returns
// matching post ids ranked by score. The query syntax supports boolean
// operators, wildcards, phrases, and field-specific terms ("title:login").
func (idx *Index) Search(queryStr string) ([]int, error) {
	query := bleve.NewQueryStringQuery(queryStr)

	searchRequest := bleve.NewSearchRequest(query)
	searchRequest.Size = DefaultSearchLimit
	searchRequest.Fields = []string{"id"}

	result, err := idx.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(result.Hits))
	for _, hit := range result.Hits {
		id, err := strconv.Atoi(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}
