package index

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the backing index service cannot be reached
// or times out. Callers with a defined fallback must treat both identically.
var ErrUnavailable = errors.New("text index unavailable")

// Document kinds.
const (
	KindProduct  = "product"
	KindCategory = "category"
)

// Document is the unit stored in the text index. Product documents carry the
// catalog product id; category documents are synthesized from unique level2
// names and carry a fixed popularity so they surface without drowning out
// product matches.
type Document struct {
	ID             string `json:"content_id"`
	Title          string `json:"title"`
	CategoryLevel1 string `json:"category_level1,omitempty"`
	CategoryLevel2 string `json:"category_level2,omitempty"`
	CategoryLeaf   string `json:"category_leaf,omitempty"`
	Kind           string `json:"kind"`
	Popularity     int    `json:"popularity"`
}

// Hit is a document paired with its relevance score.
type Hit struct {
	Document
	Score float64
}

// TextIndex is the external full-text index the engine depends on. The
// backing service must tokenize for edge n-gram matching so short partial
// substrings return useful results; the engine does not re-implement that.
type TextIndex interface {
	// BulkReplace replaces the entire indexed document set. After a
	// successful call the index holds exactly the given documents.
	BulkReplace(ctx context.Context, docs []Document) error

	// Query returns documents matching the given prefix/partial text,
	// most popular first. Used by autocomplete.
	Query(ctx context.Context, prefix string, maxResults int) ([]Document, error)

	// FullTextSearch returns relevance-scored documents for the given free
	// text, best first. Used by similarity-mode search.
	FullTextSearch(ctx context.Context, text string, maxResults int) ([]Hit, error)
}
