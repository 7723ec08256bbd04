package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/utafrali/SearchGo/internal/index"
)

// Index is an in-memory implementation of the TextIndex interface. It keeps
// every document in a slice guarded by an RWMutex and matches by lowercase
// substring, which approximates the edge n-gram behavior of the external
// index closely enough for development and tests.
type Index struct {
	mu   sync.RWMutex
	docs []indexedDoc
}

type indexedDoc struct {
	doc index.Document

	// lowercased match fields, precomputed at index time
	title  string
	level1 string
	level2 string
	leaf   string
}

// New creates an empty in-memory index.
func New() *Index {
	return &Index{}
}

// BulkReplace swaps the entire document set under the write lock.
func (m *Index) BulkReplace(_ context.Context, docs []index.Document) error {
	indexed := make([]indexedDoc, 0, len(docs))
	for _, d := range docs {
		indexed = append(indexed, indexedDoc{
			doc:    d,
			title:  strings.ToLower(d.Title),
			level1: strings.ToLower(d.CategoryLevel1),
			level2: strings.ToLower(d.CategoryLevel2),
			leaf:   strings.ToLower(d.CategoryLeaf),
		})
	}

	m.mu.Lock()
	m.docs = indexed
	m.mu.Unlock()
	return nil
}

// Query returns documents whose title or level2 category contains the given
// partial text, most popular first.
func (m *Index) Query(_ context.Context, prefix string, maxResults int) ([]index.Document, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	needle := strings.ToLower(strings.TrimSpace(prefix))
	if needle == "" {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []index.Document
	for i := range m.docs {
		d := &m.docs[i]
		if strings.Contains(d.title, needle) || strings.Contains(d.level2, needle) {
			matched = append(matched, d.doc)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Popularity > matched[j].Popularity
	})
	if len(matched) > maxResults {
		matched = matched[:maxResults]
	}
	return matched, nil
}

// FullTextSearch returns product documents matching the given free text with
// a field-weighted score, best first. Every query term must match at least
// one field, mirroring the external index's best-fields semantics.
func (m *Index) FullTextSearch(_ context.Context, text string, maxResults int) ([]index.Hit, error) {
	if maxResults <= 0 {
		maxResults = 100
	}
	terms := strings.Fields(strings.ToLower(text))
	if len(terms) == 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var hits []index.Hit
	for i := range m.docs {
		d := &m.docs[i]
		if d.doc.Kind != index.KindProduct {
			continue
		}
		score, ok := scoreDoc(d, terms)
		if !ok {
			continue
		}
		hits = append(hits, index.Hit{Document: d.doc, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Popularity > hits[j].Popularity
	})
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}
	return hits, nil
}

// scoreDoc computes the weighted score for a document, requiring every term
// to match at least one field.
func scoreDoc(d *indexedDoc, terms []string) (float64, bool) {
	var score float64
	for _, term := range terms {
		var termScore float64
		if strings.Contains(d.title, term) {
			termScore += 3
		}
		if strings.Contains(d.level2, term) {
			termScore += 2
		}
		if strings.Contains(d.level1, term) {
			termScore++
		}
		if strings.Contains(d.leaf, term) {
			termScore++
		}
		if termScore == 0 {
			return 0, false
		}
		score += termScore
	}
	return score, true
}
