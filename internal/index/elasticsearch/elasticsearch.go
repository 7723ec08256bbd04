package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/utafrali/SearchGo/internal/index"
)

// Index is an Elasticsearch-backed implementation of the TextIndex interface.
// Transport failures and timeouts surface as index.ErrUnavailable so callers
// can fall back; only malformed responses surface as plain errors.
type Index struct {
	client    *elasticsearch.Client
	indexName string
	timeout   time.Duration
	logger    *slog.Logger
}

// esSearchResponse decodes Elasticsearch search responses.
type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64        `json:"_score"`
			Source index.Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// esBulkResponse decodes Elasticsearch bulk responses.
type esBulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

// esErrorResponse decodes Elasticsearch error responses.
type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// New creates a new Elasticsearch index client. The connection is not probed
// here: an unreachable cluster at construction time must not prevent startup,
// since every caller has a degraded path. If indexName is empty,
// DefaultIndexName is used; timeout bounds each individual call.
func New(esURL, indexName string, timeout time.Duration, logger *slog.Logger) (*Index, error) {
	if indexName == "" {
		indexName = DefaultIndexName
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	return &Index{
		client:    client,
		indexName: indexName,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// Ping checks whether the Elasticsearch cluster is reachable.
func (e *Index) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: ping: %v", index.ErrUnavailable, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("%w: ping: unexpected status %s", index.ErrUnavailable, res.Status())
	}
	return nil
}

// BulkReplace replaces the entire indexed document set: the index is dropped,
// recreated with the edge n-gram mapping, and bulk-loaded in one pass. A full
// replacement rather than a merge keeps the document count equal to the
// submitted set and prevents stale duplicates across reindexes.
func (e *Index) BulkReplace(ctx context.Context, docs []index.Document) error {
	if err := e.recreateIndex(ctx); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for i := range docs {
		action := map[string]any{
			"index": map[string]any{
				"_index": e.indexName,
				"_id":    docs[i].ID,
			},
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return fmt.Errorf("elasticsearch bulk: encode action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(docs[i]); err != nil {
			return fmt.Errorf("elasticsearch bulk: encode document: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	res, err := e.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		e.client.Bulk.WithIndex(e.indexName),
		e.client.Bulk.WithRefresh("true"),
		e.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: bulk: %v", index.ErrUnavailable, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return e.decodeError(res.Body, res.Status(), "bulk")
	}

	var bulkResp esBulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return fmt.Errorf("elasticsearch bulk: decode response: %w", err)
	}

	if bulkResp.Errors {
		var errMsgs []string
		for _, item := range bulkResp.Items {
			if item.Index.Error.Type != "" {
				errMsgs = append(errMsgs, fmt.Sprintf("id=%s: %s: %s", item.Index.ID, item.Index.Error.Type, item.Index.Error.Reason))
			}
		}
		return fmt.Errorf("elasticsearch bulk: partial errors: %s", strings.Join(errMsgs, "; "))
	}

	e.logger.Info("bulk replaced index documents",
		slog.String("index", e.indexName),
		slog.Int("count", len(docs)),
	)
	return nil
}

// Query returns documents matching the given partial text, most popular first.
func (e *Index) Query(ctx context.Context, prefix string, maxResults int) ([]index.Document, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	esQuery := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{"match": map[string]any{"title": map[string]any{"query": prefix, "boost": 3}}},
					map[string]any{"match": map[string]any{"category_level2": map[string]any{"query": prefix, "boost": 2}}},
				},
				"minimum_should_match": 1,
			},
		},
		"sort": []any{
			map[string]any{"popularity": map[string]any{"order": "desc"}},
			"_score",
		},
		"size": maxResults,
	}

	resp, err := e.search(ctx, esQuery, "query")
	if err != nil {
		return nil, err
	}

	docs := make([]index.Document, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

// FullTextSearch returns relevance-scored documents for the given free text.
func (e *Index) FullTextSearch(ctx context.Context, text string, maxResults int) ([]index.Hit, error) {
	if maxResults <= 0 {
		maxResults = 100
	}

	esQuery := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{
						"multi_match": map[string]any{
							"query":  text,
							"fields": []string{"title^3", "category_level2^2", "category_level1", "category_leaf"},
							"type":   "best_fields",
						},
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"kind": index.KindProduct}},
				},
			},
		},
		"sort": []any{
			map[string]any{"_score": "desc"},
			map[string]any{"popularity": map[string]any{"order": "desc"}},
		},
		"size": maxResults,
	}

	resp, err := e.search(ctx, esQuery, "full text search")
	if err != nil {
		return nil, err
	}

	hits := make([]index.Hit, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		hits = append(hits, index.Hit{Document: hit.Source, Score: hit.Score})
	}
	return hits, nil
}

func (e *Index) search(ctx context.Context, esQuery map[string]any, op string) (*esSearchResponse, error) {
	data, err := json.Marshal(esQuery)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch %s: marshal query: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", index.ErrUnavailable, op, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, e.decodeError(res.Body, res.Status(), op)
	}

	var resp esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("elasticsearch %s: decode response: %w", op, err)
	}
	return &resp, nil
}

// recreateIndex drops the index if it exists and creates it with the mapping.
func (e *Index) recreateIndex(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	res, err := e.client.Indices.Delete(
		[]string{e.indexName},
		e.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: delete index: %v", index.ErrUnavailable, err)
	}
	// 404 means the index did not exist yet.
	if res.IsError() && res.StatusCode != 404 {
		defer func() { _ = res.Body.Close() }()
		return e.decodeError(res.Body, res.Status(), "delete index")
	}
	_ = res.Body.Close()

	res, err = e.client.Indices.Create(
		e.indexName,
		e.client.Indices.Create.WithBody(strings.NewReader(buildIndexMapping())),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: create index: %v", index.ErrUnavailable, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return e.decodeError(res.Body, res.Status(), "create index")
	}

	e.logger.Info("elasticsearch index recreated", slog.String("index", e.indexName))
	return nil
}

func (e *Index) decodeError(body io.Reader, status, op string) error {
	var errResp esErrorResponse
	if decErr := json.NewDecoder(body).Decode(&errResp); decErr == nil && errResp.Error.Type != "" {
		return fmt.Errorf("elasticsearch %s: %s: %s", op, errResp.Error.Type, errResp.Error.Reason)
	}
	return fmt.Errorf("elasticsearch %s: unexpected status %s", op, status)
}
