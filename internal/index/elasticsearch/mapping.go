package elasticsearch

// DefaultIndexName is the default Elasticsearch index used for suggestion and
// search documents.
const DefaultIndexName = "product_search"

// buildIndexMapping returns the full JSON mapping for the documents index.
// Title and category fields are analyzed with an edge n-gram tokenizer
// (2..20 grams) at index time and a plain lowercase analyzer at search time,
// so partial substrings of 2+ characters match.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "autocomplete_analyzer": {
          "type": "custom",
          "tokenizer": "autocomplete_tokenizer",
          "filter": ["lowercase"]
        },
        "autocomplete_search": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase"]
        }
      },
      "tokenizer": {
        "autocomplete_tokenizer": {
          "type": "edge_ngram",
          "min_gram": 2,
          "max_gram": 20,
          "token_chars": ["letter", "digit"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "content_id":      { "type": "keyword" },
      "title":           { "type": "text", "analyzer": "autocomplete_analyzer", "search_analyzer": "autocomplete_search", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } },
      "category_level1": { "type": "text", "analyzer": "autocomplete_analyzer", "search_analyzer": "autocomplete_search" },
      "category_level2": { "type": "text", "analyzer": "autocomplete_analyzer", "search_analyzer": "autocomplete_search", "fields": { "keyword": { "type": "keyword" } } },
      "category_leaf":   { "type": "text", "analyzer": "autocomplete_analyzer", "search_analyzer": "autocomplete_search" },
      "kind":            { "type": "keyword" },
      "popularity":      { "type": "integer" }
    }
  }
}`
}
