// Package elastic persists record batches to Elasticsearch. Documents are
// upserted under their natural-key hash, so replaying the same logical
// record overwrites instead of duplicating.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

const defaultBatchSize = 500

// Document is anything the sink can upsert.
type Document interface {
	// DocID returns the stable persistence id (the record's unique hash).
	DocID() string
}

// Sink wraps an Elasticsearch client for index lifecycle and bulk loading.
type Sink struct {
	es        *elasticsearch.Client
	log       *zap.Logger
	batchSize int
}

// New connects a Sink to the cluster at url.
func New(url string, log *zap.Logger) (*Sink, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &Sink{es: es, log: log, batchSize: defaultBatchSize}, nil
}

// Ping checks cluster health. A failure here is fatal for a load step; no
// partial load is attempted.
func (s *Sink) Ping(ctx context.Context) error {
	res, err := s.es.Cluster.Health(s.es.Cluster.Health.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch unreachable: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch health check failed: %s", res.Status())
	}
	return nil
}

// EnsureIndex deletes the index if it exists and recreates it with the
// supplied mapping document.
func (s *Sink) EnsureIndex(ctx context.Context, name string, mapping []byte) error {
	del, err := s.es.Indices.Delete([]string{name},
		s.es.Indices.Delete.WithContext(ctx),
		s.es.Indices.Delete.WithIgnoreUnavailable(true))
	if err != nil {
		return fmt.Errorf("delete index %s: %w", name, err)
	}
	del.Body.Close()

	create, err := s.es.Indices.Create(name,
		s.es.Indices.Create.WithContext(ctx),
		s.es.Indices.Create.WithBody(bytes.NewReader(mapping)))
	if err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	defer create.Body.Close()
	if create.IsError() {
		return fmt.Errorf("create index %s: %s", name, create.Status())
	}
	s.log.Info("created index with mapping", zap.String("index", name))
	return nil
}

// BulkUpsert loads documents in fixed-size batches through the _bulk API,
// using each document's DocID as the _id. A failed batch or failed item is
// counted and reported; the remaining batches still load.
func (s *Sink) BulkUpsert(ctx context.Context, index string, docs []Document) (indexed, failed int) {
	for start := 0; start < len(docs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		body, err := bulkBody(index, batch)
		if err != nil {
			s.log.Error("encode bulk batch", zap.Error(err))
			failed += len(batch)
			continue
		}

		batchIndexed, batchFailed := s.sendBulk(ctx, body, len(batch))
		indexed += batchIndexed
		failed += batchFailed
		s.log.Info("bulk progress",
			zap.String("index", index),
			zap.Int("loaded", end),
			zap.Int("total", len(docs)))
	}
	return indexed, failed
}

// Refresh makes freshly loaded documents visible to search.
func (s *Sink) Refresh(ctx context.Context, index string) error {
	res, err := s.es.Indices.Refresh(
		s.es.Indices.Refresh.WithContext(ctx),
		s.es.Indices.Refresh.WithIndex(index))
	if err != nil {
		return fmt.Errorf("refresh index %s: %w", index, err)
	}
	res.Body.Close()
	return nil
}

// bulkBody builds the newline-delimited action/document payload.
func bulkBody(index string, docs []Document) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	for _, doc := range docs {
		action, err := json.Marshal(map[string]any{
			"index": map[string]string{"_index": index, "_id": doc.DocID()},
		})
		if err != nil {
			return nil, err
		}
		source, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		buf.Write(action)
		buf.WriteByte('\n')
		buf.Write(source)
		buf.WriteByte('\n')
	}
	return &buf, nil
}

func (s *Sink) sendBulk(ctx context.Context, body *bytes.Buffer, batchLen int) (indexed, failed int) {
	res, err := s.es.Bulk(bytes.NewReader(body.Bytes()), s.es.Bulk.WithContext(ctx))
	if err != nil {
		s.log.Error("bulk request failed", zap.Error(err))
		return 0, batchLen
	}
	defer res.Body.Close()
	if res.IsError() {
		s.log.Error("bulk request rejected", zap.String("status", res.Status()))
		return 0, batchLen
	}
	return countBulkResult(res, batchLen)
}

func countBulkResult(res *esapi.Response, batchLen int) (indexed, failed int) {
	var result struct {
		Items []map[string]struct {
			Error json.RawMessage `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return 0, batchLen
	}
	for _, item := range result.Items {
		if op, ok := item["index"]; ok && len(op.Error) > 0 && string(op.Error) != "null" {
			failed++
		}
	}
	return batchLen - failed, failed
}
