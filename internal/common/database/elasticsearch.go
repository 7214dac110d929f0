// internal/common/database/elasticsearch.go
package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"enrollment-workers/internal/common/config"
	"enrollment-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

type ElasticsearchClient struct {
	Client *elasticsearch.Client
}

func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	esCfg := elasticsearch.Config{Addresses: cfg.Addresses}
	if len(esCfg.Addresses) == 0 && cfg.GetURL() != "" {
		esCfg.Addresses = []string{cfg.GetURL()}
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &ElasticsearchClient{Client: es}, nil
}

func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// LeadIndex writes enrollment projections to the sales search index.
type LeadIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewLeadIndex(client *elasticsearch.Client, index string) *LeadIndex {
	return &LeadIndex{client: client, index: index}
}

func (l *LeadIndex) Name() string {
	return l.index
}

// Index upserts doc under its enrollment id.
func (l *LeadIndex) Index(ctx context.Context, doc models.LeadDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal lead document: %w", err)
	}

	res, err := l.client.Index(
		l.index,
		bytes.NewReader(body),
		l.client.Index.WithContext(ctx),
		l.client.Index.WithDocumentID(doc.EnrollmentID),
	)
	if err != nil {
		return fmt.Errorf("index lead %s: %w", doc.EnrollmentID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index lead %s: %s", doc.EnrollmentID, res.Status())
	}
	return nil
}
