package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"

	entity "stockledger.GO/model/entity"
)

var (
	serviceInstance *Service
	serviceOnce     sync.Once
)

// GetService returns the singleton search service.
func GetService() *Service {
	serviceOnce.Do(func() {
		serviceInstance = NewService()
	})
	return serviceInstance
}

// Service searches items by code/name. Backed by Elasticsearch when
// ELASTICSEARCH_HOST is set; otherwise it falls back to a SQL LIKE scan.
type Service struct {
	client *elasticsearch.Client
	index  string
}

func NewService() *Service {
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "stockledger_items"
	}

	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return &Service{index: index}
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return &Service{index: index}
	}

	return &Service{client: client, index: index}
}

// Enabled reports whether Elasticsearch is configured.
func (s *Service) Enabled() bool {
	return s.client != nil
}

// IndexItem upserts one item document. Best effort; callers treat the
// index as a secondary projection, never as the source of truth.
func (s *Service) IndexItem(ctx context.Context, item *entity.Item) error {
	if s.client == nil {
		return nil
	}
	doc := map[string]interface{}{
		"item_id": item.ItemID,
		"code":    item.Code,
		"name":    item.Name,
		"balance": item.Balance,
	}
	body, _ := json.Marshal(doc)
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(fmt.Sprintf("%d", item.ItemID)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

// Search returns matching item IDs ordered by relevance, or queries the
// database directly when Elasticsearch is not configured.
func (s *Service) Search(ctx context.Context, db *gorm.DB, query string, limit int) ([]entity.Item, error) {
	if limit <= 0 {
		limit = 20
	}
	if s.client == nil {
		return s.searchSQL(db, query, limit)
	}

	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"code^2", "name"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ItemID uint `json:"item_id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		ids = append(ids, hit.Source.ItemID)
	}
	if len(ids) == 0 {
		return []entity.Item{}, nil
	}

	var items []entity.Item
	if err := db.Where("item_id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	// Preserve relevance order from the index
	byID := make(map[uint]entity.Item, len(items))
	for _, it := range items {
		byID[it.ItemID] = it
	}
	ordered := make([]entity.Item, 0, len(items))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			ordered = append(ordered, it)
		}
	}
	return ordered, nil
}

func (s *Service) searchSQL(db *gorm.DB, query string, limit int) ([]entity.Item, error) {
	var items []entity.Item
	pattern := "%" + query + "%"
	err := db.Where("code LIKE ? OR name LIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
