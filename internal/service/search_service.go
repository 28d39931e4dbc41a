package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"edu-counsel-go/internal/model"

	"github.com/elastic/go-elasticsearch/v8"
)

// SearchService 定义了项目全文搜索的接口。
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]model.ProgramDocument, error)
}

type searchService struct {
	esClient  *elasticsearch.Client
	indexName string
}

// NewSearchService 创建一个新的 SearchService 实例。
func NewSearchService(esClient *elasticsearch.Client, indexName string) SearchService {
	return &searchService{esClient: esClient, indexName: indexName}
}

type searchHits struct {
	Hits struct {
		Hits []struct {
			Source model.ProgramDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search 在项目索引上执行 multi_match 查询，标题权重最高。
func (s *searchService) Search(ctx context.Context, query string, limit int) ([]model.ProgramDocument, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	esQuery := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": query,
				"fields": []string{
					"program_title^3",
					"institution^2",
					"field_of_study^2",
					"program_overview",
				},
			},
		},
	}

	body, err := json.Marshal(esQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(s.indexName),
		s.esClient.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("search request returned error: " + res.String())
	}

	var parsed searchHits
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]model.ProgramDocument, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}
