package database

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olivere/elastic/v7"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
)

// DefaultElasticIndex is the index seed documents live in.
const DefaultElasticIndex = "employees"

const scrollBatchSize = 1000

// ElasticSearchClient wraps olivere/elastic client.
type ElasticSearchClient struct {
	client *elastic.Client
	index  string
}

// NewElasticSearchClient creates a new client for Elasticsearch 7.x.
func NewElasticSearchClient(url, index string) (*ElasticSearchClient, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false), // Essential when using Docker or cloud
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	if index == "" {
		index = DefaultElasticIndex
	}
	return &ElasticSearchClient{client: client, index: index}, nil
}

func decodeHit(hit *elastic.SearchHit) (domain.Employee, error) {
	var e domain.Employee
	if err := json.Unmarshal(hit.Source, &e); err != nil {
		return domain.Employee{}, fmt.Errorf("decode document %s: %w", hit.Id, err)
	}
	if e.ID == 0 {
		// Documents indexed by other tools may only carry the id in _id.
		if id, err := strconv.Atoi(hit.Id); err == nil {
			e.ID = id
		}
	}
	return e, nil
}

// ScrollAllEmployees reads every document of the index in _doc order.
func (es *ElasticSearchClient) ScrollAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	var all []domain.Employee

	scroll := es.client.Scroll(es.index).
		Size(scrollBatchSize).
		KeepAlive("2m").
		Sort("_doc", true)
	defer func() {
		if err := scroll.Clear(context.Background()); err != nil {
			logger.DebugLog(ctx, "clear scroll: %v", err)
		}
	}()

	for {
		results, err := scroll.Do(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scroll error: %w", err)
		}

		for _, hit := range results.Hits.Hits {
			e, err := decodeHit(hit)
			if err != nil {
				logger.WarnLog(ctx, "skipping elastic document: %v", err)
				continue
			}
			all = append(all, e)
		}
		logger.DebugLog(ctx, "fetched %d employees so far", len(all))
	}

	return all, nil
}

// BulkIndexEmployees indexes records using their id as document id.
func (es *ElasticSearchClient) BulkIndexEmployees(ctx context.Context, records []domain.Employee) error {
	bulkRequest := es.client.Bulk()

	for _, e := range records {
		req := elastic.NewBulkIndexRequest().
			Index(es.index).
			Id(strconv.Itoa(e.ID)).
			Doc(e)
		bulkRequest = bulkRequest.Add(req)
	}

	if bulkRequest.NumberOfActions() == 0 {
		return nil
	}

	bulkResponse, err := bulkRequest.Refresh("true").Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}

	if failed := bulkResponse.Failed(); len(failed) > 0 {
		reason := "unknown"
		if failed[0].Error != nil {
			reason = failed[0].Error.Reason
		}
		return fmt.Errorf("bulk index: %d items failed, first: %s", len(failed), reason)
	}

	return nil
}

// ElasticSource reads seed records from an Elasticsearch index.
type ElasticSource struct {
	Client *ElasticSearchClient
}

func (s ElasticSource) Load(ctx context.Context) ([]domain.Employee, error) {
	return s.Client.ScrollAllEmployees(ctx)
}

// ElasticSink indexes generated records.
type ElasticSink struct {
	Client *ElasticSearchClient
}

func (s ElasticSink) Write(ctx context.Context, records []domain.Employee) error {
	return s.Client.BulkIndexEmployees(ctx, records)
}

// Stop releases the client's background resources.
func (es *ElasticSearchClient) Stop() {
	es.client.Stop()
}
