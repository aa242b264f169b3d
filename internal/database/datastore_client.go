package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"

	"github.com/locvowork/employee_directory/internal/domain"
)

// DefaultDatastoreKind is the entity kind seed records are stored under.
const DefaultDatastoreKind = "Employee"

// datastoreEmployee is the entity shape; the record id is the key.
type datastoreEmployee struct {
	FirstName  string
	LastName   string
	Email      string
	Department string
	Role       string
}

// DatastoreClient wraps the cloud datastore client
type DatastoreClient struct {
	client *datastore.Client
	kind   string
}

// NewDatastoreClient connects to projectID.
func NewDatastoreClient(ctx context.Context, projectID, kind string) (*DatastoreClient, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create datastore client: %w", err)
	}
	return WrapDatastoreClient(client, kind), nil
}

// WrapDatastoreClient wraps existing datastore client
func WrapDatastoreClient(client *datastore.Client, kind string) *DatastoreClient {
	if client == nil {
		return nil
	}
	if kind == "" {
		kind = DefaultDatastoreKind
	}
	return &DatastoreClient{client: client, kind: kind}
}

func (dc *DatastoreClient) Close() error {
	if dc == nil || dc.client == nil {
		return nil
	}
	return dc.client.Close()
}

// BatchSaveEmployees upserts records keyed by id.
func (dc *DatastoreClient) BatchSaveEmployees(ctx context.Context, records []domain.Employee) error {
	if dc == nil || dc.client == nil {
		return fmt.Errorf("datastore client is nil")
	}

	if len(records) == 0 {
		return nil
	}

	keys := make([]*datastore.Key, len(records))
	entities := make([]datastoreEmployee, len(records))
	for i, e := range records {
		keys[i] = datastore.IDKey(dc.kind, int64(e.ID), nil)
		entities[i] = datastoreEmployee{
			FirstName:  e.FirstName,
			LastName:   e.LastName,
			Email:      e.Email,
			Department: string(e.Department),
			Role:       string(e.Role),
		}
	}

	_, err := dc.client.PutMulti(ctx, keys, entities)
	return err
}

// GetAllEmployees reads every entity of the kind ordered by key.
func (dc *DatastoreClient) GetAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	if dc == nil || dc.client == nil {
		return nil, fmt.Errorf("datastore client is nil")
	}

	var entities []datastoreEmployee
	q := datastore.NewQuery(dc.kind).Order("__key__")

	keys, err := dc.client.GetAll(ctx, q, &entities)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Employee, len(entities))
	for i, ent := range entities {
		out[i] = domain.Employee{
			ID:         int(keys[i].ID),
			FirstName:  ent.FirstName,
			LastName:   ent.LastName,
			Email:      ent.Email,
			Department: domain.Department(ent.Department),
			Role:       domain.Role(ent.Role),
		}
	}
	return out, nil
}

// DatastoreSource reads seed records from Cloud Datastore.
type DatastoreSource struct {
	Client *DatastoreClient
}

func (s DatastoreSource) Load(ctx context.Context) ([]domain.Employee, error) {
	return s.Client.GetAllEmployees(ctx)
}

// DatastoreSink stores generated records.
type DatastoreSink struct {
	Client *DatastoreClient
}

func (s DatastoreSink) Write(ctx context.Context, records []domain.Employee) error {
	return s.Client.BatchSaveEmployees(ctx, records)
}
