package ports

import (
	"context"
	"io"
	"time"

	"github.com/teamboard/core/internal/domain/entities"
)

// Document is the schemaless body of a stored record. Keys are the camelCase JSON field
// names of the entity.
type Document map[string]interface{}

// Record is a document together with the fields the store owns.
type Record struct {
	ID        string
	Data      Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store-owned keys, never persisted inside Data.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Op is a comparison understood by every RecordStore backend.
type Op string

const (
	OpEq     Op = "eq"
	OpGte    Op = "gte"
	OpLte    Op = "lte"
	OpLt     Op = "lt"
	OpPrefix Op = "prefix"
)

// Condition compares one top-level field. Range and prefix operators compare the
// string form lexicographically.
type Condition struct {
	Field string
	Op    Op
	Value interface{}
}

type Order struct {
	Field string
	Desc  bool
}

// Query is an AND of conditions with optional ordering and limit. The zero Query lists
// the whole collection in creation order.
type Query struct {
	Conditions []Condition
	OrderBy    []Order
	Limit      int
}

func (q Query) Where(field string, op Op, value interface{}) Query {
	q.Conditions = append(append([]Condition(nil), q.Conditions...), Condition{Field: field, Op: op, Value: value})
	return q
}

func (q Query) Asc(field string) Query {
	q.OrderBy = append(append([]Order(nil), q.OrderBy...), Order{Field: field})
	return q
}

func (q Query) Desc(field string) Query {
	q.OrderBy = append(append([]Order(nil), q.OrderBy...), Order{Field: field, Desc: true})
	return q
}

func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// RecordStore is a collection/document store. Get, Update and Delete on a missing id
// return entities.ErrRecordNotFound.
type RecordStore interface {
	Create(ctx context.Context, collection string, doc Document) (string, error)
	Get(ctx context.Context, collection, id string) (*Record, error)
	List(ctx context.Context, collection string, q Query) ([]*Record, error)
	// Update shallow-merges the top-level keys of patch into the stored document.
	Update(ctx context.Context, collection, id string, patch Document) error
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// Repository is a typed view over one collection.
type Repository[T any] interface {
	Create(ctx context.Context, item *T) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, q Query) ([]T, error)
	Update(ctx context.Context, id string, patch Document) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ObjectStore keeps uploaded binaries and hands back a public URL.
type ObjectStore interface {
	Upload(ctx context.Context, r io.Reader, pathHint string) (string, error)
}

// PreferenceStore keeps small client-scoped settings. Get reports false for unset keys.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Filter types for service queries

type TaskFilter struct {
	Assignee *string
	Status   *entities.TaskStatus
	Category *entities.Category
	Month    *string // YYYY-MM
	From     *string
	To       *string
	// OverdueAsOf keeps open tasks due before the given date.
	OverdueAsOf *string
}

type KPIFilter struct {
	Year     *int
	Quarter  *entities.Quarter
	Assignee *string
}

type ReelFilter struct {
	From *string
	To   *string
}
