package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/teamboard/core/internal/ports"
)

// stamped is satisfied by pointers to entities embedding entities.Meta.
type stamped[T any] interface {
	*T
	Stamp(id string, createdAt, updatedAt time.Time)
}

// Collection is the typed repository for one named collection. Create and Update return
// the record as re-read from the store.
type Collection[T any, PT stamped[T]] struct {
	store ports.RecordStore
	name  string
}

func NewCollection[T any, PT stamped[T]](store ports.RecordStore, name string) *Collection[T, PT] {
	return &Collection[T, PT]{store: store, name: name}
}

func (c *Collection[T, PT]) Name() string {
	return c.name
}

func (c *Collection[T, PT]) Create(ctx context.Context, item *T) (*T, error) {
	doc, err := ToDocument(item)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", c.name, err)
	}
	id, err := c.store.Create(ctx, c.name, doc)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

func (c *Collection[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	rec, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	return c.decode(rec)
}

func (c *Collection[T, PT]) List(ctx context.Context, q ports.Query) ([]T, error) {
	recs, err := c.store.List(ctx, c.name, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		item, err := c.decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, nil
}

func (c *Collection[T, PT]) Update(ctx context.Context, id string, patch ports.Document) (*T, error) {
	if err := c.store.Update(ctx, c.name, id, patch); err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

func (c *Collection[T, PT]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func (c *Collection[T, PT]) decode(rec *ports.Record) (*T, error) {
	b, err := json.Marshal(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c.name, rec.ID, err)
	}
	var item T
	if err := json.Unmarshal(b, &item); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c.name, rec.ID, err)
	}
	PT(&item).Stamp(rec.ID, rec.CreatedAt, rec.UpdatedAt)
	return &item, nil
}

// ToDocument converts an entity to its stored form, without the store-owned keys.
func ToDocument(v interface{}) (ports.Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	doc := ports.Document{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	delete(doc, ports.FieldID)
	delete(doc, ports.FieldCreatedAt)
	delete(doc, ports.FieldUpdatedAt)
	return doc, nil
}
