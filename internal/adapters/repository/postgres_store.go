package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/ports"
)

type postgresRow struct {
	ID        string    `db:"id"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *postgresRow) toRecord() (*ports.Record, error) {
	doc, err := decodeDocument(r.Data)
	if err != nil {
		return nil, err
	}
	return &ports.Record{
		ID:        r.ID,
		Data:      doc,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}, nil
}

// PostgresStore implements ports.RecordStore on a JSONB records table. The schema comes
// from the embedded migrations.
type PostgresStore struct {
	db    *sqlx.DB
	clock *Clock
}

func NewPostgresStore(db *sqlx.DB, clock *Clock) *PostgresStore {
	if clock == nil {
		clock = NewClock()
	}
	return &PostgresStore{db: db, clock: clock}
}

func (s *PostgresStore) Create(ctx context.Context, collection string, doc ports.Document) (string, error) {
	data, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO records (id, collection, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $4)`

	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, query, id, collection, string(data), s.clock.Now()); err != nil {
		return "", fmt.Errorf("create %s record: %w", collection, err)
	}
	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (*ports.Record, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM records
		WHERE collection = $1 AND id = $2`

	var row postgresRow
	if err := s.db.GetContext(ctx, &row, query, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get %s/%s: %w", collection, id, entities.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return row.toRecord()
}

func (s *PostgresStore) List(ctx context.Context, collection string, q ports.Query) ([]*ports.Record, error) {
	query, args, err := buildPostgresSelect(collection, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	var rows []postgresRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	records := make([]*ports.Record, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].toRecord()
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func buildPostgresSelect(collection string, q ports.Query) (string, []interface{}, error) {
	d := postgresDialect{}
	where, args, err := buildWhere(d, collection, q.Conditions)
	if err != nil {
		return "", nil, err
	}
	order, err := buildOrder(d, q.OrderBy)
	if err != nil {
		return "", nil, err
	}

	query := "SELECT id, data, created_at, updated_at FROM records WHERE " + where + " ORDER BY " + order
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return query, args, nil
}

// Update merges in a single statement; concurrent patches to different keys both survive.
func (s *PostgresStore) Update(ctx context.Context, collection, id string, patch ports.Document) error {
	data, err := encodeDocument(patch)
	if err != nil {
		return err
	}

	query := `
		UPDATE records
		SET data = data || $1::jsonb, updated_at = $2
		WHERE collection = $3 AND id = $4`

	res, err := s.db.ExecContext(ctx, query, string(data), s.clock.Now(), collection, id)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	} else if n == 0 {
		return fmt.Errorf("update %s/%s: %w", collection, id, entities.ErrRecordNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	} else if n == 0 {
		return fmt.Errorf("delete %s/%s: %w", collection, id, entities.ErrRecordNotFound)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
