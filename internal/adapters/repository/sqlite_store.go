package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/ports"
)

// recordModel is the single table behind every collection.
type recordModel struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Collection string    `gorm:"size:64;not null;index:idx_records_collection_created,priority:1"`
	Data       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime:false;index:idx_records_collection_created,priority:2"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (recordModel) TableName() string {
	return recordsTable
}

func (m *recordModel) toRecord() (*ports.Record, error) {
	doc, err := decodeDocument([]byte(m.Data))
	if err != nil {
		return nil, err
	}
	return &ports.Record{
		ID:        m.ID,
		Data:      doc,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}, nil
}

// SQLiteStore implements ports.RecordStore on gorm with the sqlite driver.
type SQLiteStore struct {
	db    *gorm.DB
	clock *Clock
}

// NewSQLiteStore migrates the records table and returns a store on db.
func NewSQLiteStore(db *gorm.DB, clock *Clock) (*SQLiteStore, error) {
	if clock == nil {
		clock = NewClock()
	}
	if err := db.AutoMigrate(&recordModel{}); err != nil {
		return nil, fmt.Errorf("migrate records table: %w", err)
	}
	return &SQLiteStore{db: db, clock: clock}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, collection string, doc ports.Document) (string, error) {
	data, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	m := &recordModel{
		ID:         uuid.NewString(),
		Collection: collection,
		Data:       string(data),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return "", fmt.Errorf("create %s record: %w", collection, err)
	}
	return m.ID, nil
}

func (s *SQLiteStore) find(tx *gorm.DB, collection, id string) (*recordModel, error) {
	var m recordModel
	err := tx.Where("collection = ? AND id = ?", collection, id).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrRecordNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (*ports.Record, error) {
	m, err := s.find(s.db.WithContext(ctx), collection, id)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return m.toRecord()
}

func (s *SQLiteStore) List(ctx context.Context, collection string, q ports.Query) ([]*ports.Record, error) {
	where, args, err := buildWhere(sqliteDialect{}, collection, q.Conditions)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	order, err := buildOrder(sqliteDialect{}, q.OrderBy)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	tx := s.db.WithContext(ctx).Where(where, args...).Order(order)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var models []recordModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	records := make([]*ports.Record, 0, len(models))
	for i := range models {
		rec, err := models[i].toRecord()
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Update reads, merges and writes inside one transaction.
func (s *SQLiteStore) Update(ctx context.Context, collection, id string, patch ports.Document) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.find(tx, collection, id)
		if err != nil {
			return err
		}
		doc, err := decodeDocument([]byte(m.Data))
		if err != nil {
			return err
		}
		for k, v := range patch {
			doc[k] = v
		}
		data, err := encodeDocument(doc)
		if err != nil {
			return err
		}
		return tx.Model(&recordModel{}).
			Where("collection = ? AND id = ?", collection, id).
			Updates(map[string]interface{}{
				"data":       string(data),
				"updated_at": s.clock.Now(),
			}).Error
	})
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&recordModel{})
	if res.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete %s/%s: %w", collection, id, entities.ErrRecordNotFound)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
