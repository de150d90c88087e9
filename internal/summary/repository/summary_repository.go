package repository

import (
	"context"
	"errors"
	"time"

	"curalink-backend/internal/summary/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SummaryRepository is the durable summary cache keyed by (kind, source id).
type SummaryRepository interface {
	// Get returns the cached summary, or nil when absent.
	Get(ctx context.Context, kind domain.SourceKind, sourceID string) (*domain.SummaryRecord, error)
	// Put inserts a summary. If another writer already stored one for the
	// same key, that record is returned instead and nothing is written.
	Put(ctx context.Context, kind domain.SourceKind, sourceID, summary string) (*domain.SummaryRecord, error)
}

type summaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Get(ctx context.Context, kind domain.SourceKind, sourceID string) (*domain.SummaryRecord, error) {
	var record domain.SummaryRecord
	err := r.db.WithContext(ctx).
		Where("source_kind = ? AND source_id = ?", kind, sourceID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *summaryRepository) Put(ctx context.Context, kind domain.SourceKind, sourceID, summary string) (*domain.SummaryRecord, error) {
	record := &domain.SummaryRecord{
		ID:         uuid.New().String(),
		SourceKind: kind,
		SourceID:   sourceID,
		Summary:    summary,
		CreatedAt:  time.Now(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_kind"}, {Name: "source_id"}},
		DoNothing: true,
	}).Create(record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		return record, nil
	}

	// Lost the race: someone else cached this key first.
	existing, err := r.Get(ctx, kind, sourceID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("summary conflict without existing row")
	}
	return existing, nil
}
