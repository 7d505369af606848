package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	exportDomain "pf-loan-generator/internal/domain/export"
)

var _ exportDomain.Repository = (*ExportRepository)(nil)

type ExportRepository struct{ db *gorm.DB }

func NewExportRepository(db *gorm.DB) *ExportRepository { return &ExportRepository{db: db} }

func (r *ExportRepository) Create(ctx context.Context, rec *exportDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ExportRepository) Save(ctx context.Context, rec *exportDomain.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *ExportRepository) GetByRecordID(ctx context.Context, recordID string) (*exportDomain.Record, error) {
	var out exportDomain.Record
	err := r.db.WithContext(ctx).Where("record_id = ?", recordID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, exportDomain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBySessionID returns the session's exports, newest first.
func (r *ExportRepository) ListBySessionID(ctx context.Context, sessionID string) ([]exportDomain.Record, error) {
	var out []exportDomain.Record
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("started_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
