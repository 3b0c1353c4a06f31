package repository

import (
	"context"

	"github.com/asset-tracking-api/internal/domain"
	"gorm.io/gorm"
)

// RequestLogRepository определяет интерфейс журнала аудита.
// Журнал только пополняется: операций обновления и удаления нет
type RequestLogRepository interface {
	Append(ctx context.Context, entry *domain.RequestLog) error
	ListAll(ctx context.Context) ([]domain.RequestLog, error)
	ListByRequestIDs(ctx context.Context, requestIDs []string) ([]domain.RequestLog, error)
	ListForUser(ctx context.Context, userID string, requestIDs []string) ([]domain.RequestLog, error)
	CountByRequestID(ctx context.Context, requestID string) (int64, error)
}

type requestLogRepository struct {
	db *gorm.DB
}

// NewRequestLogRepository создаёт новый экземпляр репозитория
func NewRequestLogRepository(db *gorm.DB) RequestLogRepository {
	return &requestLogRepository{db: db}
}

func (r *requestLogRepository) Append(ctx context.Context, entry *domain.RequestLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *requestLogRepository) ListAll(ctx context.Context) ([]domain.RequestLog, error) {
	var logs []domain.RequestLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *requestLogRepository) ListByRequestIDs(ctx context.Context, requestIDs []string) ([]domain.RequestLog, error) {
	var logs []domain.RequestLog
	if len(requestIDs) == 0 {
		return logs, nil
	}
	err := r.db.WithContext(ctx).
		Where("request_id IN ?", requestIDs).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *requestLogRepository) ListForUser(ctx context.Context, userID string, requestIDs []string) ([]domain.RequestLog, error) {
	var logs []domain.RequestLog
	query := r.db.WithContext(ctx).Where("performed_by = ?", userID)
	if len(requestIDs) > 0 {
		query = query.Or("request_id IN ?", requestIDs)
	}
	err := query.Order("created_at DESC").Find(&logs).Error
	return logs, err
}

func (r *requestLogRepository) CountByRequestID(ctx context.Context, requestID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.RequestLog{}).
		Where("request_id = ?", requestID).
		Count(&count).Error
	return count, err
}
