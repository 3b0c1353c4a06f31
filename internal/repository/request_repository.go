package repository

import (
	"context"
	"time"

	"github.com/asset-tracking-api/internal/domain"
	"gorm.io/gorm"
)

// RequestRepository определяет интерфейс для работы с заявками
type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	MarkAccepted(ctx context.Context, id, requestedByID, requestedToID string) (bool, error)
	MarkRejected(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]domain.Request, error)
	ListByParticipant(ctx context.Context, userID string) ([]domain.Request, error)
	ListByDepartment(ctx context.Context, departmentID string, memberIDs []string) ([]domain.Request, error)
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository создаёт новый экземпляр репозитория
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	var req domain.Request
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// MarkAccepted атомарно переводит заявку из pending в accepted и сохраняет
// разрешённых участников. Возвращает false, если заявка уже не pending:
// при конкурентных вызовах ровно один переход выигрывает
func (r *requestRepository) MarkAccepted(ctx context.Context, id, requestedByID, requestedToID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("id = ? AND status = ?", id, domain.RequestStatusPending).
		Updates(map[string]any{
			"status":          domain.RequestStatusAccepted,
			"requested_by_id": requestedByID,
			"requested_to_id": requestedToID,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkRejected атомарно переводит заявку из pending в rejected
func (r *requestRepository) MarkRejected(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("id = ? AND status = ?", id, domain.RequestStatusPending).
		Updates(map[string]any{
			"status":     domain.RequestStatusRejected,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *requestRepository) ListAll(ctx context.Context) ([]domain.Request, error) {
	var requests []domain.Request
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) ListByParticipant(ctx context.Context, userID string) ([]domain.Request, error) {
	var requests []domain.Request
	err := r.db.WithContext(ctx).
		Where("requested_by_id = ? OR requested_to_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) ListByDepartment(ctx context.Context, departmentID string, memberIDs []string) ([]domain.Request, error) {
	var requests []domain.Request
	query := r.db.WithContext(ctx).Where("department_id = ?", departmentID)
	if len(memberIDs) > 0 {
		query = query.Or("requested_by_id IN ?", memberIDs).
			Or("requested_to_id IN ?", memberIDs)
	}
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}
