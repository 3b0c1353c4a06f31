package repository

import (
	"context"

	"github.com/asset-tracking-api/internal/domain"
	"gorm.io/gorm"
)

// UserRepository определяет интерфейс для работы с сотрудниками
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]domain.User, error)
	MemberIDs(ctx context.Context, departmentID string) ([]string, error)
	ResetEmploymentByDepartment(ctx context.Context, departmentID, updatedBy string) error
	PromoteManager(ctx context.Context, userID, departmentID, updatedBy string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository создаёт новый экземпляр репозитория
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListByDepartment(ctx context.Context, departmentID string) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepository) MemberIDs(ctx context.Context, departmentID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("department_id = ?", departmentID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// ResetEmploymentByDepartment сбрасывает трудоустройство всех членов
// подразделения, включая текущего менеджера
func (r *userRepository) ResetEmploymentByDepartment(ctx context.Context, departmentID, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("department_id = ?", departmentID).
		Updates(map[string]any{
			"department_id":   domain.DepartmentUnassigned,
			"position":        domain.PositionUnassigned,
			"role":            domain.RoleEmployee,
			"last_updated_by": updatedBy,
		}).Error
}

// PromoteManager назначает пользователя менеджером подразделения.
// Значения Manager/Manager зарезервированы за этой операцией
func (r *userRepository) PromoteManager(ctx context.Context, userID, departmentID, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"department_id":   departmentID,
			"position":        domain.PositionManager,
			"role":            domain.RoleManager,
			"last_updated_by": updatedBy,
		}).Error
}
