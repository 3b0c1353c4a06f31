package service

import (
	"context"
	"errors"
	"strings"

	"github.com/asset-tracking-api/internal/domain"
	"github.com/asset-tracking-api/internal/dto"
	"github.com/asset-tracking-api/internal/repository"
)

// DepartmentService определяет интерфейс бизнес-логики для подразделений.
// Операции изменения поддерживают инвариант "ровно один менеджер
// на подразделение" и выполняются одной транзакцией
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest, actor domain.Actor) (*domain.Department, error)
	GetByID(ctx context.Context, departmentID string) (*domain.Department, error)
	Update(ctx context.Context, departmentID string, req *dto.UpdateDepartmentRequest, actor domain.Actor) (*domain.Department, error)
	Delete(ctx context.Context, departmentID string, actor domain.Actor) error
}

type departmentService struct {
	store *repository.Store
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(store *repository.Store) DepartmentService {
	return &departmentService{store: store}
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest, actor domain.Actor) (*domain.Department, error) {
	if actor.UserID == "" {
		return nil, domain.ErrActorRequired
	}

	dept := &domain.Department{
		DepartmentID:  strings.TrimSpace(req.DepartmentID),
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		ManagerUserID: req.Manager.UserID,
		Positions:     req.Positions,
		EmployeeCount: req.Stats.EmployeeCount,
		Budget:        req.Stats.Budget,
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Users.GetByID(ctx, req.Manager.UserID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.ErrManagerNotFound
			}
			return err
		}

		if err := tx.Departments.Create(ctx, dept); err != nil {
			return err
		}

		return tx.Users.PromoteManager(ctx, req.Manager.UserID, dept.DepartmentID, actor.UserID)
	})
	if err != nil {
		return nil, err
	}

	return dept, nil
}

func (s *departmentService) GetByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	return s.store.Departments.GetByID(ctx, departmentID)
}

// Update меняет конфигурацию подразделения и ротирует менеджера.
// Члены сбрасываются до проверки нового менеджера: один проход покрывает
// и смену, и сохранение менеджера, а частичное применение невозможно
// благодаря откату транзакции
func (s *departmentService) Update(ctx context.Context, departmentID string, req *dto.UpdateDepartmentRequest, actor domain.Actor) (*domain.Department, error) {
	if actor.UserID == "" {
		return nil, domain.ErrActorRequired
	}

	var updated *domain.Department

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		dept, err := tx.Departments.GetByID(ctx, departmentID)
		if err != nil {
			return err
		}

		// Шаг 1: безусловный сброс всей прежней членской базы,
		// включая уходящего менеджера
		if err := tx.Users.ResetEmploymentByDepartment(ctx, departmentID, actor.UserID); err != nil {
			return err
		}

		// Шаг 2: новый менеджер должен существовать, иначе вся
		// транзакция, включая сброс, откатывается
		if _, err := tx.Users.GetByID(ctx, req.Manager.UserID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.ErrManagerNotFound
			}
			return err
		}

		// Шаг 3: новая конфигурация подразделения
		dept.Name = strings.TrimSpace(req.Name)
		dept.Description = req.Description
		dept.ManagerUserID = req.Manager.UserID
		dept.Positions = req.Positions
		dept.EmployeeCount = req.Stats.EmployeeCount
		dept.Budget = req.Stats.Budget
		if err := tx.Departments.Update(ctx, dept); err != nil {
			return err
		}

		// Шаг 4: повышение нового менеджера
		if err := tx.Users.PromoteManager(ctx, req.Manager.UserID, departmentID, actor.UserID); err != nil {
			return err
		}

		updated = dept
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete удаляет подразделение и сбрасывает трудоустройство всех его
// членов одной транзакцией. Если подразделения нет, сбросы не выполняются
func (s *departmentService) Delete(ctx context.Context, departmentID string, actor domain.Actor) error {
	if actor.UserID == "" {
		return domain.ErrActorRequired
	}

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Departments.Delete(ctx, departmentID); err != nil {
			return err
		}
		return tx.Users.ResetEmploymentByDepartment(ctx, departmentID, actor.UserID)
	})
}
