package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store объединяет репозитории над одним подключением к БД.
// Transaction выдаёт копию Store, привязанную к транзакции,
// чтобы многошаговые операции фиксировались атомарно
type Store struct {
	db *gorm.DB

	Requests    RequestRepository
	Assets      AssetRepository
	Users       UserRepository
	Departments DepartmentRepository
	RequestLogs RequestLogRepository
}

// NewStore создаёт новый экземпляр хранилища
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Requests:    NewRequestRepository(db),
		Assets:      NewAssetRepository(db),
		Users:       NewUserRepository(db),
		Departments: NewDepartmentRepository(db),
		RequestLogs: NewRequestLogRepository(db),
	}
}

// Transaction выполняет fn в одной транзакции БД.
// Любая ошибка из fn откатывает все изменения
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
