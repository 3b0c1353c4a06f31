package dto

import (
	"time"

	"github.com/asset-tracking-api/internal/domain"
)

// Participants - участники заявки. Идентификаторы могут быть сентинелом "-",
// который разрешается в момент принятия заявки
type Participants struct {
	RequestedByID string `json:"requested_by_id" validate:"required,min=1,max=100"`
	RequestedToID string `json:"requested_to_id" validate:"required,min=1,max=100"`
	DepartmentID  string `json:"department_id" validate:"required,min=1,max=100"`
}

// SubmitRequestRequest - запрос на создание заявки.
// Схема строгая: неизвестные поля отклоняются на уровне декодера
type SubmitRequestRequest struct {
	AssetID            string       `json:"asset_id" validate:"required,min=1,max=100"`
	Type               string       `json:"type" validate:"required,oneof=assign transfer request return repair retire update dispose"`
	Priority           string       `json:"priority" validate:"required,oneof=low medium high urgent"`
	Description        string       `json:"description" validate:"required,min=1,max=2000"`
	ExpectedCompletion string       `json:"expected_completion" validate:"required,datetime=2006-01-02"`
	Participants       Participants `json:"participants" validate:"required"`
}

// DepartmentManager - назначаемый менеджер подразделения
type DepartmentManager struct {
	UserID string `json:"user_id" validate:"required,min=1,max=100"`
}

// DepartmentStats - статистика подразделения
type DepartmentStats struct {
	EmployeeCount int     `json:"employee_count" validate:"min=0"`
	Budget        float64 `json:"budget" validate:"min=0"`
}

// CreateDepartmentRequest - запрос на создание подразделения
type CreateDepartmentRequest struct {
	DepartmentID string            `json:"department_id" validate:"required,min=1,max=100"`
	Name         string            `json:"name" validate:"required,min=1,max=200"`
	Description  string            `json:"description" validate:"max=2000"`
	Manager      DepartmentManager `json:"manager" validate:"required"`
	Stats        DepartmentStats   `json:"stats" validate:"required"`
	Positions    []string          `json:"positions" validate:"required,min=1,dive,min=1,max=100"`
}

// UpdateDepartmentRequest - запрос на обновление подразделения.
// Все поля обязательны: обновление заменяет конфигурацию целиком
type UpdateDepartmentRequest struct {
	Name        string            `json:"name" validate:"required,min=1,max=200"`
	Description string            `json:"description" validate:"max=2000"`
	Manager     DepartmentManager `json:"manager" validate:"required"`
	Stats       DepartmentStats   `json:"stats" validate:"required"`
	Positions   []string          `json:"positions" validate:"required,min=1,dive,min=1,max=100"`
}

// RequestResponse - ответ с данными заявки
type RequestResponse struct {
	ID                 string       `json:"id"`
	AssetID            string       `json:"asset_id"`
	Type               string       `json:"type"`
	Priority           string       `json:"priority"`
	Description        string       `json:"description"`
	ExpectedCompletion string       `json:"expected_completion"`
	Participants       Participants `json:"participants"`
	Status             string       `json:"status"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// AcceptResponse - ответ на принятие заявки
type AcceptResponse struct {
	Request      RequestResponse `json:"request"`
	UpdatedAsset *domain.Asset   `json:"updated_asset"`
}

// RejectResponse - ответ на отклонение заявки
type RejectResponse struct {
	Message string          `json:"message"`
	Request RequestResponse `json:"request"`
}

// RequestCounts - количество заявок по типам после дедупликации
type RequestCounts struct {
	Assign   int `json:"assign"`
	Request  int `json:"request"`
	Return   int `json:"return"`
	Repair   int `json:"repair"`
	Retire   int `json:"retire"`
	Transfer int `json:"transfer"`
	Update   int `json:"update"`
	Dispose  int `json:"dispose"`
}

// RequestListResponse - ответ со списком заявок, видимых пользователю
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
	Counts   RequestCounts     `json:"counts"`
	Total    int               `json:"total"`
}

// DepartmentResponse - ответ с данными подразделения
type DepartmentResponse struct {
	DepartmentID string            `json:"department_id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Manager      DepartmentManager `json:"manager"`
	Stats        DepartmentStats   `json:"stats"`
	Positions    []string          `json:"positions"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// RequestLogListResponse - ответ со списком записей аудита
type RequestLogListResponse struct {
	Logs  []domain.RequestLog `json:"logs"`
	Total int                 `json:"total"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
