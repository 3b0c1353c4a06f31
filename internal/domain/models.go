package domain

import (
	"time"
)

// RequestType - тип заявки на изменение актива
type RequestType string

// Закрытый набор типов заявок
const (
	RequestTypeAssign   RequestType = "assign"
	RequestTypeTransfer RequestType = "transfer"
	RequestTypeRequest  RequestType = "request"
	RequestTypeReturn   RequestType = "return"
	RequestTypeRepair   RequestType = "repair"
	RequestTypeRetire   RequestType = "retire"
	RequestTypeUpdate   RequestType = "update"
	RequestTypeDispose  RequestType = "dispose"
)

// RequestTypes перечисляет все допустимые типы заявок в фиксированном порядке
var RequestTypes = []RequestType{
	RequestTypeAssign,
	RequestTypeRequest,
	RequestTypeReturn,
	RequestTypeRepair,
	RequestTypeRetire,
	RequestTypeTransfer,
	RequestTypeUpdate,
	RequestTypeDispose,
}

// RequestStatus - статус жизненного цикла заявки
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// AssetStatus - статус актива
type AssetStatus string

const (
	AssetStatusAvailable        AssetStatus = "available"
	AssetStatusAssigned         AssetStatus = "assigned"
	AssetStatusUnderMaintenance AssetStatus = "under_maintenance"
	AssetStatusLost             AssetStatus = "lost"
	AssetStatusRetired          AssetStatus = "retired"
)

// ParticipantManager - сентинел "-": участник не указан явно,
// подставляется id утверждающего в момент принятия заявки
const ParticipantManager = "-"

// Зарезервированные значения трудоустройства: выставляются только
// транзакцией ротации подразделения, не обычным CRUD
const (
	PositionManager      = "Manager"
	RoleManager          = "Manager"
	RoleEmployee         = "employee"
	RoleAdmin            = "admin"
	DepartmentUnassigned = "UnAssigned"
	PositionUnassigned   = "UnAssigned"
)

// Request представляет заявку на изменение актива
type Request struct {
	ID                 string        `json:"id" gorm:"type:varchar(36);primaryKey"`
	AssetTag           string        `json:"asset_tag" gorm:"type:varchar(100);not null;index"`
	Type               RequestType   `json:"type" gorm:"type:varchar(20);not null"`
	Priority           string        `json:"priority" gorm:"type:varchar(20);not null"`
	Description        string        `json:"description" gorm:"type:text;not null"`
	ExpectedCompletion time.Time     `json:"expected_completion" gorm:"type:date;not null"`
	RequestedByID      string        `json:"requested_by_id" gorm:"type:varchar(100);not null;index"`
	RequestedToID      string        `json:"requested_to_id" gorm:"type:varchar(100);not null;index"`
	DepartmentID       string        `json:"department_id" gorm:"type:varchar(100);not null;index"`
	Status             RequestStatus `json:"status" gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt          time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Request) TableName() string {
	return "requests"
}

// IsTerminal сообщает, достигла ли заявка конечного состояния
func (r *Request) IsTerminal() bool {
	return r.Status == RequestStatusAccepted || r.Status == RequestStatusRejected
}

// Asset представляет физический актив
type Asset struct {
	Tag          string      `json:"tag" gorm:"type:varchar(100);primaryKey"`
	Name         string      `json:"name" gorm:"type:varchar(200);not null"`
	Category     string      `json:"category" gorm:"type:varchar(100)"`
	SerialNumber string      `json:"serial_number" gorm:"type:varchar(100)"`
	Status       AssetStatus `json:"status" gorm:"type:varchar(30);not null;default:available"`
	AssignedTo   *string     `json:"assigned_to" gorm:"type:varchar(100)"`
	AssignedBy   *string     `json:"assigned_by" gorm:"type:varchar(100)"`
	AssignedAt   *time.Time  `json:"assigned_at"`
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Asset) TableName() string {
	return "assets"
}

// User представляет сотрудника
type User struct {
	UserID        string    `json:"user_id" gorm:"type:varchar(100);primaryKey"`
	FullName      string    `json:"full_name" gorm:"type:varchar(200);not null"`
	Email         string    `json:"email" gorm:"type:varchar(200)"`
	DepartmentID  string    `json:"department_id" gorm:"type:varchar(100);not null;index"`
	Position      string    `json:"position" gorm:"type:varchar(100);not null"`
	Role          string    `json:"role" gorm:"type:varchar(50);not null"`
	LastUpdatedBy string    `json:"last_updated_by" gorm:"type:varchar(100)"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// Department представляет подразделение
type Department struct {
	DepartmentID  string    `json:"department_id" gorm:"type:varchar(100);primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(200);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	ManagerUserID string    `json:"manager_user_id" gorm:"type:varchar(100);not null"`
	Positions     []string  `json:"positions" gorm:"serializer:json"`
	EmployeeCount int       `json:"employee_count" gorm:"not null;default:0"`
	Budget        float64   `json:"budget" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

// LogDetails - закрытая форма деталей записи аудита
type LogDetails struct {
	Priority           string         `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	ExpectedCompletion *time.Time     `json:"expected_completion"`
	Notes              string         `json:"notes" validate:"omitempty,max=2000"`
	DepartmentID       string         `json:"department_id" validate:"omitempty,max=100"`
	AdditionalData     map[string]any `json:"additional_data" gorm:"serializer:json"`
}

// RequestLog представляет неизменяемую запись журнала аудита.
// Записи только добавляются и никогда не обновляются и не удаляются
type RequestLog struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID   string     `json:"request_id" gorm:"type:varchar(36);not null;index"`
	Action      string     `json:"action" gorm:"type:varchar(30);not null"`
	PerformedBy string     `json:"performed_by" gorm:"type:varchar(100);not null;index"`
	IPAddress   string     `json:"ip_address" gorm:"type:varchar(64)"`
	State       string     `json:"state" gorm:"type:varchar(20);not null"`
	Details     LogDetails `json:"details" gorm:"embedded;embeddedPrefix:detail_"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (RequestLog) TableName() string {
	return "request_logs"
}

// Actor - уже аутентифицированный инициатор операции.
// Аутентификация выполняется внешним компонентом, движок доверяет id
type Actor struct {
	UserID    string
	IPAddress string
}
