package service

import (
	"context"
	"time"

	"github.com/asset-tracking-api/internal/domain"
	"github.com/asset-tracking-api/internal/dto"
	"github.com/asset-tracking-api/internal/repository"
	"github.com/google/uuid"
)

// Действия журнала аудита
const (
	AuditActionAccepted = "accepted"
	AuditActionRejected = "rejected"
)

// RequestService определяет интерфейс жизненного цикла заявок
type RequestService interface {
	Submit(ctx context.Context, req *dto.SubmitRequestRequest) (*domain.Request, error)
	Accept(ctx context.Context, requestID string, actor domain.Actor) (*domain.Request, *domain.Asset, error)
	Reject(ctx context.Context, requestID string, actor domain.Actor) (*domain.Request, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Request, dto.RequestCounts, error)
	ListLogsForUser(ctx context.Context, userID string) ([]domain.RequestLog, error)
}

type requestService struct {
	store *repository.Store
	audit *AuditWriter
}

// NewRequestService создаёт новый экземпляр сервиса
func NewRequestService(store *repository.Store, audit *AuditWriter) RequestService {
	return &requestService{
		store: store,
		audit: audit,
	}
}

// Submit валидирует и сохраняет новую заявку в состоянии pending.
// Статус и поля аудита клиентом не задаются: их нет в схеме,
// а неизвестные поля отклоняются на уровне декодера
func (s *requestService) Submit(ctx context.Context, req *dto.SubmitRequestRequest) (*domain.Request, error) {
	expected, err := time.Parse("2006-01-02", req.ExpectedCompletion)
	if err != nil {
		return nil, err
	}

	request := &domain.Request{
		ID:                 uuid.NewString(),
		AssetTag:           req.AssetID,
		Type:               domain.RequestType(req.Type),
		Priority:           req.Priority,
		Description:        req.Description,
		ExpectedCompletion: expected,
		RequestedByID:      req.Participants.RequestedByID,
		RequestedToID:      req.Participants.RequestedToID,
		DepartmentID:       req.Participants.DepartmentID,
		Status:             domain.RequestStatusPending,
	}

	if err := s.store.Requests.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// Accept принимает заявку: мутация актива, переход статуса и запись
// аудита фиксируются одной транзакцией либо не фиксируются вовсе
func (s *requestService) Accept(ctx context.Context, requestID string, actor domain.Actor) (*domain.Request, *domain.Asset, error) {
	if actor.UserID == "" {
		return nil, nil, domain.ErrActorRequired
	}

	var (
		accepted     *domain.Request
		updatedAsset *domain.Asset
	)

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		request, err := tx.Requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request.IsTerminal() {
			return domain.ErrRequestAlreadyResolved
		}

		// Разрешаем участников до применения таблицы диспетчеризации
		requestedByID := resolveParticipant(request.RequestedByID, actor.UserID)
		requestedToID := resolveParticipant(request.RequestedToID, actor.UserID)

		patch, err := dispatchRequest(request.Type, requestedByID, requestedToID)
		if err != nil {
			return err
		}

		asset, err := tx.Assets.GetByTag(ctx, request.AssetTag)
		if err != nil {
			return err
		}

		patch.apply(asset, time.Now())
		if err := tx.Assets.Update(ctx, asset); err != nil {
			return err
		}

		ok, err := tx.Requests.MarkAccepted(ctx, request.ID, requestedByID, requestedToID)
		if err != nil {
			return err
		}
		if !ok {
			// конкурентный переход успел раньше
			return domain.ErrRequestAlreadyResolved
		}

		entry := s.newLogEntry(request, AuditActionAccepted, domain.RequestStatusAccepted, actor)
		if err := s.audit.Append(ctx, tx.RequestLogs, entry); err != nil {
			return err
		}

		request.Status = domain.RequestStatusAccepted
		request.RequestedByID = requestedByID
		request.RequestedToID = requestedToID
		request.UpdatedAt = time.Now()

		accepted = request
		updatedAsset = asset
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return accepted, updatedAsset, nil
}

// Reject отклоняет заявку: только переход статуса и запись аудита,
// актив не изменяется
func (s *requestService) Reject(ctx context.Context, requestID string, actor domain.Actor) (*domain.Request, error) {
	if actor.UserID == "" {
		return nil, domain.ErrActorRequired
	}

	var rejected *domain.Request

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		request, err := tx.Requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request.IsTerminal() {
			return domain.ErrRequestAlreadyResolved
		}

		ok, err := tx.Requests.MarkRejected(ctx, request.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrRequestAlreadyResolved
		}

		// Детали аудита берутся из снимка заявки до решения
		entry := s.newLogEntry(request, AuditActionRejected, domain.RequestStatusRejected, actor)
		if err := s.audit.Append(ctx, tx.RequestLogs, entry); err != nil {
			return err
		}

		request.Status = domain.RequestStatusRejected
		request.UpdatedAt = time.Now()
		rejected = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rejected, nil
}

// ListForUser возвращает заявки, видимые пользователю, и счётчики по типам.
// Обычный пользователь видит заявки, где он инициатор или адресат,
// менеджер - заявки, затрагивающие членов его подразделения,
// администратор - все
func (s *requestService) ListForUser(ctx context.Context, userID string) ([]domain.Request, dto.RequestCounts, error) {
	requests, err := s.visibleRequests(ctx, userID)
	if err != nil {
		return nil, dto.RequestCounts{}, err
	}

	// Дедупликация по id перед подсчётом
	seen := make(map[string]struct{}, len(requests))
	deduped := make([]domain.Request, 0, len(requests))
	var counts dto.RequestCounts
	for _, request := range requests {
		if _, ok := seen[request.ID]; ok {
			continue
		}
		seen[request.ID] = struct{}{}
		deduped = append(deduped, request)

		switch request.Type {
		case domain.RequestTypeAssign:
			counts.Assign++
		case domain.RequestTypeRequest:
			counts.Request++
		case domain.RequestTypeReturn:
			counts.Return++
		case domain.RequestTypeRepair:
			counts.Repair++
		case domain.RequestTypeRetire:
			counts.Retire++
		case domain.RequestTypeTransfer:
			counts.Transfer++
		case domain.RequestTypeUpdate:
			counts.Update++
		case domain.RequestTypeDispose:
			counts.Dispose++
		}
	}

	return deduped, counts, nil
}

// ListLogsForUser возвращает записи аудита с той же областью видимости,
// что и список заявок
func (s *requestService) ListLogsForUser(ctx context.Context, userID string) ([]domain.RequestLog, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == domain.RoleAdmin {
		return s.store.RequestLogs.ListAll(ctx)
	}

	requests, err := s.visibleRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	requestIDs := make([]string, 0, len(requests))
	seen := make(map[string]struct{}, len(requests))
	for _, request := range requests {
		if _, ok := seen[request.ID]; ok {
			continue
		}
		seen[request.ID] = struct{}{}
		requestIDs = append(requestIDs, request.ID)
	}

	if user.Role == domain.RoleManager {
		return s.store.RequestLogs.ListByRequestIDs(ctx, requestIDs)
	}
	return s.store.RequestLogs.ListForUser(ctx, userID, requestIDs)
}

func (s *requestService) visibleRequests(ctx context.Context, userID string) ([]domain.Request, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case domain.RoleAdmin:
		return s.store.Requests.ListAll(ctx)
	case domain.RoleManager:
		members, err := s.store.Users.MemberIDs(ctx, user.DepartmentID)
		if err != nil {
			return nil, err
		}
		return s.store.Requests.ListByDepartment(ctx, user.DepartmentID, members)
	default:
		return s.store.Requests.ListByParticipant(ctx, userID)
	}
}

func (s *requestService) newLogEntry(request *domain.Request, action string, state domain.RequestStatus, actor domain.Actor) *domain.RequestLog {
	expected := request.ExpectedCompletion
	return &domain.RequestLog{
		RequestID:   request.ID,
		Action:      action,
		PerformedBy: actor.UserID,
		IPAddress:   actor.IPAddress,
		State:       string(state),
		Details: domain.LogDetails{
			Priority:           request.Priority,
			ExpectedCompletion: &expected,
			Notes:              request.Description,
			DepartmentID:       request.DepartmentID,
		},
	}
}
