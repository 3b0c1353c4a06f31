package service

import (
	"time"

	"github.com/asset-tracking-api/internal/domain"
)

// resolveParticipant разрешает сентинел "-" в id утверждающего.
// Разрешение выполняется ровно один раз, в момент принятия решения,
// чтобы запись отражала фактического утверждающего
func resolveParticipant(id, approverID string) string {
	if id == domain.ParticipantManager {
		return approverID
	}
	return id
}

// assignmentPatch - merge-патч по подзаписи назначения актива.
// Nil в assignedTo/assignedBy означает сброс назначения,
// nil в status означает "статус не меняется"
type assignmentPatch struct {
	assignedTo *string
	assignedBy *string
	status     *domain.AssetStatus
}

// dispatchRequest отображает тип принятой заявки в мутацию актива.
// Свитч закрытый: новый тип заявки требует явной ветки,
// иначе диспетчеризация завершается ErrUnsupportedRequestType
// и вся транзакция откатывается
func dispatchRequest(typ domain.RequestType, requestedByID, requestedToID string) (assignmentPatch, error) {
	switch typ {
	case domain.RequestTypeAssign, domain.RequestTypeTransfer:
		return assignmentPatch{assignedTo: &requestedToID, assignedBy: &requestedByID}, nil
	case domain.RequestTypeRequest:
		return assignmentPatch{assignedTo: &requestedByID, assignedBy: &requestedToID}, nil
	case domain.RequestTypeReturn:
		return assignmentPatch{}, nil
	case domain.RequestTypeRepair:
		status := domain.AssetStatusUnderMaintenance
		return assignmentPatch{status: &status}, nil
	case domain.RequestTypeRetire:
		status := domain.AssetStatusRetired
		return assignmentPatch{status: &status}, nil
	case domain.RequestTypeUpdate, domain.RequestTypeDispose:
		// эти типы принимаются к подаче, но не имеют мутации актива
		return assignmentPatch{}, domain.ErrUnsupportedRequestType
	default:
		return assignmentPatch{}, domain.ErrUnsupportedRequestType
	}
}

// apply накладывает патч на актив
func (p assignmentPatch) apply(asset *domain.Asset, now time.Time) {
	asset.AssignedTo = p.assignedTo
	asset.AssignedBy = p.assignedBy
	if p.assignedTo != nil {
		asset.AssignedAt = &now
	} else {
		asset.AssignedAt = nil
	}
	if p.status != nil {
		asset.Status = *p.status
	}
}
