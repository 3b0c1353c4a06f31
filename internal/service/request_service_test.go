package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/asset-tracking-api/internal/domain"
	"github.com/asset-tracking-api/internal/dto"
	"github.com/asset-tracking-api/internal/service"
)

func TestSubmit_CreatesPendingRequest(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	request, err := svc.Submit(context.Background(), &dto.SubmitRequestRequest{
		AssetID:            "A1",
		Type:               "assign",
		Priority:           "high",
		Description:        "laptop for new hire",
		ExpectedCompletion: "2026-10-01",
		Participants: dto.Participants{
			RequestedByID: "U1",
			RequestedToID: "-",
			DepartmentID:  "D1",
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if request.ID == "" {
		t.Error("expected generated request id")
	}
	if request.Status != domain.RequestStatusPending {
		t.Errorf("expected status pending, got %s", request.Status)
	}

	stored, err := store.Requests.GetByID(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("request was not persisted: %v", err)
	}
	if stored.RequestedToID != "-" {
		t.Errorf("sentinel must not be resolved at submit time, got %q", stored.RequestedToID)
	}
}

func TestSubmit_InvalidDate(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	_, err := svc.Submit(context.Background(), &dto.SubmitRequestRequest{
		AssetID:            "A1",
		Type:               "assign",
		Priority:           "high",
		Description:        "bad date",
		ExpectedCompletion: "not-a-date",
		Participants: dto.Participants{
			RequestedByID: "U1",
			RequestedToID: "U2",
			DepartmentID:  "D1",
		},
	})
	if err == nil {
		t.Fatal("expected error for invalid date")
	}
}

func TestAccept_AssignSetsAssignment(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedAsset(t, store, "A1")
	request := seedRequest(t, store, domain.RequestTypeAssign, "A1", "U1", "U2", "D1")

	accepted, asset, err := svc.Accept(context.Background(), request.ID, domain.Actor{UserID: "M1", IPAddress: "10.0.0.1"})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if accepted.Status != domain.RequestStatusAccepted {
		t.Errorf("expected status accepted, got %s", accepted.Status)
	}
	if got := strPtrValue(asset.AssignedTo); got != "U2" {
		t.Errorf("expected assigned_to U2, got %s", got)
	}
	if got := strPtrValue(asset.AssignedBy); got != "U1" {
		t.Errorf("expected assigned_by U1, got %s", got)
	}
	if asset.AssignedAt == nil {
		t.Error("expected assigned_at to be set")
	}
	if asset.Status != domain.AssetStatusAvailable {
		t.Errorf("assign must not change asset status, got %s", asset.Status)
	}

	if count := mustLogCount(t, store, request.ID); count != 1 {
		t.Errorf("expected exactly 1 audit row, got %d", count)
	}
}

func TestAccept_RequestTypeSwapsParticipants(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedAsset(t, store, "A1")
	request := seedRequest(t, store, domain.RequestTypeRequest, "A1", "U1", "U2", "D1")

	_, asset, err := svc.Accept(context.Background(), request.ID, domain.Actor{UserID: "M1"})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if got := strPtrValue(asset.AssignedTo); got != "U1" {
		t.Errorf("expected assigned_to U1 (requester side), got %s", got)
	}
	if got := strPtrValue(asset.AssignedBy); got != "U2" {
		t.Errorf("expected assigned_by U2 (approver side), got %s", got)
	}
}

func TestAccept_RepairClearsAssignmentAndSetsMaintenance(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedAsset(t, store, "A1")

	// актив предварительно назначен
	asset, _ := store.Assets.GetByTag(context.Background(), "A1")
	owner := "U7"
	asset.AssignedTo = &owner
	asset.AssignedBy = &owner
	if err := store.Assets.Update(context.Background(), asset); err != nil {
		t.Fatalf("failed to preassign asset: %v", err)
	}

	request := seedRequest(t, store, domain.RequestTypeRepair, "A1", "U1", "U2", "D1")

	_, updated, err := svc.Accept(context.Background(), request.ID, domain.Actor{UserID: "M1"})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if updated.AssignedTo != nil || updated.AssignedBy != nil {
		t.Errorf("expected assignment cleared, got to=%s by=%s",
			strPtrValue(updated.AssignedTo), strPtrValue(updated.AssignedBy))
	}
	if updated.Status != domain.AssetStatusUnderMaintenance {
		t.Errorf("expected status under_maintenance, got %s", updated.Status)
	}
}

func TestAccept_RetireSetsRetired(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedAsset(t, store, "A1")
	request := seedRequest(t, store, domain.RequestTypeRetire, "A1", "U1", "U2", "D1")

	_, asset, err := svc.Accept(context.Background(), request.ID, domain.Actor{UserID: "M1"})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if asset.Status != domain.AssetStatusRetired {
		t.Errorf("expected status retired, got %s", asset.Status)
	}
	if asset.AssignedTo != nil {
		t.Error("expected assignment cleared")
	}
}

func TestAccept_ReturnClearsAssignmentKeepsStatus(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedAsset(t, store, "A1")
	request := seedRequest(t, store, domain.RequestTypeReturn, "A1", "U1", "U2", "D1")

	_, asset, err := svc.Accept(context.Background(), request.ID, domain.Actor{UserID: "M1"})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if asset.AssignedTo != nil || asset.AssignedBy != nil || asset.AssignedAt != nil {
		t.Error("expected assignment fully cleared")
	}
	if asset.Status != domain.AssetStatusAvailable {
		t.Errorf("return must not change asset status, got %s", asset.Status)
	}
}

func TestAccept_SentinelResolvesToApprover(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedAsset(t, store, "A1")
	request := seedRequest(t, store, domain.RequestTypeAssign, "A1", "U1", domain.ParticipantManager, "D1")

	accepted, asset, err := svc.Accept(context.Background(), request.ID, domain.Actor{UserID: "U9"})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if accepted.RequestedToID != "U9" {
		t.Errorf("expected sentinel resolved to U9 on the request, got %s", accepted.RequestedToID)
	}
	if got := strPtrValue(asset.AssignedTo); got != "U9" {
		t.Errorf("expected assigned_to U9, got %s", got)
	}

	// разрешённое значение сохраняется
	stored, _ := store.Requests.GetByID(context.Background(), request.ID)
	if stored.RequestedToID != "U9" {
		t.Errorf("expected resolved participant persisted, got %s", stored.RequestedToID)
	}
}

func TestAccept_TerminalStateIsNotReenterable(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedAsset(t, store, "A1")
	request := seedRequest(t, store, domain.RequestTypeAssign, "A1", "U1", "U2", "D1")

	if _, _, err := svc.Accept(context.Background(), request.ID, domain.Actor{UserID: "M1"}); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}

	if _, _, err := svc.Accept(context.Background(), request.ID, domain.Actor{UserID: "M1"}); !errors.Is(err, domain.ErrRequestAlreadyResolved) {
		t.Errorf("expected ErrRequestAlreadyResolved, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), request.ID, domain.Actor{UserID: "M1"}); !errors.Is(err, domain.ErrRequestAlreadyResolved) {
		t.Errorf("expected ErrRequestAlreadyResolved on reject, got %v", err)
	}

	// повторные попытки не добавляют строк аудита
	if count := mustLogCount(t, store, request.ID); count != 1 {
		t.Errorf("expected exactly 1 audit row, got %d", count)
	}
}

func TestReject_DoesNotTouchAsset(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedAsset(t, store, "A1")
	request := seedRequest(t, store, domain.RequestTypeAssign, "A1", "U1", "U2", "D1")

	rejected, err := svc.Reject(context.Background(), request.ID, domain.Actor{UserID: "M1"})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != domain.RequestStatusRejected {
		t.Errorf("expected status rejected, got %s", rejected.Status)
	}

	asset, _ := store.Assets.GetByTag(context.Background(), "A1")
	if asset.AssignedTo != nil || asset.AssignedBy != nil {
		t.Error("reject must not mutate the asset")
	}

	if count := mustLogCount(t, store, request.ID); count != 1 {
		t.Errorf("expected exactly 1 audit row, got %d", count)
	}
}

func TestAccept_UnsupportedTypeKeepsRequestPending(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedAsset(t, store, "A1")
	request := seedRequest(t, store, domain.RequestTypeUpdate, "A1", "U1", "U2", "D1")

	_, _, err := svc.Accept(context.Background(), request.ID, domain.Actor{UserID: "M1"})
	if !errors.Is(err, domain.ErrUnsupportedRequestType) {
		t.Fatalf("expected ErrUnsupportedRequestType, got %v", err)
	}

	// ничего не зафиксировано: заявка осталась pending, аудита нет
	stored, _ := store.Requests.GetByID(context.Background(), request.ID)
	if stored.Status != domain.RequestStatusPending {
		t.Errorf("expected request to stay pending, got %s", stored.Status)
	}
	if count := mustLogCount(t, store, request.ID); count != 0 {
		t.Errorf("expected 0 audit rows, got %d", count)
	}
}

func TestAccept_MissingAssetAbortsTransaction(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	request := seedRequest(t, store, domain.RequestTypeAssign, "A-ghost", "U1", "U2", "D1")

	_, _, err := svc.Accept(context.Background(), request.ID, domain.Actor{UserID: "M1"})
	if !errors.Is(err, domain.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}

	stored, _ := store.Requests.GetByID(context.Background(), request.ID)
	if stored.Status != domain.RequestStatusPending {
		t.Errorf("expected request to stay pending, got %s", stored.Status)
	}
	if count := mustLogCount(t, store, request.ID); count != 0 {
		t.Errorf("expected 0 audit rows, got %d", count)
	}
}

func TestAccept_RequestNotFound(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	_, _, err := svc.Accept(context.Background(), "missing", domain.Actor{UserID: "M1"})
	if !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestAccept_ActorRequired(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	_, _, err := svc.Accept(context.Background(), "any", domain.Actor{})
	if !errors.Is(err, domain.ErrActorRequired) {
		t.Errorf("expected ErrActorRequired, got %v", err)
	}
}

func TestListForUser_EmployeeSeesOwnRequests(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedUser(t, store, "U1", "D1", "Engineer", domain.RoleEmployee)
	seedAsset(t, store, "A1")

	seedRequest(t, store, domain.RequestTypeAssign, "A1", "U1", "U2", "D1")
	seedRequest(t, store, domain.RequestTypeRepair, "A1", "U3", "U1", "D1")
	seedRequest(t, store, domain.RequestTypeRetire, "A1", "U3", "U4", "D1")

	requests, counts, err := svc.ListForUser(context.Background(), "U1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("expected 2 visible requests, got %d", len(requests))
	}
	if counts.Assign != 1 || counts.Repair != 1 || counts.Retire != 0 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}

func TestListForUser_ManagerSeesDepartmentRequests(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedUser(t, store, "M1", "D1", domain.PositionManager, domain.RoleManager)
	seedUser(t, store, "U1", "D1", "Engineer", domain.RoleEmployee)
	seedUser(t, store, "U2", "D2", "Engineer", domain.RoleEmployee)

	seedRequest(t, store, domain.RequestTypeAssign, "A1", "U1", "U5", "D9")
	seedRequest(t, store, domain.RequestTypeReturn, "A2", "U2", "U5", "D1")
	seedRequest(t, store, domain.RequestTypeRepair, "A3", "U2", "U5", "D2")

	requests, counts, err := svc.ListForUser(context.Background(), "M1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	// заявка члена подразделения + заявка с department_id подразделения
	if len(requests) != 2 {
		t.Fatalf("expected 2 visible requests, got %d", len(requests))
	}
	if counts.Assign != 1 || counts.Return != 1 || counts.Repair != 0 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}

func TestListForUser_AdminSeesAll(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedUser(t, store, "ADM", domain.DepartmentUnassigned, "Director", domain.RoleAdmin)

	seedRequest(t, store, domain.RequestTypeAssign, "A1", "U1", "U2", "D1")
	seedRequest(t, store, domain.RequestTypeDispose, "A2", "U3", "U4", "D2")

	requests, counts, err := svc.ListForUser(context.Background(), "ADM")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("expected all requests, got %d", len(requests))
	}
	if counts.Assign != 1 || counts.Dispose != 1 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}

func TestListForUser_UnknownUser(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	_, _, err := svc.ListForUser(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListLogsForUser_EmployeeScope(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedUser(t, store, "U1", "D1", "Engineer", domain.RoleEmployee)
	seedAsset(t, store, "A1")
	seedAsset(t, store, "A2")

	mine := seedRequest(t, store, domain.RequestTypeAssign, "A1", "U1", "U2", "D1")
	other := seedRequest(t, store, domain.RequestTypeAssign, "A2", "U3", "U4", "D2")

	if _, _, err := svc.Accept(context.Background(), mine.ID, domain.Actor{UserID: "M1"}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, _, err := svc.Accept(context.Background(), other.ID, domain.Actor{UserID: "M2"}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	logs, err := svc.ListLogsForUser(context.Background(), "U1")
	if err != nil {
		t.Fatalf("list logs failed: %v", err)
	}

	if len(logs) != 1 {
		t.Fatalf("expected 1 visible log row, got %d", len(logs))
	}
	if logs[0].RequestID != mine.ID {
		t.Errorf("expected log for own request, got %s", logs[0].RequestID)
	}
}

func TestAuditTrail_OneRowPerCommittedTransition(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewRequestService(store, service.NewAuditWriter())

	seedAsset(t, store, "A1")
	seedAsset(t, store, "A2")

	first := seedRequest(t, store, domain.RequestTypeAssign, "A1", "U1", "U2", "D1")
	second := seedRequest(t, store, domain.RequestTypeRepair, "A2", "U1", "U2", "D1")

	if _, _, err := svc.Accept(context.Background(), first.ID, domain.Actor{UserID: "M1"}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := svc.Reject(context.Background(), second.ID, domain.Actor{UserID: "M1"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	// незафиксированные попытки не оставляют следов
	svc.Accept(context.Background(), first.ID, domain.Actor{UserID: "M1"})
	svc.Reject(context.Background(), second.ID, domain.Actor{UserID: "M1"})

	if count := mustLogCount(t, store, first.ID); count != 1 {
		t.Errorf("expected 1 audit row for first request, got %d", count)
	}
	if count := mustLogCount(t, store, second.ID); count != 1 {
		t.Errorf("expected 1 audit row for second request, got %d", count)
	}

	logs, err := store.RequestLogs.ListByRequestIDs(context.Background(), []string{first.ID, second.ID})
	if err != nil {
		t.Fatalf("failed to list logs: %v", err)
	}
	for _, entry := range logs {
		if entry.Details.Priority != "high" {
			t.Errorf("expected snapshot priority in details, got %q", entry.Details.Priority)
		}
	}
}
