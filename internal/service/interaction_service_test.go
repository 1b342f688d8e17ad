package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hcp-interaction-be/internal/dto"
	"hcp-interaction-be/internal/mapper"
	"hcp-interaction-be/internal/repository/memory"
	"hcp-interaction-be/pkg/assistant"
	"hcp-interaction-be/pkg/persistence"
	"hcp-interaction-be/pkg/reconcile"
	"hcp-interaction-be/pkg/sessionkv"
	"hcp-interaction-be/pkg/store"
)

type stubAssistant struct {
	calls    int
	response *assistant.ExchangeResponse
	err      error
}

func (s *stubAssistant) Exchange(_ context.Context, _ *assistant.ExchangeRequest) (*assistant.ExchangeResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

type stubPersistence struct {
	calls    int
	lastSent *dto.LogStructuredRequest
	result   *persistence.Result
	err      error
}

func (s *stubPersistence) Submit(_ context.Context, payload *dto.LogStructuredRequest) (*persistence.Result, error) {
	s.calls++
	s.lastSent = payload
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, []byte) error { return nil }

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestService(aw *stubAssistant, pw *stubPersistence) (IInteractionService, *memory.WorkspaceRepository) {
	workspaces := memory.NewWorkspaceRepository()
	svc := NewInteractionService(
		workspaces,
		sessionkv.NewMemoryStore(),
		aw,
		pw,
		mapper.NewFieldMapper(),
		nopPublisher{},
		nopLogger{},
	)
	return svc, workspaces
}

func TestSendCycleEmptySubmitMakesNoCalls(t *testing.T) {
	aw := &stubAssistant{}
	pw := &stubPersistence{result: &persistence.Result{Id: "log-1"}}
	svc, _ := newTestService(aw, pw)

	_, err := svc.SendCycle(context.Background(), &dto.SendCycleRequest{
		ClientId: "c1",
		Message:  "   ",
	})

	var emptyErr *dto.EmptySubmitError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("err = %v, want EmptySubmitError", err)
	}
	if aw.calls != 0 || pw.calls != 0 {
		t.Errorf("empty submit made network calls: assistant=%d persistence=%d", aw.calls, pw.calls)
	}
}

func TestSendCycleManualFormSubmitSkipsAssistant(t *testing.T) {
	aw := &stubAssistant{}
	pw := &stubPersistence{result: &persistence.Result{Id: "log-1", Message: "saved"}}
	svc, _ := newTestService(aw, pw)

	if _, err := svc.SetField(context.Background(), &dto.SetFieldRequest{
		ClientId: "c1", Field: store.FieldHcpName, Value: "Dr. Smith",
	}); err != nil {
		t.Fatal(err)
	}

	res, err := svc.SendCycle(context.Background(), &dto.SendCycleRequest{ClientId: "c1"})
	if err != nil {
		t.Fatal(err)
	}

	if aw.calls != 0 {
		t.Error("manual submit must not call the assistant")
	}
	if pw.calls != 1 || !res.Submitted {
		t.Errorf("submitted=%v persistence calls=%d", res.Submitted, pw.calls)
	}
	if res.Outcome != string(reconcile.OutcomeSubmit) {
		t.Errorf("outcome = %q", res.Outcome)
	}
	if res.LogId == nil || *res.LogId != "log-1" {
		t.Errorf("LogId = %v", res.LogId)
	}
	if *pw.lastSent.HcpName != "Dr. Smith" {
		t.Errorf("payload HcpName = %v", pw.lastSent.HcpName)
	}
	if pw.lastSent.Id != nil {
		t.Error("first submission must not carry a log id")
	}
}

func TestSendCycleInformationalTurnMergesWithoutPersisting(t *testing.T) {
	aw := &stubAssistant{response: &assistant.ExchangeResponse{
		AiResponse:      "CardioPlus is indicated for hypertension.",
		SessionId:       "srv-1",
		FinalActionType: "QUERY_PRODUCT_INFO_EXECUTED",
		ExtractedData: map[string]any{
			"discussed_products": []any{"CardioPlus"},
		},
	}}
	pw := &stubPersistence{}
	svc, workspaces := newTestService(aw, pw)

	res, err := svc.SendCycle(context.Background(), &dto.SendCycleRequest{
		ClientId: "c1",
		Message:  "Tell me about CardioPlus",
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != string(reconcile.OutcomeNoSubmit) || res.Submitted {
		t.Errorf("outcome=%q submitted=%v", res.Outcome, res.Submitted)
	}
	if pw.calls != 0 {
		t.Error("informational turn must not persist")
	}
	if len(res.Record.ProductsDiscussed) != 1 {
		t.Errorf("extraction not merged: %+v", res.Record.ProductsDiscussed)
	}

	ws, _ := workspaces.Get("c1")
	if ws.Phase != store.PhaseIdle {
		t.Errorf("phase after cycle = %q, want idle", ws.Phase)
	}
	if ws.Conversation.ChatSessionId != "srv-1" {
		t.Errorf("session not adopted: %q", ws.Conversation.ChatSessionId)
	}
}

func TestSendCycleExtractionTurnSubmits(t *testing.T) {
	aw := &stubAssistant{response: &assistant.ExchangeResponse{
		AiResponse:      "Logged it.",
		SessionId:       "srv-1",
		FinalActionType: "EXTRACT_INFO",
		ExtractedData: map[string]any{
			"hcp_name":         "Dr. Smith",
			"interaction_date": "2024-13-40",
			"materials_shared": []any{"brochure"},
		},
	}}
	pw := &stubPersistence{result: &persistence.Result{Id: "log-9", Message: "saved"}}
	svc, _ := newTestService(aw, pw)

	res, err := svc.SendCycle(context.Background(), &dto.SendCycleRequest{
		ClientId: "c1",
		Message:  "Met Dr. Smith, shared the brochure",
	})
	if err != nil {
		t.Fatal(err)
	}

	if !res.Submitted || pw.calls != 1 {
		t.Fatalf("submitted=%v persistence calls=%d", res.Submitted, pw.calls)
	}
	if *pw.lastSent.HcpName != "Dr. Smith" {
		t.Errorf("payload HcpName = %v", pw.lastSent.HcpName)
	}
	if pw.lastSent.Date != nil {
		t.Error("invalid date must not reach the payload")
	}
	if len(res.Rejected) != 1 || res.Rejected[0].Key != "interaction_date" {
		t.Errorf("Rejected = %+v", res.Rejected)
	}
	if len(pw.lastSent.MaterialsShared) != 1 {
		t.Errorf("payload materials = %+v", pw.lastSent.MaterialsShared)
	}
	if pw.lastSent.ChatSessionId != "srv-1" {
		t.Errorf("payload session = %q", pw.lastSent.ChatSessionId)
	}
	if res.Record.CurrentLogId == nil || *res.Record.CurrentLogId != "log-9" {
		t.Errorf("CurrentLogId = %v", res.Record.CurrentLogId)
	}
}

func TestSendCycleResubmitUpdatesSameLog(t *testing.T) {
	aw := &stubAssistant{}
	pw := &stubPersistence{result: &persistence.Result{Id: "log-1"}}
	svc, _ := newTestService(aw, pw)
	ctx := context.Background()

	if _, err := svc.SetField(ctx, &dto.SetFieldRequest{ClientId: "c1", Field: store.FieldHcpName, Value: "Dr. Smith"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendCycle(ctx, &dto.SendCycleRequest{ClientId: "c1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddSample(ctx, &dto.AddItemRequest{ClientId: "c1", Name: "starter pack"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendCycle(ctx, &dto.SendCycleRequest{ClientId: "c1"}); err != nil {
		t.Fatal(err)
	}

	if pw.calls != 2 {
		t.Fatalf("persistence calls = %d", pw.calls)
	}
	if pw.lastSent.Id == nil || *pw.lastSent.Id != "log-1" {
		t.Errorf("second submission Id = %v, want log-1", pw.lastSent.Id)
	}
	if len(pw.lastSent.SamplesDistributed) != 1 {
		t.Errorf("second submission samples = %+v", pw.lastSent.SamplesDistributed)
	}
}

func TestSendCycleMergeSurvivesPersistenceFailure(t *testing.T) {
	aw := &stubAssistant{response: &assistant.ExchangeResponse{
		AiResponse:      "Logged it.",
		FinalActionType: "EXTRACT_INFO",
		ExtractedData:   map[string]any{"hcp_name": "Dr. Smith"},
	}}
	pw := &stubPersistence{err: &persistence.NetworkError{Err: errors.New("dial tcp: refused")}}
	svc, workspaces := newTestService(aw, pw)

	_, err := svc.SendCycle(context.Background(), &dto.SendCycleRequest{
		ClientId: "c1",
		Message:  "Met Dr. Smith",
	})

	var netErr *persistence.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want NetworkError", err)
	}

	ws, _ := workspaces.Get("c1")
	if ws.Record.HcpName != "Dr. Smith" {
		t.Error("merged data was rolled back after persistence failure")
	}
	if ws.Phase != store.PhaseIdle {
		t.Errorf("phase = %q, want idle for retry", ws.Phase)
	}
	if ws.Record.CurrentLogId != nil {
		t.Error("failed submission must not adopt a log id")
	}
}

func TestSendCycleAssistantFailureKeepsRecord(t *testing.T) {
	aw := &stubAssistant{err: &assistant.CallError{Detail: "connection refused"}}
	pw := &stubPersistence{}
	svc, workspaces := newTestService(aw, pw)
	ctx := context.Background()

	if _, err := svc.SetField(ctx, &dto.SetFieldRequest{ClientId: "c1", Field: store.FieldHcpName, Value: "Dr. Smith"}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.SendCycle(ctx, &dto.SendCycleRequest{ClientId: "c1", Message: "log it"})
	var callErr *assistant.CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("err = %v, want CallError", err)
	}
	if pw.calls != 0 {
		t.Error("failed assistant turn must not reach persistence")
	}

	ws, _ := workspaces.Get("c1")
	if ws.Record.HcpName != "Dr. Smith" {
		t.Error("record lost data on assistant failure")
	}
	if ws.Conversation.Error == "" {
		t.Error("conversation error not surfaced")
	}
	if ws.Phase != store.PhaseIdle {
		t.Errorf("phase = %q", ws.Phase)
	}
}

func TestSendCycleRefusedWhileBusy(t *testing.T) {
	aw := &stubAssistant{}
	pw := &stubPersistence{result: &persistence.Result{Id: "log-1"}}
	svc, workspaces := newTestService(aw, pw)
	ctx := context.Background()

	if _, err := svc.SetField(ctx, &dto.SetFieldRequest{ClientId: "c1", Field: store.FieldHcpName, Value: "Dr. Smith"}); err != nil {
		t.Fatal(err)
	}

	ws, _ := workspaces.Get("c1")
	if !workspaces.Transition(ws, store.PhaseIdle, store.PhaseSubmitting) {
		t.Fatal("setup transition failed")
	}

	_, err := svc.SendCycle(ctx, &dto.SendCycleRequest{ClientId: "c1"})
	var busyErr *dto.CycleBusyError
	if !errors.As(err, &busyErr) {
		t.Fatalf("err = %v, want CycleBusyError", err)
	}
	if busyErr.Phase != store.PhaseSubmitting {
		t.Errorf("reported phase = %q", busyErr.Phase)
	}
	if pw.calls != 0 {
		t.Error("refused trigger must not reach persistence")
	}
	if ws.Phase != store.PhaseSubmitting {
		t.Error("refused trigger altered the in-flight phase")
	}
}

func TestSendCycleBusyRefusalPrecedesEmptyCheck(t *testing.T) {
	aw := &stubAssistant{}
	pw := &stubPersistence{result: &persistence.Result{Id: "log-1"}}
	svc, workspaces := newTestService(aw, pw)
	ctx := context.Background()

	ws, _ := workspaces.GetOrCreate("c1", "hi")
	if !workspaces.Transition(ws, store.PhaseIdle, store.PhaseSending) {
		t.Fatal("setup transition failed")
	}

	// Empty message, empty record, workspace busy: the busy refusal wins.
	_, err := svc.SendCycle(ctx, &dto.SendCycleRequest{ClientId: "c1"})
	var busyErr *dto.CycleBusyError
	if !errors.As(err, &busyErr) {
		t.Fatalf("err = %v, want CycleBusyError", err)
	}
	if busyErr.Phase != store.PhaseSending {
		t.Errorf("reported phase = %q", busyErr.Phase)
	}
}

func TestWorkspaceSnapshotDuringSendCycles(t *testing.T) {
	aw := &stubAssistant{response: &assistant.ExchangeResponse{
		AiResponse:      "Noted.",
		SessionId:       "srv-1",
		FinalActionType: "GENERAL_QUERY",
	}}
	pw := &stubPersistence{result: &persistence.Result{Id: "log-1"}}
	svc, workspaces := newTestService(aw, pw)
	ctx := context.Background()

	// One sender drives cycles while readers snapshot the workspace the
	// whole time. Phase reads and the deferred phase reset share a lock,
	// so this must be clean under the race detector.
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if _, err := svc.Workspace(ctx, "c1"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		if _, err := svc.SendCycle(ctx, &dto.SendCycleRequest{ClientId: "c1", Message: "met Dr. Smith"}); err != nil {
			t.Fatal(err)
		}
	}
	close(done)
	wg.Wait()

	ws, _ := workspaces.Get("c1")
	if got := workspaces.Phase(ws); got != store.PhaseIdle {
		t.Errorf("phase after cycles = %q, want idle", got)
	}
}

func TestClearChatKeepsRecordAndSession(t *testing.T) {
	aw := &stubAssistant{response: &assistant.ExchangeResponse{
		AiResponse:      "Noted.",
		SessionId:       "srv-1",
		FinalActionType: "GENERAL_QUERY",
	}}
	pw := &stubPersistence{}
	svc, workspaces := newTestService(aw, pw)
	ctx := context.Background()

	if _, err := svc.SetField(ctx, &dto.SetFieldRequest{ClientId: "c1", Field: store.FieldHcpName, Value: "Dr. Smith"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendCycle(ctx, &dto.SendCycleRequest{ClientId: "c1", Message: "hello"}); err != nil {
		t.Fatal(err)
	}

	res, err := svc.ClearChat(ctx, &dto.ClientRequest{ClientId: "c1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Conversation.Messages) != 1 {
		t.Errorf("messages after clear = %d", len(res.Conversation.Messages))
	}
	if res.Record.HcpName != "Dr. Smith" {
		t.Error("clearing the chat must not touch the record")
	}

	ws, _ := workspaces.Get("c1")
	if ws.Conversation.ChatSessionId != "srv-1" {
		t.Error("clearing the chat must keep the session id")
	}
}
