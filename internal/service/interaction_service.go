package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"hcp-interaction-be/internal/constant"
	"hcp-interaction-be/internal/dto"
	"hcp-interaction-be/internal/mapper"
	"hcp-interaction-be/internal/pkg/logger"
	"hcp-interaction-be/internal/repository/memory"
	"hcp-interaction-be/pkg/assistant"
	"hcp-interaction-be/pkg/persistence"
	"hcp-interaction-be/pkg/reconcile"
	"hcp-interaction-be/pkg/sessionkv"
	"hcp-interaction-be/pkg/store"

	"github.com/google/uuid"
)

// AssistantGateway is the outbound contract to the conversational
// assistant. Its extraction model stays a black box.
type AssistantGateway interface {
	Exchange(ctx context.Context, req *assistant.ExchangeRequest) (*assistant.ExchangeResponse, error)
}

// PersistenceGateway is the outbound contract to the structured-log
// endpoint.
type PersistenceGateway interface {
	Submit(ctx context.Context, payload *dto.LogStructuredRequest) (*persistence.Result, error)
}

type IInteractionService interface {
	SendCycle(ctx context.Context, req *dto.SendCycleRequest) (*dto.SendCycleResponse, error)
	Workspace(ctx context.Context, clientId string) (*dto.WorkspaceResponse, error)
	SetField(ctx context.Context, req *dto.SetFieldRequest) (*dto.WorkspaceResponse, error)
	AddMaterial(ctx context.Context, req *dto.AddItemRequest) (*dto.WorkspaceResponse, error)
	AddSample(ctx context.Context, req *dto.AddItemRequest) (*dto.WorkspaceResponse, error)
	ResetForm(ctx context.Context, req *dto.ClientRequest) (*dto.WorkspaceResponse, error)
	ClearChat(ctx context.Context, req *dto.ClientRequest) (*dto.WorkspaceResponse, error)
}

type interactionService struct {
	workspaces  *memory.WorkspaceRepository
	sessions    sessionkv.Store
	assistantGw AssistantGateway
	persistGw   PersistenceGateway
	fieldMapper *mapper.FieldMapper
	publisher   IPublisherService
	log         logger.ILogger
}

func NewInteractionService(
	workspaces *memory.WorkspaceRepository,
	sessions sessionkv.Store,
	assistantGw AssistantGateway,
	persistGw PersistenceGateway,
	fieldMapper *mapper.FieldMapper,
	publisher IPublisherService,
	log logger.ILogger,
) IInteractionService {
	return &interactionService{
		workspaces:  workspaces,
		sessions:    sessions,
		assistantGw: assistantGw,
		persistGw:   persistGw,
		fieldMapper: fieldMapper,
		publisher:   publisher,
		log:         log,
	}
}

// SendCycle runs one full reconciliation cycle for a client: optional
// assistant exchange, merge of the turn's extraction into the record,
// classification, and (for submit-eligible turns) assembly plus
// submission. Overlapping triggers are refused while a cycle is in
// flight. Merged data is never rolled back, whatever happens downstream.
func (s *interactionService) SendCycle(ctx context.Context, req *dto.SendCycleRequest) (*dto.SendCycleResponse, error) {
	ws, _ := s.workspaces.GetOrCreate(req.ClientId, constant.ChatGreeting)

	userMessage := strings.TrimSpace(req.Message)
	typed := userMessage != ""

	ws.Lock()

	// The busy guard comes before any validation: a trigger arriving while
	// a cycle is in flight is refused as busy, whatever its content.
	if !s.workspaces.Transition(ws, store.PhaseIdle, store.PhaseSending) {
		phase := s.workspaces.Phase(ws)
		ws.Unlock()
		return nil, &dto.CycleBusyError{Phase: phase}
	}
	defer s.workspaces.SetPhase(ws, store.PhaseIdle)

	recordEmpty := ws.Record.IsEmpty()
	if !typed && recordEmpty {
		ws.Unlock()
		return nil, &dto.EmptySubmitError{}
	}

	sessionId := s.resolveSession(ctx, ws)

	resp := &dto.SendCycleResponse{
		ChatSessionId: sessionId,
	}

	actionType := reconcile.ActionManualFormSubmit
	var extraction map[string]any

	if typed {
		ws.Conversation.AppendMessage(store.SenderUser, userMessage)
		ws.Conversation.SetInput("")
		ws.Conversation.BeginSend()
		ws.Unlock()

		exchange, err := s.assistantGw.Exchange(ctx, &assistant.ExchangeRequest{
			UserMessage: userMessage,
			SessionId:   &sessionId,
		})

		ws.Lock()
		if err != nil {
			ws.Conversation.FailSend(err.Error())
			ws.Unlock()
			s.log.Error("interaction", "assistant exchange failed", map[string]interface{}{
				"client_id": req.ClientId,
				"error":     err.Error(),
			})
			return nil, err
		}

		if ws.Conversation.CompleteSend(exchange.AiResponse, exchange.SessionId) {
			sessionId = exchange.SessionId
			s.storeSession(ctx, req.ClientId, sessionId)
		}
		resp.Reply = exchange.AiResponse
		resp.ChatSessionId = sessionId

		s.workspaces.SetPhase(ws, store.PhaseMerging)

		if exchange.ExtractedData != nil {
			extraction = exchange.ExtractedData
			validated, rejected := s.fieldMapper.Map(extraction, ws.Record)
			ws.Record.MergeFields(validated)
			resp.Rejected = rejected
		}
		if exchange.FinalActionType != "" {
			actionType = exchange.FinalActionType
		}
	}

	outcome := reconcile.Classify(actionType, typed, recordEmpty)
	resp.Outcome = string(outcome)

	if outcome != reconcile.OutcomeSubmit {
		resp.Record = ws.Record.Clone()
		ws.Unlock()
		s.workspaces.Touch(ws)
		return resp, nil
	}

	s.workspaces.SetPhase(ws, store.PhaseSubmitting)
	// Extraction was already merged above; assemble from the record alone
	// so manually added items survive.
	payload := reconcile.Assemble(ws.Record, sessionId, nil, s.fieldMapper)
	ws.Unlock()

	result, err := s.persistGw.Submit(ctx, payload)

	ws.Lock()
	if err != nil {
		// The merged record stays as-is; only the submission failed.
		ws.Conversation.Error = err.Error()
		ws.Conversation.AppendMessage(store.SenderSystem, "Error: "+err.Error())
		ws.Unlock()
		s.log.Error("interaction", "submission failed", map[string]interface{}{
			"client_id": req.ClientId,
			"error":     err.Error(),
		})
		return nil, err
	}

	logId := result.Id
	ws.Record.CurrentLogId = &logId
	if result.Message != "" {
		ws.Conversation.AppendMessage(store.SenderSystem, result.Message)
	}
	resp.Submitted = true
	resp.LogId = &logId
	resp.Message = result.Message
	resp.Record = ws.Record.Clone()
	ws.Unlock()
	s.workspaces.Touch(ws)

	s.publishLogged(ctx, logId, sessionId, payload.Id != nil)

	s.log.Info("interaction", "send cycle submitted", map[string]interface{}{
		"client_id": req.ClientId,
		"log_id":    logId,
		"updated":   payload.Id != nil,
	})
	return resp, nil
}

func (s *interactionService) Workspace(ctx context.Context, clientId string) (*dto.WorkspaceResponse, error) {
	ws, _ := s.workspaces.GetOrCreate(clientId, constant.ChatGreeting)
	ws.Lock()
	defer ws.Unlock()
	return s.snapshot(ws), nil
}

func (s *interactionService) SetField(ctx context.Context, req *dto.SetFieldRequest) (*dto.WorkspaceResponse, error) {
	ws, _ := s.workspaces.GetOrCreate(req.ClientId, constant.ChatGreeting)
	ws.Lock()
	defer ws.Unlock()
	ws.Record.SetField(req.Field, req.Value)
	return s.snapshot(ws), nil
}

func (s *interactionService) AddMaterial(ctx context.Context, req *dto.AddItemRequest) (*dto.WorkspaceResponse, error) {
	ws, _ := s.workspaces.GetOrCreate(req.ClientId, constant.ChatGreeting)
	ws.Lock()
	defer ws.Unlock()
	name := req.Name
	if name == "" {
		name = ws.Record.MaterialsSharedSearch
	}
	ws.Record.AddMaterial(name)
	return s.snapshot(ws), nil
}

func (s *interactionService) AddSample(ctx context.Context, req *dto.AddItemRequest) (*dto.WorkspaceResponse, error) {
	ws, _ := s.workspaces.GetOrCreate(req.ClientId, constant.ChatGreeting)
	ws.Lock()
	defer ws.Unlock()
	ws.Record.AddSample(req.Name)
	return s.snapshot(ws), nil
}

func (s *interactionService) ResetForm(ctx context.Context, req *dto.ClientRequest) (*dto.WorkspaceResponse, error) {
	ws, _ := s.workspaces.GetOrCreate(req.ClientId, constant.ChatGreeting)
	ws.Lock()
	defer ws.Unlock()
	ws.Record.Reset()
	return s.snapshot(ws), nil
}

func (s *interactionService) ClearChat(ctx context.Context, req *dto.ClientRequest) (*dto.WorkspaceResponse, error) {
	ws, _ := s.workspaces.GetOrCreate(req.ClientId, constant.ChatGreeting)
	ws.Lock()
	defer ws.Unlock()
	ws.Conversation.Clear(constant.ChatGreeting)
	return s.snapshot(ws), nil
}

func (s *interactionService) snapshot(ws *store.Workspace) *dto.WorkspaceResponse {
	conv := *ws.Conversation
	conv.Messages = append([]store.Message{}, ws.Conversation.Messages...)
	return &dto.WorkspaceResponse{
		ClientId:     ws.ClientId,
		Phase:        s.workspaces.Phase(ws),
		Record:       ws.Record.Clone(),
		Conversation: &conv,
	}
}

// resolveSession returns the session id for the current cycle, minting a
// local one when neither the conversation nor the session store has one.
// Session storage failures only cost continuity, so they are logged and
// swallowed.
func (s *interactionService) resolveSession(ctx context.Context, ws *store.Workspace) string {
	if ws.Conversation.ChatSessionId != "" {
		return ws.Conversation.ChatSessionId
	}

	stored, err := s.sessions.Get(ctx, ws.ClientId)
	if err != nil {
		s.log.Warn("interaction", "session lookup failed", map[string]interface{}{
			"client_id": ws.ClientId,
			"error":     err.Error(),
		})
	}
	if stored != "" {
		ws.Conversation.SetSession(stored)
		return stored
	}

	local := constant.LocalSessionPrefix + uuid.NewString()
	ws.Conversation.SetSession(local)
	s.storeSession(ctx, ws.ClientId, local)
	return local
}

func (s *interactionService) storeSession(ctx context.Context, clientId, sessionId string) {
	if err := s.sessions.Set(ctx, clientId, sessionId); err != nil {
		s.log.Warn("interaction", "session store failed", map[string]interface{}{
			"client_id": clientId,
			"error":     err.Error(),
		})
	}
}

func (s *interactionService) publishLogged(ctx context.Context, logId, sessionId string, updated bool) {
	msg := dto.InteractionLoggedMessage{
		LogId:         logId,
		ChatSessionId: sessionId,
		Updated:       updated,
		OccurredAt:    time.Now(),
	}
	payload, _ := json.Marshal(msg)
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Warn("interaction", "audit publish failed", map[string]interface{}{
			"log_id": logId,
			"error":  err.Error(),
		})
	}
}
