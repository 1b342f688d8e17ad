package dto

import (
	"hcp-interaction-be/internal/mapper"
	"hcp-interaction-be/pkg/store"
)

type SendCycleRequest struct {
	ClientId string `json:"client_id" validate:"required"`
	Message  string `json:"message"`
}

// SendCycleResponse reports the outcome of one full send cycle: the
// assistant reply (if any), the classification, and whether a submission
// was persisted.
type SendCycleResponse struct {
	Outcome       string             `json:"outcome"`
	Reply         string             `json:"reply,omitempty"`
	ChatSessionId string             `json:"chat_session_id"`
	Submitted     bool               `json:"submitted"`
	LogId         *string            `json:"log_id,omitempty"`
	Message       string             `json:"message,omitempty"`
	Rejected      []mapper.Rejection `json:"rejected_fields,omitempty"`
	Record        *store.Record      `json:"record"`
}

type WorkspaceResponse struct {
	ClientId     string              `json:"client_id"`
	Phase        string              `json:"phase"`
	Record       *store.Record       `json:"record"`
	Conversation *store.Conversation `json:"conversation"`
}

type SetFieldRequest struct {
	ClientId string `json:"client_id" validate:"required"`
	Field    string `json:"field" validate:"required"`
	Value    string `json:"value"`
}

type AddItemRequest struct {
	ClientId string `json:"client_id" validate:"required"`
	Name     string `json:"name"`
}

type ClientRequest struct {
	ClientId string `json:"client_id" validate:"required"`
}

// EmptySubmitError blocks a send cycle locally when there is neither a
// typed message nor any form data. No network call is made.
type EmptySubmitError struct{}

func (e *EmptySubmitError) Error() string {
	return "please enter a chat message or form details to log"
}

// CycleBusyError is the observable outcome of triggering a send while a
// cycle is already in flight. The trigger is refused, never queued.
type CycleBusyError struct {
	Phase string
}

func (e *CycleBusyError) Error() string {
	return "a send cycle is already in progress"
}
