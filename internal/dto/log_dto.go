package dto

import (
	"fmt"
	"strings"

	"hcp-interaction-be/pkg/store"
)

// LogStructuredRequest is the final normalized payload submitted to the
// structured-log endpoint, one per logical "send". Scalar fields that held
// no data are explicit nulls, never omitted; collections are always arrays.
type LogStructuredRequest struct {
	// Id identifies an existing log for update; null on first submission.
	Id                 *string            `json:"id"`
	HcpName            *string            `json:"hcpName"`
	InteractionType    *string            `json:"interactionType"`
	Date               *string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time               *string            `json:"time"`
	Attendees          *string            `json:"attendees"`
	TopicsDiscussed    *string            `json:"topicsDiscussed"`
	MaterialsShared    []store.RecordItem `json:"materialsShared"`
	SamplesDistributed []store.RecordItem `json:"samplesDistributed"`
	Sentiment          *string            `json:"sentiment" validate:"omitempty,oneof=Positive Neutral Negative"`
	Outcomes           *string            `json:"outcomes"`
	FollowUpActions    *string            `json:"followUpActions"`
	ChatSessionId      string             `json:"chatSessionId"`
	ProductsDiscussed  []string           `json:"productsDiscussed"`
}

// LogStructuredResponse mirrors the persistence collaborator's success
// contract.
type LogStructuredResponse struct {
	Id      string `json:"id"`
	Message string `json:"message,omitempty"`
}

// FieldDetail is one entry of a structured validation failure, rendered to
// users as "<loc joined by ' -> '>: <msg>".
type FieldDetail struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func (d FieldDetail) String() string {
	return strings.Join(d.Loc, " -> ") + ": " + d.Msg
}

// DetailError carries the collaborator-style {"detail": ...} error body.
// Detail is either a plain string or a []FieldDetail.
type DetailError struct {
	Status int
	Detail any
}

func (e *DetailError) Error() string {
	switch d := e.Detail.(type) {
	case string:
		return d
	case []FieldDetail:
		parts := make([]string, 0, len(d))
		for _, fd := range d {
			parts = append(parts, fd.String())
		}
		return strings.Join(parts, "; ")
	}
	return fmt.Sprint(e.Detail)
}
