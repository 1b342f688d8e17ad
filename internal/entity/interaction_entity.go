package entity

import (
	"time"

	"github.com/google/uuid"
)

// ListItem is a named element of a shared-material or distributed-sample list.
type ListItem struct {
	Id   uuid.UUID
	Name string
}

// InteractionLog is the canonical record of one rep/HCP interaction.
// Scalar fields are nil when the submitter left them blank.
type InteractionLog struct {
	Id                 uuid.UUID
	HcpName            *string
	InteractionType    *string
	InteractionDate    *string
	InteractionTime    *string
	Attendees          *string
	TopicsDiscussed    *string
	Sentiment          *string
	Outcomes           *string
	FollowUpActions    *string
	MaterialsShared    []ListItem
	SamplesDistributed []ListItem
	ProductsDiscussed  []string
	ChatSessionId      *string
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}
