package main

import (
	"context"
	"encoding/json"
	"fmt"

	"hcp-interaction-be/internal/dto"
	"hcp-interaction-be/internal/mapper"
	"hcp-interaction-be/internal/pkg/logger"
	"hcp-interaction-be/internal/repository/memory"
	"hcp-interaction-be/internal/service"
	"hcp-interaction-be/pkg/assistant"
	"hcp-interaction-be/pkg/persistence"
	"hcp-interaction-be/pkg/sessionkv"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// scriptedAssistant replays canned assistant turns so the full cycle can
// be demonstrated without a live assistant.
type scriptedAssistant struct {
	turns []assistant.ExchangeResponse
	next  int
}

func (s *scriptedAssistant) Exchange(_ context.Context, req *assistant.ExchangeRequest) (*assistant.ExchangeResponse, error) {
	if s.next >= len(s.turns) {
		return &assistant.ExchangeResponse{
			AiResponse:      "Understood.",
			FinalActionType: "GENERAL_QUERY",
		}, nil
	}
	turn := s.turns[s.next]
	s.next++
	if turn.SessionId == "" && req.SessionId != nil {
		turn.SessionId = *req.SessionId
	}
	return &turn, nil
}

// fakePersistence accepts every submission and hands back an id, standing
// in for the structured-log endpoint.
type fakePersistence struct {
	submissions []*dto.LogStructuredRequest
}

func (f *fakePersistence) Submit(_ context.Context, payload *dto.LogStructuredRequest) (*persistence.Result, error) {
	f.submissions = append(f.submissions, payload)
	id := payload.Id
	if id == nil {
		fresh := uuid.NewString()
		id = &fresh
	}
	verb := "saved"
	if payload.Id != nil {
		verb = "updated"
	}
	return &persistence.Result{
		Id:      *id,
		Message: fmt.Sprintf("Interaction log (ID: %s) %s successfully.", *id, verb),
	}, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, []byte) error { return nil }

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func main() {
	color.Cyan("🚀 Interaction Logging Simulation\n")

	ctx := context.Background()
	clientId := "sim-client"

	assistantStub := &scriptedAssistant{
		turns: []assistant.ExchangeResponse{
			{
				AiResponse:      "I found Dr. Smith's profile: cardiologist at City Hospital.",
				FinalActionType: "RETRIEVE_HCP_PROFILE_EXECUTED",
			},
			{
				AiResponse:      "Got it. I've noted a positive meeting with Dr. Smith about CardioPlus.",
				FinalActionType: "EXTRACT_INFO",
				ExtractedData: map[string]any{
					"hcp_name":           "Dr. Smith",
					"interaction_type":   "Meeting",
					"interaction_date":   "2026-08-28",
					"discussed_products": []any{"CardioPlus"},
					"materials_shared":   []any{"Efficacy brochure"},
					"sentiment":          "Positive",
				},
			},
		},
	}
	persistStub := &fakePersistence{}

	svc := service.NewInteractionService(
		memory.NewWorkspaceRepository(),
		sessionkv.NewMemoryStore(),
		assistantStub,
		persistStub,
		mapper.NewFieldMapper(),
		noopPublisher{},
		logger.NewZapLogger("simulate.log", false),
	)

	// 1. Informational turn: merges nothing, persists nothing
	color.Yellow("\n[1] Ask for the HCP profile (no submission expected)")
	res, err := svc.SendCycle(ctx, &dto.SendCycleRequest{
		ClientId: clientId,
		Message:  "Pull up Dr. Smith's profile",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		return
	}
	color.Green("Outcome: %s, submitted: %v", res.Outcome, res.Submitted)
	prettyPrint(res)

	// 2. Logging turn: extraction merges and the cycle submits
	color.Yellow("\n[2] Log the interaction (submission expected)")
	res, err = svc.SendCycle(ctx, &dto.SendCycleRequest{
		ClientId: clientId,
		Message:  "Met Dr. Smith today, discussed CardioPlus efficacy, shared the brochure, went well",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		return
	}
	color.Green("Outcome: %s, submitted: %v, log id: %v", res.Outcome, res.Submitted, *res.LogId)
	prettyPrint(res.Record)

	// 3. Manual form tweak then resubmit: same log id, updated in place
	color.Yellow("\n[3] Add a sample manually and resubmit (update expected)")
	if _, err := svc.AddSample(ctx, &dto.AddItemRequest{ClientId: clientId, Name: "CardioPlus starter pack"}); err != nil {
		color.Red("Failed: %v", err)
		return
	}
	res, err = svc.SendCycle(ctx, &dto.SendCycleRequest{ClientId: clientId})
	if err != nil {
		color.Red("Failed: %v", err)
		return
	}
	color.Green("Outcome: %s, message: %s", res.Outcome, res.Message)

	color.Cyan("\n✅ Simulation complete: %d submissions", len(persistStub.submissions))
}
