package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"crewlink-service/internal/domain/entity"
)

const (
	assistantScheduleLimit = 3
	assistantExpenseLimit  = 5
)

// AssistantContext is the read-only snapshot handed to the external assistant
type AssistantContext struct {
	UserName    string                  `json:"userName"`
	Role        entity.Role             `json:"role"`
	FatigueRisk bool                    `json:"fatigueRisk"`
	Smartwatch  *entity.SmartwatchData  `json:"smartwatch,omitempty"`
	Schedule    []*entity.ScheduleEvent `json:"schedule"`
	Expenses    []*entity.Expense       `json:"expenses"`
}

// JSON encodes the snapshot
func (c *AssistantContext) JSON() ([]byte, error) {
	return json.Marshal(c)
}

// AssistantContextBuilder assembles AssistantContext from the store and wellness data
type AssistantContextBuilder struct {
	store    *SessionStore
	wellness *WellnessService
}

// NewAssistantContextBuilder creates a new assistant context builder
func NewAssistantContextBuilder(store *SessionStore, wellness *WellnessService) *AssistantContextBuilder {
	return &AssistantContextBuilder{store: store, wellness: wellness}
}

// Build snapshots the active user's data. Returns false when logged out.
func (b *AssistantContextBuilder) Build(ctx context.Context) (*AssistantContext, bool, error) {
	user, ok, err := b.store.CurrentUser(ctx)
	if err != nil || !ok {
		return nil, false, err
	}

	schedule, err := b.store.Schedule(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load schedule: %w", err)
	}
	expenses, err := b.store.Expenses(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load expenses: %w", err)
	}
	watch, err := b.wellness.Current(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load smartwatch data: %w", err)
	}

	return &AssistantContext{
		UserName:    user.Name,
		Role:        user.Role,
		FatigueRisk: watch.IndicatesFatigue(),
		Smartwatch:  watch,
		Schedule:    schedule[:min(len(schedule), assistantScheduleLimit)],
		Expenses:    expenses[:min(len(expenses), assistantExpenseLimit)],
	}, true, nil
}
