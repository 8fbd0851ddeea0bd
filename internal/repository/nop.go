package repository

import (
	"context"

	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

type nopEvent struct{}

// NewNopEventRepository drops events and reports an empty tally. It is used when Redis is disabled.
func NewNopEventRepository() EventRepository {
	return nopEvent{}
}

func (nopEvent) Publish(context.Context, *entity.Event) error {
	return nil
}

func (nopEvent) RecordOutcome(context.Context, entity.Outcome) error {
	return nil
}

func (nopEvent) Stats(context.Context) (map[string]int64, error) {
	return map[string]int64{
		string(entity.OutcomeWin):  0,
		string(entity.OutcomeLose): 0,
		string(entity.OutcomeDraw): 0,
	}, nil
}
