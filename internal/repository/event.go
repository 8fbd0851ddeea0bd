package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

const outcomesKey = "fourinarow:outcomes"

type EventRepository interface {
	Publish(ctx context.Context, event *entity.Event) error
	RecordOutcome(ctx context.Context, outcome entity.Outcome) error
	Stats(ctx context.Context) (map[string]int64, error)
}

type dbEvent struct {
	client  *redis.Client
	channel string
}

func NewEventRepository(client *redis.Client, channel string) EventRepository {
	return &dbEvent{
		client:  client,
		channel: channel,
	}
}

// Publish sends the event as JSON to the configured channel.
func (that *dbEvent) Publish(ctx context.Context, event *entity.Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// RecordOutcome counts one finished game.
func (that *dbEvent) RecordOutcome(ctx context.Context, outcome entity.Outcome) error {
	if !outcome.IsTerminal() {
		return nil
	}

	if err := that.client.HIncrBy(ctx, outcomesKey, string(outcome), 1).Err(); err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}

	return nil
}

// Stats returns the number of finished games per outcome.
func (that *dbEvent) Stats(ctx context.Context) (map[string]int64, error) {
	response, err := that.client.HGetAll(ctx, outcomesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get outcomes: %w", err)
	}

	stats := map[string]int64{
		string(entity.OutcomeWin):  0,
		string(entity.OutcomeLose): 0,
		string(entity.OutcomeDraw): 0,
	}
	for outcome, value := range response {
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid count for %s: %w", outcome, err)
		}
		stats[outcome] = count
	}

	return stats, nil
}
