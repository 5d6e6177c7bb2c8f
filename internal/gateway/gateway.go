package gateway

import (
	"adventcal/internal/model"
	"context"
	"fmt"
)

// Gateway is the remote gamification service as seen by the client core.
// Implementations return *StatusError for transport-level failures.
type Gateway interface {
	GetClientConfig(ctx context.Context) (*model.ClientConfig, error)
	GetCalendar(ctx context.Context) ([]model.CalendarDay, error)
	GetLeaderboard(ctx context.Context, limit, offset int) (*model.LeaderboardPage, error)
	GetRewards(ctx context.Context) ([]model.Reward, error)
	GetTaskForDay(ctx context.Context, day int) (*model.TaskRecord, error)
	SubmitTask(ctx context.Context, taskID string, submission model.Submission) (*model.TaskResult, error)
	GetPlayer(ctx context.Context, playerID string) (*model.PlayerRecord, error)
	CreateOrUpdatePlayer(ctx context.Context, payload model.PlayerPayload) (*model.PlayerRecord, error)
	PurchaseReward(ctx context.Context, playerID, rewardID string) (*model.PurchaseResult, error)
	TrackEvent(ctx context.Context, name string, data map[string]interface{}) error
}

// StatusError is a failed call with the HTTP status the service answered
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gamelayer: status %d", e.StatusCode)
	}
	return fmt.Sprintf("gamelayer: status %d: %s", e.StatusCode, e.Message)
}
