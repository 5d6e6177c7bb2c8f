package gateway

import (
	"adventcal/internal/model"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ranking stores leaderboard scores for the mock gateway.
// Ties keep the order in which players were first recorded.
type Ranking interface {
	Record(ctx context.Context, player model.PlayerRecord, points, completedTasks int) error
	Page(ctx context.Context, limit, offset int) ([]model.LeaderboardEntry, int, error)
}

// ErrUnknownClient is returned when switching to a theme that does not exist
var ErrUnknownClient = errors.New("unknown client configuration")

// MockOptions configures the in-process gateway
type MockOptions struct {
	ClientID    string
	Ranking     Ranking
	EventYear   int
	Competitors int
	Seed        int64
	Now         func() time.Time
}

// ClientSummary names an available mock client theme
type ClientSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type mockPlayer struct {
	record    model.PlayerRecord
	completed map[string]bool
	// baseCompleted counts tasks finished before this process started
	baseCompleted int
}

// MockGateway answers every call from in-memory fixtures
type MockGateway struct {
	mu       sync.Mutex
	clientID string
	year     int
	now      func() time.Time
	ranking  Ranking
	players  map[string]*mockPlayer
	rewards  []model.Reward
}

// NewMockGateway seeds the fixtures and the ranking backend
func NewMockGateway(ctx context.Context, opts MockOptions) (*MockGateway, error) {
	if opts.ClientID == "" {
		opts.ClientID = "christmas-corp"
	}
	if _, ok := mockClientConfigs[opts.ClientID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClient, opts.ClientID)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.EventYear == 0 {
		opts.EventYear = opts.Now().Year()
	}
	if opts.Competitors <= 0 {
		opts.Competitors = 299
	}
	if opts.Ranking == nil {
		return nil, errors.New("mock gateway needs a ranking backend")
	}

	g := &MockGateway{
		clientID: opts.ClientID,
		year:     opts.EventYear,
		now:      opts.Now,
		ranking:  opts.Ranking,
		players:  make(map[string]*mockPlayer),
		rewards:  make([]model.Reward, len(mockRewards)),
	}
	copy(g.rewards, mockRewards)

	user := mockUser(opts.EventYear)
	g.players[user.ID] = &mockPlayer{record: user, completed: map[string]bool{}, baseCompleted: 8}
	if err := g.ranking.Record(ctx, user, user.Points, 8); err != nil {
		return nil, fmt.Errorf("failed to seed ranking: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	for _, c := range generateCompetitors(rng, opts.Competitors) {
		g.players[c.player.ID] = &mockPlayer{record: c.player, completed: map[string]bool{}, baseCompleted: c.completed}
		if err := g.ranking.Record(ctx, c.player, c.player.Points, c.completed); err != nil {
			return nil, fmt.Errorf("failed to seed ranking: %w", err)
		}
	}
	return g, nil
}

// Clients lists the available mock client themes
func (g *MockGateway) Clients() []ClientSummary {
	out := make([]ClientSummary, 0, len(mockClientConfigs))
	for id, cfg := range mockClientConfigs {
		out = append(out, ClientSummary{ID: id, Name: cfg.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetClient switches the theme returned by GetClientConfig
func (g *MockGateway) SetClient(clientID string) error {
	if _, ok := mockClientConfigs[clientID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClient, clientID)
	}
	g.mu.Lock()
	g.clientID = clientID
	g.mu.Unlock()
	return nil
}

func (g *MockGateway) GetClientConfig(ctx context.Context) (*model.ClientConfig, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cfg := mockClientConfigs[g.clientID]
	return &cfg, nil
}

func (g *MockGateway) GetCalendar(ctx context.Context) ([]model.CalendarDay, error) {
	now := g.now()
	unlockedThrough := 8
	if now.Year() == g.year && now.Month() == time.December {
		unlockedThrough = now.Day()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	days := make([]model.CalendarDay, 0, 25)
	for day := 1; day <= 25; day++ {
		task := taskForDay(day)
		unlocked := day <= unlockedThrough
		completed := day <= 3 || g.completedByAnyone(task.ID)
		if completed {
			unlocked = true
		}
		cd := model.CalendarDay{
			Day:         day,
			Date:        time.Date(g.year, time.December, day, 0, 0, 0, 0, time.UTC),
			IsUnlocked:  unlocked,
			IsCompleted: completed,
			Theme:       dayTheme(day, unlocked, completed),
		}
		if unlocked {
			cd.Task = task
		}
		days = append(days, cd)
	}
	return days, nil
}

func (g *MockGateway) completedByAnyone(taskID string) bool {
	for _, p := range g.players {
		if p.completed[taskID] {
			return true
		}
	}
	return false
}

func (g *MockGateway) GetLeaderboard(ctx context.Context, limit, offset int) (*model.LeaderboardPage, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	entries, total, err := g.ranking.Page(ctx, limit, offset)
	if err != nil {
		return nil, &StatusError{StatusCode: http.StatusInternalServerError, Message: err.Error()}
	}
	return &model.LeaderboardPage{
		Entries: entries,
		HasMore: offset+limit < total,
		Total:   total,
	}, nil
}

func (g *MockGateway) GetRewards(ctx context.Context) ([]model.Reward, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]model.Reward, len(g.rewards))
	copy(out, g.rewards)
	return out, nil
}

func (g *MockGateway) GetTaskForDay(ctx context.Context, day int) (*model.TaskRecord, error) {
	if day < 1 || day > 25 {
		return nil, &StatusError{StatusCode: http.StatusNotFound, Message: "no task for that day"}
	}
	return taskForDay(day), nil
}

func (g *MockGateway) SubmitTask(ctx context.Context, taskID string, submission model.Submission) (*model.TaskResult, error) {
	day, err := strconv.Atoi(strings.TrimPrefix(taskID, "task-day-"))
	if err != nil || !strings.HasPrefix(taskID, "task-day-") || day < 1 || day > 25 {
		return nil, &StatusError{StatusCode: http.StatusNotFound, Message: "task not found"}
	}
	task := taskForDay(day)
	if !task.CanSubmit(submission) {
		return &model.TaskResult{Success: false}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	result := &model.TaskResult{Success: true, Points: task.Points, Gems: task.GemReward}
	p, ok := g.players[submission.PlayerID]
	if !ok {
		return result, nil
	}
	if p.completed[taskID] {
		return &model.TaskResult{Success: false}, nil
	}
	p.completed[taskID] = true
	p.record.Points += result.Points
	p.record.Gems += result.Gems
	if !hasBadge(p.record.Badges, mockBadges[0].ID) {
		badge := mockBadges[0]
		at := g.now()
		badge.UnlockedAt = &at
		p.record.Badges = append(p.record.Badges, badge)
		result.Badge = &badge
	}
	if err := g.ranking.Record(ctx, p.record, p.record.Points, p.baseCompleted+len(p.completed)); err != nil {
		log.Printf("[mock] failed to update ranking for %s: %v", p.record.ID, err)
	}
	return result, nil
}

func hasBadge(badges []model.Badge, id string) bool {
	for _, b := range badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (g *MockGateway) GetPlayer(ctx context.Context, playerID string) (*model.PlayerRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.players[playerID]
	if !ok {
		return nil, &StatusError{StatusCode: http.StatusNotFound, Message: "player not found"}
	}
	return p.record.Clone(), nil
}

func (g *MockGateway) CreateOrUpdatePlayer(ctx context.Context, payload model.PlayerPayload) (*model.PlayerRecord, error) {
	if strings.TrimSpace(payload.Name) == "" || !strings.Contains(payload.Email, "@") {
		return nil, &StatusError{StatusCode: http.StatusUnprocessableEntity, Message: "A name and a valid email are required."}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if payload.ID == "" {
		id := "p_" + uuid.New().String()[:8]
		p := &mockPlayer{
			record: model.PlayerRecord{
				ID:      id,
				Name:    payload.Name,
				Email:   payload.Email,
				Avatar:  payload.Avatar,
				Account: payload.Account,
				Badges:  []model.Badge{},
			},
			completed: map[string]bool{},
		}
		g.players[id] = p
		if err := g.ranking.Record(ctx, p.record, 0, 0); err != nil {
			log.Printf("[mock] failed to rank new player %s: %v", id, err)
		}
		return p.record.Clone(), nil
	}

	p, ok := g.players[payload.ID]
	if !ok {
		return nil, &StatusError{StatusCode: http.StatusNotFound, Message: "player not found"}
	}
	p.record.Name = payload.Name
	p.record.Email = payload.Email
	if payload.Avatar != "" {
		p.record.Avatar = payload.Avatar
	}
	if err := g.ranking.Record(ctx, p.record, p.record.Points, p.baseCompleted+len(p.completed)); err != nil {
		log.Printf("[mock] failed to update ranking for %s: %v", p.record.ID, err)
	}
	return p.record.Clone(), nil
}

func (g *MockGateway) PurchaseReward(ctx context.Context, playerID, rewardID string) (*model.PurchaseResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok {
		return nil, &StatusError{StatusCode: http.StatusUnauthorized}
	}
	for i := range g.rewards {
		r := &g.rewards[i]
		if r.ID != rewardID {
			continue
		}
		if !r.IsAvailable || r.Stock <= 0 {
			return &model.PurchaseResult{Success: false, Message: "Reward out of stock"}, nil
		}
		if p.record.Gems < r.GemCost {
			return &model.PurchaseResult{Success: false, Message: "Not enough gems"}, nil
		}
		r.Stock--
		if r.Stock <= 0 {
			r.IsAvailable = false
		}
		p.record.Gems -= r.GemCost
		return &model.PurchaseResult{Success: true, Message: "Reward purchased successfully!"}, nil
	}
	return &model.PurchaseResult{Success: false, Message: "Reward not found"}, nil
}

func (g *MockGateway) TrackEvent(ctx context.Context, name string, data map[string]interface{}) error {
	log.Printf("[mock] event tracked: %s %v", name, data)
	return nil
}
