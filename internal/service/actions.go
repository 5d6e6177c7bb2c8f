package service

import (
	"adventcal/internal/analytics"
	"adventcal/internal/failure"
	"adventcal/internal/gateway"
	"adventcal/internal/metrics"
	"adventcal/internal/model"
	"adventcal/internal/session"
	"adventcal/internal/store"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoMatch means the state no longer holds what a result was meant for
	ErrNoMatch = errors.New("no matching entry")
	// ErrCapacityReached means the full leaderboard already holds the maximum
	ErrCapacityReached = errors.New("leaderboard capacity reached")
	ErrNoSession       = errors.New("no active session")
	ErrTaskRejected    = errors.New("task submission rejected")
	ErrPurchaseFailed  = errors.New("reward purchase failed")
	// ErrInvalidSubmission means the answer is incomplete for the task's type
	ErrInvalidSubmission = errors.New("submission is incomplete for this task")
)

const (
	MsgTaskRejected     = "Your answer could not be accepted. Please try again."
	MsgIncompleteAnswer = "Please complete your answer before submitting."
	MsgSignInFirst      = "Please sign in to purchase rewards."
)

// Options tunes the leaderboard views
type Options struct {
	TopSize  int
	PageSize int
	Cap      int
	// BaseConfig is merged with the service's client config
	BaseConfig model.ClientConfig
}

func (o Options) withDefaults() Options {
	if o.TopSize <= 0 {
		o.TopSize = 5
	}
	if o.PageSize <= 0 {
		o.PageSize = 10
	}
	if o.Cap <= 0 {
		o.Cap = 25
	}
	if o.BaseConfig.ID == "" {
		o.BaseConfig = model.DefaultClientConfig()
	}
	return o
}

// Actions runs the user-facing workflows against the gateway and the store
type Actions struct {
	store    *store.Store
	gw       gateway.Gateway
	sessions *session.Store
	tracker  *analytics.Tracker
	opts     Options
}

// NewActions creates the workflow orchestrator
func NewActions(st *store.Store, gw gateway.Gateway, sessions *session.Store, tracker *analytics.Tracker, opts Options) *Actions {
	return &Actions{
		store:    st,
		gw:       gw,
		sessions: sessions,
		tracker:  tracker,
		opts:     opts.withDefaults(),
	}
}

// Options returns the effective options
func (a *Actions) Options() Options {
	return a.opts
}

func (a *Actions) fail(err error) {
	msg := failure.MsgUnexpected
	var f *failure.Error
	if errors.As(err, &f) {
		msg = f.Message
	}
	a.store.Dispatch(store.SetError{Message: msg})
}

func (a *Actions) playerData(data map[string]interface{}) map[string]interface{} {
	if p := a.store.Snapshot().SessionPlayer; p != nil {
		data["playerId"] = p.ID
	}
	return data
}

// RestoreSession loads the persisted session player into the state
func (a *Actions) RestoreSession(ctx context.Context) *model.PlayerRecord {
	player := a.sessions.LoadSync(ctx)
	if player != nil {
		a.store.Dispatch(store.SetSessionPlayer{Player: player})
		log.Printf("[actions] restored session for %s", player.ID)
	}
	return player
}

// Init restores the session, then loads the initial data while the
// restored player is refreshed in the background
func (a *Actions) Init(ctx context.Context) error {
	return a.LoadAndRefresh(ctx, a.RestoreSession(ctx))
}

// LoadAndRefresh runs the remote part of Init: the initial data load and,
// when player is set, a concurrent refresh of that player. Refresh failures
// are only logged.
func (a *Actions) LoadAndRefresh(ctx context.Context, player *model.PlayerRecord) error {
	var g errgroup.Group
	g.Go(func() error {
		return a.LoadInitialData(ctx)
	})
	if player != nil {
		g.Go(func() error {
			if err := a.RefreshPlayer(ctx, player.ID); err != nil {
				log.Printf("[actions] background player refresh failed: %v", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// LoadInitialData fetches config, calendar, top leaderboard and rewards.
// The first failure stops the sequence and keeps what was already loaded.
func (a *Actions) LoadInitialData(ctx context.Context) (err error) {
	defer metrics.ObserveWorkflow("load_initial_data", time.Now(), &err)
	a.store.Dispatch(store.SetError{}, store.SetLoading{Loading: true})

	cfg, err := failure.Call(ctx, a.gw.GetClientConfig)
	if err != nil {
		a.fail(err)
		return fmt.Errorf("failed to load client config: %w", err)
	}
	a.store.Dispatch(store.SetConfig{Config: model.MergeClientConfig(a.opts.BaseConfig, *cfg)})

	days, err := failure.Call(ctx, a.gw.GetCalendar)
	if err != nil {
		a.fail(err)
		return fmt.Errorf("failed to load calendar: %w", err)
	}
	a.store.Dispatch(store.SetCalendar{Days: days})

	top, err := a.fetchTop(ctx)
	if err != nil {
		a.fail(err)
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}
	a.store.Dispatch(store.SetLeaderboardTop{Entries: top})

	rewards, err := failure.Call(ctx, a.gw.GetRewards)
	if err != nil {
		a.fail(err)
		return fmt.Errorf("failed to load rewards: %w", err)
	}
	a.store.Dispatch(store.SetRewards{Rewards: rewards}, store.SetLoading{Loading: false})
	return nil
}

// OpenDay fetches the task of a day and presents it. Locked or completed
// days are not rejected here.
func (a *Actions) OpenDay(ctx context.Context, day int) (*model.TaskRecord, error) {
	task, err := failure.Call(ctx, func(ctx context.Context) (*model.TaskRecord, error) {
		return a.gw.GetTaskForDay(ctx, day)
	})
	if err != nil {
		a.fail(err)
		return nil, fmt.Errorf("failed to open day %d: %w", day, err)
	}

	a.store.Dispatch(store.SetActiveTask{Task: task}, store.Unlock(day, task))
	a.tracker.Track(ctx, analytics.EventCalendarDayOpened, a.playerData(map[string]interface{}{
		"day":    day,
		"taskId": task.ID,
	}))
	return task, nil
}

// CloseTask dismisses the active task
func (a *Actions) CloseTask() {
	a.store.Dispatch(store.SetActiveTask{})
}

// CompleteTask submits an answer and applies the awarded progress
func (a *Actions) CompleteTask(ctx context.Context, taskID string, submission model.Submission) (_ *model.TaskResult, err error) {
	defer metrics.ObserveWorkflow("complete_task", time.Now(), &err)
	if task := a.knownTask(taskID); task != nil && !task.CanSubmit(submission) {
		return nil, fmt.Errorf("%w: task %s", ErrInvalidSubmission, taskID)
	}
	a.store.Dispatch(store.SetLoading{Loading: true})
	defer a.store.Dispatch(store.SetLoading{Loading: false})

	if p := a.store.Snapshot().SessionPlayer; p != nil && submission.PlayerID == "" {
		submission.PlayerID = p.ID
	}

	result, err := failure.Call(ctx, func(ctx context.Context) (*model.TaskResult, error) {
		return a.gw.SubmitTask(ctx, taskID, submission)
	})
	if err != nil {
		a.fail(err)
		return nil, fmt.Errorf("failed to submit task %s: %w", taskID, err)
	}
	if !result.Success {
		a.store.Dispatch(store.SetError{Message: MsgTaskRejected})
		return result, ErrTaskRejected
	}

	a.store.DispatchFunc(func(s store.AppState) []store.Event {
		events := []store.Event{store.ApplyProgressDelta{
			Points: result.Points,
			Gems:   result.Gems,
			Badge:  result.Badge,
		}}
		if d, ok := s.DayForTask(taskID); ok {
			events = append(events, store.Complete(d.Day))
		}
		return append(events, store.SetActiveTask{})
	})

	if err := a.RefreshLeaderboard(ctx); err != nil {
		log.Printf("[actions] leaderboard refresh after completion failed: %v", err)
	}
	a.tracker.Track(ctx, analytics.EventTaskCompleted, a.playerData(map[string]interface{}{
		"taskId": taskID,
		"points": result.Points,
		"gems":   result.Gems,
	}))
	return result, nil
}

// knownTask finds taskID in the active task or the calendar. Tasks the
// client has never seen are left to the service to validate.
func (a *Actions) knownTask(taskID string) *model.TaskRecord {
	s := a.store.Snapshot()
	if s.ActiveTask != nil && s.ActiveTask.ID == taskID {
		return s.ActiveTask
	}
	if d, ok := s.DayForTask(taskID); ok {
		return d.Task
	}
	return nil
}

func (a *Actions) fetchTop(ctx context.Context) ([]model.LeaderboardEntry, error) {
	page, err := failure.Call(ctx, func(ctx context.Context) (*model.LeaderboardPage, error) {
		return a.gw.GetLeaderboard(ctx, a.opts.TopSize, 0)
	})
	if err != nil {
		return nil, err
	}
	return truncate(page.Entries, a.opts.TopSize), nil
}

// RefreshLeaderboard re-fetches the top leaderboard preview
func (a *Actions) RefreshLeaderboard(ctx context.Context) error {
	top, err := a.fetchTop(ctx)
	if err != nil {
		return err
	}
	a.store.Dispatch(store.SetLeaderboardTop{Entries: top})
	return nil
}

// OpenLeaderboardModal resets the full leaderboard and loads its first page
func (a *Actions) OpenLeaderboardModal(ctx context.Context) error {
	epoch := a.store.Dispatch(store.ResetModalLeaderboard{Open: true}).ModalPagination.Epoch

	page, err := failure.Call(ctx, func(ctx context.Context) (*model.LeaderboardPage, error) {
		return a.gw.GetLeaderboard(ctx, min(a.opts.PageSize, a.opts.Cap), 0)
	})
	if err != nil {
		log.Printf("[actions] failed to load leaderboard page: %v", err)
		return err
	}

	applied := false
	a.store.DispatchFunc(func(s store.AppState) []store.Event {
		if !s.ModalPagination.IsOpen || s.ModalPagination.Epoch != epoch {
			return nil
		}
		applied = true
		entries := truncate(page.Entries, a.opts.Cap)
		return []store.Event{store.SetModalLeaderboardPage{
			Entries: entries,
			HasMore: page.HasMore && len(entries) < a.opts.Cap,
			Total:   min(page.Total, a.opts.Cap),
		}}
	})
	if !applied {
		return ErrNoMatch
	}
	return nil
}

// LoadMoreLeaderboard appends the next page to the full leaderboard.
// It does nothing while a page is loading or when no more entries fit.
func (a *Actions) LoadMoreLeaderboard(ctx context.Context) error {
	var (
		started bool
		full    bool
		epoch   int
		offset  int
		limit   int
	)
	a.store.DispatchFunc(func(s store.AppState) []store.Event {
		p := s.ModalPagination
		n := len(s.ModalLeaderboard)
		if !p.IsOpen || p.IsLoadingMore {
			return nil
		}
		if n >= a.opts.Cap {
			full = true
			return nil
		}
		if !p.HasMore {
			return nil
		}
		started = true
		epoch, offset, limit = p.Epoch, n, min(a.opts.PageSize, a.opts.Cap-n)
		return []store.Event{store.SetModalLoadingMore{Loading: true}}
	})
	if full {
		return ErrCapacityReached
	}
	if !started {
		return nil
	}

	page, err := failure.Call(ctx, func(ctx context.Context) (*model.LeaderboardPage, error) {
		return a.gw.GetLeaderboard(ctx, limit, offset)
	})
	if err != nil {
		log.Printf("[actions] failed to load more leaderboard entries: %v", err)
		a.store.DispatchFunc(func(s store.AppState) []store.Event {
			if s.ModalPagination.Epoch != epoch {
				return nil
			}
			return []store.Event{store.SetModalLoadingMore{Loading: false}}
		})
		return err
	}

	applied := false
	a.store.DispatchFunc(func(s store.AppState) []store.Event {
		if !s.ModalPagination.IsOpen || s.ModalPagination.Epoch != epoch {
			return nil
		}
		applied = true
		entries := truncate(page.Entries, a.opts.Cap-len(s.ModalLeaderboard))
		n := len(s.ModalLeaderboard) + len(entries)
		return []store.Event{store.AppendModalLeaderboardPage{
			Entries: entries,
			HasMore: page.HasMore && n < a.opts.Cap,
			Total:   min(page.Total, a.opts.Cap),
		}}
	})
	if !applied {
		log.Printf("[actions] dropped leaderboard page for a closed view")
		return ErrNoMatch
	}
	return nil
}

// CloseLeaderboardModal empties the full leaderboard
func (a *Actions) CloseLeaderboardModal() {
	a.store.Dispatch(store.ResetModalLeaderboard{Open: false})
}

func truncate(entries []model.LeaderboardEntry, n int) []model.LeaderboardEntry {
	if n < 0 {
		n = 0
	}
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
