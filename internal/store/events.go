package store

import "adventcal/internal/model"

// Event is one state transition. The set of events is closed.
type Event interface {
	Name() string
	event()
}

type SetLoading struct{ Loading bool }

// SetError records a user-facing error. It also ends loading.
type SetError struct{ Message string }

// SetSessionPlayer replaces the session player. Nil ends the session.
type SetSessionPlayer struct{ Player *model.PlayerRecord }

type SetCalendar struct{ Days []model.CalendarDay }

type SetLeaderboardTop struct{ Entries []model.LeaderboardEntry }

// SetModalLeaderboardPage replaces the modal view with its first page
type SetModalLeaderboardPage struct {
	Entries []model.LeaderboardEntry
	HasMore bool
	Total   int
}

// AppendModalLeaderboardPage adds the next page to the modal view
type AppendModalLeaderboardPage struct {
	Entries []model.LeaderboardEntry
	HasMore bool
	Total   int
}

// ResetModalLeaderboard empties the modal view and starts a new epoch.
// Open reports whether the view stays open afterwards.
type ResetModalLeaderboard struct{ Open bool }

type SetModalLoadingMore struct{ Loading bool }

type SetRewards struct{ Rewards []model.Reward }

type SetConfig struct{ Config model.ClientConfig }

// SetActiveTask selects the task shown to the player. Nil closes it.
type SetActiveTask struct{ Task *model.TaskRecord }

// DayPatch lists the fields of a calendar day to change. Nil fields are kept.
type DayPatch struct {
	IsUnlocked  *bool
	IsCompleted *bool
	Task        *model.TaskRecord
}

// PatchCalendarDay updates the single day identified by Day
type PatchCalendarDay struct {
	Day   int
	Patch DayPatch
}

// ApplyProgressDelta adjusts the session player's points and gems and
// awards an optional badge
type ApplyProgressDelta struct {
	Points int
	Gems   int
	Badge  *model.Badge
}

func (SetLoading) Name() string                 { return "set_loading" }
func (SetError) Name() string                   { return "set_error" }
func (SetSessionPlayer) Name() string           { return "set_session_player" }
func (SetCalendar) Name() string                { return "set_calendar" }
func (SetLeaderboardTop) Name() string          { return "set_leaderboard_top" }
func (SetModalLeaderboardPage) Name() string    { return "set_modal_leaderboard_page" }
func (AppendModalLeaderboardPage) Name() string { return "append_modal_leaderboard_page" }
func (ResetModalLeaderboard) Name() string      { return "reset_modal_leaderboard" }
func (SetModalLoadingMore) Name() string        { return "set_modal_loading_more" }
func (SetRewards) Name() string                 { return "set_rewards" }
func (SetConfig) Name() string                  { return "set_config" }
func (SetActiveTask) Name() string              { return "set_active_task" }
func (PatchCalendarDay) Name() string           { return "patch_calendar_day" }
func (ApplyProgressDelta) Name() string         { return "apply_progress_delta" }

func (SetLoading) event()                 {}
func (SetError) event()                   {}
func (SetSessionPlayer) event()           {}
func (SetCalendar) event()                {}
func (SetLeaderboardTop) event()          {}
func (SetModalLeaderboardPage) event()    {}
func (AppendModalLeaderboardPage) event() {}
func (ResetModalLeaderboard) event()      {}
func (SetModalLoadingMore) event()        {}
func (SetRewards) event()                 {}
func (SetConfig) event()                  {}
func (SetActiveTask) event()              {}
func (PatchCalendarDay) event()           {}
func (ApplyProgressDelta) event()         {}

// Unlock patches a day to unlocked and attaches task
func Unlock(day int, task *model.TaskRecord) PatchCalendarDay {
	unlocked := true
	return PatchCalendarDay{Day: day, Patch: DayPatch{IsUnlocked: &unlocked, Task: task}}
}

// Complete patches a day to completed
func Complete(day int) PatchCalendarDay {
	completed := true
	return PatchCalendarDay{Day: day, Patch: DayPatch{IsCompleted: &completed}}
}
