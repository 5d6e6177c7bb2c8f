// Package store owns the application state. State only changes by
// applying events through Reduce.
package store

import "adventcal/internal/model"

// ModalPagination tracks the full leaderboard view.
// Epoch changes on every reset so late page results can be recognized.
type ModalPagination struct {
	IsOpen        bool `json:"isOpen"`
	Epoch         int  `json:"epoch"`
	HasMore       bool `json:"hasMore"`
	Total         int  `json:"total"`
	IsLoadingMore bool `json:"isLoadingMore"`
	CurrentPage   int  `json:"currentPage"`
}

// AppState is one immutable snapshot of the application.
// Slices are never modified after a snapshot is published.
type AppState struct {
	SessionPlayer    *model.PlayerRecord      `json:"sessionPlayer"`
	ClientConfig     model.ClientConfig       `json:"clientConfig"`
	CalendarDays     []model.CalendarDay      `json:"calendarDays"`
	LeaderboardTop   []model.LeaderboardEntry `json:"leaderboardTop"`
	ModalLeaderboard []model.LeaderboardEntry `json:"modalLeaderboard"`
	ModalPagination  ModalPagination          `json:"modalPagination"`
	Rewards          []model.Reward           `json:"rewards"`
	ActiveTask       *model.TaskRecord        `json:"activeTask"`
	IsLoading        bool                     `json:"isLoading"`
	LastError        string                   `json:"lastError,omitempty"`
}

// Initial is the empty document the process starts from
func Initial(cfg model.ClientConfig) AppState {
	return AppState{
		ClientConfig:     cfg,
		CalendarDays:     []model.CalendarDay{},
		LeaderboardTop:   []model.LeaderboardEntry{},
		ModalLeaderboard: []model.LeaderboardEntry{},
		Rewards:          []model.Reward{},
	}
}

// Day returns the calendar day with the given number
func (s AppState) Day(day int) (model.CalendarDay, bool) {
	for _, d := range s.CalendarDays {
		if d.Day == day {
			return d, true
		}
	}
	return model.CalendarDay{}, false
}

// DayForTask returns the calendar day whose attached task has taskID
func (s AppState) DayForTask(taskID string) (model.CalendarDay, bool) {
	for _, d := range s.CalendarDays {
		if d.Task != nil && d.Task.ID == taskID {
			return d, true
		}
	}
	return model.CalendarDay{}, false
}
