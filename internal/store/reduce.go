package store

import (
	"adventcal/internal/model"
	"fmt"
	"sort"
)

// Reduce computes the state that follows s after ev.
// It never modifies s or any slice reachable from it.
func Reduce(s AppState, ev Event) AppState {
	switch e := ev.(type) {
	case SetLoading:
		s.IsLoading = e.Loading
	case SetError:
		s.LastError = e.Message
		s.IsLoading = false
	case SetSessionPlayer:
		s.SessionPlayer = e.Player.Clone()
	case SetCalendar:
		s.CalendarDays = normalizeCalendar(e.Days)
	case SetLeaderboardTop:
		s.LeaderboardTop = cloneSlice(e.Entries)
	case SetModalLeaderboardPage:
		s.ModalLeaderboard = cloneSlice(e.Entries)
		s.ModalPagination.HasMore = e.HasMore
		s.ModalPagination.Total = e.Total
		s.ModalPagination.CurrentPage = 1
		s.ModalPagination.IsLoadingMore = false
	case AppendModalLeaderboardPage:
		merged := make([]model.LeaderboardEntry, 0, len(s.ModalLeaderboard)+len(e.Entries))
		merged = append(merged, s.ModalLeaderboard...)
		merged = append(merged, e.Entries...)
		s.ModalLeaderboard = merged
		s.ModalPagination.HasMore = e.HasMore
		s.ModalPagination.Total = e.Total
		s.ModalPagination.CurrentPage++
		s.ModalPagination.IsLoadingMore = false
	case ResetModalLeaderboard:
		s.ModalLeaderboard = []model.LeaderboardEntry{}
		s.ModalPagination = ModalPagination{
			IsOpen: e.Open,
			Epoch:  s.ModalPagination.Epoch + 1,
		}
	case SetModalLoadingMore:
		s.ModalPagination.IsLoadingMore = e.Loading
	case SetRewards:
		s.Rewards = cloneSlice(e.Rewards)
	case SetConfig:
		s.ClientConfig = e.Config
	case SetActiveTask:
		s.ActiveTask = e.Task
	case PatchCalendarDay:
		s.CalendarDays = patchDay(s.CalendarDays, e)
	case ApplyProgressDelta:
		if s.SessionPlayer == nil {
			return s
		}
		p := s.SessionPlayer.Clone()
		p.Points += e.Points
		p.Gems += e.Gems
		if e.Badge != nil {
			p.Badges = append(p.Badges, *e.Badge)
		}
		s.SessionPlayer = p
	default:
		panic(fmt.Sprintf("store: unknown event %T", ev))
	}
	return s
}

// normalizeCalendar orders days by number, keeps the first entry for each
// day and marks completed days unlocked.
func normalizeCalendar(days []model.CalendarDay) []model.CalendarDay {
	sorted := cloneSlice(days)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Day < sorted[j].Day })

	out := make([]model.CalendarDay, 0, len(sorted))
	for _, d := range sorted {
		if n := len(out); n > 0 && out[n-1].Day == d.Day {
			continue
		}
		if d.IsCompleted {
			d.IsUnlocked = true
		}
		out = append(out, d)
	}
	return out
}

func patchDay(days []model.CalendarDay, e PatchCalendarDay) []model.CalendarDay {
	idx := -1
	for i := range days {
		if days[i].Day == e.Day {
			idx = i
			break
		}
	}
	if idx < 0 {
		return days
	}

	d := days[idx]
	if e.Patch.IsUnlocked != nil {
		d.IsUnlocked = *e.Patch.IsUnlocked
	}
	if e.Patch.IsCompleted != nil {
		d.IsCompleted = *e.Patch.IsCompleted
	}
	if d.IsCompleted {
		d.IsUnlocked = true
	}
	if e.Patch.Task != nil {
		d.Task = e.Patch.Task
	}

	out := make([]model.CalendarDay, len(days))
	copy(out, days)
	out[idx] = d
	return out
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
