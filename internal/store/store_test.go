package store

import (
	"adventcal/internal/model"
	"reflect"
	"testing"
	"time"
)

func testDays(n int) []model.CalendarDay {
	days := make([]model.CalendarDay, 0, n)
	for i := 1; i <= n; i++ {
		days = append(days, model.CalendarDay{
			Day:        i,
			Date:       time.Date(2025, time.December, i, 0, 0, 0, 0, time.UTC),
			IsUnlocked: i <= 3,
			Task:       &model.TaskRecord{ID: "task-" + string(rune('a'+i-1)), Type: model.TaskTypeAction},
		})
	}
	return days
}

func dayNumbers(days []model.CalendarDay) []int {
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = d.Day
	}
	return out
}

func TestPatchCalendarDayKeepsOrderAndUniqueness(t *testing.T) {
	s := Reduce(Initial(model.DefaultClientConfig()), SetCalendar{Days: testDays(25)})
	want := dayNumbers(s.CalendarDays)

	events := []Event{
		Unlock(7, &model.TaskRecord{ID: "t7"}),
		Complete(3),
		Complete(25),
		Unlock(99, nil),
		Complete(1),
		Unlock(7, nil),
	}
	for _, ev := range events {
		s = Reduce(s, ev)
		if got := dayNumbers(s.CalendarDays); !reflect.DeepEqual(got, want) {
			t.Fatalf("after %s day order = %v, want %v", ev.Name(), got, want)
		}
	}
	if d, _ := s.Day(7); d.Task == nil || d.Task.ID != "t7" {
		t.Fatalf("day 7 task not attached: %+v", d.Task)
	}
}

func TestSetCalendarNormalizesDays(t *testing.T) {
	input := []model.CalendarDay{
		{Day: 2, IsCompleted: true, Task: &model.TaskRecord{ID: "first"}},
		{Day: 1},
		{Day: 2, Task: &model.TaskRecord{ID: "second"}},
	}
	s := Reduce(Initial(model.DefaultClientConfig()), SetCalendar{Days: input})

	if got := dayNumbers(s.CalendarDays); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("days = %v, want [1 2]", got)
	}
	d, _ := s.Day(2)
	if !d.IsCompleted || !d.IsUnlocked {
		t.Fatalf("day 2 completed=%v unlocked=%v, want both true", d.IsCompleted, d.IsUnlocked)
	}
	if d.Task == nil || d.Task.ID != "first" {
		t.Fatalf("day 2 should keep its first entry, got %+v", d.Task)
	}
	if input[0].IsUnlocked || input[0].Day != 2 {
		t.Fatal("SetCalendar modified the caller's slice")
	}
}

func TestPatchCalendarDayIsIdempotent(t *testing.T) {
	s := Reduce(Initial(model.DefaultClientConfig()), SetCalendar{Days: testDays(5)})
	ev := Complete(4)

	once := Reduce(s, ev)
	twice := Reduce(once, ev)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("applying the same patch twice changed the state")
	}
}

func TestPatchCalendarDayTouchesOnlyOneEntry(t *testing.T) {
	before := Reduce(Initial(model.DefaultClientConfig()), SetCalendar{Days: testDays(5)})
	after := Reduce(before, Complete(4))

	for i := range before.CalendarDays {
		if before.CalendarDays[i].Day == 4 {
			continue
		}
		if !reflect.DeepEqual(before.CalendarDays[i], after.CalendarDays[i]) {
			t.Fatalf("day %d changed", before.CalendarDays[i].Day)
		}
	}
	d, _ := after.Day(4)
	if !d.IsCompleted || !d.IsUnlocked {
		t.Fatalf("completed day must also be unlocked: %+v", d)
	}
	if old, _ := before.Day(4); old.IsCompleted {
		t.Fatal("previous snapshot was modified")
	}
}

func TestApplyProgressDeltaWithoutSessionIsNoop(t *testing.T) {
	s := Initial(model.DefaultClientConfig())
	got := Reduce(s, ApplyProgressDelta{Points: 100, Gems: 5})
	if !reflect.DeepEqual(s, got) {
		t.Fatal("progress delta without a session must not change state")
	}
}

func TestApplyProgressDelta(t *testing.T) {
	player := &model.PlayerRecord{ID: "p1", Points: 1250, Gems: 45, Badges: []model.Badge{{ID: "a"}}}
	s := Reduce(Initial(model.DefaultClientConfig()), SetSessionPlayer{Player: player})

	next := Reduce(s, ApplyProgressDelta{Points: 100, Gems: 5, Badge: &model.Badge{ID: "b"}})
	if next.SessionPlayer.Points != 1350 || next.SessionPlayer.Gems != 50 {
		t.Fatalf("got %d/%d, want 1350/50", next.SessionPlayer.Points, next.SessionPlayer.Gems)
	}
	if len(next.SessionPlayer.Badges) != 2 || next.SessionPlayer.Badges[1].ID != "b" {
		t.Fatalf("badge not appended: %+v", next.SessionPlayer.Badges)
	}
	if s.SessionPlayer.Points != 1250 || len(s.SessionPlayer.Badges) != 1 {
		t.Fatal("previous snapshot was modified")
	}
	if player.Points != 1250 {
		t.Fatal("caller's record was modified")
	}
}

func TestSetErrorClearsLoading(t *testing.T) {
	s := Reduce(Initial(model.DefaultClientConfig()), SetLoading{Loading: true})
	s = Reduce(s, SetError{Message: "boom"})
	if s.IsLoading || s.LastError != "boom" {
		t.Fatalf("got loading=%v error=%q", s.IsLoading, s.LastError)
	}
}

func TestModalLeaderboardEvents(t *testing.T) {
	entries := func(from, n int) []model.LeaderboardEntry {
		out := make([]model.LeaderboardEntry, n)
		for i := range out {
			out[i] = model.LeaderboardEntry{Rank: from + i}
		}
		return out
	}

	s := Initial(model.DefaultClientConfig())
	s = Reduce(s, ResetModalLeaderboard{Open: true})
	epoch := s.ModalPagination.Epoch
	s = Reduce(s, SetModalLeaderboardPage{Entries: entries(1, 10), HasMore: true, Total: 25})
	s = Reduce(s, SetModalLoadingMore{Loading: true})
	s = Reduce(s, AppendModalLeaderboardPage{Entries: entries(11, 10), HasMore: true, Total: 25})

	p := s.ModalPagination
	if len(s.ModalLeaderboard) != 20 || p.CurrentPage != 2 || p.IsLoadingMore || !p.IsOpen || p.Epoch != epoch {
		t.Fatalf("unexpected modal state: len=%d %+v", len(s.ModalLeaderboard), p)
	}
	if s.ModalLeaderboard[19].Rank != 20 {
		t.Fatalf("last rank = %d", s.ModalLeaderboard[19].Rank)
	}

	s = Reduce(s, ResetModalLeaderboard{})
	if len(s.ModalLeaderboard) != 0 || s.ModalPagination.IsOpen || s.ModalPagination.Epoch != epoch+1 {
		t.Fatalf("reset did not clear the modal: %+v", s.ModalPagination)
	}
}

type bogusEvent struct{ SetLoading }

func (bogusEvent) Name() string { return "bogus" }

func TestReduceUnknownEventPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unknown event")
		}
	}()
	Reduce(Initial(model.DefaultClientConfig()), bogusEvent{})
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	st := New(Initial(model.DefaultClientConfig()))
	ch, cancel := st.Subscribe(1)
	defer cancel()

	st.Dispatch(SetLoading{Loading: true})
	st.Dispatch(SetError{Message: "late"})

	select {
	case snap := <-ch:
		if snap.LastError != "late" || snap.IsLoading {
			t.Fatalf("expected the latest snapshot, got %+v", snap)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestStoreCancelClosesChannel(t *testing.T) {
	st := New(Initial(model.DefaultClientConfig()))
	ch, cancel := st.Subscribe(4)
	cancel()
	cancel()

	st.Dispatch(SetLoading{Loading: true})
	if _, ok := <-ch; ok {
		t.Fatal("expected a closed channel after cancel")
	}
}

func TestDispatchFuncSeesCurrentState(t *testing.T) {
	st := New(Initial(model.DefaultClientConfig()))
	st.Dispatch(SetLoading{Loading: true})

	got := st.DispatchFunc(func(s AppState) []Event {
		if !s.IsLoading {
			return nil
		}
		return []Event{SetError{Message: "seen"}}
	})
	if got.LastError != "seen" {
		t.Fatalf("got %+v", got)
	}

	unchanged := st.DispatchFunc(func(AppState) []Event { return nil })
	if unchanged.LastError != "seen" {
		t.Fatal("empty dispatch must return the current state")
	}
}
