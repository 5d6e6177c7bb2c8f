package rest

import (
	"adventcal/internal/analytics"
	"adventcal/internal/cache"
	"adventcal/internal/gateway"
	"adventcal/internal/model"
	"adventcal/internal/service"
	"adventcal/internal/session"
	"adventcal/internal/store"
	"adventcal/internal/transport/ws"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type testServer struct {
	srv   *httptest.Server
	store *store.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gw, err := gateway.NewMockGateway(ctx, gateway.MockOptions{
		Ranking:   cache.NewMemoryLeaderboard(),
		EventYear: 2025,
		Seed:      1,
		Now:       func() time.Time { return time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatal(err)
	}
	st := store.New(store.Initial(model.DefaultClientConfig()))
	actions := service.NewActions(st, gw, session.NewStore(cache.NewMemoryKV()), analytics.NewTracker(gw, nil), service.Options{})
	if err := actions.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	srv := httptest.NewServer(NewRouter(&Container{
		Actions:     actions,
		Store:       st,
		AuthService: service.NewAuthService("test", time.Hour),
		WSHub:       ws.NewHub(ctx, st.Snapshot),
		Clients:     gw,
	}))
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, store: st}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, s.srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestStateAndHealth(t *testing.T) {
	s := newTestServer(t)

	var state store.AppState
	if code := s.do(t, "GET", "/v1/state", "", nil, &state); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(state.CalendarDays) != 25 || len(state.LeaderboardTop) != 5 || len(state.Rewards) != 6 {
		t.Fatalf("days=%d top=%d rewards=%d", len(state.CalendarDays), len(state.LeaderboardTop), len(state.Rewards))
	}
	if state.ClientConfig.ID != "christmas-corp" {
		t.Fatalf("config = %s", state.ClientConfig.ID)
	}

	if code := s.do(t, "GET", "/health", "", nil, nil); code != http.StatusOK {
		t.Fatalf("health status %d", code)
	}
}

func TestPlayerJourney(t *testing.T) {
	s := newTestServer(t)

	var sess model.SessionResponse
	code := s.do(t, "POST", "/v1/players", "", model.PlayerPayload{Name: "Ada", Email: "ada@example.com"}, &sess)
	if code != http.StatusCreated || sess.Token == "" || sess.Player == nil {
		t.Fatalf("create: %d %+v", code, sess)
	}

	var task model.TaskRecord
	if code := s.do(t, "POST", "/v1/calendar/1/open", "", nil, &task); code != http.StatusOK || task.ID != "task-day-1" {
		t.Fatalf("open: %d %+v", code, task)
	}

	if code := s.do(t, "POST", "/v1/tasks/task-day-1/complete", "", model.QuizSubmission(0), nil); code != http.StatusUnauthorized {
		t.Fatalf("completing without a token should fail, got %d", code)
	}

	var incomplete map[string]string
	code = s.do(t, "POST", "/v1/tasks/task-day-1/complete", sess.Token, model.Submission{Type: model.TaskTypeQuiz}, &incomplete)
	if code != http.StatusUnprocessableEntity || incomplete["error"] != service.MsgIncompleteAnswer {
		t.Fatalf("incomplete answer: %d %v", code, incomplete)
	}

	var result model.TaskResult
	code = s.do(t, "POST", "/v1/tasks/task-day-1/complete", sess.Token, model.QuizSubmission(0), &result)
	if code != http.StatusOK || !result.Success {
		t.Fatalf("complete: %d %+v", code, result)
	}

	snap := s.store.Snapshot()
	if snap.SessionPlayer.Points != 100 || snap.SessionPlayer.Gems != 5 || snap.ActiveTask != nil {
		t.Fatalf("session after completion: %+v", snap.SessionPlayer)
	}

	var again map[string]string
	code = s.do(t, "POST", "/v1/tasks/task-day-1/complete", sess.Token, model.QuizSubmission(0), &again)
	if code != http.StatusUnprocessableEntity || again["error"] != service.MsgTaskRejected {
		t.Fatalf("second completion: %d %v", code, again)
	}

	if code := s.do(t, "POST", "/v1/session/logout", sess.Token, nil, nil); code != http.StatusOK {
		t.Fatalf("logout: %d", code)
	}
	if code := s.do(t, "PATCH", "/v1/players/me", sess.Token, model.PlayerPayload{Name: "x"}, nil); code != http.StatusForbidden {
		t.Fatalf("a token of a signed-out player should be refused, got %d", code)
	}
}

func TestLeaderboardModalRoutes(t *testing.T) {
	s := newTestServer(t)

	type modal struct {
		Entries    []model.LeaderboardEntry `json:"entries"`
		Pagination store.ModalPagination    `json:"pagination"`
	}
	var m modal
	if code := s.do(t, "POST", "/v1/leaderboard/modal", "", nil, &m); code != http.StatusOK {
		t.Fatalf("open: %d", code)
	}
	if len(m.Entries) != 10 || m.Pagination.Total != 25 || !m.Pagination.HasMore {
		t.Fatalf("after open: %d %+v", len(m.Entries), m.Pagination)
	}

	for i := 0; i < 4; i++ {
		if code := s.do(t, "POST", "/v1/leaderboard/modal/more", "", nil, &m); code != http.StatusOK {
			t.Fatalf("more: %d", code)
		}
	}
	if len(m.Entries) != 25 || m.Pagination.HasMore {
		t.Fatalf("after more: %d %+v", len(m.Entries), m.Pagination)
	}

	if code := s.do(t, "DELETE", "/v1/leaderboard/modal", "", nil, nil); code != http.StatusNoContent {
		t.Fatalf("close: %d", code)
	}
	if n := len(s.store.Snapshot().ModalLeaderboard); n != 0 {
		t.Fatalf("modal still holds %d entries", n)
	}
}

func TestPurchaseAndClientSwitch(t *testing.T) {
	s := newTestServer(t)

	var sess model.SessionResponse
	s.do(t, "POST", "/v1/session/signin", "", model.SignInRequest{PlayerID: "user-1"}, &sess)
	if sess.Player == nil || sess.Player.Gems != 45 {
		t.Fatalf("sign in: %+v", sess)
	}

	var res model.PurchaseResult
	if code := s.do(t, "POST", "/v1/rewards/reward-6/purchase", sess.Token, nil, &res); code != http.StatusOK || !res.Success {
		t.Fatalf("purchase: %d %+v", code, res)
	}
	if g := s.store.Snapshot().SessionPlayer.Gems; g != 20 {
		t.Fatalf("gems = %d", g)
	}

	if code := s.do(t, "POST", "/v1/rewards/reward-5/purchase", sess.Token, nil, &res); code != http.StatusConflict || res.Message != "Not enough gems" {
		t.Fatalf("expensive purchase: %d %+v", code, res)
	}

	var cfg model.ClientConfig
	if code := s.do(t, "PUT", "/v1/mock/clients/holiday-heroes", "", nil, &cfg); code != http.StatusOK || cfg.ID != "holiday-heroes" {
		t.Fatalf("switch: %d %s", code, cfg.ID)
	}
	var errBody map[string]string
	if code := s.do(t, "PUT", "/v1/mock/clients/nope", "", nil, &errBody); code != http.StatusNotFound || !strings.Contains(errBody["error"], "unknown client") {
		t.Fatalf("unknown client: %d %v", code, errBody)
	}
}

func TestOpenUnknownDay(t *testing.T) {
	s := newTestServer(t)
	var body map[string]string
	if code := s.do(t, "POST", "/v1/calendar/30/open", "", nil, &body); code != http.StatusNotFound {
		t.Fatalf("status %d", code)
	}
	if body["error"] != "The requested resource was not found." {
		t.Fatalf("error = %q", body["error"])
	}
}
